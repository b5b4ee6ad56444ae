// cpu_8086_ops_ctrl.go - control transfer instructions
//
// Grounded on cpu_x86_ops.go's JMP/CALL/RET/Jcc/LOOP family and
// cpu_x86_grp.go's opGrp5 (indirect JMP/CALL/PUSH dispatch through the
// ModR/M reg field for opcode 0xFF).

package main

// --- unconditional jumps ---

func (c *CPU) opJMP_rel8() {
	rel := int8(c.fetch8())
	c.ip = uint16(int32(c.ip) + int32(rel))
}

func (c *CPU) opJMP_rel16() {
	rel := int16(c.fetch16())
	c.ip = uint16(int32(c.ip) + int32(rel))
}

func (c *CPU) opJMP_far() {
	off := c.fetch16()
	seg := c.fetch16()
	c.ip = off
	c.segs[SegCS] = seg
}

// --- calls / returns ---

func (c *CPU) opCALL_rel16() {
	rel := int16(c.fetch16())
	ret := c.ip
	c.ip = uint16(int32(c.ip) + int32(rel))
	c.push16(ret)
}

func (c *CPU) opCALL_far() {
	off := c.fetch16()
	seg := c.fetch16()
	c.push16(c.segs[SegCS])
	c.push16(c.ip)
	c.ip = off
	c.segs[SegCS] = seg
}

func (c *CPU) opRET_near() {
	c.ip = c.pop16()
}

func (c *CPU) opRET_near_Iw() {
	imm := c.fetch16()
	c.ip = c.pop16()
	c.SetSP(c.SP() + imm)
}

func (c *CPU) opRET_far() {
	c.ip = c.pop16()
	c.segs[SegCS] = c.pop16()
}

func (c *CPU) opRET_far_Iw() {
	imm := c.fetch16()
	c.ip = c.pop16()
	c.segs[SegCS] = c.pop16()
	c.SetSP(c.SP() + imm)
}

// --- Group 5: opcode 0xFF, indirect INC/DEC/CALL/JMP/PUSH selected by
// the ModR/M reg field ---

func (c *CPU) opGrp5() {
	c.fetchModRM()
	op := c.modRMReg()
	switch op {
	case 0: // INC Ev
		c.writeRM16(c.inc16(c.readRM16()))
	case 1: // DEC Ev
		c.writeRM16(c.dec16(c.readRM16()))
	case 2: // CALL Ev (near, indirect)
		target := c.readRM16()
		c.push16(c.ip)
		c.ip = target
	case 3: // CALL Ep (far, indirect via memory)
		seg, off := c.effectiveAddress()
		newIP := c.readWord(seg, off)
		newCS := c.readWord(seg, off+2)
		c.push16(c.segs[SegCS])
		c.push16(c.ip)
		c.ip = newIP
		c.segs[SegCS] = newCS
	case 4: // JMP Ev (near, indirect)
		c.ip = c.readRM16()
	case 5: // JMP Ep (far, indirect via memory)
		seg, off := c.effectiveAddress()
		c.ip = c.readWord(seg, off)
		c.segs[SegCS] = c.readWord(seg, off+2)
	case 6: // PUSH Ev
		c.push16(c.readRM16())
	}
}

// --- conditional jumps ---

// jccTaken evaluates one of the sixteen Jcc conditions, indexed the same
// way the opcode low nibble selects them for 0x70-0x7F / 0x0F 0x80-0x8F.
func (c *CPU) jccTaken(cond byte) bool {
	switch cond {
	case 0x0: // JO
		return c.OF()
	case 0x1: // JNO
		return !c.OF()
	case 0x2: // JB/JC/JNAE
		return c.CF()
	case 0x3: // JAE/JNB/JNC
		return !c.CF()
	case 0x4: // JE/JZ
		return c.ZF()
	case 0x5: // JNE/JNZ
		return !c.ZF()
	case 0x6: // JBE/JNA
		return c.CF() || c.ZF()
	case 0x7: // JA/JNBE
		return !c.CF() && !c.ZF()
	case 0x8: // JS
		return c.SF()
	case 0x9: // JNS
		return !c.SF()
	case 0xA: // JP/JPE
		return c.PF()
	case 0xB: // JNP/JPO
		return !c.PF()
	case 0xC: // JL/JNGE
		return c.SF() != c.OF()
	case 0xD: // JGE/JNL
		return c.SF() == c.OF()
	case 0xE: // JLE/JNG
		return c.ZF() || (c.SF() != c.OF())
	case 0xF: // JG/JNLE
		return !c.ZF() && (c.SF() == c.OF())
	}
	return false
}

func jcc(cond byte) func(*CPU) {
	return func(c *CPU) {
		rel := int8(c.fetch8())
		if c.jccTaken(cond) {
			c.ip = uint16(int32(c.ip) + int32(rel))
		}
	}
}

// --- LOOP family / JCXZ ---

func (c *CPU) opLOOP() {
	rel := int8(c.fetch8())
	c.SetCX(c.CX() - 1)
	if c.CX() != 0 {
		c.ip = uint16(int32(c.ip) + int32(rel))
	}
}

func (c *CPU) opLOOPE() {
	rel := int8(c.fetch8())
	c.SetCX(c.CX() - 1)
	if c.CX() != 0 && c.ZF() {
		c.ip = uint16(int32(c.ip) + int32(rel))
	}
}

func (c *CPU) opLOOPNE() {
	rel := int8(c.fetch8())
	c.SetCX(c.CX() - 1)
	if c.CX() != 0 && !c.ZF() {
		c.ip = uint16(int32(c.ip) + int32(rel))
	}
}

func (c *CPU) opJCXZ() {
	rel := int8(c.fetch8())
	if c.CX() == 0 {
		c.ip = uint16(int32(c.ip) + int32(rel))
	}
}

// --- software interrupts ---

func (c *CPU) opINT_Ib() {
	vector := c.fetch8()
	c.deliverInterrupt(vector)
}

func (c *CPU) opINT3() {
	c.deliverInterrupt(3)
}

func (c *CPU) opINTO() {
	if c.OF() {
		c.deliverInterrupt(4)
	}
}

func (c *CPU) opIRET() {
	c.ip = c.pop16()
	c.segs[SegCS] = c.pop16()
	c.SetFlags(c.pop16())
}
