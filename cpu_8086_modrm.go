// cpu_8086_modrm.go - ModR/M byte decoding and effective-address resolution
//
// Grounded on cpu_x86.go's calcEffectiveAddress16, which already implements
// the 8086 16-bit addressing-mode grammar (BX+SI/BX+DI/BP+SI/BP+DI/SI/DI/
// BP-or-disp16/BX) but discards the resulting default-segment selection
// because the teacher runs a flat 32-bit model. This version keeps that
// table and threads the segment through to physical-address computation.

package main

// fetchModRM fetches and caches the ModR/M byte for the current
// instruction.
func (c *CPU) fetchModRM() byte {
	if !c.modrmLoaded {
		c.modrm = c.fetch8()
		c.modrmLoaded = true
	}
	return c.modrm
}

func (c *CPU) modRMMod() byte { return (c.fetchModRM() >> 6) & 3 }
func (c *CPU) modRMReg() byte { return (c.fetchModRM() >> 3) & 7 }
func (c *CPU) modRMRM() byte  { return c.fetchModRM() & 7 }

// effectiveAddress computes the effective offset and default (or
// override) segment for the current ModR/M byte, per the 8086 addressing
// table in spec §4.2. Must only be called when mod != 3. The result is
// cached for the remainder of the current instruction: any displacement
// byte/word is part of the instruction stream and must only be consumed
// once, even though read-modify-write forms call this twice (once to
// read the operand, once to write it back).
func (c *CPU) effectiveAddress() (seg, offset uint16) {
	if c.eaLoaded {
		return c.eaSeg, c.eaOff
	}

	mod := c.modRMMod()
	rm := c.modRMRM()

	segIdx := SegDS
	var base uint16

	switch rm {
	case 0: // [BX+SI]
		base = c.BX() + c.SI()
	case 1: // [BX+DI]
		base = c.BX() + c.DI()
	case 2: // [BP+SI]
		base = c.BP() + c.SI()
		segIdx = SegSS
	case 3: // [BP+DI]
		base = c.BP() + c.DI()
		segIdx = SegSS
	case 4: // [SI]
		base = c.SI()
	case 5: // [DI]
		base = c.DI()
	case 6: // [BP] or disp16 direct address
		if mod == 0 {
			base = c.fetch16()
		} else {
			base = c.BP()
			segIdx = SegSS
		}
	case 7: // [BX]
		base = c.BX()
	}

	switch mod {
	case 1:
		disp := int8(c.fetch8())
		base = uint16(int32(int16(base)) + int32(disp))
	case 2:
		disp := c.fetch16()
		base += disp
	}

	if c.prefixSeg >= 0 {
		segIdx = c.prefixSeg
	}
	c.eaSeg, c.eaOff = c.Seg(segIdx), base
	c.eaLoaded = true
	return c.eaSeg, c.eaOff
}

// readRM8/writeRM8 read or write an operand-width-byte register-or-memory
// operand selected by the current ModR/M byte.
func (c *CPU) readRM8() byte {
	if c.modRMMod() == 3 {
		return c.Reg8(c.modRMRM())
	}
	seg, off := c.effectiveAddress()
	return c.readByte(seg, off)
}

func (c *CPU) writeRM8(v byte) {
	if c.modRMMod() == 3 {
		c.SetReg8(c.modRMRM(), v)
		return
	}
	seg, off := c.effectiveAddress()
	c.writeByte(seg, off, v)
}

func (c *CPU) readRM16() uint16 {
	if c.modRMMod() == 3 {
		return c.Reg16(int(c.modRMRM()))
	}
	seg, off := c.effectiveAddress()
	return c.readWord(seg, off)
}

func (c *CPU) writeRM16(v uint16) {
	if c.modRMMod() == 3 {
		c.SetReg16(int(c.modRMRM()), v)
		return
	}
	seg, off := c.effectiveAddress()
	c.writeWord(seg, off, v)
}

// rmIsMemory reports whether the current ModR/M byte designates a memory
// operand (as opposed to a register).
func (c *CPU) rmIsMemory() bool { return c.modRMMod() != 3 }
