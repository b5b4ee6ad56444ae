// cpu_8086_ops_string.go - string instructions with REP/REPE/REPNE
//
// Grounded on cpu_x86_ops.go's opSCASB/opSCASW: the REP loop decrements CX
// after the per-element compare-and-advance step, then checks the
// ZF-based early-exit condition for REPE/REPNE. MOVS/LODS/STOS reuse the
// same outer shape with no early-exit test (plain REP).

package main

// stringStep returns the SI/DI step for one element, per DF: +1/-1 for
// bytes, +2/-2 for words (negative steps as their uint16 wraparound).
func (c *CPU) stringStep(width Width) uint16 {
	if width == WidthByte {
		if c.DF() {
			return 0xFFFF // -1
		}
		return 1
	}
	if c.DF() {
		return 0xFFFE // -2
	}
	return 2
}

// repActive reports whether a REP/REPE/REPNE prefix is active for this
// instruction; the string handlers then repeat CX times (CX==0 meaning
// "do nothing" per spec).
func (c *CPU) repActive() bool {
	return c.prefixRep != 0
}

func (c *CPU) opMOVSB() {
	step := c.stringStep(WidthByte)
	do := func() {
		v := c.readByte(c.segForOverride(SegDS), c.SI())
		c.writeByte(c.Seg(SegES), c.DI(), v)
		c.SetSI(c.SI() + step)
		c.SetDI(c.DI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
	}
}

func (c *CPU) opMOVSW() {
	step := c.stringStep(WidthWord)
	do := func() {
		v := c.readWord(c.segForOverride(SegDS), c.SI())
		c.writeWord(c.Seg(SegES), c.DI(), v)
		c.SetSI(c.SI() + step)
		c.SetDI(c.DI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
	}
}

func (c *CPU) opCMPSB() {
	step := c.stringStep(WidthByte)
	do := func() {
		a := c.readByte(c.segForOverride(SegDS), c.SI())
		b := c.readByte(c.Seg(SegES), c.DI())
		c.alu8(aluCMP, a, b)
		c.SetSI(c.SI() + step)
		c.SetDI(c.DI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	wantZF := c.prefixRep == 1 // REPE/REPZ
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
		if c.CX() == 0 || c.ZF() != wantZF {
			break
		}
	}
}

func (c *CPU) opCMPSW() {
	step := c.stringStep(WidthWord)
	do := func() {
		a := c.readWord(c.segForOverride(SegDS), c.SI())
		b := c.readWord(c.Seg(SegES), c.DI())
		c.alu16(aluCMP, a, b)
		c.SetSI(c.SI() + step)
		c.SetDI(c.DI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	wantZF := c.prefixRep == 1
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
		if c.CX() == 0 || c.ZF() != wantZF {
			break
		}
	}
}

func (c *CPU) opSCASB() {
	step := c.stringStep(WidthByte)
	do := func() {
		b := c.readByte(c.Seg(SegES), c.DI())
		c.alu8(aluCMP, c.AL(), b)
		c.SetDI(c.DI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	wantZF := c.prefixRep == 1
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
		if c.CX() == 0 || c.ZF() != wantZF {
			break
		}
	}
}

func (c *CPU) opSCASW() {
	step := c.stringStep(WidthWord)
	do := func() {
		v := c.readWord(c.Seg(SegES), c.DI())
		c.alu16(aluCMP, c.AX(), v)
		c.SetDI(c.DI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	wantZF := c.prefixRep == 1
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
		if c.CX() == 0 || c.ZF() != wantZF {
			break
		}
	}
}

func (c *CPU) opLODSB() {
	step := c.stringStep(WidthByte)
	do := func() {
		c.SetAL(c.readByte(c.segForOverride(SegDS), c.SI()))
		c.SetSI(c.SI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
	}
}

func (c *CPU) opLODSW() {
	step := c.stringStep(WidthWord)
	do := func() {
		c.SetAX(c.readWord(c.segForOverride(SegDS), c.SI()))
		c.SetSI(c.SI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
	}
}

func (c *CPU) opSTOSB() {
	step := c.stringStep(WidthByte)
	do := func() {
		c.writeByte(c.Seg(SegES), c.DI(), c.AL())
		c.SetDI(c.DI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
	}
}

func (c *CPU) opSTOSW() {
	step := c.stringStep(WidthWord)
	do := func() {
		c.writeWord(c.Seg(SegES), c.DI(), c.AX())
		c.SetDI(c.DI() + step)
	}
	if !c.repActive() {
		do()
		return
	}
	for c.CX() != 0 {
		do()
		c.SetCX(c.CX() - 1)
	}
}
