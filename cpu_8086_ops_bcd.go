// cpu_8086_ops_bcd.go - decimal adjustment instructions
//
// Grounded on cpu_x86_ops.go's AAA/AAS/AAM/AAD/DAA/DAS, which the teacher
// keeps byte-for-byte identical across its 16/32-bit cores since these
// instructions only ever operate on AL/AX regardless of operand size.

package main

func (c *CPU) opAAA() {
	if c.AL()&0x0F > 9 || c.AF() {
		c.SetAX(c.AX() + 0x106)
		c.setFlag(FlagAF, true)
		c.setFlag(FlagCF, true)
	} else {
		c.setFlag(FlagAF, false)
		c.setFlag(FlagCF, false)
	}
	c.SetAL(c.AL() & 0x0F)
}

func (c *CPU) opAAS() {
	if c.AL()&0x0F > 9 || c.AF() {
		c.SetAX(c.AX() - 6)
		c.SetAH(c.AH() - 1)
		c.setFlag(FlagAF, true)
		c.setFlag(FlagCF, true)
	} else {
		c.setFlag(FlagAF, false)
		c.setFlag(FlagCF, false)
	}
	c.SetAL(c.AL() & 0x0F)
}

func (c *CPU) opAAM() {
	base := c.fetch8()
	if base == 0 {
		c.raiseFault(0)
		return
	}
	al := c.AL()
	c.SetAH(al / base)
	c.SetAL(al % base)
	c.setFlagsLogic8(c.AL())
}

func (c *CPU) opAAD() {
	base := c.fetch8()
	al := c.AL()
	ah := c.AH()
	result := byte(uint16(ah)*uint16(base) + uint16(al))
	c.SetAL(result)
	c.SetAH(0)
	c.setFlagsLogic8(result)
}

func (c *CPU) opDAA() {
	al := c.AL()
	oldAL := al
	oldCF := c.CF()
	c.setFlag(FlagCF, false)

	if al&0x0F > 9 || c.AF() {
		carry := oldCF || al > 0xF9
		al += 6
		c.setFlag(FlagAF, true)
		c.setFlag(FlagCF, carry)
	} else {
		c.setFlag(FlagAF, false)
	}
	if oldAL > 0x99 || oldCF {
		al += 0x60
		c.setFlag(FlagCF, true)
	}
	c.SetAL(al)
	c.setFlag(FlagZF, al == 0)
	c.setFlag(FlagSF, al&0x80 != 0)
	c.setFlag(FlagPF, parity(al))
}

func (c *CPU) opDAS() {
	al := c.AL()
	oldAL := al
	oldCF := c.CF()
	c.setFlag(FlagCF, false)

	if al&0x0F > 9 || c.AF() {
		carry := oldCF || al < 6
		al -= 6
		c.setFlag(FlagAF, true)
		c.setFlag(FlagCF, carry)
	} else {
		c.setFlag(FlagAF, false)
	}
	if oldAL > 0x99 || oldCF {
		al -= 0x60
		c.setFlag(FlagCF, true)
	}
	c.SetAL(al)
	c.setFlag(FlagZF, al == 0)
	c.setFlag(FlagSF, al&0x80 != 0)
	c.setFlag(FlagPF, parity(al))
}
