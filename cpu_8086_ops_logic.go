// cpu_8086_ops_logic.go - Group 2 shift/rotate dispatch (AND/OR/XOR/TEST
// are wired through aluHandler* in cpu_8086_ops_arith.go since they share
// the ALU's Eb/Gb encoding forms).
//
// Grounded on cpu_x86_grp.go's opGrp2_* family: the reg field of the
// ModR/M byte selects one of ROL/ROR/RCL/RCR/SHL/SHR/SAL/SAR, and the
// count comes from either a literal 1 (0xD0/0xD1), CL (0xD2/0xD3), or an
// immediate byte (0xC0/0xC1).

package main

func (c *CPU) opGrp2_Eb_1() {
	c.fetchModRM()
	op := c.modRMReg()
	v := c.readRM8()
	c.writeRM8(c.shiftRotate8(v, 1, op))
}

func (c *CPU) opGrp2_Ev_1() {
	c.fetchModRM()
	op := c.modRMReg()
	v := c.readRM16()
	c.writeRM16(c.shiftRotate16(v, 1, op))
}

func (c *CPU) opGrp2_Eb_CL() {
	c.fetchModRM()
	op := c.modRMReg()
	v := c.readRM8()
	c.writeRM8(c.shiftRotate8(v, byte(c.CX()), op))
}

func (c *CPU) opGrp2_Ev_CL() {
	c.fetchModRM()
	op := c.modRMReg()
	v := c.readRM16()
	c.writeRM16(c.shiftRotate16(v, byte(c.CX()), op))
}

func (c *CPU) opGrp2_Eb_Ib() {
	c.fetchModRM()
	op := c.modRMReg()
	v := c.readRM8()
	count := c.fetch8()
	c.writeRM8(c.shiftRotate8(v, count, op))
}

func (c *CPU) opGrp2_Ev_Ib() {
	c.fetchModRM()
	op := c.modRMReg()
	v := c.readRM16()
	count := c.fetch8()
	c.writeRM16(c.shiftRotate16(v, count, op))
}
