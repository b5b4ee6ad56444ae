// cpu_8086_ops_flags.go - single-flag and misc control instructions
//
// Grounded on cpu_x86_ops.go's CLC/STC/CLI/STI/CLD/STD/CMC/LAHF/SAHF/HLT/
// NOP handlers, unchanged in semantics for the 8086.

package main

func (c *CPU) opCLC() { c.setFlag(FlagCF, false) }
func (c *CPU) opSTC() { c.setFlag(FlagCF, true) }
func (c *CPU) opCLI() { c.setFlag(FlagIF, false) }
func (c *CPU) opSTI() { c.setFlag(FlagIF, true) }
func (c *CPU) opCLD() { c.setFlag(FlagDF, false) }
func (c *CPU) opSTD() { c.setFlag(FlagDF, true) }
func (c *CPU) opCMC() { c.setFlag(FlagCF, !c.CF()) }

func (c *CPU) opLAHF() {
	c.SetAH(byte(c.flags))
}

func (c *CPU) opSAHF() {
	kept := c.flags & 0xFF00
	c.SetFlags(kept | uint16(c.AH()))
}

func (c *CPU) opHLT() {
	c.Halted = true
}

func (c *CPU) opNOP() {}

func (c *CPU) opWAIT() {}
