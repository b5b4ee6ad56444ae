// cpu_8086.go - Intel 8086/8088 CPU core: registers, flags, bus contract
//
// Adapted from the IntuitionEngine x86 CPU core (cpu_x86.go), narrowed from
// its 386-class 32-bit register file down to the 8086's eight 16-bit
// general/segment registers, and generalized from flat 32-bit addressing to
// real-mode segment:offset addressing.

package main

// Bus is the contract the CPU requires from the platform it runs on: byte
// granularity memory and I/O port access. Word-granularity helpers are
// built on top (little-endian, two byte ops).
type Bus interface {
	ReadByte(addr uint32) byte
	WriteByte(addr uint32, v byte)
	ReadPort(port uint16) byte
	WritePort(port uint16, v byte)
}

// InterruptResult is returned by an externally configured interrupt
// handler (e.g. the BIOS) when the CPU dispatches INT n or an IRQ vector.
type InterruptResult int

const (
	// InterruptUnhandled means the handler declined; the CPU must fall
	// through to its own default vectoring through the IVT.
	InterruptUnhandled InterruptResult = iota
	// InterruptHandled means the handler fully serviced the interrupt;
	// the CPU suppresses its own default vectoring.
	InterruptHandled
	// InterruptHalt requests the CPU halt.
	InterruptHalt
	// InterruptFatal signals an unrecoverable condition.
	InterruptFatal
)

// InterruptHandler lets a host (typically the BIOS service layer) intercept
// INT n before the CPU performs its own IVT-driven vectoring.
type InterruptHandler interface {
	HandleInterrupt(cpu *CPU, n byte) InterruptResult
}

// InstructionHook is an optional debugging hook invoked before execution of
// each decoded instruction.
type InstructionHook func(cpu *CPU, instr *Instruction)

// Status is the terminal status of a single CPU Step.
type Status int

const (
	StatusOK Status = iota
	StatusHalt
	StatusUnhandledInterrupt
	StatusInvalidOpcode
	StatusDivideByZero
	StatusBusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusHalt:
		return "halt"
	case StatusUnhandledInterrupt:
		return "unhandled interrupt"
	case StatusInvalidOpcode:
		return "invalid opcode"
	case StatusDivideByZero:
		return "divide by zero"
	case StatusBusError:
		return "bus error"
	default:
		return "unknown"
	}
}

// Register indices for the eight general-purpose/index registers, using
// the canonical 8086 ModR/M reg-field encoding order.
const (
	RegAX = 0
	RegCX = 1
	RegDX = 2
	RegBX = 3
	RegSP = 4
	RegBP = 5
	RegSI = 6
	RegDI = 7
)

// Segment register indices, using the canonical 8086 sreg encoding order.
const (
	SegES = 0
	SegCS = 1
	SegSS = 2
	SegDS = 3
)

// Flags word bit positions (8086 conventions; no IOPL/NT/VM — those are
// 286+/386+ additions out of scope per spec Non-goals).
const (
	FlagCF = 1 << 0
	// bit 1 is reserved and always reads as 1.
	FlagPF = 1 << 2
	// bit 3 is reserved and always reads as 0.
	FlagAF = 1 << 4
	// bit 5 is reserved and always reads as 0.
	FlagZF = 1 << 6
	FlagSF = 1 << 7
	FlagTF = 1 << 8
	FlagIF = 1 << 9
	FlagDF = 1 << 10
	FlagOF = 1 << 11
	// bits 12-15 are reserved and always read as 1 on the 8086.
)

const (
	flagsAlwaysSet   = 1<<1 | 0xF000
	flagsAlwaysClear = 1<<3 | 1<<5
)

// Width tags a byte or word operand/register access.
type Width int

const (
	WidthByte Width = iota
	WidthWord
)

// CPU is the 8086/8088 instruction execution engine.
type CPU struct {
	regs [8]uint16 // AX, CX, DX, BX, SP, BP, SI, DI
	segs [4]uint16 // ES, CS, SS, DS
	ip   uint16
	flags uint16

	Halted bool
	Cycles uint64

	bus Bus

	interruptHandler InterruptHandler
	beforeInstr      InstructionHook

	// External maskable-interrupt source (typically the PIC). Polled
	// between instructions when IF=1.
	irqSource PICSource

	// pendingFault is set by raiseFault when a handler raises an internal
	// fault (DIV-by-zero, AAM-by-zero) mid-execution, so Step can propagate
	// the terminal Status even though Handler itself returns nothing.
	pendingFault Status

	// Current instruction decode state, valid only while a handler is
	// running inside Step.
	prefixSeg    int // -1 = none, else SegES/SegCS/SegSS/SegDS
	prefixRep    int // 0 = none, 1 = REP/REPE, 2 = REPNE
	modrm        byte
	modrmLoaded  bool
	eaLoaded     bool
	eaSeg        uint16
	eaOff        uint16
	prefixes     staticVector[byte]
}

// PICSource is the subset of PIC behavior the CPU needs to poll for a
// pending maskable interrupt and acknowledge it.
type PICSource interface {
	// HasPendingInterrupt reports whether an unmasked IRQ is pending.
	HasPendingInterrupt() bool
	// Acknowledge moves the highest-priority pending IRQ from IRR to ISR
	// and returns its vector number.
	Acknowledge() byte
}

// NewCPU constructs a CPU wired to the given bus. The interrupt handler and
// IRQ source may be attached later via SetInterruptHandler/SetIRQSource.
func NewCPU(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset restores power-on CPU state: IP=0, CS=0xFFFF (traditional PC reset
// vector), flags with only the fixed reserved bits set, all other state
// zeroed.
func (c *CPU) Reset() {
	for i := range c.regs {
		c.regs[i] = 0
	}
	for i := range c.segs {
		c.segs[i] = 0
	}
	c.segs[SegCS] = 0xFFFF
	c.ip = 0
	c.flags = flagsAlwaysSet
	c.Halted = false
	c.Cycles = 0
	c.prefixSeg = -1
	c.prefixRep = 0
	c.modrmLoaded = false
	c.prefixes = newStaticVector[byte](4)
}

func (c *CPU) SetInterruptHandler(h InterruptHandler) { c.interruptHandler = h }
func (c *CPU) SetIRQSource(p PICSource)               { c.irqSource = p }
func (c *CPU) SetInstructionHook(h InstructionHook)    { c.beforeInstr = h }

// -----------------------------------------------------------------------
// Register access
// -----------------------------------------------------------------------

func (c *CPU) Reg16(idx int) uint16     { return c.regs[idx] }
func (c *CPU) SetReg16(idx int, v uint16) { c.regs[idx] = v }

// Reg8 reads a byte register given a register index and the canonical
// 8086 byte-register encoding (0-3 = low half of AX/CX/DX/BX, 4-7 = high
// half of AX/CX/DX/BX), matching spec's "register index + byte offset 0 or
// 8" operand-address model.
func (c *CPU) Reg8(encoding byte) byte {
	idx := int(encoding & 3)
	if encoding < 4 {
		return byte(c.regs[idx])
	}
	return byte(c.regs[idx] >> 8)
}

func (c *CPU) SetReg8(encoding byte, v byte) {
	idx := int(encoding & 3)
	if encoding < 4 {
		c.regs[idx] = (c.regs[idx] &^ 0x00FF) | uint16(v)
	} else {
		c.regs[idx] = (c.regs[idx] &^ 0xFF00) | (uint16(v) << 8)
	}
}

func (c *CPU) Seg(idx int) uint16      { return c.segs[idx] }
func (c *CPU) SetSeg(idx int, v uint16) { c.segs[idx] = v }

func (c *CPU) AX() uint16    { return c.regs[RegAX] }
func (c *CPU) SetAX(v uint16) { c.regs[RegAX] = v }
func (c *CPU) AL() byte      { return byte(c.regs[RegAX]) }
func (c *CPU) SetAL(v byte)  { c.regs[RegAX] = (c.regs[RegAX] &^ 0xFF) | uint16(v) }
func (c *CPU) AH() byte      { return byte(c.regs[RegAX] >> 8) }
func (c *CPU) SetAH(v byte)  { c.regs[RegAX] = (c.regs[RegAX] & 0xFF) | uint16(v)<<8 }

func (c *CPU) BX() uint16    { return c.regs[RegBX] }
func (c *CPU) SetBX(v uint16) { c.regs[RegBX] = v }
func (c *CPU) BL() byte      { return byte(c.regs[RegBX]) }
func (c *CPU) SetBL(v byte)  { c.regs[RegBX] = (c.regs[RegBX] &^ 0xFF) | uint16(v) }
func (c *CPU) BH() byte      { return byte(c.regs[RegBX] >> 8) }
func (c *CPU) SetBH(v byte)  { c.regs[RegBX] = (c.regs[RegBX] & 0xFF) | uint16(v)<<8 }
func (c *CPU) CX() uint16    { return c.regs[RegCX] }
func (c *CPU) SetCX(v uint16) { c.regs[RegCX] = v }
func (c *CPU) CL() byte      { return byte(c.regs[RegCX]) }
func (c *CPU) SetCL(v byte)  { c.regs[RegCX] = (c.regs[RegCX] &^ 0xFF) | uint16(v) }
func (c *CPU) CH() byte      { return byte(c.regs[RegCX] >> 8) }
func (c *CPU) SetCH(v byte)  { c.regs[RegCX] = (c.regs[RegCX] & 0xFF) | uint16(v)<<8 }
func (c *CPU) DX() uint16    { return c.regs[RegDX] }
func (c *CPU) SetDX(v uint16) { c.regs[RegDX] = v }
func (c *CPU) DL() byte      { return byte(c.regs[RegDX]) }
func (c *CPU) SetDL(v byte)  { c.regs[RegDX] = (c.regs[RegDX] &^ 0xFF) | uint16(v) }
func (c *CPU) DH() byte      { return byte(c.regs[RegDX] >> 8) }
func (c *CPU) SetDH(v byte)  { c.regs[RegDX] = (c.regs[RegDX] & 0xFF) | uint16(v)<<8 }
func (c *CPU) SP() uint16    { return c.regs[RegSP] }
func (c *CPU) SetSP(v uint16) { c.regs[RegSP] = v }
func (c *CPU) BP() uint16    { return c.regs[RegBP] }
func (c *CPU) SetBP(v uint16) { c.regs[RegBP] = v }
func (c *CPU) SI() uint16    { return c.regs[RegSI] }
func (c *CPU) SetSI(v uint16) { c.regs[RegSI] = v }
func (c *CPU) DI() uint16    { return c.regs[RegDI] }
func (c *CPU) SetDI(v uint16) { c.regs[RegDI] = v }

func (c *CPU) CS() uint16    { return c.segs[SegCS] }
func (c *CPU) SetCS(v uint16) { c.segs[SegCS] = v }
func (c *CPU) DS() uint16    { return c.segs[SegDS] }
func (c *CPU) SetDS(v uint16) { c.segs[SegDS] = v }
func (c *CPU) ES() uint16    { return c.segs[SegES] }
func (c *CPU) SetES(v uint16) { c.segs[SegES] = v }
func (c *CPU) SS() uint16    { return c.segs[SegSS] }
func (c *CPU) SetSS(v uint16) { c.segs[SegSS] = v }

func (c *CPU) IP() uint16     { return c.ip }
func (c *CPU) SetIP(v uint16) { c.ip = v }

func (c *CPU) Flags() uint16 { return c.flags }
func (c *CPU) SetFlags(v uint16) {
	c.flags = (v | flagsAlwaysSet) &^ flagsAlwaysClear
}

func (c *CPU) getFlag(mask uint16) bool { return c.flags&mask != 0 }
func (c *CPU) setFlag(mask uint16, set bool) {
	if set {
		c.flags |= mask
	} else {
		c.flags &^= mask
	}
	c.flags = (c.flags | flagsAlwaysSet) &^ flagsAlwaysClear
}

func (c *CPU) CF() bool { return c.getFlag(FlagCF) }
func (c *CPU) PF() bool { return c.getFlag(FlagPF) }
func (c *CPU) AF() bool { return c.getFlag(FlagAF) }
func (c *CPU) ZF() bool { return c.getFlag(FlagZF) }
func (c *CPU) SF() bool { return c.getFlag(FlagSF) }
func (c *CPU) TF() bool { return c.getFlag(FlagTF) }
func (c *CPU) IF() bool { return c.getFlag(FlagIF) }
func (c *CPU) DF() bool { return c.getFlag(FlagDF) }
func (c *CPU) OF() bool { return c.getFlag(FlagOF) }

// -----------------------------------------------------------------------
// Memory and bus access
// -----------------------------------------------------------------------

// physicalAddress computes (segment<<4)+offset truncated to 20 bits, per
// spec's segmented-address-arithmetic design note: always compute at
// 20-bit width, never via host pointer arithmetic.
func physicalAddress(segment, offset uint16) uint32 {
	return (uint32(segment)<<4 + uint32(offset)) & 0xFFFFF
}

func (c *CPU) readByte(seg, off uint16) byte {
	return c.bus.ReadByte(physicalAddress(seg, off))
}

func (c *CPU) writeByte(seg, off uint16, v byte) {
	c.bus.WriteByte(physicalAddress(seg, off), v)
}

// MemRead8/MemWrite8 expose segment:offset byte access for host-facing code
// such as the BIOS service layer, which needs to read/write guest memory
// outside of instruction execution.
func (c *CPU) MemRead8(seg, off uint16) byte      { return c.readByte(seg, off) }
func (c *CPU) MemWrite8(seg, off uint16, v byte)  { c.writeByte(seg, off, v) }

func (c *CPU) readWord(seg, off uint16) uint16 {
	lo := c.bus.ReadByte(physicalAddress(seg, off))
	hi := c.bus.ReadByte(physicalAddress(seg, off+1))
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) writeWord(seg, off uint16, v uint16) {
	c.bus.WriteByte(physicalAddress(seg, off), byte(v))
	c.bus.WriteByte(physicalAddress(seg, off+1), byte(v>>8))
}

// fetch8 reads the byte at CS:IP and advances IP.
func (c *CPU) fetch8() byte {
	v := c.readByte(c.segs[SegCS], c.ip)
	c.ip++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) push16(v uint16) {
	c.regs[RegSP] -= 2
	c.writeWord(c.segs[SegSS], c.regs[RegSP], v)
}

func (c *CPU) pop16() uint16 {
	v := c.readWord(c.segs[SegSS], c.regs[RegSP])
	c.regs[RegSP] += 2
	return v
}
