// cpu_8086_decode.go - opcode metadata table and non-consuming decoder
//
// The opcode table's shape is grounded on cpu_x86.go's
// baseOps [256]func(*CPU_X86) dispatch array, generalized to carry the
// metadata spec §4.1 requires as an explicit side table (has-ModR/M,
// immediate size, default width) rather than leaving it implicit in each
// handler body.

package main

// OpcodeInfo describes one of the 256 first-byte opcode slots.
type OpcodeInfo struct {
	Opcode       byte
	HasModRM     bool
	ImmSize      int // 0, 1, 2, or 4 (4 only for far JMP/CALL ptr16:16)
	DefaultWidth Width
	Handler      func(*CPU)
}

var opcodeTable [256]OpcodeInfo

// isPrefixByte reports whether b is one of the seven 8086 prefix bytes:
// four segment overrides, operand/repeat prefixes are not modeled for the
// 8086 (0x66/0x67 are 386+); LOCK/REPNE/REP round out the set per spec.
func isPrefixByte(b byte) bool {
	switch b {
	case 0x26, 0x2E, 0x36, 0x3E, 0xF0, 0xF2, 0xF3:
		return true
	}
	return false
}

func segOverrideFor(b byte) int {
	switch b {
	case 0x26:
		return SegES
	case 0x2E:
		return SegCS
	case 0x36:
		return SegSS
	case 0x3E:
		return SegDS
	}
	return -1
}

// Instruction is the decoded-instruction data model from spec §3: prefix
// bytes, opcode, optional ModR/M fields, displacement, immediate, and the
// total encoded size. Produced by Decode, consumed by tests and the
// optional instruction hook (SetInstructionHook); never stored by the CPU
// itself.
type Instruction struct {
	Prefixes    []byte
	Opcode      byte
	HasModRM    bool
	Mod, Reg, RM byte
	DispSize    int
	Disp        int16
	ImmSize     int
	Imm         uint32
	Size        int
}

// peekReader is a cursor over a Bus that does not mutate CPU state; used
// only by Decode.
type peekReader struct {
	bus    Bus
	cs     uint16
	ip     uint16
	origIP uint16
}

func (p *peekReader) u8() byte {
	v := p.bus.ReadByte(physicalAddress(p.cs, p.ip))
	p.ip++
	return v
}

func (p *peekReader) u16() uint16 {
	lo := p.u8()
	hi := p.u8()
	return uint16(lo) | uint16(hi)<<8
}

// Decode performs a non-consuming scan of the instruction at cs:ip,
// returning its structural data without touching CPU register state. It
// mirrors exactly the grammar Step applies when it actually executes, so
// Decode(...).Size always equals the number of bytes Step consumes for the
// same bytes.
func Decode(bus Bus, cs, ip uint16) (Instruction, bool) {
	p := &peekReader{bus: bus, cs: cs, ip: ip, origIP: ip}
	var instr Instruction

	for {
		b := p.u8()
		if isPrefixByte(b) {
			if instr.Prefixes == nil {
				instr.Prefixes = make([]byte, 0, 4)
			}
			if len(instr.Prefixes) >= 4 {
				return instr, false
			}
			instr.Prefixes = append(instr.Prefixes, b)
			continue
		}
		instr.Opcode = b
		break
	}

	info := opcodeTable[instr.Opcode]
	if info.Handler == nil {
		instr.Size = int(p.ip - p.origIP)
		return instr, false
	}

	instr.HasModRM = info.HasModRM
	if info.HasModRM {
		modrm := p.u8()
		instr.Mod = (modrm >> 6) & 3
		instr.Reg = (modrm >> 3) & 7
		instr.RM = modrm & 7

		switch {
		case instr.Mod == 0 && instr.RM == 6:
			instr.DispSize = 2
			instr.Disp = int16(p.u16())
		case instr.Mod == 0:
			instr.DispSize = 0
		case instr.Mod == 1:
			instr.DispSize = 1
			instr.Disp = int16(int8(p.u8()))
		case instr.Mod == 2:
			instr.DispSize = 2
			instr.Disp = int16(p.u16())
		case instr.Mod == 3:
			instr.DispSize = 0
		}
	}

	instr.ImmSize = info.ImmSize
	if (instr.Opcode == 0xF6 || instr.Opcode == 0xF7) && instr.HasModRM && instr.Reg <= 1 {
		instr.ImmSize = 1 + int(instr.Opcode&1) // TEST Eb,Ib / TEST Ev,Iv
	}
	switch instr.ImmSize {
	case 1:
		instr.Imm = uint32(p.u8())
	case 2:
		instr.Imm = uint32(p.u16())
	case 4:
		lo := p.u16()
		hi := p.u16()
		instr.Imm = uint32(lo) | uint32(hi)<<16
	}

	instr.Size = int(p.ip - p.origIP)
	return instr, true
}
