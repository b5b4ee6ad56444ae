// cpu_8086_table.go - opcode table population
//
// Grounded on cpu_x86.go's initBaseOps, which populates the 256-entry
// dispatch table in a single init function grouped by instruction family.
// This version additionally carries the HasModRM/ImmSize/DefaultWidth
// metadata Decode needs.

package main

func init() {
	reg := func(op byte, hasModRM bool, imm int, width Width, h func(*CPU)) {
		opcodeTable[op] = OpcodeInfo{Opcode: op, HasModRM: hasModRM, ImmSize: imm, DefaultWidth: width, Handler: h}
	}

	// --- ALU rows: ADD/OR/ADC/SBB/AND/SUB/XOR/CMP, each a row of 8 ---
	aluBase := []byte{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}
	for i, base := range aluBase {
		op := byte(i)
		reg(base+0, true, 0, WidthByte, aluHandlerEbGb(op))
		reg(base+1, true, 0, WidthWord, aluHandlerEvGv(op))
		reg(base+2, true, 0, WidthByte, aluHandlerGbEb(op))
		reg(base+3, true, 0, WidthWord, aluHandlerGvEv(op))
		reg(base+4, false, 1, WidthByte, aluHandlerALIb(op))
		reg(base+5, false, 2, WidthWord, aluHandlerAXIv(op))
	}
	// 0x0F is a two-byte escape on later CPUs; on the 8086 it is POP CS,
	// registered with the segment PUSH/POP group below.
	// 0x26/0x2E/0x36/0x3E segment override prefixes handled in Step directly.
	// 0x27/0x2F/0x37/0x3F DAA/DAS/AAA/AAS
	reg(0x27, false, 0, WidthByte, (*CPU).opDAA)
	reg(0x2F, false, 0, WidthByte, (*CPU).opDAS)
	reg(0x37, false, 0, WidthByte, (*CPU).opAAA)
	reg(0x3F, false, 0, WidthByte, (*CPU).opAAS)

	// --- INC/DEC reg (0x40-0x4F) ---
	for r := 0; r < 8; r++ {
		reg(0x40+byte(r), false, 0, WidthWord, incReg(r))
		reg(0x48+byte(r), false, 0, WidthWord, decReg(r))
	}

	// --- PUSH/POP reg (0x50-0x5F) ---
	for r := 0; r < 8; r++ {
		reg(0x50+byte(r), false, 0, WidthWord, pushReg(r))
		reg(0x58+byte(r), false, 0, WidthWord, popReg(r))
	}

	// --- PUSH/POP segreg (ES 0x06/0x07, CS 0x0E/0x0F, SS 0x16/0x17, DS 0x1E/0x1F) ---
	reg(0x06, false, 0, WidthWord, pushSeg(SegES))
	reg(0x07, false, 0, WidthWord, popSeg(SegES))
	reg(0x0E, false, 0, WidthWord, pushSeg(SegCS))
	reg(0x0F, false, 0, WidthWord, popSeg(SegCS))
	reg(0x16, false, 0, WidthWord, pushSeg(SegSS))
	reg(0x17, false, 0, WidthWord, popSeg(SegSS))
	reg(0x1E, false, 0, WidthWord, pushSeg(SegDS))
	reg(0x1F, false, 0, WidthWord, popSeg(SegDS))

	// --- conditional jumps (0x70-0x7F) ---
	for cc := byte(0); cc < 16; cc++ {
		reg(0x70+cc, false, 1, WidthByte, jcc(cc))
	}

	// --- Group 1 immediate ALU (0x80-0x83) ---
	reg(0x80, true, 1, WidthByte, (*CPU).opGrp1_Eb_Ib)
	reg(0x81, true, 2, WidthWord, (*CPU).opGrp1_Ev_Iv)
	reg(0x83, true, 1, WidthWord, (*CPU).opGrp1_Ev_Ib)

	// --- TEST/XCHG/MOV (0x84-0x8F) ---
	reg(0x84, true, 0, WidthByte, func(c *CPU) {
		c.fetchModRM()
		a := c.readRM8()
		b := c.Reg8(c.modRMReg())
		c.setFlagsLogic8(a & b)
	})
	reg(0x85, true, 0, WidthWord, func(c *CPU) {
		c.fetchModRM()
		a := c.readRM16()
		b := c.Reg16(int(c.modRMReg()))
		c.setFlagsLogic16(a & b)
	})
	reg(0x86, true, 0, WidthByte, (*CPU).opXCHG_Eb_Gb)
	reg(0x87, true, 0, WidthWord, (*CPU).opXCHG_Ev_Gv)
	reg(0x88, true, 0, WidthByte, (*CPU).opMOV_Eb_Gb)
	reg(0x89, true, 0, WidthWord, (*CPU).opMOV_Ev_Gv)
	reg(0x8A, true, 0, WidthByte, (*CPU).opMOV_Gb_Eb)
	reg(0x8B, true, 0, WidthWord, (*CPU).opMOV_Gv_Ev)
	reg(0x8C, true, 0, WidthWord, (*CPU).opMOV_Ew_Sw)
	reg(0x8D, true, 0, WidthWord, (*CPU).opLEA)
	reg(0x8E, true, 0, WidthWord, (*CPU).opMOV_Sw_Ew)
	reg(0x8F, true, 0, WidthWord, (*CPU).opPOP_Ev)

	// --- NOP/XCHG AX,reg (0x90-0x97) ---
	reg(0x90, false, 0, WidthWord, (*CPU).opNOP)
	for r := 1; r < 8; r++ {
		reg(0x90+byte(r), false, 0, WidthWord, xchgAXReg(r))
	}

	// --- CBW/CWD, far CALL, WAIT, PUSHF/POPF/SAHF/LAHF (0x98-0x9F) ---
	reg(0x98, false, 0, WidthWord, (*CPU).opCBW)
	reg(0x99, false, 0, WidthWord, (*CPU).opCWD)
	reg(0x9A, false, 4, WidthWord, (*CPU).opCALL_far)
	reg(0x9B, false, 0, WidthByte, (*CPU).opWAIT)
	reg(0x9C, false, 0, WidthWord, (*CPU).opPUSHF)
	reg(0x9D, false, 0, WidthWord, (*CPU).opPOPF)
	reg(0x9E, false, 0, WidthByte, (*CPU).opSAHF)
	reg(0x9F, false, 0, WidthByte, (*CPU).opLAHF)

	// --- direct-address MOV, string ops (0xA0-0xBF) ---
	reg(0xA0, false, 2, WidthByte, (*CPU).opMOV_AL_direct)
	reg(0xA1, false, 2, WidthWord, (*CPU).opMOV_AX_direct)
	reg(0xA2, false, 2, WidthByte, (*CPU).opMOV_direct_AL)
	reg(0xA3, false, 2, WidthWord, (*CPU).opMOV_direct_AX)
	reg(0xA4, false, 0, WidthByte, (*CPU).opMOVSB)
	reg(0xA5, false, 0, WidthWord, (*CPU).opMOVSW)
	reg(0xA6, false, 0, WidthByte, (*CPU).opCMPSB)
	reg(0xA7, false, 0, WidthWord, (*CPU).opCMPSW)
	reg(0xA8, false, 1, WidthByte, func(c *CPU) {
		b := c.fetch8()
		c.setFlagsLogic8(c.AL() & b)
	})
	reg(0xA9, false, 2, WidthWord, func(c *CPU) {
		b := c.fetch16()
		c.setFlagsLogic16(c.AX() & b)
	})
	reg(0xAA, false, 0, WidthByte, (*CPU).opSTOSB)
	reg(0xAB, false, 0, WidthWord, (*CPU).opSTOSW)
	reg(0xAC, false, 0, WidthByte, (*CPU).opLODSB)
	reg(0xAD, false, 0, WidthWord, (*CPU).opLODSW)
	reg(0xAE, false, 0, WidthByte, (*CPU).opSCASB)
	reg(0xAF, false, 0, WidthWord, (*CPU).opSCASW)

	for r := byte(0); r < 8; r++ {
		reg(0xB0+r, false, 1, WidthByte, movRegImm8(r))
	}
	for r := 0; r < 8; r++ {
		reg(0xB8+byte(r), false, 2, WidthWord, movRegImm16(r))
	}

	// --- Group 2 shift/rotate, RET, LES/LDS, MOV Eb/Ev,Ib/Iv (0xC0-0xCF) ---
	reg(0xC0, true, 1, WidthByte, (*CPU).opGrp2_Eb_Ib)
	reg(0xC1, true, 1, WidthWord, (*CPU).opGrp2_Ev_Ib)
	reg(0xC2, false, 2, WidthWord, (*CPU).opRET_near_Iw)
	reg(0xC3, false, 0, WidthWord, (*CPU).opRET_near)
	reg(0xC4, true, 0, WidthWord, (*CPU).opLES)
	reg(0xC5, true, 0, WidthWord, (*CPU).opLDS)
	reg(0xC6, true, 1, WidthByte, (*CPU).opMOV_Eb_Ib)
	reg(0xC7, true, 2, WidthWord, (*CPU).opMOV_Ev_Iv)
	reg(0xCA, false, 2, WidthWord, (*CPU).opRET_far_Iw)
	reg(0xCB, false, 0, WidthWord, (*CPU).opRET_far)
	reg(0xCC, false, 0, WidthByte, (*CPU).opINT3)
	reg(0xCD, false, 1, WidthByte, (*CPU).opINT_Ib)
	reg(0xCE, false, 0, WidthByte, (*CPU).opINTO)
	reg(0xCF, false, 0, WidthWord, (*CPU).opIRET)

	// --- Group 2 shift/rotate by 1/CL, AAM/AAD, XLAT (0xD0-0xD7) ---
	reg(0xD0, true, 0, WidthByte, (*CPU).opGrp2_Eb_1)
	reg(0xD1, true, 0, WidthWord, (*CPU).opGrp2_Ev_1)
	reg(0xD2, true, 0, WidthByte, (*CPU).opGrp2_Eb_CL)
	reg(0xD3, true, 0, WidthWord, (*CPU).opGrp2_Ev_CL)
	reg(0xD4, false, 1, WidthByte, (*CPU).opAAM)
	reg(0xD5, false, 1, WidthByte, (*CPU).opAAD)
	reg(0xD7, false, 0, WidthByte, (*CPU).opXLAT)

	// 0xD8-0xDF: x87 ESC opcodes - no FPU on this platform; treated as
	// invalid opcodes (left unset, Handler == nil).

	// --- LOOP/JCXZ, IN/OUT immediate (0xE0-0xE7) ---
	reg(0xE0, false, 1, WidthByte, (*CPU).opLOOPNE)
	reg(0xE1, false, 1, WidthByte, (*CPU).opLOOPE)
	reg(0xE2, false, 1, WidthByte, (*CPU).opLOOP)
	reg(0xE3, false, 1, WidthByte, (*CPU).opJCXZ)
	reg(0xE4, false, 1, WidthByte, (*CPU).opIN_AL_Ib)
	reg(0xE5, false, 1, WidthWord, (*CPU).opIN_AX_Ib)
	reg(0xE6, false, 1, WidthByte, (*CPU).opOUT_Ib_AL)
	reg(0xE7, false, 1, WidthWord, (*CPU).opOUT_Ib_AX)

	// --- CALL/JMP (near/far/short), IN/OUT DX (0xE8-0xEF) ---
	reg(0xE8, false, 2, WidthWord, (*CPU).opCALL_rel16)
	reg(0xE9, false, 2, WidthWord, (*CPU).opJMP_rel16)
	reg(0xEA, false, 4, WidthWord, (*CPU).opJMP_far)
	reg(0xEB, false, 1, WidthByte, (*CPU).opJMP_rel8)
	reg(0xEC, false, 0, WidthByte, (*CPU).opIN_AL_DX)
	reg(0xED, false, 0, WidthWord, (*CPU).opIN_AX_DX)
	reg(0xEE, false, 0, WidthByte, (*CPU).opOUT_DX_AL)
	reg(0xEF, false, 0, WidthWord, (*CPU).opOUT_DX_AX)

	// 0xF0 LOCK, 0xF2 REPNE, 0xF3 REP handled as prefixes in Step.
	reg(0xF4, false, 0, WidthByte, (*CPU).opHLT)
	reg(0xF5, false, 0, WidthByte, (*CPU).opCMC)
	reg(0xF6, true, 0, WidthByte, (*CPU).opGrp3_Eb)
	reg(0xF7, true, 0, WidthWord, (*CPU).opGrp3_Ev)
	reg(0xF8, false, 0, WidthByte, (*CPU).opCLC)
	reg(0xF9, false, 0, WidthByte, (*CPU).opSTC)
	reg(0xFA, false, 0, WidthByte, (*CPU).opCLI)
	reg(0xFB, false, 0, WidthByte, (*CPU).opSTI)
	reg(0xFC, false, 0, WidthByte, (*CPU).opCLD)
	reg(0xFD, false, 0, WidthByte, (*CPU).opSTD)
	reg(0xFE, true, 0, WidthByte, func(c *CPU) {
		c.fetchModRM()
		switch c.modRMReg() {
		case 0:
			c.writeRM8(c.inc8(c.readRM8()))
		case 1:
			c.writeRM8(c.dec8(c.readRM8()))
		}
	})
	reg(0xFF, true, 0, WidthWord, (*CPU).opGrp5)
}
