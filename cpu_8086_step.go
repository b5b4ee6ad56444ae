// cpu_8086_step.go - the CPU main loop
//
// Grounded on cpu_x86.go's Step(): reset prefix state, collect prefixes in
// a loop, dispatch through the opcode table, tick the bus. Generalized to
// poll an injected PICSource for priority-arbitrated external interrupts
// instead of the teacher's single atomic IRQ line, and to vector through
// the real-mode interrupt vector table instead of being a 386 no-op.

package main

// Step executes a single instruction, honoring a pending external
// interrupt first if IF=1, per spec §4.3/§5 ("between instructions, if
// IF is set and the PIC reports a pending interrupt, the CPU acknowledges
// it and vectors").
func (c *CPU) Step() Status {
	if c.Halted {
		if c.irqSource != nil && c.irqSource.HasPendingInterrupt() {
			c.Halted = false
		} else {
			return StatusHalt
		}
	}

	if c.IF() && c.irqSource != nil && c.irqSource.HasPendingInterrupt() {
		vector := c.irqSource.Acknowledge()
		c.deliverInterrupt(vector)
	}

	c.prefixSeg = -1
	c.prefixRep = 0
	c.modrmLoaded = false
	c.eaLoaded = false
	c.prefixes.Clear()
	c.pendingFault = StatusOK

	startIP := c.ip
	if c.beforeInstr != nil {
		if instr, ok := Decode(c.bus, c.segs[SegCS], startIP); ok {
			c.beforeInstr(c, &instr)
		}
	}

	var status Status = StatusOK
	for {
		opcode := c.fetch8()
		switch opcode {
		case 0x26:
			c.prefixSeg = SegES
		case 0x2E:
			c.prefixSeg = SegCS
		case 0x36:
			c.prefixSeg = SegSS
		case 0x3E:
			c.prefixSeg = SegDS
		case 0xF0: // LOCK - no-op; single-threaded core has no bus contention
		case 0xF2:
			c.prefixRep = 2
		case 0xF3:
			c.prefixRep = 1
		default:
			info := opcodeTable[opcode]
			if info.Handler == nil {
				c.ip = startIP
				status = c.raiseFault(6) // invalid opcode
				goto dispatched
			}
			info.Handler(c)
			if c.pendingFault != StatusOK {
				status = c.pendingFault
			}
			goto dispatched
		}
		if !c.prefixes.Push(opcode) {
			c.ip = startIP
			status = c.raiseFault(6)
			goto dispatched
		}
	}
dispatched:

	if c.Halted {
		return StatusHalt
	}
	if status == StatusOK && c.TF() {
		c.deliverInterrupt(1)
	}
	return status
}

// raiseFault delivers a CPU-internal fault (invalid opcode, divide error)
// without executing the faulting instruction's side effects, and reports
// the corresponding terminal Status for this Step call.
func (c *CPU) raiseFault(vector byte) Status {
	c.deliverInterrupt(vector)
	var s Status
	switch vector {
	case 6:
		s = StatusInvalidOpcode
	case 0:
		s = StatusDivideByZero
	default:
		s = StatusOK
	}
	c.pendingFault = s
	return s
}

// deliverInterrupt performs the INT n sequence: push FLAGS, clear IF/TF,
// push CS, push IP, then load CS:IP from the vector table at n*4. If an
// external interrupt handler is attached, it is consulted first; it may
// fully service the interrupt (InterruptHandled), decline
// (InterruptUnhandled, falls through to the vector table), request a halt,
// or report a fatal condition.
func (c *CPU) deliverInterrupt(vector byte) Status {
	if c.interruptHandler != nil {
		switch c.interruptHandler.HandleInterrupt(c, vector) {
		case InterruptHandled:
			return StatusOK
		case InterruptHalt:
			c.Halted = true
			return StatusHalt
		case InterruptFatal:
			return StatusBusError
		case InterruptUnhandled:
			// fall through to default vectoring
		}
	}

	c.push16(c.flags)
	c.push16(c.segs[SegCS])
	c.push16(c.ip)
	c.setFlag(FlagIF, false)
	c.setFlag(FlagTF, false)

	addr := uint32(vector) * 4
	newIP := uint16(c.bus.ReadByte(addr)) | uint16(c.bus.ReadByte(addr+1))<<8
	newCS := uint16(c.bus.ReadByte(addr+2)) | uint16(c.bus.ReadByte(addr+3))<<8
	c.ip = newIP
	c.segs[SegCS] = newCS
	return StatusUnhandledInterrupt
}
