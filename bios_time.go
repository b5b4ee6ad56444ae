// bios_time.go - INT 1Ah time-of-day service
//
// Grounded on spec.md §4.10 ("read and set tick counter; cheap RTC
// service"). The BDA's midnight tick counter is advanced externally by the
// PIT's channel-0 IRQ0 handler (see component_reset.go); this service only
// exposes the read/set/clear-overflow contract.

package main

func (b *BIOS) int1ATime(cpu *CPU) InterruptResult {
	switch cpu.AH() {
	case 0x00:
		b.timeReadTicks(cpu)
	case 0x01:
		b.timeSetTicks(cpu)
	default:
		return InterruptUnhandled
	}
	return InterruptHandled
}

func (b *BIOS) timeReadTicks(cpu *CPU) {
	ticks := b.bda.TimerTicks()
	cpu.SetCX(uint16(ticks >> 16))
	cpu.SetDX(uint16(ticks))
	if b.bda.TimerOverflow() {
		cpu.SetAL(1)
		b.bda.SetTimerOverflow(false)
	} else {
		cpu.SetAL(0)
	}
}

func (b *BIOS) timeSetTicks(cpu *CPU) {
	ticks := uint32(cpu.CX())<<16 | uint32(cpu.DX())
	b.bda.SetTimerTicks(ticks)
	b.bda.SetTimerOverflow(false)
}
