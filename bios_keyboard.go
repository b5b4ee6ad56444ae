// bios_keyboard.go - INT 16h keyboard services
//
// Grounded on spec.md §4.10 ("read char (blocking via keyboard buffer in
// BDA), char-available, shift-status") and the BDA keyboard ring this core
// maintains in bda.go.

package main

func (b *BIOS) int16Keyboard(cpu *CPU) InterruptResult {
	switch cpu.AH() {
	case 0x00:
		b.keyboardReadChar(cpu)
	case 0x01:
		b.keyboardCharAvailable(cpu)
	case 0x02:
		b.keyboardShiftStatus(cpu)
	default:
		return InterruptUnhandled
	}
	return InterruptHandled
}

// keyboardReadChar removes the oldest keystroke from the BDA buffer and
// returns it in AL (ASCII) and AH (scancode). It does not wait: with an
// empty buffer it returns AX=0 at once, and the caller cannot tell that
// result from a keystroke whose scancode and ASCII are both 0.
func (b *BIOS) keyboardReadChar(cpu *CPU) {
	scancode, ascii, ok := b.bda.PopKeystroke()
	if !ok {
		cpu.SetAX(0)
		return
	}
	cpu.SetAL(ascii)
	cpu.SetAH(scancode)
}

func (b *BIOS) keyboardCharAvailable(cpu *CPU) {
	if !b.bda.KeystrokeAvailable() {
		cpu.setFlag(FlagZF, true)
		return
	}
	cpu.setFlag(FlagZF, false)
	scancode, ascii, _ := b.bda.PeekKeystroke()
	cpu.SetAL(ascii)
	cpu.SetAH(scancode)
}

func (b *BIOS) keyboardShiftStatus(cpu *CPU) {
	cpu.SetAL(b.bda.KeyboardStatus1())
}
