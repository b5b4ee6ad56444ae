// bios_keyboard_irq.go - INT 09h keyboard hardware-interrupt handler
//
// Grounded on spec.md §4.7's keyboard/PPI wiring (scancode latched into
// Port A, IRQ1 raised) and §4.10's requirement that INT 16h read from a BDA
// keyboard buffer: something has to be the producer side of that buffer.
// original_source's BIOS interrupt table leaves vector 0x09 unimplemented
// (yax86/src/bios/interrupts.c), so this handler and its scancode table are
// this core's own addition, in the style of the other bios_*.go handlers.

package main

// Keyboard status byte 1 (BDA 40:17h) shift-state bits this core tracks.
const (
	kbStatusRightShift = 1 << 0
	kbStatusLeftShift  = 1 << 1
)

const (
	scancodeLeftShift  = 0x2A
	scancodeRightShift = 0x36
	scancodeBreakBit   = 0x80
)

// int09Keyboard services the IRQ1 vector: it reads back the scancode the
// keyboard just latched into the PPI's Port A, updates the shift state,
// and (for any make code other than a shift key) queues it into the BDA
// keyboard buffer that INT 16h drains; keys with no ASCII mapping are
// queued with ASCII 0.
func (b *BIOS) int09Keyboard(cpu *CPU) InterruptResult {
	if b.kbd == nil {
		return InterruptUnhandled
	}
	scancode := b.kbd.LastScancode()

	if scancode == keyboardSelfTestOK {
		return InterruptHandled // reset-sequence byte, not a keystroke
	}
	if scancode&scancodeBreakBit != 0 {
		b.updateShiftState(scancode&^scancodeBreakBit, false)
		return InterruptHandled
	}
	b.updateShiftState(scancode, true)
	if scancode == scancodeLeftShift || scancode == scancodeRightShift {
		return InterruptHandled // shift make codes only update the status byte
	}

	ascii := b.translateScancode(scancode)
	b.bda.PushKeystroke(scancode, ascii)
	return InterruptHandled
}

// updateShiftState tracks the left/right shift make/break codes into the
// BDA's keyboard status byte; other modifier keys (ctrl, alt, lock keys)
// are out of scope for this core's minimal INT 16h support.
func (b *BIOS) updateShiftState(scancode byte, pressed bool) {
	var bit byte
	switch scancode {
	case scancodeLeftShift:
		bit = kbStatusLeftShift
	case scancodeRightShift:
		bit = kbStatusRightShift
	default:
		return
	}
	status := b.bda.KeyboardStatus1()
	if pressed {
		status |= bit
	} else {
		status &^= bit
	}
	b.bda.SetKeyboardStatus1(status)
}

// translateScancode maps a set-1 make code to its US-layout ASCII value,
// honoring the currently tracked shift state. Scancodes with no printable
// mapping (function keys, modifiers, arrows) translate to 0; INT 16h's
// caller distinguishes these by the AH scancode byte alone.
func (b *BIOS) translateScancode(scancode byte) byte {
	if int(scancode) >= len(scancodeASCII) {
		return 0
	}
	if b.bda.KeyboardStatus1()&(kbStatusLeftShift|kbStatusRightShift) != 0 {
		return scancodeASCIIShifted[scancode]
	}
	return scancodeASCII[scancode]
}

// scancodeASCII/scancodeASCIIShifted are the US-layout set-1 make-code to
// ASCII tables, unshifted and shifted. Unmapped entries are 0.
var scancodeASCII = [0x3A]byte{
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0A: '9', 0x0B: '0',
	0x0C: '-', 0x0D: '=', 0x0E: 8, 0x0F: 9,
	0x10: 'q', 0x11: 'w', 0x12: 'e', 0x13: 'r', 0x14: 't',
	0x15: 'y', 0x16: 'u', 0x17: 'i', 0x18: 'o', 0x19: 'p',
	0x1A: '[', 0x1B: ']', 0x1C: 13,
	0x1E: 'a', 0x1F: 's', 0x20: 'd', 0x21: 'f', 0x22: 'g',
	0x23: 'h', 0x24: 'j', 0x25: 'k', 0x26: 'l', 0x27: ';',
	0x28: '\'', 0x29: '`', 0x2B: '\\',
	0x2C: 'z', 0x2D: 'x', 0x2E: 'c', 0x2F: 'v', 0x30: 'b',
	0x31: 'n', 0x32: 'm', 0x33: ',', 0x34: '.', 0x35: '/',
	0x39: ' ',
}

var scancodeASCIIShifted = [0x3A]byte{
	0x02: '!', 0x03: '@', 0x04: '#', 0x05: '$', 0x06: '%',
	0x07: '^', 0x08: '&', 0x09: '*', 0x0A: '(', 0x0B: ')',
	0x0C: '_', 0x0D: '+', 0x0E: 8, 0x0F: 9,
	0x10: 'Q', 0x11: 'W', 0x12: 'E', 0x13: 'R', 0x14: 'T',
	0x15: 'Y', 0x16: 'U', 0x17: 'I', 0x18: 'O', 0x19: 'P',
	0x1A: '{', 0x1B: '}', 0x1C: 13,
	0x1E: 'A', 0x1F: 'S', 0x20: 'D', 0x21: 'F', 0x22: 'G',
	0x23: 'H', 0x24: 'J', 0x25: 'K', 0x26: 'L', 0x27: ':',
	0x28: '"', 0x29: '~', 0x2B: '|',
	0x2C: 'Z', 0x2D: 'X', 0x2E: 'C', 0x2F: 'V', 0x30: 'B',
	0x31: 'N', 0x32: 'M', 0x33: '<', 0x34: '>', 0x35: '?',
	0x39: ' ',
}
