// bda.go - BIOS Data Area field table
//
// No teacher analogue; the byte offsets below are reproduced verbatim from
// original_source/src/bios/bda.c's BDAFieldMetadataTable, per SPEC_FULL.md
// §4's instruction to supplement spec.md's "well-known fields" with the
// full table. BDA lives inside conventional RAM at physical 0x400, so
// every accessor here is a thin offset calculation over the platform's RAM
// device rather than a separate storage area.

package main

const bdaBase = 0x400

// Field offsets, relative to bdaBase, reproduced from bda.c.
const (
	bdaSerialPortAddress          = 0x00 // 4 x word, ports 1-4
	bdaParallelPortAddress        = 0x08 // 4 x word, ports 1-4
	bdaEquipmentWord              = 0x10 // word
	bdaPOSTStatus                 = 0x12 // byte
	bdaMemorySize                 = 0x13 // word, KiB
	bdaKeyboardStatus1            = 0x17 // byte
	bdaKeyboardStatus2            = 0x18 // byte
	bdaKeyboardBufferHead         = 0x1A // word, offset into buffer
	bdaKeyboardBufferTail         = 0x1C // word, offset into buffer
	bdaKeyboardBuffer             = 0x1E // 16 words, circular
	bdaDisketteRecalibrateStatus  = 0x3E // byte
	bdaDisketteMotorStatus        = 0x3F // byte
	bdaDisketteMotorTimeout       = 0x40 // byte
	bdaDisketteLastStatus         = 0x41 // byte
	bdaVideoMode                  = 0x49 // byte
	bdaVideoColumns               = 0x4A // word
	bdaVideoPageSize              = 0x4C // word
	bdaVideoPageOffset            = 0x4E // word
	bdaVideoCursorPos             = 0x50 // 8 x word (col, row) packed, one per page
	bdaVideoCursorType            = 0x60 // word
	bdaVideoCurrentPage           = 0x62 // byte
	bdaVideoCRTBaseAddress        = 0x63 // word
	bdaVideoModeSelect            = 0x65 // byte
	bdaTimerTicks                 = 0x6C // dword
	bdaTimerOverflow              = 0x70 // byte
	bdaKeyboardBufferStart        = 0x80 // word
	bdaKeyboardBufferEnd          = 0x82 // word
)

const (
	bdaKeyboardBufferWords = 16
	bdaKeyboardBufferBytes = bdaKeyboardBufferWords * 2
)

// BDA is a thin accessor over the platform's RAM for the fields this
// module's BIOS services read and write.
type BDA struct {
	ram *RAM
}

// NewBDA returns a BDA accessor bound to ram, and installs the fixed
// keyboard-buffer-start/end values a real BIOS sets at boot.
func NewBDA(ram *RAM) *BDA {
	b := &BDA{ram: ram}
	b.Reset()
	return b
}

// Reset reinstalls the fixed keyboard-buffer-start/end/head/tail fields a
// real BIOS POST sets; called after the backing RAM is cleared so the BDA
// doesn't need to be reallocated.
func (b *BDA) Reset() {
	b.ram.WriteWord(bdaBase+bdaKeyboardBufferStart, bdaKeyboardBuffer)
	b.ram.WriteWord(bdaBase+bdaKeyboardBufferEnd, bdaKeyboardBuffer+bdaKeyboardBufferBytes)
	b.ram.WriteWord(bdaBase+bdaKeyboardBufferHead, bdaKeyboardBuffer)
	b.ram.WriteWord(bdaBase+bdaKeyboardBufferTail, bdaKeyboardBuffer)
}

func (b *BDA) byteAt(off uint32) byte        { return b.ram.ReadMemoryByte(bdaBase + off) }
func (b *BDA) setByteAt(off uint32, v byte)  { b.ram.WriteMemoryByte(bdaBase+off, v) }
func (b *BDA) wordAt(off uint32) uint16      { return b.ram.ReadWord(bdaBase + off) }
func (b *BDA) setWordAt(off uint32, v uint16) { b.ram.WriteWord(bdaBase+off, v) }

func (b *BDA) EquipmentWord() uint16       { return b.wordAt(bdaEquipmentWord) }
func (b *BDA) SetEquipmentWord(v uint16)   { b.setWordAt(bdaEquipmentWord, v) }
func (b *BDA) MemorySizeKB() uint16        { return b.wordAt(bdaMemorySize) }
func (b *BDA) SetMemorySizeKB(v uint16)    { b.setWordAt(bdaMemorySize, v) }

func (b *BDA) VideoMode() byte      { return b.byteAt(bdaVideoMode) }
func (b *BDA) SetVideoMode(v byte)  { b.setByteAt(bdaVideoMode, v) }
func (b *BDA) VideoColumns() uint16     { return b.wordAt(bdaVideoColumns) }
func (b *BDA) SetVideoColumns(v uint16) { b.setWordAt(bdaVideoColumns, v) }
func (b *BDA) VideoPageSize() uint16     { return b.wordAt(bdaVideoPageSize) }
func (b *BDA) SetVideoPageSize(v uint16) { b.setWordAt(bdaVideoPageSize, v) }
func (b *BDA) VideoCRTBaseAddress() uint16     { return b.wordAt(bdaVideoCRTBaseAddress) }
func (b *BDA) SetVideoCRTBaseAddress(v uint16) { b.setWordAt(bdaVideoCRTBaseAddress, v) }
func (b *BDA) VideoCurrentPage() byte     { return b.byteAt(bdaVideoCurrentPage) }
func (b *BDA) SetVideoCurrentPage(v byte) { b.setByteAt(bdaVideoCurrentPage, v) }

// CursorPosition/SetCursorPosition address one of the eight per-page
// cursor slots at 0x50, packed as (column, row) bytes.
func (b *BDA) CursorPosition(page int) (col, row byte) {
	off := uint32(bdaVideoCursorPos + page*2)
	v := b.wordAt(off)
	return byte(v), byte(v >> 8)
}

func (b *BDA) SetCursorPosition(page int, col, row byte) {
	off := uint32(bdaVideoCursorPos + page*2)
	b.setWordAt(off, uint16(col)|uint16(row)<<8)
}

func (b *BDA) CursorType() uint16     { return b.wordAt(bdaVideoCursorType) }
func (b *BDA) SetCursorType(v uint16) { b.setWordAt(bdaVideoCursorType, v) }

func (b *BDA) TimerTicks() uint32 {
	lo := uint32(b.wordAt(bdaTimerTicks))
	hi := uint32(b.wordAt(bdaTimerTicks + 2))
	return lo | hi<<16
}

func (b *BDA) SetTimerTicks(v uint32) {
	b.setWordAt(bdaTimerTicks, uint16(v))
	b.setWordAt(bdaTimerTicks+2, uint16(v>>16))
}

func (b *BDA) TimerOverflow() bool     { return b.byteAt(bdaTimerOverflow) != 0 }
func (b *BDA) SetTimerOverflow(v bool) {
	if v {
		b.setByteAt(bdaTimerOverflow, 1)
	} else {
		b.setByteAt(bdaTimerOverflow, 0)
	}
}

// IncrementTimerTicks advances the midnight tick counter by one,
// wrapping and setting the overflow flag at the standard BIOS midnight
// constant of 0x1800B0 ticks/day (18.2 Hz x 86400 s), as INT 1Ah's
// set/read pair expects to observe.
const bdaTicksPerDay = 0x1800B0

func (b *BDA) IncrementTimerTicks() {
	t := b.TimerTicks() + 1
	if t >= bdaTicksPerDay {
		t = 0
		b.SetTimerOverflow(true)
	}
	b.SetTimerTicks(t)
}

func (b *BDA) DisketteMotorStatus() byte     { return b.byteAt(bdaDisketteMotorStatus) }
func (b *BDA) SetDisketteMotorStatus(v byte) { b.setByteAt(bdaDisketteMotorStatus, v) }
func (b *BDA) DisketteRecalibrateStatus() byte     { return b.byteAt(bdaDisketteRecalibrateStatus) }
func (b *BDA) SetDisketteRecalibrateStatus(v byte) { b.setByteAt(bdaDisketteRecalibrateStatus, v) }
func (b *BDA) DisketteLastStatus() byte     { return b.byteAt(bdaDisketteLastStatus) }
func (b *BDA) SetDisketteLastStatus(v byte) { b.setByteAt(bdaDisketteLastStatus, v) }

// keyboard ring buffer, a 16-word circular queue between head/tail.

func (b *BDA) keyboardBufferHead() uint16 { return b.wordAt(bdaKeyboardBufferHead) }
func (b *BDA) keyboardBufferTail() uint16 { return b.wordAt(bdaKeyboardBufferTail) }

// PushKeystroke appends one (scancode, ASCII) word to the BIOS keyboard
// ring buffer; returns false if the buffer is full (tail+2 == head).
func (b *BDA) PushKeystroke(scancode, ascii byte) bool {
	tail := b.keyboardBufferTail()
	next := tail + 2
	if next >= bdaKeyboardBuffer+bdaKeyboardBufferBytes {
		next = bdaKeyboardBuffer
	}
	if next == b.keyboardBufferHead() {
		return false // full
	}
	b.ram.WriteMemoryByte(bdaBase+uint32(tail), scancode)
	b.ram.WriteMemoryByte(bdaBase+uint32(tail)+1, ascii)
	b.setWordAt(bdaKeyboardBufferTail, next)
	return true
}

// PopKeystroke removes the oldest (scancode, ASCII) word; ok is false if
// the buffer is empty (head == tail).
func (b *BDA) PopKeystroke() (scancode, ascii byte, ok bool) {
	head := b.keyboardBufferHead()
	if head == b.keyboardBufferTail() {
		return 0, 0, false
	}
	scancode = b.ram.ReadMemoryByte(bdaBase + uint32(head))
	ascii = b.ram.ReadMemoryByte(bdaBase + uint32(head) + 1)
	next := head + 2
	if next >= bdaKeyboardBuffer+bdaKeyboardBufferBytes {
		next = bdaKeyboardBuffer
	}
	b.setWordAt(bdaKeyboardBufferHead, next)
	return scancode, ascii, true
}

// KeystrokeAvailable reports whether PopKeystroke would succeed, without
// consuming it.
func (b *BDA) KeystrokeAvailable() bool {
	return b.keyboardBufferHead() != b.keyboardBufferTail()
}

// PeekKeystroke returns the oldest queued (scancode, ASCII) word without
// removing it; ok is false if the buffer is empty.
func (b *BDA) PeekKeystroke() (scancode, ascii byte, ok bool) {
	head := b.keyboardBufferHead()
	if head == b.keyboardBufferTail() {
		return 0, 0, false
	}
	return b.ram.ReadMemoryByte(bdaBase + uint32(head)), b.ram.ReadMemoryByte(bdaBase + uint32(head) + 1), true
}

func (b *BDA) KeyboardStatus1() byte     { return b.byteAt(bdaKeyboardStatus1) }
func (b *BDA) SetKeyboardStatus1(v byte) { b.setByteAt(bdaKeyboardStatus1, v) }
func (b *BDA) KeyboardStatus2() byte     { return b.byteAt(bdaKeyboardStatus2) }
func (b *BDA) SetKeyboardStatus2(v byte) { b.setByteAt(bdaKeyboardStatus2, v) }
