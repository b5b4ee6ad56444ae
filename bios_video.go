// bios_video.go - INT 10h video services
//
// Grounded on original_source/src/bios/interrupts.h's INT 10h AH catalogue
// and spec.md §4.10's function list (set mode, cursor shape/position,
// read/write character, scroll, teletype, write string).

package main

const (
	videoDefaultAttribute = 0x07 // white on black, the MDA power-on default
)

func (b *BIOS) int10Video(cpu *CPU) InterruptResult {
	switch cpu.AH() {
	case 0x00:
		b.videoSetMode(cpu)
	case 0x01:
		b.videoSetCursorShape(cpu)
	case 0x02:
		b.videoSetCursorPosition(cpu)
	case 0x03:
		b.videoReadCursorPosition(cpu)
	case 0x06:
		b.videoScrollUp(cpu)
	case 0x07:
		b.videoScrollDown(cpu)
	case 0x08:
		b.videoReadCharAttr(cpu)
	case 0x09:
		b.videoWriteCharAttr(cpu)
	case 0x0A:
		b.videoWriteChar(cpu)
	case 0x0E:
		b.videoTeletype(cpu)
	case 0x13:
		b.videoWriteString(cpu)
	default:
		return InterruptUnhandled
	}
	return InterruptHandled
}

func (b *BIOS) videoSetMode(cpu *CPU) {
	b.bda.SetVideoMode(cpu.AL())
	b.bda.SetVideoColumns(mdaColumns)
	b.bda.SetVideoPageSize(mdaColumns * mdaRows * 2)
	b.bda.SetVideoCRTBaseAddress(0x3B4)
	b.bda.SetVideoCurrentPage(0)
	for row := 0; row < mdaRows; row++ {
		for col := 0; col < mdaColumns; col++ {
			b.mda.SetCell(row, col, ' ', videoDefaultAttribute)
		}
	}
}

func (b *BIOS) videoSetCursorShape(cpu *CPU) {
	b.bda.SetCursorType(cpu.CX())
}

func (b *BIOS) videoSetCursorPosition(cpu *CPU) {
	b.bda.SetCursorPosition(int(cpu.BH()), cpu.DL(), cpu.DH())
}

func (b *BIOS) videoReadCursorPosition(cpu *CPU) {
	bh := cpu.BH()
	col, row := b.bda.CursorPosition(int(bh))
	cpu.SetDL(col)
	cpu.SetDH(row)
	cursorType := b.bda.CursorType()
	cpu.SetCX(cursorType)
}

// scrollRegion performs the shared body of scroll-up/scroll-down: moves
// `lines` rows of the (top,left)-(bottom,right) window in the given
// direction, filling the revealed rows with blanks using fillAttr; lines=0
// clears the entire region, matching spec.md's "clear region" shorthand.
func (b *BIOS) scrollRegion(top, left, bottom, right, lines int, fillAttr byte, up bool) {
	height := bottom - top + 1
	if lines == 0 || lines >= height {
		for row := top; row <= bottom; row++ {
			for col := left; col <= right; col++ {
				b.mda.SetCell(row, col, ' ', fillAttr)
			}
		}
		return
	}
	if up {
		for row := top; row <= bottom-lines; row++ {
			for col := left; col <= right; col++ {
				ch, attr := b.mda.Cell(row+lines, col)
				b.mda.SetCell(row, col, ch, attr)
			}
		}
		for row := bottom - lines + 1; row <= bottom; row++ {
			for col := left; col <= right; col++ {
				b.mda.SetCell(row, col, ' ', fillAttr)
			}
		}
	} else {
		for row := bottom; row >= top+lines; row-- {
			for col := left; col <= right; col++ {
				ch, attr := b.mda.Cell(row-lines, col)
				b.mda.SetCell(row, col, ch, attr)
			}
		}
		for row := top; row < top+lines; row++ {
			for col := left; col <= right; col++ {
				b.mda.SetCell(row, col, ' ', fillAttr)
			}
		}
	}
}

func (b *BIOS) videoScrollUp(cpu *CPU) {
	top, left, bottom, right := int(cpu.CH()), int(cpu.CL()), int(cpu.DH()), int(cpu.DL())
	b.scrollRegion(top, left, bottom, right, int(cpu.AL()), cpu.BH(), true)
}

func (b *BIOS) videoScrollDown(cpu *CPU) {
	top, left, bottom, right := int(cpu.CH()), int(cpu.CL()), int(cpu.DH()), int(cpu.DL())
	b.scrollRegion(top, left, bottom, right, int(cpu.AL()), cpu.BH(), false)
}

func (b *BIOS) videoReadCharAttr(cpu *CPU) {
	page := int(cpu.BH())
	col, row := b.bda.CursorPosition(page)
	ch, attr := b.mda.Cell(int(row), int(col))
	cpu.SetAL(ch)
	cpu.SetAH(attr)
}

func (b *BIOS) videoWriteCharAttr(cpu *CPU) {
	page := int(cpu.BH())
	col, row := b.bda.CursorPosition(page)
	attr := cpu.BL()
	count := cpu.CX()
	for i := uint16(0); i < count && int(col)+int(i) < mdaColumns; i++ {
		b.mda.SetCell(int(row), int(col)+int(i), cpu.AL(), attr)
	}
}

func (b *BIOS) videoWriteChar(cpu *CPU) {
	page := int(cpu.BH())
	col, row := b.bda.CursorPosition(page)
	_, attr := b.mda.Cell(int(row), int(col))
	count := cpu.CX()
	for i := uint16(0); i < count && int(col)+int(i) < mdaColumns; i++ {
		b.mda.SetCell(int(row), int(col)+int(i), cpu.AL(), attr)
	}
}

// teletypeChar writes ch at the cursor, honoring CR/LF/BS/BEL and
// scrolling the screen up one line when the cursor runs past the last
// row, per spec.md's INT 10h AH=0x0E description.
func (b *BIOS) teletypeChar(page int, ch byte, attr byte) {
	col, row := b.bda.CursorPosition(page)
	c, r := int(col), int(row)

	switch ch {
	case '\r':
		c = 0
	case '\n':
		r++
	case 0x08: // backspace
		if c > 0 {
			c--
		}
	case 0x07: // bell: no visible effect in this model
	default:
		b.mda.SetCell(r, c, ch, attr)
		c++
	}

	if c >= mdaColumns {
		c = 0
		r++
	}
	if r >= mdaRows {
		b.scrollRegion(0, 0, mdaRows-1, mdaColumns-1, 1, attr, true)
		r = mdaRows - 1
	}
	b.bda.SetCursorPosition(page, byte(c), byte(r))
}

func (b *BIOS) videoTeletype(cpu *CPU) {
	page := int(b.bda.VideoCurrentPage())
	b.teletypeChar(page, cpu.AL(), cpu.BL())
}

// videoWriteString implements AH=0x13's four AL sub-modes: bit 0 selects
// whether the cursor is updated after the write, bit 1 selects whether the
// string interleaves attribute bytes (true) or uses BL as a constant
// attribute for every character (false).
func (b *BIOS) videoWriteString(cpu *CPU) {
	mode := cpu.AL()
	moveCursor := mode&0x01 != 0
	hasAttr := mode&0x02 != 0
	constAttr := cpu.BL()
	page := int(cpu.BH())

	col, row := cpu.DL(), cpu.DH()
	b.bda.SetCursorPosition(page, col, row)

	count := cpu.CX()
	seg, off := cpu.ES(), cpu.BP()
	for i := uint16(0); i < count; i++ {
		ch := cpu.MemRead8(seg, off)
		off++
		attr := constAttr
		if hasAttr {
			attr = cpu.MemRead8(seg, off)
			off++
		}
		b.teletypeChar(page, ch, attr)
	}

	if !moveCursor {
		b.bda.SetCursorPosition(page, col, row)
	}
}
