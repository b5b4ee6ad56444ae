// video_mda.go - Monochrome Display Adapter (MDA)
//
// No teacher analogue (the teacher targets GPU-backed framebuffers via
// ebiten, the exact host-integration layer this module excludes per
// SPEC_FULL.md §3); grounded on spec.md §4.9's VRAM/CRTC/attribute
// description, following the struct+Reset()+PortDevice shape the other
// chips in this package use.

package main

const (
	mdaVRAMBase  = 0xB0000
	mdaVRAMSize  = 4 * 1024
	mdaColumns   = 80
	mdaRows      = 25
	mdaGlyphW    = 9
	mdaGlyphH    = 14
	mdaUnderline = 12 // canonical underline scanline within a glyph
)

// RGB is a host pixel color, passed to the WritePixel callback.
type RGB struct {
	R, G, B byte
}

var (
	mdaForeground = RGB{0xAA, 0xAA, 0xAA}
	mdaIntense    = RGB{0xFF, 0xFF, 0xFF}
	mdaBackground = RGB{0, 0, 0}
)

// MDA implements the monochrome adapter: 4 KiB of character/attribute VRAM
// at 0xB0000 and the CRTC index/data/mode-control/status port group at
// 0x3B0-0x3BF.
type MDA struct {
	vram [mdaVRAMSize]byte

	crtcIndex byte
	crtcRegs  [18]byte

	modeControl byte
	statusReg   byte

	blinkOn bool // toggled by the host at a fixed rate for blink-attribute cells

	// WritePixel is invoked once per foreground/background pixel during a
	// render pass; Glyph supplies the 9x14 bitmap for a character code.
	WritePixel func(x, y int, color RGB)
	Glyph      func(char byte) [mdaGlyphH]uint16 // one uint16 per scanline, bit 8 = leftmost column
}

// NewMDA returns an MDA with blank VRAM and the default text mode.
func NewMDA() *MDA {
	m := &MDA{}
	m.Reset()
	return m
}

// Reset clears VRAM and the CRTC register file.
func (m *MDA) Reset() {
	for i := range m.vram {
		m.vram[i] = 0
	}
	m.crtcIndex = 0
	m.crtcRegs = [18]byte{}
	m.modeControl = 0
	m.statusReg = 0
	m.blinkOn = false
}

// ReadVRAMByte/WriteVRAMByte implement the peripheral callback contract;
// the platform also maps this range directly as a MemoryDevice so CPU
// mov/stos instructions see it through ordinary ReadByte/WriteByte.
func (m *MDA) ReadVRAMByte(offset int) byte {
	if offset < 0 || offset >= len(m.vram) {
		return 0xFF
	}
	return m.vram[offset]
}

func (m *MDA) WriteVRAMByte(offset int, v byte) {
	if offset < 0 || offset >= len(m.vram) {
		return
	}
	m.vram[offset] = v
}

// ReadMemoryByte/WriteMemoryByte implement MemoryDevice over the VRAM
// window.
func (m *MDA) ReadMemoryByte(addr uint32) byte {
	return m.ReadVRAMByte(int(addr - mdaVRAMBase))
}

func (m *MDA) WriteMemoryByte(addr uint32, v byte) {
	m.WriteVRAMByte(int(addr-mdaVRAMBase), v)
}

// WriteCRTCIndex handles a write to the CRTC index port (0x3B4).
func (m *MDA) WriteCRTCIndex(v byte) {
	m.crtcIndex = v & 0x1F
}

// WriteCRTCData handles a write to the CRTC data port (0x3B5).
func (m *MDA) WriteCRTCData(v byte) {
	if int(m.crtcIndex) < len(m.crtcRegs) {
		m.crtcRegs[m.crtcIndex] = v
	}
}

func (m *MDA) ReadCRTCData() byte {
	if int(m.crtcIndex) < len(m.crtcRegs) {
		return m.crtcRegs[m.crtcIndex]
	}
	return 0xFF
}

// CursorPosition returns the cursor's linear character offset, assembled
// from CRTC registers 14 (high) and 15 (low), the standard MDA/CGA cursor
// location registers.
func (m *MDA) CursorPosition() int {
	return int(m.crtcRegs[14])<<8 | int(m.crtcRegs[15])
}

// WriteModeControl handles the mode-control port (0x3B8) by storing the
// byte; neither decodeAttribute nor RenderCell consults it, so the display
// and blink are not switched by it.
func (m *MDA) WriteModeControl(v byte) {
	m.modeControl = v
}

// ReadStatus handles the status port (0x3BA): bit 0 is horizontal retrace,
// bit 3 vertical retrace; this model toggles bit 0 on every read so
// BIOS/DOS polling loops that wait for a horizontal-retrace edge make
// progress without a real video timing source. Bit 3 is never set.
func (m *MDA) ReadStatus() byte {
	m.statusReg ^= 0x01
	return m.statusReg
}

// SetBlinkPhase is driven by the host at the conventional ~3 Hz blink
// rate; it affects only RenderCell's interpretation of the blink
// attribute bit.
func (m *MDA) SetBlinkPhase(on bool) {
	m.blinkOn = on
}

// cellOffset returns the VRAM byte offset of a (row, col) character cell's
// character byte; the attribute byte immediately follows.
func cellOffset(row, col int) int {
	return (row*mdaColumns + col) * 2
}

// Cell returns the character and attribute byte at (row, col).
func (m *MDA) Cell(row, col int) (char, attr byte) {
	off := cellOffset(row, col)
	return m.vram[off], m.vram[off+1]
}

// SetCell writes the character and attribute byte at (row, col), used by
// the BIOS video services (write character, teletype, scroll).
func (m *MDA) SetCell(row, col int, char, attr byte) {
	off := cellOffset(row, col)
	if off+1 >= len(m.vram) {
		return
	}
	m.vram[off] = char
	m.vram[off+1] = attr
}

// decodeAttribute interprets an MDA attribute byte into foreground/
// background colors and whether this cell should render as blank this
// blink phase, per spec.md's canonical combinations (normal, reverse,
// invisible, underline, intense).
func decodeAttribute(attr byte, blinkOn bool) (fg, bg RGB, underline, hidden bool) {
	blink := attr&0x80 != 0
	intensity := attr&0x08 != 0
	fgBits := attr & 0x07
	bgBits := (attr >> 4) & 0x07

	switch {
	case fgBits == 0 && bgBits == 0:
		hidden = true
		return mdaBackground, mdaBackground, false, true
	case fgBits == 1 && bgBits == 0:
		underline = true
	case fgBits == 7 && bgBits == 7:
		hidden = true
		return mdaBackground, mdaBackground, false, true
	}

	fg = mdaForeground
	if intensity {
		fg = mdaIntense
	}
	bg = mdaBackground
	if bgBits != 0 {
		fg, bg = bg, fg // reverse video: canonical MDA reverse is bg=7,fg=0
	}
	if blink && blinkOn {
		hidden = true
	}
	return fg, bg, underline, hidden
}

// RenderCell performs the pull-based render of one text cell: looks up its
// glyph and invokes WritePixel for every foreground/background pixel, with
// the underline attribute drawing across the canonical underline scanline
// instead of the glyph's own pixels.
func (m *MDA) RenderCell(row, col int) {
	if m.WritePixel == nil || m.Glyph == nil {
		return
	}
	char, attr := m.Cell(row, col)
	fg, bg, underline, hidden := decodeAttribute(attr, m.blinkOn)

	glyph := m.Glyph(char)
	baseX := col * mdaGlyphW
	baseY := row * mdaGlyphH

	for y := 0; y < mdaGlyphH; y++ {
		rowBits := glyph[y]
		if underline && y == mdaUnderline {
			rowBits = 0x1FF // full 9-pixel row
		}
		for x := 0; x < mdaGlyphW; x++ {
			bit := rowBits&(1<<(mdaGlyphW-1-x)) != 0
			color := bg
			if bit && !hidden {
				color = fg
			}
			m.WritePixel(baseX+x, baseY+y, color)
		}
	}
}

// ReadPortByte/WritePortByte implement PortDevice across 0x3B0-0x3BF: even
// offsets in the low half alias the CRTC index port, odd offsets the data
// port (the classic 6845-style aliasing), with mode-control at 0x3B8 and
// status at 0x3BA.
func (m *MDA) ReadPortByte(port uint16) byte {
	switch port {
	case 0x3B1, 0x3B3, 0x3B5, 0x3B7:
		return m.ReadCRTCData()
	case 0x3BA:
		return m.ReadStatus()
	}
	return 0xFF
}

func (m *MDA) WritePortByte(port uint16, v byte) {
	switch port {
	case 0x3B0, 0x3B2, 0x3B4, 0x3B6:
		m.WriteCRTCIndex(v)
	case 0x3B1, 0x3B3, 0x3B5, 0x3B7:
		m.WriteCRTCData(v)
	case 0x3B8:
		m.WriteModeControl(v)
	}
}
