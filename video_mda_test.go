// video_mda_test.go - MDA VRAM, CRTC port aliasing, and attribute decoding
//
// Grounded on spec.md §4.9's VRAM/CRTC/attribute description and
// video_mda.go's own doc comments for the 6845-style port aliasing.

package main

import "testing"

func TestMDASetCellAndMemoryByteAgree(t *testing.T) {
	m := NewMDA()
	m.SetCell(0, 0, 'A', 0x07)
	char, attr := m.Cell(0, 0)
	if char != 'A' || attr != 0x07 {
		t.Fatalf("Cell(0,0) = (%q,%#x), want ('A',0x07)", char, attr)
	}
	if got := m.ReadMemoryByte(mdaVRAMBase); got != 'A' {
		t.Fatalf("ReadMemoryByte(base) = %q, want 'A'", got)
	}
	if got := m.ReadMemoryByte(mdaVRAMBase + 1); got != 0x07 {
		t.Fatalf("ReadMemoryByte(base+1) = %#x, want 0x07", got)
	}

	m.WriteMemoryByte(mdaVRAMBase+2, 'B')
	char, _ = m.Cell(0, 1)
	if char != 'B' {
		t.Fatalf("Cell(0,1) after WriteMemoryByte = %q, want 'B'", char)
	}
}

func TestMDACRTCIndexDataPortAliasing(t *testing.T) {
	m := NewMDA()
	for _, indexPort := range []uint16{0x3B4, 0x3B0, 0x3B2, 0x3B6} {
		m.WritePortByte(indexPort, 14) // cursor-position-high register
		for _, dataPort := range []uint16{0x3B5, 0x3B1, 0x3B3, 0x3B7} {
			m.WritePortByte(dataPort, 0x12)
			if got := m.ReadPortByte(dataPort); got != 0x12 {
				t.Fatalf("index port %#x / data port %#x: read back %#x, want 0x12", indexPort, dataPort, got)
			}
		}
	}
}

func TestMDACursorPositionFromCRTCRegisters(t *testing.T) {
	m := NewMDA()
	m.WritePortByte(0x3B4, 14)
	m.WritePortByte(0x3B5, 0x02) // high byte
	m.WritePortByte(0x3B4, 15)
	m.WritePortByte(0x3B5, 0x50) // low byte
	if got := m.CursorPosition(); got != 0x0250 {
		t.Fatalf("CursorPosition() = %#x, want 0x0250", got)
	}
}

func TestMDAStatusRegisterTogglesRetraceOnRead(t *testing.T) {
	m := NewMDA()
	first := m.ReadStatus()
	second := m.ReadStatus()
	if first&0x01 == second&0x01 {
		t.Fatalf("expected horizontal-retrace bit to toggle between reads: %#x then %#x", first, second)
	}
}

func TestMDADecodeAttributeNormalText(t *testing.T) {
	fg, bg, underline, hidden := decodeAttribute(0x07, false)
	if hidden || underline {
		t.Fatalf("normal white-on-black attribute should not be hidden or underlined")
	}
	if fg != mdaForeground || bg != mdaBackground {
		t.Fatalf("normal attribute colors = (%v,%v), want (%v,%v)", fg, bg, mdaForeground, mdaBackground)
	}
}

func TestMDADecodeAttributeReverseVideo(t *testing.T) {
	fg, bg, _, hidden := decodeAttribute(0x70, false) // bg=7,fg=0: canonical reverse
	if hidden {
		t.Fatalf("reverse-video attribute should not be hidden")
	}
	if fg != mdaBackground || bg != mdaForeground {
		t.Fatalf("reverse attribute colors = (%v,%v), want swapped (%v,%v)", fg, bg, mdaBackground, mdaForeground)
	}
}

func TestMDADecodeAttributeUnderline(t *testing.T) {
	_, _, underline, hidden := decodeAttribute(0x01, false)
	if !underline || hidden {
		t.Fatalf("attribute 0x01 (fg=1,bg=0) should be underline, not hidden")
	}
}

func TestMDADecodeAttributeInvisibleBlackOnBlack(t *testing.T) {
	_, _, _, hidden := decodeAttribute(0x00, false)
	if !hidden {
		t.Fatalf("attribute 0x00 (black-on-black) should be hidden")
	}
}

func TestMDADecodeAttributeBlinkHiddenOnlyWhenBlinkOn(t *testing.T) {
	_, _, _, hiddenOff := decodeAttribute(0x87, false)
	_, _, _, hiddenOn := decodeAttribute(0x87, true)
	if hiddenOff {
		t.Fatalf("blink attribute must not be hidden when blink phase is off")
	}
	if !hiddenOn {
		t.Fatalf("blink attribute must be hidden when blink phase is on")
	}
}

func TestMDARenderCellInvokesWritePixelForEveryGlyphPixel(t *testing.T) {
	m := NewMDA()
	m.SetCell(0, 0, 'X', 0x07)
	m.Glyph = func(char byte) [mdaGlyphH]uint16 {
		var g [mdaGlyphH]uint16
		for i := range g {
			g[i] = 0x1FF // solid glyph: every pixel lit
		}
		return g
	}
	count := 0
	m.WritePixel = func(x, y int, color RGB) { count++ }
	m.RenderCell(0, 0)
	if want := mdaGlyphW * mdaGlyphH; count != want {
		t.Fatalf("WritePixel invoked %d times, want %d (%dx%d glyph)", count, want, mdaGlyphW, mdaGlyphH)
	}
}
