// ppi_8255_test.go - 8255 Port A/B/C and keyboard-control wiring tests
//
// Grounded on spec.md §4.7's Port A/B/C semantics and ppi_8255.go's own
// doc comments for the DIP-bank select bit and keyboard control lines.

package main

import "testing"

func TestPPILatchScancodeReadableViaPortA(t *testing.T) {
	kbd := NewKeyboard()
	p := NewPPI(kbd)
	p.LatchScancode(0x1E)
	if p.ReadA() != 0x1E {
		t.Fatalf("ReadA() = %#x, want 0x1E", p.ReadA())
	}
}

func TestPPIDIPBankSelectByPortBBit3(t *testing.T) {
	kbd := NewKeyboard()
	p := NewPPI(kbd)
	p.SetDIPBanks(0x5, 0xA)

	p.WriteB(0x00, nil) // bit3 clear: low bank
	if p.ReadC() != 0x5 {
		t.Fatalf("ReadC() = %#x, want low bank 0x5", p.ReadC())
	}
	p.WriteB(ppiPortBDIPSelectHigh, nil)
	if p.ReadC() != 0xA {
		t.Fatalf("ReadC() = %#x, want high bank 0xA", p.ReadC())
	}
}

func TestPPIWriteBForwardsGateAndKeyboardControl(t *testing.T) {
	kbd := NewKeyboard()
	p := NewPPI(kbd)

	var gotGate bool
	p.WriteB(ppiPortBSpeakerGate|ppiPortBKeyboardEnable, func(g bool) { gotGate = g })
	if !gotGate {
		t.Fatalf("expected gate callback to receive true for speaker-gate bit set")
	}
	if kbd.enableClear != true || kbd.clockLow != false {
		t.Fatalf("keyboard control lines not updated: enableClear=%v clockLow=%v", kbd.enableClear, kbd.clockLow)
	}
}

func TestPPIResetRestoresKeyboardClockLow(t *testing.T) {
	kbd := NewKeyboard()
	p := NewPPI(kbd)
	p.WriteB(0, nil) // clockLow released
	p.Reset()
	if p.ReadB()&ppiPortBKeyboardClock == 0 {
		t.Fatalf("expected Port B keyboard-clock bit set after Reset")
	}
	if !kbd.clockLow {
		t.Fatalf("expected keyboard clockLow restored true after PPI Reset")
	}
}
