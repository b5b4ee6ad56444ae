// pic_8259_test.go - 8259 ICW/OCW and priority arbitration tests
//
// Grounded on original_source's icw_test.cpp/irq_test.cpp naming
// (init sequence, RaiseIRQ/Acknowledge/EOI ordering) carried over from the
// state machine's own doc comments in pic_8259.go.

package main

import "testing"

func initPIC(p *PIC, vectorBase byte) {
	p.WriteCommand(0x11) // ICW1: edge-triggered, cascaded, ICW4 needed
	p.WriteData(vectorBase) // ICW2
	p.WriteData(0x00)       // ICW3 (cascade line, unused single-PIC)
	p.WriteData(0x01)       // ICW4
}

func TestPICInitSequenceReachesReadyWithMaskSet(t *testing.T) {
	p := NewPIC()
	initPIC(p, 0x08)
	// After init completes, IMR is reset to all-masked per the 8259 spec.
	if p.ReadData() != 0xFF {
		t.Fatalf("IMR after init = %#x, want 0xFF", p.ReadData())
	}
}

func TestPICAcknowledgeReturnsVectorBasePlusLine(t *testing.T) {
	p := NewPIC()
	initPIC(p, 0x08)
	p.WriteData(0x00) // OCW1: unmask everything

	p.RaiseIRQ(1)
	if !p.HasPendingInterrupt() {
		t.Fatalf("expected pending interrupt after RaiseIRQ(1)")
	}
	vec := p.Acknowledge()
	if vec != 0x09 {
		t.Fatalf("Acknowledge() = %#x, want 0x09 (base 0x08 + line 1)", vec)
	}
	if p.HasPendingInterrupt() {
		t.Fatalf("expected no pending interrupt once IRQ1 is in-service with nothing else raised")
	}
}

func TestPICPriorityOrdersLowestLineFirst(t *testing.T) {
	p := NewPIC()
	initPIC(p, 0x00)
	p.WriteData(0x00) // unmask all

	p.RaiseIRQ(3)
	p.RaiseIRQ(0)
	vec := p.Acknowledge()
	if vec != 0x00 {
		t.Fatalf("Acknowledge() = %#x, want IRQ0's vector 0x00 (higher priority than IRQ3)", vec)
	}
}

func TestPICMaskedLineNeverPends(t *testing.T) {
	p := NewPIC()
	initPIC(p, 0x00)
	p.WriteData(0xFF &^ (1 << 2)) // unmask only IRQ2

	p.RaiseIRQ(0)
	if p.HasPendingInterrupt() {
		t.Fatalf("IRQ0 is masked by IMR; HasPendingInterrupt should be false")
	}
	p.RaiseIRQ(2)
	if !p.HasPendingInterrupt() {
		t.Fatalf("IRQ2 is unmasked; HasPendingInterrupt should be true")
	}
}

func TestPICEOIClearsInService(t *testing.T) {
	p := NewPIC()
	initPIC(p, 0x00)
	p.WriteData(0x00)

	p.RaiseIRQ(2)
	p.Acknowledge()
	p.RaiseIRQ(2) // re-requested while still in service
	if p.HasPendingInterrupt() {
		t.Fatalf("IRQ2 is already in-service; should not re-pend until EOI")
	}
	p.WriteCommand(0x20) // non-specific EOI
	if !p.HasPendingInterrupt() {
		t.Fatalf("expected IRQ2 to pend again after EOI clears in-service")
	}
}

func TestPICReadRegisterSelectIRRvsISR(t *testing.T) {
	p := NewPIC()
	initPIC(p, 0x00)
	p.WriteData(0x00)

	p.RaiseIRQ(5)
	p.WriteCommand(0x0A) // OCW3: select read IRR on the data port
	if p.ReadPortByte(0x21)&(1<<5) == 0 {
		t.Fatalf("expected IRR bit 5 set after RaiseIRQ(5)")
	}
	// The selector is one-shot: the next data-port read reverts to IMR.
	if got := p.ReadPortByte(0x21); got != p.imr {
		t.Fatalf("second data-port read = %#x, want IMR %#x (selector must revert)", got, p.imr)
	}

	p.Acknowledge()
	p.WriteCommand(0x0B) // OCW3: select read ISR on the data port
	if p.ReadPortByte(0x21)&(1<<5) == 0 {
		t.Fatalf("expected ISR bit 5 set after Acknowledge")
	}
	if got := p.ReadPortByte(0x21); got != p.imr {
		t.Fatalf("second data-port read = %#x, want IMR %#x (selector must revert)", got, p.imr)
	}
}
