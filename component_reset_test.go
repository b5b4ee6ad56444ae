// component_reset_test.go - Machine assembly, wiring, and Reset sanity
//
// Grounded on component_reset.go's own doc comments describing the
// callback wiring spec.md §6 names; exercises the assembled Machine rather
// than re-testing each chip's internals (covered by their own _test.go
// files).

package main

import "testing"

func TestNewMachineRegistersExpectedRanges(t *testing.T) {
	m := NewMachine(640) // must not panic on overlap/duplicate-tag checks

	m.Platform.WriteByte(mdaVRAMBase, 'Z')
	if got := m.Platform.ReadByte(mdaVRAMBase); got != 'Z' {
		t.Fatalf("mda-vram range not registered: read back %#x, want 'Z'", got)
	}

	m.Platform.WriteByte(0x1000, 0x42)
	if got := m.Platform.ReadByte(0x1000); got != 0x42 {
		t.Fatalf("conventional-ram range not registered: read back %#x, want 0x42", got)
	}

	if got := m.Platform.ReadPort(0x3F4); got&msrRQM == 0 {
		t.Fatalf("fdc port range not registered: MSR read = %#x, want RQM set", got)
	}
}

func TestMachineKeyboardPressRaisesIRQ1ThroughPPI(t *testing.T) {
	m := NewMachine(64)
	// A freshly constructed PIC is not yet through its ICW sequence, so
	// drive it the same way the rest of the suite's PIC tests do.
	m.PIC.WriteCommand(0x11)
	m.PIC.WriteData(0x08)
	m.PIC.WriteData(0x00)
	m.PIC.WriteData(0x01)
	m.PIC.WriteData(0x00) // OCW1: unmask all

	m.Keyboard.PressKey(0x1E)
	m.Keyboard.SetControl(false, true) // steady emission state
	m.Keyboard.Tick()

	if !m.PIC.HasPendingInterrupt() {
		t.Fatalf("expected IRQ1 pending in the PIC after a keypress is emitted")
	}
	if m.PPI.ReadA() != 0x1E {
		t.Fatalf("PPI Port A = %#x, want the latched scancode 0x1E", m.PPI.ReadA())
	}
}

func TestMachineTickMillisecondAdvancesPITAndBDATicks(t *testing.T) {
	m := NewMachine(64)
	m.PIC.WriteCommand(0x11)
	m.PIC.WriteData(0x08)
	m.PIC.WriteData(0x00)
	m.PIC.WriteData(0x01)
	m.PIC.WriteData(0x00)

	m.PIT.WriteControl(0x36) // ch0, both-byte access, mode 3
	m.PIT.WriteData(0, 0x01) // reload = 1: fires every 2 ticks
	m.PIT.WriteData(0, 0x00)

	before := m.BDA.TimerTicks()
	for i := 0; i < 2; i++ {
		m.TickMillisecond()
	}
	if !m.PIC.HasPendingInterrupt() {
		t.Fatalf("expected IRQ0 pending after the PIT's programmed reload elapses")
	}
	if got := m.BDA.TimerTicks(); got != before+1 {
		t.Fatalf("BDA.TimerTicks() = %d, want %d (advances once, when the PIT's reload fires)", got, before+1)
	}
}

func TestMachineFDCReadDataWiredThroughDMAToRAM(t *testing.T) {
	m := NewMachine(64)

	const sectorSize = 512
	image := make([]byte, sectorSize)
	for i := range image {
		image[i] = byte(i % 256)
	}
	m.FDC.ConfigureDrive(0, true, 2, 40, 9, sectorSize)
	m.FDC.ReadImageByte = func(drive int, offset int) (byte, bool) {
		if offset < 0 || offset >= len(image) {
			return 0, false
		}
		return image[offset], true
	}
	m.DMA.ProgramChannel2(0x5000, sectorSize-1, true)

	cmd := []byte{cmdReadData, 0x00, 0x00, 0x00, 0x01, 0x02, 0x09, 0x00, 0xFF}
	for _, b := range cmd {
		m.FDC.WriteData(b)
	}

	for i := 0; i < sectorSize; i++ {
		if got := m.RAM.ReadMemoryByte(0x5000 + uint32(i)); got != byte(i%256) {
			t.Fatalf("RAM[0x5000+%d] = %#x, want %#x", i, got, byte(i%256))
		}
	}
}

func TestMachineResetPreservesRegisteredDevicePointers(t *testing.T) {
	m := NewMachine(64)
	m.RAM.WriteMemoryByte(0x10, 0xAB)

	ramBefore := m.Platform.memRegions[0].dev
	m.Reset()
	ramAfter := m.Platform.memRegions[0].dev

	if ramBefore != ramAfter {
		t.Fatalf("Reset must not replace the registered RAM device instance")
	}
	if got := m.RAM.ReadMemoryByte(0x10); got != 0 {
		t.Fatalf("RAM.ReadMemoryByte(0x10) after Reset = %#x, want 0 (cleared)", got)
	}
	if got := m.Platform.ReadByte(0x10); got != 0 {
		t.Fatalf("Platform.ReadByte(0x10) after Reset = %#x, want 0 (same RAM instance, cleared)", got)
	}
}
