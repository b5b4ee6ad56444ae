// component_reset.go - platform assembly and aggregate Reset
//
// Grounded on the teacher's convention of a single place that owns every
// chip instance and wires their callbacks together (the role machine.go
// plays for IntuitionEngine's platform layer), adapted to this core's
// PC/XT chip set: PIC, PIT, PPI, keyboard, DMA, FDC, MDA, RAM, BDA, BIOS.

package main

// Machine owns every peripheral and the CPU, and wires their callback
// contracts together exactly as spec.md §6 specifies them.
type Machine struct {
	CPU      *CPU
	Platform *Platform
	RAM      *RAM
	BDA      *BDA
	PIC      *PIC
	PIT      *PIT
	PPI      *PPI
	Keyboard *Keyboard
	DMA      *DMA
	FDC      *FDC
	MDA      *MDA
	BIOS     *BIOS
}

// NewMachine assembles a complete PC/XT-class platform: every chip is
// constructed, every chip except the DMA controller is registered into the
// memory/port map at its classic PC/XT address (spec.md §6), and every
// inter-chip callback is wired. The DMA controller has no port registration
// and is reached only through its Go methods.
func NewMachine(memoryKB int) *Machine {
	m := &Machine{}

	m.RAM = NewRAM(memoryKB)
	m.BDA = NewBDA(m.RAM)
	m.BDA.SetMemorySizeKB(uint16(memoryKB))

	m.PIC = NewPIC()
	m.PIT = NewPIT()
	m.Keyboard = NewKeyboard()
	m.PPI = NewPPI(m.Keyboard)
	m.DMA = NewDMA()
	m.FDC = NewFDC()
	m.MDA = NewMDA()

	m.Platform = NewPlatform()
	m.wireBus()
	m.wireCallbacks()

	m.CPU = NewCPU(m.Platform)
	m.CPU.SetIRQSource(m.PIC)

	m.BIOS = NewBIOS(m.BDA, m.RAM, m.MDA, m.FDC, m.DMA, m.Keyboard)
	m.CPU.SetInterruptHandler(m.BIOS)

	return m
}

// wireBus registers the memory/port ranges of every device except the DMA
// controller, per spec.md §6's bit-exact map.
func (m *Machine) wireBus() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(m.Platform.RegisterMemory("conventional-ram", 0x00000, uint32(len(m.RAM.bytes))-1, m.RAM))
	must(m.Platform.RegisterMemory("mda-vram", mdaVRAMBase, mdaVRAMBase+mdaVRAMSize-1, m.MDA))

	must(m.Platform.RegisterPort("pic-master", 0x20, 0x21, m.PIC))
	must(m.Platform.RegisterPort("pit", 0x40, 0x43, m.PIT))
	must(m.Platform.RegisterPort("ppi", 0x60, 0x62, &ppiGatedPortAdapter{m.PPI, m.PIT}))
	must(m.Platform.RegisterPort("fdc", 0x3F2, 0x3F5, m.FDC))
	must(m.Platform.RegisterPort("mda-crtc", 0x3B0, 0x3BF, m.MDA))
}

// wireCallbacks connects the peripheral callback contracts spec.md §6
// names: PPI<->keyboard, PPI->PIT gate 2, PIT->PIC IRQ0, keyboard->PIC
// IRQ1, FDC->PIC IRQ6, FDC<->DMA channel 2.
func (m *Machine) wireCallbacks() {
	m.Keyboard.SendScancode = m.PPI.LatchScancode
	m.Keyboard.RaiseIRQ1 = func() { m.PIC.RaiseIRQ(1) }

	// m.PIT.OutputCallback is left unset: PC-speaker audio output is host
	// integration, out of this core's scope.

	m.DMA.ReadMemoryByte = func(addr uint32) byte { return m.RAM.ReadMemoryByte(addr) }
	m.DMA.WriteMemoryByte = func(addr uint32, v byte) { m.RAM.WriteMemoryByte(addr, v) }

	m.FDC.RaiseIRQ6 = func() { m.PIC.RaiseIRQ(6) }
	m.FDC.RequestDMA = func(diskByte byte) (byte, bool) { return m.DMA.ServiceDREQ(diskByte) }
}

// ppiGatedPortAdapter routes Port B writes through PPI.WriteB with the
// PIT's gate-2 setter wired, instead of the PPI's own PortDevice
// implementation (which has no reference to the PIT and passes nil).
type ppiGatedPortAdapter struct {
	ppi *PPI
	pit *PIT
}

func (a *ppiGatedPortAdapter) ReadPortByte(port uint16) byte {
	return a.ppi.ReadPortByte(port)
}

func (a *ppiGatedPortAdapter) WritePortByte(port uint16, v byte) {
	if port == 0x61 {
		a.ppi.WriteB(v, a.pit.SetGate2)
		return
	}
	a.ppi.WritePortByte(port, v)
}

// Reset reinitializes every component to its power-on state, in the
// teacher's aggregate-Reset convention.
func (m *Machine) Reset() {
	m.RAM.Clear()
	m.BDA.Reset()
	m.PIC.Reset()
	m.PIT.Reset()
	m.Keyboard.Reset()
	m.PPI.Reset()
	m.DMA.Reset()
	m.FDC.Reset()
	m.MDA.Reset()
	m.CPU.Reset()
}

// TickMillisecond advances every time-driven component by one millisecond:
// the keyboard's reset/emission timer and the PIT's channel-0 system-timer
// tick (which also advances the BDA's midnight tick counter per spec.md's
// INT 1Ah contract).
func (m *Machine) TickMillisecond() {
	m.Keyboard.Tick()
	m.PIT.Tick(func() {
		m.PIC.RaiseIRQ(0)
		m.BDA.IncrementTimerTicks()
	})
}
