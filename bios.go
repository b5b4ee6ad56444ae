// bios.go - BIOS service layer: INT n dispatch
//
// No teacher analogue (the teacher's emulated CPUs run bare, with no BIOS
// layer); grounded on original_source/src/bios/interrupts.h's AH
// sub-function catalogue and spec.md §4.10's function-group list. Follows
// cpu_8086.go's InterruptHandler contract: HandleInterrupt is consulted
// before the CPU's own IVT vectoring, and returning InterruptUnhandled lets
// an interrupt the BIOS doesn't implement fall through to whatever is in
// the guest's own vector table.

package main

// BIOS implements InterruptHandler, wiring the CPU's INT n dispatch to the
// platform's peripherals.
type BIOS struct {
	bda *BDA
	ram *RAM
	mda *MDA
	fdc *FDC
	dma *DMA
	kbd *Keyboard
}

// NewBIOS returns a BIOS service layer bound to the platform's components.
func NewBIOS(bda *BDA, ram *RAM, mda *MDA, fdc *FDC, dma *DMA, kbd *Keyboard) *BIOS {
	return &BIOS{bda: bda, ram: ram, mda: mda, fdc: fdc, dma: dma, kbd: kbd}
}

// HandleInterrupt implements InterruptHandler, dispatching on the
// interrupt number to the implemented function groups; everything else is
// declined so the CPU falls through to normal IVT vectoring.
func (b *BIOS) HandleInterrupt(cpu *CPU, n byte) InterruptResult {
	switch n {
	case 0x05:
		return b.int05PrintScreen(cpu)
	case 0x09:
		return b.int09Keyboard(cpu)
	case 0x10:
		return b.int10Video(cpu)
	case 0x11:
		return b.int11Equipment(cpu)
	case 0x12:
		return b.int12MemorySize(cpu)
	case 0x13:
		return b.int13Disk(cpu)
	case 0x16:
		return b.int16Keyboard(cpu)
	case 0x1A:
		return b.int1ATime(cpu)
	}
	return InterruptUnhandled
}

// int05PrintScreen stubs the print-screen service: real BIOS snapshots the
// active video page to the printer; this core has no printer peripheral,
// so it only sets the conventional "operation successful" status byte at
// 0040:0100, as original_source names it.
func (b *BIOS) int05PrintScreen(cpu *CPU) InterruptResult {
	const printScreenStatusOffset = 0x100
	b.ram.WriteMemoryByte(bdaBase+printScreenStatusOffset, 0x01)
	return InterruptHandled
}

// int11Equipment returns the BDA equipment word in AX, as real INT 11h
// does.
func (b *BIOS) int11Equipment(cpu *CPU) InterruptResult {
	cpu.SetAX(b.bda.EquipmentWord())
	return InterruptHandled
}

// int12MemorySize returns conventional memory size in KiB in AX.
func (b *BIOS) int12MemorySize(cpu *CPU) InterruptResult {
	cpu.SetAX(b.bda.MemorySizeKB())
	return InterruptHandled
}
