// memory.go - conventional RAM
//
// No teacher analogue beyond the general MemoryDevice shape platform.go
// already establishes; grounded on spec.md §6's memory map ("conventional
// RAM from 0x00000 up to memory_size_kb*1024, capped at 640 KiB").

package main

const maxConventionalMemoryKB = 640

// RAM is a flat byte array implementing MemoryDevice, registered with the
// platform as the conventional-memory region below the MDA aperture.
type RAM struct {
	bytes []byte
}

// NewRAM returns a RAM block sized to sizeKB KiB, capped at the PC/XT's
// 640 KiB conventional-memory ceiling.
func NewRAM(sizeKB int) *RAM {
	if sizeKB > maxConventionalMemoryKB {
		sizeKB = maxConventionalMemoryKB
	}
	if sizeKB < 0 {
		sizeKB = 0
	}
	return &RAM{bytes: make([]byte, sizeKB*1024)}
}

// Clear zeroes every byte in place, for use by Machine.Reset (replacing
// the RAM object outright would leave stale pointers in the platform's
// registered memory regions).
func (r *RAM) Clear() {
	for i := range r.bytes {
		r.bytes[i] = 0
	}
}

func (r *RAM) ReadMemoryByte(addr uint32) byte {
	if int(addr) >= len(r.bytes) {
		return 0xFF
	}
	return r.bytes[addr]
}

func (r *RAM) WriteMemoryByte(addr uint32, v byte) {
	if int(addr) >= len(r.bytes) {
		return
	}
	r.bytes[addr] = v
}

// ReadWord/WriteWord are little-endian 16-bit helpers used by bda.go and
// the BIOS handlers, which address the BDA in word-sized fields.
func (r *RAM) ReadWord(addr uint32) uint16 {
	return uint16(r.ReadMemoryByte(addr)) | uint16(r.ReadMemoryByte(addr+1))<<8
}

func (r *RAM) WriteWord(addr uint32, v uint16) {
	r.WriteMemoryByte(addr, byte(v))
	r.WriteMemoryByte(addr+1, byte(v>>8))
}
