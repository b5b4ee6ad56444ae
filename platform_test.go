// platform_test.go - registry overlap/dup/cap rules and route dispatch
//
// Grounded on spec.md §4.4's registration-rule list and platform.go's own
// doc comment describing the linear-scan range registry.

package main

import "testing"

type fakeMemDevice struct {
	reads, writes int
	last          byte
}

func (f *fakeMemDevice) ReadMemoryByte(addr uint32) byte { f.reads++; return 0x42 }
func (f *fakeMemDevice) WriteMemoryByte(addr uint32, v byte) {
	f.writes++
	f.last = v
}

type fakePortDevice struct {
	reads, writes int
	last          byte
}

func (f *fakePortDevice) ReadPortByte(port uint16) byte { f.reads++; return 0x99 }
func (f *fakePortDevice) WritePortByte(port uint16, v byte) {
	f.writes++
	f.last = v
}

func TestPlatformRoutesReadWriteToRegisteredDevice(t *testing.T) {
	p := NewPlatform()
	dev := &fakeMemDevice{}
	if err := p.RegisterMemory("test-dev", 0x1000, 0x1FFF, dev); err != nil {
		t.Fatalf("RegisterMemory failed: %v", err)
	}
	p.WriteByte(0x1500, 0xAB)
	if dev.writes != 1 || dev.last != 0xAB {
		t.Fatalf("write not routed: writes=%d last=%#x", dev.writes, dev.last)
	}
	if got := p.ReadByte(0x1500); got != 0x42 {
		t.Fatalf("ReadByte = %#x, want 0x42", got)
	}
}

func TestPlatformUnmappedMemoryReadsOpenBus(t *testing.T) {
	p := NewPlatform()
	if got := p.ReadByte(0xABCDE); got != 0xFF {
		t.Fatalf("unmapped ReadByte = %#x, want 0xFF", got)
	}
	p.WriteByte(0xABCDE, 0x11) // must not panic; silently dropped
}

func TestPlatformRejectsDuplicateTag(t *testing.T) {
	p := NewPlatform()
	dev := &fakeMemDevice{}
	if err := p.RegisterMemory("dup", 0x0000, 0x0FFF, dev); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := p.RegisterMemory("dup", 0x2000, 0x2FFF, dev); err == nil {
		t.Fatalf("expected error registering duplicate tag")
	}
}

func TestPlatformRejectsOverlappingRange(t *testing.T) {
	p := NewPlatform()
	dev := &fakeMemDevice{}
	if err := p.RegisterMemory("a", 0x1000, 0x1FFF, dev); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := p.RegisterMemory("b", 0x1800, 0x2800, dev); err == nil {
		t.Fatalf("expected error registering overlapping range")
	}
}

func TestPlatformRejectsRegistryOverflow(t *testing.T) {
	p := NewPlatform()
	dev := &fakeMemDevice{}
	for i := 0; i < maxRegistryEntries; i++ {
		tag := string(rune('a' + i%26))
		start := uint32(i) * 0x10000
		if err := p.RegisterMemory(tag+string(rune('A'+i/26)), start, start+0xFFFF, dev); err != nil {
			t.Fatalf("register %d failed unexpectedly: %v", i, err)
		}
	}
	if err := p.RegisterMemory("overflow", 0xF0000000, 0xFFFFFFFF, dev); err == nil {
		t.Fatalf("expected error once registry is full")
	}
}

func TestPlatformPortRoutingAndOpenBus(t *testing.T) {
	p := NewPlatform()
	dev := &fakePortDevice{}
	if err := p.RegisterPort("test-port", 0x60, 0x63, dev); err != nil {
		t.Fatalf("RegisterPort failed: %v", err)
	}
	p.WritePort(0x61, 0x05)
	if dev.writes != 1 || dev.last != 0x05 {
		t.Fatalf("port write not routed: writes=%d last=%#x", dev.writes, dev.last)
	}
	if got := p.ReadPort(0x9999); got != 0xFF {
		t.Fatalf("unmapped ReadPort = %#x, want 0xFF", got)
	}
}
