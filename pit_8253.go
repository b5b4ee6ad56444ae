// pit_8253.go - Intel 8253/8254 Programmable Interval Timer
//
// No teacher analogue exists for a counter/timer chip; grounded on
// spec.md §4.6's three-channel control-word/reload-value grammar, and
// following the per-chip struct+Reset()+port-byte-method shape pic_8259.go
// establishes for this package's peripherals.

package main

// pitAccessMode selects how a channel's 16-bit reload/latch value is
// transferred across 8-bit data-port writes/reads.
type pitAccessMode int

const (
	pitAccessLatch pitAccessMode = iota // counter-latch command, not a mode
	pitAccessLSB
	pitAccessMSB
	pitAccessBoth // LSB then MSB, a 2-byte toggle sequence
)

type pitChannel struct {
	mode       byte
	access     pitAccessMode
	reload     uint16
	counter    uint16
	output     bool
	writeHigh  bool // for pitAccessBoth: false = expect LSB next, true = expect MSB next
	readHigh   bool
	latched    bool
	latchValue uint16
	gate       bool // PPI Port B bit 0 for channel 2; channels 0/1 are always gated on
}

// PIT implements the three-channel 8253. OutputCallback, if set, is
// invoked whenever any channel's output toggles, with that channel's
// index (channel 2 is the PC-speaker tone line); channel 0's terminal
// count (the system timer tick) is reported through Tick's raiseIRQ0
// argument.
type PIT struct {
	channels [3]pitChannel

	OutputCallback func(channel int, output bool)
}

// NewPIT returns a PIT with all channels in their power-on state.
func NewPIT() *PIT {
	p := &PIT{}
	p.Reset()
	return p
}

// Reset zeroes all channel state. Gate inputs for channels 0/1 are
// hardwired high on the PC/XT; channel 2's gate starts low until the PPI
// raises it.
func (p *PIT) Reset() {
	for i := range p.channels {
		p.channels[i] = pitChannel{}
	}
	p.channels[0].gate = true
	p.channels[1].gate = true
}

// WriteControl handles a write to the control port (0x43): selects a
// channel and its mode/access, or latches a channel's current count for a
// glitch-free read.
func (p *PIT) WriteControl(v byte) {
	sel := (v >> 6) & 3
	if sel == 3 {
		return // read-back command (8254-only); not modeled
	}
	ch := &p.channels[sel]

	access := (v >> 4) & 3
	if access == 0 { // counter-latch command
		ch.latched = true
		ch.latchValue = ch.counter
		return
	}

	ch.mode = (v >> 1) & 7
	ch.access = pitAccessMode(access)
	ch.writeHigh = false
	ch.latched = false
}

// WriteData handles a write to a channel's data port (0x40/0x41/0x42):
// loads the reload value, possibly across two successive byte writes.
func (p *PIT) WriteData(channel int, v byte) {
	ch := &p.channels[channel]
	switch ch.access {
	case pitAccessLSB:
		ch.reload = (ch.reload &^ 0x00FF) | uint16(v)
		p.loadCounter(ch)
	case pitAccessMSB:
		ch.reload = (ch.reload &^ 0xFF00) | uint16(v)<<8
		p.loadCounter(ch)
	case pitAccessBoth:
		if !ch.writeHigh {
			ch.reload = (ch.reload &^ 0x00FF) | uint16(v)
			ch.writeHigh = true
		} else {
			ch.reload = (ch.reload &^ 0xFF00) | uint16(v)<<8
			ch.writeHigh = false
			p.loadCounter(ch)
		}
	}
}

func (p *PIT) loadCounter(ch *pitChannel) {
	ch.counter = ch.reload
}

// ReadData handles a read of a channel's data port, honoring a pending
// latch (the glitch-free snapshot taken by WriteControl's latch command)
// and the access mode's byte ordering.
func (p *PIT) ReadData(channel int) byte {
	ch := &p.channels[channel]
	value := ch.counter
	if ch.latched {
		value = ch.latchValue
	}

	switch ch.access {
	case pitAccessMSB:
		if ch.latched {
			ch.latched = false
		}
		return byte(value >> 8)
	case pitAccessBoth:
		if !ch.readHigh {
			ch.readHigh = true
			return byte(value)
		}
		ch.readHigh = false
		if ch.latched {
			ch.latched = false
		}
		return byte(value >> 8)
	default: // pitAccessLSB
		if ch.latched {
			ch.latched = false
		}
		return byte(value)
	}
}

// SetGate2 forwards the PPI Port B bit-0 timer-2 gate state to channel 2.
func (p *PIT) SetGate2(gate bool) {
	p.channels[2].gate = gate
}

// Frequency reports the given channel's emulated output frequency in Hz, per
// spec.md's `1_193_182 / reload` rule (reload=0 means 65536).
func (p *PIT) Frequency(channel int) float64 {
	reload := uint32(p.channels[channel].reload)
	if reload == 0 {
		reload = 65536
	}
	const pitBaseFrequency = 1_193_182
	return float64(pitBaseFrequency) / float64(reload)
}

// Tick advances every channel by one input clock and fires IRQ0 on
// channel 0's terminal count (mode-independent square-wave simplification
// suitable for a cooperative, non-cycle-exact core: channel 0 decrements
// and wraps, toggling output and invoking the IRQ callback each time it
// reaches zero).
func (p *PIT) Tick(raiseIRQ0 func()) {
	for i := range p.channels {
		ch := &p.channels[i]
		if !ch.gate {
			continue
		}
		if ch.counter == 0 {
			reload := ch.reload
			if reload == 0 {
				reload = 65535
			}
			ch.counter = reload
			ch.output = !ch.output
			if p.OutputCallback != nil {
				p.OutputCallback(i, ch.output)
			}
			if i == 0 && raiseIRQ0 != nil {
				raiseIRQ0()
			}
		} else {
			ch.counter--
		}
	}
}

// ReadPortByte/WritePortByte implement PortDevice across the PIT's
// four-port range (0x40-0x42 data, 0x43 control).
func (p *PIT) ReadPortByte(port uint16) byte {
	if port == 0x43 {
		return 0xFF // control port is write-only
	}
	return p.ReadData(int(port - 0x40))
}

func (p *PIT) WritePortByte(port uint16, v byte) {
	if port == 0x43 {
		p.WriteControl(v)
		return
	}
	p.WriteData(int(port-0x40), v)
}
