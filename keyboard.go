// keyboard.go - PC/XT keyboard reset/ack protocol and scancode queue
//
// Grounded on spec.md §4.7's keyboard protocol description (steady-state
// emission, ack pulse detection, 20ms reset sequence) and static_vector.go's
// staticRing for the scancode queue, per spec's "inline arrays" design note.

package main

const (
	keyboardResetThresholdMs = 20
	keyboardSelfTestOK       = 0xAA
	keyboardRingCapacity     = 16
)

// keyboard reset-timer sentinel meaning "the 20ms threshold has already
// fired for this reset sequence" (distinct from any real millisecond
// count, so normal counting never collides with it).
const keyboardResetFired = -1

// Keyboard models the PC/XT keyboard's scancode queue and its reset/ack
// handshake with the PPI.
type Keyboard struct {
	queue staticRing[byte]

	enableClear bool // Port B bit 7 as last observed
	clockLow    bool // Port B bit 6 as last observed

	awaitingAck  bool // a scancode has been sent and not yet ack'd
	resetTimer   int  // milliseconds since clock_low went false; keyboardResetFired once armed
	lastScancode byte // most recent byte handed to SendScancode, for INT 09h to read back

	// SendScancode delivers the next byte to the host (normally wired to
	// PPI.LatchScancode) and RaiseIRQ1 signals the corresponding IRQ1
	// line (normally wired to the platform's PIC).
	SendScancode func(code byte)
	RaiseIRQ1    func()
}

// NewKeyboard returns a keyboard in its steady idle state.
func NewKeyboard() *Keyboard {
	k := &Keyboard{queue: newStaticRing[byte](keyboardRingCapacity)}
	k.Reset()
	return k
}

// Reset clears the queue and control-line history; the keyboard starts in
// steady state (not mid-reset).
func (k *Keyboard) Reset() {
	k.queue.Clear()
	k.enableClear = false
	k.clockLow = true
	k.awaitingAck = false
	k.resetTimer = 0
	k.lastScancode = 0
}

// PressKey appends a scancode to the input ring; dropped on overflow, per
// spec.md.
func (k *Keyboard) PressKey(scancode byte) {
	k.queue.PushBack(scancode)
}

// LastScancode returns the most recent byte this keyboard handed to
// SendScancode (and therefore latched into the PPI's Port A), for the
// IRQ1 handler to read back.
func (k *Keyboard) LastScancode() byte { return k.lastScancode }

// SetControl is called whenever the PPI's Port B bits 6/7 change. It
// detects the ack pulse (enable_clear rising then falling) and the start
// of the reset sequence (clock_low falling edge).
func (k *Keyboard) SetControl(enableClear, clockLow bool) {
	if enableClear && !k.enableClear {
		// rising edge: ack pulse begins; nothing to do until it falls
	} else if !enableClear && k.enableClear && k.awaitingAck {
		k.awaitingAck = false
	}

	if !clockLow && k.clockLow {
		// falling edge on clock_low: BIOS pulling the line to start reset
		k.resetTimer = 0
	} else if clockLow && !k.clockLow && k.resetTimer == keyboardResetFired {
		// reset sequence completes when clock_low is released again
		// after the threshold fired; nothing further required here since
		// the self-test byte was already queued when the timer fired.
	}

	k.enableClear = enableClear
	k.clockLow = clockLow
}

// Tick advances the keyboard by one millisecond: advances the reset timer
// (queuing the self-test-OK scancode once the threshold is crossed) and
// emits a queued scancode if the steady-state conditions allow it.
func (k *Keyboard) Tick() {
	if !k.clockLow && k.resetTimer != keyboardResetFired {
		k.resetTimer++
		if k.resetTimer >= keyboardResetThresholdMs {
			k.queue.Clear()
			k.queue.PushBack(keyboardSelfTestOK)
			k.resetTimer = keyboardResetFired
		}
	}

	if k.awaitingAck {
		return
	}
	if k.clockLow && !k.enableClear && !k.queue.Empty() {
		code, ok := k.queue.PopFront()
		if ok {
			k.awaitingAck = true
			k.lastScancode = code
			if k.SendScancode != nil {
				k.SendScancode(code)
			}
			if k.RaiseIRQ1 != nil {
				k.RaiseIRQ1()
			}
		}
	}
}
