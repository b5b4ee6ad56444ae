// main.go - minimal assembly entry point
//
// Host integration (a GUI frontend, real floppy image files, real audio
// output) is explicitly out of this core's scope (spec.md §1); this is
// only a thin demonstration harness showing how a host wires the pieces
// together, in the spirit of the teacher's construct-peripherals-then-run
// main(), stripped of its GUI/audio backend selection since this module
// has no equivalent of those host-facing concerns to select between.

package main

import "log"

const defaultConventionalMemoryKB = 640

func main() {
	machine := NewMachine(defaultConventionalMemoryKB)

	log.Printf("machine assembled: %d KiB conventional RAM, CS:IP = %04X:%04X",
		defaultConventionalMemoryKB, machine.CPU.CS(), machine.CPU.IP())

	for i := 0; i < 1_000_000; i++ {
		status := machine.CPU.Step()
		switch status {
		case StatusOK:
			continue
		case StatusHalt:
			log.Printf("CPU halted at step %d", i)
			return
		default:
			log.Printf("CPU stopped with status %q at step %d", status, i)
			return
		}
	}
	log.Printf("step budget exhausted")
}
