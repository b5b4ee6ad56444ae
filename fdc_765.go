// fdc_765.go - NEC uPD765 Floppy Disk Controller
//
// No teacher analogue (the teacher's CPUs have no disk peripheral); grounded
// directly on spec.md §4.8's phase/command description and
// original_source/core/src/fdc/public.h's field layout (MSR/DOR/ST0-2 bit
// positions, kFDCNumDrives, 9/7-byte command/result buffer caps), following
// the per-chip struct+Reset()+PortDevice shape established by pic_8259.go.

package main

const (
	fdcNumDrives        = 4
	fdcCommandBufferCap = 9
	fdcResultBufferCap  = 7
)

// fdcPhase names the controller's command/execute/result state machine.
type fdcPhase int

const (
	fdcPhaseIdle fdcPhase = iota
	fdcPhaseCommand
	fdcPhaseExecution
	fdcPhaseResult
)

// MSR (Main Status Register) bits.
const (
	msrDriveBusyBase = 1 << 0 // bits 0-3: drive 0-3 busy (seek in progress)
	msrCtlBusy       = 1 << 4 // a command is being received/executed
	msrNonDMA        = 1 << 5 // execution phase running in non-DMA mode
	msrDIO           = 1 << 6 // 0 = CPU->FDC (expects a write), 1 = FDC->CPU (expects a read)
	msrRQM           = 1 << 7 // data register ready for the next byte
)

// ST0 bits.
const (
	st0IC0       = 1 << 6 // interrupt code low bit (00=normal, 01=abnormal, 10=invalid, 11=drive not ready)
	st0IC1       = 1 << 7
	st0SeekEnd   = 1 << 5
	st0NotReady  = 1 << 3
	st0HeadMask  = 1 << 2
	st0UnitMask  = 0x03
)

// ST1/ST2 bits used by this model (subset relevant to image-bounds errors).
const (
	st1EndOfCylinder = 1 << 7
	st1NoData        = 1 << 2
	st1NoAddressMark = 1 << 0
)

// DOR (Digital Output Register, port 0x3F2) bits.
const (
	dorDriveSelectMask = 0x03
	dorReset           = 1 << 2 // 0 = held in reset
	dorDMAEnable       = 1 << 3
	dorMotorBase       = 1 << 4 // bits 4-7: motor enable per drive
)

// fdcDrive holds the per-drive geometry and position state spec.md §3
// assigns to the FDC module.
type fdcDrive struct {
	present       bool
	heads         byte
	tracks        byte
	sectorsTrack  byte
	sectorSize    int // bytes; derived from the command's N field when relevant, defaulted from geometry otherwise
	currentTrack  byte
	lastST0       byte
	pendingIRQ    bool // Seek/Recalibrate completion awaiting Sense Interrupt Status
}

// fdcCommand describes one of the ten commands the controller recognizes:
// its name, how many parameter bytes follow the command byte, and the
// handler that runs once the parameter bytes are all in.
type fdcCommand struct {
	name       string
	paramCount int
	execute    func(c *FDC)
}

const (
	cmdReadData             = 0x06
	cmdWriteData            = 0x05
	cmdReadDeletedData      = 0x0C
	cmdFormatTrack          = 0x0D
	cmdRecalibrate          = 0x07
	cmdSenseInterruptStatus = 0x08
	cmdSeek                 = 0x0F
	cmdSenseDriveStatus     = 0x04
	cmdSpecify              = 0x03
	cmdReadID               = 0x0A
)

// FDC implements the uPD765 as wired on the PC/XT: DOR at 0x3F2, MSR at
// 0x3F4 (read-only), data register at 0x3F5.
type FDC struct {
	drives [fdcNumDrives]fdcDrive

	dor byte
	msr byte

	phase fdcPhase

	commandBuf staticVector[byte]
	resultBuf  staticVector[byte]
	resultPos  int // next byte index ReadData returns from resultBuf

	commands map[byte]*fdcCommand

	// execution sub-state for data-transfer commands (Read/Write/Read
	// Deleted Data), per spec.md §3.
	exDrive    int
	exCylinder byte
	exHead     byte
	exSector   byte
	exN        byte // sector-size code: size = 128 << N
	exEOT      byte
	exMT       bool
	exWrite    bool
	exByteIdx  int // byte offset within the current sector
	exDone     bool

	// Format Track sub-state: four bytes per sector descriptor (C,H,R,N)
	// fed in as "data" during execution in a real controller; this model
	// instead takes the track geometry from the command bytes directly and
	// fills every sector with the fill byte, since no host-supplied data
	// stream is part of this module's scope.
	formatFillByte byte

	// Callbacks, wired by component_reset.go.
	RaiseIRQ6 func()
	// RequestDMA asserts DREQ for one byte: diskByte is the byte read from
	// the image (meaningful only when the transfer direction is
	// peripheral->memory); it returns the byte the DMA engine fetched from
	// memory (meaningful only for memory->peripheral) and whether the
	// transfer reached terminal count.
	RequestDMA     func(diskByte byte) (memByte byte, tc bool)
	ReadImageByte  func(drive int, offset int) (byte, bool)
	WriteImageByte func(drive int, offset int, v byte) bool
}

// NewFDC returns an FDC with all drives absent and the controller held in
// reset, matching power-on (DOR=0).
func NewFDC() *FDC {
	c := &FDC{}
	c.commandBuf = newStaticVector[byte](fdcCommandBufferCap)
	c.resultBuf = newStaticVector[byte](fdcResultBufferCap)
	c.installCommands()
	c.Reset()
	return c
}

// ConfigureDrive installs a drive's geometry and presence, called once at
// platform assembly time (mounting a floppy image).
func (c *FDC) ConfigureDrive(n int, present bool, heads, tracks, sectorsTrack byte, sectorSize int) {
	c.drives[n] = fdcDrive{
		present:      present,
		heads:        heads,
		tracks:       tracks,
		sectorsTrack: sectorsTrack,
		sectorSize:   sectorSize,
	}
}

func (c *FDC) installCommands() {
	c.commands = map[byte]*fdcCommand{
		cmdReadData:             {"read data", 8, (*FDC).execReadWrite},
		cmdWriteData:            {"write data", 8, (*FDC).execReadWrite},
		cmdReadDeletedData:      {"read deleted data", 8, (*FDC).execReadWrite},
		cmdFormatTrack:          {"format track", 5, (*FDC).execFormatTrack},
		cmdRecalibrate:          {"recalibrate", 1, (*FDC).execRecalibrate},
		cmdSenseInterruptStatus: {"sense interrupt status", 0, (*FDC).execSenseInterruptStatus},
		cmdSeek:                 {"seek", 2, (*FDC).execSeek},
		cmdSenseDriveStatus:     {"sense drive status", 1, (*FDC).execSenseDriveStatus},
		cmdSpecify:              {"specify", 2, (*FDC).execSpecify},
		cmdReadID:               {"read id", 1, (*FDC).execReadID},
	}
}

// Reset returns the controller to its idle, unselected state. Called both
// at platform power-on and whenever DOR's reset bit is pulled low, per
// spec.md ("a write of 0 to DOR resets the FDC").
func (c *FDC) Reset() {
	c.dor = 0
	c.msr = msrRQM
	c.phase = fdcPhaseIdle
	c.commandBuf.Clear()
	c.resultBuf.Clear()
	c.resultPos = 0
	for i := range c.drives {
		c.drives[i].currentTrack = 0
		c.drives[i].pendingIRQ = false
	}
}

// WriteDOR handles a write to the Digital Output Register (0x3F2).
// Detects the reset-line transitions spec.md names: any write with bit 2
// clear resets the controller; a 0->1 transition on that bit afterward
// raises IRQ6 as "post-reset polling".
func (c *FDC) WriteDOR(v byte) {
	wasReset := c.dor&dorReset == 0
	c.dor = v
	if v&dorReset == 0 {
		c.Reset()
		return
	}
	if wasReset {
		if c.RaiseIRQ6 != nil {
			c.RaiseIRQ6()
		}
	}
}

// ReadMSR returns the Main Status Register, recomputed from the current
// phase: RQM set whenever the data register is ready for the host, DIO
// indicating direction, CB set throughout command/execution.
func (c *FDC) ReadMSR() byte {
	msr := byte(0)
	switch c.phase {
	case fdcPhaseIdle:
		msr = msrRQM // DIO=0: ready to accept a command byte
	case fdcPhaseCommand:
		msr = msrRQM | msrCtlBusy // still expects more command bytes
	case fdcPhaseExecution:
		msr = msrCtlBusy // RQM clear while the DMA engine is working, per spec.md
	case fdcPhaseResult:
		msr = msrRQM | msrDIO | msrCtlBusy
	}
	return msr
}

// ReadData handles a read of the data register (0x3F5): only meaningful
// during the result phase, returning successive result bytes and
// returning to idle once exhausted.
func (c *FDC) ReadData() byte {
	if c.phase != fdcPhaseResult {
		return 0xFF
	}
	if c.resultPos >= c.resultBuf.Len() {
		return 0xFF
	}
	v := c.resultBuf.At(c.resultPos)
	c.resultPos++
	if c.resultPos >= c.resultBuf.Len() {
		c.phase = fdcPhaseIdle
		c.resultBuf.Clear()
		c.resultPos = 0
	}
	return v
}

// WriteData handles a write of the data register: appends to the command
// buffer while idle or mid-command, dispatching to the command's execute
// handler once every declared parameter byte has arrived.
func (c *FDC) WriteData(v byte) {
	if c.phase != fdcPhaseIdle && c.phase != fdcPhaseCommand {
		return
	}
	c.phase = fdcPhaseCommand
	c.commandBuf.Push(v)

	opcode := c.commandBuf.At(0) & 0x1F
	cmd, ok := c.commands[opcode]
	if !ok {
		// Unrecognized command: report invalid-command via ST0 and go
		// straight to result, mirroring real uPD765 behavior.
		c.resultBuf.Clear()
		c.resultBuf.Push(st0IC1) // IC=10 invalid command
		c.phase = fdcPhaseResult
		c.resultPos = 0
		c.commandBuf.Clear()
		return
	}
	if c.commandBuf.Len()-1 < cmd.paramCount {
		return
	}
	cmd.execute(c)
}

func (c *FDC) beginResult() {
	c.resultBuf.Clear()
	c.resultPos = 0
	c.phase = fdcPhaseResult
	c.commandBuf.Clear()
}

func (c *FDC) execSpecify() {
	// Step-rate/head-load/head-unload timing bytes; this model has no
	// timing to apply them to. Specify produces no result phase.
	c.phase = fdcPhaseIdle
	c.commandBuf.Clear()
}

func (c *FDC) execSenseDriveStatus() {
	unit := c.commandBuf.At(1) & 0x03
	st3 := unit
	d := &c.drives[unit]
	if d.present {
		st3 |= 1 << 5 // write-protect never set; track0/ready bits implied present
	}
	c.beginResult()
	c.resultBuf.Push(st3)
}

func (c *FDC) execRecalibrate() {
	unit := c.commandBuf.At(1) & 0x03
	d := &c.drives[int(unit)]
	d.currentTrack = 0
	d.lastST0 = st0SeekEnd | unit
	d.pendingIRQ = true
	c.phase = fdcPhaseIdle
	c.commandBuf.Clear()
	if c.RaiseIRQ6 != nil {
		c.RaiseIRQ6()
	}
}

func (c *FDC) execSeek() {
	unit := c.commandBuf.At(1) & 0x03
	target := c.commandBuf.At(2)
	d := &c.drives[int(unit)]
	d.currentTrack = target
	d.lastST0 = st0SeekEnd | unit
	d.pendingIRQ = true
	c.phase = fdcPhaseIdle
	c.commandBuf.Clear()
	if c.RaiseIRQ6 != nil {
		c.RaiseIRQ6()
	}
}

func (c *FDC) execSenseInterruptStatus() {
	// Reports whichever drive most recently completed a Seek/Recalibrate;
	// a full controller tracks this per-drive and multiplexes, but this
	// model has at most one outstanding pending-interrupt drive at a time
	// in the scenarios this core drives.
	for i := range c.drives {
		if c.drives[i].pendingIRQ {
			c.drives[i].pendingIRQ = false
			c.beginResult()
			c.resultBuf.Push(c.drives[i].lastST0)
			c.resultBuf.Push(c.drives[i].currentTrack)
			return
		}
	}
	c.beginResult()
	c.resultBuf.Push(st0IC1) // no interrupt pending: invalid command per 765 convention
}

func (c *FDC) execReadID() {
	unit := c.commandBuf.At(1) & 0x03
	d := &c.drives[int(unit)]
	c.beginResult()
	c.resultBuf.Push(0)
	c.resultBuf.Push(0)
	c.resultBuf.Push(0)
	c.resultBuf.Push(d.currentTrack)
	c.resultBuf.Push(0)
	c.resultBuf.Push(1)
	c.resultBuf.Push(2) // N=2 -> 512-byte sectors, the size the BIOS disk services use
}

// execReadWrite starts the execution phase for Read Data / Write Data /
// Read Deleted Data, per spec.md §4.8's numbered steps.
func (c *FDC) execReadWrite() {
	buf := &c.commandBuf
	opByte := buf.At(0)
	c.exMT = opByte&0x80 != 0
	c.exWrite = buf.At(0)&0x1F == cmdWriteData
	c.exDrive = int(buf.At(1) & 0x03)
	c.exCylinder = buf.At(2)
	c.exHead = buf.At(3)
	c.exSector = buf.At(4)
	c.exN = buf.At(5)
	c.exEOT = buf.At(6)
	c.exByteIdx = 0
	c.exDone = false
	c.phase = fdcPhaseExecution
	c.commandBuf.Clear()
	c.pumpExecution()
}

func (c *FDC) sectorSize() int {
	return 128 << c.exN
}

// pumpExecution drives the byte-at-a-time DREQ/DMA/image handshake spec.md
// §4.8 describes. It is called once, from execReadWrite; a cooperative
// core with no suspension points completes the entire transfer
// synchronously here rather than one byte per host tick, since nothing
// observes the difference before TC.
func (c *FDC) pumpExecution() {
	d := &c.drives[c.exDrive]
	size := c.sectorSize()
	for !c.exDone {
		offset := chsLinearOffset(int(c.exCylinder), int(c.exHead), int(c.exSector), int(d.heads), int(d.sectorsTrack), size)
		byteOffset := offset + c.exByteIdx

		if c.RequestDMA == nil {
			break
		}
		var imgByte byte
		var ok bool
		if !c.exWrite {
			imgByte, ok = c.ReadImageByte(c.exDrive, byteOffset)
			if !ok {
				c.finishExecution(st1NoData, 0)
				return
			}
		}
		memByte, tc := c.RequestDMA(imgByte)
		if c.exWrite {
			if !c.WriteImageByte(c.exDrive, byteOffset, memByte) {
				c.finishExecution(st1NoData, 0)
				return
			}
		}

		c.exByteIdx++
		if c.exByteIdx >= size {
			c.exByteIdx = 0
			c.advanceSector()
		}
		if tc {
			c.finishExecution(0, 0)
			return
		}
	}
}

// advanceSector implements the CHS-walking rule of spec.md step 4: sector
// increments within a track; at end-of-track it wraps to the next head
// (if MT) or the next cylinder, bounded by EOT.
func (c *FDC) advanceSector() {
	d := &c.drives[c.exDrive]
	c.exSector++
	if c.exSector > c.exEOT {
		c.exSector = 1
		if c.exMT && c.exHead == 0 && d.heads > 1 {
			c.exHead = 1
		} else {
			c.exHead = 0
			c.exCylinder++
		}
	}
}

func (c *FDC) finishExecution(st1, st2 byte) {
	c.exDone = true
	d := &c.drives[c.exDrive]
	st0 := byte(c.exDrive) & st0UnitMask
	if st1 != 0 || st2 != 0 {
		st0 |= st0IC0
	}
	c.beginResult()
	c.resultBuf.Push(st0)
	c.resultBuf.Push(st1)
	c.resultBuf.Push(st2)
	c.resultBuf.Push(c.exCylinder)
	c.resultBuf.Push(c.exHead)
	c.resultBuf.Push(c.exSector)
	c.resultBuf.Push(c.exN)
	d.currentTrack = c.exCylinder
	if c.RaiseIRQ6 != nil {
		c.RaiseIRQ6()
	}
}

// execFormatTrack fills an entire track with the fill byte, one sector at
// a time, using the same image-write callback data transfers use. No
// DMA/DREQ handshake applies to the supplemented geometry bytes the real
// controller would stream in; this model takes N/sectorsPerTrack/GPL/fill
// byte directly from the command buffer, matching spec.md's naming of
// "format track" as a plain per-sector fill operation.
func (c *FDC) execFormatTrack() {
	buf := &c.commandBuf
	unit := int(buf.At(1) & 0x03)
	n := buf.At(2)
	sectorsPerTrack := buf.At(3)
	// buf.At(4) is GPL (gap length), not modeled since this core has no
	// timing to apply it to.
	fill := buf.At(5)
	d := &c.drives[unit]
	size := 128 << n

	for s := 1; s <= int(sectorsPerTrack); s++ {
		offset := chsLinearOffset(int(d.currentTrack), 0, s, int(d.heads), int(sectorsPerTrack), size)
		for i := 0; i < size; i++ {
			if c.WriteImageByte != nil {
				c.WriteImageByte(unit, offset+i, fill)
			}
		}
	}

	c.exDrive = unit
	c.exCylinder = d.currentTrack
	c.exHead = 0
	c.exSector = byte(sectorsPerTrack)
	c.exN = n
	c.finishExecution(0, 0)
}

// chsLinearOffset implements spec.md §6's floppy image offset formula.
func chsLinearOffset(cylinder, head, sector, numHeads, sectorsPerTrack, sectorSize int) int {
	return ((cylinder*numHeads+head)*sectorsPerTrack + (sector - 1)) * sectorSize
}

// ReadPortByte/WritePortByte implement PortDevice across the FDC's
// register range: DOR=0x3F2, MSR=0x3F4 (read-only), data=0x3F5.
func (c *FDC) ReadPortByte(port uint16) byte {
	switch port {
	case 0x3F4:
		return c.ReadMSR()
	case 0x3F5:
		return c.ReadData()
	}
	return 0xFF
}

func (c *FDC) WritePortByte(port uint16, v byte) {
	switch port {
	case 0x3F2:
		c.WriteDOR(v)
	case 0x3F5:
		c.WriteData(v)
	}
}
