package apu

// LengthCounter is shared by all four tone/noise channels; it silences a
// channel a fixed number of frame-counter half-clocks after being loaded,
// unless halted.
type LengthCounter struct {
	value uint8
}

func (l *LengthCounter) load(index uint8) { l.value = lengthTable[index&0x1f] }
func (l *LengthCounter) active() bool     { return l.value > 0 }

func stepLengthCounter(l *LengthCounter, halt bool) {
	if !halt && l.value > 0 {
		l.value--
	}
}

var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// EnvelopeGenerator is the decay-to-constant-or-looping volume unit shared
// by the pulse and noise channels.
type EnvelopeGenerator struct {
	start    bool
	loop     bool
	constant bool
	volume   uint8 // constant-mode volume, or envelope divider period
	decay    uint8
	divider  uint8
}

func stepEnvelope(e *EnvelopeGenerator) {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.volume
		return
	}
	if e.divider > 0 {
		e.divider--
		return
	}
	e.divider = e.volume
	if e.decay > 0 {
		e.decay--
	} else if e.loop {
		e.decay = 15
	}
}

func (e *EnvelopeGenerator) output() uint8 {
	if e.constant {
		return e.volume
	}
	return e.decay
}

// SweepUnit periodically adjusts a pulse channel's timer period up or down.
type SweepUnit struct {
	enabled bool
	period  uint8
	negate  bool
	shift   uint8
	reload  bool
	divider uint8
}

func stepSweep(s *SweepUnit, timerPeriod *uint16, onesComplement bool) {
	target := sweepTarget(s, *timerPeriod, onesComplement)
	muted := *timerPeriod < 8 || target > 0x7ff

	if s.divider == 0 && s.enabled && s.shift > 0 && !muted {
		*timerPeriod = target
	}
	if s.divider == 0 || s.reload {
		s.divider = s.period
		s.reload = false
	} else {
		s.divider--
	}
}

func sweepTarget(s *SweepUnit, period uint16, onesComplement bool) uint16 {
	change := period >> s.shift
	if !s.negate {
		return period + change
	}
	if onesComplement {
		if change+1 > period {
			return 0
		}
		return period - change - 1
	}
	return period - change
}

func sweepMuted(s *SweepUnit, timerPeriod uint16, onesComplement bool) bool {
	return timerPeriod < 8 || sweepTarget(s, timerPeriod, onesComplement) > 0x7ff
}

var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// PulseChannel is one of the two square-wave channels.
type PulseChannel struct {
	enabled bool
	duty    uint8
	Envelope EnvelopeGenerator
	Sweep    SweepUnit
	Length   LengthCounter

	lengthHalt     bool
	onesComplement bool // pulse1: true (ones-complement negate); pulse2: false

	timerPeriod uint16
	timerValue  uint16
	dutyStep    uint8
}

func (a *APU) stepPulse(p *PulseChannel) {
	if p.timerValue == 0 {
		p.timerValue = p.timerPeriod
		p.dutyStep = (p.dutyStep + 1) % 8
	} else {
		p.timerValue--
	}
}

func (p *PulseChannel) output() uint8 {
	if !p.enabled || !p.Length.active() {
		return 0
	}
	if p.timerPeriod < 8 || sweepMuted(&p.Sweep, p.timerPeriod, p.onesComplement) {
		return 0
	}
	if dutyTable[p.duty][p.dutyStep] == 0 {
		return 0
	}
	return p.Envelope.output()
}

var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// TriangleChannel is the fixed-volume 32-step triangle wave generator.
type TriangleChannel struct {
	enabled bool

	linearReload     uint8
	linearCounter    uint8
	linearReloadFlag bool
	lengthHalt       bool

	Length LengthCounter

	timerPeriod uint16
	timerValue  uint16
	dutyStep    uint8
}

func (a *APU) stepTriangle() {
	t := &a.Triangle
	if t.timerValue == 0 {
		t.timerValue = t.timerPeriod
		if t.enabled && t.Length.active() && t.linearCounter > 0 {
			t.dutyStep = (t.dutyStep + 1) % 32
		}
	} else {
		t.timerValue--
	}
}

func (t *TriangleChannel) output() uint8 {
	if !t.enabled || !t.Length.active() {
		return 0
	}
	return triangleSequence[t.dutyStep]
}

var noisePeriodTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// NoiseChannel generates pseudo-random output from a 15-bit LFSR.
type NoiseChannel struct {
	enabled bool
	mode    bool // true: short/tap-bit-6 mode

	Envelope EnvelopeGenerator
	Length   LengthCounter

	lengthHalt bool

	timerPeriod uint16
	timerValue  uint16
	shiftReg    uint16
}

func (a *APU) stepNoise() {
	n := &a.Noise
	if n.timerValue == 0 {
		n.timerValue = n.timerPeriod
		tapBit := uint16(1)
		if n.mode {
			tapBit = 6
		}
		feedback := (n.shiftReg ^ (n.shiftReg >> tapBit)) & 1
		n.shiftReg >>= 1
		n.shiftReg |= feedback << 14
	} else {
		n.timerValue--
	}
}

func (n *NoiseChannel) output() uint8 {
	if !n.enabled || !n.Length.active() || n.shiftReg&1 != 0 {
		return 0
	}
	return n.Envelope.output()
}

var dmcRateTable = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214, 190, 160, 142, 128, 106, 84, 72, 54,
}

// DMCChannel plays back 1-bit delta-modulated samples fetched directly
// from CPU address space.
type DMCChannel struct {
	enabled bool

	irqEnabled bool
	irqPending bool
	loop       bool

	rateIndex     uint8
	timerValue    uint16
	outputLevel   uint8
	sampleAddress uint16
	sampleLength  uint16

	currentAddress uint16
	bytesRemaining uint16

	sampleBuffer uint8
	bufferEmpty  bool

	shiftReg      uint8
	bitsRemaining uint8
	silence       bool
}

func (a *APU) stepDMC() {
	d := &a.DMC
	if !d.enabled {
		return
	}

	if d.timerValue == 0 {
		d.timerValue = dmcRateTable[d.rateIndex&0x0f]

		if d.bufferEmpty && d.bytesRemaining > 0 && a.mem != nil {
			d.sampleBuffer = a.mem.Read(d.currentAddress)
			d.bufferEmpty = false
			a.stallCycles += 4

			d.currentAddress++
			if d.currentAddress == 0 {
				d.currentAddress = 0x8000
			}
			d.bytesRemaining--
			if d.bytesRemaining == 0 {
				if d.loop {
					d.currentAddress = d.sampleAddress
					d.bytesRemaining = d.sampleLength
				} else if d.irqEnabled {
					d.irqPending = true
				}
			}
		}

		if d.bitsRemaining == 0 {
			d.bitsRemaining = 8
			if d.bufferEmpty {
				d.silence = true
			} else {
				d.silence = false
				d.shiftReg = d.sampleBuffer
				d.bufferEmpty = true
			}
		}

		if !d.silence {
			if d.shiftReg&1 != 0 {
				if d.outputLevel <= 125 {
					d.outputLevel += 2
				}
			} else {
				if d.outputLevel >= 2 {
					d.outputLevel -= 2
				}
			}
		}
		d.shiftReg >>= 1
		d.bitsRemaining--
	} else {
		d.timerValue--
	}
}

func (d *DMCChannel) output() uint8 { return d.outputLevel }
