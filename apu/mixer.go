package apu

// mixChannels combines the five channel outputs via the NES's two-band
// nonlinear mixing formula. https://www.nesdev.org/wiki/APU_Mixer
func (a *APU) mixChannels() float32 {
	p1 := float32(a.Pulse1.output())
	p2 := float32(a.Pulse2.output())
	t := float32(a.Triangle.output())
	n := float32(a.Noise.output())
	d := float32(a.DMC.output())

	var pulseOut float32
	if p1+p2 > 0 {
		pulseOut = 95.88 / (8128/(p1+p2) + 100)
	}

	var tndOut float32
	if t+n+d > 0 {
		tndOut = 159.79 / (1/(t/8227+n/12241+d/22638) + 100)
	}

	return pulseOut + tndOut
}
