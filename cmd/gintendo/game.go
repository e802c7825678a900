package main

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/bdwalton/gintendo/cartridge"
	"github.com/bdwalton/gintendo/console"
	"github.com/bdwalton/gintendo/ppu"
)

// Buttons, as bits: 0=A 1=B 2=Select 3=Start 4=Up 5=Down 6=Left 7=Right.
var padKeys = []ebiten.Key{
	ebiten.KeyZ,
	ebiten.KeyX,
	ebiten.KeyShift,
	ebiten.KeyEnter,
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

// game adapts a console.Console to the ebiten.Game interface. It holds no
// emulation state of its own beyond the window-facing concerns: input
// polling, frame-to-image conversion, and PCM delivery.
type game struct {
	console *console.Console
	cart    *cartridge.Cartridge
	player  *audio.Player
	stream  *sampleStream

	savePath string
	img      *ebiten.Image
}

func (g *game) Update() error {
	g.console.SetControllerState(0, pollPad())

	frame := g.console.StepFrame()
	g.stream.push(frame.Samples)

	if g.img == nil {
		g.img = ebiten.NewImage(ppu.Width, ppu.Height)
	}
	pixels := frame.Pixels
	rgba := make([]byte, ppu.Width*ppu.Height*4)
	for i, idx := range pixels {
		rgb := ppu.RGB(idx)
		rgba[i*4] = rgb[0]
		rgba[i*4+1] = rgb[1]
		rgba[i*4+2] = rgb[2]
		rgba[i*4+3] = 0xff
	}
	g.img.WritePixels(rgba)

	if g.cart.BatteryBacked() {
		// Persisted on exit by the shell; a real host would debounce this.
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img != nil {
		screen.DrawImage(g.img, nil)
	} else {
		screen.Fill(color.Black)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}

func pollPad() uint8 {
	var v uint8
	for i, k := range padKeys {
		if ebiten.IsKeyPressed(k) {
			v |= 1 << i
		}
	}
	return v
}

// sampleStream adapts the core's per-cycle float32 mono samples to the PCM
// byte stream ebiten's audio.Player reads from, down-sampling naively by
// decimation (the host's sample-rate conversion is explicitly out of scope
// for the core; this is the reference shell's minimal stand-in).
type sampleStream struct {
	mu  sync.Mutex
	buf []byte
}

func newSampleStream() *sampleStream { return &sampleStream{} }

func (s *sampleStream) push(samples []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range samples {
		if i%40 != 0 { // ~1.79MHz / 40 ~= 44.7kHz
			continue
		}
		n := int16(v * 32767)
		s.buf = append(s.buf, byte(n), byte(n>>8), byte(n), byte(n>>8))
	}
}

func (s *sampleStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buf) == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}
