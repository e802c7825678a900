// Command gintendo is a thin reference host shell: it loads an iNES ROM,
// drives the emulation core, and presents its framebuffer/audio/input
// through an ebiten window. None of this package's internals are part of
// the core's contract; it exists to exercise the core the way a real host
// would.
package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/spf13/cobra"

	"github.com/bdwalton/gintendo/cartridge"
	"github.com/bdwalton/gintendo/console"
)

const sampleRate = 44100

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var scale int

	cmd := &cobra.Command{
		Use:   "gintendo <rom>",
		Short: "Run an NES ROM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], scale)
		},
	}
	cmd.Flags().IntVar(&scale, "scale", 2, "integer window scale factor")
	return cmd
}

func run(path string, scale int) error {
	c, err := cartridge.LoadFile(path)
	if err != nil {
		return err
	}

	cons, err := console.New(c)
	if err != nil {
		return err
	}

	if c.BatteryBacked() {
		if saved, err := os.ReadFile(path + ".sav"); err == nil {
			c.RestoreSaveRAM(saved)
		}
	}

	g := &game{console: cons, cart: c, savePath: path + ".sav", stream: newSampleStream()}

	audioCtx := audio.NewContext(sampleRate)
	g.player, err = audioCtx.NewPlayer(g.stream)
	if err != nil {
		return err
	}
	g.player.Play()

	ebiten.SetWindowTitle("gintendo")
	ebiten.SetWindowSize(256*scale, 240*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(g)
	if c.BatteryBacked() {
		if err := os.WriteFile(g.savePath, c.SaveRAM(), 0o644); err != nil && runErr == nil {
			return err
		}
	}
	return runErr
}
