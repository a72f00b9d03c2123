// Command lr35902 loads a cartridge image, validates it, and runs the
// fetch/decode/execute loop against it.
package main

import (
	"fmt"
	"os"

	"github.com/clockworkgnome/lr35902/cpu"
	"github.com/clockworkgnome/lr35902/internal/config"
	"github.com/clockworkgnome/lr35902/internal/logging"
	"github.com/clockworkgnome/lr35902/mmu"
	"github.com/clockworkgnome/lr35902/rom"
)

func run(opts config.Options) error {
	log := logging.New(opts.Verbosity)

	cart, err := rom.Load(opts.ROMPath)
	if err != nil {
		log.Error(err)
		return err
	}
	log.Info(cart.Header.String())

	bus := mmu.New(cart.Data)
	c := cpu.NewCPU()
	d := cpu.NewDispatcher(c, bus, log.WithField("component", "dispatcher"))

	if err := d.Run(opts.MaxSteps); err != nil {
		return err
	}

	log.Info("emulation loop terminated")
	return nil
}

func main() {
	root := config.NewRootCommand(run)
	if err := root.Execute(); err != nil {
		// Every fatal kind this driver raises (ErrIO, ErrInvalidHeader,
		// ErrInvalidLogo, ErrUnknownOpcode) maps to the same exit code;
		// only the logged message distinguishes them.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
