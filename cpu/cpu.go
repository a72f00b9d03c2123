package cpu

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clockworkgnome/lr35902/internal/errs"
)

// MasterClockHz is the LR35902 master clock frequency that the
// dispatcher paces wall time against.
const MasterClockHz = 4194304

// tableState tracks which of the two dense opcode tables the next
// fetch decodes against. It starts Primary and returns to Primary
// after executing exactly one CB-table instruction.
type tableState int

const (
	tablePrimary tableState = iota
	tableCB
)

// CPU is the register file plus the dispatcher's active-table state.
// Embedding *Registers keeps cpu.A, cpu.PC, etc. directly addressable.
type CPU struct {
	*Registers
	table tableState
}

// NewCPU returns a CPU at the architectural reset state, active table
// Primary.
func NewCPU() *CPU {
	return &CPU{Registers: NewRegisters(), table: tablePrimary}
}

// Step fetches one byte at PC, decodes it against the active table,
// executes its handler, advances PC, and returns the t-states
// consumed. It performs no wall-clock pacing; Dispatcher.RunStep does
// that around a call to Step. This split lets tests drive Step
// synchronously against known instruction sequences.
func (c *CPU) Step(b Bus) (cycles int, err error) {
	if c.RunState != Running {
		return 4, nil
	}

	pc0 := c.PC
	op := b.ReadByte(pc0)

	if c.table == tablePrimary && op == 0xCB {
		c.table = tableCB
		c.PC = pc0 + 1
		return 4, nil
	}

	var instr *Instruction
	if c.table == tableCB {
		instr = cbTable[op]
	} else {
		instr = primaryTable[op]
	}
	c.table = tablePrimary

	if instr == nil {
		return 0, fmt.Errorf("%w: 0x%02X at PC 0x%04X", errs.ErrUnknownOpcode, op, pc0)
	}

	result := instr.Handler(c.Registers, b)

	if result.UpdatePC {
		c.PC = pc0 + uint16(instr.Bytes)
	}

	if result.ActionTaken {
		cycles = instr.Cycles.Taken
	} else {
		cycles = instr.Cycles.NotTaken
	}

	return cycles, nil
}

// Dispatcher wraps a CPU and Bus with wall-clock pacing and a log
// surface: debug-level per-step detail, a warning on pacing overshoot,
// and a fatal error on unknown opcode.
type Dispatcher struct {
	CPU     *CPU
	Bus     Bus
	Log     *logrus.Entry
	ClockHz float64
}

// NewDispatcher builds a Dispatcher paced to MasterClockHz. log may be
// nil to run silently (used by tests).
func NewDispatcher(cpu *CPU, bus Bus, log *logrus.Entry) *Dispatcher {
	return &Dispatcher{CPU: cpu, Bus: bus, Log: log, ClockHz: MasterClockHz}
}

// RunStep executes one CPU.Step and paces wall time to the target
// cadence for the cycles it consumed.
func (d *Dispatcher) RunStep() error {
	start := time.Now()
	pc0 := d.CPU.PC

	cycles, err := d.CPU.Step(d.Bus)
	if err != nil {
		if d.Log != nil {
			d.Log.WithField("pc", fmt.Sprintf("0x%04X", pc0)).Error(err)
		}
		return err
	}

	if d.Log != nil {
		d.Log.WithFields(logrus.Fields{
			"pc":     fmt.Sprintf("0x%04X", pc0),
			"cycles": cycles,
		}).Debug("step")
	}

	target := time.Duration(float64(cycles) / d.ClockHz * float64(time.Second))
	elapsed := time.Since(start)
	if elapsed < target {
		time.Sleep(target - elapsed)
	} else if elapsed > target && d.Log != nil {
		d.Log.WithField("overshoot", elapsed-target).Warn("pacing overshoot")
	}

	return nil
}

// Run drives RunStep in a loop. maxSteps <= 0 means unbounded (the
// normal driver mode); a positive maxSteps bounds the loop for
// deterministic test/CI runs.
func (d *Dispatcher) Run(maxSteps int) error {
	for steps := 0; maxSteps <= 0 || steps < maxSteps; steps++ {
		if err := d.RunStep(); err != nil {
			return err
		}
	}
	return nil
}
