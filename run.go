package main

import (
	"log"
	"time"

	"github.com/kd/vip8/chip8"
)

// StateKind tells a StateFunc why it is being invoked.
type StateKind int

const (
	ClearState StateKind = iota
	QuietState           // periodic refresh; watches only
	DebugState           // after a single debugger step
	BreakState           // stopped at a breakpoint
	PauseState
	HaltState // execution hit a fatal fault
)

// A StateFunc receives the machine for inspection. It is called from the
// runner goroutine, which is stopped (or between steps) for the duration of
// the call, so reading machine state is safe.
type StateFunc func(*chip8.Machine, StateKind)

type keyEvent struct {
	r    rune
	down bool
}

type debugCmd struct {
	cmd  string
	addr uint16
}

// Runner drives a Machine: it owns the goroutine that steps it, ticks its
// delay timer at 60 Hz, applies key edges, and hands frames to the GUI.
type Runner struct {
	gui   bool
	dev   bool
	ips   int
	state StateFunc

	keys chan keyEvent
	swap chan []byte
	dbg  chan debugCmd
	done chan struct{}
	code int
}

func NewRunner(enableGUI, devMode bool, ips int, state StateFunc) *Runner {
	return &Runner{
		gui:   enableGUI,
		dev:   devMode,
		ips:   ips,
		state: state,
		keys:  make(chan keyEvent, 64),
		swap:  make(chan []byte),
		dbg:   make(chan debugCmd),
		done:  make(chan struct{}),
	}
}

// Swap loads a new program into the running machine. Only valid in dev mode.
func (r *Runner) Swap(rom []byte) {
	if !r.dev {
		panic("Swap called while not running in dev mode")
	}
	r.swap <- rom
}

// Debug delivers a debugger command to the runner goroutine.
func (r *Runner) Debug(cmd string, addr uint16) {
	r.dbg <- debugCmd{cmd, addr}
}

// Run loads rom and drives m until the program faults or, with the GUI
// enabled, the window is closed. It returns the process exit code.
func (r *Runner) Run(m *chip8.Machine, rom []byte) int {
	var g *gui
	if r.gui {
		g = newGUI(r)
	}
	go func() {
		r.code = r.exec(m, g, rom)
		close(r.done)
	}()
	if g != nil {
		if err := g.Run(r.done); err != nil {
			log.Fatalf("gui: %v", err)
		}
		select {
		case <-r.done:
			return r.code
		default:
			// Window closed while the machine was still running.
			return 0
		}
	}
	<-r.done
	return r.code
}

func (r *Runner) exec(m *chip8.Machine, g *gui, rom []byte) int {
	if err := m.Load(rom); err != nil {
		log.Printf("load: %v", err)
		return 1
	}
	var (
		tick    = time.NewTicker(time.Second / 60)
		ipf     = r.ips / 60 // instruction steps per frame
		lastROM = rom
		paused  = false
		halted  = false
		brk     = -1
	)
	if ipf < 1 {
		ipf = 1
	}
	defer tick.Stop()

	// step runs one instruction and reports whether the frame may
	// continue. A fault halts the machine: fatally in normal mode,
	// recoverably (awaiting a Swap) in dev mode.
	fatal := false
	step := func() bool {
		if err := m.Step(); err != nil {
			log.Printf("chip8: %v", err)
			r.report(m, HaltState)
			halted = true
			fatal = !r.dev
			return false
		}
		if brk == int(m.PC) {
			paused = true
			r.report(m, BreakState)
			return false
		}
		return true
	}

	for {
		select {
		case <-tick.C:
			if !paused && !halted {
				for i := 0; i < ipf; i++ {
					if !step() {
						break
					}
				}
				if fatal {
					return 1
				}
			}
			m.TickTimer()
			if g != nil {
				g.offer(m)
			}
			if !paused && !halted {
				r.report(m, QuietState)
			}
		case k := <-r.keys:
			m.SetKey(k.r, k.down)
		case rom := <-r.swap:
			lastROM = rom
			if err := m.Load(rom); err != nil {
				log.Printf("load: %v", err)
				break
			}
			paused, halted = false, false
			r.report(m, ClearState)
		case c := <-r.dbg:
			switch c.cmd {
			case "exit":
				return 0
			case "p", "pause":
				paused = true
				r.report(m, PauseState)
			case "c", "cont":
				paused = false
				r.report(m, ClearState)
			case "s", "step":
				if halted {
					break
				}
				paused = true
				if step() {
					r.report(m, DebugState)
				} else if fatal {
					return 1
				}
			case "r", "reset":
				if err := m.Load(lastROM); err != nil {
					log.Printf("load: %v", err)
					break
				}
				paused, halted = false, false
				r.report(m, ClearState)
			case "b", "break":
				if c.addr == 0 {
					brk = -1
				} else {
					brk = int(c.addr)
				}
			}
		}
	}
}

func (r *Runner) report(m *chip8.Machine, k StateKind) {
	if r.state != nil {
		r.state(m, k)
	}
}
