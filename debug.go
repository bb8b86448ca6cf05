package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/kd/vip8/chip8"
)

type debugger struct {
	run *Runner

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	brk *uint16

	mu      sync.Mutex
	watches []watch
}

type watch struct {
	addr  uint16
	short bool
}

func newDebugView(r *Runner) *debugger {
	d := &debugger{
		run: r,
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 4, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		if cmd == "exit" {
			d.app.Stop()
			return
		}
		if cmd, arg, ok := strings.Cut(cmd, " "); ok {
			addr, err := parseAddr(arg)
			if err != nil {
				log.Printf("invalid addr %q", arg)
				return
			}
			switch cmd {
			case "b", "break":
				d.run.Debug(cmd, addr)
				d.brk = &addr
				log.Printf("set break %.4x", addr)
				return
			case "w", "w2", "watch", "watch2":
				d.mu.Lock()
				d.watches = append(d.watches,
					watch{addr: addr, short: strings.HasSuffix(cmd, "2")})
				d.mu.Unlock()
				log.Printf("watching %.4x", addr)
				return
			}
			log.Printf("unknown command %q", cmd)
			return
		}
		d.run.Debug(cmd, 0)
		if cmd[0] == 'b' {
			d.brk = nil
			log.Print("cleared break")
		}
	})
	return d
}

// parseAddr reads a hexadecimal machine address such as "2a0" or "0x2a0".
func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	return uint16(v), err
}

func (d *debugger) Run() error { return d.app.Run() }

func (d *debugger) StateFunc(m *chip8.Machine, k StateKind) {
	var (
		watch = d.watchContent(m)
		state string
	)
	if k != ClearState && k != QuietState {
		state = stateMsg(m, k)
	}
	d.app.QueueUpdateDraw(func() {
		switch k {
		case DebugState, ClearState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case BreakState:
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case PauseState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case HaltState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		if k != QuietState {
			d.state.SetText(state)
		}
	})
}

func stateMsg(m *chip8.Machine, k StateKind) string {
	inst := "???"
	if int(m.PC)+1 < len(m.Mem) {
		if i, ok := chip8.Decode(m.Mem[m.PC], m.Mem[m.PC+1]); ok {
			inst = i.String()
		}
	}
	kind := "       "
	switch k {
	case BreakState:
		kind = "[break]"
	case DebugState:
		kind = "[debug]"
	case PauseState:
		kind = "[pause]"
	case HaltState:
		kind = "[HALT!]"
	}
	return fmt.Sprintf("%.4x %- 16s %s\ni %.4x  dt %.2x  st %.2x  stack %v\nv  % x\n",
		m.PC, inst, kind, m.I, m.DT, m.ST, m.Stack, m.V[:])
}

func (d *debugger) watchContent(m *chip8.Machine) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	if a := d.brk; a != nil {
		fmt.Fprintf(&b, "[%.4x] brk!\n", *a)
	}
	for _, w := range d.watches {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%.4x] ", w.addr)
		if int(w.addr)+1 >= len(m.Mem) {
			b.WriteString("????")
		} else if w.short {
			fmt.Fprintf(&b, "%.2x%.2x", m.Mem[w.addr], m.Mem[w.addr+1])
		} else {
			fmt.Fprintf(&b, "  %.2x", m.Mem[w.addr])
		}
	}
	return b.String()
}
