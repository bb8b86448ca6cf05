// Package chip8 provides an implementation of a CHIP-8 virtual machine,
// called Machine, that can be used to execute CHIP-8 programs.
//
// The Machine owns all interpreter state including the framebuffer, but has
// no clock, window, or input source of its own: the host drives it by
// calling Step, TickTimer, and SetKey, and presents the framebuffer itself.
package chip8

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math/rand"
)

const (
	// LoadOffset is the address at which programs are loaded and at which
	// the instruction pointer starts. Memory below it is reserved for the
	// glyph table.
	LoadOffset = 0x200

	// Logical display size in pixels, before scaling.
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Config holds the construction parameters of a Machine. The zero value of
// any field selects its default.
type Config struct {
	Mem    int           // memory size in bytes (default 4096)
	Stack  int           // call stack depth (default 16)
	Scale  int           // integer pixel multiplier for the framebuffer (default 16)
	Color  color.RGBA    // foreground color of lit pixels (default white)
	Keymap map[rune]byte // host key to keypad index 0-15
	Rand   *rand.Rand    // source for the random instruction (default: globally seeded)
}

// Machine is an implementation of a CHIP-8 interpreter.
type Machine struct {
	Mem    []byte
	V      [16]byte // general-purpose registers; V[15] doubles as the flag register
	I      uint16   // address register
	PC     uint16
	Stack  Stack
	DT, ST byte // delay and sound timers
	Keys   [16]bool

	fb     *image.RGBA
	scale  int
	fg     *image.Uniform
	keymap map[rune]byte
	rand   *rand.Rand
}

// New returns a Machine built from cfg with all state zeroed. Load must be
// called before Step.
func New(cfg Config) *Machine {
	if cfg.Mem == 0 {
		cfg.Mem = 4096
	}
	if cfg.Stack == 0 {
		cfg.Stack = 16
	}
	if cfg.Scale == 0 {
		cfg.Scale = 16
	}
	if cfg.Color == (color.RGBA{}) {
		cfg.Color = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	m := &Machine{
		Mem:    make([]byte, cfg.Mem),
		Stack:  newStack(cfg.Stack),
		fb:     image.NewRGBA(image.Rect(0, 0, DisplayWidth*cfg.Scale, DisplayHeight*cfg.Scale)),
		scale:  cfg.Scale,
		fg:     image.NewUniform(cfg.Color),
		keymap: cfg.Keymap,
		rand:   cfg.Rand,
	}
	return m
}

// Load resets the machine and installs program at LoadOffset: memory is
// zeroed and the glyph table rewritten below LoadOffset, registers, timers
// and the call stack are cleared, the screen is blanked, and the instruction
// pointer is set to LoadOffset. It fails if the program does not fit.
func (m *Machine) Load(program []byte) error {
	if len(program) > len(m.Mem)-LoadOffset {
		return fmt.Errorf("program is %d bytes, capacity is %d", len(program), len(m.Mem)-LoadOffset)
	}
	for i := range m.Mem {
		m.Mem[i] = 0
	}
	for i, g := range glyphs {
		copy(m.Mem[i*len(g):], g[:])
	}
	copy(m.Mem[LoadOffset:], program)
	m.V = [16]byte{}
	m.I = 0
	m.PC = LoadOffset
	m.DT, m.ST = 0, 0
	m.Keys = [16]bool{}
	m.Stack.reset()
	m.clearScreen()
	return nil
}

// TickTimer decrements the delay timer, saturating at zero. The host calls
// it at its own cadence, nominally 60 Hz; the machine has no internal clock.
func (m *Machine) TickTimer() {
	if m.DT > 0 {
		m.DT--
	}
}

// SetKey records a host key edge, translated through the configured keymap.
// Keys absent from the keymap are ignored.
func (m *Machine) SetKey(k rune, down bool) {
	if pad, ok := m.keymap[k]; ok {
		m.SetPad(pad, down)
	}
}

// SetPad records a keypad edge for logical key pad (0-15).
func (m *Machine) SetPad(pad byte, down bool) {
	m.Keys[pad&0x0f] = down
}

// Framebuffer returns the scaled screen image. The pixel buffer is row-major
// RGBA; it is only mutated by Step and Load.
func (m *Machine) Framebuffer() *image.RGBA { return m.fb }

// ScreenSize returns the framebuffer dimensions in pixels.
func (m *Machine) ScreenSize() (w, h int) {
	return DisplayWidth * m.scale, DisplayHeight * m.scale
}

// Step runs one fetch-decode-execute cycle. An unrecognized instruction is
// logged and skipped; a halt condition (stack underflow or overflow, memory
// access out of range) is returned as a HaltError, after which the machine
// state is no longer meaningful.
func (m *Machine) Step() (err error) {
	if int(m.PC)+1 >= len(m.Mem) {
		return HaltError{HaltCode: OutOfRange, Addr: m.PC}
	}
	var (
		hi, lo = m.Mem[m.PC], m.Mem[m.PC+1]
		opPC   = m.PC
	)
	defer func() {
		if e := recover(); e != nil {
			if code, ok := e.(HaltCode); ok {
				err = HaltError{
					HaltCode: code,
					Addr:     opPC,
					Raw:      [2]byte{hi, lo},
				}
			} else {
				panic(e)
			}
		}
	}()

	if inst, ok := Decode(hi, lo); ok {
		m.exec(inst)
	} else {
		log.Printf("unknown instruction %02x%02x at %04x", hi, lo, m.PC)
	}
	// Control-transfer handlers pre-subtract 2 so this lands on their
	// target.
	m.PC += 2
	return nil
}

func (m *Machine) exec(inst Instruction) {
	switch inst.Op {
	case MachineCall:
		log.Printf("machine-language call %03x not implemented", inst.Addr)
	case ClearScreen:
		m.clearScreen()
	case Return:
		m.PC = m.Stack.Pop()
	case Jump:
		m.PC = inst.Addr - 2
	case Call:
		m.Stack.Push(m.PC)
		m.PC = inst.Addr - 2
	case SkipEqImm:
		if m.V[inst.X] == inst.NN {
			m.PC += 2
		}
	case SkipNeImm:
		if m.V[inst.X] != inst.NN {
			m.PC += 2
		}
	case SkipEqReg:
		if m.V[inst.X] == m.V[inst.Y] {
			m.PC += 2
		}
	case SetImm:
		m.V[inst.X] = inst.NN
	case AddImm:
		m.V[inst.X] += inst.NN
	case Move:
		m.V[inst.X] = m.V[inst.Y]
	case Or:
		m.V[inst.X] |= m.V[inst.Y]
	case And:
		m.V[inst.X] &= m.V[inst.Y]
	case Xor:
		m.V[inst.X] ^= m.V[inst.Y]
	case AddCarry:
		sum := uint16(m.V[inst.X]) + uint16(m.V[inst.Y])
		m.V[inst.X] = byte(sum)
		m.setFlag(sum > 0xff)
	case SubBorrow:
		// The flag is 1 when no borrow occurred, inverted relative
		// to AddCarry.
		a, b := m.V[inst.X], m.V[inst.Y]
		m.V[inst.X] = a - b
		m.setFlag(a >= b)
	case ShiftRight:
		v := m.V[inst.Y]
		m.V[inst.X] = v >> 1
		m.V[0xf] = v & 1
	case SubReverse:
		a, b := m.V[inst.X], m.V[inst.Y]
		m.V[inst.X] = b - a
		m.setFlag(b >= a)
	case ShiftLeft:
		v := m.V[inst.Y]
		m.V[inst.X] = v << 1
		m.V[0xf] = v >> 7
	case SkipNeReg:
		if m.V[inst.X] != m.V[inst.Y] {
			m.PC += 2
		}
	case SetIndex:
		m.I = inst.Addr
	case JumpOffset:
		m.PC = inst.Addr + uint16(m.V[0]) - 2
	case Random:
		m.V[inst.X] = byte(m.rand.Intn(256)) & inst.NN
	case Draw:
		m.drawSprite(m.V[inst.X], m.V[inst.Y], inst.N)
	case SkipKey:
		if m.pressed(m.V[inst.X]) {
			m.PC += 2
		}
	case SkipNoKey:
		if !m.pressed(m.V[inst.X]) {
			m.PC += 2
		}
	case ReadDelay:
		m.V[inst.X] = m.DT
	case WaitKey:
		// Busy wait: rewind so the same instruction is fetched again
		// until a key is down.
		if pad, ok := m.lowestKey(); ok {
			m.V[inst.X] = pad
		} else {
			m.PC -= 2
		}
	case SetDelay:
		m.DT = m.V[inst.X]
	case SetSound:
		m.ST = m.V[inst.X]
	case AddIndex:
		m.I += uint16(m.V[inst.X])
	case GlyphAddr:
		m.I = uint16(m.V[inst.X]) * 5
	case StoreBCD:
		v := m.V[inst.X]
		m.store(m.I, v/100)
		m.store(m.I+1, v/10%10)
		m.store(m.I+2, v%10)
	case StoreRegs:
		for i := byte(0); i <= inst.X; i++ {
			m.store(m.I+uint16(i), m.V[i])
		}
		m.I += uint16(inst.X) + 1
	case LoadRegs:
		for i := byte(0); i <= inst.X; i++ {
			m.V[i] = m.load(m.I + uint16(i))
		}
		m.I += uint16(inst.X) + 1
	}
}

func (m *Machine) setFlag(b bool) {
	if b {
		m.V[0xf] = 1
	} else {
		m.V[0xf] = 0
	}
}

func (m *Machine) load(addr uint16) byte {
	if int(addr) >= len(m.Mem) {
		panic(OutOfRange)
	}
	return m.Mem[addr]
}

func (m *Machine) store(addr uint16, v byte) {
	if int(addr) >= len(m.Mem) {
		panic(OutOfRange)
	}
	m.Mem[addr] = v
}

func (m *Machine) pressed(pad byte) bool {
	if pad > 0xf {
		panic(OutOfRange)
	}
	return m.Keys[pad]
}

func (m *Machine) lowestKey() (byte, bool) {
	for pad, down := range m.Keys {
		if down {
			return byte(pad), true
		}
	}
	return 0, false
}

var unlit = image.NewUniform(color.RGBA{A: 0xff})

func (m *Machine) clearScreen() {
	draw.Draw(m.fb, m.fb.Bounds(), unlit, image.Point{}, draw.Src)
}

// drawSprite renders n rows of eight pixels read from memory at the address
// register, most significant bit leftmost. Pixels are overwritten, not
// XOR-toggled, and no collision flag is set; programs that depend on the
// conventional XOR semantics will not render correctly. The y coordinate
// wraps modulo 256 per row; pixels beyond the right or bottom edge are
// clipped.
func (m *Machine) drawSprite(x, y, n byte) {
	for row := byte(0); row < n; row++ {
		bits := m.load(m.I + uint16(row))
		for col := byte(0); col < 8; col++ {
			m.setPixel(x+col, y+row, bits&0x80 != 0)
			bits <<= 1
		}
	}
}

func (m *Machine) setPixel(x, y byte, lit bool) {
	src := unlit
	if lit {
		src = m.fg
	}
	px, py := int(x)*m.scale, int(y)*m.scale
	r := image.Rect(px, py, px+m.scale, py+m.scale).Intersect(m.fb.Bounds())
	draw.Draw(m.fb, r, src, image.Point{}, draw.Src)
}

// HaltError is returned by Step if execution hit a non-recoverable fault.
type HaltError struct {
	HaltCode
	Addr uint16
	Raw  [2]byte
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%s at %04x (%02x%02x)", e.HaltCode, e.Addr, e.Raw[0], e.Raw[1])
}

// HaltCode signifies the type of condition that halted execution.
type HaltCode byte

const (
	Underflow  HaltCode = iota // return with an empty call stack
	Overflow                   // call past the configured stack depth
	OutOfRange                 // memory or keypad access out of range
)

func (c HaltCode) String() string {
	switch c {
	case Underflow:
		return "stack underflow"
	case Overflow:
		return "stack overflow"
	case OutOfRange:
		return "access out of range"
	}
	return fmt.Sprintf("unknown (%02x)", byte(c))
}
