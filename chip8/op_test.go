package chip8

import (
	"fmt"
	"testing"
)

func TestDecode(t *testing.T) {
	i := func(i Instruction) *Instruction { return &i }
	for _, c := range []struct {
		hi, lo byte
		want   *Instruction // nil means decode failure
	}{
		{0x00, 0xe0, i(Instruction{Op: ClearScreen})},
		{0x00, 0xee, i(Instruction{Op: Return})},
		{0x02, 0x34, i(Instruction{Op: MachineCall, Addr: 0x234})},
		{0x0f, 0xff, i(Instruction{Op: MachineCall, Addr: 0xfff})},
		{0x13, 0x45, i(Instruction{Op: Jump, Addr: 0x345})},
		{0x23, 0x45, i(Instruction{Op: Call, Addr: 0x345})},
		{0x32, 0x10, i(Instruction{Op: SkipEqImm, X: 2, NN: 0x10})},
		{0x42, 0x10, i(Instruction{Op: SkipNeImm, X: 2, NN: 0x10})},
		{0x51, 0x20, i(Instruction{Op: SkipEqReg, X: 1, Y: 2})},
		{0x6a, 0x42, i(Instruction{Op: SetImm, X: 0xa, NN: 0x42})},
		{0x7a, 0x42, i(Instruction{Op: AddImm, X: 0xa, NN: 0x42})},
		{0x81, 0x20, i(Instruction{Op: Move, X: 1, Y: 2})},
		{0x81, 0x21, i(Instruction{Op: Or, X: 1, Y: 2})},
		{0x81, 0x22, i(Instruction{Op: And, X: 1, Y: 2})},
		{0x81, 0x23, i(Instruction{Op: Xor, X: 1, Y: 2})},
		{0x81, 0x24, i(Instruction{Op: AddCarry, X: 1, Y: 2})},
		{0x81, 0x25, i(Instruction{Op: SubBorrow, X: 1, Y: 2})},
		{0x81, 0x26, i(Instruction{Op: ShiftRight, X: 1, Y: 2})},
		{0x81, 0x27, i(Instruction{Op: SubReverse, X: 1, Y: 2})},
		{0x81, 0x2e, i(Instruction{Op: ShiftLeft, X: 1, Y: 2})},
		{0x91, 0x20, i(Instruction{Op: SkipNeReg, X: 1, Y: 2})},
		{0xa2, 0x34, i(Instruction{Op: SetIndex, Addr: 0x234})},
		{0xb2, 0x34, i(Instruction{Op: JumpOffset, Addr: 0x234})},
		{0xc1, 0x0f, i(Instruction{Op: Random, X: 1, NN: 0x0f})},
		{0xd1, 0x25, i(Instruction{Op: Draw, X: 1, Y: 2, N: 5})},
		{0xe1, 0x9e, i(Instruction{Op: SkipKey, X: 1})},
		{0xe1, 0xa1, i(Instruction{Op: SkipNoKey, X: 1})},
		{0xf1, 0x07, i(Instruction{Op: ReadDelay, X: 1})},
		{0xf1, 0x0a, i(Instruction{Op: WaitKey, X: 1})},
		{0xf1, 0x15, i(Instruction{Op: SetDelay, X: 1})},
		{0xf1, 0x18, i(Instruction{Op: SetSound, X: 1})},
		{0xf1, 0x1e, i(Instruction{Op: AddIndex, X: 1})},
		{0xf1, 0x29, i(Instruction{Op: GlyphAddr, X: 1})},
		{0xf1, 0x33, i(Instruction{Op: StoreBCD, X: 1})},
		{0xf1, 0x55, i(Instruction{Op: StoreRegs, X: 1})},
		{0xf1, 0x65, i(Instruction{Op: LoadRegs, X: 1})},

		// Patterns outside every documented range.
		{0x00, 0x00, nil},
		{0x00, 0xe1, nil}, // neither clear nor return
		{0x00, 0xed, nil},
		{0x01, 0x00, nil}, // machine call below 0x200
		{0x10, 0xff, nil}, // jump target below 0x200
		{0x11, 0xff, nil},
		{0x21, 0xff, nil}, // call target below 0x200
		{0x51, 0x21, nil}, // register skip requires low nibble zero
		{0x81, 0x28, nil},
		{0x81, 0x2f, nil},
		{0x91, 0x2f, nil},
		{0xa1, 0xff, nil}, // address register target below 0x200
		{0xb1, 0xff, nil},
		{0xe1, 0x9d, nil},
		{0xe1, 0x00, nil},
		{0xf1, 0x30, nil},
		{0xf1, 0x66, nil},
		{0xf1, 0x00, nil},
	} {
		t.Run(fmt.Sprintf("%02x%02x", c.hi, c.lo), func(t *testing.T) {
			got, ok := Decode(c.hi, c.lo)
			if c.want == nil {
				if ok {
					t.Fatalf("Decode(%02x, %02x) = %v, want failure", c.hi, c.lo, got)
				}
				return
			}
			if !ok {
				t.Fatalf("Decode(%02x, %02x) failed, want %v", c.hi, c.lo, *c.want)
			}
			if got != *c.want {
				t.Errorf("Decode(%02x, %02x) = %v, want %v", c.hi, c.lo, got, *c.want)
			}
		})
	}
}

func TestInstructionString(t *testing.T) {
	for _, c := range []struct {
		hi, lo byte
		want   string
	}{
		{0x00, 0xe0, "CLS"},
		{0x00, 0xee, "RET"},
		{0x02, 0x34, "SYS 234"},
		{0x13, 0x45, "JP 345"},
		{0x23, 0x45, "CALL 345"},
		{0x6a, 0x05, "LD VA, 05"},
		{0x81, 0x26, "SHR V1, V2"},
		{0xd1, 0x25, "DRW V1, V2, 5"},
		{0xf1, 0x0a, "LD V1, K"},
		{0xf1, 0x65, "LD V1, [I]"},
	} {
		inst, ok := Decode(c.hi, c.lo)
		if !ok {
			t.Errorf("Decode(%02x, %02x) failed", c.hi, c.lo)
			continue
		}
		if got := inst.String(); got != c.want {
			t.Errorf("%02x%02x String() = %q, want %q", c.hi, c.lo, got, c.want)
		}
	}
}
