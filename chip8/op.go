package chip8

import "fmt"

// Op identifies a concrete CHIP-8 instruction.
type Op byte

const (
	MachineCall Op = iota // 0NNN (recognized, not implemented)
	ClearScreen           // 00E0
	Return                // 00EE
	Jump                  // 1NNN
	Call                  // 2NNN
	SkipEqImm             // 3XNN
	SkipNeImm             // 4XNN
	SkipEqReg             // 5XY0
	SetImm                // 6XNN
	AddImm                // 7XNN
	Move                  // 8XY0
	Or                    // 8XY1
	And                   // 8XY2
	Xor                   // 8XY3
	AddCarry              // 8XY4
	SubBorrow             // 8XY5
	ShiftRight            // 8XY6
	SubReverse            // 8XY7
	ShiftLeft             // 8XYE
	SkipNeReg             // 9XY0
	SetIndex              // ANNN
	JumpOffset            // BNNN
	Random                // CXNN
	Draw                  // DXYN
	SkipKey               // EX9E
	SkipNoKey             // EXA1
	ReadDelay             // FX07
	WaitKey               // FX0A
	SetDelay              // FX15
	SetSound              // FX18
	AddIndex              // FX1E
	GlyphAddr             // FX29
	StoreBCD              // FX33
	StoreRegs             // FX55
	LoadRegs              // FX65
)

// Instruction is a decoded instruction: an Op tag plus the operand fields
// extracted for it. Fields not used by the Op are zero.
type Instruction struct {
	Op   Op
	X, Y byte   // register indexes
	NN   byte   // 8-bit immediate
	N    byte   // low nibble (sprite height)
	Addr uint16 // 12-bit address
}

// Field extraction helpers. All operand extraction is done here, on the raw
// byte pair, independent of the dispatch below.

func class(hi byte) byte { return hi >> 4 }

func address(hi, lo byte) uint16 { return uint16(hi&0x0f)<<8 | uint16(lo) }

func regX(hi byte) byte { return hi & 0x0f }

func regY(lo byte) byte { return lo >> 4 }

func nibble(lo byte) byte { return lo & 0x0f }

// Decode maps a raw two-byte instruction to its typed form. It reports false
// for any pattern that is not one of the 35 defined encodings. Note that the
// address-carrying classes (0, 1, 2, A, B) only accept targets of 0x200 and
// above; lower targets fall inside the reserved glyph region and do not
// decode.
func Decode(hi, lo byte) (Instruction, bool) {
	x, y := regX(hi), regY(lo)
	switch class(hi) {
	case 0x0:
		if hi == 0x00 {
			switch lo {
			case 0xe0:
				return Instruction{Op: ClearScreen}, true
			case 0xee:
				return Instruction{Op: Return}, true
			}
			return Instruction{}, false
		}
		if hi >= 0x02 {
			return Instruction{Op: MachineCall, Addr: address(hi, lo)}, true
		}
	case 0x1:
		if x >= 0x2 {
			return Instruction{Op: Jump, Addr: address(hi, lo)}, true
		}
	case 0x2:
		if x >= 0x2 {
			return Instruction{Op: Call, Addr: address(hi, lo)}, true
		}
	case 0x3:
		return Instruction{Op: SkipEqImm, X: x, NN: lo}, true
	case 0x4:
		return Instruction{Op: SkipNeImm, X: x, NN: lo}, true
	case 0x5:
		if nibble(lo) == 0 {
			return Instruction{Op: SkipEqReg, X: x, Y: y}, true
		}
	case 0x6:
		return Instruction{Op: SetImm, X: x, NN: lo}, true
	case 0x7:
		return Instruction{Op: AddImm, X: x, NN: lo}, true
	case 0x8:
		var op Op
		switch nibble(lo) {
		case 0x0:
			op = Move
		case 0x1:
			op = Or
		case 0x2:
			op = And
		case 0x3:
			op = Xor
		case 0x4:
			op = AddCarry
		case 0x5:
			op = SubBorrow
		case 0x6:
			op = ShiftRight
		case 0x7:
			op = SubReverse
		case 0xe:
			op = ShiftLeft
		default:
			return Instruction{}, false
		}
		return Instruction{Op: op, X: x, Y: y}, true
	case 0x9:
		if nibble(lo) == 0 {
			return Instruction{Op: SkipNeReg, X: x, Y: y}, true
		}
	case 0xa:
		if x >= 0x2 {
			return Instruction{Op: SetIndex, Addr: address(hi, lo)}, true
		}
	case 0xb:
		if x >= 0x2 {
			return Instruction{Op: JumpOffset, Addr: address(hi, lo)}, true
		}
	case 0xc:
		return Instruction{Op: Random, X: x, NN: lo}, true
	case 0xd:
		return Instruction{Op: Draw, X: x, Y: y, N: nibble(lo)}, true
	case 0xe:
		switch lo {
		case 0x9e:
			return Instruction{Op: SkipKey, X: x}, true
		case 0xa1:
			return Instruction{Op: SkipNoKey, X: x}, true
		}
	case 0xf:
		var op Op
		switch lo {
		case 0x07:
			op = ReadDelay
		case 0x0a:
			op = WaitKey
		case 0x15:
			op = SetDelay
		case 0x18:
			op = SetSound
		case 0x1e:
			op = AddIndex
		case 0x29:
			op = GlyphAddr
		case 0x33:
			op = StoreBCD
		case 0x55:
			op = StoreRegs
		case 0x65:
			op = LoadRegs
		default:
			return Instruction{}, false
		}
		return Instruction{Op: op, X: x}, true
	}
	return Instruction{}, false
}

func (i Instruction) String() string {
	switch i.Op {
	case MachineCall:
		return fmt.Sprintf("SYS %03x", i.Addr)
	case ClearScreen:
		return "CLS"
	case Return:
		return "RET"
	case Jump:
		return fmt.Sprintf("JP %03x", i.Addr)
	case Call:
		return fmt.Sprintf("CALL %03x", i.Addr)
	case SkipEqImm:
		return fmt.Sprintf("SE V%X, %02x", i.X, i.NN)
	case SkipNeImm:
		return fmt.Sprintf("SNE V%X, %02x", i.X, i.NN)
	case SkipEqReg:
		return fmt.Sprintf("SE V%X, V%X", i.X, i.Y)
	case SetImm:
		return fmt.Sprintf("LD V%X, %02x", i.X, i.NN)
	case AddImm:
		return fmt.Sprintf("ADD V%X, %02x", i.X, i.NN)
	case Move:
		return fmt.Sprintf("LD V%X, V%X", i.X, i.Y)
	case Or:
		return fmt.Sprintf("OR V%X, V%X", i.X, i.Y)
	case And:
		return fmt.Sprintf("AND V%X, V%X", i.X, i.Y)
	case Xor:
		return fmt.Sprintf("XOR V%X, V%X", i.X, i.Y)
	case AddCarry:
		return fmt.Sprintf("ADD V%X, V%X", i.X, i.Y)
	case SubBorrow:
		return fmt.Sprintf("SUB V%X, V%X", i.X, i.Y)
	case ShiftRight:
		return fmt.Sprintf("SHR V%X, V%X", i.X, i.Y)
	case SubReverse:
		return fmt.Sprintf("SUBN V%X, V%X", i.X, i.Y)
	case ShiftLeft:
		return fmt.Sprintf("SHL V%X, V%X", i.X, i.Y)
	case SkipNeReg:
		return fmt.Sprintf("SNE V%X, V%X", i.X, i.Y)
	case SetIndex:
		return fmt.Sprintf("LD I, %03x", i.Addr)
	case JumpOffset:
		return fmt.Sprintf("JP V0, %03x", i.Addr)
	case Random:
		return fmt.Sprintf("RND V%X, %02x", i.X, i.NN)
	case Draw:
		return fmt.Sprintf("DRW V%X, V%X, %x", i.X, i.Y, i.N)
	case SkipKey:
		return fmt.Sprintf("SKP V%X", i.X)
	case SkipNoKey:
		return fmt.Sprintf("SKNP V%X", i.X)
	case ReadDelay:
		return fmt.Sprintf("LD V%X, DT", i.X)
	case WaitKey:
		return fmt.Sprintf("LD V%X, K", i.X)
	case SetDelay:
		return fmt.Sprintf("LD DT, V%X", i.X)
	case SetSound:
		return fmt.Sprintf("LD ST, V%X", i.X)
	case AddIndex:
		return fmt.Sprintf("ADD I, V%X", i.X)
	case GlyphAddr:
		return fmt.Sprintf("LD F, V%X", i.X)
	case StoreBCD:
		return fmt.Sprintf("LD B, V%X", i.X)
	case StoreRegs:
		return fmt.Sprintf("LD [I], V%X", i.X)
	case LoadRegs:
		return fmt.Sprintf("LD V%X, [I]", i.X)
	}
	return fmt.Sprintf("unknown op (%d)", byte(i.Op))
}
