package chip8

import "fmt"

// Disasm is the decode result for one two-byte instruction slot.
type Disasm struct {
	Addr uint16
	Raw  [2]byte
	Inst Instruction
	OK   bool
}

func (d Disasm) String() string {
	if !d.OK {
		return fmt.Sprintf("%04x  %02x%02x  ???", d.Addr, d.Raw[0], d.Raw[1])
	}
	return fmt.Sprintf("%04x  %02x%02x  %s", d.Addr, d.Raw[0], d.Raw[1], d.Inst)
}

// Disassemble decodes every two-byte-aligned slot from LoadOffset to the end
// of memory. It reads but never mutates machine state, and may be called
// repeatedly.
func (m *Machine) Disassemble() []Disasm {
	var ds []Disasm
	for addr := LoadOffset; addr+1 < len(m.Mem); addr += 2 {
		d := Disasm{
			Addr: uint16(addr),
			Raw:  [2]byte{m.Mem[addr], m.Mem[addr+1]},
		}
		d.Inst, d.OK = Decode(d.Raw[0], d.Raw[1])
		ds = append(ds, d)
	}
	return ds
}
