package cpu

import (
	"iter"
)

// Program is an assembled program.
type Program struct {
	Statements []Statement
	Start      uint32 // Starting address.
}

// Debug locates the statement that generated a core address.
type Debug struct {
	*Statement
	Index int
}

// Debug returns the statement covering addr, if any.
func (prog *Program) Debug(addr uint32) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Address && addr < st.Address+uint32(len(st.Codes)) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(addr - st.Address),
			}
			break
		}
	}

	return
}

// Codes iterates over the address and code of every assembled word.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(addr uint32, code Code) bool) {
		for _, st := range prog.Statements {
			for n, code := range st.Codes {
				if !yield(st.Address+uint32(n), code) {
					return
				}
			}
		}
	}
}

// Extent returns the lowest address and the number of words spanned by the program.
func (prog *Program) Extent() (origin uint32, length int) {
	first := true
	var last uint32
	for addr := range prog.Codes() {
		if first || addr < origin {
			origin = addr
		}
		if first || addr > last {
			last = addr
		}
		first = false
	}

	if !first {
		length = int(last-origin) + 1
	}

	return
}

// Image returns the words of the program from its lowest address, with
// unassembled locations zero.
func (prog *Program) Image() (origin uint32, words []uint32) {
	origin, length := prog.Extent()
	words = make([]uint32, length)
	for addr, code := range prog.Codes() {
		words[addr-origin] = uint32(code) & WORD_MASK
	}

	return
}

// Binary returns the program image punched as binary paper tape frames,
// three six-bit frames per word, most significant first.
func (prog *Program) Binary() (origin uint32, frames []byte) {
	origin, words := prog.Image()
	for _, word := range words {
		frames = append(frames,
			byte((word>>12)&077)|0200,
			byte((word>>6)&077)|0200,
			byte(word&077)|0200,
		)
	}

	return
}
