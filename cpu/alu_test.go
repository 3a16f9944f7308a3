package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAluArithmetic(t *testing.T) {
	table := [...]struct {
		name string
		in   AluInput
		out  uint32
		link bool
	}{
		{"clear", AluInput{Ob: 0123, Mb: 0456, Op: ALU_CLEAR}, 0, false},
		{"preset", AluInput{Op: ALU_PRESET}, 0777777, false},
		{"or", AluInput{Ob: 0101, Mb: 0010, Op: ALU_OR}, 0111, false},
		{"and", AluInput{Ob: 0707, Mb: 0770, Op: ALU_AND}, 0700, false},
		{"xor", AluInput{Ob: 0707, Mb: 0770, Op: ALU_XOR}, 0077, false},
		{"complement", AluInput{Ob: 0123, Op: ALU_BMA}, 0777654, false},
		{"complement-link", AluInput{Ob: 0123, Link: true, Op: ALU_BMA, LinkOp: LINK_KEEP}, 0777654, true},
		{"link-complement", AluInput{Op: ALU_CLEAR, LinkOp: LINK_COMPLEMENT}, 0, true},
		{"tad", AluInput{Ob: 1, Mb: 2, Op: ALU_ADD, LinkOp: LINK_ARITH}, 3, false},
		{"tad-carry", AluInput{Ob: 0777777, Mb: 1, Op: ALU_ADD, LinkOp: LINK_ARITH}, 0, true},
		{"tad-carry-link", AluInput{Ob: 0777777, Mb: 1, Link: true, Op: ALU_ADD, LinkOp: LINK_ARITH}, 0, false},
		{"tad-no-carry-link", AluInput{Ob: 1, Mb: 1, Link: true, Op: ALU_ADD, LinkOp: LINK_ARITH}, 2, true},
		{"add", AluInput{Ob: 1, Mb: 2, Op: ALU_ADD, LinkOp: LINK_ARITH, Ones: true}, 3, false},
		{"add-minus-zero", AluInput{Ob: 1, Mb: 0777776, Op: ALU_ADD, LinkOp: LINK_ARITH, Ones: true}, 0777777, false},
		{"add-end-around", AluInput{Ob: 2, Mb: 0777776, Op: ALU_ADD, LinkOp: LINK_ARITH, Ones: true}, 1, false},
		{"add-overflow", AluInput{Ob: 0377777, Mb: 1, Op: ALU_ADD, LinkOp: LINK_ARITH, Ones: true}, 0400000, true},
		{"add-sticky-link", AluInput{Ob: 1, Mb: 1, Link: true, Op: ALU_ADD, LinkOp: LINK_ARITH, Ones: true}, 2, true},
		{"increment", AluInput{Ob: 0100, Mb: 0100, Op: ALU_OR, Ones: true}, 0101, false},
		{"increment-wrap", AluInput{Ob: 0777777, Mb: 0777777, Op: ALU_OR, Ones: true}, 0, false},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			out := entry.in.Evaluate()
			assert.Equal(entry.out, out.Out)
			assert.Equal(entry.out, out.Arith)
			assert.Equal(entry.link, out.Link)
		})
	}
}

func TestAluShifter(t *testing.T) {
	table := [...]struct {
		name string
		ob   uint32
		link bool
		op   ShiftOp
		out  uint32
		next bool
	}{
		{"ral", 0400001, false, SHIFT_RAL, 0000002, true},
		{"ral-link", 0000001, true, SHIFT_RAL, 0000003, false},
		{"rar", 0000001, true, SHIFT_RAR, 0400000, true},
		{"rar-zero", 0000002, false, SHIFT_RAR, 0000001, false},
		{"rtl", 0600000, false, SHIFT_RTL, 0000001, true},
		{"rtl-link", 0000001, true, SHIFT_RTL, 0000006, false},
		{"rtr", 0000003, false, SHIFT_RTR, 0400000, true},
		{"rtr-link", 0000004, true, SHIFT_RTR, 0200001, false},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			in := AluInput{
				Ob:      entry.ob,
				Link:    entry.link,
				Op:      AluOp(entry.op),
				LinkOp:  LINK_SHIFT,
				Shifter: true,
			}
			out := in.Evaluate()
			assert.Equal(entry.out, out.Out)
			assert.Equal(entry.out, out.Shift)
			assert.Equal(entry.next, out.Link)
			assert.Equal(entry.op, in.Op.Shift())
		})
	}
}

func FuzzAlu(f *testing.F) {
	f.Add(uint32(0), uint32(0), false)
	f.Add(uint32(0777777), uint32(1), true)
	f.Add(uint32(0400000), uint32(0377777), false)

	f.Fuzz(func(t *testing.T, ob uint32, mb uint32, link bool) {
		assert := assert.New(t)

		ob &= WORD_MASK
		mb &= WORD_MASK

		// Rotating left then right restores AC and Link.
		left := AluInput{Ob: ob, Link: link, Op: AluOp(SHIFT_RAL), LinkOp: LINK_SHIFT, Shifter: true}.Evaluate()
		right := AluInput{Ob: left.Out, Link: left.Link, Op: AluOp(SHIFT_RAR), LinkOp: LINK_SHIFT, Shifter: true}.Evaluate()
		assert.Equal(ob, right.Out)
		assert.Equal(link, right.Link)

		twice := AluInput{Ob: ob, Link: link, Op: AluOp(SHIFT_RTL), LinkOp: LINK_SHIFT, Shifter: true}.Evaluate()
		back := AluInput{Ob: twice.Out, Link: twice.Link, Op: AluOp(SHIFT_RTR), LinkOp: LINK_SHIFT, Shifter: true}.Evaluate()
		assert.Equal(ob, back.Out)
		assert.Equal(link, back.Link)

		// Two's complement addition is modulo 2^18, the carry toggling Link.
		tad := AluInput{Ob: ob, Mb: mb, Link: link, Op: ALU_ADD, LinkOp: LINK_ARITH}.Evaluate()
		assert.Equal((ob+mb)&WORD_MASK, tad.Out)
		assert.Equal(link != ((ob+mb)&WORD_CARRY != 0), tad.Link)

		// Complement is its own inverse.
		cma := AluInput{Ob: ob, Op: ALU_BMA}.Evaluate()
		assert.Equal(^ob&WORD_MASK, cma.Out)

		// Increment through the ones mode OR.
		inc := AluInput{Ob: ob, Mb: ob, Op: ALU_OR, Ones: true}.Evaluate()
		assert.Equal((ob+1)&WORD_MASK, inc.Out)

		// Outputs never exceed a word.
		for op := ALU_CLEAR; op <= ALU_PRESET; op++ {
			out := AluInput{Ob: ob, Mb: mb, Link: link, Op: op, Ones: link}.Evaluate()
			assert.Zero(out.Out &^ WORD_MASK)
			assert.Zero(out.Shift &^ WORD_MASK)
		}
	})
}
