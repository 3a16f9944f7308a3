// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// memMap maps memory reference mnemonics to opcodes.
var memMap = map[string]Opcode{
	"cal": OP_CAL,
	"dac": OP_DAC,
	"jms": OP_JMS,
	"dzm": OP_DZM,
	"lac": OP_LAC,
	"xor": OP_XOR,
	"add": OP_ADD,
	"tad": OP_TAD,
	"xct": OP_XCT,
	"isz": OP_ISZ,
	"and": OP_AND,
	"sad": OP_SAD,
	"jmp": OP_JMP,
}

// oprMap maps OPR microinstruction mnemonics to their instruction bits.
var oprMap = map[string]uint32{
	"opr": 0740000,
	"nop": 0740000,
	"cma": 0740000 | OPR_CMA,
	"cml": 0740000 | OPR_CML,
	"oas": 0740000 | OPR_OAS,
	"ral": 0740000 | OPR_RAL,
	"rar": 0740000 | OPR_RAR,
	"rtl": 0740000 | OPR_RAL | OPR_RTX,
	"rtr": 0740000 | OPR_RAR | OPR_RTX,
	"hlt": 0740000 | OPR_HLT,
	"sma": 0740000 | OPR_SMA,
	"sza": 0740000 | OPR_SZA,
	"snl": 0740000 | OPR_SNL,
	"skp": 0740000 | OPR_SKP,
	"spa": 0740000 | OPR_SKP | OPR_SMA,
	"sna": 0740000 | OPR_SKP | OPR_SZA,
	"szl": 0740000 | OPR_SKP | OPR_SNL,
	"cll": 0740000 | OPR_CLL,
	"stl": 0740000 | OPR_CLL | OPR_CML,
	"cla": 0740000 | OPR_CLA,
	"clc": 0740000 | OPR_CLA | OPR_CMA,
	"glk": 0740000 | OPR_CLA | OPR_RAL,
	"las": 0740000 | OPR_CLA | OPR_OAS,
	"iot": 0700000,
}

// Assembler is a single pass macro assembler for the RDP-9.
//
// Each statement assembles one word. A memory reference is a mnemonic, an
// optional 'i' for indirection, and an address. Any other statement is a
// list of OPR mnemonics, symbols and values that are ORed together.
// Numbers are octal unless prefixed with 0x, 0b or 0d.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]uint32   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	origin uint32 // Address of the next statement.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	negate := false
	switch word[0] {
	case '~':
		invert = true
		word = word[1:]
	case '-':
		negate = true
		word = word[1:]
	}

	if len(word) > 1 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word[1 : len(word)-1])
		return
	}

	base := 8
	digits := word
	switch {
	case strings.HasPrefix(word, "0x"):
		base, digits = 16, word[2:]
	case strings.HasPrefix(word, "0b"):
		base, digits = 2, word[2:]
	case strings.HasPrefix(word, "0d"):
		base, digits = 10, word[2:]
	}

	v64, err := strconv.ParseUint(digits, base, 18)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)

	// Negative values are one's complement, as the machine's.
	if invert || negate {
		value = ^value & WORD_MASK
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value18 uint32
		value18, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be
			// mnemonics or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value18))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}
	pred["ORIGIN"] = starlark.MakeInt(int(asm.origin))
	err = nil

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	if st_int64 < 0 {
		st_int64 = ^(-st_int64)
	}
	value = uint32(st_int64) & WORD_MASK
	return
}

// parseLine parses a single line into words, handling equates, labels
// and macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("0d%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "a":
				str = "\a"
			case "b":
				str = "\b"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("0%o", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("0%o", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Fields(line), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint32, 16)
		}
		asm.Label[label] = asm.origin
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique to each expansion.
		local := fmt.Sprintf("%v_%v_", name, lineno)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statement = asm.Statement[:0]
	asm.origin = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of address labels.
	for n := range asm.Statement {
		st := &asm.Statement[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		label := st.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			lineno = st.LineNo
			line = strings.Join(st.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		mask := IR_ADDRESS
		if st.Words[0] == ".word" {
			mask = ADDR_MASK
		}
		linked := &st.Codes[len(st.Codes)-1]
		*linked |= Code(addr & mask)
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	start, ok := asm.Label["start"]
	if !ok {
		start, _ = prog.Extent()
	}
	prog.Start = start

	return
}

// isSymbol reports whether a word could name a label.
func isSymbol(word string) bool {
	if len(word) == 0 {
		return false
	}
	c := word[0]
	return c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// emit appends a statement at the current origin.
func (asm *Assembler) emit(lineno int, words []string, label string, codes ...Code) (err error) {
	if asm.origin+uint32(len(codes)) > CORE_SIZE {
		err = ErrAddressRange
		return
	}

	st := Statement{
		LineNo:    lineno,
		Address:   asm.origin,
		Words:     words,
		Codes:     codes,
		LinkLabel: label,
	}
	asm.Statement = append(asm.Statement, st)
	asm.origin += uint32(len(codes))

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := slices.Clone(words)

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var addr uint32
		addr, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if addr >= CORE_SIZE {
			err = ErrAddressRange
			return
		}
		asm.origin = addr
		return
	case ".word":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var label string
			var value uint32
			if isSymbol(word) {
				label = word
			} else {
				value, err = asm.valueOf(word)
				if err != nil {
					return
				}
			}
			err = asm.emit(lineno, initial_words, label, Code(value))
			if err != nil {
				return
			}
		}
		return
	case "law":
		if len(words) != 2 {
			err = ErrOpcodeValueMissing
			return
		}
		var value uint32
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if value > IR_ADDRESS {
			err = ErrAddressRange
			return
		}
		err = asm.emit(lineno, initial_words, "", MakeCode(OP_OPR, true, value))
		return
	}

	op, is_mem := memMap[words[0]]
	if is_mem {
		args := words[1:]
		indirect := false
		if len(args) > 0 && args[0] == "i" {
			indirect = true
			args = args[1:]
		}
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}

		var addr uint32
		var label string
		if isSymbol(args[0]) {
			label = args[0]
		} else {
			addr, err = asm.valueOf(args[0])
			if err != nil {
				return
			}
			if addr > IR_ADDRESS {
				err = ErrAddressRange
				return
			}
		}

		err = asm.emit(lineno, initial_words, label, MakeCode(op, indirect, addr))
		return
	}

	// OR together OPR mnemonics and values.
	var word uint32
	var label string
	for _, arg := range words {
		if bits, ok := oprMap[arg]; ok {
			word |= bits
			continue
		}
		if _, ok := memMap[arg]; ok {
			err = ErrOperateConflict
			return
		}
		if isSymbol(arg) {
			if len(label) != 0 {
				err = ErrParseSymbol(arg)
				return
			}
			label = arg
			continue
		}
		var value uint32
		value, err = asm.valueOf(arg)
		if err != nil {
			return
		}
		word |= value
	}

	err = asm.emit(lineno, initial_words, label, Code(word))

	return
}
