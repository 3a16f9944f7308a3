package emulator

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/rdp9/cpu"
)

// IMAGE_WORDS_PER_LINE is the number of words on each line of an octal image.
const IMAGE_WORDS_PER_LINE = 4

// WriteCore writes core as an octal image, one "AAAAA: WWWWWW ..." line per
// IMAGE_WORDS_PER_LINE words. Lines that are entirely zero are skipped.
func WriteCore(w io.Writer, core []uint32) (err error) {
	bw := bufio.NewWriter(w)

	for base := 0; base < len(core); base += IMAGE_WORDS_PER_LINE {
		line := core[base:min(base+IMAGE_WORDS_PER_LINE, len(core))]

		empty := true
		for _, word := range line {
			if word&cpu.WORD_MASK != 0 {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		_, err = fmt.Fprintf(bw, "%05o:", base)
		if err != nil {
			return
		}
		for _, word := range line {
			_, err = fmt.Fprintf(bw, " %06o", word&cpu.WORD_MASK)
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintln(bw)
		if err != nil {
			return
		}
	}

	err = bw.Flush()

	return
}

// ReadCore reads an octal image written by WriteCore into core. Blank
// lines and text after a ';' are ignored.
func ReadCore(r io.Reader, core []uint32) (err error) {
	scanner := bufio.NewScanner(r)

	var lineno int
	for scanner.Scan() {
		lineno++
		text := scanner.Text()
		line := strings.TrimSpace(strings.Split(text, ";")[0])
		if len(line) == 0 {
			continue
		}

		addr_text, words_text, ok := strings.Cut(line, ":")
		if !ok {
			err = &ErrImageSyntax{LineNo: lineno, Line: text}
			return
		}

		var addr uint64
		addr, err = strconv.ParseUint(strings.TrimSpace(addr_text), 8, 15)
		if err != nil {
			err = &ErrImageSyntax{LineNo: lineno, Line: text}
			return
		}

		for _, word_text := range strings.Fields(words_text) {
			var word uint64
			word, err = strconv.ParseUint(word_text, 8, 18)
			if err != nil {
				err = &ErrImageSyntax{LineNo: lineno, Line: text}
				return
			}
			if int(addr) >= len(core) {
				err = ErrCoreRange
				return
			}
			core[addr] = uint32(word)
			addr++
		}
	}

	err = scanner.Err()

	return
}
