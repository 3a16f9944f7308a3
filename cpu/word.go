// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"maps"
)

// Word and address geometry.
const (
	WORD_MASK   = uint32(0777777)  // 18-bit word.
	WORD_SIGN   = uint32(0400000)  // Sign bit of a word.
	WORD_CARRY  = uint32(01000000) // Carry out of bit 17.
	ADDR_MASK   = uint32(077777)   // 15-bit extended address.
	OFFSET_MASK = uint32(017777)   // 13-bit page relative offset.
	BANK_MASK   = uint32(060000)   // 2-bit bank field.
	STEP_MASK   = uint32(0377)     // 8-bit STEP register.
	CORE_SIZE   = 32768            // Words of core.
)

// Instruction word fields.
const (
	IR_OPCODE_SHIFT = 14              // Opcode in bits 14-17.
	IR_INDIRECT     = uint32(1 << 13) // Indirect reference bit.
	IR_ADDRESS      = OFFSET_MASK     // Address in bits 0-12.
	AUTO_INDEX_LOW  = uint32(010)     // First auto-index location.
	AUTO_INDEX_HIGH = uint32(017)     // Last auto-index location.
	CAL_VECTOR      = uint32(020)     // CAL link location.
	INT_VECTOR      = uint32(000)     // Interrupt link location.
)

var _cpu_defines = map[string]string{
	"WORD_MASK":   fmt.Sprintf("0%o", WORD_MASK),
	"ADDR_MASK":   fmt.Sprintf("0%o", ADDR_MASK),
	"OFFSET_MASK": fmt.Sprintf("0%o", OFFSET_MASK),
	"CAL_VECTOR":  fmt.Sprintf("0%o", CAL_VECTOR),
	"INT_VECTOR":  fmt.Sprintf("0%o", INT_VECTOR),
}

// Defines returns the assembler predefines for the cpu.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// IsAutoIndex reports whether the page offset of addr is in the auto-index range.
func IsAutoIndex(addr uint32) bool {
	offset := addr & OFFSET_MASK
	return offset >= AUTO_INDEX_LOW && offset <= AUTO_INDEX_HIGH
}

// PageRelative forms an address from the bank of base and the offset of addr.
func PageRelative(base uint32, addr uint32) uint32 {
	return (base & BANK_MASK) | (addr & OFFSET_MASK)
}
