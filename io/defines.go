package io

import (
	"iter"
	"maps"
)

// IOT mnemonics, as assembler predefines.
var _io_defines = map[string]string{
	// Program interrupt
	"ion": "0700042",
	"iof": "0700002",

	// Real-time clock
	"clsf": "0700001",
	"clof": "0700004",
	"clon": "0700044",

	// Paper-tape reader
	"rsf": "0700101",
	"rrb": "0700112",
	"rsa": "0700104",
	"rsb": "0700144",

	// Keyboard
	"ksf": "0700301",
	"krb": "0700312",

	// Teleprinter
	"tsf": "0700401",
	"tcf": "0700402",
	"tls": "0700406",

	"CLOCK_COUNTER": "07",
}

// Defines returns the assembler predefines for the IOT devices.
func Defines() iter.Seq2[string, string] {
	return maps.All(_io_defines)
}
