// Package cpu implements the microcoded RDP-9 processor and its assembler.
//
// The RDP-9 is an 18-bit, PDP-9 class minicomputer with 32768 words of
// core. Every cycle the engine latches the registers selected by the
// current microcode control word, then propagates the next control word
// from the decode table together with the data and address buses.
//
// The decode table is a pure function of a 13-bit microcode input word. It
// has three modes: SERVICE (reset, fetch, front panel, skips and I/O
// waits), INSTRUCTION (the sixteen memory reference, IOT and OPR
// instructions) and OPERATE (the two stages of the OPR microinstructions).
//
// The assembler accepts PDP-9 style mnemonics, with support for macros,
// labels, equates, and compile-time expression evaluation.
package cpu
