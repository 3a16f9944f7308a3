package emulator

// BootWord is one seeded core location.
type BootWord struct {
	Address uint32
	Word    uint32
}

// BootProgram is seeded into core by NewEmulator. It exercises direct,
// indirect and auto-index addressing, and a subroutine call, then halts.
var BootProgram = []BootWord{
	{000, 0200040}, // lac 040
	{001, 0220040}, // lac i 040
	{002, 0220010}, // lac i 010
	{003, 0220010}, // lac i 010
	{004, 0100030}, // jms 030
	{010, 0000040}, // auto-index pointer
	{030, 0111111}, // return address
	{031, 0200030}, // lac 030
	{032, 0740040}, // hlt
	{040, 0000123},
	{041, 0000124},
	{042, 0000125},
	{0123, 0000321},
}
