// Package machine holds the complete CHIP-8 machine state.
//
// # Memory Layout
//
// The machine has 4KB of byte addressable memory (0x000-0xFFF):
//   - 0x000-0x1FF: Interpreter area, the font glyphs live at FontStart (0x50-0x9F)
//   - ProgramStart-0xFFF: Program and work RAM (MaxProgramSize bytes)
//
// Every address is reduced modulo MemorySize before it is used, so an index
// register pointing past the end of memory wraps around to the interpreter area
// instead of failing.
//
// # Registers
//
//   - V0-VF: 16 general-purpose 8-bit registers, VF doubles as carry, borrow and
//     collision flag
//   - I: 16-bit index register
//   - PC: program counter, always masked to 12 bits
//   - Stack/SP: 16 return addresses
//
// # Ownership
//
// A State is owned by exactly one interpreter. Collaborators like displays and
// input devices only ever see copies: FrameBuffer and Keypad are value types.
package machine
