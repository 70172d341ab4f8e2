// Package cpu implements the CHIP-8 virtual machine and its assembler.
//
// The machine consists of 4 KB of memory, sixteen 8-bit registers (V0-VF),
// a 16-bit index register (I), a program counter, a 16 level return stack,
// and the delay and sound timers. Instructions are 16-bit big-endian words,
// matched against an immutable instruction catalog by mask and opcode, and
// executed one at a time by Cpu.Step(). Sprites are drawn onto an attached
// io.Display with XOR semantics, VF reporting collisions.
//
// The assembler accepts the customary CHIP-8 mnemonics, and supports labels,
// equates, macros, data bytes, and compile-time expression evaluation.
package cpu
