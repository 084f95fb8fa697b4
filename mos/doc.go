// Package mos models the apmos compilation target: the register file,
// processor flags, the concrete instruction set with its addressing modes,
// and the catalog of post-allocation pseudo instructions.
//
// The target is a MOS-6502-family 8-bit processor with three hardware
// registers (a, x, y), four flags (c, z, v, n), and a bank of imaginary
// zero-page registers (rc0-rc31, paired into the pointers rs0-rs15) that
// the code generator treats as ordinary registers. Opcode availability is
// gated by capability tier (base, cmos, undoc) plus named target features;
// availability predicates are small Starlark expressions evaluated against
// the target description.
package mos
