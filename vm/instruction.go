// Copyright 2026 The go-spindle Authors
// This file is part of go-spindle.
//
// go-spindle is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-spindle is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-spindle. If not, see <http://www.gnu.org/licenses/>.

package vm

import "fmt"

// Instruction is one decoded guest instruction. Only the four literal opcodes
// carry an immediate; every other opcode takes its operands from the operand
// stack and is written as Instruction{Op: ...}.
//
// The immediate is full 64-bit width (the host profile). Programs whose
// encoding cannot carry full-width immediates introduce wide constants
// through OpLiteralIndexed and the literal pool instead.
type Instruction struct {
	Op Opcode

	// Imm is the immediate operand. For OpLiteralUnsigned, OpLiteralSigned,
	// and OpLiteralBool it is the pushed value; for OpLiteralIndexed it is
	// Unsigned(index) into the literal pool. Ignored by nullary opcodes.
	Imm Value
}

// LitUnsigned builds an OpLiteralUnsigned instruction.
func LitUnsigned(x uint64) Instruction {
	return Instruction{Op: OpLiteralUnsigned, Imm: Unsigned(x)}
}

// LitSigned builds an OpLiteralSigned instruction.
func LitSigned(x int64) Instruction {
	return Instruction{Op: OpLiteralSigned, Imm: Signed(x)}
}

// LitBool builds an OpLiteralBool instruction.
func LitBool(x bool) Instruction {
	return Instruction{Op: OpLiteralBool, Imm: Bool(x)}
}

// LitIndexed builds an OpLiteralIndexed instruction referencing literal pool
// entry index.
func LitIndexed(index uint64) Instruction {
	return Instruction{Op: OpLiteralIndexed, Imm: Unsigned(index)}
}

// String renders the instruction in disassembly form: the mnemonic, followed
// by the immediate for literal opcodes.
func (in Instruction) String() string {
	switch in.Op.immediate() {
	case immUnsigned, immIndex:
		return fmt.Sprintf("%-8s %d", in.Op, in.Imm.bits)
	case immSigned:
		return fmt.Sprintf("%-8s %d", in.Op, int64(in.Imm.bits))
	case immBool:
		return fmt.Sprintf("%-8s %t", in.Op, in.Imm.bits != 0)
	}
	return in.Op.String()
}
