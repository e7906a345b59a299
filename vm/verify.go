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

// VerifyError describes one static verification failure.
type VerifyError struct {
	Index   int // instruction index
	Message string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("verify error at instruction %d: %s", e.Index, e.Message)
}

// Verify checks an instruction stream for structural faults before execution:
//
//  1. Every opcode is part of the defined set.
//  2. Literal opcodes carry an immediate of the declared tag, and nullary
//     opcodes carry none.
//  3. OpLiteralIndexed indices fall inside the literal pool.
//  4. An OpIntrinsic immediately preceded by the unsigned literal that feeds
//     it names an index inside the intrinsics table.
//
// Verification is advisory: Run performs its own dynamic checks regardless,
// and branch targets, being ordinary stack operands, can only be checked at
// run time.
func Verify(code []Instruction, literals []Value, intrinsicCount int) []VerifyError {
	var errs []VerifyError

	for i, in := range code {
		if !in.Op.Valid() {
			errs = append(errs, VerifyError{
				Index:   i,
				Message: fmt.Sprintf("unknown opcode %d", uint8(in.Op)),
			})
			continue
		}

		switch in.Op.immediate() {
		case immNone:
			if in.Imm != (Value{}) {
				errs = append(errs, VerifyError{
					Index:   i,
					Message: fmt.Sprintf("stray immediate %s on nullary opcode %s", in.Imm, in.Op),
				})
			}
		case immUnsigned:
			if in.Imm.Tag() != TagUnsigned {
				errs = append(errs, VerifyError{
					Index:   i,
					Message: fmt.Sprintf("%s immediate has tag %s, want u64", in.Op, in.Imm.Tag()),
				})
			}
		case immSigned:
			if in.Imm.Tag() != TagSigned {
				errs = append(errs, VerifyError{
					Index:   i,
					Message: fmt.Sprintf("%s immediate has tag %s, want i64", in.Op, in.Imm.Tag()),
				})
			}
		case immBool:
			if in.Imm.Tag() != TagBool {
				errs = append(errs, VerifyError{
					Index:   i,
					Message: fmt.Sprintf("%s immediate has tag %s, want bool", in.Op, in.Imm.Tag()),
				})
			}
		case immIndex:
			if in.Imm.Tag() != TagUnsigned {
				errs = append(errs, VerifyError{
					Index:   i,
					Message: fmt.Sprintf("%s index has tag %s, want u64", in.Op, in.Imm.Tag()),
				})
			} else if in.Imm.bits >= uint64(len(literals)) {
				errs = append(errs, VerifyError{
					Index:   i,
					Message: fmt.Sprintf("literal index %d out of range (pool size %d)", in.Imm.bits, len(literals)),
				})
			}
		}

		// Opportunistic intrinsic-index check for the common
		// [LIT_U idx; INTRIN] pattern. Indices computed on the stack are only
		// checked at run time.
		if in.Op == OpIntrinsic && i > 0 {
			prev := code[i-1]
			if prev.Op == OpLiteralUnsigned && prev.Imm.bits >= uint64(intrinsicCount) {
				errs = append(errs, VerifyError{
					Index:   i,
					Message: fmt.Sprintf("intrinsic index %d out of range (table size %d)", prev.Imm.bits, intrinsicCount),
				})
			}
		}
	}

	return errs
}
