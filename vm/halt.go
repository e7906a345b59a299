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

// HaltReason is the single terminal value produced by Run. Every way
// execution can end maps to exactly one reason; there is no in-guest trap
// mechanism, so a guest program cannot catch its own faults.
//
// HaltReason also implements error, so hosts may thread a reason through
// error-returning plumbing when that is more convenient than inspecting the
// plain value.
type HaltReason uint8

const (
	// haltNone is the internal "still running" marker used by the dispatch
	// loop; it never escapes Run.
	haltNone HaltReason = iota

	// CycleLimit reports that the cycle budget was exhausted before any other
	// terminal condition. It is the only non-sticky reason: the same process
	// may be handed a fresh budget and resumed.
	CycleLimit
	// OutOfBounds reports an instruction pointer outside the code table,
	// including ordinary fall-through past the last instruction.
	OutOfBounds
	// StackUnderflow reports a pop from an empty operand stack, or an OpRet
	// with an empty call stack.
	StackUnderflow
	// StackOverflow reports a push onto a full operand stack, or an OpCall
	// with a full call stack.
	StackOverflow
	// EmptyScratch reports a read of a scratch slot that was never written.
	EmptyScratch
	// TypeError reports a pop whose declared tag did not match the popped
	// value.
	TypeError
	// InvalidIntrinsic reports an intrinsic index outside the intrinsics
	// table.
	InvalidIntrinsic
	// InvalidLiteral reports an OpLiteralIndexed index outside the literal
	// pool.
	InvalidLiteral
	// ArithmeticFault reports division or modulus by zero.
	ArithmeticFault
)

var haltNames = [...]string{
	haltNone:         "running",
	CycleLimit:       "cycle limit hit",
	OutOfBounds:      "out of bounds instruction pointer",
	StackUnderflow:   "stack underflow",
	StackOverflow:    "stack overflow",
	EmptyScratch:     "read of unset scratch slot",
	TypeError:        "type error",
	InvalidIntrinsic: "invalid intrinsic",
	InvalidLiteral:   "invalid literal",
	ArithmeticFault:  "arithmetic fault",
}

func (r HaltReason) String() string {
	if int(r) < len(haltNames) {
		return haltNames[r]
	}
	return fmt.Sprintf("halt(%d)", uint8(r))
}

func (r HaltReason) Error() string {
	return "vm: " + r.String()
}
