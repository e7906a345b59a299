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

import "math/bits"

// Run executes at most cycleLimit opcodes and returns the reason execution
// stopped. It never returns "successfully": exhausting the budget yields
// CycleLimit, and every other condition yields its halt reason.
//
// CycleLimit is the cooperative-resumption point — the caller may construct a
// fresh budget and call Run again on the same process, and state (stacks,
// scratch, ip) carries over exactly as if the budgets had been one. Every
// other reason latches: further Run calls return the same reason without
// executing.
//
// Run(0) returns CycleLimit immediately and mutates nothing.
func (p *Process) Run(cycleLimit uint64) HaltReason {
	if p.halted {
		return p.reason
	}
	for i := uint64(0); i < cycleLimit; i++ {
		if halt := p.step(); halt != haltNone {
			p.halted = true
			p.reason = halt
			return halt
		}
		p.cycles++
	}
	return CycleLimit
}

// step performs one fetch-decode-execute cycle. It returns haltNone to
// continue, or the terminal halt reason. Opcodes that set ip explicitly
// return before the increment at the bottom; everything else falls through to
// ip++.
func (p *Process) step() HaltReason {
	if p.ip >= uint64(len(p.code)) {
		return OutOfBounds
	}
	in := p.code[p.ip]

	switch in.Op {

	// ---- Literals ----------------------------------------------------------

	case OpLiteralUnsigned, OpLiteralSigned, OpLiteralBool:
		if halt := p.push(in.Imm); halt != haltNone {
			return halt
		}

	case OpLiteralIndexed:
		idx := in.Imm.bits
		if idx >= uint64(len(p.literals)) {
			return InvalidLiteral
		}
		if halt := p.push(p.literals[idx]); halt != haltNone {
			return halt
		}

	// ---- Unsigned arithmetic -----------------------------------------------

	case OpAddUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(x + y)); halt != haltNone {
			return halt
		}

	case OpSubtractUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(x - y)); halt != haltNone {
			return halt
		}

	case OpMultiplyUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(x * y)); halt != haltNone {
			return halt
		}

	case OpDivideUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if y == 0 {
			return ArithmeticFault
		}
		if halt = p.push(Unsigned(x / y)); halt != haltNone {
			return halt
		}

	case OpModulusUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if y == 0 {
			return ArithmeticFault
		}
		if halt = p.push(Unsigned(x % y)); halt != haltNone {
			return halt
		}

	// ---- Signed arithmetic -------------------------------------------------

	case OpAddSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Signed(x + y)); halt != haltNone {
			return halt
		}

	case OpSubtractSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Signed(x - y)); halt != haltNone {
			return halt
		}

	case OpMultiplySigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Signed(x * y)); halt != haltNone {
			return halt
		}

	case OpDivideSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if y == 0 {
			return ArithmeticFault
		}
		if halt = p.push(Signed(x / y)); halt != haltNone {
			return halt
		}

	case OpModulusSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if y == 0 {
			return ArithmeticFault
		}
		if halt = p.push(Signed(x % y)); halt != haltNone {
			return halt
		}

	// ---- Bitwise -----------------------------------------------------------

	case OpBitAnd:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(x & y)); halt != haltNone {
			return halt
		}

	case OpBitOr:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(x | y)); halt != haltNone {
			return halt
		}

	case OpBitXor:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(x ^ y)); halt != haltNone {
			return halt
		}

	case OpBitNot:
		x, halt := p.popUnsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(^x)); halt != haltNone {
			return halt
		}

	case OpBitLShift:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(x << y)); halt != haltNone {
			return halt
		}

	case OpBitRShift:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(x >> y)); halt != haltNone {
			return halt
		}

	case OpBitLRot:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(bits.RotateLeft64(x, int(y%64)))); halt != haltNone {
			return halt
		}

	case OpBitRRot:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Unsigned(bits.RotateLeft64(x, -int(y%64)))); halt != haltNone {
			return halt
		}

	// ---- Boolean logic -----------------------------------------------------

	case OpLogAnd:
		y, x, halt := p.pop2Bool()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x && y)); halt != haltNone {
			return halt
		}

	case OpLogOr:
		y, x, halt := p.pop2Bool()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x || y)); halt != haltNone {
			return halt
		}

	case OpLogNot:
		x, halt := p.popBool()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(!x)); halt != haltNone {
			return halt
		}

	case OpLogXor:
		y, x, halt := p.pop2Bool()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x != y)); halt != haltNone {
			return halt
		}

	// ---- Unsigned comparison -----------------------------------------------

	case OpEqUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x == y)); halt != haltNone {
			return halt
		}

	case OpNeqUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x != y)); halt != haltNone {
			return halt
		}

	case OpGtUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x > y)); halt != haltNone {
			return halt
		}

	case OpLtUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x < y)); halt != haltNone {
			return halt
		}

	case OpGtEqUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x >= y)); halt != haltNone {
			return halt
		}

	case OpLtEqUnsigned:
		y, x, halt := p.pop2Unsigned()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x <= y)); halt != haltNone {
			return halt
		}

	// ---- Signed comparison -------------------------------------------------

	case OpEqSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x == y)); halt != haltNone {
			return halt
		}

	case OpNeqSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x != y)); halt != haltNone {
			return halt
		}

	case OpGtSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x > y)); halt != haltNone {
			return halt
		}

	case OpLtSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x < y)); halt != haltNone {
			return halt
		}

	case OpGtEqSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x >= y)); halt != haltNone {
			return halt
		}

	case OpLtEqSigned:
		y, x, halt := p.pop2Signed()
		if halt != haltNone {
			return halt
		}
		if halt = p.push(Bool(x <= y)); halt != haltNone {
			return halt
		}

	// ---- Control flow ------------------------------------------------------

	case OpBranch:
		target, halt := p.popUnsigned()
		if halt != haltNone {
			return halt
		}
		p.ip = target
		return haltNone

	case OpBranchTrue:
		// Pop order: target on top, predicate below.
		target, halt := p.popUnsigned()
		if halt != haltNone {
			return halt
		}
		pred, halt := p.popBool()
		if halt != haltNone {
			return halt
		}
		if pred {
			p.ip = target
			return haltNone
		}

	case OpCall:
		// The saved return address is the Call instruction itself; OpRet
		// falls through the normal increment, resuming at the instruction
		// after the call. Saving ip+1 instead would re-enter the callee.
		if halt := p.pushCall(p.ip); halt != haltNone {
			return halt
		}
		target, halt := p.popUnsigned()
		if halt != haltNone {
			return halt
		}
		p.ip = target
		return haltNone

	case OpRet:
		addr, halt := p.popCall()
		if halt != haltNone {
			return halt
		}
		p.ip = addr
		// Fall through to the increment below.

	// ---- Scratch slots -----------------------------------------------------

	case OpPushSlot1, OpPushSlot2, OpPushSlot3, OpPushSlot4:
		v, halt := p.pop()
		if halt != haltNone {
			return halt
		}
		p.scratch[in.Op-OpPushSlot1] = scratchSlot{val: v, set: true}

	case OpPopSlot1, OpPopSlot2, OpPopSlot3, OpPopSlot4:
		// Reading does not clear the slot; it stays loaded.
		s := p.scratch[in.Op-OpPopSlot1]
		if !s.set {
			return EmptyScratch
		}
		if halt := p.push(s.val); halt != haltNone {
			return halt
		}

	// ---- Host extension ----------------------------------------------------

	case OpIntrinsic:
		idx, halt := p.popUnsigned()
		if halt != haltNone {
			return halt
		}
		if idx >= uint64(len(p.intrinsics)) {
			return InvalidIntrinsic
		}
		p.intrinsics[idx](&Env{p: p})

	default:
		// An opcode outside the defined set means the instruction stream is
		// malformed; treat it like a fetch outside the program.
		return OutOfBounds
	}

	p.ip++
	return haltNone
}
