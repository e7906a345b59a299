// Copyright 2026 The go-spindle Authors
// This file is part of go-spindle.

// Package math provides numeric intrinsics for the spindle standard library.
//
// Each intrinsic operates through the vm.Env facade: it pops its operands
// from the guest's operand stack and pushes its result back. When a pop fails
// (empty stack or tag mismatch) the callback returns without pushing; the
// guest observes the missing result.
package math

import (
	"math/bits"

	"github.com/spindlevm/go-spindle/vm"
)

// Intrinsic table indices, in the order returned by Table.
const (
	IdxMin = iota
	IdxMax
	IdxAbs
	IdxSignum
	IdxPopCount
)

// Min pops two u64 operands and pushes the smaller.
func Min(env *vm.Env) {
	y, ok := env.PopUnsigned()
	if !ok {
		return
	}
	x, ok := env.PopUnsigned()
	if !ok {
		return
	}
	if y < x {
		x = y
	}
	env.Push(vm.Unsigned(x))
}

// Max pops two u64 operands and pushes the larger.
func Max(env *vm.Env) {
	y, ok := env.PopUnsigned()
	if !ok {
		return
	}
	x, ok := env.PopUnsigned()
	if !ok {
		return
	}
	if y > x {
		x = y
	}
	env.Push(vm.Unsigned(x))
}

// Abs pops an i64 and pushes its magnitude. The most negative value wraps to
// itself, matching the VM's two's-complement arithmetic.
func Abs(env *vm.Env) {
	x, ok := env.PopSigned()
	if !ok {
		return
	}
	if x < 0 {
		x = -x
	}
	env.Push(vm.Signed(x))
}

// Signum pops an i64 and pushes -1, 0, or 1.
func Signum(env *vm.Env) {
	x, ok := env.PopSigned()
	if !ok {
		return
	}
	var s int64
	switch {
	case x > 0:
		s = 1
	case x < 0:
		s = -1
	}
	env.Push(vm.Signed(s))
}

// PopCount pops a u64 and pushes the number of set bits.
func PopCount(env *vm.Env) {
	x, ok := env.PopUnsigned()
	if !ok {
		return
	}
	env.Push(vm.Unsigned(uint64(bits.OnesCount64(x))))
}

// Table returns the package's intrinsics in index order.
func Table() []vm.Intrinsic {
	return []vm.Intrinsic{Min, Max, Abs, Signum, PopCount}
}
