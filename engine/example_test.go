// Copyright 2026 The go-spindle Authors
// This file is part of go-spindle.

package engine_test

import (
	"fmt"

	log "github.com/inconshreveable/log15"

	"github.com/spindlevm/go-spindle/engine"
	"github.com/spindlevm/go-spindle/vm"
)

// ExampleEngine builds a small guest program that calls an increment routine
// twice and prints the outcome.
func ExampleEngine() {
	logger := log.New()
	logger.SetHandler(log.DiscardHandler())

	e, err := engine.New(nil, logger)
	if err != nil {
		fmt.Println(err)
		return
	}

	prog := &engine.Program{
		Code: []vm.Instruction{
			vm.LitUnsigned(5),
			{Op: vm.OpBranch},
			vm.LitUnsigned(1), // [2] increment routine
			{Op: vm.OpAddUnsigned},
			{Op: vm.OpRet},
			vm.LitUnsigned(10), // [5] entry
			vm.LitUnsigned(2),
			{Op: vm.OpCall},
			vm.LitUnsigned(2),
			{Op: vm.OpCall},
		},
	}

	res, err := e.Execute(prog, 64)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("halt: %s\n", res.Halt)
	fmt.Printf("stack: %v\n", res.Stack)
	// Output:
	// halt: vm: out of bounds instruction pointer
	// stack: [u64(12)]
}
