// Copyright 2026 The go-spindle Authors
// This file is part of go-spindle.

package engine

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	log "github.com/inconshreveable/log15"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"

	"github.com/spindlevm/go-spindle/vm"
)

// programCacheSize bounds the number of decoded programs the engine keeps.
const programCacheSize = 128

// Result is the outcome of one guest execution.
type Result struct {
	Halt   vm.HaltReason
	Stack  []vm.Value
	Cycles uint64
}

// Engine executes guest programs against a fixed intrinsics table. It is safe
// for concurrent use: every execution runs in a fresh process, and the
// intrinsics table and program cache are shared read-mostly state.
type Engine struct {
	intrinsics []vm.Intrinsic
	cache      *lru.Cache
	log        log.Logger
}

// New constructs an engine around an intrinsics table. A nil logger gets a
// named child of the root logger.
func New(intrinsics []vm.Intrinsic, logger log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.New("module", "engine")
	}
	cache, err := lru.New(programCacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{intrinsics: intrinsics, cache: cache, log: logger}, nil
}

// Execute verifies a program and runs it under the given cycle budget.
func (e *Engine) Execute(prog *Program, cycleLimit uint64) (*Result, error) {
	if errs := vm.Verify(prog.Code, prog.Literals, len(e.intrinsics)); len(errs) > 0 {
		e.log.Error("program rejected by verifier",
			"errors", len(errs), "first", errs[0].Message)
		return nil, fmt.Errorf("%w: %v", ErrInvalidProgram, &errs[0])
	}
	return e.run(prog, cycleLimit), nil
}

// ExecuteEncoded decodes a program from its container bytes and runs it.
// Decoded and verified programs are cached by the Keccak-256 of the raw
// bytes, so repeated executions of the same container skip both steps.
func (e *Engine) ExecuteEncoded(raw []byte, cycleLimit uint64) (*Result, error) {
	key := programKey(raw)
	if cached, ok := e.cache.Get(key); ok {
		return e.run(cached.(*Program), cycleLimit), nil
	}

	prog, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if errs := vm.Verify(prog.Code, prog.Literals, len(e.intrinsics)); len(errs) > 0 {
		e.log.Error("program rejected by verifier",
			"errors", len(errs), "first", errs[0].Message)
		return nil, fmt.Errorf("%w: %v", ErrInvalidProgram, &errs[0])
	}
	e.cache.Add(key, prog)
	return e.run(prog, cycleLimit), nil
}

// ExecuteBatch runs each program in its own process on its own goroutine.
// Results are returned in input order. The first verification failure aborts
// the batch.
func (e *Engine) ExecuteBatch(progs []*Program, cycleLimit uint64) ([]*Result, error) {
	results := make([]*Result, len(progs))
	var g errgroup.Group
	for i, prog := range progs {
		i, prog := i, prog
		g.Go(func() error {
			res, err := e.Execute(prog, cycleLimit)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// run executes an already-verified program in a fresh process.
func (e *Engine) run(prog *Program, cycleLimit uint64) *Result {
	p := vm.NewWithTables(prog.Code, prog.Literals, e.intrinsics)
	halt := p.Run(cycleLimit)
	e.log.Debug("process halted",
		"reason", halt, "cycles", p.Cycles(), "depth", len(p.Stack()))
	return &Result{Halt: halt, Stack: p.Stack(), Cycles: p.Cycles()}
}

// programKey derives the cache key for a raw container.
func programKey(raw []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(raw)
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
