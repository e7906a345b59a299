// Copyright 2026 The go-spindle Authors
// This file is part of go-spindle.

package engine

import (
	"testing"

	log "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindlevm/go-spindle/vm"
)

// newTestEngine builds an engine with a silent logger.
func newTestEngine(t *testing.T, intrinsics []vm.Intrinsic) *Engine {
	t.Helper()
	logger := log.New()
	logger.SetHandler(log.DiscardHandler())
	e, err := New(intrinsics, logger)
	require.NoError(t, err)
	return e
}

// addProgram pushes two values and adds them.
func addProgram() *Program {
	return &Program{
		Code: []vm.Instruction{
			vm.LitUnsigned(1),
			vm.LitUnsigned(2),
			{Op: vm.OpAddUnsigned},
		},
	}
}

func TestExecute(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.Execute(addProgram(), 64)
	require.NoError(t, err)
	assert.Equal(t, vm.OutOfBounds, res.Halt)
	assert.Equal(t, []vm.Value{vm.Unsigned(3)}, res.Stack)
	assert.Equal(t, uint64(3), res.Cycles)
}

func TestExecuteWithLiteralPool(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.Execute(&Program{
		Code: []vm.Instruction{
			vm.LitIndexed(0),
			vm.LitIndexed(1),
			{Op: vm.OpMultiplyUnsigned},
		},
		Literals: []vm.Value{vm.Unsigned(6), vm.Unsigned(7)},
	}, 64)
	require.NoError(t, err)
	assert.Equal(t, []vm.Value{vm.Unsigned(42)}, res.Stack)
}

func TestExecuteWithIntrinsics(t *testing.T) {
	double := func(env *vm.Env) {
		x, ok := env.PopUnsigned()
		if !ok {
			return
		}
		env.Push(vm.Unsigned(2 * x))
	}
	e := newTestEngine(t, []vm.Intrinsic{double})

	res, err := e.Execute(&Program{
		Code: []vm.Instruction{
			vm.LitUnsigned(21),
			vm.LitUnsigned(0),
			{Op: vm.OpIntrinsic},
		},
	}, 64)
	require.NoError(t, err)
	assert.Equal(t, []vm.Value{vm.Unsigned(42)}, res.Stack)
}

func TestExecuteRejectsInvalidProgram(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Execute(&Program{
		Code: []vm.Instruction{vm.LitIndexed(9)},
	}, 64)
	require.ErrorIs(t, err, ErrInvalidProgram)
}

func TestExecuteEncodedCaches(t *testing.T) {
	e := newTestEngine(t, nil)
	raw := Encode(addProgram())

	first, err := e.ExecuteEncoded(raw, 64)
	require.NoError(t, err)
	second, err := e.ExecuteEncoded(raw, 64)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.cache.Len())
}

func TestExecuteEncodedRejectsGarbage(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.ExecuteEncoded([]byte("not a program"), 64)
	require.ErrorIs(t, err, ErrInvalidProgram)
	assert.Equal(t, 0, e.cache.Len())
}

func TestExecuteBatch(t *testing.T) {
	e := newTestEngine(t, nil)

	progs := make([]*Program, 8)
	for i := range progs {
		progs[i] = &Program{
			Code: []vm.Instruction{
				vm.LitUnsigned(uint64(i)),
				vm.LitUnsigned(10),
				{Op: vm.OpMultiplyUnsigned},
			},
		}
	}

	results, err := e.ExecuteBatch(progs, 64)
	require.NoError(t, err)
	require.Len(t, results, len(progs))
	for i, res := range results {
		assert.Equal(t, vm.OutOfBounds, res.Halt)
		assert.Equal(t, []vm.Value{vm.Unsigned(uint64(i) * 10)}, res.Stack, "program %d", i)
	}
}

func TestExecuteBatchPropagatesFailure(t *testing.T) {
	e := newTestEngine(t, nil)

	progs := []*Program{
		addProgram(),
		{Code: []vm.Instruction{vm.LitIndexed(3)}}, // bad literal index
	}
	_, err := e.ExecuteBatch(progs, 64)
	require.ErrorIs(t, err, ErrInvalidProgram)
}
