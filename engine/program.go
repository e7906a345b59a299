// Copyright 2026 The go-spindle Authors
// This file is part of go-spindle.

// Package engine embeds the spindle VM in a host program. It wraps the core
// interpreter with the pieces a host needs around it: a binary container for
// shipping guest programs, static verification before execution, a cache of
// decoded programs, structured logging of halts, and parallel batch runs.
package engine

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/spindlevm/go-spindle/vm"
)

// ErrInvalidProgram is returned when a program fails decoding or static
// verification.
var ErrInvalidProgram = errors.New("engine: invalid program")

// programMagic identifies the spindle program container format.
var programMagic = []byte{0x53, 0x50, 0x44, 0x4C} // "SPDL"

// Program is a guest program ready for execution: an instruction stream plus
// its literal pool.
type Program struct {
	Code     []vm.Instruction
	Literals []vm.Value
}

// Container layout, all integers little-endian:
//
//	[magic:4]
//	[literalCount:4] literalCount × [tag:1][payload:8]
//	[codeCount:4]    codeCount    × [opcode:1][immTag:1][immPayload:8]
const (
	literalRecordSize     = 9
	instructionRecordSize = 10
)

// Encode serializes a program into the container format.
func Encode(prog *Program) []byte {
	buf := make([]byte, 0, len(programMagic)+8+
		len(prog.Literals)*literalRecordSize+
		len(prog.Code)*instructionRecordSize)

	buf = append(buf, programMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(prog.Literals)))
	for _, lit := range prog.Literals {
		buf = appendValue(buf, lit)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(prog.Code)))
	for _, in := range prog.Code {
		buf = append(buf, byte(in.Op))
		buf = appendValue(buf, in.Imm)
	}
	return buf
}

// Decode parses the container format back into a program. It validates
// structure only; run Verify (or execute through an Engine) for the static
// safety checks.
func Decode(raw []byte) (*Program, error) {
	r := reader{buf: raw}

	magic, err := r.take(len(programMagic))
	if err != nil {
		return nil, fmt.Errorf("%w: missing magic", ErrInvalidProgram)
	}
	for i, b := range programMagic {
		if magic[i] != b {
			return nil, fmt.Errorf("%w: bad magic", ErrInvalidProgram)
		}
	}

	nlit, err := r.uint32()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated literal count", ErrInvalidProgram)
	}
	if uint64(nlit)*literalRecordSize > uint64(len(r.buf)-r.off) {
		return nil, fmt.Errorf("%w: truncated literal pool", ErrInvalidProgram)
	}
	literals := make([]vm.Value, 0, nlit)
	for i := uint32(0); i < nlit; i++ {
		val, err := r.value()
		if err != nil {
			return nil, err
		}
		literals = append(literals, val)
	}

	ncode, err := r.uint32()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated instruction count", ErrInvalidProgram)
	}
	if uint64(ncode)*instructionRecordSize > uint64(len(r.buf)-r.off) {
		return nil, fmt.Errorf("%w: truncated instruction stream", ErrInvalidProgram)
	}
	code := make([]vm.Instruction, 0, ncode)
	for i := uint32(0); i < ncode; i++ {
		op, err := r.byte()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated instruction stream", ErrInvalidProgram)
		}
		imm, err := r.value()
		if err != nil {
			return nil, err
		}
		code = append(code, vm.Instruction{Op: vm.Opcode(op), Imm: imm})
	}

	if r.off != len(r.buf) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidProgram, len(r.buf)-r.off)
	}

	return &Program{Code: code, Literals: literals}, nil
}

// appendValue serializes one tagged value as [tag:1][payload:8].
func appendValue(buf []byte, v vm.Value) []byte {
	var payload uint64
	switch v.Tag() {
	case vm.TagUnsigned:
		payload, _ = v.AsUnsigned()
	case vm.TagSigned:
		i, _ := v.AsSigned()
		payload = uint64(i)
	case vm.TagBool:
		if b, _ := v.AsBool(); b {
			payload = 1
		}
	}
	buf = append(buf, byte(v.Tag()))
	return binary.LittleEndian.AppendUint64(buf, payload)
}

// reader is a bounds-checked cursor over the container bytes.
type reader struct {
	buf []byte
	off int
}

func (r *reader) take(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, fmt.Errorf("%w: truncated at byte %d", ErrInvalidProgram, r.off)
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *reader) byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) value() (vm.Value, error) {
	tag, err := r.byte()
	if err != nil {
		return vm.Value{}, err
	}
	payload, err := r.uint64()
	if err != nil {
		return vm.Value{}, err
	}
	switch vm.Tag(tag) {
	case vm.TagUnsigned:
		return vm.Unsigned(payload), nil
	case vm.TagSigned:
		return vm.Signed(int64(payload)), nil
	case vm.TagBool:
		return vm.Bool(payload != 0), nil
	}
	return vm.Value{}, fmt.Errorf("%w: unknown value tag %d", ErrInvalidProgram, tag)
}
