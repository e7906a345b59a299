// Copyright 2026 The go-spindle Authors
// This file is part of go-spindle.

// Package crypto provides digest intrinsics for the spindle standard library.
//
// The guest's value domain has no byte strings, so the hash intrinsics work
// over 64-bit words: the guest pushes the words to hash, then the word count,
// and receives the leading 8 bytes of the digest as a u64. Words and digest
// prefixes are serialized little-endian.
package crypto

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/spindlevm/go-spindle/vm"
)

// Intrinsic table indices, in the order returned by Table.
const (
	IdxHashWords = iota
	IdxShakeWords
)

// HashWords pops a u64 word count, then that many u64 words, and pushes the
// first 8 bytes of the Keccak-256 digest of the words in pop order. A failed
// pop aborts without pushing.
func HashWords(env *vm.Env) {
	n, ok := env.PopUnsigned()
	if !ok {
		return
	}
	h := sha3.NewLegacyKeccak256()
	var word [8]byte
	for i := uint64(0); i < n; i++ {
		w, ok := env.PopUnsigned()
		if !ok {
			return
		}
		binary.LittleEndian.PutUint64(word[:], w)
		h.Write(word[:])
	}
	digest := h.Sum(nil)
	env.Push(vm.Unsigned(binary.LittleEndian.Uint64(digest[:8])))
}

// ShakeWords is HashWords with SHAKE256 in place of Keccak-256.
func ShakeWords(env *vm.Env) {
	n, ok := env.PopUnsigned()
	if !ok {
		return
	}
	h := sha3.NewShake256()
	var word [8]byte
	for i := uint64(0); i < n; i++ {
		w, ok := env.PopUnsigned()
		if !ok {
			return
		}
		binary.LittleEndian.PutUint64(word[:], w)
		h.Write(word[:])
	}
	var out [8]byte
	h.Read(out[:])
	env.Push(vm.Unsigned(binary.LittleEndian.Uint64(out[:])))
}

// Table returns the package's intrinsics in index order.
func Table() []vm.Intrinsic {
	return []vm.Intrinsic{HashWords, ShakeWords}
}
