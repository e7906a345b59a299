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

// Tag identifies which variant a Value holds.
type Tag uint8

const (
	TagUnsigned Tag = iota
	TagSigned
	TagBool
)

var tagNames = [...]string{
	TagUnsigned: "u64",
	TagSigned:   "i64",
	TagBool:     "bool",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", t)
}

// Value is a tagged operand value: an unsigned 64-bit integer, a signed
// 64-bit integer, or a boolean. Values are plain data — copyable, comparable
// with ==, no identity. Operations on Values are monomorphic per tag; there
// is no implicit coercion between tags, ever.
type Value struct {
	tag  Tag
	bits uint64
}

// Unsigned constructs an unsigned 64-bit Value.
func Unsigned(x uint64) Value { return Value{tag: TagUnsigned, bits: x} }

// Signed constructs a signed 64-bit Value.
func Signed(x int64) Value { return Value{tag: TagSigned, bits: uint64(x)} }

// Bool constructs a boolean Value.
func Bool(x bool) Value {
	if x {
		return Value{tag: TagBool, bits: 1}
	}
	return Value{tag: TagBool}
}

// Tag returns the variant tag of the value.
func (v Value) Tag() Tag { return v.tag }

// AsUnsigned projects the value to uint64. It reports false unless the value
// holds the unsigned variant; a Signed(1) does not project to uint64.
func (v Value) AsUnsigned() (uint64, bool) {
	if v.tag != TagUnsigned {
		return 0, false
	}
	return v.bits, true
}

// AsSigned projects the value to int64. It reports false unless the value
// holds the signed variant.
func (v Value) AsSigned() (int64, bool) {
	if v.tag != TagSigned {
		return 0, false
	}
	return int64(v.bits), true
}

// AsBool projects the value to bool. It reports false unless the value holds
// the boolean variant.
func (v Value) AsBool() (bool, bool) {
	if v.tag != TagBool {
		return false, false
	}
	return v.bits != 0, true
}

func (v Value) String() string {
	switch v.tag {
	case TagUnsigned:
		return fmt.Sprintf("u64(%d)", v.bits)
	case TagSigned:
		return fmt.Sprintf("i64(%d)", int64(v.bits))
	case TagBool:
		if v.bits != 0 {
			return "bool(true)"
		}
		return "bool(false)"
	}
	return fmt.Sprintf("value(tag=%d)", v.tag)
}
