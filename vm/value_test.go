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

import "testing"

func TestValueProjections(t *testing.T) {
	if x, ok := Unsigned(42).AsUnsigned(); !ok || x != 42 {
		t.Errorf("Unsigned(42).AsUnsigned() = %d, %t", x, ok)
	}
	if x, ok := Signed(-42).AsSigned(); !ok || x != -42 {
		t.Errorf("Signed(-42).AsSigned() = %d, %t", x, ok)
	}
	if x, ok := Bool(true).AsBool(); !ok || !x {
		t.Errorf("Bool(true).AsBool() = %t, %t", x, ok)
	}
}

// TestValueNoCoercion checks that projections never convert between tags:
// Signed(1) does not project to uint64 even though the payload would fit.
func TestValueNoCoercion(t *testing.T) {
	if _, ok := Signed(1).AsUnsigned(); ok {
		t.Error("Signed(1) projected to uint64")
	}
	if _, ok := Unsigned(1).AsSigned(); ok {
		t.Error("Unsigned(1) projected to int64")
	}
	if _, ok := Unsigned(1).AsBool(); ok {
		t.Error("Unsigned(1) projected to bool")
	}
	if _, ok := Bool(true).AsUnsigned(); ok {
		t.Error("Bool(true) projected to uint64")
	}
}

func TestValueEquality(t *testing.T) {
	if Unsigned(1) != Unsigned(1) {
		t.Error("Unsigned(1) != Unsigned(1)")
	}
	// Same payload, different tag.
	if Unsigned(1) == Signed(1) {
		t.Error("Unsigned(1) compared equal to Signed(1)")
	}
	if Bool(false) != Bool(false) {
		t.Error("Bool(false) != Bool(false)")
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Unsigned(3), "u64(3)"},
		{Signed(-2), "i64(-2)"},
		{Bool(true), "bool(true)"},
		{Bool(false), "bool(false)"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String() = %q; want %q", got, tc.want)
		}
	}
}

func TestTagString(t *testing.T) {
	cases := []struct {
		tag  Tag
		want string
	}{
		{TagUnsigned, "u64"},
		{TagSigned, "i64"},
		{TagBool, "bool"},
		{Tag(9), "tag(9)"},
	}
	for _, tc := range cases {
		if got := tc.tag.String(); got != tc.want {
			t.Errorf("Tag(%d).String() = %q; want %q", tc.tag, got, tc.want)
		}
	}
}
