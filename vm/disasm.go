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

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of the instruction stream,
// one line per instruction with its index.
func Disassemble(code []Instruction) string {
	var b strings.Builder
	for i, in := range code {
		fmt.Fprintf(&b, "[%04d] %s\n", i, in)
	}
	return b.String()
}
