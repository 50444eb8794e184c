// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package blockmd

import (
	"strings"

	"go4.org/bytereplacer"
)

// tabStopSize is the multiple of columns a tab advances to, matching the
// teacher's tabStopSize constant in parse.go.
const tabStopSize = 4

// nulReplacer substitutes embedded NUL bytes with the Unicode replacement
// character before a document is split into lines, the way the teacher's
// Parse does with bytes.ReplaceAll -- but via go4.org/bytereplacer, which is
// already part of this module's dependency closure for exactly this kind of
// byte-level text substitution (see internal/normhtml's use in the
// teacher's tree).
var nulReplacer = bytereplacer.New("\x00", "�")

// Line is a single 1-based-numbered line of a preprocessed document: its
// tabs have been expanded to spaces and its line terminator stripped.
type Line struct {
	Number int
	Text   string
}

// preprocess splits text into numbered lines, expanding tabs to the next
// multiple of tabStopSize columns and tolerating a missing trailing
// newline, per spec.md §6.
func preprocess(text string) []Line {
	text = string(nulReplacer.Replace([]byte(text)))

	var lines []Line
	n := 0
	for len(text) > 0 {
		n++
		i := strings.IndexByte(text, '\n')
		var raw string
		if i < 0 {
			raw = text
			text = ""
		} else {
			raw = text[:i]
			text = text[i+1:]
		}
		raw = strings.TrimSuffix(raw, "\r")
		lines = append(lines, Line{Number: n, Text: expandTabs(raw)})
	}
	return lines
}

// expandTabs replaces each tab in s with enough spaces to reach the next
// multiple of tabStopSize columns, tracking column width the way the
// teacher's columnWidth helper does in parse.go. Every non-tab rune counts
// as one column: the continuation bytes of a multi-byte UTF-8 sequence do
// not advance it.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	col := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			spaces := tabStopSize - col%tabStopSize
			for j := 0; j < spaces; j++ {
				b.WriteByte(' ')
			}
			col += spaces
		} else {
			b.WriteByte(s[i])
			if s[i]&0xC0 != 0x80 {
				col++
			}
		}
	}
	return b.String()
}
