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

// Package scan provides the primitive, stateless line recognisers that the
// block structure builder composes: blockquote markers, list markers, code
// fence openers, ATX/setext header lines, thematic breaks, and reference
// label lookahead. Every scanner here operates on a single already-tab-
// expanded line and either reports failure or returns the number of bytes
// it consumed, the way the teacher's parseCodeFence/parseListMarker/
// parseATXHeading/parseSetextHeadingUnderline/parseThematicBreak do in
// blocks.go: a zero-value (or -1) result signals "does not match" rather
// than an error.
package scan

import "strings"

// NonindentSpace reports how many of the up-to-three leading spaces of s
// should be skipped before looking for block structure.
func NonindentSpace(s string) int {
	n := 0
	for n < 3 && n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// IndentSpace reports whether s begins with four spaces, returning the
// number of bytes consumed (always 4) or -1 if it does not.
func IndentSpace(s string) int {
	if len(s) >= 4 && s[:4] == "    " {
		return 4
	}
	return -1
}

// BlankLine reports whether s consists solely of spaces or tabs (and an
// optional trailing line ending, which callers have typically already
// trimmed).
func BlankLine(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			// Ignore.
		default:
			return false
		}
	}
	return true
}

// BlockquoteStart matches '>' optionally followed by one space, returning
// the number of bytes consumed or -1 if s does not begin with '>'.
func BlockquoteStart(s string) int {
	if len(s) == 0 || s[0] != '>' {
		return -1
	}
	if len(s) > 1 && s[1] == ' ' {
		return 2
	}
	return 1
}

// SpacesToColumn skips up to n leading spaces of s. It never fails: it
// returns the number of spaces actually consumed, which may be less than n
// if s runs out of leading spaces first.
func SpacesToColumn(s string, n int) int {
	i := 0
	for i < n && i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

// ATXHeaderStart recognises "#{1,6}" followed by a space or end of line.
// It reports the heading level (1-6) and the trimmed heading text, or
// ok=false if s is not a valid ATX heading opener.
func ATXHeaderStart(s string) (level int, text string, ok bool) {
	i := 0
	for i < len(s) && s[i] == '#' {
		i++
	}
	if i == 0 || i > 6 {
		return 0, "", false
	}
	level = i
	if i == len(s) {
		return level, "", true
	}
	if s[i] != ' ' && s[i] != '\t' {
		return 0, "", false
	}
	rest := strings.TrimLeft(s[i:], " \t")
	return level, trimATXClosing(rest), true
}

// trimATXClosing strips an optional trailing run of '#' characters (and the
// whitespace before it), leaving an escaped "\#" at the end literal.
func trimATXClosing(s string) string {
	s = strings.TrimRight(s, " \t")
	end := len(s)
	i := end
	for i > 0 && s[i-1] == '#' {
		i--
	}
	if i == end {
		// No trailing hashes.
		return s
	}
	if i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		return strings.TrimRight(s[:i], " \t")
	}
	if i == 0 {
		return ""
	}
	// Hashes directly abut non-space content: not a closing sequence.
	return s
}

// SetextUnderline reports the heading level of a setext underline line (1
// for a run of '=', 2 for a run of '-'), or 0 if s is not one.
func SetextUnderline(s string) int {
	if len(s) == 0 {
		return 0
	}
	var level int
	var c byte
	switch s[0] {
	case '=':
		level, c = 1, '='
	case '-':
		level, c = 2, '-'
	default:
		return 0
	}
	i := 1
	for i < len(s) && s[i] == c {
		i++
	}
	if !BlankLine(s[i:]) {
		return 0
	}
	return level
}

// HRule reports whether s (after any leading indent has been stripped) is a
// thematic break: three or more of '*', '_', or '-', the same character
// throughout, interleaved with optional spaces and nothing else.
func HRule(s string) bool {
	n := 0
	var want byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '*', '_', '-':
			if n == 0 {
				want = c
			} else if c != want {
				return false
			}
			n++
		case ' ', '\t', '\r', '\n':
			// Ignore.
		default:
			return false
		}
	}
	return n >= 3
}

// CodeFence describes a parsed code fence opener.
type CodeFence struct {
	Char byte // '`' or '~'
	Len  int  // number of fence characters, >= 3
	Info string
}

// CodeFenceOpen attempts to parse a code fence opener at the start of s.
// ok is false if s does not begin with 3+ of '`' or '~'.
func CodeFenceOpen(s string) (fence CodeFence, ok bool) {
	if len(s) < 3 || (s[0] != '`' && s[0] != '~') {
		return CodeFence{}, false
	}
	c := s[0]
	n := 1
	for n < len(s) && s[n] == c {
		n++
	}
	if n < 3 {
		return CodeFence{}, false
	}
	info := strings.Trim(s[n:], " \t\r\n")
	if c == '`' && strings.IndexByte(info, '`') >= 0 {
		return CodeFence{}, false
	}
	return CodeFence{Char: c, Len: n, Info: info}, true
}

// CodeFenceClose reports whether s closes a fence opened with the given
// character and length: the source only checks that the closing run is the
// same character and at least as long as the opener, not that it matches
// exactly (see SPEC_FULL.md Open Question 3).
func CodeFenceClose(s string, fenceChar byte, fenceLen int) bool {
	s = strings.TrimLeft(s, " ")
	i := 0
	for i < len(s) && s[i] == fenceChar {
		i++
	}
	if i < 3 || i < fenceLen {
		return false
	}
	return BlankLine(s[i:])
}

// ListMarker describes a parsed list marker.
type ListMarker struct {
	Bullet byte // '+', '*', or '-'; zero if ordered
	Delim  byte // '.' or ')'; zero if bullet
	Start  int  // start number, valid only if Delim != 0
	Width  int  // number of bytes the marker itself occupies
}

func (m ListMarker) IsOrdered() bool { return m.Delim != 0 }

// ListMarkerStart attempts to parse a list marker at the start of s. A '*'
// or '-' that would also form a thematic break is rejected so that
// HRule wins (see spec.md §4.1 / test scenario 8).
func ListMarkerStart(s string) (m ListMarker, ok bool) {
	if len(s) == 0 {
		return ListMarker{}, false
	}
	switch c := s[0]; {
	case c == '+' || c == '*' || c == '-':
		if HRule(s) {
			return ListMarker{}, false
		}
		if len(s) > 1 && s[1] != ' ' && s[1] != '\t' && s[1] != '\r' && s[1] != '\n' {
			return ListMarker{}, false
		}
		return ListMarker{Bullet: c, Width: 1}, true
	case isDigit(c):
		n := 0
		i := 0
		for i < len(s) && i < 9 && isDigit(s[i]) {
			n = n*10 + int(s[i]-'0')
			i++
		}
		if i >= len(s) || (s[i] != '.' && s[i] != ')') {
			return ListMarker{}, false
		}
		delim := s[i]
		i++
		if i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != '\r' && s[i] != '\n' {
			return ListMarker{}, false
		}
		return ListMarker{Delim: delim, Start: n, Width: i}, true
	default:
		return ListMarker{}, false
	}
}

// MarkerFieldWidth returns the column width spec.md assigns to a marker of
// the given ordered start value: 1 for a bullet, or 2/3/4/5 for an ordered
// marker depending on how many digits the start number has.
func MarkerFieldWidth(m ListMarker) int {
	if !m.IsOrdered() {
		return 1
	}
	switch {
	case m.Start < 10:
		return 2
	case m.Start < 100:
		return 3
	case m.Start < 1000:
		return 4
	default:
		return 5
	}
}

// Padding computes the spec.md §4.1 padding clamp for a list marker of the
// given field width: fieldPadding is the container's Padding field (spaces-
// after plus marker width, after clamping), and consumed is the number of
// literal space bytes of afterMarker that the clamp actually accounts for
// (zero when afterMarker is blank, since there is nothing to consume).
func Padding(width int, afterMarker string) (fieldPadding, consumed int) {
	if BlankLine(afterMarker) {
		return width + 1, 0
	}
	n := 0
	for n < len(afterMarker) && afterMarker[n] == ' ' {
		n++
	}
	if n >= 4 {
		return width + 1, 1
	}
	return width + n, n
}

// ReferenceStart reports whether s looks like the beginning of a link
// reference definition: a '[' that can be matched to a ']' followed by ':'.
func ReferenceStart(s string) bool {
	if len(s) == 0 || s[0] != '[' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i+1 < len(s) && s[i+1] == ':'
			}
		}
	}
	return false
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
