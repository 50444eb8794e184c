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

	"golang.org/x/text/cases"
)

// Reference is the (URL, title) pair a link reference definition resolves
// to.
type Reference struct {
	URL   string
	Title string
}

// ReferenceMap maps a normalized link label to the definition it resolves
// to. Labels are normalized by folding case and collapsing whitespace, per
// spec.md §3/§6.
type ReferenceMap map[string]Reference

// foldLabel is the Unicode case folder used by NormalizeLabel. Using
// golang.org/x/text/cases instead of strings.ToLower matches what
// CommonMark's "case-insensitive" label matching actually means (full
// Unicode case folding, not an ASCII lowercasing), and gives this module's
// already-required golang.org/x/text dependency a direct, exercised call
// site instead of only appearing transitively through golang.org/x/net.
var foldLabel = cases.Fold()

// NormalizeLabel lowercases (via Unicode case folding) and collapses runs
// of whitespace in label to a single space, trimming the ends, per spec.md
// §3's ReferenceMap definition.
func NormalizeLabel(label string) string {
	folded := foldLabel.String(label)
	fields := strings.Fields(folded)
	return strings.Join(fields, " ")
}

// Insert records label → ref, overwriting any existing entry. spec.md §3
// leaves last-vs-first behaviour to the reference map collaborator and
// §9/Open Question 2 resolves it as: the core unconditionally inserts, so
// the most recently parsed definition for a label wins.
func (m ReferenceMap) Insert(label string, ref Reference) {
	m[NormalizeLabel(label)] = ref
}

// parseReferenceDefinition attempts to parse the buffered text of a
// Reference container as "[label]: url \"title\"", spanning one or more
// lines. It reports ok=false if the text is not a well-formed reference
// definition, in which case the container is discarded silently (spec.md
// §4.4/§7).
func parseReferenceDefinition(text string) (label string, ref Reference, ok bool) {
	r := []rune(text)
	i := 0
	skipSpace := func() {
		for i < len(r) && (r[i] == ' ' || r[i] == '\t' || r[i] == '\n' || r[i] == '\r') {
			i++
		}
	}

	skipSpace()
	if i >= len(r) || r[i] != '[' {
		return "", Reference{}, false
	}
	i++
	labelStart := i
	depth := 1
	for i < len(r) {
		switch r[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				goto labelDone
			}
		}
		i++
	}
	return "", Reference{}, false
labelDone:
	label = strings.TrimSpace(string(r[labelStart:i]))
	if label == "" {
		return "", Reference{}, false
	}
	i++ // consume ']'
	if i >= len(r) || r[i] != ':' {
		return "", Reference{}, false
	}
	i++
	skipSpace()

	url, n, ok := parseLinkDestination(r[i:])
	if !ok {
		return "", Reference{}, false
	}
	i += n

	// A title, if present, must be separated by whitespace (possibly
	// crossing a line boundary) from the destination.
	afterDest := i
	skipSpace()
	hadSpace := i > afterDest

	if i >= len(r) {
		return label, Reference{URL: url}, true
	}
	if !hadSpace {
		// No separating space and not EOF: only acceptable if what's left
		// is blank.
		if blankRunes(r[i:]) {
			return label, Reference{URL: url}, true
		}
		return "", Reference{}, false
	}

	if r[i] == '"' || r[i] == '\'' || r[i] == '(' {
		title, n, ok := parseLinkTitle(r[i:])
		if ok && blankRunes(r[i+n:]) {
			return label, Reference{URL: url, Title: title}, true
		}
	}
	if blankRunes(r[i:]) {
		return label, Reference{URL: url}, true
	}
	return "", Reference{}, false
}

func blankRunes(r []rune) bool {
	for _, c := range r {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return false
		}
	}
	return true
}

// parseLinkDestination parses either a "<...>"-delimited destination or a
// bare, balanced-parenthesis, whitespace-free destination.
func parseLinkDestination(r []rune) (dest string, n int, ok bool) {
	if len(r) == 0 {
		return "", 0, false
	}
	if r[0] == '<' {
		for i := 1; i < len(r); i++ {
			switch r[i] {
			case '\\':
				i++
			case '\n', '<':
				return "", 0, false
			case '>':
				return string(r[1:i]), i + 1, true
			}
		}
		return "", 0, false
	}
	depth := 0
	i := 0
	for i < len(r) {
		switch {
		case r[i] == '\\' && i+1 < len(r):
			i += 2
		case r[i] == '(':
			depth++
			i++
		case r[i] == ')':
			if depth == 0 {
				goto done
			}
			depth--
			i++
		case r[i] == ' ' || r[i] == '\t' || r[i] == '\n' || r[i] == '\r':
			goto done
		case r[i] < 0x20 || r[i] == 0x7f:
			return "", 0, false
		default:
			i++
		}
	}
done:
	if i == 0 {
		return "", 0, false
	}
	return string(r[:i]), i, true
}

// parseLinkTitle parses a '"..."', '\'...\'', or '(...)' delimited title.
func parseLinkTitle(r []rune) (title string, n int, ok bool) {
	open := r[0]
	closeRune := open
	if open == '(' {
		closeRune = ')'
	}
	for i := 1; i < len(r); i++ {
		switch r[i] {
		case '\\':
			i++
		case closeRune:
			return string(r[1:i]), i + 1, true
		}
	}
	return "", 0, false
}
