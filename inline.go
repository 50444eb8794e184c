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

import "strings"

// InlineKind identifies the kind of an [Inline] node. It deliberately
// mirrors only the subset of the teacher's InlineKind vocabulary
// (inlines.go) that a block-structure-only parser can produce without
// tokenizing emphasis, links, or code spans: plain text and the two kinds
// of line break.
type InlineKind uint8

const (
	TextInlineKind InlineKind = 1 + iota
	SoftBreakInlineKind
	HardBreakInlineKind
)

// Inline is a minimal inline-content node. Inline parsing proper is an
// external collaborator (spec.md §1); this type exists so [ParseInlines]
// has something concrete to return and so paragraph/heading text round-
// trips through [Block] without being thrown away.
type Inline struct {
	Kind InlineKind
	Text string
}

// Inlines is the parsed inline content of a paragraph or heading.
type Inlines []Inline

// String joins the inline content back into plain text, using "\n" for
// soft breaks and "  \n" for hard breaks -- enough for the
// [format] package to reconstruct a paragraph's source text.
func (in Inlines) String() string {
	var b strings.Builder
	for i, inline := range in {
		if i > 0 {
			switch inline.Kind {
			case HardBreakInlineKind:
				b.WriteString("  \n")
			default:
				b.WriteString("\n")
			}
		}
		b.WriteString(inline.Text)
	}
	return b.String()
}

// ParseInlines is the thin stand-in for the inline parser spec.md treats as
// an external collaborator: it splits text on line breaks, classifying a
// break preceded by two or more trailing spaces as a hard line break when
// preserveHardBreaks is set (any other newline, or every newline when
// preserveHardBreaks is false, per spec.md §6's preserve_hard_breaks
// option), a soft line break otherwise. It consults refmap only to the
// extent that a real inline parser would need it (link reference
// resolution), which is outside this module's scope, so refmap is accepted
// for interface compatibility and otherwise unused here.
func ParseInlines(refmap ReferenceMap, text string, preserveHardBreaks bool) Inlines {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make(Inlines, 0, len(lines))
	for i, line := range lines {
		kind := TextInlineKind
		if i > 0 {
			prev := lines[i-1]
			if preserveHardBreaks && strings.HasSuffix(prev, "  ") {
				kind = HardBreakInlineKind
			} else {
				kind = SoftBreakInlineKind
			}
		}
		out = append(out, Inline{Kind: kind, Text: strings.TrimRight(line, " ")})
	}
	return out
}
