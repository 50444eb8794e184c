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
	"html"
	"strings"

	"github.com/blockmd/blockmd/internal/scan"
)

// processElts implements spec.md §4.5: it flattens one container's direct
// children (already fully built by [Builder]) into the output [Blocks]
// sequence, recursing into BlockQuote and ListItem containers.
func processElts(elts []Element, refs ReferenceMap, options Options) Blocks {
	var out Blocks

	var pending []string
	pendingLine := 0
	flush := func() {
		if pending == nil {
			return
		}
		text := strings.Join(pending, "\n")
		out = append(out, &Block{
			Kind:       ParaKind,
			LineNumber: pendingLine,
			Inlines:    ParseInlines(refs, text, options.PreserveHardBreaks),
		})
		pending = nil
	}

	for i := 0; i < len(elts); i++ {
		e := elts[i]

		if !e.IsContainer() {
			switch e.Leaf.Kind {
			case TextLineKind:
				if pending == nil {
					pendingLine = e.LineNumber
				}
				pending = append(pending, e.Leaf.Text)
			case BlankLineKind:
				flush()
			case ATXHeaderLeafKind:
				flush()
				out = append(out, &Block{
					Kind:       HeaderKind,
					LineNumber: e.LineNumber,
					Level:      e.Leaf.Level,
					Inlines:    ParseInlines(refs, e.Leaf.Text, options.PreserveHardBreaks),
				})
			case SetextHeaderLeafKind:
				flush()
				out = append(out, &Block{
					Kind:       HeaderKind,
					LineNumber: e.LineNumber,
					Level:      e.Leaf.Level,
					Inlines:    ParseInlines(refs, e.Leaf.Text, options.PreserveHardBreaks),
				})
			case RuleLeafKind:
				flush()
				out = append(out, &Block{Kind: HRuleKind, LineNumber: e.LineNumber})
			}
			continue
		}

		flush()
		c := e.Container
		switch c.Kind {
		case DocumentKind:
			panic("blockmd: Document container cannot appear as a nested element")

		case BlockQuoteKind:
			out = append(out, &Block{
				Kind:       BlockquoteKind,
				LineNumber: e.LineNumber,
				Children:   processElts(c.Children, refs, options),
			})

		case ListItemKind:
			j := i
			for j < len(elts) && elts[j].IsContainer() && elts[j].Container.Kind == ListItemKind &&
				elts[j].Container.ListType.SameList(c.ListType) {
				j++
			}
			run := elts[i:j]
			out = append(out, buildList(run, refs, options))
			i = j - 1

		case FencedCodeKind:
			text := joinCodeLines(c.Children)
			attr := CodeAttr{}
			if f := strings.Fields(c.Info); len(f) > 0 {
				attr.Language = f[0]
			}
			out = append(out, &Block{
				Kind:       CodeBlockKind,
				LineNumber: e.LineNumber,
				Text:       text,
				Attr:       attr,
			})

		case IndentedCodeKind:
			// An indented code block's continuation rule has no blank-line
			// carve-out (spec.md §4.2), so an interior blank line always
			// closes the container, surfacing as a sibling BlankLine leaf
			// between two IndentedCode siblings. Re-merge that whole run
			// per spec.md §4.5 before it ships as one CodeBlock.
			j := i
			for j < len(elts) {
				if elts[j].IsContainer() {
					if elts[j].Container.Kind != IndentedCodeKind {
						break
					}
				} else if elts[j].Leaf.Kind != BlankLineKind {
					break
				}
				j++
			}
			run := elts[i:j]
			out = append(out, &Block{
				Kind:       CodeBlockKind,
				LineNumber: e.LineNumber,
				Text:       joinIndentedCodeLines(run),
			})
			i = j - 1

		case RawHTMLBlockKind:
			text := joinCodeLines(c.Children)
			if options.AllowRawHTML {
				if options.Sanitize {
					text = html.EscapeString(text)
				}
				out = append(out, &Block{
					Kind:       HTMLBlockKind,
					LineNumber: e.LineNumber,
					Text:       text,
				})
			} else {
				out = append(out, &Block{
					Kind:       ParaKind,
					LineNumber: e.LineNumber,
					Inlines:    ParseInlines(refs, text, options.PreserveHardBreaks),
				})
			}

		case ReferenceKind:
			// Already folded into refs when the container closed; spec.md
			// §4.5/P3 requires it never reach the output tree.
		}
	}

	flush()
	return out
}

// buildList turns a maximal run of sibling same-list ListItem container
// elements into a single List block, determining tightness per spec.md §3:
// loose if any item is separated from its neighbour by a blank line, or
// directly contains a blank line between two of its own blocks, excluding
// a lone blank line trailing the run's final item (which carries no
// looseness information, since nothing follows it to be "separated" from).
func buildList(run []Element, refs ReferenceMap, options Options) *Block {
	first := run[0].Container
	items := make([]ListItem, len(run))
	tight := true
	for i, e := range run {
		c := e.Container
		for j, child := range c.Children {
			if child.IsContainer() || child.Leaf.Kind != BlankLineKind {
				continue
			}
			isTrailingOfLastItem := i == len(run)-1 && j == len(c.Children)-1
			if !isTrailingOfLastItem {
				tight = false
			}
		}
		items[i] = ListItem{Blocks: processElts(c.Children, refs, options)}
	}
	return &Block{
		Kind:       ListKind,
		LineNumber: run[0].LineNumber,
		ListType:   first.ListType,
		Tight:      tight,
		Items:      items,
	}
}

// joinIndentedCodeLines merges a run of sibling IndentedCode containers and
// interleaved BlankLine leaves back into one indented code block's text
// (spec.md §4.5): each container contributes its own already 4-space-
// stripped content lines; each BlankLine sibling contributes an empty
// interior line, dropping its first character since continuation left it
// with 0-3 leading spaces where indented code wants 4; the merged lines are
// then stripped of any trailing all-blank run before joining.
func joinIndentedCodeLines(run []Element) string {
	var lines []string
	for _, e := range run {
		if e.IsContainer() {
			for _, child := range e.Container.Children {
				lines = append(lines, child.Leaf.Text)
			}
			continue
		}
		text := e.Leaf.Text
		if len(text) > 0 {
			text = text[1:]
		}
		lines = append(lines, text)
	}
	for len(lines) > 0 && scan.BlankLine(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// joinCodeLines concatenates a verbatim container's leaf children one
// source line per line, dropping any run of BlankLine leaves trailing the
// last other leaf. A FencedCode container records every content line, blank
// or not, as a TextLine leaf, so a fenced block keeps its trailing blank
// lines.
func joinCodeLines(children []Element) string {
	end := len(children)
	for end > 0 && !children[end-1].IsContainer() && children[end-1].Leaf.Kind == BlankLineKind {
		end--
	}
	lines := make([]string, end)
	for i := 0; i < end; i++ {
		lines[i] = children[i].Leaf.Text
	}
	return strings.Join(lines, "\n")
}
