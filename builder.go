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
	"fmt"
	"io"
	"strings"

	"github.com/blockmd/blockmd/internal/scan"
)

// Builder drives the container-tree construction of spec.md §4.4: it holds
// the open [ContainerStack] and the [ReferenceMap] being accumulated as
// Reference containers close successfully. One Builder parses exactly one
// document and is not safe for reuse or concurrent use, matching the
// teacher's single-owner blockParser in blocks.go.
type Builder struct {
	options Options
	stack   *ContainerStack
	refs    ReferenceMap
}

// newBuilder returns a Builder ready to accept lines via processLine.
func newBuilder(options Options) *Builder {
	return &Builder{
		options: options,
		stack:   newContainerStack(),
		refs:    make(ReferenceMap),
	}
}

// processLine implements spec.md §4.4 for a single preprocessed line: it
// matches as much of the open container stack as will continue, closes
// whatever did not continue, recognises any new containers the remainder
// opens, and attaches the resulting leaf.
func (b *Builder) processLine(line Line) {
	top := b.stack.Top()

	// The three verbatim container kinds have their own continuation and
	// closing rules that bypass tryNewContainers entirely while they stay
	// open, per spec.md §4.4's per-kind dispatch.
	switch top.Kind {
	case RawHTMLBlockKind:
		remainder, numUnmatched := continueLine(b.stack, line.Text)
		if numUnmatched > 0 {
			b.closeTo(b.stack.Depth() - numUnmatched)
			b.processLine(line)
			return
		}
		top.AppendLeaf(line.Number, blankOrText(remainder))
		return

	case FencedCodeKind:
		remainder, numUnmatched := continueLine(b.stack, line.Text)
		if numUnmatched == 0 {
			if scan.CodeFenceClose(remainder, top.Fence[0], len(top.Fence)) {
				b.closeTo(b.stack.Depth() - 1)
				return
			}
			top.AppendLeaf(line.Number, Leaf{Kind: TextLineKind, Text: remainder})
			return
		}
		b.closeTo(b.stack.Depth() - numUnmatched)
		b.processLine(line)
		return

	case IndentedCodeKind:
		remainder, numUnmatched := continueLine(b.stack, line.Text)
		if numUnmatched == 0 {
			top.AppendLeaf(line.Number, blankOrText(remainder))
			return
		}
		b.closeTo(b.stack.Depth() - numUnmatched)
		b.processLine(line)
		return
	}

	remainder, numUnmatched := continueLine(b.stack, line.Text)

	lastLineIsText := numUnmatched == 0 && top.lastLeafKind() == TextLineKind

	// Lazy continuation: an unmatched BlockQuote or ListItem prefix doesn't
	// close the container if the remainder is plain text that would
	// otherwise extend the innermost open paragraph (spec.md §4.4, §8 P8).
	// A line that starts a new reference definition is never lazy text for
	// an open Reference container: it closes that container instead.
	if numUnmatched > 0 && b.stack.Top().lastLeafKind() == TextLineKind &&
		!(b.stack.Top().Kind == ReferenceKind && scan.ReferenceStart(strings.TrimLeft(remainder, " "))) {
		nc := tryNewContainers(true, 0, remainder)
		if len(nc.opened) == 0 && nc.leaf.Kind == TextLineKind {
			b.appendLeaf(line.Number, nc.leaf)
			return
		}
	}

	if numUnmatched > 0 {
		b.closeTo(b.stack.Depth() - numUnmatched)
	}

	col := len(line.Text) - len(remainder)
	nc := tryNewContainers(lastLineIsText, col, remainder)

	// Setext substitution (spec.md §4.4): a bare setext-underline leaf with
	// no newly opened containers retroactively promotes the preceding
	// TextLine sibling into a heading, rather than being appended as its
	// own leaf.
	if len(nc.opened) == 0 && nc.leaf.Kind == SetextHeaderLeafKind {
		top := b.stack.Top()
		prev := top.detachLastChild()
		top.AppendLeaf(prev.LineNumber, Leaf{
			Kind:  SetextHeaderLeafKind,
			Text:  prev.Leaf.Text,
			Level: nc.leaf.Level,
		})
		return
	}

	for _, c := range nc.opened {
		b.stack.Push(c, line.Number)
		// A newly opened FencedCode container drops the blank leaf that
		// would otherwise represent "nothing yet" on its own opening line;
		// every other opener attaches its own leaf once all openers have
		// been pushed.
		if c.Kind == FencedCodeKind {
			return
		}
	}

	b.appendLeaf(line.Number, nc.leaf)
}

// appendLeaf attaches leaf to the current stack top, applying spec.md
// §4.4's blank-line-in-list-item special rule first: a ListItem never
// accumulates two consecutive BlankLine children. If its last child is
// already a BlankLine, the item closes and leaf is re-delivered to the
// new top instead.
func (b *Builder) appendLeaf(lineNumber int, leaf Leaf) {
	top := b.stack.Top()
	if top.Kind == ListItemKind && top.lastLeafKind() == BlankLineKind {
		b.closeContainer(b.stack.Pop())
		b.appendLeaf(lineNumber, leaf)
		return
	}
	top.AppendLeaf(lineNumber, leaf)
}

// closeTo pops containers until the stack has depth exactly depth, closing
// each one via closeContainer in innermost-first order.
func (b *Builder) closeTo(depth int) {
	for b.stack.Depth() > depth {
		b.closeContainer(b.stack.Pop())
	}
}

// closeContainer implements the per-kind close behaviour of spec.md §4.4:
// Reference containers are parsed and either recorded or discarded;
// ListItem containers with a wholly-blank body are reclassified.
func (b *Builder) closeContainer(c *Container) {
	switch c.Kind {
	case ReferenceKind:
		text := joinLeafText(c)
		if label, ref, ok := parseReferenceDefinition(text); ok {
			b.refs.Insert(label, ref)
		} else {
			b.discardFailedReference(c)
		}

	case ListItemKind:
		if listItemBodyIsBlank(c) {
			b.extractBlankListItem(c)
		}

	case DocumentKind:
		panic("blockmd: Document container cannot be closed mid-parse")
	}
}

// joinLeafText concatenates the text of a container's direct leaf children,
// one source line per line, the way a buffered Reference container's lines
// are rejoined before attempting to parse them as a single definition.
func joinLeafText(c *Container) string {
	var out string
	for i, e := range c.Children {
		if i > 0 {
			out += "\n"
		}
		out += e.Leaf.Text
	}
	return out
}

// discardFailedReference detaches a Reference container whose buffered lines
// failed to parse from its parent and drops it, per spec.md §4.4/§7: a
// reference definition that fails to parse is not an error, and neither
// its text nor the container reaches the output.
func (b *Builder) discardFailedReference(c *Container) {
	parent := b.stack.Top()
	last := parent.detachLastChild()
	if last.Container != c {
		panic("blockmd: reference container must be the last child of the parent")
	}
}

// listItemBodyIsBlank reports whether every element directly inside c is a
// blank leaf (the case spec.md §4.4 singles out: a list item opened on a
// line with nothing but the marker itself, and never given any content).
func listItemBodyIsBlank(c *Container) bool {
	for _, e := range c.Children {
		if e.IsContainer() || e.Leaf.Kind != BlankLineKind {
			return false
		}
	}
	return true
}

// extractBlankListItem detaches a content-free list item's blank leaves and
// re-parents them as siblings of the item itself, so an empty list item
// contributes no spurious blank paragraph to the item's own body.
func (b *Builder) extractBlankListItem(c *Container) {
	parent := b.stack.Top()
	idx := -1
	for i := len(parent.Children) - 1; i >= 0; i-- {
		if parent.Children[i].Container == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic("blockmd: blank list item must be a child of the current top")
	}
	orphans := c.Children
	c.Children = nil
	tail := append([]Element(nil), parent.Children[idx+1:]...)
	parent.Children = append(parent.Children[:idx+1], orphans...)
	parent.Children = append(parent.Children, tail...)
}

// finish closes every remaining open container down to Document and returns
// the finished tree's root along with the accumulated reference map.
func (b *Builder) finish() (*Container, ReferenceMap) {
	b.closeTo(1)
	return b.stack.Top(), b.refs
}

// dumpTree writes a human-readable indented trace of the container tree to
// w, one line per Element, for spec.md §6's debug side channel.
func dumpTree(w io.Writer, c *Container, depth int) {
	indent := func(n int) {
		for i := 0; i < n; i++ {
			fmt.Fprint(w, "  ")
		}
	}
	for _, e := range c.Children {
		indent(depth)
		if e.IsContainer() {
			fmt.Fprintf(w, "%s (line %d)\n", e.Container.Kind, e.LineNumber)
			dumpTree(w, e.Container, depth+1)
		} else {
			fmt.Fprintf(w, "%s %q (line %d)\n", e.Leaf.Kind, e.Leaf.Text, e.LineNumber)
		}
	}
}

// Parse implements spec.md's top-level entry point: it preprocesses text
// into lines, drives a Builder over each one, transforms the finished
// container tree into a flat [Blocks] sequence, and returns it alongside
// the accumulated [ReferenceMap].
func Parse(options Options, text string) (Blocks, ReferenceMap) {
	b := newBuilder(options)
	for _, line := range preprocess(text) {
		b.processLine(line)
	}
	root, refs := b.finish()
	if options.Debug != nil {
		dumpTree(options.Debug, root, 0)
		return nil, refs
	}
	return processElts(root.Children, refs, options), refs
}
