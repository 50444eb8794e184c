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

// Package blockmd implements the block structure recogniser of a Markdown
// processor: it turns a raw document into a tree of containers and leaves,
// then flattens that tree into a sequence of [Block] values plus a
// [ReferenceMap]. See SPEC_FULL.md for the full component breakdown.
package blockmd

// ContainerKind identifies the kind of an open or closed [Container].
type ContainerKind uint8

const (
	// DocumentKind is the root container. Exactly one exists per parse and
	// it is always at the bottom of the stack.
	DocumentKind ContainerKind = 1 + iota
	BlockQuoteKind
	ListItemKind
	FencedCodeKind
	IndentedCodeKind
	RawHTMLBlockKind
	// ReferenceKind buffers the lines of a prospective link reference
	// definition; it is never attached to the final tree (see
	// [ReferenceMap]).
	ReferenceKind
)

// ListType distinguishes the two families of list marker. Two items belong
// to the same list iff their ListType matches by constructor and
// discriminating field: same bullet character, or same delimiter (ordered
// list start numbers may differ).
type ListType struct {
	// Bullet is '+', '*', or '-' for a bullet list, or zero for an ordered
	// list.
	Bullet byte
	// Delim is '.' or ')' for an ordered list, or zero for a bullet list.
	Delim byte
	// Start is the ordered list's start number. Meaningless for bullet
	// lists.
	Start int
}

// IsOrdered reports whether t describes an ordered (numbered) list.
func (t ListType) IsOrdered() bool { return t.Delim != 0 }

// SameList reports whether t and other belong to the same list, per
// spec.md §3: same bullet character, or same delimiter (start numbers may
// differ).
func (t ListType) SameList(other ListType) bool {
	if t.IsOrdered() != other.IsOrdered() {
		return false
	}
	if t.IsOrdered() {
		return t.Delim == other.Delim
	}
	return t.Bullet == other.Bullet
}

// LeafKind identifies the kind of a [Leaf].
type LeafKind uint8

const (
	TextLineKind LeafKind = 1 + iota
	BlankLineKind
	ATXHeaderLeafKind
	SetextHeaderLeafKind
	RuleLeafKind
)

// Leaf is a line-level token that becomes a terminal element: a line of
// text, a blank line, a heading line, or a thematic break.
type Leaf struct {
	Kind LeafKind
	// Text holds the leaf's content for TextLineKind, BlankLineKind,
	// ATXHeaderLeafKind, and SetextHeaderLeafKind. It is empty for
	// RuleLeafKind and for a freshly minted SetextHeaderLeafKind that has
	// not yet absorbed the preceding text line (see processLine).
	Text string
	// Level is the heading level (1-6 for ATX, 1-2 for setext). Zero for
	// non-heading leaves.
	Level int
}

// Element is either a child [Container] or a line-numbered [Leaf].
type Element struct {
	// LineNumber is the 1-based source line this element was produced from.
	// For a Container element, it is the line the container was opened on.
	LineNumber int
	// Container is non-nil when this element is a nested container; in
	// that case Leaf is the zero value.
	Container *Container
	Leaf      Leaf
}

// IsContainer reports whether e wraps a nested [Container] rather than a
// [Leaf].
func (e Element) IsContainer() bool { return e.Container != nil }

// Container is a block element that can hold other elements: the document
// root, a blockquote, a list item, a fenced or indented code block, a raw
// HTML block, or a buffered reference definition.
type Container struct {
	Kind ContainerKind

	// ListItem fields.
	MarkerColumn int // 1-based column of the marker
	Padding      int // marker width + trailing spaces
	ListType     ListType

	// FencedCode fields.
	StartColumn int // 1-based column the fence itself starts at
	Fence       string
	Info        string

	Children []Element
}

// ContentColumn returns a list item's content column: the first column of
// text that counts as "inside" the item.
func (c *Container) ContentColumn() int {
	return c.MarkerColumn + c.Padding
}

// lastElement returns a pointer to the container's last child element, or
// nil if it has none.
func (c *Container) lastElement() *Element {
	if len(c.Children) == 0 {
		return nil
	}
	return &c.Children[len(c.Children)-1]
}

// lastLeafKind returns the Kind of the container's last child if it is a
// leaf, or 0 if the container is empty or its last child is a nested
// container.
func (c *Container) lastLeafKind() LeafKind {
	e := c.lastElement()
	if e == nil || e.IsContainer() {
		return 0
	}
	return e.Leaf.Kind
}

// ContainerStack is the non-empty stack of currently open containers,
// bottom-to-top. The bottom is always [DocumentKind] and is only closed at
// end of input.
type ContainerStack struct {
	frames []*Container
}

// newContainerStack returns a stack holding only an open Document
// container.
func newContainerStack() *ContainerStack {
	return &ContainerStack{frames: []*Container{{Kind: DocumentKind}}}
}

// Depth returns the number of open containers, including Document.
func (s *ContainerStack) Depth() int { return len(s.frames) }

// Top returns the innermost open container.
func (s *ContainerStack) Top() *Container { return s.frames[len(s.frames)-1] }

// At returns the container at depth i (0 is Document).
func (s *ContainerStack) At(i int) *Container { return s.frames[i] }

// Push opens c as a child of the current top and makes it the new top.
func (s *ContainerStack) Push(c *Container, lineNumber int) {
	top := s.Top()
	top.Children = append(top.Children, Element{LineNumber: lineNumber, Container: c})
	s.frames = append(s.frames, c)
}

// Pop closes the current top, which is already attached as the last child
// element of its parent (see Push), and returns it. Pop must not be called
// when only Document remains.
func (s *ContainerStack) Pop() *Container {
	if len(s.frames) < 2 {
		panic("blockmd: cannot pop the document container")
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// AppendLeaf appends a leaf element to c's children.
func (c *Container) AppendLeaf(lineNumber int, leaf Leaf) {
	c.Children = append(c.Children, Element{LineNumber: lineNumber, Leaf: leaf})
}

// detachLastChild removes and returns c's last child element. It panics if
// c has no children.
func (c *Container) detachLastChild() Element {
	e := c.Children[len(c.Children)-1]
	c.Children = c.Children[:len(c.Children)-1]
	return e
}
