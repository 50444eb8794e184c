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

// BlockKind identifies the kind of a [Block]. As with [ContainerKind] and
// [LeafKind], this is a tagged-kind struct rather than an interface
// hierarchy: every field on [Block] is meaningful for exactly one (or a
// small related group of) BlockKind values, mirroring the teacher's own
// single concrete Block type in node.go.
type BlockKind uint8

const (
	ParaKind BlockKind = 1 + iota
	HeaderKind
	BlockquoteKind
	ListKind
	CodeBlockKind
	HTMLBlockKind
	HRuleKind
)

// CodeAttr is the language/info-string metadata attached to a fenced code
// block. An indented code block or a fence with no info string has the
// zero value.
type CodeAttr struct {
	Language string
}

// ListItem is one item of a [Block] of [ListKind]: its own nested sequence
// of blocks.
type ListItem struct {
	Blocks Blocks
}

// Block is a single block-level element of the output tree spec.md §3
// describes: Para, Header, Blockquote, List, CodeBlock, HtmlBlock, or
// HRule.
type Block struct {
	Kind BlockKind

	// LineNumber is the 1-based source line the block started on.
	LineNumber int

	// Para, Header.
	Inlines Inlines

	// Header.
	Level int

	// Blockquote.
	Children Blocks

	// List.
	ListType ListType
	Tight    bool
	Items    []ListItem

	// CodeBlock, HtmlBlock.
	Text string

	// CodeBlock.
	Attr CodeAttr
}

// Blocks is a sequence of sibling [Block] values: a document, a
// blockquote's body, or a list item's body.
type Blocks []*Block
