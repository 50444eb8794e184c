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

import "strconv"

// String returns a debug name for k, in the hand-written style of a
// stringer-generated method (the teacher generates these with
// "stringer -type=BlockKind,InlineKind"; this module's kind set is small
// and stable enough to write by hand).
func (k ContainerKind) String() string {
	switch k {
	case DocumentKind:
		return "Document"
	case BlockQuoteKind:
		return "BlockQuote"
	case ListItemKind:
		return "ListItem"
	case FencedCodeKind:
		return "FencedCode"
	case IndentedCodeKind:
		return "IndentedCode"
	case RawHTMLBlockKind:
		return "RawHtmlBlock"
	case ReferenceKind:
		return "Reference"
	default:
		return "ContainerKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k LeafKind) String() string {
	switch k {
	case TextLineKind:
		return "TextLine"
	case BlankLineKind:
		return "BlankLine"
	case ATXHeaderLeafKind:
		return "ATXHeader"
	case SetextHeaderLeafKind:
		return "SetextHeader"
	case RuleLeafKind:
		return "Rule"
	default:
		return "LeafKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k BlockKind) String() string {
	switch k {
	case ParaKind:
		return "Para"
	case HeaderKind:
		return "Header"
	case BlockquoteKind:
		return "Blockquote"
	case ListKind:
		return "List"
	case CodeBlockKind:
		return "CodeBlock"
	case HTMLBlockKind:
		return "HtmlBlock"
	case HRuleKind:
		return "HRule"
	default:
		return "BlockKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k InlineKind) String() string {
	switch k {
	case TextInlineKind:
		return "Text"
	case SoftBreakInlineKind:
		return "SoftBreak"
	case HardBreakInlineKind:
		return "HardBreak"
	default:
		return "InlineKind(" + strconv.Itoa(int(k)) + ")"
	}
}
