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

	"github.com/blockmd/blockmd/internal/scan"
)

// continueLine implements spec.md §4.2: walking the stack from Document
// inward, applying each open container's continuation rule to line in
// turn. It returns the text remaining after the last container that
// matched and the number of deepest containers that failed to continue.
func continueLine(stack *ContainerStack, line string) (remainder string, numUnmatched int) {
	col := 0
	for i := 0; i < stack.Depth(); i++ {
		c := stack.At(i)
		switch c.Kind {
		case DocumentKind:
			// Always matches; consumes nothing.

		case BlockQuoteKind:
			n := scan.NonindentSpace(line[col:])
			rest := line[col+n:]
			bn := scan.BlockquoteStart(rest)
			if bn < 0 {
				return line[col:], stack.Depth() - i
			}
			col += n + bn

		case IndentedCodeKind:
			// spec.md §4.2 gives IndentedCode only scan_indent_space, with
			// no blank-line carve-out (unlike ListItem and RawHtmlBlock,
			// which name one explicitly): a blank line fails to continue
			// an indented code block and closes it, the way §4.5's
			// sibling-collection logic for IndentedCode expects.
			n := scan.IndentSpace(line[col:])
			if n < 0 {
				return line[col:], stack.Depth() - i
			}
			col += n

		case FencedCodeKind:
			want := c.StartColumn - 1 - col
			if want < 0 {
				want = 0
			}
			n := scan.SpacesToColumn(line[col:], want)
			col += n

		case RawHTMLBlockKind:
			if scan.BlankLine(line[col:]) {
				return line[col:], stack.Depth() - i
			}

		case ListItemKind:
			if scan.BlankLine(line[col:]) {
				// Matches; consumes nothing.
				continue
			}
			want := c.ContentColumn() - 1 - col // spaces remaining to reach content column
			if want < 0 {
				want = 0
			}
			n := scan.SpacesToColumn(line[col:], want)
			if n < want {
				return line[col:], stack.Depth() - i
			}
			col += n

		case ReferenceKind:
			rest := line[col:]
			if scan.BlankLine(rest) || scan.ReferenceStart(strings.TrimLeft(rest, " ")) {
				return rest, stack.Depth() - i
			}
		}
	}
	return line[col:], 0
}
