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

import "github.com/blockmd/blockmd/internal/scan"

// newContainers is the result of tryNewContainers: zero or more container
// openers to push (outermost first) plus the leaf to attach once they are
// pushed.
type newContainers struct {
	opened []*Container
	leaf   Leaf
}

// tryNewContainers implements spec.md §4.3. col is the column offset already
// consumed by continueLine; line is the remaining text at that offset.
func tryNewContainers(lastLineIsText bool, col int, line string) newContainers {
	rest := line

	// Step 1: greedily recognise zero or more regular containers.
	var opened []*Container
regularLoop:
	for {
		n := scan.NonindentSpace(rest)
		after := rest[n:]

		if bn := scan.BlockquoteStart(after); bn >= 0 {
			opened = append(opened, &Container{Kind: BlockQuoteKind})
			col += n + bn
			rest = after[bn:]
			continue regularLoop
		}

		if m, ok := scan.ListMarkerStart(after); ok {
			markerCol := col + n + 1 // 1-based column of the marker
			afterMarker := after[m.Width:]
			fieldPadding, consumedSpaces := scan.Padding(m.Width, afterMarker)
			opened = append(opened, &Container{
				Kind:         ListItemKind,
				MarkerColumn: markerCol,
				Padding:      fieldPadding,
				ListType:     ListType{Bullet: m.Bullet, Delim: m.Delim, Start: m.Start},
			})
			col += n + m.Width + consumedSpaces
			rest = afterMarker[consumedSpaces:]
			continue regularLoop
		}

		break
	}

	// Step 2: optionally recognise one verbatim container opener. Fenced
	// code can open even after a text line; the others cannot.
	{
		n := scan.NonindentSpace(rest)
		after := rest[n:]
		if f, ok := scan.CodeFenceOpen(after); ok {
			c := &Container{
				Kind:        FencedCodeKind,
				StartColumn: col + n + 1,
				Fence:       repeatByte(f.Char, f.Len),
				Info:        f.Info,
			}
			return newContainers{opened: append(opened, c), leaf: blankOrText("")}
		}
		if !lastLineIsText {
			if n2 := scan.IndentSpace(rest); n2 >= 0 && !scan.BlankLine(rest[n2:]) {
				c := &Container{Kind: IndentedCodeKind}
				return newContainers{opened: append(opened, c), leaf: blankOrText(rest[n2:])}
			}
			if scan.HTMLBlockStart(after) {
				c := &Container{Kind: RawHTMLBlockKind}
				return newContainers{opened: append(opened, c), leaf: blankOrText(after)}
			}
			if scan.ReferenceStart(after) {
				c := &Container{Kind: ReferenceKind}
				return newContainers{opened: append(opened, c), leaf: blankOrText(after)}
			}
		}
	}

	// Step 3: recognise a leaf.
	n := scan.NonindentSpace(rest)
	after := rest[n:]

	if level, text, ok := scan.ATXHeaderStart(after); ok {
		return newContainers{opened: opened, leaf: Leaf{Kind: ATXHeaderLeafKind, Level: level, Text: text}}
	}
	if lastLineIsText && len(opened) == 0 {
		if level := scan.SetextUnderline(after); level > 0 {
			return newContainers{opened: opened, leaf: Leaf{Kind: SetextHeaderLeafKind, Level: level}}
		}
	}
	if scan.HRule(after) {
		return newContainers{opened: opened, leaf: Leaf{Kind: RuleLeafKind}}
	}
	return newContainers{opened: opened, leaf: blankOrText(rest)}
}

func blankOrText(s string) Leaf {
	if scan.BlankLine(s) {
		return Leaf{Kind: BlankLineKind, Text: s}
	}
	return Leaf{Kind: TextLineKind, Text: s}
}

func repeatByte(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}
