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

package scan

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// blockTagAtoms is the closed set of tag names spec.md §4.1 allow-lists for
// raw HTML blocks, looked up via golang.org/x/net/html/atom the same way
// the teacher's htmlBlockStarters1 table does in parse_html.go.
var blockTagAtoms = func() map[atom.Atom]bool {
	names := []string{
		"article", "header", "aside", "hgroup", "blockquote", "hr", "body",
		"li", "br", "map", "button", "object", "canvas", "ol", "caption",
		"output", "col", "p", "colgroup", "pre", "dd", "progress", "div",
		"section", "dl", "table", "dt", "tbody", "embed", "textarea",
		"fieldset", "tfoot", "figcaption", "th", "figure", "thead", "footer",
		"tr", "form", "ul", "h1", "h2", "h3", "h4", "h5", "h6", "video",
	}
	m := make(map[atom.Atom]bool, len(names))
	for _, name := range names {
		m[atom.Lookup([]byte(name))] = true
	}
	return m
}()

// HTMLBlockStart reports whether line opens a raw HTML block under spec.md
// §4.1's parse_html_block_start: either a recognised block-level tag name
// (open or closing), the literal "<!--" or "-->" (comment condition), or
// the literal "<?" or "?>" (processing-instruction condition).
func HTMLBlockStart(line string) bool {
	switch {
	case strings.HasPrefix(line, "<!--"), strings.HasPrefix(line, "-->"):
		return true
	case strings.HasPrefix(line, "<?"), strings.HasPrefix(line, "?>"):
		return true
	}
	return tagName(line) != ""
}

// tagName extracts the tag name from a line beginning with '<' or "</",
// case-folded, returning "" if it is not one of blockTagAtoms.
func tagName(line string) string {
	if len(line) < 2 || line[0] != '<' {
		return ""
	}
	i := 1
	if line[i] == '/' {
		i++
	}
	start := i
	for i < len(line) && isTagNameByte(line[i]) {
		i++
	}
	if i == start {
		return ""
	}
	name := strings.ToLower(line[start:i])
	if !blockTagAtoms[atom.Lookup([]byte(name))] {
		return ""
	}
	rest := line[i:]
	if len(rest) == 0 || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '>' ||
		rest[0] == '\r' || rest[0] == '\n' || strings.HasPrefix(rest, "/>") {
		return name
	}
	return ""
}

func isTagNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}
