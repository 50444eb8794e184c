// Copyright 2024 Ross Light
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

// Package format provides a function to format [blockmd.Blocks] as
// CommonMark source, so that spec.md's P4 paragraph-grouping property
// (format, re-parse, compare) is testable end to end.
package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/blockmd/blockmd"
)

// Format writes blocks as CommonMark source to w.
func Format(w io.Writer, blocks blockmd.Blocks) error {
	ww := &errWriter{w: w}
	formatBlocks(ww, blocks, 0, false)
	return ww.err
}

// formatBlocks writes a sibling sequence of blocks at the given indent
// level, in the teacher's prevKind-tracked style of deciding where a
// separating blank line is required between two adjacent blocks.
func formatBlocks(w *errWriter, blocks blockmd.Blocks, indent int, tightItem bool) {
	var prevKind blockmd.BlockKind
	for i, b := range blocks {
		if prevKind != 0 && !(tightItem && i == 0) {
			w.WriteString("\n")
		}
		switch b.Kind {
		case blockmd.ParaKind:
			writeIndent(w, indent)
			w.WriteString(b.Inlines.String())
			w.WriteString("\n")
		case blockmd.HeaderKind:
			writeIndent(w, indent)
			w.WriteString(strings.Repeat("#", b.Level))
			w.WriteString(" ")
			w.WriteString(b.Inlines.String())
			w.WriteString("\n")
		case blockmd.HRuleKind:
			writeIndent(w, indent)
			w.WriteString("---\n")
		case blockmd.BlockquoteKind:
			formatBlockquote(w, b, indent)
		case blockmd.ListKind:
			formatList(w, b, indent)
		case blockmd.CodeBlockKind:
			formatCodeBlock(w, b, indent)
		case blockmd.HTMLBlockKind:
			writeIndentedLines(w, indent, b.Text)
			w.WriteString("\n")
		default:
			w.fail(fmt.Errorf("format: unhandled block kind %v", b.Kind))
			return
		}
		prevKind = b.Kind
	}
}

func formatBlockquote(w *errWriter, b *blockmd.Block, indent int) {
	var inner bytes.Buffer
	innerW := &errWriter{w: &inner}
	formatBlocks(innerW, b.Children, 0, false)
	if innerW.err != nil {
		w.fail(innerW.err)
		return
	}
	lines := strings.SplitAfter(inner.String(), "\n")
	writeIndent(w, indent)
	for i, line := range lines {
		if line == "" {
			continue
		}
		if i > 0 {
			writeIndent(w, indent)
		}
		w.WriteString("> ")
		w.WriteString(line)
	}
}

func formatList(w *errWriter, b *blockmd.Block, indent int) {
	for i, item := range b.Items {
		if i > 0 && !b.Tight {
			w.WriteString("\n")
		}
		marker := listMarker(b.ListType, i)
		writeIndent(w, indent)
		w.WriteString(marker)
		w.WriteString(" ")
		formatBlocks(w, item.Blocks, indent+len(marker)+1, b.Tight)
	}
}

func listMarker(lt blockmd.ListType, index int) string {
	if lt.IsOrdered() {
		return fmt.Sprintf("%d%c", lt.Start+index, lt.Delim)
	}
	return string(lt.Bullet)
}

func formatCodeBlock(w *errWriter, b *blockmd.Block, indent int) {
	if b.Attr.Language != "" || strings.Contains(b.Text, "```") {
		writeIndent(w, indent)
		w.WriteString("```")
		w.WriteString(b.Attr.Language)
		w.WriteString("\n")
		writeIndentedLines(w, indent, b.Text)
		w.WriteString("\n")
		writeIndent(w, indent)
		w.WriteString("```\n")
		return
	}
	for _, line := range strings.Split(b.Text, "\n") {
		writeIndent(w, indent)
		w.WriteString("    ")
		w.WriteString(line)
		w.WriteString("\n")
	}
}

func writeIndent(w *errWriter, indent int) {
	for i := 0; i < indent; i++ {
		w.WriteString(" ")
	}
}

func writeIndentedLines(w *errWriter, indent int, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			w.WriteString("\n")
			writeIndent(w, indent)
		}
		w.WriteString(line)
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
