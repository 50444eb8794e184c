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

package blockmd

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// blockSummary strips line numbers and inline structure down to plain text
// so test tables can compare against a short, readable expectation instead
// of a full *Block tree.
type blockSummary struct {
	Kind  BlockKind
	Level int
	Text  string
	Tight bool
	Items [][]blockSummary
	Attr  CodeAttr
}

func summarize(blocks Blocks) []blockSummary {
	out := make([]blockSummary, len(blocks))
	for i, b := range blocks {
		s := blockSummary{Kind: b.Kind, Level: b.Level, Attr: b.Attr}
		switch b.Kind {
		case ParaKind, HeaderKind:
			s.Text = b.Inlines.String()
		case CodeBlockKind, HTMLBlockKind:
			s.Text = b.Text
		case BlockquoteKind:
			s.Items = [][]blockSummary{summarize(b.Children)}
		case ListKind:
			s.Tight = b.Tight
			for _, item := range b.Items {
				s.Items = append(s.Items, summarize(item.Blocks))
			}
		}
		out[i] = s
	}
	return out
}

func TestParseHeader(t *testing.T) {
	blocks, _ := Parse(Options{}, "# Hello\n")
	got := summarize(blocks)
	want := []blockSummary{{Kind: HeaderKind, Level: 1, Text: "Hello"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

func TestParseBlockquoteLazyContinuation(t *testing.T) {
	blocks, _ := Parse(Options{}, "> foo\nbar\n")
	got := summarize(blocks)
	want := []blockSummary{{
		Kind:  BlockquoteKind,
		Items: [][]blockSummary{{{Kind: ParaKind, Text: "foo\nbar"}}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

func TestParseTightList(t *testing.T) {
	blocks, _ := Parse(Options{}, "- a\n- b\n")
	got := summarize(blocks)
	want := []blockSummary{{
		Kind:  ListKind,
		Tight: true,
		Items: [][]blockSummary{
			{{Kind: ParaKind, Text: "a"}},
			{{Kind: ParaKind, Text: "b"}},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

func TestParseLooseList(t *testing.T) {
	blocks, _ := Parse(Options{}, "- a\n\n- b\n")
	got := summarize(blocks)
	want := []blockSummary{{
		Kind:  ListKind,
		Tight: false,
		Items: [][]blockSummary{
			{{Kind: ParaKind, Text: "a"}},
			{{Kind: ParaKind, Text: "b"}},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

func TestParseLooseListTrailingBlankDoesNotCount(t *testing.T) {
	// A blank line after the *last* item, with nothing following it, does
	// not separate two items -- the list stays tight.
	blocks, _ := Parse(Options{}, "- a\n- b\n\n")
	got := summarize(blocks)
	want := []blockSummary{{
		Kind:  ListKind,
		Tight: true,
		Items: [][]blockSummary{
			{{Kind: ParaKind, Text: "a"}},
			{{Kind: ParaKind, Text: "b"}},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

// TestParseListItemDoubleBlankClosesItem covers spec.md:135's blank-line-
// in-list-item special rule: a second consecutive blank line closes the
// item instead of accumulating inside it, so it does not count against the
// list's tightness and unrelated text after it is not absorbed into the
// item's body.
func TestParseListItemDoubleBlankClosesItem(t *testing.T) {
	blocks, _ := Parse(Options{}, "- foo\n\n\nbar\n")
	got := summarize(blocks)
	want := []blockSummary{
		{
			Kind:  ListKind,
			Tight: true,
			Items: [][]blockSummary{{{Kind: ParaKind, Text: "foo"}}},
		},
		{Kind: ParaKind, Text: "bar"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

func TestParseIndentedCode(t *testing.T) {
	blocks, _ := Parse(Options{}, "    foo\n    bar\n")
	got := summarize(blocks)
	want := []blockSummary{{Kind: CodeBlockKind, Text: "foo\nbar"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

// TestParseIndentedCodeWithInteriorBlank covers spec.md:155's sibling-
// collection rule: an interior blank line closes and reopens the
// IndentedCode container, but the transformer re-merges the run into one
// CodeBlock with the blank line preserved as an empty interior line.
func TestParseIndentedCodeWithInteriorBlank(t *testing.T) {
	blocks, _ := Parse(Options{}, "    foo\n\n    bar\n")
	got := summarize(blocks)
	want := []blockSummary{{Kind: CodeBlockKind, Text: "foo\n\nbar"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

// TestParseIndentedCodeTrailingBlankStripped covers spec.md:155's "strip
// trailing all-space lines" step: a blank line after the last indented
// line, with nothing indented following it, does not become part of the
// code block's text.
func TestParseIndentedCodeTrailingBlankStripped(t *testing.T) {
	blocks, _ := Parse(Options{}, "    foo\n\npara\n")
	got := summarize(blocks)
	want := []blockSummary{
		{Kind: CodeBlockKind, Text: "foo"},
		{Kind: ParaKind, Text: "para"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

func TestParseFencedCodeWithInfoString(t *testing.T) {
	blocks, _ := Parse(Options{}, "```go\nfunc f() {}\n```\n")
	got := summarize(blocks)
	want := []blockSummary{{
		Kind: CodeBlockKind,
		Text: "func f() {}",
		Attr: CodeAttr{Language: "go"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

func TestParseReferenceDefinitionAndShortcut(t *testing.T) {
	blocks, refs := Parse(Options{}, "[foo]: /url \"title\"\n\n[foo]\n")
	got := summarize(blocks)
	want := []blockSummary{{Kind: ParaKind, Text: "[foo]"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
	if ref, ok := refs["foo"]; !ok || ref.URL != "/url" || ref.Title != "title" {
		t.Errorf("refs[%q] = %+v, %v; want {/url title}, true", "foo", ref, ok)
	}
}

func TestParseSetextRetroPromotion(t *testing.T) {
	blocks, _ := Parse(Options{}, "Title\n=====\n")
	got := summarize(blocks)
	want := []blockSummary{{Kind: HeaderKind, Level: 1, Text: "Title"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

func TestParseThematicBreakVsBulletPrecedence(t *testing.T) {
	blocks, _ := Parse(Options{}, "---\n")
	got := summarize(blocks)
	want := []blockSummary{{Kind: HRuleKind}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}

	blocks, _ = Parse(Options{}, "- a\n")
	got = summarize(blocks)
	want = []blockSummary{{
		Kind:  ListKind,
		Tight: true,
		Items: [][]blockSummary{{{Kind: ParaKind, Text: "a"}}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

// TestReferenceNeverInOutput is property P3: a successfully parsed
// reference definition contributes no block at all to the flattened
// output (it only ever lands in the returned [ReferenceMap]), a line that
// never opens a Reference container stays an ordinary paragraph, and a
// reference-shaped line that fails to parse is dropped without surfacing as
// any block at all.
func TestReferenceNeverInOutput(t *testing.T) {
	blocks, refs := Parse(Options{}, "[foo]: /url\n")
	if len(blocks) != 0 {
		t.Errorf("Parse(%q) blocks = %v, want empty", "[foo]: /url\n", summarize(blocks))
	}
	if _, ok := refs["foo"]; !ok {
		t.Errorf(`Parse(%q) refs["foo"] missing`, "[foo]: /url\n")
	}

	blocks, _ = Parse(Options{}, "[not a reference\n")
	got := summarize(blocks)
	want := []blockSummary{{Kind: ParaKind, Text: "[not a reference"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}

	// Looks like a reference opener but has no destination: fails to parse
	// and the buffered Reference container is discarded.
	blocks, _ = Parse(Options{}, "[foo]:\n")
	got = summarize(blocks)
	want = []blockSummary{}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

// TestListTypeSameListReflexive is property P6.
func TestListTypeSameListReflexive(t *testing.T) {
	types := []ListType{
		{Bullet: '-'},
		{Bullet: '*'},
		{Bullet: '+'},
		{Delim: '.', Start: 1},
		{Delim: ')', Start: 5},
	}
	for _, lt := range types {
		if !lt.SameList(lt) {
			t.Errorf("%+v.SameList(itself) = false, want true", lt)
		}
	}
	if (ListType{Delim: '.', Start: 1}).SameList(ListType{Delim: '.', Start: 2}) != true {
		t.Errorf("ordered lists with different start numbers should still be SameList")
	}
	if (ListType{Bullet: '-'}).SameList(ListType{Bullet: '*'}) {
		t.Errorf("different bullet characters should not be SameList")
	}
}

// TestRawHTMLBlockOptions covers spec.md §6's allow_raw_html and sanitize
// options together, since sanitize is only meaningful when raw HTML
// passthrough is also enabled.
func TestRawHTMLBlockOptions(t *testing.T) {
	const src = "<div>\n<b>hi</b>\n</div>\n"

	blocks, _ := Parse(Options{}, src)
	got := summarize(blocks)
	if len(got) != 1 || got[0].Kind != ParaKind {
		t.Fatalf("Parse(%q) with AllowRawHTML=false = %v, want a single ParaKind block", src, got)
	}

	blocks, _ = Parse(Options{AllowRawHTML: true}, src)
	got = summarize(blocks)
	want := []blockSummary{{Kind: HTMLBlockKind, Text: "<div>\n<b>hi</b>\n</div>"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) with AllowRawHTML=true (-want +got):\n%s", diff)
	}

	blocks, _ = Parse(Options{AllowRawHTML: true, Sanitize: true}, src)
	got = summarize(blocks)
	want = []blockSummary{{Kind: HTMLBlockKind, Text: "&lt;div&gt;\n&lt;b&gt;hi&lt;/b&gt;\n&lt;/div&gt;"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) with AllowRawHTML=true, Sanitize=true (-want +got):\n%s", diff)
	}
}

// TestPreserveHardBreaks covers spec.md §6's preserve_hard_breaks option: a
// line ending in two trailing spaces is a hard break only when the option is
// set, and an ordinary soft break otherwise.
func TestPreserveHardBreaks(t *testing.T) {
	const src = "foo  \nbar\n"

	blocks, _ := Parse(Options{}, src)
	if len(blocks) != 1 {
		t.Fatalf("Parse(%q) = %d blocks, want 1", src, len(blocks))
	}
	if got := blocks[0].Inlines.String(); got != "foo\nbar" {
		t.Errorf("Inlines.String() without PreserveHardBreaks = %q, want %q", got, "foo\nbar")
	}

	blocks, _ = Parse(Options{PreserveHardBreaks: true}, src)
	if len(blocks) != 1 {
		t.Fatalf("Parse(%q) = %d blocks, want 1", src, len(blocks))
	}
	if got := blocks[0].Inlines.String(); got != "foo  \nbar" {
		t.Errorf("Inlines.String() with PreserveHardBreaks = %q, want %q", got, "foo  \nbar")
	}
}

// TestDebugOption covers spec.md §6's debug side channel: when Debug is set,
// Parse returns an empty Blocks and writes the container tree trace to the
// provided writer instead.
func TestDebugOption(t *testing.T) {
	var buf strings.Builder
	blocks, refs := Parse(Options{Debug: &buf}, "# Hello\n\n[foo]: /url\n")
	if blocks != nil {
		t.Errorf("Parse(...) with Debug set blocks = %v, want nil", blocks)
	}
	if _, ok := refs["foo"]; !ok {
		t.Errorf(`Parse(...) with Debug set refs["foo"] missing`)
	}
	if buf.Len() == 0 {
		t.Errorf("Parse(...) with Debug set wrote nothing to the trace writer")
	}
	if !strings.Contains(buf.String(), "Hello") {
		t.Errorf("Parse(...) with Debug set trace = %q, want it to mention %q", buf.String(), "Hello")
	}
}

// TestLazyContinuationUnderListItem is property P8's list-item case.
func TestLazyContinuationUnderListItem(t *testing.T) {
	blocks, _ := Parse(Options{}, "- foo\n  bar\nbaz\n")
	got := summarize(blocks)
	want := []blockSummary{{
		Kind:  ListKind,
		Tight: true,
		Items: [][]blockSummary{{{Kind: ParaKind, Text: "foo\nbar\nbaz"}}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}

// TestStackRootIsDocument is property P1.
func TestStackRootIsDocument(t *testing.T) {
	b := newBuilder(Options{})
	if b.stack.Depth() != 1 || b.stack.Top().Kind != DocumentKind {
		t.Fatalf("fresh builder stack = depth %d, top kind %v; want depth 1, DocumentKind",
			b.stack.Depth(), b.stack.Top().Kind)
	}
	root, _ := b.finish()
	if root.Kind != DocumentKind {
		t.Errorf("finish() root kind = %v, want DocumentKind", root.Kind)
	}
}

// TestFencedCodePurity is property P2: a fenced code block's text never
// contains the fence line itself or a line from an unrelated container.
func TestFencedCodePurity(t *testing.T) {
	blocks, _ := Parse(Options{}, "```\nline one\nline two\n```\nafter\n")
	got := summarize(blocks)
	want := []blockSummary{
		{Kind: CodeBlockKind, Text: "line one\nline two"},
		{Kind: ParaKind, Text: "after"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(...) (-want +got):\n%s", diff)
	}
}
