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

package blockmd_test

import (
	"fmt"
	"os"

	"github.com/blockmd/blockmd"
	"github.com/blockmd/blockmd/format"
)

func Example() {
	blocks, refs := blockmd.Parse(blockmd.Options{}, "# Greeting\n\nHello, [world][]!\n\n[world]: https://example.com\n")

	for _, b := range blocks {
		fmt.Printf("%v: %s\n", b.Kind, b.Inlines)
	}
	fmt.Println("refs:", len(refs))

	format.Format(os.Stdout, blocks)

	// Output:
	// Header: Greeting
	// Para: Hello, [world][]!
	// refs: 1
	// # Greeting
	//
	// Hello, [world][]!
}
