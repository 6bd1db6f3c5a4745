// Copyright 2025 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2025 Department of Linguistics,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sentence

import (
	"regexp"
	"strings"
	"unicode"
)

var boundary = regexp.MustCompile(`[.!?]+\s+`)

// Split breaks a paragraph into trimmed sentences. A sentence ends
// with a run of terminators followed by whitespace, the terminators
// stay with the sentence they close. Empty sentences are dropped
// so a text without any non-whitespace content produces an empty slice.
func Split(text string) []string {
	segments := make([]string, 0, 8)
	prev := 0
	for _, loc := range boundary.FindAllStringIndex(text, -1) {
		runEnd := loc[0] + len(strings.TrimRightFunc(text[loc[0]:loc[1]], unicode.IsSpace))
		segments = append(segments, text[prev:runEnd])
		prev = loc[1]
	}
	segments = append(segments, text[prev:])

	ans := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			ans = append(ans, seg)
		}
	}
	return ans
}
