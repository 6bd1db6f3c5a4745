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
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token represents a whitespace-delimited word of a sentence
// (including possible attached punctuation).
type Token struct {
	Text string `json:"text"`

	// Start is a byte offset of the token in the original sentence
	Start int `json:"start"`

	// End is a byte offset right after the token
	End int `json:"end"`
}

// Sentence is an immutable tokenized sentence. Token offsets
// always refer to Text.
type Sentence struct {
	Text   string
	Tokens []Token
}

func (s *Sentence) Len() int {
	return len(s.Tokens)
}

func (s *Sentence) Word(i int) string {
	return s.Tokens[i].Text
}

// Words returns the texts of tokens in the range [first, last)
func (s *Sentence) Words(first, last int) []string {
	if first >= last {
		return []string{}
	}
	ans := make([]string, 0, last-first)
	for _, t := range s.Tokens[first:last] {
		ans = append(ans, t.Text)
	}
	return ans
}

// Substring returns the exact part of the original text covered
// by tokens [first, last), including the original inner spacing.
func (s *Sentence) Substring(first, last int) string {
	if first >= last {
		return ""
	}
	return s.Text[s.Tokens[first].Start:s.Tokens[last-1].End]
}

// Index returns a position of the first token equal
// (case-sensitive) to the word, starting from the position `from`.
// In case nothing is found, -1 is returned.
func (s *Sentence) Index(word string, from int) int {
	for i := from; i < len(s.Tokens); i++ {
		if s.Tokens[i].Text == word {
			return i
		}
	}
	return -1
}

// StripPeriod removes a single trailing period.
func StripPeriod(text string) string {
	return strings.TrimSuffix(text, ".")
}

// Tokenize splits text by whitespace and records byte offsets
// of each token.
func Tokenize(text string) []Token {
	ans := make([]Token, 0, 16)
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				ans = append(ans, Token{Text: text[start:i], Start: start, End: i})
				start = -1
			}

		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		ans = append(ans, Token{Text: text[start:], Start: start, End: len(text)})
	}
	return ans
}

// New creates a sentence with a single trailing period
// excluded from its tokens (but kept in the Text).
func New(text string) *Sentence {
	return &Sentence{
		Text:   text,
		Tokens: Tokenize(StripPeriod(text)),
	}
}

// RuneOffset converts a byte offset within the text into
// a character offset.
func RuneOffset(text string, byteOffset int) int {
	return utf8.RuneCountInString(text[:byteOffset])
}
