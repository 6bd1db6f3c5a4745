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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitKeepsTerminators(t *testing.T) {
	assert.Equal(t, []string{"A.", "B!", "C?"}, Split("A. B! C?"))
}

func TestSplitNoTerminator(t *testing.T) {
	assert.Equal(t, []string{"Hello there"}, Split("Hello there"))
	assert.Equal(t, []string{"Hello there"}, Split("  Hello there \n"))
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Empty(t, Split(" \t\n "))
}

func TestSplitCollapsesTerminatorRuns(t *testing.T) {
	ans := Split("Really?!  Yes...   \n Fine.")
	assert.Equal(t, []string{"Really?!", "Yes...", "Fine."}, ans)
}

func TestSplitAbuttingPunctuation(t *testing.T) {
	ans := Split("The cat sleeps.The dog barks. Birds sing.")
	assert.Equal(t, []string{"The cat sleeps.The dog barks.", "Birds sing."}, ans)
}

func TestSplitUnterminatedTail(t *testing.T) {
	ans := Split("She runs. He walks")
	assert.Equal(t, []string{"She runs.", "He walks"}, ans)
}

func TestSplitCountBound(t *testing.T) {
	texts := []string{
		"A. B! C?",
		". . .",
		"one two",
		"x.\n\ny!z? w",
	}
	for _, text := range texts {
		numSegments := len(boundary.Split(text, -1))
		assert.LessOrEqual(t, len(Split(text)), numSegments, text)
	}
}

func TestTokenizeOffsets(t *testing.T) {
	text := "The  cat\tsleeps"
	tokens := Tokenize(text)
	assert.Len(t, tokens, 3)
	for _, tk := range tokens {
		assert.Equal(t, tk.Text, text[tk.Start:tk.End])
	}
	assert.Equal(t, 5, tokens[1].Start)
}

func TestTokenizeBlank(t *testing.T) {
	assert.Empty(t, Tokenize("   "))
}

func TestNewStripsSinglePeriod(t *testing.T) {
	s := New("It works..")
	assert.Equal(t, []string{"It", "works."}, s.Words(0, s.Len()))
	assert.Equal(t, "It works..", s.Text)
}

func TestSubstringKeepsSpacing(t *testing.T) {
	s := New("My  Big   dog runs.")
	assert.Equal(t, "My  Big   dog", s.Substring(0, 3))
	assert.Equal(t, "runs", s.Substring(3, 4))
	assert.Equal(t, "", s.Substring(2, 2))
}

func TestIndexIsCaseSensitive(t *testing.T) {
	s := New("To go to school")
	assert.Equal(t, 2, s.Index("to", 0))
	assert.Equal(t, -1, s.Index("to", 3))
}

func TestRuneOffset(t *testing.T) {
	text := "Café is open"
	idx := strings.Index(text, "is")
	assert.Equal(t, 5, RuneOffset(text, idx))
}

func TestSplitNonFinalSegmentsEndWithTerminator(t *testing.T) {
	assert.Equal(t, []string{"one.", ".", "two."}, Split("one.  . two."))
	for _, text := range []string{
		"A. B! C?",
		"Wait...  what?! Really.\nYes",
		"no terminator at all",
		"  x.\t\ty? z",
	} {
		parts := Split(text)
		for i := 0; i < len(parts)-1; i++ {
			assert.Regexp(t, `[.!?]$`, parts[i], text)
		}
	}
}
