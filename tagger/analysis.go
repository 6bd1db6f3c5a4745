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

package tagger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/czcorpus/syntaxviz/sentence"
)

// Span is a contiguous run of sentence tokens assigned to a role.
type Span struct {

	// Text is the exact substring of the original sentence
	Text string `json:"text"`

	Tokens []string `json:"tokens"`

	// Start and End are character (not byte) offsets
	// within the original sentence
	Start int `json:"start"`
	End   int `json:"end"`

	// First and Last specify the token range [First, Last)
	First int `json:"first"`
	Last  int `json:"last"`
}

func (s Span) Len() int {
	return s.Last - s.First
}

// FirstWord returns the first token of the span (or an empty string)
func (s Span) FirstWord() string {
	if len(s.Tokens) == 0 {
		return ""
	}
	return s.Tokens[0]
}

func newSpan(sent *sentence.Sentence, first, last int) Span {
	if first >= last {
		return Span{First: first, Last: first, Tokens: []string{}}
	}
	startByte := sent.Tokens[first].Start
	endByte := sent.Tokens[last-1].End
	return Span{
		Text:   sent.Substring(first, last),
		Tokens: sent.Words(first, last),
		Start:  sentence.RuneOffset(sent.Text, startByte),
		End:    sentence.RuneOffset(sent.Text, endByte),
		First:  first,
		Last:   last,
	}
}

// ----------------------

// Analysis maps roles to spans found in a single sentence.
type Analysis struct {
	spans map[Role][]Span
}

// Add attaches a span to a role. Empty spans are ignored.
func (a *Analysis) Add(role Role, span Span) {
	if span.Len() <= 0 {
		return
	}
	a.spans[role] = append(a.spans[role], span)
}

func (a *Analysis) Get(role Role) []Span {
	return a.spans[role]
}

func (a *Analysis) First(role Role) (Span, bool) {
	v := a.spans[role]
	if len(v) == 0 {
		return Span{}, false
	}
	return v[0], true
}

func (a *Analysis) Has(role Role) bool {
	return len(a.spans[role]) > 0
}

// Texts returns texts of all the spans assigned to the role
func (a *Analysis) Texts(role Role) []string {
	ans := make([]string, 0, len(a.spans[role]))
	for _, s := range a.spans[role] {
		ans = append(ans, s.Text)
	}
	return ans
}

// JoinedText returns all the role's span texts separated by a space
func (a *Analysis) JoinedText(role Role) string {
	return strings.Join(a.Texts(role), " ")
}

func (a *Analysis) IsEmpty() bool {
	for _, v := range a.spans {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the analysis as an object with all the
// roles present (as produced by Role.MarshalText).
func (a *Analysis) MarshalJSON() ([]byte, error) {
	tmp := make(map[Role][]Span, len(roles))
	for _, r := range Roles() {
		v := a.spans[r]
		if v == nil {
			v = []Span{}
		}
		tmp[r] = v
	}
	return json.Marshal(tmp)
}

func (a *Analysis) UnmarshalJSON(data []byte) error {
	var tmp map[Role][]Span
	if err := json.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	a.spans = make(map[Role][]Span)
	for role, v := range tmp {
		for _, span := range v {
			a.Add(role, span)
		}
	}
	return nil
}

func NewAnalysis() *Analysis {
	return &Analysis{spans: make(map[Role][]Span)}
}
