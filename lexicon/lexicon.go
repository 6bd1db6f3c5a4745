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

package lexicon

import "strings"

// Set is an immutable set of lower-case words. All the lookups
// are case-insensitive.
type Set struct {
	items map[string]struct{}

	// ordered keeps the definition order so containment tests
	// which report the first matching word stay deterministic
	ordered []string
}

func (s Set) Contains(word string) bool {
	_, ok := s.items[strings.ToLower(word)]
	return ok
}

// FirstWithin returns the first word of the set (in the definition
// order) found as a substring of the text.
func (s Set) FirstWithin(text string) (string, bool) {
	lw := strings.ToLower(text)
	for _, w := range s.ordered {
		if strings.Contains(lw, w) {
			return w, true
		}
	}
	return "", false
}

func (s Set) AnyWithin(text string) bool {
	_, ok := s.FirstWithin(text)
	return ok
}

// IsSuffixOf tests whether the word ends with any of the set items.
func (s Set) IsSuffixOf(word string) bool {
	lw := strings.ToLower(word)
	for _, w := range s.ordered {
		if strings.HasSuffix(lw, w) {
			return true
		}
	}
	return false
}

func (s Set) Len() int {
	return len(s.ordered)
}

// Words returns a copy of the set items in their definition order.
func (s Set) Words() []string {
	ans := make([]string, len(s.ordered))
	copy(ans, s.ordered)
	return ans
}

func newSet(words ...string) Set {
	ans := Set{
		items:   make(map[string]struct{}, len(words)),
		ordered: make([]string, 0, len(words)),
	}
	for _, w := range words {
		w = strings.ToLower(w)
		if _, ok := ans.items[w]; ok {
			continue
		}
		ans.items[w] = struct{}{}
		ans.ordered = append(ans.ordered, w)
	}
	return ans
}

var (
	Determiners = newSet("a", "an", "the", "my", "your", "his", "her", "their", "our")

	AdjectiveSuffixes = newSet("ful", "ous", "ive", "able", "ible", "al", "ial", "ic", "ical")

	// Auxiliaries contains auxiliary and negation words extending
	// a verb phrase to the right
	Auxiliaries = newSet("not", "n't", "have", "has", "had", "been", "be", "being")

	LinkingVerbs = newSet(
		"is", "are", "was", "were", "be", "been", "being", "am", "seem", "appear",
		"look", "sound", "smell", "taste", "feel", "become", "get",
	)

	DitransitiveVerbs = newSet(
		"give", "offer", "show", "tell", "send", "hand", "pass", "buy", "get",
		"bring", "teach", "promise", "write", "pay", "sell",
	)

	ObjComplementVerbs = newSet(
		"make", "call", "name", "consider", "find", "think", "elect", "choose",
		"appoint", "declare", "keep", "leave",
	)

	Prepositions = newSet("in", "on", "at", "by", "with", "for", "to", "from", "of", "about")

	// DativePrepositions introduce an indirect object placed
	// after a direct one ("give a book to him")
	DativePrepositions = newSet("to", "for")

	Conjunctions = newSet("and", "but", "or", "nor", "yet", "so")
)
