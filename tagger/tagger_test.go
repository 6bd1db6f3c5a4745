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
	"testing"

	"github.com/czcorpus/syntaxviz/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokensOf(a *Analysis, role Role) []string {
	s, ok := a.First(role)
	if !ok {
		return nil
	}
	return s.Tokens
}

func TestTagIntransitive(t *testing.T) {
	ans := Tag("The cat sleeps.")
	assert.Equal(t, []string{"The", "cat"}, tokensOf(ans, Subject))
	assert.Equal(t, []string{"sleeps"}, tokensOf(ans, Verb))
	assert.False(t, ans.Has(Object))
	assert.False(t, ans.Has(PrepositionalPhrase))
}

func TestTagDitransitiveMidpoint(t *testing.T) {
	ans := Tag("She gives him a book.")
	assert.Equal(t, []string{"She"}, tokensOf(ans, Subject))
	assert.Equal(t, []string{"gives"}, tokensOf(ans, Verb))
	assert.Equal(t, []string{"him"}, tokensOf(ans, IndirectObject))
	assert.Equal(t, []string{"a", "book"}, tokensOf(ans, DirectObject))
	assert.False(t, ans.Has(Object))
}

func TestTagDitransitiveWithPreposition(t *testing.T) {
	ans := Tag("He sends a letter to his mother.")
	assert.Equal(t, "a letter", ans.JoinedText(DirectObject))
	assert.Equal(t, "to his mother", ans.JoinedText(IndirectObject))
	assert.Equal(t, []string{"to his mother"}, ans.Texts(PrepositionalPhrase))
}

func TestTagDummySubject(t *testing.T) {
	ans := Tag("It is important to study.")
	assert.Equal(t, []string{"It"}, tokensOf(ans, DummySubject))
	assert.Equal(t, "to study", ans.JoinedText(RealSubject))
	assert.Equal(t, []string{"is", "important"}, tokensOf(ans, Verb))
	assert.False(t, ans.Has(Subject))
}

func TestTagLinkingStopsAtPreposition(t *testing.T) {
	ans := Tag("The sky is blue in summer.")
	assert.Equal(t, "blue", ans.JoinedText(SubjectComplement))
	assert.Equal(t, []string{"in summer"}, ans.Texts(PrepositionalPhrase))
	assert.False(t, ans.Has(Object))
}

func TestTagObjectComplement(t *testing.T) {
	ans := Tag("They elected him president.")
	assert.Equal(t, "him", ans.JoinedText(Object))
	assert.Equal(t, "president", ans.JoinedText(ObjectComplement))
}

func TestTagPlainObject(t *testing.T) {
	ans := Tag("My brother reads books about history.")
	assert.Equal(t, []string{"My", "brother"}, tokensOf(ans, Subject))
	assert.Equal(t, "books", ans.JoinedText(Object))
	assert.Equal(t, []string{"about history"}, ans.Texts(PrepositionalPhrase))
}

func TestTagAuxiliaryExtendsVerb(t *testing.T) {
	ans := Tag("The man has not been seen.")
	assert.Equal(t, []string{"has", "not", "been"}, tokensOf(ans, Verb))
	assert.Equal(t, "seen", ans.JoinedText(SubjectComplement))
}

func TestTagAdjectiveInSubject(t *testing.T) {
	ans := Tag("The beautiful garden blooms.")
	assert.Equal(t, []string{"The", "beautiful", "garden"}, tokensOf(ans, Subject))
	assert.Equal(t, []string{"blooms"}, tokensOf(ans, Verb))
}

func TestTagNounClause(t *testing.T) {
	ans := Tag("I think that he is right.")
	assert.Equal(t, []string{"that he is right"}, ans.Texts(NounClause))
	assert.Equal(t, "that he is", ans.JoinedText(Object))
	assert.Equal(t, "right", ans.JoinedText(ObjectComplement))
}

func TestTagPhrasesEndAtConjunction(t *testing.T) {
	ans := Tag("We walked in the rain and sang.")
	assert.Equal(t, []string{"in the rain"}, ans.Texts(PrepositionalPhrase))
}

func TestTagShortSentences(t *testing.T) {
	assert.True(t, Tag("").IsEmpty())
	assert.True(t, Tag("   ").IsEmpty())

	ans := Tag("Go.")
	assert.Equal(t, []string{"Go"}, tokensOf(ans, Subject))
	assert.False(t, ans.Has(Verb))

	ans = Tag("It to.")
	assert.True(t, ans.Has(DummySubject))
	assert.False(t, ans.Has(Verb))

	ans = Tag("The")
	assert.Equal(t, []string{"The"}, tokensOf(ans, Subject))
	assert.False(t, ans.Has(Verb))
}

func TestTagShortDitransitiveFallsBackToObject(t *testing.T) {
	ans := Tag("She gives him.")
	assert.Equal(t, "him", ans.JoinedText(Object))
	assert.False(t, ans.Has(IndirectObject))
	assert.False(t, ans.Has(DirectObject))
}

func TestTagBranchesAreExclusive(t *testing.T) {
	sentences := []string{
		"The cat sleeps.",
		"She gives him a book.",
		"He sends a letter to his mother.",
		"They elected him president.",
		"The sky is blue in summer.",
		"My brother reads books about history.",
		"It is important to study.",
		"I think that he is right.",
		"They call the city a paradise for artists.",
	}
	for _, s := range sentences {
		ans := Tag(s)
		objLike := ans.Has(Object) || ans.Has(ObjectComplement)
		ditrans := ans.Has(IndirectObject) || ans.Has(DirectObject)
		compl := ans.Has(SubjectComplement)
		numBranches := 0
		for _, v := range []bool{objLike, ditrans, compl} {
			if v {
				numBranches++
			}
		}
		assert.LessOrEqual(t, numBranches, 1, s)
	}
}

func TestSpanTextMatchesOriginal(t *testing.T) {
	text := "The  Old   house   stands on   a hill."
	ans := Tag(text)
	runes := []rune(text)
	for _, r := range Roles() {
		for _, span := range ans.Get(r) {
			assert.Equal(t, span.Text, string(runes[span.Start:span.End]), r.String())
		}
	}
	assert.Equal(t, "on   a hill", ans.JoinedText(PrepositionalPhrase))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, LinkingVerb, Classify("seems", 2, 3))
	assert.Equal(t, DitransitiveVerb, Classify("offered", 2, 5))
	assert.Equal(t, PlainVerb, Classify("offered", 2, 3))
	assert.Equal(t, ObjComplementVerb, Classify("makes", 2, 4))
	assert.Equal(t, PlainVerb, Classify("eats", 2, 4))
	// "get" is both linking and ditransitive, linking wins
	assert.Equal(t, LinkingVerb, Classify("gets", 2, 5))
}

func TestEachBranchFillsOwnRoles(t *testing.T) {
	sent := sentence.New("Peter x a b c")
	expected := map[VerbClass][]Role{
		LinkingVerb:       {SubjectComplement},
		DitransitiveVerb:  {IndirectObject, DirectObject},
		ObjComplementVerb: {Object, ObjectComplement},
		PlainVerb:         {Object},
	}
	for class, fn := range branches {
		c := &clause{sent: sent, verbEnd: 2, preps: []int{}, conjs: []int{}, ans: NewAnalysis()}
		fn(c)
		for _, r := range Roles() {
			shouldHave := false
			for _, er := range expected[class] {
				if er == r {
					shouldHave = true
				}
			}
			assert.Equal(t, shouldHave, c.ans.Has(r), "%s: %s", class, r)
		}
	}
}

func TestTagIsDeterministic(t *testing.T) {
	a1, err := json.Marshal(Tag("She gives him a book about cats."))
	require.NoError(t, err)
	a2, err := json.Marshal(Tag("She gives him a book about cats."))
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
}

func TestAnalysisJSON(t *testing.T) {
	data, err := json.Marshal(Tag("The cat sleeps."))
	require.NoError(t, err)
	var raw map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, len(Roles()))
	assert.Empty(t, raw["object"])
	assert.Equal(t, "The cat", raw["subject"][0]["text"])

	var decoded Analysis
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "sleeps", decoded.JoinedText(Verb))
	s, ok := decoded.First(Subject)
	assert.True(t, ok)
	assert.Equal(t, 0, s.First)
	assert.Equal(t, 2, s.Last)
}

func TestRoleKeys(t *testing.T) {
	r, err := ParseRole("indirect_object")
	assert.NoError(t, err)
	assert.Equal(t, IndirectObject, r)
	assert.Equal(t, "io", r.CSSClass())
	_, err = ParseRole("adjective")
	assert.Error(t, err)
	assert.Equal(t, "", Role(99).CSSClass())
	assert.Equal(t, "Role(99)", Role(99).String())
}

func TestRoleText(t *testing.T) {
	data, err := DummySubject.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "dummy_subject", string(data))
	_, err = Role(42).MarshalText()
	assert.Error(t, err)

	var r Role
	require.NoError(t, r.UnmarshalText([]byte("object_complement")))
	assert.Equal(t, ObjectComplement, r)
	assert.Error(t, r.UnmarshalText([]byte("predicate")))
}

func TestAnalysisJSONUnknownRole(t *testing.T) {
	var a Analysis
	err := json.Unmarshal([]byte(`{"subject": [], "predicate": []}`), &a)
	assert.Error(t, err)
}

func TestRoleLabels(t *testing.T) {
	assert.Equal(t, "S (dummy)", DummySubject.Label())
	assert.Equal(t, "IO", IndirectObject.Label())
	assert.Equal(t, "", PrepositionalPhrase.Label())
	assert.Equal(t, "", NounClause.Label())
	assert.Equal(t, "", Role(-1).Label())
}
