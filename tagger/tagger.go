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
	"strings"

	"github.com/czcorpus/syntaxviz/lexicon"
	"github.com/czcorpus/syntaxviz/sentence"
)

// VerbClass determines how the part of a sentence following
// the verb is split into roles.
type VerbClass int

const (
	PlainVerb VerbClass = iota
	LinkingVerb
	DitransitiveVerb
	ObjComplementVerb
)

func (vc VerbClass) String() string {
	switch vc {
	case LinkingVerb:
		return "linking"
	case DitransitiveVerb:
		return "ditransitive"
	case ObjComplementVerb:
		return "objComplement"
	default:
		return "plain"
	}
}

// Classify determines the class of a verb phrase. The test is
// based on substring containment within the lower-cased verb text.
// Ditransitive and object-complement verbs require at least two
// tokens after the verb, otherwise the next class is tested.
func Classify(verbText string, verbEnd, numTokens int) VerbClass {
	twoFollow := verbEnd < numTokens-1
	switch {
	case lexicon.LinkingVerbs.AnyWithin(verbText):
		return LinkingVerb
	case twoFollow && lexicon.DitransitiveVerbs.AnyWithin(verbText):
		return DitransitiveVerb
	case twoFollow && lexicon.ObjComplementVerbs.AnyWithin(verbText):
		return ObjComplementVerb
	}
	return PlainVerb
}

// ------------------------

// clause holds positions within a sentence needed by role branches
type clause struct {
	sent    *sentence.Sentence
	verbEnd int

	// preps are positions of prepositions at or after verbEnd
	preps []int

	// conjs are positions of conjunctions at or after verbEnd
	conjs []int

	ans *Analysis
}

func (c *clause) numTokens() int {
	return c.sent.Len()
}

func (c *clause) span(first, last int) Span {
	return newSpan(c.sent, first, last)
}

// firstPrepAfter returns the first preposition position strictly
// greater than pos (or -1)
func (c *clause) firstPrepAfter(pos int) int {
	for _, p := range c.preps {
		if p > pos {
			return p
		}
	}
	return -1
}

// nextPrepOrEnd returns the first preposition position strictly
// greater than pos, or the sentence length if there is none
func (c *clause) nextPrepOrEnd(pos int) int {
	if p := c.firstPrepAfter(pos); p >= 0 {
		return p
	}
	return c.numTokens()
}

// untilPrep returns the end of a phrase starting at `from` and
// ending before the first preposition (if it lies after `from`).
func (c *clause) untilPrep(from int) int {
	if len(c.preps) > 0 && c.preps[0] > from {
		return c.preps[0]
	}
	return c.numTokens()
}

func (c *clause) isBoundary(pos int) bool {
	for _, p := range c.preps {
		if p == pos {
			return true
		}
	}
	for _, p := range c.conjs {
		if p == pos {
			return true
		}
	}
	return false
}

type branchFunc func(c *clause)

func linkingBranch(c *clause) {
	if c.verbEnd >= c.numTokens() {
		return
	}
	c.ans.Add(SubjectComplement, c.span(c.verbEnd, c.untilPrep(c.verbEnd)))
}

func ditransitiveBranch(c *clause) {
	n := c.numTokens()
	for _, p := range c.preps {
		if lexicon.DativePrepositions.Contains(c.sent.Word(p)) {
			c.ans.Add(DirectObject, c.span(c.verbEnd, p))
			if p+1 < n {
				c.ans.Add(IndirectObject, c.span(p, c.nextPrepOrEnd(p)))
			}
			return
		}
	}
	mid := c.verbEnd + (n-c.verbEnd)/2
	if len(c.conjs) > 0 {
		mid = c.conjs[0]
	}
	c.ans.Add(IndirectObject, c.span(c.verbEnd, mid))
	if mid < n {
		c.ans.Add(DirectObject, c.span(mid, c.untilPrep(mid)))
	}
}

func objComplementBranch(c *clause) {
	n := c.numTokens()
	if len(c.preps) > 0 {
		p := c.preps[0]
		c.ans.Add(Object, c.span(c.verbEnd, p))
		if strings.EqualFold(c.sent.Word(p), "as") {
			c.ans.Add(ObjectComplement, c.span(p, c.nextPrepOrEnd(p)))
		}
		return
	}
	if n-1 > c.verbEnd {
		c.ans.Add(Object, c.span(c.verbEnd, n-1))
		c.ans.Add(ObjectComplement, c.span(n-1, n))
	}
}

func plainBranch(c *clause) {
	if c.verbEnd >= c.numTokens() {
		return
	}
	c.ans.Add(Object, c.span(c.verbEnd, c.untilPrep(c.verbEnd)))
}

// branches assigns exactly one role-splitting strategy to each
// verb class so the object-like roles of different classes never
// mix within a single analysis
var branches = map[VerbClass]branchFunc{
	LinkingVerb:       linkingBranch,
	DitransitiveVerb:  ditransitiveBranch,
	ObjComplementVerb: objComplementBranch,
	PlainVerb:         plainBranch,
}

func prepositionalPhrases(c *clause) {
	n := c.numTokens()
	for _, p := range c.preps {
		if p+1 >= n {
			continue
		}
		end := p + 1
		for end < n && !c.isBoundary(end) {
			end++
		}
		c.ans.Add(PrepositionalPhrase, c.span(p, end))
	}
}

func positions(sent *sentence.Sentence, from int, set lexicon.Set) []int {
	ans := make([]int, 0, 4)
	for i := from; i < sent.Len(); i++ {
		if set.Contains(sent.Word(i)) {
			ans = append(ans, i)
		}
	}
	return ans
}

// findSubject returns the end (exclusive) of the subject
// starting at the beginning of the sentence. The subject consists
// of optional determiners, an optional adjective and a head word.
func findSubject(sent *sentence.Sentence) int {
	n := sent.Len()
	end := 0
	for end < n && lexicon.Determiners.Contains(sent.Word(end)) {
		end++
	}
	if end < n && lexicon.AdjectiveSuffixes.IsSuffixOf(sent.Word(end)) {
		end++
	}
	if end < n {
		end++
	}
	return end
}

func extendVerb(sent *sentence.Sentence, verbStart int) int {
	end := verbStart + 1
	for end < sent.Len() && lexicon.Auxiliaries.Contains(sent.Word(end)) {
		end++
	}
	return end
}

// Tag assigns grammatical roles to the words of a single sentence
// using a set of lexical and positional rules.
func Tag(text string) *Analysis {
	sent := sentence.New(text)
	ans := NewAnalysis()
	n := sent.Len()
	if n == 0 {
		return ans
	}

	var verbStart, verbEnd int
	toIdx := sent.Index("to", 0)
	if strings.EqualFold(sent.Word(0), "it") && toIdx >= 0 {
		ans.Add(DummySubject, newSpan(sent, 0, 1))
		ans.Add(RealSubject, newSpan(sent, toIdx, n))
		verbStart, verbEnd = 1, toIdx

	} else {
		verbStart = findSubject(sent)
		ans.Add(Subject, newSpan(sent, 0, verbStart))
		verbEnd = verbStart
		if verbStart < n {
			verbEnd = extendVerb(sent, verbStart)
		}
	}

	if verbStart < verbEnd {
		verb := newSpan(sent, verbStart, verbEnd)
		ans.Add(Verb, verb)
		c := &clause{
			sent:    sent,
			verbEnd: verbEnd,
			preps:   positions(sent, verbEnd, lexicon.Prepositions),
			conjs:   positions(sent, verbEnd, lexicon.Conjunctions),
			ans:     ans,
		}
		class := Classify(strings.Join(verb.Tokens, " "), verbEnd, n)
		branches[class](c)
		prepositionalPhrases(c)
	}

	if idx := sent.Index("that", 0); idx >= 0 {
		ans.Add(NounClause, newSpan(sent, idx, n))
	}
	return ans
}
