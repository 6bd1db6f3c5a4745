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

package visual

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/czcorpus/syntaxviz/render"
	"github.com/czcorpus/syntaxviz/sentence"
	"github.com/czcorpus/syntaxviz/tagger"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

var ErrEmptyInput = errors.New("no sentence to analyze")

// AnalysisFailure describes a failed analysis of a paragraph.
// Besides the message, it provides a ready to use HTML fragment
// which can be shown instead of the visualization.
type AnalysisFailure struct {
	Message string
	HTML    string
}

func (af *AnalysisFailure) Error() string {
	return af.Message
}

func newAnalysisFailure(msg string) *AnalysisFailure {
	return &AnalysisFailure{
		Message: msg,
		HTML:    fmt.Sprintf("<p>Error during analysis: %s</p>", html.EscapeString(msg)),
	}
}

// ---------------------------

type SentenceResult struct {
	Sentence string           `json:"sentence"`
	Analysis *tagger.Analysis `json:"analysis"`
	HTML     string           `json:"-"`
}

type Result struct {
	Sentences []SentenceResult `json:"sentences"`
	HTML      string           `json:"-"`
}

// ---------------------------

// Pipeline defines the individual steps of the analysis.
type Pipeline struct {
	Split  func(text string) []string
	Tag    func(sentence string) *tagger.Analysis
	Render func(sentence string, ans *tagger.Analysis) (string, error)
}

func (p Pipeline) analyzeSentence(sent string) (SentenceResult, error) {
	ans := p.Tag(sent)
	frag, err := p.Render(sent, ans)
	if err != nil {
		return SentenceResult{}, err
	}
	return SentenceResult{Sentence: sent, Analysis: ans, HTML: frag}, nil
}

// Visualize splits the text into sentences, analyzes each of them
// and joins the rendered results. Any failure (including a panic)
// within one of the steps aborts processing of the whole text
// and is reported as *AnalysisFailure.
func (p Pipeline) Visualize(text string) (ans *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("stack", string(debug.Stack())).
				Msgf("recovered from analysis panic: %v", r)
			ans = nil
			err = newAnalysisFailure(fmt.Sprintf("%v", r))
		}
	}()

	sentences := p.Split(text)
	if len(sentences) == 0 {
		return nil, ErrEmptyInput
	}
	ans = &Result{Sentences: make([]SentenceResult, 0, len(sentences))}
	var b strings.Builder
	for _, sent := range sentences {
		item, err := p.analyzeSentence(sent)
		if err != nil {
			return nil, newAnalysisFailure(err.Error())
		}
		ans.Sentences = append(ans.Sentences, item)
		b.WriteString(item.HTML)
	}
	ans.HTML = b.String()
	log.Debug().Int("sentences", len(sentences)).Msg("text visualized")
	return ans, nil
}

func DefaultPipeline() Pipeline {
	return Pipeline{
		Split:  sentence.Split,
		Tag:    tagger.Tag,
		Render: render.Render,
	}
}

// Visualize analyzes text using the default pipeline
func Visualize(text string) (*Result, error) {
	return DefaultPipeline().Visualize(text)
}
