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

package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/czcorpus/syntaxviz/tagger"
	"golang.org/x/net/html"
)

//go:embed layout.html
var layoutSrc string

var layout = template.Must(template.New("layout").Parse(layoutSrc))

// labelRules contains stylesheet rules showing role labels
// below the respective spans
var labelRules = createLabelRules()

func createLabelRules() template.CSS {
	var b strings.Builder
	for _, r := range tagger.Roles() {
		if r.Label() == "" {
			continue
		}
		fmt.Fprintf(&b, "    .%s::after { content: %q; }\n", r.CSSClass(), r.Label())
	}
	return template.CSS(b.String())
}

type layoutData struct {
	Content    template.HTML
	LabelRules template.CSS
}

type part struct {
	classes []string
	text    string
}

func (p part) write(b *strings.Builder) {
	b.WriteString(`<span class="`)
	b.WriteString(html.EscapeString(strings.Join(p.classes, " ")))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(p.text))
	b.WriteString(`</span>`)
}

func simplePart(ans *tagger.Analysis, role tagger.Role) (part, bool) {
	if !ans.Has(role) {
		return part{}, false
	}
	return part{classes: []string{role.CSSClass()}, text: ans.JoinedText(role)}, true
}

// objectPart creates the plain object part. In case the object
// starts with the same word as the first noun clause, the part
// is also marked as a noun clause.
func objectPart(ans *tagger.Analysis) (part, bool) {
	obj, ok := simplePart(ans, tagger.Object)
	if !ok {
		return obj, false
	}
	if nc, ok := ans.First(tagger.NounClause); ok && strings.HasPrefix(obj.text, nc.FirstWord()) {
		obj.classes = append(obj.classes, tagger.NounClause.CSSClass())
	}
	return obj, true
}

func collectParts(ans *tagger.Analysis) []part {
	parts := make([]part, 0, 10)
	add := func(p part, ok bool) {
		if ok {
			parts = append(parts, p)
		}
	}
	if p, ok := simplePart(ans, tagger.DummySubject); ok {
		add(p, ok)

	} else {
		add(simplePart(ans, tagger.Subject))
	}
	add(simplePart(ans, tagger.Verb))
	add(simplePart(ans, tagger.IndirectObject))
	if p, ok := simplePart(ans, tagger.DirectObject); ok {
		add(p, ok)

	} else {
		add(objectPart(ans))
	}
	add(simplePart(ans, tagger.SubjectComplement))
	add(simplePart(ans, tagger.ObjectComplement))
	for _, span := range ans.Get(tagger.PrepositionalPhrase) {
		parts = append(parts, part{
			classes: []string{tagger.PrepositionalPhrase.CSSClass()},
			text:    span.Text,
		})
	}
	if rs, ok := ans.First(tagger.RealSubject); ok {
		parts = append(parts, part{classes: []string{tagger.RealSubject.CSSClass()}, text: rs.Text})
	}
	return parts
}

// Fragment creates an inline HTML markup of a sentence analysis
// (without the surrounding layout).
func Fragment(sentence string, ans *tagger.Analysis) string {
	var b strings.Builder
	for i, p := range collectParts(ans) {
		if i > 0 {
			b.WriteString(" ")
		}
		p.write(&b)
	}
	if !strings.HasSuffix(sentence, ".") {
		b.WriteString(".")
	}
	return b.String()
}

// Render creates a complete HTML visualization of a sentence
// analysis including stylesheet and layout.
func Render(sentence string, ans *tagger.Analysis) (string, error) {
	var b strings.Builder
	err := layout.Execute(&b, layoutData{
		Content:    template.HTML(Fragment(sentence, ans)),
		LabelRules: labelRules,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render analysis: %w", err)
	}
	return b.String(), nil
}
