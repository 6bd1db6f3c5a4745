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

import "fmt"

// Role is a grammatical function assigned to a span of a sentence
type Role int

const (
	Subject Role = iota
	Verb
	Object
	IndirectObject
	DirectObject
	SubjectComplement
	ObjectComplement
	PrepositionalPhrase
	Adverbial
	NounClause
	DummySubject
	RealSubject
)

type roleProps struct {
	key      string
	cssClass string
	label    string
}

var roles = []roleProps{
	Subject:             {key: "subject", cssClass: "s", label: "S"},
	Verb:                {key: "verb", cssClass: "v", label: "V"},
	Object:              {key: "object", cssClass: "o", label: "O"},
	IndirectObject:      {key: "indirect_object", cssClass: "io", label: "IO"},
	DirectObject:        {key: "direct_object", cssClass: "do", label: "DO"},
	SubjectComplement:   {key: "subject_complement", cssClass: "sc", label: "SC"},
	ObjectComplement:    {key: "object_complement", cssClass: "oc", label: "OC"},
	PrepositionalPhrase: {key: "prepositional_phrase", cssClass: "pp"},
	Adverbial:           {key: "adverbial", cssClass: "adv", label: "ADV"},
	NounClause:          {key: "noun_clause", cssClass: "nc"},
	DummySubject:        {key: "dummy_subject", cssClass: "ds", label: "S (dummy)"},
	RealSubject:         {key: "real_subject", cssClass: "rs", label: "S (real)"},
}

// Roles returns all the roles in their canonical order
func Roles() []Role {
	ans := make([]Role, len(roles))
	for i := range roles {
		ans[i] = Role(i)
	}
	return ans
}

func (r Role) IsValid() bool {
	return r >= 0 && int(r) < len(roles)
}

func (r Role) String() string {
	if !r.IsValid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roles[r].key
}

// CSSClass returns a class name used by the renderer stylesheet
func (r Role) CSSClass() string {
	if !r.IsValid() {
		return ""
	}
	return roles[r].cssClass
}

// Label is a short visible tag shown below the span. Roles rendered
// as brackets (prepositional phrases, noun clauses) have no label.
func (r Role) Label() string {
	if !r.IsValid() {
		return ""
	}
	return roles[r].label
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(roles[r].key), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func ParseRole(key string) (Role, error) {
	for i, p := range roles {
		if p.key == key {
			return Role(i), nil
		}
	}
	return -1, fmt.Errorf("unknown role %s", key)
}
