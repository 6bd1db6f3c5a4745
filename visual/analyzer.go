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
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/syntaxviz/reqcache"
	"github.com/czcorpus/syntaxviz/tagger"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const cacheVariant = "visual"

type cachedSentence struct {
	Sentence string           `json:"sentence"`
	Analysis *tagger.Analysis `json:"analysis"`
	HTML     string           `json:"html"`
}

type cachedResult struct {
	Sentences []cachedSentence `json:"sentences"`
	HTML      string           `json:"html"`
}

func (cr *cachedResult) toResult() *Result {
	ans := &Result{
		Sentences: make([]SentenceResult, len(cr.Sentences)),
		HTML:      cr.HTML,
	}
	for i, s := range cr.Sentences {
		ans.Sentences[i] = SentenceResult(s)
	}
	return ans
}

func newCachedResult(res *Result) *cachedResult {
	ans := &cachedResult{
		Sentences: make([]cachedSentence, len(res.Sentences)),
		HTML:      res.HTML,
	}
	for i, s := range res.Sentences {
		ans.Sentences[i] = cachedSentence(s)
	}
	return ans
}

// Analyzer runs the visualization pipeline with results cached
// and with concurrent requests for the same text collapsed into
// a single computation.
type Analyzer struct {
	pipeline Pipeline
	cache    reqcache.Cache
	group    singleflight.Group
}

func (a *Analyzer) fromCache(ctx context.Context, key string) *Result {
	data, err := a.cache.Get(ctx, key)
	if err == reqcache.ErrCacheMiss {
		return nil

	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read cached result")
		return nil
	}
	var cr cachedResult
	if err := sonic.Unmarshal(data, &cr); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to decode cached result")
		return nil
	}
	return cr.toResult()
}

func (a *Analyzer) store(ctx context.Context, key string, res *Result) {
	data, err := sonic.Marshal(newCachedResult(res))
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode result for cache")
		return
	}
	if err := a.cache.Set(ctx, key, data); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to store result to cache")
	}
}

func (a *Analyzer) Visualize(ctx context.Context, text string) (*Result, error) {
	key := reqcache.CreateCacheID(cacheVariant, text)
	if res := a.fromCache(ctx, key); res != nil {
		log.Debug().Str("key", key).Msg("using cached result")
		return res, nil
	}
	v, err, shared := a.group.Do(key, func() (any, error) {
		res, err := a.pipeline.Visualize(text)
		if err != nil {
			return nil, err
		}
		a.store(ctx, key, res)
		return res, nil
	})
	if err != nil {
		var af *AnalysisFailure
		if errors.Is(err, ErrEmptyInput) || errors.As(err, &af) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to visualize text: %w", err)
	}
	if shared {
		log.Debug().Str("key", key).Msg("result shared with a concurrent request")
	}
	return v.(*Result), nil
}

func NewAnalyzer(pipeline Pipeline, cache reqcache.Cache) *Analyzer {
	if cache == nil {
		cache = reqcache.NewNullCache()
	}
	return &Analyzer{
		pipeline: pipeline,
		cache:    cache,
	}
}
