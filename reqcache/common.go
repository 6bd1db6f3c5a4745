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

package reqcache

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
)

var ErrCacheMiss = errors.New("cache miss")

type Conf struct {
	FileRootPath string `json:"fileRootPath"`
	RedisAddr    string `json:"redisAddr"`
	RedisDB      int    `json:"redisDB"`
	TTLSecs      int    `json:"ttlSecs"`
}

func (conf *Conf) IsConfigured() bool {
	return conf.FileRootPath != "" || conf.RedisAddr != ""
}

// Cache stores serialized analysis results identified by
// a key derived from the analyzed text. In case a key is not
// found, ErrCacheMiss is returned.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

// CreateCacheID creates a key of a text to be analyzed.
// The `variant` allows for distinguishing different kinds of
// results for the same text.
func CreateCacheID(variant, text string) string {
	h := sha1.New()
	h.Write([]byte(variant))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return fmt.Sprintf("syntaxviz:cache:%x", h.Sum(nil))
}
