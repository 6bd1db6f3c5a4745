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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCacheIDIsStable(t *testing.T) {
	k1 := CreateCacheID("visual", "The cat sleeps.")
	k2 := CreateCacheID("visual", "The cat sleeps.")
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, CreateCacheID("visual", "The cat sleeps"))
	assert.NotEqual(t, k1, CreateCacheID("other", "The cat sleeps."))
	assert.Regexp(t, `^syntaxviz:cache:[0-9a-f]{40}$`, k1)
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	require.NoError(t, c.Set(context.Background(), "foo", []byte("bar")))
	_, err := c.Get(context.Background(), "foo")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestFileCacheRoundTrip(t *testing.T) {
	c := NewFileReqCache(&Conf{FileRootPath: t.TempDir(), TTLSecs: 60})
	key := CreateCacheID("visual", "foo")
	_, err := c.Get(context.Background(), key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(context.Background(), key, []byte(`{"a":1}`)))
	data, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestFileCacheExpires(t *testing.T) {
	root := t.TempDir()
	c := NewFileReqCache(&Conf{FileRootPath: root, TTLSecs: 10})
	key := CreateCacheID("visual", "foo")
	require.NoError(t, c.Set(context.Background(), key, []byte("x")))
	path := c.createItemPath(key)
	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(path, old, old))

	_, err := c.Get(context.Background(), key)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileCacheItemPath(t *testing.T) {
	c := NewFileReqCache(&Conf{FileRootPath: "/tmp/cache"})
	p := c.createItemPath("syntaxviz:cache:abcdef")
	assert.Equal(t, filepath.Join("/tmp/cache", "a", "abcdef.json"), p)
}

func TestNewCacheSelectsBackend(t *testing.T) {
	_, ok := NewCache(&Conf{}).(*NullCache)
	assert.True(t, ok)
	conf := &Conf{FileRootPath: t.TempDir()}
	_, ok = NewCache(conf).(*FileReqCache)
	assert.True(t, ok)
	assert.Equal(t, DfltTTLSecs, conf.TTLSecs)
	_, ok = NewCache(&Conf{RedisAddr: "localhost:6379"}).(*RedisReqCache)
	assert.True(t, ok)
}
