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

package page

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

//go:embed index.html
var defaultPage []byte

// Shell provides the HTML page served to browsers. By default,
// an embedded page is used. With a file path configured, the page
// is loaded from the file and it can be reloaded once the file
// changes (see Watch).
type Shell struct {
	path    string
	content []byte
	mu      sync.RWMutex
}

func (s *Shell) Content() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

func (s *Shell) Path() string {
	return s.path
}

func (s *Shell) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to load page %s: %w", s.path, err)
	}
	s.mu.Lock()
	s.content = data
	s.mu.Unlock()
	return nil
}

// Watch reloads the page each time its file is written or (re)created.
// The function blocks until ctx is cancelled. For the embedded page,
// it returns immediately.
func (s *Shell) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to watch page: %w", err)
	}
	defer watcher.Close()
	// editors often replace files instead of writing them
	// so we watch the whole directory
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to watch page: %w", err)
	}
	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := s.reload(); err != nil {
				log.Error().Err(err).Msg("failed to reload page, keeping the previous version")
				continue
			}
			log.Info().Str("path", s.Path()).Msg("page reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("page watcher error")
		}
	}
}

// NewShell creates a page shell. With empty path, the embedded
// default page is used.
func NewShell(path string) (*Shell, error) {
	if path == "" {
		return &Shell{content: defaultPage}, nil
	}
	isFile, err := fs.IsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create page shell: %w", err)
	}
	if !isFile {
		return nil, fmt.Errorf("failed to create page shell: %s is not a file", path)
	}
	ans := &Shell{path: path}
	if err := ans.reload(); err != nil {
		return nil, err
	}
	return ans, nil
}
