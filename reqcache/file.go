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
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/fs"
)

type FileReqCache struct {
	conf *Conf
}

func (frc *FileReqCache) createItemPath(key string) string {
	bs := fmt.Sprintf("%s.json", key[strings.LastIndex(key, ":")+1:])
	return path.Join(frc.conf.FileRootPath, bs[0:1], bs)
}

func (frc *FileReqCache) Get(ctx context.Context, key string) ([]byte, error) {
	filePath := frc.createItemPath(key)
	isFile, err := fs.IsFile(filePath)
	if err != nil {
		return nil, err
	}
	if !isFile {
		return nil, ErrCacheMiss
	}
	mtime, err := fs.GetFileMtime(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain file mtime: %w", err)
	}
	if time.Since(mtime) > time.Duration(frc.conf.TTLSecs)*time.Second {
		err := fs.DeleteFile(filePath)
		if err != nil {
			return nil, err
		}
		return nil, ErrCacheMiss
	}
	newTime := time.Now()
	err = os.Chtimes(filePath, newTime, newTime)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filePath)
}

func (frc *FileReqCache) Set(ctx context.Context, key string, data []byte) error {
	targetPath := frc.createItemPath(key)
	if err := os.MkdirAll(path.Dir(targetPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return os.WriteFile(targetPath, data, 0644)
}

func NewFileReqCache(conf *Conf) *FileReqCache {
	return &FileReqCache{
		conf: conf,
	}
}
