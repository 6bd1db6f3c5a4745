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

import "github.com/rs/zerolog/log"

const DfltTTLSecs = 3600

// NewCache creates a cache backend based on the configuration.
// File cache takes precedence over Redis, with none of them configured,
// a null cache (always missing) is returned.
func NewCache(conf *Conf) Cache {
	if conf.TTLSecs == 0 {
		conf.TTLSecs = DfltTTLSecs
	}
	if conf.FileRootPath != "" {
		log.Info().Msgf("using file result cache (path: %s)", conf.FileRootPath)
		return NewFileReqCache(conf)

	} else if conf.RedisAddr != "" {
		log.Info().Msgf("using redis result cache (addr: %s, db: %d)", conf.RedisAddr, conf.RedisDB)
		return NewRedisReqCache(conf)
	}
	log.Info().Msg("using NULL cache (no backend configured)")
	return NewNullCache()
}
