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

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/syntaxviz/guard"
	"github.com/czcorpus/syntaxviz/reqcache"
	"github.com/rs/zerolog/log"
)

const (
	DfltServerReadTimeoutSecs  = 10
	DfltServerWriteTimeoutSecs = 30
	DftlServerPort             = 8080
	DfltServerHost             = "localhost"
	DfltMaxTextLength          = 10000
	DfltLogLevel               = "info"
)

type Configuration struct {
	ServerHost             string              `json:"serverHost"`
	ServerPort             int                 `json:"serverPort"`
	ServerReadTimeoutSecs  int                 `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                 `json:"serverWriteTimeoutSecs"`
	Logging                logging.LoggingConf `json:"logging"`

	// MaxTextLength is the max. number of characters
	// of a text to be analyzed
	MaxTextLength int `json:"maxTextLength"`

	// PagePath is an optional path to a custom HTML page
	// served at the root URL
	PagePath string `json:"pagePath"`

	Cache  reqcache.Conf `json:"cache"`
	Limits []guard.Limit `json:"limits"`
}

func (c *Configuration) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid serverPort: %d", c.ServerPort)
	}
	if c.MaxTextLength <= 0 {
		return fmt.Errorf("maxTextLength must be a positive number")
	}
	if c.Cache.FileRootPath != "" && c.Cache.RedisAddr != "" {
		log.Warn().Msg("both cache.fileRootPath and cache.redisAddr specified, file cache will be used")
	}
	if c.Cache.TTLSecs < 0 {
		return fmt.Errorf("cache.ttlSecs must not be negative")
	}
	for i, lim := range c.Limits {
		if err := lim.Validate(fmt.Sprintf("limits[%d]", i)); err != nil {
			return err
		}
	}
	if len(c.Limits) == 0 {
		log.Warn().Msg("no request limits configured, clients will not be throttled")
	}
	return nil
}

// LoadConfig loads configuration from a JSON file. In case
// the file cannot be read or parsed, the function ends the
// process.
func LoadConfig(path string) *Configuration {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	conf, err := ParseConfig(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return conf
}

func ParseConfig(path string) (*Configuration, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var conf Configuration
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &conf, nil
}
