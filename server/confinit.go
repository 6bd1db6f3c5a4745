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

package server

import (
	"path"
	"runtime"
	"strings"

	"github.com/czcorpus/syntaxviz/config"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

type CmdOptions struct {
	Host             string
	Port             int
	ReadTimeoutSecs  int
	WriteTimeoutSecs int
	LogPath          string
	LogLevel         string
}

// FindAndLoadConfig loads configuration either from the explicitly
// specified path or from one of predefined locations. Then it
// initializes logging and applies default values and command line
// overrides.
func FindAndLoadConfig(explicitPath string, cmdOpts *CmdOptions) *config.Configuration {
	var conf *config.Configuration
	confPath := explicitPath
	if explicitPath != "" {
		conf = config.LoadConfig(explicitPath)

	} else {
		_, filepath, _, _ := runtime.Caller(0)
		srcPath := path.Join(path.Dir(filepath), "..", "conf.json")
		srchPaths := []string{
			srcPath,
			"/usr/local/etc/syntaxviz/conf.json",
			"/usr/local/etc/syntaxviz.json",
		}
		for _, path := range srchPaths {
			isFile, err := fs.IsFile(path)
			if err != nil {
				log.Fatal().Msgf(
					"error when searching for a suitable configuration file (searched in: %s): %s",
					strings.Join(srchPaths, ", "),
					err,
				)
			}
			if isFile {
				conf = config.LoadConfig(path)
				confPath = path
				break
			}
		}
		if conf == nil {
			log.Fatal().Msgf("cannot find any suitable configuration file (searched in: %s)", strings.Join(srchPaths, ", "))
		}
	}
	SetupLogging(conf, cmdOpts)
	log.Info().Msgf("loaded configuration from %s", confPath)
	applyDefaults(conf)
	overrideConfWithCmd(conf, cmdOpts)
	validErr := conf.Validate()
	if validErr != nil {
		log.Fatal().Err(validErr).Msg("")
	}
	return conf
}

// DefaultConfig creates a configuration for actions which
// can run without a configuration file.
func DefaultConfig(cmdOpts *CmdOptions) *config.Configuration {
	conf := new(config.Configuration)
	SetupLogging(conf, cmdOpts)
	applyDefaults(conf)
	overrideConfWithCmd(conf, cmdOpts)
	return conf
}

func SetupLogging(conf *config.Configuration, cmdOpts *CmdOptions) {
	if cmdOpts.LogLevel != "" {
		conf.Logging.Level = logging.LogLevel(cmdOpts.LogLevel)

	} else if conf.Logging.Level == "" {
		conf.Logging.Level = config.DfltLogLevel
	}
	if cmdOpts.LogPath != "" {
		conf.Logging.Path = cmdOpts.LogPath
	}
	logging.SetupLogging(conf.Logging)
	log.Info().Msgf("using logging level '%s'", conf.Logging.Level)
}

// applyDefaults applies default values for optional config items
// not handled by overrideConfWithCmd (i.e. items not configurable
// via command line arguments).
func applyDefaults(conf *config.Configuration) {
	if conf.MaxTextLength == 0 {
		conf.MaxTextLength = config.DfltMaxTextLength
		log.Warn().Msgf("maxTextLength not specified, using default: %d", conf.MaxTextLength)
	}
	if conf.Cache.IsConfigured() && conf.Cache.TTLSecs == 0 {
		log.Warn().Msg("cache.ttlSecs not specified, using default")
	}
}

func overrideConfWithCmd(origConf *config.Configuration, cmdConf *CmdOptions) {
	if cmdConf.Host != "" {
		origConf.ServerHost = cmdConf.Host

	} else if origConf.ServerHost == "" {
		log.Warn().Msgf(
			"serverHost not specified, using default value %s",
			config.DfltServerHost,
		)
		origConf.ServerHost = config.DfltServerHost
	}
	if cmdConf.Port != 0 {
		origConf.ServerPort = cmdConf.Port

	} else if origConf.ServerPort == 0 {
		log.Warn().Msgf(
			"serverPort not specified, using default value %d",
			config.DftlServerPort,
		)
		origConf.ServerPort = config.DftlServerPort
	}
	if cmdConf.ReadTimeoutSecs != 0 {
		origConf.ServerReadTimeoutSecs = cmdConf.ReadTimeoutSecs

	} else if origConf.ServerReadTimeoutSecs == 0 {
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default value %d",
			config.DfltServerReadTimeoutSecs,
		)
		origConf.ServerReadTimeoutSecs = config.DfltServerReadTimeoutSecs
	}
	if cmdConf.WriteTimeoutSecs != 0 {
		origConf.ServerWriteTimeoutSecs = cmdConf.WriteTimeoutSecs

	} else if origConf.ServerWriteTimeoutSecs == 0 {
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default value %d",
			config.DfltServerWriteTimeoutSecs,
		)
		origConf.ServerWriteTimeoutSecs = config.DfltServerWriteTimeoutSecs
	}
	if origConf.Logging.Path == "" {
		log.Warn().Msg("logging.path not specified, using stderr")
	}
}
