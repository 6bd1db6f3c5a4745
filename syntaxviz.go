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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/syntaxviz/actions"
	"github.com/czcorpus/syntaxviz/server"
	"github.com/czcorpus/syntaxviz/visual"
	"github.com/rs/zerolog/log"
)

var (
	version     string
	buildDate   string
	gitCommit   string
	versionInfo = actions.VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
)

func readText(arg string) (string, error) {
	if arg != "" && arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read text from stdin: %w", err)
	}
	return string(data), nil
}

func runAnalyze(cmdOpts *server.CmdOptions, arg string) {
	conf := server.DefaultConfig(cmdOpts)
	text, err := readText(arg)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if n := len([]rune(text)); n > conf.MaxTextLength {
		log.Warn().Int("length", n).Msg("text exceeds the limit configured for the HTTP service")
	}
	res, err := visual.Visualize(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %s\n", err)
		os.Exit(1)
	}
	out, err := sonic.ConfigStd.MarshalIndent(actions.NewAnalyzeResponse(res), "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode result")
	}
	fmt.Println(string(out))
}

func main() {
	cmdOpts := new(server.CmdOptions)
	flag.StringVar(&cmdOpts.Host, "host", "", "Host to listen on")
	flag.IntVar(&cmdOpts.Port, "port", 0, "Port to listen on")
	flag.IntVar(&cmdOpts.ReadTimeoutSecs, "read-timeout", 0, "Server read timeout in seconds")
	flag.IntVar(&cmdOpts.WriteTimeoutSecs, "write-timeout", 0, "Server write timeout in seconds")
	flag.StringVar(&cmdOpts.LogPath, "log-path", "", "A file to log to (if empty then stderr is used)")
	flag.StringVar(&cmdOpts.LogLevel, "log-level", "", "A log level (debug, info, warn/warning, error)")

	flag.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"syntaxviz - visualization of English sentence constituents"+
				"\n\nUsage:"+
				"\n\t%s [options] start [conf.json]"+
				"\n\t%s [options] analyze [text]  (reads stdin if text is omitted)"+
				"\n\t%s [options] version\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]),
		)
		flag.PrintDefaults()
	}
	flag.Parse()

	action := flag.Arg(0)

	switch action {
	case "version":
		fmt.Printf("syntaxviz %s\nbuild date: %s\nlast commit: %s\n",
			versionInfo.Version, versionInfo.BuildDate, versionInfo.GitCommit)
		return
	case "start":
		conf := server.FindAndLoadConfig(flag.Arg(1), cmdOpts)
		log.Info().
			Str("version", versionInfo.Version).
			Str("buildDate", versionInfo.BuildDate).
			Str("last commit", versionInfo.GitCommit).
			Msg("Starting syntaxviz")
		server.RunService(conf, versionInfo)
	case "analyze":
		if cmdOpts.LogLevel == "" {
			cmdOpts.LogLevel = "warn"
		}
		runAnalyze(cmdOpts, strings.Join(flag.Args()[1:], " "))
	default:
		fmt.Printf("Unknown action [%s]. Try -h for help\n", flag.Arg(0))
		os.Exit(1)
	}
}
