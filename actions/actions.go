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

package actions

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/czcorpus/syntaxviz/page"
	"github.com/czcorpus/syntaxviz/visual"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

type analyzeArgs struct {
	Sentence *string `json:"sentence"`
}

// AnalyzeResponse is the output of a text analysis as provided
// both by the HTTP API and the command line
type AnalyzeResponse struct {
	Analysis      *visual.Result `json:"analysis"`
	Visualization string         `json:"visualization"`
}

func NewAnalyzeResponse(res *visual.Result) AnalyzeResponse {
	return AnalyzeResponse{
		Analysis:      res,
		Visualization: res.HTML,
	}
}

type Actions struct {
	analyzer      *visual.Analyzer
	shell         *page.Shell
	maxTextLength int
	version       VersionInfo
}

// Analyze handles text analysis requests. The text is expected
// in a JSON body as {"sentence": "..."}.
func (a *Actions) Analyze(ctx *gin.Context) {
	var args analyzeArgs
	if err := ctx.ShouldBindJSON(&args); err != nil {
		uniresp.RespondWithErrorJSON(
			ctx, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if args.Sentence == nil || strings.TrimSpace(*args.Sentence) == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("no sentence provided"), http.StatusBadRequest)
		return
	}
	if n := utf8.RuneCountInString(*args.Sentence); n > a.maxTextLength {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("text too long (%d characters, max. %d)", n, a.maxTextLength),
			http.StatusRequestEntityTooLarge,
		)
		return
	}
	res, err := a.analyzer.Visualize(ctx.Request.Context(), *args.Sentence)
	if errors.Is(err, visual.ErrEmptyInput) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return

	} else if err != nil {
		log.Error().
			Err(err).
			Str("requestId", ctx.GetString(requestIDKey)).
			Msg("failed to analyze text")
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, NewAnalyzeResponse(res))
}

// Index serves the HTML page with the analysis form
func (a *Actions) Index(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", a.shell.Content())
}

func (a *Actions) Version(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, a.version)
}

// RequestID attaches a unique identifier to each request and
// its response.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		reqID := ctx.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.New().String()
		}
		ctx.Set(requestIDKey, reqID)
		ctx.Header(RequestIDHeader, reqID)
		ctx.Next()
	}
}

func NewActions(
	analyzer *visual.Analyzer,
	shell *page.Shell,
	maxTextLength int,
	version VersionInfo,
) *Actions {
	return &Actions{
		analyzer:      analyzer,
		shell:         shell,
		maxTextLength: maxTextLength,
		version:       version,
	}
}
