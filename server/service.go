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
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/czcorpus/syntaxviz/actions"
	"github.com/czcorpus/syntaxviz/config"
	"github.com/czcorpus/syntaxviz/guard"
	"github.com/czcorpus/syntaxviz/page"
	"github.com/czcorpus/syntaxviz/reqcache"
	"github.com/czcorpus/syntaxviz/visual"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func initEngine(handlers *actions.Actions, limiter *guard.RateLimiter) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.GinMiddleware())
	engine.Use(actions.RequestID())
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	publicRoutes := engine.Group("/")
	publicRoutes.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/html")
		c.Next()
	})
	publicRoutes.GET("/", handlers.Index)

	apiRoutes := engine.Group("/")
	apiRoutes.Use(uniresp.AlwaysJSONContentType())
	apiRoutes.GET("/version", handlers.Version)
	apiRoutes.POST("/analyze", limiter.Middleware(), handlers.Analyze)

	return engine
}

// CreateAnalyzer creates an analyzer with a result cache
// based on the configuration
func CreateAnalyzer(conf *config.Configuration) *visual.Analyzer {
	return visual.NewAnalyzer(visual.DefaultPipeline(), reqcache.NewCache(&conf.Cache))
}

func RunService(conf *config.Configuration, version actions.VersionInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shell, err := page.NewShell(conf.PagePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
		return
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := shell.Watch(ctx); err != nil {
			log.Error().Err(err).Msg("page watcher stopped")
		}
	}()

	limiter := guard.NewRateLimiter(conf.Limits)
	wg.Add(1)
	go func() {
		defer wg.Done()
		limiter.Run(ctx)
	}()

	handlers := actions.NewActions(CreateAnalyzer(conf), shell, conf.MaxTextLength, version)
	engine := initEngine(handlers, limiter)

	log.Info().Msgf("starting to listen at %s:%d", conf.ServerHost, conf.ServerPort)
	srv := &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", conf.ServerHost, conf.ServerPort),
		WriteTimeout: time.Duration(conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(conf.ServerReadTimeoutSecs) * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Warn().Msg("received shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}
