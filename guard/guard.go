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

package guard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DfltIdleLimiterTTL specifies how long a limiter of an inactive
	// client is kept in memory
	DfltIdleLimiterTTL = 10 * time.Minute
)

var ErrTooManyRequests = errors.New("too many requests")

type Limit struct {
	ReqPerTimeThreshold     int `json:"reqPerTimeThreshold"`
	ReqCheckingIntervalSecs int `json:"reqCheckingIntervalSecs"`
	BurstLimit              int `json:"burstLimit"`
}

func (m Limit) ReqCheckingInterval() time.Duration {
	return time.Duration(m.ReqCheckingIntervalSecs) * time.Second
}

func (m Limit) NormLimitPerSec() rate.Limit {
	return rate.Limit(float64(m.ReqPerTimeThreshold) / float64(m.ReqCheckingIntervalSecs))
}

func (m Limit) Validate(context string) error {
	if m.ReqPerTimeThreshold <= 0 {
		return fmt.Errorf("%s.reqPerTimeThreshold must be a positive number", context)
	}
	if m.ReqCheckingIntervalSecs <= 0 {
		return fmt.Errorf("%s.reqCheckingIntervalSecs must be a positive number", context)
	}
	if m.BurstLimit <= 0 {
		return fmt.Errorf("%s.burstLimit must be a positive number", context)
	}
	return nil
}

// ---------------------------

type clientLimiters struct {
	limiters []*rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles clients (identified by their IP address)
// sending too many requests. Each configured limit is applied
// independently and a request must pass all of them.
type RateLimiter struct {
	limits  []Limit
	clients map[string]*clientLimiters
	mu      sync.Mutex
	idleTTL time.Duration
	nowFn   func() time.Time
}

func (g *RateLimiter) newClient() *clientLimiters {
	ans := &clientLimiters{limiters: make([]*rate.Limiter, len(g.limits))}
	for i, lim := range g.limits {
		ans.limiters[i] = rate.NewLimiter(lim.NormLimitPerSec(), lim.BurstLimit)
	}
	return ans
}

// Allow tests whether a request of the client can be processed
func (g *RateLimiter) Allow(clientIP string) bool {
	if len(g.limits) == 0 {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	client, exists := g.clients[clientIP]
	if !exists {
		client = g.newClient()
		g.clients[clientIP] = client
	}
	client.lastSeen = g.nowFn()
	for _, limiter := range client.limiters {
		if !limiter.Allow() {
			return false
		}
	}
	return true
}

// NumClients returns number of currently tracked clients
func (g *RateLimiter) NumClients() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

func (g *RateLimiter) removeIdle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.nowFn()
	for ip, client := range g.clients {
		if now.Sub(client.lastSeen) > g.idleTTL {
			delete(g.clients, ip)
		}
	}
}

// Run periodically removes limiters of inactive clients.
// It blocks until ctx is cancelled.
func (g *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(g.idleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.removeIdle()
		}
	}
}

// Middleware rejects requests of throttled clients with
// status 429.
func (g *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		clientIP := ctx.ClientIP()
		if !g.Allow(clientIP) {
			log.Debug().Str("clientIp", clientIP).Msg("limiting client with status 429")
			uniresp.RespondWithErrorJSON(ctx, ErrTooManyRequests, http.StatusTooManyRequests)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func NewRateLimiter(limits []Limit) *RateLimiter {
	return &RateLimiter{
		limits:  limits,
		clients: make(map[string]*clientLimiters),
		idleTTL: DfltIdleLimiterTTL,
		nowFn:   time.Now,
	}
}
