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
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisReqCache struct {
	conf        *Conf
	redisClient *redis.Client
}

func (rrc *RedisReqCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := rrc.redisClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss

	} else if err != nil {
		return nil, err
	}
	_, err = rrc.redisClient.Expire(ctx, key, time.Duration(rrc.conf.TTLSecs)*time.Second).Result()
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (rrc *RedisReqCache) Set(ctx context.Context, key string, data []byte) error {
	_, err := rrc.redisClient.Set(ctx, key, data, time.Duration(rrc.conf.TTLSecs)*time.Second).Result()
	return err
}

func NewRedisReqCache(conf *Conf) *RedisReqCache {
	return &RedisReqCache{
		conf: conf,
		redisClient: redis.NewClient(&redis.Options{
			Addr: conf.RedisAddr,
			DB:   conf.RedisDB,
		}),
	}
}
