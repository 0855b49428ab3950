/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/metrics"
)

// RedisCache shares entries between connector instances.
type RedisCache struct {
	client redis.UniversalClient
	group  singleflight.Group
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors2.NewServerError(errors2.CACHE_OPERATION.WithDescription("redis at %s is unreachable",
			cfg.Addr), err)
	}
	return NewRedisCacheWithClient(client), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {

	logger := log.GetLogger()
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		logger.Debug(fmt.Sprint("Cache hit for key: ", key))
		metrics.RecordCacheLookup(constants.CacheBackendRedis, true)
		return data, nil
	case errors.Is(err, redis.Nil):
		logger.Debug(fmt.Sprint("Cache miss for key: ", key))
		metrics.RecordCacheLookup(constants.CacheBackendRedis, false)
	default:
		return nil, errors2.NewServerError(errors2.CACHE_OPERATION.WithDescription("reading key %s", key), err)
	}

	return getOrCompute(ctx, &c.group, key, compute, func(data []byte) error {
		if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
			return errors2.NewServerError(errors2.CACHE_OPERATION.WithDescription("writing key %s", key), err)
		}
		return nil
	})
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
