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

	"golang.org/x/sync/singleflight"

	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
)

// ComputeFunc produces the value of a missing key.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// CacheInterface is a read-through byte cache. Values are written only when compute
// succeeds, so a failed fetch is retried by the next caller.
type CacheInterface interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error)
	Close() error
}

// NewCache builds the cache backend selected in the configuration.
func NewCache(cfg config.CacheConfig) (CacheInterface, error) {
	switch cfg.Backend {
	case "", constants.CacheBackendMemory:
		return NewMemoryCache(time.Duration(cfg.CustomFieldTTLSeconds) * time.Second), nil
	case constants.CacheBackendRedis:
		return NewRedisCache(cfg.Redis)
	}
	return nil, fmt.Errorf("unsupported cache backend: %q", cfg.Backend)
}

// getOrCompute collapses concurrent misses on the same key into one compute call.
// The shared compute is detached from the cancellation of whichever caller started it.
func getOrCompute(ctx context.Context, group *singleflight.Group, key string, compute ComputeFunc,
	store func([]byte) error) ([]byte, error) {

	shared := context.WithoutCancel(ctx)
	value, err, _ := group.Do(key, func() (interface{}, error) {
		data, err := compute(shared)
		if err != nil {
			return nil, err
		}
		if err := store(data); err != nil {
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}
