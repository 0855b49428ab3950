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

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/metrics"
)

// MemoryCache keeps entries in process memory.
type MemoryCache struct {
	items *gocache.Cache
	group singleflight.Group
}

// NewMemoryCache creates a cache whose expired entries are purged every defaultTTL.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &MemoryCache{
		items: gocache.New(defaultTTL, defaultTTL),
	}
}

func (c *MemoryCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {

	logger := log.GetLogger()
	if value, found := c.items.Get(key); found {
		logger.Debug(fmt.Sprint("Cache hit for key: ", key))
		metrics.RecordCacheLookup(constants.CacheBackendMemory, true)
		return value.([]byte), nil
	}
	logger.Debug(fmt.Sprint("Cache miss for key: ", key))
	metrics.RecordCacheLookup(constants.CacheBackendMemory, false)

	return getOrCompute(ctx, &c.group, key, compute, func(data []byte) error {
		c.items.Set(key, data, ttl)
		return nil
	})
}

// Delete removes key from the cache.
func (c *MemoryCache) Delete(key string) {
	c.items.Delete(key)
}

func (c *MemoryCache) Close() error {
	c.items.Flush()
	return nil
}
