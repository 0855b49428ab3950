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

package resources

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wso2/crm-customer-data-sync/internal/sync_run/store"
	"github.com/wso2/crm-customer-data-sync/internal/system/cache"
	"github.com/wso2/crm-customer-data-sync/internal/system/client"
	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/lock"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/mongo"
)

// Resources are the process wide remote clients shared by the services.
type Resources struct {
	CRM      client.CRMClientInterface
	Platform client.PlatformClientInterface
	Cache    cache.CacheInterface
	SyncRuns store.SyncRunStoreInterface
	RunLock  lock.RunLock
}

var (
	shared   *Resources
	initOnce sync.Once
	mu       sync.RWMutex
)

// Initialize builds the clients and the cache from the configuration. Only the first
// call has an effect.
func Initialize(cfg config.Config) error {

	var initErr error
	initOnce.Do(func() {
		c, err := cache.NewCache(cfg.Cache)
		if err != nil {
			initErr = fmt.Errorf("initializing cache: %w", err)
			return
		}
		runs, err := store.NewSyncRunStore(context.Background(), cfg)
		if err != nil {
			_ = c.Close()
			initErr = fmt.Errorf("initializing sync history: %w", err)
			return
		}
		var runLock lock.RunLock = lock.NewLocalLock()
		if cfg.SyncHistory.Backend == constants.HistoryBackendPostgres {
			runLock = lock.NewPostgresLock(time.Duration(cfg.Sync.LockLeaseSeconds) * time.Second)
		}
		mu.Lock()
		defer mu.Unlock()
		shared = &Resources{
			CRM:      client.NewCRMClient(cfg.CRM, cfg.Connector),
			Platform: client.NewPlatformClient(cfg.Platform),
			Cache:    c,
			SyncRuns: runs,
			RunLock:  runLock,
		}
	})
	return initErr
}

// Get returns the shared resources. It panics before Initialize.
func Get() *Resources {
	mu.RLock()
	defer mu.RUnlock()
	if shared == nil {
		panic("resources are not initialized")
	}
	return shared
}

// Override replaces the shared resources. Used by tests.
func Override(r *Resources) {
	mu.Lock()
	defer mu.Unlock()
	shared = r
}

// Close releases the cache and the MongoDB connections.
func Close() error {
	mu.RLock()
	defer mu.RUnlock()
	if err := mongo.Disconnect(context.Background()); err != nil {
		return err
	}
	if shared == nil || shared.Cache == nil {
		return nil
	}
	return shared.Cache.Close()
}
