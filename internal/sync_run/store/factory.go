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

package store

import (
	"context"
	"fmt"

	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/mongo"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/provider"
)

// NewSyncRunStore returns the store of the configured history backend.
func NewSyncRunStore(ctx context.Context, cfg config.Config) (SyncRunStoreInterface, error) {

	switch cfg.SyncHistory.Backend {
	case constants.HistoryBackendPostgres:
		return NewPostgresSyncRunStore(provider.NewDBProvider()), nil
	case constants.HistoryBackendMongoDB:
		db, err := mongo.Connect(ctx, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return NewMongoSyncRunStore(db.Database, cfg.MongoDB.Collection), nil
	case constants.HistoryBackendMemory, "":
		return NewMemorySyncRunStore(), nil
	}
	return nil, fmt.Errorf("unsupported sync history backend: %q", cfg.SyncHistory.Backend)
}
