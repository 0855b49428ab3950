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

	"github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
)

// SyncRunStoreInterface persists the run history of the connector.
type SyncRunStoreInterface interface {
	AddSyncRun(ctx context.Context, run model.SyncRun) error
	UpdateSyncRun(ctx context.Context, run model.SyncRun) error
	GetSyncRun(ctx context.Context, runID string) (*model.SyncRun, error)
	// GetRecentSyncRuns returns the newest runs first. An empty kind matches every kind.
	GetRecentSyncRuns(ctx context.Context, tenant, kind string, limit int) ([]model.SyncRun, error)
}
