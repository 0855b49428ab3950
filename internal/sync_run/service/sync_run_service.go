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

package service

import (
	"context"
	"net/http"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync_run/store"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
)

const (
	DefaultRunLimit = 20
	MaxRunLimit     = 200
)

type SyncRunServiceInterface interface {
	GetSyncRun(ctx context.Context, runID string) (*model.SyncRun, error)
	GetRecentSyncRuns(ctx context.Context, kind string, limit int) ([]model.SyncRun, error)
}

// SyncRunService exposes the run history of one tenant.
type SyncRunService struct {
	store  store.SyncRunStoreInterface
	tenant string
}

func NewSyncRunService(store store.SyncRunStoreInterface, tenant string) SyncRunServiceInterface {
	return &SyncRunService{store: store, tenant: tenant}
}

func (s *SyncRunService) GetSyncRun(ctx context.Context, runID string) (*model.SyncRun, error) {
	return s.store.GetSyncRun(ctx, runID)
}

// GetRecentSyncRuns lists the newest runs, optionally of one record list kind.
func (s *SyncRunService) GetRecentSyncRuns(ctx context.Context, kind string, limit int) ([]model.SyncRun, error) {
	if kind != "" {
		listKind, ok := crmModel.ParseRecordListKind(kind)
		if !ok {
			return nil, errors2.NewClientError(errors2.UNKNOWN_OBJECT_KIND.WithDescription(
				"Unknown object kind '%s'.", kind), http.StatusBadRequest)
		}
		kind = string(listKind)
	}
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	if limit > MaxRunLimit {
		limit = MaxRunLimit
	}
	return s.store.GetRecentSyncRuns(ctx, s.tenant, kind, limit)
}
