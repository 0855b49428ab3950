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
	"sort"
	"sync"

	"github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
)

// MemorySyncRunStore keeps the run history of the current process only.
type MemorySyncRunStore struct {
	mu   sync.RWMutex
	runs map[string]model.SyncRun
}

func NewMemorySyncRunStore() SyncRunStoreInterface {
	return &MemorySyncRunStore{runs: map[string]model.SyncRun{}}
}

func (s *MemorySyncRunStore) AddSyncRun(_ context.Context, run model.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.RunID] = run
	return nil
}

func (s *MemorySyncRunStore) UpdateSyncRun(_ context.Context, run model.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.runs[run.RunID]; ok {
		existing.Status = run.Status
		existing.Pages = run.Pages
		existing.Records = run.Records
		existing.Error = run.Error
		existing.FinishedAt = run.FinishedAt
		s.runs[run.RunID] = existing
	}
	return nil
}

func (s *MemorySyncRunStore) GetSyncRun(_ context.Context, runID string) (*model.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

func (s *MemorySyncRunStore) GetRecentSyncRuns(_ context.Context, tenant, kind string, limit int) ([]model.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := []model.SyncRun{}
	for _, run := range s.runs {
		if run.Tenant != tenant || (kind != "" && run.Kind != kind) {
			continue
		}
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
