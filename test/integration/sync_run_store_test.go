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

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync_run/store"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/provider"
)

func Test_SyncRunStores(t *testing.T) {
	stores := map[string]store.SyncRunStoreInterface{
		"postgres": store.NewPostgresSyncRunStore(provider.NewDBProvider()),
		"mongodb":  store.NewMongoSyncRunStore(mongoDB.Database, constants.SyncRunTable),
		"memory":   store.NewMemorySyncRunStore(),
	}
	for name, runStore := range stores {
		t.Run(name, func(t *testing.T) {
			exerciseSyncRunStore(t, runStore, testTenant+"-"+name)
		})
	}
}

func exerciseSyncRunStore(t *testing.T, runStore store.SyncRunStoreInterface, tenant string) {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	newRun := func(kind string, offset time.Duration) model.SyncRun {
		return model.SyncRun{
			RunID:     uuid.New().String(),
			Tenant:    tenant,
			Kind:      kind,
			Trigger:   model.TriggerManual,
			Status:    constants.RunStatusRunning,
			StartedAt: base.Add(offset),
		}
	}
	oldest := newRun("clients", -3*time.Minute)
	middle := newRun("contacts", -2*time.Minute)
	newest := newRun("clients", -time.Minute)

	t.Run("Add_sync_runs", func(t *testing.T) {
		for _, run := range []model.SyncRun{oldest, middle, newest} {
			require.NoError(t, runStore.AddSyncRun(ctx, run))
		}
	})

	t.Run("Get_running_sync_run", func(t *testing.T) {
		run, err := runStore.GetSyncRun(ctx, oldest.RunID)
		require.NoError(t, err)
		require.NotNil(t, run)
		assert.Equal(t, constants.RunStatusRunning, run.Status)
		assert.Equal(t, tenant, run.Tenant)
		assert.Nil(t, run.FinishedAt)
		assert.WithinDuration(t, oldest.StartedAt, run.StartedAt, time.Millisecond)
	})

	t.Run("Update_sync_run", func(t *testing.T) {
		finishedAt := base
		oldest.Status = constants.RunStatusFailed
		oldest.Pages = 3
		oldest.Records = 240
		oldest.Error = "page 4 of clients failed"
		oldest.FinishedAt = &finishedAt
		require.NoError(t, runStore.UpdateSyncRun(ctx, oldest))

		run, err := runStore.GetSyncRun(ctx, oldest.RunID)
		require.NoError(t, err)
		require.NotNil(t, run)
		assert.Equal(t, constants.RunStatusFailed, run.Status)
		assert.Equal(t, 3, run.Pages)
		assert.Equal(t, 240, run.Records)
		assert.Equal(t, "page 4 of clients failed", run.Error)
		require.NotNil(t, run.FinishedAt)
		assert.WithinDuration(t, finishedAt, *run.FinishedAt, time.Millisecond)
	})

	t.Run("Missing_sync_run", func(t *testing.T) {
		run, err := runStore.GetSyncRun(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Nil(t, run)
	})

	t.Run("Recent_sync_runs_newest_first", func(t *testing.T) {
		runs, err := runStore.GetRecentSyncRuns(ctx, tenant, "", 10)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, newest.RunID, runs[0].RunID)
		assert.Equal(t, middle.RunID, runs[1].RunID)
		assert.Equal(t, oldest.RunID, runs[2].RunID)
	})

	t.Run("Recent_sync_runs_by_kind_and_limit", func(t *testing.T) {
		runs, err := runStore.GetRecentSyncRuns(ctx, tenant, "clients", 1)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, newest.RunID, runs[0].RunID)
	})

	t.Run("Recent_sync_runs_of_other_tenant", func(t *testing.T) {
		runs, err := runStore.GetRecentSyncRuns(ctx, "someone-else", "", 10)
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}
