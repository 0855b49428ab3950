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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
)

func TestMemorySyncRunStore(t *testing.T) {

	ctx := context.Background()
	s := NewMemorySyncRunStore()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.AddSyncRun(ctx, model.SyncRun{RunID: "r1", Tenant: "acme", Kind: "clients", Status: "running", StartedAt: base}))
	require.NoError(t, s.AddSyncRun(ctx, model.SyncRun{RunID: "r2", Tenant: "acme", Kind: "contacts", Status: "running", StartedAt: base.Add(time.Minute)}))
	require.NoError(t, s.AddSyncRun(ctx, model.SyncRun{RunID: "r3", Tenant: "other", Kind: "clients", Status: "running", StartedAt: base.Add(2 * time.Minute)}))

	finished := base.Add(30 * time.Second)
	require.NoError(t, s.UpdateSyncRun(ctx, model.SyncRun{RunID: "r1", Status: "succeeded", Pages: 2, Records: 73, FinishedAt: &finished}))

	run, err := s.GetSyncRun(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "succeeded", run.Status)
	assert.Equal(t, 73, run.Records)
	assert.Equal(t, "clients", run.Kind, "updates keep the identity columns")
	assert.Equal(t, 30*time.Second, run.Duration())

	missing, err := s.GetSyncRun(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	runs, err := s.GetRecentSyncRuns(ctx, "acme", "", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].RunID)

	runs, err = s.GetRecentSyncRuns(ctx, "acme", "clients", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "r1", runs[0].RunID)

	runs, _ = s.GetRecentSyncRuns(ctx, "acme", "", 1)
	assert.Len(t, runs, 1)
}
