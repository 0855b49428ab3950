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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync_run/store"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
)

func TestGetRecentSyncRuns(t *testing.T) {

	ctx := context.Background()
	runs := store.NewMemorySyncRunStore()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, kind := range []string{"clients", "prospects", "clients"} {
		require.NoError(t, runs.AddSyncRun(ctx, model.SyncRun{
			RunID: kind + string(rune('a'+i)), Tenant: "acme", Kind: kind, StartedAt: start.Add(time.Duration(i) * time.Hour),
		}))
	}
	svc := NewSyncRunService(runs, "acme")

	all, err := svc.GetRecentSyncRuns(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	clients, err := svc.GetRecentSyncRuns(ctx, "Clients", 0)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
	assert.Equal(t, "clientsc", clients[0].RunID)

	_, err = svc.GetRecentSyncRuns(ctx, "suppliers", 0)
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}
