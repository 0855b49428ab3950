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

package handler

import (
	"net/http"
	"strings"

	"github.com/wso2/crm-customer-data-sync/internal/sync_run/provider"
	"github.com/wso2/crm-customer-data-sync/internal/sync_run/service"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/pagination"
	"github.com/wso2/crm-customer-data-sync/internal/system/utils"
)

type SyncRunHandler struct {
	runs service.SyncRunServiceInterface
}

func NewSyncRunHandler() *SyncRunHandler {
	return NewSyncRunHandlerWithService(provider.NewSyncRunProvider().GetSyncRunService())
}

func NewSyncRunHandlerWithService(runs service.SyncRunServiceInterface) *SyncRunHandler {
	return &SyncRunHandler{runs: runs}
}

// GetSyncRuns handles GET /runs?kind=&limit=.
func (h *SyncRunHandler) GetSyncRuns(w http.ResponseWriter, r *http.Request) {

	limit, err := pagination.ParseLimit(r, service.DefaultRunLimit)
	if err != nil {
		utils.WriteBadRequest(w, err.Error())
		return
	}
	runs, err := h.runs.GetRecentSyncRuns(r.Context(), r.URL.Query().Get("kind"), limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, runs)
}

// GetSyncRun handles GET /runs/{runId}.
func (h *SyncRunHandler) GetSyncRun(w http.ResponseWriter, r *http.Request) {

	runID := strings.TrimPrefix(strings.TrimSuffix(r.URL.Path, "/"), "/runs/")
	run, err := h.runs.GetSyncRun(r.Context(), runID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if run == nil {
		utils.HandleError(w, errors2.NewClientError(errors2.SYNC_RUN_NOT_FOUND.WithDescription(
			"Sync run '%s' does not exist.", runID), http.StatusNotFound))
		return
	}
	utils.WriteJSON(w, http.StatusOK, run)
}
