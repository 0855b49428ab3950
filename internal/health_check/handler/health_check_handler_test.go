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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/wso2/crm-customer-data-sync/internal/health_check/service"
	"github.com/wso2/crm-customer-data-sync/internal/system/cache"
)

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandlerWithService(service.NewHealthCheckService()).HandleHealth(rec,
		httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestHandleReadiness(t *testing.T) {

	failing := service.ReadinessCheck{Name: "database", Probe: func(context.Context) error {
		return errors.New("connection refused")
	}}

	tests := []struct {
		name       string
		checks     []service.ReadinessCheck
		wantStatus int
		wantBody   string
	}{
		{"no checks", nil, http.StatusOK, "ready"},
		{"cache ok", []service.ReadinessCheck{service.CacheCheck(cache.NewMemoryCache(time.Minute))}, http.StatusOK, "ready"},
		{"database down", []service.ReadinessCheck{failing}, http.StatusServiceUnavailable, "database check failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandlerWithService(service.NewHealthCheckService(tt.checks...)).HandleReadiness(rec,
				httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
