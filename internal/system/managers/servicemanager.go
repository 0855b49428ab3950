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

package managers

import (
	"net/http"
	"strings"

	"github.com/wso2/crm-customer-data-sync/internal/system/metrics"
	"github.com/wso2/crm-customer-data-sync/internal/system/security"
	"github.com/wso2/crm-customer-data-sync/internal/system/services"
	"github.com/wso2/crm-customer-data-sync/internal/system/utils"
)

type ServiceManagerInterface interface {
	RegisterServices() error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

func (sm *ServiceManager) RegisterServices() error {

	healthService := services.NewHealthService()
	syncService := services.NewSyncService()
	fieldService := services.NewFieldDefinitionService()
	notificationService := services.NewNotificationService()
	syncRunService := services.NewSyncRunService()

	sm.mux.Handle("/metrics", metrics.Handler())

	// Single dispatcher for all services
	sm.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")

		// Dispatch to correct service based on path
		var route http.HandlerFunc
		switch {
		case path == "/health" || path == "/ready":
			route = healthService.Route
		case strings.HasPrefix(path, "/fetch/") || path == "/status" || strings.HasPrefix(path, "/webhook"):
			route = syncService.Route
		case strings.HasPrefix(path, "/fields/"):
			route = fieldService.Route
		case strings.HasPrefix(path, "/notifications/"):
			route = notificationService.Route
		case path == "/runs" || strings.HasPrefix(path, "/runs/"):
			route = syncRunService.Route
		default:
			http.NotFound(w, r)
			return
		}

		if security.RequiresPlatformToken(path) {
			if err := security.AuthnPlatformRequest(r); err != nil {
				utils.HandleError(w, err)
				return
			}
		}
		route(w, r)
	})
	return nil
}
