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

package services

import (
	"net/http"
	"strings"

	"github.com/wso2/crm-customer-data-sync/internal/sync/handler"
)

// SyncService routes the fetch, status and webhook endpoints.
type SyncService struct {
	syncHandler *handler.SyncHandler
}

func NewSyncService() *SyncService {
	return &SyncService{
		syncHandler: handler.NewSyncHandler(),
	}
}

func (s *SyncService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && strings.HasPrefix(path, "/fetch/"):
		s.syncHandler.TriggerFetch(w, r)

	case method == http.MethodGet && path == "/status":
		s.syncHandler.GetStatus(w, r)

	case method == http.MethodPost && path == "/webhook":
		s.syncHandler.HandleWebhook(w, r)

	case method == http.MethodGet && path == "/webhook-url":
		s.syncHandler.GetWebhookURL(w, r)

	default:
		http.NotFound(w, r)
	}
}
