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

package security

import (
	"net/http"
	"strings"

	"github.com/wso2/crm-customer-data-sync/internal/system/authn"
	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/errors"
)

const platformTokenHeader = "Hull-Access-Token"

// AuthnPlatformRequest checks that the request carries a valid platform token. The token
// is read from the Hull-Access-Token header, a Bearer Authorization header or the token
// query parameter, in that order.
func AuthnPlatformRequest(r *http.Request) error {

	token := extractToken(r)
	if token == "" {
		return errors.NewClientError(errors.UN_AUTHORIZED.WithDescription("Missing platform token"),
			http.StatusUnauthorized)
	}
	_, err := authn.ValidatePlatformToken(token, config.GetSyncRuntime().Config.Platform)
	return err
}

// RequiresPlatformToken reports whether a route is reserved to the platform. The CRM
// webhook, health probes and metrics stay open.
func RequiresPlatformToken(path string) bool {
	switch {
	case path == "/health" || path == "/ready" || path == "/metrics" || path == "/webhook":
		return false
	}
	return true
}

func extractToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(platformTokenHeader)); token != "" {
		return token
	}
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return r.URL.Query().Get("token")
}
