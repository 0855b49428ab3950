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
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/crm-customer-data-sync/internal/system/config"
)

func platformToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "connector-1",
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	return token
}

func TestAuthnPlatformRequest(t *testing.T) {
	config.OverrideSyncRuntime(config.Config{Platform: config.PlatformConfig{
		ConnectorID:    "connector-1",
		ConnectorToken: "s3cret",
	}})
	token := platformToken(t)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		wantErr bool
	}{
		{"access token header", func(r *http.Request) { r.Header.Set("Hull-Access-Token", token) }, false},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, false},
		{"query parameter", func(r *http.Request) {
			q := r.URL.Query()
			q.Set("token", token)
			r.URL.RawQuery = q.Encode()
		}, false},
		{"basic header", func(r *http.Request) { r.SetBasicAuth("admin", "admin") }, true},
		{"no token", func(r *http.Request) {}, true},
		{"tampered token", func(r *http.Request) { r.Header.Set("Hull-Access-Token", token+"x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/status", nil)
			tt.prepare(r)

			err := AuthnPlatformRequest(r)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequiresPlatformToken(t *testing.T) {
	open := []string{"/health", "/ready", "/metrics", "/webhook"}
	guarded := []string{"/status", "/webhook-url", "/fetch/clients", "/fields/mapping", "/notifications/users", "/runs"}

	for _, path := range open {
		assert.False(t, RequiresPlatformToken(path), path)
	}
	for _, path := range guarded {
		assert.True(t, RequiresPlatformToken(path), path)
	}
}
