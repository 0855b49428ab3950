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

package authn

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

// ValidatePlatformToken verifies a token issued by the platform for this connector. The
// token must be HS256 signed with the connector secret, carry the connector id as issuer
// and not be expired.
func ValidatePlatformToken(token string, platform config.PlatformConfig) (jwt.MapClaims, error) {

	logger := log.GetLogger()
	if platform.ConnectorToken == "" {
		logger.Debug("Connector secret is not configured, platform tokens cannot be verified.")
		return nil, unauthorizedError("Connector secret is not configured")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(platform.ConnectorToken), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(platform.ConnectorID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		logger.Debug("Platform token rejected.", log.Error(err))
		return nil, unauthorizedError("Invalid or expired platform token")
	}
	return claims, nil
}

func unauthorizedError(description string) error {
	return errors2.NewClientError(errors2.UN_AUTHORIZED.WithDescription("%s", description), http.StatusUnauthorized)
}
