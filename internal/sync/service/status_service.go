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

	"github.com/wso2/crm-customer-data-sync/internal/sync/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/client"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

type StatusServiceInterface interface {
	DetermineStatus(ctx context.Context) model.ConnectorStatus
}

// StatusService checks the connector setup and publishes the result to the platform.
type StatusService struct {
	credentials client.OAuthCredentials
	platform    client.PlatformClientInterface
}

func NewStatusService(credentials client.OAuthCredentials, platform client.PlatformClientInterface) StatusServiceInterface {
	return &StatusService{credentials: credentials, platform: platform}
}

// DetermineStatus reports setupRequired with one message per missing OAuth credential,
// ok otherwise. A failure to publish the status turns it into error.
func (s *StatusService) DetermineStatus(ctx context.Context) model.ConnectorStatus {

	logger := log.GetLogger()
	status := model.ConnectorStatus{
		Status:   constants.StatusOK,
		Messages: []string{},
	}

	checks := []struct {
		value   string
		message string
	}{
		{s.credentials.ConsumerSecret, model.MessageMissingConsumerSecret},
		{s.credentials.ConsumerToken, model.MessageMissingConsumerToken},
		{s.credentials.UserSecret, model.MessageMissingUserSecret},
		{s.credentials.UserToken, model.MessageMissingUserToken},
	}
	for _, check := range checks {
		if check.value == "" {
			status.Status = constants.StatusSetupRequired
			status.Messages = append(status.Messages, check.message)
		}
	}

	if err := s.platform.PutStatus(ctx, status.Status, status.Messages); err != nil {
		logger.Error("Failed to publish connector status", log.Error(err))
		status.Status = constants.StatusError
		status.Messages = append(status.Messages, model.MessageUnhandledError)
		return status
	}
	logger.Debug("Connector status published", log.String("status", status.Status))
	return status
}
