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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wso2/crm-customer-data-sync/internal/sync/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/client"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
)

func TestDetermineStatus(t *testing.T) {

	complete := client.OAuthCredentials{
		ConsumerToken:  "ct",
		ConsumerSecret: "cs",
		UserToken:      "ut",
		UserSecret:     "us",
	}

	tests := []struct {
		name        string
		credentials client.OAuthCredentials
		publishErr  error
		wantStatus  string
		wantMessage []string
	}{
		{
			name:        "all credentials present",
			credentials: complete,
			wantStatus:  constants.StatusOK,
			wantMessage: []string{},
		},
		{
			name:        "nothing configured",
			credentials: client.OAuthCredentials{},
			wantStatus:  constants.StatusSetupRequired,
			wantMessage: []string{
				model.MessageMissingConsumerSecret,
				model.MessageMissingConsumerToken,
				model.MessageMissingUserSecret,
				model.MessageMissingUserToken,
			},
		},
		{
			name: "user token missing",
			credentials: client.OAuthCredentials{
				ConsumerToken:  "ct",
				ConsumerSecret: "cs",
				UserSecret:     "us",
			},
			wantStatus:  constants.StatusSetupRequired,
			wantMessage: []string{model.MessageMissingUserToken},
		},
		{
			name:        "platform rejects the status",
			credentials: complete,
			publishErr:  errors.New("connection refused"),
			wantStatus:  constants.StatusError,
			wantMessage: []string{model.MessageUnhandledError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := &mockPlatformClient{}
			platform.On("PutStatus", mock.Anything, mock.Anything).Return(tt.publishErr).Once()

			status := NewStatusService(tt.credentials, platform).DetermineStatus(context.Background())

			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, tt.wantMessage, status.Messages)
			platform.AssertExpectations(t)
		})
	}
}

func TestDetermineStatusPublishesComputedStatus(t *testing.T) {

	platform := &mockPlatformClient{}
	platform.On("PutStatus", constants.StatusSetupRequired,
		[]string{model.MessageMissingConsumerSecret}).Return(nil).Once()

	NewStatusService(client.OAuthCredentials{
		ConsumerToken: "ct",
		UserToken:     "ut",
		UserSecret:    "us",
	}, platform).DetermineStatus(context.Background())

	platform.AssertExpectations(t)
}
