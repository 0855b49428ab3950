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

package config

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mappingModel "github.com/wso2/crm-customer-data-sync/internal/mapping/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
)

func TestParseConfigExpandsBracedReferencesOnly(t *testing.T) {
	t.Setenv("SYNC_TEST_TENANT", "acme.example")
	t.Setenv("smartTags", "must-not-leak")

	cfg, err := ParseConfig([]byte(`
tenant: "${SYNC_TEST_TENANT}"
connector:
  auth_user_token: "${SYNC_TEST_UNSET}"
  mapping_in_client_account:
    - hull: "traits_sellsy/tags"
      service: "$smartTags"
    - hull: "sellsy/tier"
      service: "$customfield.tier"
`))

	require.NoError(t, err)
	assert.Equal(t, "acme.example", cfg.Tenant)
	assert.Equal(t, "", cfg.Connector.AuthUserToken)
	require.Len(t, cfg.Connector.MappingInClientAccount, 2)
	assert.True(t, cfg.Connector.MappingInClientAccount[0].IsSmartTags())
	code, ok := cfg.Connector.MappingInClientAccount[1].CustomFieldCode()
	assert.True(t, ok)
	assert.Equal(t, "tier", code)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`tenant: acme.example`))

	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Log.LogLevel)
	assert.Equal(t, constants.DefaultRecordPageSize, cfg.CRM.RecordPageSize)
	assert.Equal(t, constants.DefaultCustomFieldPageSize, cfg.CRM.CustomFieldPageSize)
	assert.Equal(t, uint64(3), cfg.CRM.MaxRetries)
	assert.Equal(t, constants.CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 300, cfg.Cache.CustomFieldTTLSeconds)
	assert.Equal(t, constants.HistoryBackendMemory, cfg.SyncHistory.Backend)
	assert.Equal(t, constants.SyncRunTable, cfg.MongoDB.Collection)
	assert.Equal(t, 10, cfg.Sync.MaxConcurrentWrites)
	assert.Equal(t, 100, cfg.Sync.QueueSize)
	assert.Equal(t, 1800, cfg.Sync.LockLeaseSeconds)
	assert.False(t, cfg.Sync.ExclusiveRuns)
}

func TestParseConfigRejectsMalformedYAML(t *testing.T) {
	_, err := ParseConfig([]byte("tenant: [unterminated"))
	assert.Error(t, err)
}

func TestValidateConnectorSettings(t *testing.T) {

	tests := []struct {
		name      string
		connector ConnectorConfig
		problems  []string
	}{
		{
			name: "valid tables",
			connector: ConnectorConfig{
				MappingInContact:    []mappingModel.MappingEntry{{HullField: "first_name", ServiceField: "forename"}},
				IdentityInContact:   []mappingModel.IdentityMappingEntry{{HullIdentityKey: "email", ServiceField: "email"}},
				UserContactSegments: []string{"seg-1"},
			},
		},
		{
			name: "missing service field",
			connector: ConnectorConfig{
				MappingInClientPerson: []mappingModel.MappingEntry{{HullField: "first_name"}},
			},
			problems: []string{"mapping_in_client_person[0]: both hull and service must be set"},
		},
		{
			name: "legacy prefix only",
			connector: ConnectorConfig{
				MappingInProspectAccount: []mappingModel.MappingEntry{{HullField: "traits_", ServiceField: "fullName"}},
			},
			problems: []string{"mapping_in_prospect_account[0]: destination is empty"},
		},
		{
			name: "custom field without code",
			connector: ConnectorConfig{
				MappingInClientAccount: []mappingModel.MappingEntry{{HullField: "tier", ServiceField: "$customfield."}},
			},
			problems: []string{"mapping_in_client_account[0]: custom field code is missing"},
		},
		{
			name: "unsupported identity key and empty segment",
			connector: ConnectorConfig{
				IdentityInPerson:   []mappingModel.IdentityMappingEntry{{HullIdentityKey: "phone", ServiceField: "tel"}},
				UserClientSegments: []string{" "},
			},
			problems: []string{
				`identity_in_person[0]: unsupported identity key "phone"`,
				"user_client_synchronized_segments[0]: segment id is empty",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConnectorSettings(tt.connector)
			if len(tt.problems) == 0 {
				assert.NoError(t, err)
				return
			}
			var clientErr *errors2.ClientError
			require.True(t, errors.As(err, &clientErr))
			assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
			assert.Equal(t, errors2.INVALID_CONNECTOR_SETTINGS.Code, clientErr.Code)
			for _, problem := range tt.problems {
				assert.Contains(t, clientErr.Description, problem)
			}
		})
	}
}
