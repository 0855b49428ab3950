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
	"fmt"
	"net/http"
	"sort"
	"strings"

	mappingModel "github.com/wso2/crm-customer-data-sync/internal/mapping/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
)

// ValidateConnectorSettings checks the mapping, identity and segment tables. A malformed
// table fails startup instead of silently misrouting records at sync time.
func ValidateConnectorSettings(c ConnectorConfig) error {

	var problems []string

	mappingTables := map[string][]mappingModel.MappingEntry{
		"mapping_in_prospect_account": c.MappingInProspectAccount,
		"mapping_in_prospect_person":  c.MappingInProspectPerson,
		"mapping_in_client_account":   c.MappingInClientAccount,
		"mapping_in_client_person":    c.MappingInClientPerson,
		"mapping_in_contact":          c.MappingInContact,
	}
	for name, table := range mappingTables {
		for i, entry := range table {
			if strings.TrimSpace(entry.HullField) == "" || strings.TrimSpace(entry.ServiceField) == "" {
				problems = append(problems, fmt.Sprintf("%s[%d]: both hull and service must be set", name, i))
				continue
			}
			if entry.Destination() == "" {
				problems = append(problems, fmt.Sprintf("%s[%d]: destination is empty after removing %q",
					name, i, constants.LegacyTraitPrefix))
			}
			if code, ok := entry.CustomFieldCode(); ok && code == "" {
				problems = append(problems, fmt.Sprintf("%s[%d]: custom field code is missing", name, i))
			}
		}
	}

	identityTables := map[string][]mappingModel.IdentityMappingEntry{
		"identity_in_corporation": c.IdentityInCorporation,
		"identity_in_person":      c.IdentityInPerson,
		"identity_in_contact":     c.IdentityInContact,
	}
	for name, table := range identityTables {
		for i, entry := range table {
			if !entry.HullIdentityKey.IsValid() {
				problems = append(problems, fmt.Sprintf("%s[%d]: unsupported identity key %q",
					name, i, entry.HullIdentityKey))
			}
			if strings.TrimSpace(entry.ServiceField) == "" {
				problems = append(problems, fmt.Sprintf("%s[%d]: service field must be set", name, i))
			}
		}
	}

	segmentLists := map[string][]string{
		"account_prospect_synchronized_segments": c.AccountProspectSegments,
		"account_client_synchronized_segments":   c.AccountClientSegments,
		"user_prospect_synchronized_segments":    c.UserProspectSegments,
		"user_client_synchronized_segments":      c.UserClientSegments,
		"user_contact_synchronized_segments":     c.UserContactSegments,
	}
	for name, segments := range segmentLists {
		for i, segment := range segments {
			if strings.TrimSpace(segment) == "" {
				problems = append(problems, fmt.Sprintf("%s[%d]: segment id is empty", name, i))
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return errors2.NewClientError(errors2.INVALID_CONNECTOR_SETTINGS.WithDescription("%s",
		strings.Join(problems, "; ")), http.StatusBadRequest)
}
