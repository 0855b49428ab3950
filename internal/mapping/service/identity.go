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
	"fmt"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	"github.com/wso2/crm-customer-data-sync/internal/mapping/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

// ResolveIdentity builds the claims addressing record on the platform. Entries apply
// in table order, so a later entry for the same claim wins. The result always carries
// an anonymous id: "<namespace>:<record id>" when the table produced none.
func ResolveIdentity(record crmModel.Record, table []model.IdentityMappingEntry, namespace string) model.IdentityClaims {

	logger := log.GetLogger()
	claims := model.IdentityClaims{}
	for _, entry := range table {
		if entry.HullIdentityKey == "" || entry.ServiceField == "" {
			continue
		}
		value, found := record.Lookup(entry.ServiceField)
		if !found || value == nil {
			logger.Debug(fmt.Sprintf("Identity source %s missing on record %s", entry.ServiceField, record.ID))
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		if entry.HullIdentityKey == model.IdentityKeyAnonymousID {
			claims[entry.HullIdentityKey] = fmt.Sprintf("%s:%v", namespace, value)
			continue
		}
		claims[entry.HullIdentityKey] = value
	}

	if claims.AnonymousID() == "" {
		claims[model.IdentityKeyAnonymousID] = fmt.Sprintf("%s:%s", namespace, record.ID)
	}
	return claims
}
