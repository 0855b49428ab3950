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

package model

import (
	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
)

// FromCustomField converts a CRM custom field definition into a FieldDefinition. Custom
// fields are never read-only. An undeclared or unknown type is an error.
func FromCustomField(def crmModel.CustomFieldDefinition) (FieldDefinition, error) {

	fieldType, err := ParseFieldType(def.Type.String())
	if err != nil {
		return FieldDefinition{}, err
	}
	return FieldDefinition{
		Code:          def.Code.String(),
		Label:         def.Name.String(),
		Type:          fieldType,
		ReadOnly:      false,
		IsDefault:     false,
		AllowedValues: def.AllowedValues(),
		Rank:          int(def.Rank),
	}, nil
}
