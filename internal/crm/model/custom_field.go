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
	"encoding/json"
)

// CustomFieldDefinition describes a tenant defined custom field.
type CustomFieldDefinition struct {
	ID            FlexString      `json:"id"`
	Type          FlexString      `json:"type"`
	Name          FlexString      `json:"name"`
	Code          FlexString      `json:"code"`
	Description   FlexString      `json:"description"`
	DefaultValue  FlexString      `json:"defaultValue"`
	UseOnPeople   FlexString      `json:"useOn_people"`
	UseOnClient   FlexString      `json:"useOn_client"`
	UseOnProspect FlexString      `json:"useOn_prospect"`
	Rank          FlexInt         `json:"rank"`
	GroupID       FlexString      `json:"groupid"`
	GroupName     FlexString      `json:"groupname"`
	PrefsList     json.RawMessage `json:"prefsList,omitempty"`
}

// AllowedValues returns the choices of a select, radio or checkbox field.
func (d CustomFieldDefinition) AllowedValues() []string {
	entries, err := decodeOrdered(d.PrefsList)
	if err != nil {
		return nil
	}
	var values []string
	for _, raw := range entries.Values() {
		var pref struct {
			Value FlexString `json:"value"`
		}
		if err := json.Unmarshal(raw, &pref); err != nil || pref.Value == "" {
			continue
		}
		values = append(values, pref.Value.String())
	}
	return values
}

// CustomFieldGroup groups custom fields in the CRM user interface.
type CustomFieldGroup struct {
	ID            FlexString `json:"id"`
	Name          FlexString `json:"name"`
	Code          FlexString `json:"code"`
	Status        FlexString `json:"status"`
	OpenByDefault FlexString `json:"openbydefault"`
}

// DecodeCustomFieldDefinitions decodes a custom field list result in document order.
func DecodeCustomFieldDefinitions(entries OrderedEntries) ([]CustomFieldDefinition, error) {
	defs := make([]CustomFieldDefinition, 0, len(entries))
	for _, e := range entries {
		var def CustomFieldDefinition
		if err := json.Unmarshal(e.Value, &def); err != nil {
			return nil, err
		}
		if def.ID == "" {
			def.ID = FlexString(e.Key)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// DecodeCustomFieldGroups decodes a custom field group list result in document order.
func DecodeCustomFieldGroups(entries OrderedEntries) ([]CustomFieldGroup, error) {
	groups := make([]CustomFieldGroup, 0, len(entries))
	for _, e := range entries {
		var group CustomFieldGroup
		if err := json.Unmarshal(e.Value, &group); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}
