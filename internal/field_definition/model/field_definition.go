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
	"fmt"
)

// FieldType is the declared value type of a CRM field.
type FieldType string

const (
	FieldTypeSimpleText FieldType = "simpletext"
	FieldTypeRichText   FieldType = "richtext"
	FieldTypeNumeric    FieldType = "numeric"
	FieldTypeAmount     FieldType = "amount"
	FieldTypeUnit       FieldType = "unit"
	FieldTypeSelect     FieldType = "select"
	FieldTypeRadio      FieldType = "radio"
	FieldTypeCheckbox   FieldType = "checkbox"
	FieldTypeDate       FieldType = "date"
	FieldTypeTime       FieldType = "time"
	FieldTypeEmail      FieldType = "email"
	FieldTypeURL        FieldType = "url"
	FieldTypeBoolean    FieldType = "boolean"
	FieldTypeThird      FieldType = "third"
	FieldTypeItem       FieldType = "item"
	FieldTypePeople     FieldType = "people"
	FieldTypeStaff      FieldType = "staff"
)

var knownFieldTypes = map[FieldType]struct{}{
	FieldTypeSimpleText: {}, FieldTypeRichText: {}, FieldTypeNumeric: {}, FieldTypeAmount: {},
	FieldTypeUnit: {}, FieldTypeSelect: {}, FieldTypeRadio: {}, FieldTypeCheckbox: {},
	FieldTypeDate: {}, FieldTypeTime: {}, FieldTypeEmail: {}, FieldTypeURL: {},
	FieldTypeBoolean: {}, FieldTypeThird: {}, FieldTypeItem: {}, FieldTypePeople: {},
	FieldTypeStaff: {},
}

// ParseFieldType validates a declared type string.
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(s)
	if _, ok := knownFieldTypes[t]; !ok {
		return "", fmt.Errorf("unknown field type: %q", s)
	}
	return t, nil
}

// IsTextLike reports whether values of this type are carried as plain strings, with
// the empty string meaning "no value".
func (t FieldType) IsTextLike() bool {
	switch t {
	case FieldTypeSimpleText, FieldTypeRichText, FieldTypeSelect, FieldTypeURL, FieldTypeEmail,
		FieldTypeTime, FieldTypeThird, FieldTypeAmount, FieldTypeUnit, FieldTypeStaff,
		FieldTypeItem, FieldTypePeople, FieldTypeRadio:
		return true
	}
	return false
}

// FieldDefinition describes one mappable CRM field.
type FieldDefinition struct {
	Code          string    `json:"code"`
	Label         string    `json:"label"`
	Type          FieldType `json:"type"`
	ReadOnly      bool      `json:"readonly"`
	IsDefault     bool      `json:"isDefault"`
	AllowedValues []string  `json:"allowedValues,omitempty"`
	Rank          int       `json:"-"`
}
