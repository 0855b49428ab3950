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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	fieldModel "github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
)

func def(fieldType fieldModel.FieldType) *fieldModel.FieldDefinition {
	return &fieldModel.FieldDefinition{Code: "f", Type: fieldType}
}

func TestCastDefaultValue(t *testing.T) {

	tests := []struct {
		name     string
		raw      interface{}
		def      *fieldModel.FieldDefinition
		expected interface{}
	}{
		{name: "no definition passes through", raw: "raw", def: nil, expected: "raw"},
		{name: "no definition keeps empty string", raw: "", def: nil, expected: ""},
		{name: "text", raw: "Acme", def: def(fieldModel.FieldTypeSimpleText), expected: "Acme"},
		{name: "empty text is nil", raw: "", def: def(fieldModel.FieldTypeSimpleText), expected: nil},
		{name: "empty email is nil", raw: "", def: def(fieldModel.FieldTypeEmail), expected: nil},
		{name: "number under text type", raw: json.Number("12"), def: def(fieldModel.FieldTypeAmount), expected: json.Number("12")},
		{name: "sql date", raw: "2021-03-05", def: def(fieldModel.FieldTypeDate), expected: "2021-03-05T00:00:00.000+00:00"},
		{name: "sql date time", raw: "2021-03-05 10:11:12", def: def(fieldModel.FieldTypeDate), expected: "2021-03-05T10:11:12.000+00:00"},
		{name: "millis string", raw: "1614902400000", def: def(fieldModel.FieldTypeDate), expected: "2021-03-05T00:00:00.000+00:00"},
		{name: "invalid date", raw: "not-a-date", def: def(fieldModel.FieldTypeDate), expected: nil},
		{name: "empty date", raw: "", def: def(fieldModel.FieldTypeDate), expected: nil},
		{name: "non string date", raw: json.Number("1614902400000"), def: def(fieldModel.FieldTypeDate), expected: nil},
		{name: "boolean Y", raw: "Y", def: def(fieldModel.FieldTypeBoolean), expected: true},
		{name: "boolean N", raw: "N", def: def(fieldModel.FieldTypeBoolean), expected: false},
		{name: "boolean empty", raw: "", def: def(fieldModel.FieldTypeBoolean), expected: false},
		{name: "boolean nil", raw: nil, def: def(fieldModel.FieldTypeBoolean), expected: false},
		{name: "checkbox string", raw: "a, b ,c", def: def(fieldModel.FieldTypeCheckbox), expected: []string{"a", "b", "c"}},
		{name: "checkbox array", raw: []interface{}{"a"}, def: def(fieldModel.FieldTypeCheckbox), expected: []interface{}{"a"}},
		{name: "numeric is nil", raw: "12", def: def(fieldModel.FieldTypeNumeric), expected: nil},
		{name: "unknown type is nil", raw: "x", def: def(fieldModel.FieldType("signature")), expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CastDefaultValue(tt.raw, tt.def))
		})
	}
}

func TestCastDefaultValueDatesAreISO(t *testing.T) {

	for _, raw := range []string{"2021-03-05", "1614902400000"} {
		out, ok := CastDefaultValue(raw, def(fieldModel.FieldTypeDate)).(string)
		require.True(t, ok, raw)
		_, err := time.Parse(time.RFC3339, out)
		assert.NoError(t, err, raw)
	}
}

func TestCastCustomFieldValue(t *testing.T) {

	tests := []struct {
		name     string
		value    crmModel.CustomFieldValue
		def      *fieldModel.FieldDefinition
		expected interface{}
	}{
		{name: "no definition", value: crmModel.CustomFieldValue{FormattedValue: "Gold"}, expected: "Gold"},
		{name: "amount", value: crmModel.CustomFieldValue{DecimalVal: "12.50"}, def: def(fieldModel.FieldTypeAmount), expected: 12.5},
		{name: "amount missing", value: crmModel.CustomFieldValue{}, def: def(fieldModel.FieldTypeAmount), expected: float64(0)},
		{name: "unit with suffix", value: crmModel.CustomFieldValue{DecimalVal: "3kg"}, def: def(fieldModel.FieldTypeUnit), expected: float64(3)},
		{name: "amount garbage", value: crmModel.CustomFieldValue{DecimalVal: "abc"}, def: def(fieldModel.FieldTypeAmount), expected: nil},
		{name: "checkbox", value: crmModel.CustomFieldValue{FormattedValue: "red, blue"}, def: def(fieldModel.FieldTypeCheckbox), expected: []string{"red", "blue"}},
		{name: "boolean", value: crmModel.CustomFieldValue{BoolVal: "Y"}, def: def(fieldModel.FieldTypeBoolean), expected: true},
		{name: "boolean no", value: crmModel.CustomFieldValue{BoolVal: "N"}, def: def(fieldModel.FieldTypeBoolean), expected: false},
		{name: "date", value: crmModel.CustomFieldValue{TimestampVal: "1614902400"}, def: def(fieldModel.FieldTypeDate), expected: "2021-03-05T00:00:00.000+00:00"},
		{name: "date missing", value: crmModel.CustomFieldValue{}, def: def(fieldModel.FieldTypeDate), expected: nil},
		{name: "date garbage", value: crmModel.CustomFieldValue{TimestampVal: "soon"}, def: def(fieldModel.FieldTypeDate), expected: nil},
		{name: "text", value: crmModel.CustomFieldValue{FormattedValue: "Gold"}, def: def(fieldModel.FieldTypeSimpleText), expected: "Gold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CastCustomFieldValue(tt.value, tt.def))
		})
	}
}

func TestCastersAreTotal(t *testing.T) {

	types := []fieldModel.FieldType{
		fieldModel.FieldTypeSimpleText, fieldModel.FieldTypeRichText, fieldModel.FieldTypeNumeric,
		fieldModel.FieldTypeAmount, fieldModel.FieldTypeUnit, fieldModel.FieldTypeSelect,
		fieldModel.FieldTypeRadio, fieldModel.FieldTypeCheckbox, fieldModel.FieldTypeDate,
		fieldModel.FieldTypeTime, fieldModel.FieldTypeEmail, fieldModel.FieldTypeURL,
		fieldModel.FieldTypeBoolean, fieldModel.FieldTypeThird, fieldModel.FieldTypeItem,
		fieldModel.FieldTypePeople, fieldModel.FieldTypeStaff, fieldModel.FieldType("mystery"),
	}
	inputs := []interface{}{nil, "", "Y", "99999999999999999999", "-", 3.5, true,
		map[string]interface{}{"a": 1}, []interface{}{}}
	custom := []crmModel.CustomFieldValue{
		{}, {DecimalVal: "-", TimestampVal: "99999999999999999999", BoolVal: "Y", FormattedValue: ","},
	}

	for _, ft := range types {
		for _, in := range inputs {
			assert.NotPanics(t, func() { CastDefaultValue(in, def(ft)) })
		}
		for _, cf := range custom {
			assert.NotPanics(t, func() { CastCustomFieldValue(cf, def(ft)) })
		}
	}
}
