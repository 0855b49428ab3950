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
	"math"
	"strconv"
	"strings"
	"time"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	fieldModel "github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
)

// isoLayout is the timestamp format written to the platform.
const isoLayout = "2006-01-02T15:04:05.000-07:00"

// maxMillis bounds the representable instants to +/- 100,000,000 days around the epoch.
const maxMillis = 8.64e15

var sqlLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

// CastDefaultValue converts a built-in field value read from a CRM record into its
// platform representation. A nil definition passes the value through untouched.
// The function is total: values it cannot represent become nil.
func CastDefaultValue(raw interface{}, def *fieldModel.FieldDefinition) interface{} {

	if def == nil {
		return raw
	}

	switch {
	case def.Type.IsTextLike():
		if s, ok := raw.(string); ok && s == "" {
			return nil
		}
		return raw
	case def.Type == fieldModel.FieldTypeDate:
		s, ok := raw.(string)
		if !ok {
			return nil
		}
		if t, ok := parseSQLDate(s); ok {
			return formatISO(t)
		}
		if millis, ok := parseLeadingInt(s); ok && math.Abs(float64(millis)) <= maxMillis {
			return formatISO(time.UnixMilli(millis))
		}
		return nil
	case def.Type == fieldModel.FieldTypeBoolean:
		s, ok := raw.(string)
		return ok && s == "Y"
	case def.Type == fieldModel.FieldTypeCheckbox:
		if s, ok := raw.(string); ok {
			return splitChoices(s)
		}
		return raw
	}
	return nil
}

// CastCustomFieldValue converts a custom field instance into its platform representation.
// Without a definition the formatted value is used.
func CastCustomFieldValue(value crmModel.CustomFieldValue, def *fieldModel.FieldDefinition) interface{} {

	if def == nil {
		return value.FormattedValue.String()
	}

	switch def.Type {
	case fieldModel.FieldTypeAmount, fieldModel.FieldTypeUnit:
		decimal := value.DecimalVal.String()
		if decimal == "" {
			return float64(0)
		}
		f, ok := parseLeadingFloat(decimal)
		if !ok {
			return nil
		}
		return f
	case fieldModel.FieldTypeCheckbox:
		return splitChoices(value.FormattedValue.String())
	case fieldModel.FieldTypeBoolean:
		return value.BoolVal.String() == "Y"
	case fieldModel.FieldTypeDate:
		stamp := value.TimestampVal.String()
		if stamp == "" {
			return nil
		}
		seconds, ok := parseLeadingInt(stamp)
		if !ok || math.Abs(float64(seconds))*1000 > maxMillis {
			return nil
		}
		return formatISO(time.Unix(seconds, 0))
	}
	return value.FormattedValue.String()
}

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func parseSQLDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range sqlLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseLeadingInt reads the optionally signed decimal integer at the start of s, ignoring
// anything after it ("1614902400000abc" reads as 1614902400000).
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseLeadingFloat reads the decimal number at the start of s.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}

func splitChoices(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
