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
	"bytes"
	"encoding/json"

	"github.com/wso2/crm-customer-data-sync/internal/system/utils"
)

// CustomFieldValue is a custom field instance attached to a CRM record.
type CustomFieldValue struct {
	ID             FlexString `json:"id"`
	CFID           FlexString `json:"cfid"`
	GroupID        FlexString `json:"groupid"`
	Type           FlexString `json:"type"`
	LinkedType     FlexString `json:"linkedtype"`
	LinkedID       FlexString `json:"linkedid"`
	Code           FlexString `json:"code"`
	TextVal        FlexString `json:"textval"`
	BoolVal        FlexString `json:"boolval"`
	TimestampVal   FlexString `json:"timestampval"`
	DecimalVal     FlexString `json:"decimalval"`
	NumericVal     FlexString `json:"numericval"`
	StringVal      FlexString `json:"stringval"`
	FormattedValue FlexString `json:"formatted_value"`
	Currency       FlexString `json:"currency,omitempty"`
	Unit           FlexString `json:"unit,omitempty"`
}

// SmartTag is a free-form tag attached to a CRM record.
type SmartTag struct {
	ID       FlexString `json:"id"`
	Category FlexString `json:"category"`
	Created  FlexString `json:"created"`
	Word     FlexString `json:"word"`
	ThirdID  FlexString `json:"thirdid"`
}

// Record is one corporation, person or contact as returned by the CRM list API.
// Fields keeps the whole decoded document for path lookups; the typed members
// are the handful the mapper needs directly.
type Record struct {
	ID             string
	Type           string
	FullName       string
	PeopleForename string
	PeopleName     string
	Forename       string
	Name           string
	LinkedID       string
	CustomFields   []CustomFieldValue
	SmartTags      []SmartTag
	Contacts       []Record
	Fields         map[string]interface{}
}

// ParseRecord decodes a single record document.
func ParseRecord(data []byte) (Record, error) {
	var r Record
	err := r.UnmarshalJSON(data)
	return r, err
}

func (r *Record) UnmarshalJSON(data []byte) error {

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return err
	}

	record := Record{
		ID:             utils.StringValue(fields["id"]),
		Type:           utils.StringValue(fields["type"]),
		FullName:       utils.StringValue(fields["fullName"]),
		PeopleForename: utils.StringValue(fields["people_forename"]),
		PeopleName:     utils.StringValue(fields["people_name"]),
		Forename:       utils.StringValue(fields["forename"]),
		Name:           utils.StringValue(fields["name"]),
		LinkedID:       utils.StringValue(fields["linkedid"]),
		Fields:         fields,
	}

	customFields, err := decodeOrdered(members["customfields"])
	if err != nil {
		return err
	}
	for _, raw := range customFields.Values() {
		var cf CustomFieldValue
		if err := json.Unmarshal(raw, &cf); err != nil {
			return err
		}
		record.CustomFields = append(record.CustomFields, cf)
	}

	tagsRaw, ok := members["smartTags"]
	if !ok {
		tagsRaw = members["tags"]
	}
	tags, err := decodeOrdered(tagsRaw)
	if err != nil {
		return err
	}
	for _, raw := range tags.Values() {
		var tag SmartTag
		if err := json.Unmarshal(raw, &tag); err != nil {
			return err
		}
		record.SmartTags = append(record.SmartTags, tag)
	}

	contacts, err := decodeOrdered(members["contacts"])
	if err != nil {
		return err
	}
	for _, raw := range contacts.Values() {
		contact, err := ParseRecord(raw)
		if err != nil {
			return err
		}
		record.Contacts = append(record.Contacts, contact)
	}

	*r = record
	return nil
}

// Lookup reads a dot path from the record document.
func (r Record) Lookup(path string) (interface{}, bool) {
	return utils.LookupPath(r.Fields, path)
}

// IsCorporation reports whether the record describes a company rather than a person.
func (r Record) IsCorporation() bool {
	return r.Type == "corporation"
}

// CustomField returns the custom field instance with the given code.
func (r Record) CustomField(code string) (CustomFieldValue, bool) {
	for _, cf := range r.CustomFields {
		if cf.Code.String() == code {
			return cf, true
		}
	}
	return CustomFieldValue{}, false
}

// SmartTagWords returns the tag words in source order.
func (r Record) SmartTagWords() []string {
	words := make([]string, 0, len(r.SmartTags))
	for _, tag := range r.SmartTags {
		words = append(words, tag.Word.String())
	}
	return words
}

// DecodeRecords decodes every entry of a list result, keeping the CRM's order.
func DecodeRecords(entries OrderedEntries) ([]Record, error) {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		record, err := ParseRecord(e.Value)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
