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
	"strings"
)

// ListKind identifies one of the CRM list endpoints.
type ListKind string

const (
	ListClients           ListKind = "clients"
	ListProspects         ListKind = "prospects"
	ListContacts          ListKind = "contacts"
	ListCustomFieldGroups ListKind = "custom-field-groups"
	ListCustomFields      ListKind = "custom-fields"
)

// ParseRecordListKind accepts the three record kinds a sync run can target.
func ParseRecordListKind(s string) (ListKind, bool) {
	switch ListKind(strings.ToLower(strings.TrimSpace(s))) {
	case ListClients:
		return ListClients, true
	case ListProspects:
		return ListProspects, true
	case ListContacts:
		return ListContacts, true
	}
	return "", false
}

// Method returns the CRM API method backing the list.
func (k ListKind) Method() string {
	switch k {
	case ListClients:
		return "Client.getList"
	case ListProspects:
		return "Prospects.getList"
	case ListContacts:
		return "Peoples.getList"
	case ListCustomFieldGroups:
		return "CustomFields.getGroupsList"
	case ListCustomFields:
		return "CustomFields.getList"
	}
	return ""
}

// DetailMethod returns the single-record method and its id parameter name.
func (k ListKind) DetailMethod() (method string, idParam string) {
	switch k {
	case ListClients:
		return "Client.getOne", "clientid"
	case ListProspects:
		return "Prospects.getOne", "id"
	case ListContacts:
		return "Peoples.getOne", "id"
	}
	return "", ""
}

// Pagination is the CRM paging request.
type Pagination struct {
	PageSize int `json:"nbperpage"`
	PageNum  int `json:"pagenum"`
}

// PageInfo is the paging block of a list response.
type PageInfo struct {
	PerPage  FlexInt    `json:"nbperpage"`
	PageNum  FlexInt    `json:"pagenum"`
	NumPages FlexInt    `json:"nbpages"`
	Total    FlexString `json:"nbtotal"`
}

// ListResponse is the payload of any CRM list call: paging info and the
// id-keyed result object, in document order.
type ListResponse struct {
	Infos  PageInfo       `json:"infos"`
	Result OrderedEntries `json:"result"`
}

// Envelope is the outer document returned by every CRM API call.
type Envelope struct {
	Response json.RawMessage `json:"response"`
	Error    json.RawMessage `json:"error"`
	Status   string          `json:"status"`
}

// Succeeded reports whether the CRM flagged the call as successful.
func (e Envelope) Succeeded() bool {
	return e.Status == "success"
}

// ErrorMessage returns the CRM error text, whatever shape it was sent in.
func (e Envelope) ErrorMessage() string {
	if len(e.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Error, &s); err == nil {
		return s
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(e.Error, &obj); err == nil {
		for _, key := range []string{"message", "more", "code"} {
			if v, ok := obj[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return string(e.Error)
}

// ApiResult is the non-throwing outcome of a remote call.
type ApiResult[T any] struct {
	Endpoint     string
	Method       string
	Payload      interface{}
	Data         *T
	Success      bool
	Error        string
	ErrorDetails error
}

// NewApiSuccess builds a successful result.
func NewApiSuccess[T any](endpoint, method string, payload interface{}, data *T) *ApiResult[T] {
	return &ApiResult[T]{
		Endpoint: endpoint,
		Method:   method,
		Payload:  payload,
		Data:     data,
		Success:  true,
	}
}

// NewApiFailure builds a failed result carrying the cause.
func NewApiFailure[T any](endpoint, method string, payload interface{}, cause error) *ApiResult[T] {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return &ApiResult[T]{
		Endpoint:     endpoint,
		Method:       method,
		Payload:      payload,
		Success:      false,
		Error:        message,
		ErrorDetails: cause,
	}
}
