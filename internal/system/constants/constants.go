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

package constants

type contextKey string

const (
	TraceIDContextKey contextKey = "traceID"
	TenantContextKey  contextKey = "tenant"
)

const TraceIDHeader = "X-Trace-Id"

// Identity namespaces used when prefixing anonymous ids.
const (
	ServiceNamespace        = "sellsy"
	ServiceContactNamespace = "sellsy-contact"
)

// Attributes written on every record the connector owns.
const (
	ServiceIDAttribute              = "sellsy/id"
	ServiceContactIDAttribute       = "sellsy_contact/id"
	ServiceContactClientIDAttribute = "sellsy_contact/client_id"
	ServiceContactLinkedIDAttribute = "sellsy_contact/linked_id"
)

// Sentinel source fields understood by the attribute mapper.
const (
	CustomFieldPrefix = "$customfield."
	SmartTagsField    = "$smartTags"
	LegacyTraitPrefix = "traits_"
)

// CRM record types.
const (
	RecordTypeCorporation = "corporation"
	RecordTypePerson      = "person"
)

// Pagination sizes used against the CRM list endpoints.
const (
	DefaultRecordPageSize      = 50
	DefaultCustomFieldPageSize = 100
)

// Field listing directions.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// Connector status values.
const (
	StatusOK            = "ok"
	StatusSetupRequired = "setupRequired"
	StatusWarning       = "warning"
	StatusError         = "error"
)

// Sync run states.
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// Sync history backends.
const (
	HistoryBackendPostgres = "postgres"
	HistoryBackendMongoDB  = "mongodb"
	HistoryBackendMemory   = "memory"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

const SyncRunTable = "sync_runs"
