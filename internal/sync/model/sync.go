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

// ConnectorStatus is the health summary reported to the platform.
type ConnectorStatus struct {
	Status   string   `json:"status"`
	Messages []string `json:"messages"`
}

// Setup messages, one per missing OAuth credential.
const (
	MessageMissingConsumerSecret = "Connector unauthenticated: No Consumer Secret is present."
	MessageMissingConsumerToken  = "Connector unauthenticated: No Consumer Token is present."
	MessageMissingUserSecret     = "Connector unauthenticated: No User Secret is present."
	MessageMissingUserToken      = "Connector unauthenticated: No User Token is present."
	MessageUnhandledError        = "An unhandled error occurred and our engineering team has been notified."
)

// FetchJob is a unit of work for the sync worker. An empty RecordID fetches the whole list.
type FetchJob struct {
	Kind     crmModel.ListKind
	RecordID string
	Trigger  string
	TraceID  string
}

// FetchAccepted is returned when a fetch job has been queued.
type FetchAccepted struct {
	Kind     string `json:"kind"`
	RecordID string `json:"record_id,omitempty"`
	Status   string `json:"status"`
}
