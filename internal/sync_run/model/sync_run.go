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

import "time"

// SyncRun is the history entry of one fetch pass over a CRM object kind.
type SyncRun struct {
	RunID      string     `json:"run_id" bson:"run_id"`
	Tenant     string     `json:"tenant" bson:"tenant"`
	Kind       string     `json:"kind" bson:"kind"`
	Trigger    string     `json:"trigger" bson:"trigger"`
	Status     string     `json:"status" bson:"status"`
	Pages      int        `json:"pages" bson:"pages"`
	Records    int        `json:"records" bson:"records"`
	Error      string     `json:"error,omitempty" bson:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at" bson:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
}

// Duration returns how long the run took, or zero while it is still running.
func (r SyncRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Run triggers.
const (
	TriggerManual  = "manual"
	TriggerWebhook = "webhook"
	TriggerCLI     = "cli"
)
