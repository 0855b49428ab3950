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

// Segment is a platform segment a user or account belongs to.
type Segment struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// UserMessage is a platform user update notification.
type UserMessage struct {
	User     map[string]interface{} `json:"user"`
	Segments []Segment              `json:"segments"`
}

// AccountMessage is a platform account update notification.
type AccountMessage struct {
	Account         map[string]interface{} `json:"account"`
	AccountSegments []Segment              `json:"account_segments"`
}

// Operation is the outbound verdict for a notification.
type Operation string

const (
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationSkip   Operation = "skip"
)

// ObjectType is the platform object family of a notification.
type ObjectType string

const (
	ObjectTypeUser    ObjectType = "user"
	ObjectTypeAccount ObjectType = "account"
)

// Envelope carries a message together with the decision taken for it.
type Envelope[M any] struct {
	Message    M          `json:"message"`
	Operation  Operation  `json:"operation"`
	ObjectType ObjectType `json:"objectType"`
	Notes      []string   `json:"notes,omitempty"`
}

// FilteredEnvelopes splits a notification batch into the records to insert, to
// update, and to skip.
type FilteredEnvelopes[M any] struct {
	Inserts []Envelope[M] `json:"inserts"`
	Updates []Envelope[M] `json:"updates"`
	Skips   []Envelope[M] `json:"skips"`
}

// ToSync returns the inserts followed by the updates.
func (f FilteredEnvelopes[M]) ToSync() []Envelope[M] {
	out := make([]Envelope[M], 0, len(f.Inserts)+len(f.Updates))
	out = append(out, f.Inserts...)
	return append(out, f.Updates...)
}

// SegmentWhitelists holds the segment ids whose members are synchronized outbound.
type SegmentWhitelists struct {
	AccountProspect []string
	AccountClient   []string
	UserProspect    []string
	UserClient      []string
	UserContact     []string
}

// UserNotificationBatch is the body of a user notification request.
type UserNotificationBatch struct {
	Messages     []UserMessage `json:"messages"`
	IsFullImport bool          `json:"is_full_import"`
}

// AccountNotificationBatch is the body of an account notification request.
type AccountNotificationBatch struct {
	Messages     []AccountMessage `json:"messages"`
	IsFullImport bool             `json:"is_full_import"`
}
