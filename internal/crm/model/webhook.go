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

// WebhookNotification is the envelope the CRM posts when a record changes.
type WebhookNotification struct {
	Notif WebhookEvent `json:"notif"`
}

type WebhookEvent struct {
	EventType   FlexString `json:"eventType"`
	Timestamp   FlexString `json:"timestamp"`
	Event       FlexString `json:"event"`
	RelatedID   FlexString `json:"relatedid"`
	RelatedType FlexString `json:"relatedtype"`
	ThirdType   FlexString `json:"thirdtype"`
	OwnerID     FlexString `json:"ownerid"`
	OwnerType   FlexString `json:"ownertype"`
	CorpID      FlexString `json:"corpid"`
}

// ListKind returns the record list the notification refers to. Third party events
// carry the third type (client or prospect) separately from the related type.
func (n WebhookNotification) ListKind() (ListKind, bool) {
	related := n.Notif.RelatedType.String()
	if related == "third" || related == "client" || related == "prospect" {
		switch n.Notif.ThirdType.String() {
		case "prospect":
			return ListProspects, true
		case "client":
			return ListClients, true
		}
		if related == "prospect" {
			return ListProspects, true
		}
		return ListClients, true
	}
	if related == "people" || related == "contact" {
		return ListContacts, true
	}
	return "", false
}
