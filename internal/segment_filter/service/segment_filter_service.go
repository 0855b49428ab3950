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
	"fmt"

	"github.com/wso2/crm-customer-data-sync/internal/segment_filter/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/metrics"
)

type SegmentFilterServiceInterface interface {
	FilterUserMessages(msgs []model.UserMessage, isFullImport bool) model.FilteredEnvelopes[model.UserMessage]
	FilterAccountMessages(msgs []model.AccountMessage, isFullImport bool) model.FilteredEnvelopes[model.AccountMessage]
}

// SegmentFilterService decides which platform notifications are pushed to the CRM.
type SegmentFilterService struct {
	whitelists model.SegmentWhitelists
}

func NewSegmentFilterService(whitelists model.SegmentWhitelists) SegmentFilterServiceInterface {
	return &SegmentFilterService{whitelists: whitelists}
}

func batchNote(objectType model.ObjectType) string {
	return fmt.Sprintf("Hull %s synchronized in batch operation. Segment filters not applied.", objectType)
}

func notInSegmentNote(objectType model.ObjectType) string {
	return fmt.Sprintf("Hull %s won't be synchronized since it is not matching any of the filtered segments.", objectType)
}

// FilterUserMessages keeps the users that belong to a client, prospect or contact
// segment. Every kept user is an insert.
func (s *SegmentFilterService) FilterUserMessages(msgs []model.UserMessage,
	isFullImport bool) model.FilteredEnvelopes[model.UserMessage] {

	result := model.FilteredEnvelopes[model.UserMessage]{
		Inserts: []model.Envelope[model.UserMessage]{},
		Updates: []model.Envelope[model.UserMessage]{},
		Skips:   []model.Envelope[model.UserMessage]{},
	}
	for _, msg := range msgs {
		envelope := model.Envelope[model.UserMessage]{Message: msg, ObjectType: model.ObjectTypeUser}
		switch {
		case isFullImport:
			envelope.Notes = []string{batchNote(model.ObjectTypeUser)}
		case !inAnySegment(msg.Segments, s.whitelists.UserClient) &&
			!inAnySegment(msg.Segments, s.whitelists.UserProspect) &&
			!inAnySegment(msg.Segments, s.whitelists.UserContact):
			envelope.Operation = model.OperationSkip
			envelope.Notes = []string{notInSegmentNote(model.ObjectTypeUser)}
			result.Skips = append(result.Skips, envelope)
			continue
		}
		envelope.Operation = model.OperationInsert
		result.Inserts = append(result.Inserts, envelope)
	}
	report(model.ObjectTypeUser, len(result.Inserts), len(result.Updates), len(result.Skips))
	return result
}

// FilterAccountMessages keeps the accounts that belong to a client or prospect segment.
// Accounts already carrying a CRM id are updates, the rest are inserts.
func (s *SegmentFilterService) FilterAccountMessages(msgs []model.AccountMessage,
	isFullImport bool) model.FilteredEnvelopes[model.AccountMessage] {

	result := model.FilteredEnvelopes[model.AccountMessage]{
		Inserts: []model.Envelope[model.AccountMessage]{},
		Updates: []model.Envelope[model.AccountMessage]{},
		Skips:   []model.Envelope[model.AccountMessage]{},
	}
	for _, msg := range msgs {
		envelope := model.Envelope[model.AccountMessage]{Message: msg, ObjectType: model.ObjectTypeAccount}
		if isFullImport {
			envelope.Notes = []string{batchNote(model.ObjectTypeAccount)}
		} else if !inAnySegment(msg.AccountSegments, s.whitelists.AccountClient) &&
			!inAnySegment(msg.AccountSegments, s.whitelists.AccountProspect) {
			envelope.Operation = model.OperationSkip
			envelope.Notes = []string{notInSegmentNote(model.ObjectTypeAccount)}
			result.Skips = append(result.Skips, envelope)
			continue
		}
		if msg.Account[constants.ServiceIDAttribute] == nil {
			envelope.Operation = model.OperationInsert
			result.Inserts = append(result.Inserts, envelope)
		} else {
			envelope.Operation = model.OperationUpdate
			result.Updates = append(result.Updates, envelope)
		}
	}
	report(model.ObjectTypeAccount, len(result.Inserts), len(result.Updates), len(result.Skips))
	return result
}

func inAnySegment(actual []model.Segment, whitelist []string) bool {
	if len(actual) == 0 || len(whitelist) == 0 {
		return false
	}
	allowed := make(map[string]struct{}, len(whitelist))
	for _, id := range whitelist {
		allowed[id] = struct{}{}
	}
	for _, segment := range actual {
		if _, ok := allowed[segment.ID]; ok {
			return true
		}
	}
	return false
}

func report(objectType model.ObjectType, inserts, updates, skips int) {
	object := string(objectType)
	metrics.RecordFilterDecision(object, string(model.OperationInsert), inserts)
	metrics.RecordFilterDecision(object, string(model.OperationUpdate), updates)
	metrics.RecordFilterDecision(object, string(model.OperationSkip), skips)
	log.GetLogger().Debug("Outbound notifications filtered",
		log.String("objectType", object),
		log.Int("inserts", inserts),
		log.Int("updates", updates),
		log.Int("skips", skips))
}
