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

package handler

import (
	"net/http"

	"github.com/wso2/crm-customer-data-sync/internal/segment_filter/model"
	"github.com/wso2/crm-customer-data-sync/internal/segment_filter/provider"
	"github.com/wso2/crm-customer-data-sync/internal/segment_filter/service"
	"github.com/wso2/crm-customer-data-sync/internal/system/context"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/utils"
)

type NotificationHandler struct {
	filter service.SegmentFilterServiceInterface
}

func NewNotificationHandler() *NotificationHandler {
	return NewNotificationHandlerWithService(provider.NewSegmentFilterProvider().GetSegmentFilterService())
}

func NewNotificationHandlerWithService(filter service.SegmentFilterServiceInterface) *NotificationHandler {
	return &NotificationHandler{filter: filter}
}

// HandleUserNotifications handles POST /notifications/users.
func (h *NotificationHandler) HandleUserNotifications(w http.ResponseWriter, r *http.Request) {

	var batch model.UserNotificationBatch
	if err := utils.DecodeBody(r.Body, &batch); err != nil {
		utils.WriteBadRequest(w, utils.DescribeDecodeError(err, "user notification"))
		return
	}
	result := h.filter.FilterUserMessages(batch.Messages, batch.IsFullImport)
	auditSkips(r, log.TargetTypeUsers, len(batch.Messages), len(result.Skips))
	utils.WriteJSON(w, http.StatusOK, result)
}

// HandleAccountNotifications handles POST /notifications/accounts.
func (h *NotificationHandler) HandleAccountNotifications(w http.ResponseWriter, r *http.Request) {

	var batch model.AccountNotificationBatch
	if err := utils.DecodeBody(r.Body, &batch); err != nil {
		utils.WriteBadRequest(w, utils.DescribeDecodeError(err, "account notification"))
		return
	}
	result := h.filter.FilterAccountMessages(batch.Messages, batch.IsFullImport)
	auditSkips(r, log.TargetTypeAccounts, len(batch.Messages), len(result.Skips))
	utils.WriteJSON(w, http.StatusOK, result)
}

func auditSkips(r *http.Request, targetType string, received, skipped int) {
	logger := log.GetLogger()
	if skipped > 0 {
		logger.Info("Skipped outbound notifications outside the synchronized segments",
			log.String("targetType", targetType), log.Int("skipped", skipped))
	}
	logger.Audit(log.AuditEvent{
		InitiatorID:   "platform",
		InitiatorType: log.InitiatorTypeSystem,
		TargetID:      targetType,
		TargetType:    targetType,
		ActionID:      log.ActionOutboundFilter,
		TraceID:       context.GetTraceID(r.Context()),
		Data: map[string]int{
			"received": received,
			"skipped":  skipped,
		},
	})
}
