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
	"fmt"
	"net/http"
	"strings"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync/provider"
	"github.com/wso2/crm-customer-data-sync/internal/sync/service"
	runModel "github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
	systemContext "github.com/wso2/crm-customer-data-sync/internal/system/context"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/utils"
	"github.com/wso2/crm-customer-data-sync/internal/system/workers"
)

type SyncHandler struct {
	queue  workers.FetchQueue
	status service.StatusServiceInterface
}

func NewSyncHandler() *SyncHandler {
	return NewSyncHandlerWith(workers.GetSyncQueue(), provider.NewSyncProvider().GetStatusService())
}

func NewSyncHandlerWith(queue workers.FetchQueue, status service.StatusServiceInterface) *SyncHandler {
	return &SyncHandler{queue: queue, status: status}
}

// TriggerFetch handles POST /fetch/{kind}. The fetch runs on the sync worker.
func (h *SyncHandler) TriggerFetch(w http.ResponseWriter, r *http.Request) {

	kindName := strings.TrimPrefix(strings.TrimSuffix(r.URL.Path, "/"), "/fetch/")
	kind, ok := crmModel.ParseRecordListKind(kindName)
	if !ok {
		utils.HandleError(w, errors2.NewClientError(errors2.UNKNOWN_OBJECT_KIND.WithDescription(
			"Unknown object kind '%s'. Expected one of clients, prospects or contacts.", kindName),
			http.StatusBadRequest))
		return
	}

	job := model.FetchJob{
		Kind:    kind,
		Trigger: runModel.TriggerManual,
		TraceID: systemContext.GetTraceID(r.Context()),
	}
	if err := h.enqueue(job); err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusAccepted, model.FetchAccepted{Kind: string(kind), Status: "queued"})
}

// GetStatus handles GET /status.
func (h *SyncHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.status.DetermineStatus(r.Context()))
}

// HandleWebhook handles POST /webhook. Notifications about a known record queue a
// single record sync; notifications without a record id queue a fetch of the list.
func (h *SyncHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {

	var notification crmModel.WebhookNotification
	if err := utils.DecodeBody(r.Body, &notification); err != nil {
		utils.WriteBadRequest(w, utils.DescribeDecodeError(err, "webhook"))
		return
	}
	kind, ok := notification.ListKind()
	if !ok {
		utils.HandleError(w, errors2.NewClientError(errors2.UNSUPPORTED_WEBHOOK.WithDescription(
			"Related type '%s' is not synchronized.", notification.Notif.RelatedType.String()), http.StatusBadRequest))
		return
	}

	traceID := systemContext.GetTraceID(r.Context())
	job := model.FetchJob{
		Kind:     kind,
		RecordID: notification.Notif.RelatedID.String(),
		Trigger:  runModel.TriggerWebhook,
		TraceID:  traceID,
	}
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   "crm",
		InitiatorType: log.InitiatorTypeWebhook,
		TargetID:      job.RecordID,
		TargetType:    string(kind),
		ActionID:      log.ActionWebhookReceived,
		TraceID:       traceID,
		Data: map[string]string{
			"event":     notification.Notif.Event.String(),
			"eventType": notification.Notif.EventType.String(),
		},
	})
	if err := h.enqueue(job); err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetWebhookURL handles GET /webhook-url and returns the address to register in the CRM.
func (h *SyncHandler) GetWebhookURL(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"url": fmt.Sprintf("https://%s/webhook", r.Host),
	})
}

func (h *SyncHandler) enqueue(job model.FetchJob) error {
	if h.queue == nil {
		return errors2.NewClientError(errors2.SYNC_WORKER_STOPPED.WithDescription("The sync worker is not running."),
			http.StatusServiceUnavailable)
	}
	return h.queue.Enqueue(job)
}
