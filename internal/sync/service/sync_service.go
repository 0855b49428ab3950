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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	fieldModel "github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
	fieldService "github.com/wso2/crm-customer-data-sync/internal/field_definition/service"
	mappingModel "github.com/wso2/crm-customer-data-sync/internal/mapping/model"
	mappingService "github.com/wso2/crm-customer-data-sync/internal/mapping/service"
	runModel "github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync_run/store"
	"github.com/wso2/crm-customer-data-sync/internal/system/client"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	systemContext "github.com/wso2/crm-customer-data-sync/internal/system/context"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/lock"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/metrics"
)

type SyncServiceInterface interface {
	FetchAll(ctx context.Context, kind crmModel.ListKind, trigger string) (*runModel.SyncRun, error)
	SyncRecord(ctx context.Context, kind crmModel.ListKind, recordID string) error
}

// SyncSettings tunes a sync pass.
type SyncSettings struct {
	Tenant              string
	PageSize            int
	MaxConcurrentWrites int
	ExclusiveRuns       bool
}

// SyncService pulls CRM records page by page and writes them to the platform.
type SyncService struct {
	crm         client.CRMClientInterface
	platform    client.PlatformClientInterface
	definitions fieldService.FieldDefinitionServiceInterface
	mapper      mappingService.MappingServiceInterface
	runs        store.SyncRunStoreInterface
	runLock     lock.RunLock
	settings    SyncSettings
}

func NewSyncService(crm client.CRMClientInterface, platform client.PlatformClientInterface,
	definitions fieldService.FieldDefinitionServiceInterface, mapper mappingService.MappingServiceInterface,
	runs store.SyncRunStoreInterface, runLock lock.RunLock, settings SyncSettings) SyncServiceInterface {

	if settings.PageSize <= 0 {
		settings.PageSize = constants.DefaultRecordPageSize
	}
	if settings.MaxConcurrentWrites <= 0 {
		settings.MaxConcurrentWrites = 10
	}
	return &SyncService{
		crm:         crm,
		platform:    platform,
		definitions: definitions,
		mapper:      mapper,
		runs:        runs,
		runLock:     runLock,
		settings:    settings,
	}
}

// catalogs are the field catalogs of one pass: the one of the fetched kind and the
// contact catalog used for contacts embedded in corporations.
type catalogs struct {
	records  *fieldModel.FieldCatalog
	contacts *fieldModel.FieldCatalog
}

// FetchAll runs a full pass over a record list. The custom field catalog is assembled
// before the first record page is requested. Pages are read one after the other and a
// page fails as a whole when any of its writes fails.
func (s *SyncService) FetchAll(ctx context.Context, kind crmModel.ListKind, trigger string) (*runModel.SyncRun, error) {

	objectKind, err := objectKindOf(kind)
	if err != nil {
		return nil, err
	}
	ctx, traceID := systemContext.EnsureTraceID(ctx)
	logger := log.GetLogger().With(log.String("kind", string(kind)), log.String("traceId", traceID))

	if s.settings.ExclusiveRuns && s.runLock != nil {
		lockKey := fmt.Sprintf("%s:%s", s.settings.Tenant, kind)
		acquired, err := s.runLock.Acquire(ctx, lockKey)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, errors2.NewClientError(errors2.SYNC_ALREADY_RUNNING.WithDescription(
				"A fetch of '%s' is already running.", kind), http.StatusConflict)
		}
		defer func() {
			if err := s.runLock.Release(context.Background(), lockKey); err != nil {
				logger.Warn("Failed to release sync lock", log.Error(err))
			}
		}()
	}

	run := runModel.SyncRun{
		RunID:     uuid.New().String(),
		Tenant:    s.settings.Tenant,
		Kind:      string(kind),
		Trigger:   trigger,
		Status:    constants.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	logger = logger.With(log.String("runId", run.RunID))
	if err := s.runs.AddSyncRun(ctx, run); err != nil {
		logger.Warn("Sync run could not be recorded", log.Error(err))
	}
	logger.Info("Sync run started", log.String("trigger", trigger))
	s.audit(log.ActionSyncRunStart, run, traceID)

	err = s.fetchPages(ctx, kind, objectKind, &run, logger)
	s.finish(ctx, &run, err, traceID, logger)
	if err != nil {
		return &run, err
	}
	return &run, nil
}

func (s *SyncService) fetchPages(ctx context.Context, kind crmModel.ListKind, objectKind mappingModel.ObjectKind,
	run *runModel.SyncRun, logger *log.Logger) error {

	passCatalogs, err := s.loadCatalogs(ctx, objectKind)
	if err != nil {
		return err
	}

	maxPages := 1
	for page := 1; page <= maxPages; page++ {
		result := s.crm.GetList(ctx, kind, crmModel.Pagination{PageSize: s.settings.PageSize, PageNum: page})
		if !result.Success || result.Data == nil {
			errorMsg := fmt.Sprintf("Failed to fetch page %d of %s: %s", page, kind, result.Error)
			logger.Error(errorMsg, log.Error(result.ErrorDetails))
			return errors2.NewServerError(errors2.FETCH_CRM_RECORDS.WithDescription("%s", errorMsg), result.ErrorDetails)
		}
		maxPages = int(result.Data.Infos.NumPages)

		records, err := crmModel.DecodeRecords(result.Data.Result)
		if err != nil {
			errorMsg := fmt.Sprintf("Failed to decode page %d of %s", page, kind)
			logger.Error(errorMsg, log.Error(err))
			return errors2.NewServerError(errors2.UNMARSHAL_JSON.WithDescription("%s", errorMsg), err)
		}

		written, err := s.writePage(ctx, objectKind, records, passCatalogs)
		run.Pages++
		run.Records += written
		if err != nil {
			logger.Error(fmt.Sprintf("Page %d of %s failed", page, kind), log.Error(err))
			return err
		}
		logger.Debug("Page synchronized", log.Int("page", page), log.Int("pages", maxPages),
			log.Int("written", written))
	}
	return nil
}

// SyncRecord fetches one record by id and writes it, together with its embedded
// contacts, to the platform.
func (s *SyncService) SyncRecord(ctx context.Context, kind crmModel.ListKind, recordID string) error {

	objectKind, err := objectKindOf(kind)
	if err != nil {
		return err
	}
	ctx, traceID := systemContext.EnsureTraceID(ctx)
	logger := log.GetLogger().With(log.String("kind", string(kind)), log.String("recordId", recordID),
		log.String("traceId", traceID))

	passCatalogs, err := s.loadCatalogs(ctx, objectKind)
	if err != nil {
		return err
	}

	result := s.crm.GetOne(ctx, kind, recordID)
	if !result.Success || result.Data == nil {
		errorMsg := fmt.Sprintf("Failed to fetch %s record %s: %s", kind, recordID, result.Error)
		logger.Error(errorMsg, log.Error(result.ErrorDetails))
		return errors2.NewServerError(errors2.FETCH_CRM_RECORDS.WithDescription("%s", errorMsg), result.ErrorDetails)
	}

	record, err := flattenDetail(kind, *result.Data)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to decode %s record %s", kind, recordID)
		logger.Error(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.UNMARSHAL_JSON.WithDescription("%s", errorMsg), err)
	}

	written, err := s.writePage(ctx, objectKind, []crmModel.Record{record}, passCatalogs)
	if err != nil {
		return err
	}
	logger.Info("Record synchronized", log.Int("written", written))
	return nil
}

func (s *SyncService) loadCatalogs(ctx context.Context, objectKind mappingModel.ObjectKind) (catalogs, error) {

	predicate, ok := fieldModel.SyncApplicability.PredicateFor(string(objectKind))
	if !ok {
		return catalogs{}, unknownKind(string(objectKind))
	}
	customs, err := s.definitions.LoadFieldDefinitions(ctx, predicate)
	if err != nil {
		return catalogs{}, err
	}
	defaults, err := fieldModel.DefaultCatalog(objectKind)
	if err != nil {
		return catalogs{}, err
	}

	logger := log.GetLogger()
	recordCatalog, dropped := fieldModel.NewFieldCatalog(defaults, customs)
	for _, code := range dropped {
		logger.Warn("Custom field dropped, its code is already in use", log.String("code", code),
			log.String("kind", string(objectKind)))
	}
	result := catalogs{records: recordCatalog, contacts: recordCatalog}
	if objectKind != mappingModel.ContactKind {
		result.contacts, _ = fieldModel.NewFieldCatalog(fieldModel.ContactCatalog(), customs)
	}
	return result, nil
}

// writePage maps and writes every record of a page concurrently and waits for all of
// them. It reports how many platform objects were written.
func (s *SyncService) writePage(ctx context.Context, objectKind mappingModel.ObjectKind, records []crmModel.Record,
	passCatalogs catalogs) (int, error) {

	var written int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.MaxConcurrentWrites)

	for _, record := range records {
		g.Go(func() error {
			if err := s.writeRecord(gctx, record, objectKind, "", passCatalogs.records); err != nil {
				return err
			}
			atomic.AddInt64(&written, 1)
			return nil
		})
		if objectKind == mappingModel.ContactKind || !record.IsCorporation() {
			continue
		}
		for _, contact := range record.Contacts {
			parentID := record.ID
			g.Go(func() error {
				if err := s.writeRecord(gctx, contact, mappingModel.ContactKind, parentID, passCatalogs.contacts); err != nil {
					return err
				}
				atomic.AddInt64(&written, 1)
				return nil
			})
		}
	}
	err := g.Wait()
	return int(atomic.LoadInt64(&written)), err
}

func (s *SyncService) writeRecord(ctx context.Context, record crmModel.Record, objectKind mappingModel.ObjectKind,
	parentID string, catalog *fieldModel.FieldCatalog) error {

	claims, procedure, err := s.mapper.ResolveClaims(record, objectKind)
	if err != nil {
		metrics.RecordMappedRecord(string(objectKind), err)
		return err
	}
	attributes, err := s.mapper.MapAttributes(record, objectKind, parentID, catalog)
	metrics.RecordMappedRecord(string(objectKind), err)
	if err != nil {
		return err
	}

	if procedure.IsAccount() {
		err = s.platform.WriteAccount(ctx, claims, attributes)
	} else {
		err = s.platform.WriteUser(ctx, claims, attributes)
	}
	if err != nil {
		return errors.Wrapf(err, "writing %s record %s", objectKind, record.ID)
	}

	// contacts listed on their own carry the id of the linked person record
	if objectKind == mappingModel.ContactKind && parentID == "" && record.LinkedID != "" {
		anonymousID := fmt.Sprintf("%s:%s", constants.ServiceContactNamespace, record.LinkedID)
		if err := s.platform.LinkAnonymousID(ctx, claims, anonymousID); err != nil {
			return errors.Wrapf(err, "linking contact %s", record.ID)
		}
	}
	return nil
}

func (s *SyncService) finish(ctx context.Context, run *runModel.SyncRun, runErr error, traceID string,
	logger *log.Logger) {

	finishedAt := time.Now().UTC()
	run.FinishedAt = &finishedAt
	action := log.ActionSyncRunComplete
	if runErr != nil {
		run.Status = constants.RunStatusFailed
		run.Error = runErr.Error()
		action = log.ActionSyncRunFailed
		logger.Error("Sync run failed", log.Int("pages", run.Pages), log.Int("records", run.Records),
			log.Error(runErr))
	} else {
		run.Status = constants.RunStatusSucceeded
		logger.Info("Sync run completed", log.Int("pages", run.Pages), log.Int("records", run.Records),
			log.Duration("duration", run.Duration()))
	}
	metrics.RecordSyncRun(run.Kind, run.Status, run.Duration())

	// the history is updated even when the caller has gone away
	if err := s.runs.UpdateSyncRun(context.WithoutCancel(ctx), *run); err != nil {
		logger.Warn("Sync run outcome could not be recorded", log.Error(err))
	}
	s.audit(action, *run, traceID)
}

func (s *SyncService) audit(action string, run runModel.SyncRun, traceID string) {
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   run.Trigger,
		InitiatorType: initiatorType(run.Trigger),
		TargetID:      run.RunID,
		TargetType:    run.Kind,
		ActionID:      action,
		TraceID:       traceID,
		Data: map[string]interface{}{
			"tenant":  run.Tenant,
			"status":  run.Status,
			"pages":   run.Pages,
			"records": run.Records,
		},
	})
}

func initiatorType(trigger string) string {
	switch trigger {
	case runModel.TriggerWebhook:
		return log.InitiatorTypeWebhook
	case runModel.TriggerManual, runModel.TriggerCLI:
		return log.InitiatorTypeOperator
	}
	return log.InitiatorTypeSystem
}

func objectKindOf(kind crmModel.ListKind) (mappingModel.ObjectKind, error) {
	switch kind {
	case crmModel.ListClients:
		return mappingModel.ClientKind, nil
	case crmModel.ListProspects:
		return mappingModel.ProspectKind, nil
	case crmModel.ListContacts:
		return mappingModel.ContactKind, nil
	}
	return "", unknownKind(string(kind))
}

func unknownKind(kind string) error {
	return errors2.NewClientError(errors2.UNKNOWN_OBJECT_KIND.WithDescription(
		"Unknown object kind '%s'.", kind), http.StatusBadRequest)
}

func flattenDetail(kind crmModel.ListKind, data json.RawMessage) (crmModel.Record, error) {
	if kind == crmModel.ListContacts {
		return crmModel.FlattenContactDetail(data)
	}
	var detail crmModel.ClientDetail
	if err := gojson.Unmarshal(data, &detail); err != nil {
		return crmModel.Record{}, err
	}
	return crmModel.FlattenClientDetail(detail)
}
