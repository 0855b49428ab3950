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

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/provider"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/scripts"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

// PostgresSyncRunStore keeps the run history in the sync_runs table.
type PostgresSyncRunStore struct {
	dbProvider provider.DBProviderInterface
}

func NewPostgresSyncRunStore(dbProvider provider.DBProviderInterface) SyncRunStoreInterface {
	return &PostgresSyncRunStore{dbProvider: dbProvider}
}

// AddSyncRun inserts a run when it starts.
func (s *PostgresSyncRunStore) AddSyncRun(ctx context.Context, run model.SyncRun) error {

	dbClient, err := s.dbProvider.GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding sync run: %s", run.RunID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.DB_CLIENT_INIT.WithDescription("%s", errorMsg), err)
	}
	defer dbClient.Close()

	query := scripts.InsertSyncRun[s.dbProvider.GetDBType()]
	_, err = dbClient.Execute(ctx, query, run.RunID, run.Tenant, run.Kind, run.Trigger, run.Status, run.Pages,
		run.Records, run.Error, run.StartedAt, run.FinishedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding sync run: %s", run.RunID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ADD_SYNC_RUN.WithDescription("%s", errorMsg), err)
	}

	logger.Debug(fmt.Sprintf("Sync run %s recorded", run.RunID))
	return nil
}

// UpdateSyncRun stores the outcome and counters of a run.
func (s *PostgresSyncRunStore) UpdateSyncRun(ctx context.Context, run model.SyncRun) error {

	dbClient, err := s.dbProvider.GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating sync run: %s", run.RunID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.DB_CLIENT_INIT.WithDescription("%s", errorMsg), err)
	}
	defer dbClient.Close()

	query := scripts.UpdateSyncRun[s.dbProvider.GetDBType()]
	affected, err := dbClient.Execute(ctx, query, run.Status, run.Pages, run.Records, run.Error, run.FinishedAt, run.RunID)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating sync run: %s", run.RunID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.UPDATE_SYNC_RUN.WithDescription("%s", errorMsg), err)
	}
	if affected == 0 {
		logger.Warn(fmt.Sprintf("No sync run found to update for run_id: %s", run.RunID))
	}
	return nil
}

// GetSyncRun fetches a run by id. A missing run yields nil without an error.
func (s *PostgresSyncRunStore) GetSyncRun(ctx context.Context, runID string) (*model.SyncRun, error) {

	runs, err := s.query(ctx, fmt.Sprintf("sync run %s", runID), scripts.GetSyncRunById, runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		log.GetLogger().Debug(fmt.Sprintf("No sync run found for run_id: %s", runID))
		return nil, nil
	}
	return &runs[0], nil
}

// GetRecentSyncRuns fetches the newest runs of a tenant.
func (s *PostgresSyncRunStore) GetRecentSyncRuns(ctx context.Context, tenant, kind string, limit int) ([]model.SyncRun, error) {

	description := fmt.Sprintf("recent sync runs of tenant %s", tenant)
	if kind == "" {
		return s.query(ctx, description, scripts.GetRecentSyncRuns, tenant, limit)
	}
	return s.query(ctx, description, scripts.GetRecentSyncRunsByKind, tenant, kind, limit)
}

func (s *PostgresSyncRunStore) query(ctx context.Context, description string, queries map[string]string,
	args ...interface{}) ([]model.SyncRun, error) {

	dbClient, err := s.dbProvider.GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching %s", description)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.DB_CLIENT_INIT.WithDescription("%s", errorMsg), err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(ctx, queries[s.dbProvider.GetDBType()], args...)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching %s", description)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.FETCH_SYNC_RUNS.WithDescription("%s", errorMsg), err)
	}

	runs := make([]model.SyncRun, 0, len(results))
	for _, row := range results {
		runs = append(runs, scanSyncRun(row))
	}
	return runs, nil
}

func scanSyncRun(row map[string]interface{}) model.SyncRun {
	run := model.SyncRun{
		RunID:   columnString(row["run_id"]),
		Tenant:  columnString(row["tenant_id"]),
		Kind:    columnString(row["kind"]),
		Trigger: columnString(row["trigger"]),
		Status:  columnString(row["status"]),
		Pages:   columnInt(row["pages"]),
		Records: columnInt(row["records"]),
		Error:   columnString(row["error"]),
	}
	if startedAt, ok := row["started_at"].(time.Time); ok {
		run.StartedAt = startedAt.UTC()
	}
	if finishedAt, ok := row["finished_at"].(time.Time); ok {
		finished := finishedAt.UTC()
		run.FinishedAt = &finished
	}
	return run
}

func columnString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case []byte:
		return string(value)
	}
	return ""
}

func columnInt(v interface{}) int {
	switch value := v.(type) {
	case int64:
		return int(value)
	case int32:
		return int(value)
	case int:
		return value
	}
	return 0
}
