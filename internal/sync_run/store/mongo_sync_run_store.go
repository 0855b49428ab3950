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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

const mongoTimeout = 5 * time.Second

// MongoSyncRunStore keeps the run history in a MongoDB collection.
type MongoSyncRunStore struct {
	Collection *mongo.Collection
}

func NewMongoSyncRunStore(db *mongo.Database, collectionName string) SyncRunStoreInterface {
	return &MongoSyncRunStore{
		Collection: db.Collection(collectionName),
	}
}

func (s *MongoSyncRunStore) AddSyncRun(ctx context.Context, run model.SyncRun) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	if _, err := s.Collection.InsertOne(ctx, run); err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding sync run: %s", run.RunID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ADD_SYNC_RUN.WithDescription("%s", errorMsg), err)
	}
	return nil
}

func (s *MongoSyncRunStore) UpdateSyncRun(ctx context.Context, run model.SyncRun) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":      run.Status,
		"pages":       run.Pages,
		"records":     run.Records,
		"error":       run.Error,
		"finished_at": run.FinishedAt,
	}}
	if _, err := s.Collection.UpdateOne(ctx, bson.M{"run_id": run.RunID}, update); err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating sync run: %s", run.RunID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.UPDATE_SYNC_RUN.WithDescription("%s", errorMsg), err)
	}
	return nil
}

func (s *MongoSyncRunStore) GetSyncRun(ctx context.Context, runID string) (*model.SyncRun, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var run model.SyncRun
	err := s.Collection.FindOne(ctx, bson.M{"run_id": runID}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching sync run: %s", runID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.FETCH_SYNC_RUNS.WithDescription("%s", errorMsg), err)
	}
	return &run, nil
}

func (s *MongoSyncRunStore) GetRecentSyncRuns(ctx context.Context, tenant, kind string, limit int) ([]model.SyncRun, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	filter := bson.M{"tenant": tenant}
	if kind != "" {
		filter["kind"] = kind
	}
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}).SetLimit(int64(limit))
	cursor, err := s.Collection.Find(ctx, filter, opts)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching recent sync runs of tenant: %s", tenant)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.FETCH_SYNC_RUNS.WithDescription("%s", errorMsg), err)
	}
	defer cursor.Close(ctx)

	runs := []model.SyncRun{}
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, errors2.NewServerError(errors2.FETCH_SYNC_RUNS, err)
	}
	return runs, nil
}
