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

package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/crm-customer-data-sync/internal/system/database/provider"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/scripts"
	"github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

// RunLock keeps two sync runs of the same key from overlapping.
type RunLock interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// PostgresLock implements RunLock with a lease row per key, so that several connector
// replicas sharing a database never fetch the same object kind at once.
type PostgresLock struct {
	owner string
	lease time.Duration
}

func NewPostgresLock(lease time.Duration) *PostgresLock {
	return &PostgresLock{
		owner: uuid.New().String(),
		lease: lease,
	}
}

func (l *PostgresLock) Acquire(ctx context.Context, key string) (bool, error) {

	logger := log.GetLogger()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := "Failed during DB client creation for sync lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.DB_CLIENT_INIT.WithDescription("%s", errorMsg), err)
	}
	defer dbClient.Close()

	expiresAt := time.Now().UTC().Add(l.lease)
	affected, err := dbClient.Execute(ctx, scripts.AcquireSyncLock["postgres"], key, l.owner, expiresAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to acquire sync lock '%s'", key)
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.SYNC_LOCK_ACQUIRE.WithDescription("%s", errorMsg), err)
	}
	logger.Debug("Sync lock attempted", log.String("key", key), log.Bool("acquired", affected == 1))
	return affected == 1, nil
}

func (l *PostgresLock) Release(ctx context.Context, key string) error {

	logger := log.GetLogger()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := "Failed during DB client creation for sync lock releasing."
		logger.Error(errorMsg, log.Error(err))
		return errors.NewServerError(errors.DB_CLIENT_INIT.WithDescription("%s", errorMsg), err)
	}
	defer dbClient.Close()

	if _, err := dbClient.Execute(ctx, scripts.ReleaseSyncLock["postgres"], key, l.owner); err != nil {
		errorMsg := fmt.Sprintf("Failed to release sync lock '%s'", key)
		logger.Error(errorMsg, log.Error(err))
		return errors.NewServerError(errors.SYNC_LOCK_RELEASE.WithDescription("%s", errorMsg), err)
	}
	logger.Debug("Sync lock released", log.String("key", key))
	return nil
}

// LocalLock implements RunLock within a single process.
type LocalLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLock() *LocalLock {
	return &LocalLock{held: map[string]struct{}{}}
}

func (l *LocalLock) Acquire(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = struct{}{}
	return true, nil
}

func (l *LocalLock) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}
