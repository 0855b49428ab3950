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

package workers

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/wso2/crm-customer-data-sync/internal/sync/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync/provider"
	"github.com/wso2/crm-customer-data-sync/internal/sync/service"
	systemContext "github.com/wso2/crm-customer-data-sync/internal/system/context"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/metrics"
)

// FetchQueue accepts fetch jobs for asynchronous processing.
type FetchQueue interface {
	Enqueue(job model.FetchJob) error
}

// SyncWorker runs queued fetch jobs one at a time.
type SyncWorker struct {
	queue   chan model.FetchJob
	service service.SyncServiceInterface
	done    chan struct{}
	mu      sync.RWMutex
	stopped bool
}

// NewSyncWorker creates a worker with a bounded queue. Start must be called to process jobs.
func NewSyncWorker(svc service.SyncServiceInterface, queueSize int) *SyncWorker {
	return &SyncWorker{
		queue:   make(chan model.FetchJob, queueSize),
		service: svc,
		done:    make(chan struct{}),
	}
}

// Start processes jobs until Stop is called.
func (w *SyncWorker) Start() {
	go func() {
		defer close(w.done)
		for job := range w.queue {
			metrics.SetQueueDepth(len(w.queue))
			w.process(job)
		}
	}()
}

// Stop stops accepting jobs and waits for the queued ones to finish.
func (w *SyncWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.queue)
	w.mu.Unlock()
	<-w.done
}

// Enqueue adds a job without blocking. A full queue is reported as a client error.
func (w *SyncWorker) Enqueue(job model.FetchJob) error {

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return errors2.NewClientError(errors2.SYNC_WORKER_STOPPED.WithDescription("The sync worker is stopped."),
			http.StatusServiceUnavailable)
	}
	select {
	case w.queue <- job:
		metrics.SetQueueDepth(len(w.queue))
		return nil
	default:
		log.GetLogger().Error(fmt.Sprintf("Sync queue is full. Cannot enqueue fetch of: %s", job.Kind))
		return errors2.NewClientError(errors2.SYNC_QUEUE_FULL, http.StatusTooManyRequests)
	}
}

func (w *SyncWorker) process(job model.FetchJob) {

	ctx := context.Background()
	if job.TraceID != "" {
		ctx = systemContext.WithTraceID(ctx, job.TraceID)
	}
	logger := log.GetLogger()
	logger.Info(fmt.Sprintf("Processing fetch job for: %s", job.Kind), log.String("recordId", job.RecordID),
		log.String("trigger", job.Trigger))

	if job.RecordID != "" {
		if err := w.service.SyncRecord(ctx, job.Kind, job.RecordID); err != nil {
			logger.Error(fmt.Sprintf("Failed to sync %s record: %s", job.Kind, job.RecordID), log.Error(err))
		}
		return
	}
	if _, err := w.service.FetchAll(ctx, job.Kind, job.Trigger); err != nil {
		logger.Error(fmt.Sprintf("Failed to fetch: %s", job.Kind), log.Error(err))
	}
}

var (
	defaultWorker *SyncWorker
	startOnce     sync.Once
)

// StartSyncWorker starts the process wide worker. Later calls have no effect.
func StartSyncWorker(queueSize int) {
	startOnce.Do(func() {
		defaultWorker = NewSyncWorker(provider.NewSyncProvider().GetSyncService(), queueSize)
		defaultWorker.Start()
	})
}

// GetSyncQueue returns the process wide worker, or nil before StartSyncWorker.
func GetSyncQueue() FetchQueue {
	if defaultWorker == nil {
		return nil
	}
	return defaultWorker
}

// StopSyncWorker drains the process wide worker.
func StopSyncWorker() {
	if defaultWorker != nil {
		defaultWorker.Stop()
	}
}
