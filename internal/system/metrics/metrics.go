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

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	namespace = "crm_sync"

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by backend and result (hit or miss)",
		},
		[]string{"backend", "result"},
	)

	crmRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crm",
			Name:      "requests_total",
			Help:      "CRM API calls by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	crmRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "crm",
			Name:      "request_duration_seconds",
			Help:      "CRM API call latency including retries",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	platformWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "platform",
			Name:      "writes_total",
			Help:      "Platform trait and alias writes by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	recordsMapped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "records_total",
			Help:      "CRM records processed by object kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	syncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Fetch passes by object kind and final status",
		},
		[]string{"kind", "status"},
	)

	syncRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "run_duration_seconds",
			Help:      "Duration of a full fetch pass",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"kind"},
	)

	filterDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "filter",
			Name:      "decisions_total",
			Help:      "Outbound segment filter decisions by object type and decision",
		},
		[]string{"object", "decision"},
	)

	queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "queue_depth",
			Help:      "Fetch jobs waiting in the sync worker queue",
		},
	)
)

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func RecordCacheLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(backend, result).Inc()
}

func RecordCRMRequest(method string, started time.Time, err error) {
	crmRequests.WithLabelValues(method, outcome(err)).Inc()
	crmRequestDuration.WithLabelValues(method).Observe(time.Since(started).Seconds())
}

func RecordPlatformWrite(writeType string, err error) {
	platformWrites.WithLabelValues(writeType, outcome(err)).Inc()
}

func RecordMappedRecord(kind string, err error) {
	recordsMapped.WithLabelValues(kind, outcome(err)).Inc()
}

func RecordSyncRun(kind, status string, duration time.Duration) {
	syncRuns.WithLabelValues(kind, status).Inc()
	syncRunDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func RecordFilterDecision(object, decision string, count int) {
	filterDecisions.WithLabelValues(object, decision).Add(float64(count))
}

func SetQueueDepth(depth int) {
	queueDepth.Set(float64(depth))
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
