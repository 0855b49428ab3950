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
	"fmt"
	"time"

	"github.com/wso2/crm-customer-data-sync/internal/system/cache"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/provider"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) error
}

// ReadinessCheck probes one dependency of the connector.
type ReadinessCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthCheckService runs the readiness checks in order and stops at the first failure.
type HealthCheckService struct {
	checks []ReadinessCheck
}

func NewHealthCheckService(checks ...ReadinessCheck) HealthCheckServiceInterface {
	return &HealthCheckService{checks: checks}
}

func (h *HealthCheckService) CheckReadiness(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			log.GetLogger().Warn("Readiness check failed", log.String("check", check.Name), log.Error(err))
			return fmt.Errorf("%s check failed: %v", check.Name, err)
		}
	}
	return nil
}

// CacheCheck verifies the custom field cache answers a lookup.
func CacheCheck(c cache.CacheInterface) ReadinessCheck {
	return ReadinessCheck{
		Name: "cache",
		Probe: func(ctx context.Context) error {
			_, err := c.GetOrCompute(ctx, "readiness_probe", time.Second, func(context.Context) ([]byte, error) {
				return []byte("ok"), nil
			})
			return err
		},
	}
}

// DatabaseCheck verifies the run history database is reachable.
func DatabaseCheck(dbProvider provider.DBProviderInterface) ReadinessCheck {
	return ReadinessCheck{
		Name: "database",
		Probe: func(ctx context.Context) error {
			dbClient, err := dbProvider.GetDBClient()
			if err != nil {
				return fmt.Errorf("failed to create database client: %v", err)
			}
			defer dbClient.Close()

			// Perform a lightweight query to ensure DB connectivity.
			if _, err = dbClient.ExecuteQuery(ctx, "SELECT 1;"); err != nil {
				return fmt.Errorf("database connectivity check failed: %v", err)
			}
			return nil
		},
	}
}
