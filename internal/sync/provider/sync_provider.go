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

package provider

import (
	fieldProvider "github.com/wso2/crm-customer-data-sync/internal/field_definition/provider"
	mappingService "github.com/wso2/crm-customer-data-sync/internal/mapping/service"
	"github.com/wso2/crm-customer-data-sync/internal/sync/service"
	"github.com/wso2/crm-customer-data-sync/internal/system/client"
	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/resources"
)

// SyncProviderInterface defines the interface for the sync provider.
type SyncProviderInterface interface {
	GetSyncService() service.SyncServiceInterface
	GetStatusService() service.StatusServiceInterface
}

// SyncProvider wires the sync services to the shared clients and the connector settings.
type SyncProvider struct{}

func NewSyncProvider() SyncProviderInterface {
	return &SyncProvider{}
}

func (p *SyncProvider) GetSyncService() service.SyncServiceInterface {
	cfg := config.GetSyncRuntime().Config
	shared := resources.Get()
	return service.NewSyncService(
		shared.CRM,
		shared.Platform,
		fieldProvider.NewFieldDefinitionProvider().GetFieldDefinitionService(),
		mappingService.NewMappingService(cfg.Connector.MappingTables(), cfg.Connector.IdentityTables()),
		shared.SyncRuns,
		shared.RunLock,
		service.SyncSettings{
			Tenant:              cfg.Tenant,
			PageSize:            cfg.CRM.RecordPageSize,
			MaxConcurrentWrites: cfg.Sync.MaxConcurrentWrites,
			ExclusiveRuns:       cfg.Sync.ExclusiveRuns,
		},
	)
}

func (p *SyncProvider) GetStatusService() service.StatusServiceInterface {
	return service.NewStatusService(client.CredentialsFrom(config.GetSyncRuntime().Config.Connector),
		resources.Get().Platform)
}
