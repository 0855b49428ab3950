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
	"time"

	"github.com/wso2/crm-customer-data-sync/internal/field_definition/service"
	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/resources"
)

// FieldDefinitionProviderInterface defines the interface for the field definition provider.
type FieldDefinitionProviderInterface interface {
	GetFieldDefinitionService() service.FieldDefinitionServiceInterface
	GetFieldListingService() service.FieldListingServiceInterface
}

// FieldDefinitionProvider wires the services to the shared CRM client and cache.
type FieldDefinitionProvider struct{}

func NewFieldDefinitionProvider() FieldDefinitionProviderInterface {
	return &FieldDefinitionProvider{}
}

func (p *FieldDefinitionProvider) GetFieldDefinitionService() service.FieldDefinitionServiceInterface {
	cfg := config.GetSyncRuntime().Config
	shared := resources.Get()
	return service.NewFieldDefinitionService(shared.CRM, shared.Cache, cfg.Tenant, cfg.CRM.CustomFieldPageSize,
		time.Duration(cfg.Cache.CustomFieldTTLSeconds)*time.Second)
}

func (p *FieldDefinitionProvider) GetFieldListingService() service.FieldListingServiceInterface {
	return service.NewFieldListingService(p.GetFieldDefinitionService())
}
