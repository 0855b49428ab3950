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
	"github.com/wso2/crm-customer-data-sync/internal/sync_run/service"
	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/resources"
)

type SyncRunProviderInterface interface {
	GetSyncRunService() service.SyncRunServiceInterface
}

type SyncRunProvider struct{}

func NewSyncRunProvider() SyncRunProviderInterface {
	return &SyncRunProvider{}
}

func (p *SyncRunProvider) GetSyncRunService() service.SyncRunServiceInterface {
	return service.NewSyncRunService(resources.Get().SyncRuns, config.GetSyncRuntime().Config.Tenant)
}
