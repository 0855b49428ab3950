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

package config

import (
	mappingModel "github.com/wso2/crm-customer-data-sync/internal/mapping/model"
	filterModel "github.com/wso2/crm-customer-data-sync/internal/segment_filter/model"
)

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
	Format   string `yaml:"format"`
}

// CRMConfig holds the connection settings of the CRM list API.
type CRMConfig struct {
	Endpoint            string `yaml:"endpoint"`
	RecordPageSize      int    `yaml:"record_page_size"`
	CustomFieldPageSize int    `yaml:"custom_field_page_size"`
	TimeoutSeconds      int    `yaml:"timeout_seconds"`
	MaxRetries          uint64 `yaml:"max_retries"`
}

// PlatformConfig holds the connection settings of the customer data platform.
type PlatformConfig struct {
	Organization   string `yaml:"organization"`
	FirehoseURL    string `yaml:"firehose_url"`
	APIURL         string `yaml:"api_url"`
	ConnectorID    string `yaml:"connector_id"`
	ConnectorToken string `yaml:"connector_secret"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     uint64 `yaml:"max_retries"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	Backend               string      `yaml:"backend"`
	CustomFieldTTLSeconds int         `yaml:"custom_field_ttl_seconds"`
	Redis                 RedisConfig `yaml:"redis"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type MongoDBConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type SyncHistoryConfig struct {
	Backend string `yaml:"backend"`
}

type SyncConfig struct {
	MaxConcurrentWrites int  `yaml:"max_concurrent_writes"`
	QueueSize           int  `yaml:"queue_size"`
	ExclusiveRuns       bool `yaml:"exclusive_runs"`
	LockLeaseSeconds    int  `yaml:"lock_lease_seconds"`
}

// ConnectorConfig carries the per-tenant connector settings: OAuth credentials,
// inbound mapping and identity tables, and outbound segment whitelists.
type ConnectorConfig struct {
	AuthConsumerToken  string `yaml:"auth_consumer_token"`
	AuthConsumerSecret string `yaml:"auth_consumer_secret"`
	AuthUserToken      string `yaml:"auth_user_token"`
	AuthUserSecret     string `yaml:"auth_user_secret"`

	MappingInProspectAccount []mappingModel.MappingEntry `yaml:"mapping_in_prospect_account"`
	MappingInProspectPerson  []mappingModel.MappingEntry `yaml:"mapping_in_prospect_person"`
	MappingInClientAccount   []mappingModel.MappingEntry `yaml:"mapping_in_client_account"`
	MappingInClientPerson    []mappingModel.MappingEntry `yaml:"mapping_in_client_person"`
	MappingInContact         []mappingModel.MappingEntry `yaml:"mapping_in_contact"`

	IdentityInCorporation []mappingModel.IdentityMappingEntry `yaml:"identity_in_corporation"`
	IdentityInPerson      []mappingModel.IdentityMappingEntry `yaml:"identity_in_person"`
	IdentityInContact     []mappingModel.IdentityMappingEntry `yaml:"identity_in_contact"`

	AccountProspectSegments []string `yaml:"account_prospect_synchronized_segments"`
	AccountClientSegments   []string `yaml:"account_client_synchronized_segments"`
	UserProspectSegments    []string `yaml:"user_prospect_synchronized_segments"`
	UserClientSegments      []string `yaml:"user_client_synchronized_segments"`
	UserContactSegments     []string `yaml:"user_contact_synchronized_segments"`
}

// MappingTables returns the inbound attribute mapping tables.
func (c ConnectorConfig) MappingTables() mappingModel.MappingTables {
	return mappingModel.MappingTables{
		ClientAccount:   c.MappingInClientAccount,
		ClientPerson:    c.MappingInClientPerson,
		ProspectAccount: c.MappingInProspectAccount,
		ProspectPerson:  c.MappingInProspectPerson,
		Contact:         c.MappingInContact,
	}
}

// IdentityTables returns the inbound identity resolution tables.
func (c ConnectorConfig) IdentityTables() mappingModel.IdentityTables {
	return mappingModel.IdentityTables{
		Corporation: c.IdentityInCorporation,
		Person:      c.IdentityInPerson,
		Contact:     c.IdentityInContact,
	}
}

// SegmentWhitelists returns the outbound segment whitelists.
func (c ConnectorConfig) SegmentWhitelists() filterModel.SegmentWhitelists {
	return filterModel.SegmentWhitelists{
		AccountProspect: c.AccountProspectSegments,
		AccountClient:   c.AccountClientSegments,
		UserProspect:    c.UserProspectSegments,
		UserClient:      c.UserClientSegments,
		UserContact:     c.UserContactSegments,
	}
}

type Config struct {
	Addr        AddrConfig        `yaml:"addr"`
	Log         LogConfig         `yaml:"log"`
	Tenant      string            `yaml:"tenant"`
	CRM         CRMConfig         `yaml:"crm"`
	Platform    PlatformConfig    `yaml:"platform"`
	Cache       CacheConfig       `yaml:"cache"`
	DataSource  DataSourceConfig  `yaml:"datasource"`
	SyncHistory SyncHistoryConfig `yaml:"sync_history"`
	MongoDB     MongoDBConfig     `yaml:"mongodb"`
	Sync        SyncConfig        `yaml:"sync"`
	Connector   ConnectorConfig   `yaml:"connector"`
}
