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
	"os"
	"path"
	"regexp"

	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	"gopkg.in/yaml.v2"
)

// envReference matches ${NAME} only. Bare $names are mapping sentinels such as
// $smartTags and $customfield.<code> and must survive untouched.
var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadConfig reads the deployment file, expands environment references and applies defaults.
func LoadConfig(syncHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(syncHome, filePath))
	if err != nil {
		return nil, err
	}
	return ParseConfig(file)
}

// ParseConfig decodes a deployment document.
func ParseConfig(content []byte) (*Config, error) {

	expanded := envReference.ReplaceAllFunc(content, func(ref []byte) []byte {
		return []byte(os.Getenv(string(ref[2 : len(ref)-1])))
	})

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {

	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "INFO"
	}
	if cfg.CRM.Endpoint == "" {
		cfg.CRM.Endpoint = "https://apifeed.sellsy.com/0/"
	}
	if cfg.CRM.RecordPageSize <= 0 {
		cfg.CRM.RecordPageSize = constants.DefaultRecordPageSize
	}
	if cfg.CRM.CustomFieldPageSize <= 0 {
		cfg.CRM.CustomFieldPageSize = constants.DefaultCustomFieldPageSize
	}
	if cfg.CRM.TimeoutSeconds <= 0 {
		cfg.CRM.TimeoutSeconds = 30
	}
	if cfg.CRM.MaxRetries == 0 {
		cfg.CRM.MaxRetries = 3
	}
	if cfg.Platform.MaxRetries == 0 {
		cfg.Platform.MaxRetries = 3
	}
	if cfg.Platform.TimeoutSeconds <= 0 {
		cfg.Platform.TimeoutSeconds = 30
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = constants.CacheBackendMemory
	}
	if cfg.Cache.CustomFieldTTLSeconds <= 0 {
		cfg.Cache.CustomFieldTTLSeconds = 5 * 60
	}
	if cfg.SyncHistory.Backend == "" {
		cfg.SyncHistory.Backend = constants.HistoryBackendMemory
	}
	if cfg.MongoDB.Collection == "" {
		cfg.MongoDB.Collection = constants.SyncRunTable
	}
	if cfg.Sync.MaxConcurrentWrites <= 0 {
		cfg.Sync.MaxConcurrentWrites = 10
	}
	if cfg.Sync.QueueSize <= 0 {
		cfg.Sync.QueueSize = 100
	}
	if cfg.Sync.LockLeaseSeconds <= 0 {
		cfg.Sync.LockLeaseSeconds = 30 * 60
	}
}
