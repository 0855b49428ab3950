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

import "sync"

// SyncRuntime holds the runtime configuration for the sync connector.
type SyncRuntime struct {
	SyncHome string `yaml:"sync_home"`
	Config   Config `yaml:"config"`
}

var (
	runtimeConfig *SyncRuntime
	once          sync.Once
)

// InitializeSyncRuntime initializes the SyncRuntime configuration.
func InitializeSyncRuntime(syncHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &SyncRuntime{
			SyncHome: syncHome,
			Config:   *config,
		}
	})

	return nil
}

// GetSyncRuntime returns the SyncRuntime configuration.
func GetSyncRuntime() *SyncRuntime {

	if runtimeConfig == nil {
		panic("SyncRuntime is not initialized")
	}
	return runtimeConfig
}

// OverrideSyncRuntime replaces the runtime configuration. Used by tests.
func OverrideSyncRuntime(conf Config) {
	runtimeConfig = &SyncRuntime{
		Config: conf,
	}
}
