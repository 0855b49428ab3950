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

package cli

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/resources"
)

const defaultConfigFile = "/repository/conf/deployment.yaml"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Home       string
	ConfigFile string
}

// NewRootCommand creates the root command of the operator CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "synccli",
		Short: "Operate the CRM customer data sync connector",
		Long: `Run fetches, inspect field listings, connector status and sync history,
and dry-run the outbound segment filter against a notification batch.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Home, "home", "", "connector home directory (defaults to the working directory)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", defaultConfigFile, "deployment file, relative to the home directory")

	cmd.AddCommand(NewFetchCommand(opts))
	cmd.AddCommand(NewFieldsCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewFilterCommand(opts))

	return cmd
}

func (o *RootOptions) home() (string, error) {
	if o.Home != "" {
		return o.Home, nil
	}
	return os.Getwd()
}

// loadConfig reads the deployment file after loading any .env files of the home directory.
func (o *RootOptions) loadConfig() (string, *config.Config, error) {

	home, err := o.home()
	if err != nil {
		return "", nil, errors.Wrap(err, "resolving home directory")
	}
	envFiles, err := filepath.Glob(filepath.Join(home, "config/*.env"))
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	cfg, err := config.LoadConfig(home, o.ConfigFile)
	if err != nil {
		return "", nil, errors.Wrapf(err, "loading %s", o.ConfigFile)
	}
	if err := log.InitWithFormat(cfg.Log.LogLevel, cfg.Log.Format); err != nil {
		return "", nil, err
	}
	return home, cfg, nil
}

// bootstrap prepares the runtime and the shared clients for commands that talk to
// the CRM, the platform or the history store.
func (o *RootOptions) bootstrap() (*config.Config, error) {

	home, cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := config.ValidateConnectorSettings(cfg.Connector); err != nil {
		return nil, err
	}
	if err := config.InitializeSyncRuntime(home, cfg); err != nil {
		return nil, err
	}
	if err := resources.Initialize(*cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func shutdown() {
	if err := resources.Close(); err != nil {
		log.GetLogger().Warn("Failed to release shared resources", log.Error(err))
	}
}
