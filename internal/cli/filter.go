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
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wso2/crm-customer-data-sync/internal/segment_filter/model"
	"github.com/wso2/crm-customer-data-sync/internal/segment_filter/service"
)

// NewFilterCommand creates the filter command. It only needs the deployment file and
// never contacts a remote system.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <users|accounts> <batch-file>",
		Short: "Dry-run the outbound segment filter on a notification batch",
		Long: `Read a platform notification batch from a JSON file and print how the
configured segment whitelists classify every message.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectType := args[0]
			if objectType != "users" && objectType != "accounts" {
				return fmt.Errorf("unknown batch type %q: must be users or accounts", objectType)
			}

			_, cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			content, err := os.ReadFile(args[1])
			if err != nil {
				return errors.Wrap(err, "reading batch file")
			}

			svc := service.NewSegmentFilterService(cfg.Connector.SegmentWhitelists())
			if objectType == "users" {
				var batch model.UserNotificationBatch
				if err := json.Unmarshal(content, &batch); err != nil {
					return errors.Wrap(err, "decoding user batch")
				}
				return writeJSON(cmd.OutOrStdout(), svc.FilterUserMessages(batch.Messages, batch.IsFullImport))
			}

			var batch model.AccountNotificationBatch
			if err := json.Unmarshal(content, &batch); err != nil {
				return errors.Wrap(err, "decoding account batch")
			}
			return writeJSON(cmd.OutOrStdout(), svc.FilterAccountMessages(batch.Messages, batch.IsFullImport))
		},
	}
}
