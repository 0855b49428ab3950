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

	"github.com/spf13/cobra"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync/provider"
	runModel "github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
	systemContext "github.com/wso2/crm-customer-data-sync/internal/system/context"
)

// NewFetchCommand creates the fetch command.
func NewFetchCommand(rootOpts *RootOptions) *cobra.Command {
	var recordID string

	cmd := &cobra.Command{
		Use:   "fetch <clients|prospects|contacts>",
		Short: "Fetch a CRM record list and write it to the platform",
		Long: `Fetch every page of a CRM record list and write the records to the platform.
The run is executed in the foreground and recorded in the sync history.
With --record only the given record is fetched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := crmModel.ParseRecordListKind(args[0])
			if !ok {
				return fmt.Errorf("unknown object kind %q: must be one of clients, prospects or contacts", args[0])
			}
			if _, err := rootOpts.bootstrap(); err != nil {
				return err
			}
			defer shutdown()

			ctx := systemContext.WithTraceID(cmd.Context(), systemContext.GenerateTraceID())
			svc := provider.NewSyncProvider().GetSyncService()
			if recordID != "" {
				if err := svc.SyncRecord(ctx, kind, recordID); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s record %s synchronized\n", kind, recordID)
				return err
			}

			run, err := svc.FetchAll(ctx, kind, runModel.TriggerCLI)
			if run != nil {
				if writeErr := writeJSON(cmd.OutOrStdout(), run); writeErr != nil {
					return writeErr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&recordID, "record", "", "fetch a single record by id")

	return cmd
}
