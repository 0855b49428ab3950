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

	"github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
	"github.com/wso2/crm-customer-data-sync/internal/field_definition/provider"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
)

// NewFieldsCommand creates the fields command and its mapping and identity subcommands.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the CRM fields available for mapping or identity resolution",
	}

	cmd.AddCommand(newFieldListingCommand(rootOpts, "mapping", "List the fields that can be mapped to platform attributes"))
	cmd.AddCommand(newFieldListingCommand(rootOpts, "identity", "List the fields that can resolve platform identities"))

	return cmd
}

func newFieldListingCommand(rootOpts *RootOptions, listing, short string) *cobra.Command {
	var direction string

	cmd := &cobra.Command{
		Use:   listing + " <object-type>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if direction != constants.DirectionIncoming && direction != constants.DirectionOutgoing {
				return fmt.Errorf("invalid direction %q: must be %s or %s", direction,
					constants.DirectionIncoming, constants.DirectionOutgoing)
			}
			if _, err := rootOpts.bootstrap(); err != nil {
				return err
			}
			defer shutdown()

			svc := provider.NewFieldDefinitionProvider().GetFieldListingService()
			var (
				schema model.FieldsSchema
				err    error
			)
			if listing == "identity" {
				schema, err = svc.ListIdentityFields(cmd.Context(), args[0], direction)
			} else {
				schema, err = svc.ListMappingFields(cmd.Context(), args[0], direction)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), schema)
		},
	}

	cmd.Flags().StringVar(&direction, "direction", constants.DirectionIncoming, "mapping direction (incoming|outgoing)")

	return cmd
}
