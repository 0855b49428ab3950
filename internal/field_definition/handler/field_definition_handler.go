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

package handler

import (
	"net/http"

	"github.com/wso2/crm-customer-data-sync/internal/field_definition/provider"
	"github.com/wso2/crm-customer-data-sync/internal/field_definition/service"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/utils"
)

type FieldDefinitionHandler struct {
	listing service.FieldListingServiceInterface
}

func NewFieldDefinitionHandler() *FieldDefinitionHandler {
	return NewFieldDefinitionHandlerWithService(provider.NewFieldDefinitionProvider().GetFieldListingService())
}

func NewFieldDefinitionHandlerWithService(listing service.FieldListingServiceInterface) *FieldDefinitionHandler {
	return &FieldDefinitionHandler{listing: listing}
}

// ListMappingFields handles GET /fields/mapping?objectType=&direction=.
func (h *FieldDefinitionHandler) ListMappingFields(w http.ResponseWriter, r *http.Request) {
	objectType, direction, ok := listingParams(w, r)
	if !ok {
		return
	}
	schema, err := h.listing.ListMappingFields(r.Context(), objectType, direction)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, schema)
}

// ListIdentityFields handles GET /fields/identity?objectType=&direction=.
func (h *FieldDefinitionHandler) ListIdentityFields(w http.ResponseWriter, r *http.Request) {
	objectType, direction, ok := listingParams(w, r)
	if !ok {
		return
	}
	schema, err := h.listing.ListIdentityFields(r.Context(), objectType, direction)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, schema)
}

func listingParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	query := r.URL.Query()
	objectType := query.Get("objectType")
	direction := query.Get("direction")
	if direction == "" {
		direction = constants.DirectionIncoming
	}
	if direction != constants.DirectionIncoming && direction != constants.DirectionOutgoing {
		utils.HandleError(w, errors2.NewClientError(errors2.INVALID_DIRECTION, http.StatusBadRequest))
		return "", "", false
	}
	return objectType, direction, true
}
