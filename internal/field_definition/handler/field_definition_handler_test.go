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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
)

type mockListingService struct {
	mock.Mock
}

func (m *mockListingService) ListMappingFields(ctx context.Context, objectType, direction string) (model.FieldsSchema, error) {
	args := m.Called(ctx, objectType, direction)
	return args.Get(0).(model.FieldsSchema), args.Error(1)
}

func (m *mockListingService) ListIdentityFields(ctx context.Context, objectType, direction string) (model.FieldsSchema, error) {
	args := m.Called(ctx, objectType, direction)
	return args.Get(0).(model.FieldsSchema), args.Error(1)
}

func TestListMappingFields_DefaultsToIncoming(t *testing.T) {
	listing := &mockListingService{}
	listing.On("ListMappingFields", mock.Anything, "client", "incoming").Return(model.FieldsSchema{
		OK:      true,
		Options: []model.FieldOption{{Value: "name", Label: "Name"}},
	}, nil)
	h := NewFieldDefinitionHandlerWithService(listing)

	rec := httptest.NewRecorder()
	h.ListMappingFields(rec, httptest.NewRequest(http.MethodGet, "/fields/mapping?objectType=client", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var schema model.FieldsSchema
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	assert.True(t, schema.OK)
	assert.Equal(t, "name", schema.Options[0].Value)
	listing.AssertExpectations(t)
}

func TestListIdentityFields_PassesDirection(t *testing.T) {
	listing := &mockListingService{}
	listing.On("ListIdentityFields", mock.Anything, "contact", "outgoing").Return(model.FieldsSchema{OK: true}, nil)
	h := NewFieldDefinitionHandlerWithService(listing)

	rec := httptest.NewRecorder()
	h.ListIdentityFields(rec, httptest.NewRequest(http.MethodGet, "/fields/identity?objectType=contact&direction=outgoing", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	listing.AssertExpectations(t)
}

func TestListMappingFields_RejectsUnknownDirection(t *testing.T) {
	listing := &mockListingService{}
	h := NewFieldDefinitionHandlerWithService(listing)

	rec := httptest.NewRecorder()
	h.ListMappingFields(rec, httptest.NewRequest(http.MethodGet, "/fields/mapping?objectType=client&direction=sideways", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CSYNC-11004")
	listing.AssertNotCalled(t, "ListMappingFields", mock.Anything, mock.Anything, mock.Anything)
}
