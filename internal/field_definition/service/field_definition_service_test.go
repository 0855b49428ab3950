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

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	"github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/cache"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
)

type mockCRMClient struct {
	mock.Mock
}

func (m *mockCRMClient) GetList(ctx context.Context, kind crmModel.ListKind,
	pagination crmModel.Pagination) *crmModel.ApiResult[crmModel.ListResponse] {
	args := m.Called(kind, pagination)
	return args.Get(0).(*crmModel.ApiResult[crmModel.ListResponse])
}

func (m *mockCRMClient) GetOne(ctx context.Context, kind crmModel.ListKind, id string) *crmModel.ApiResult[json.RawMessage] {
	args := m.Called(kind, id)
	return args.Get(0).(*crmModel.ApiResult[json.RawMessage])
}

func listPage(t *testing.T, doc string) *crmModel.ApiResult[crmModel.ListResponse] {
	t.Helper()
	var list crmModel.ListResponse
	require.NoError(t, json.Unmarshal([]byte(doc), &list))
	return crmModel.NewApiSuccess("https://crm.test/0/", "POST", nil, &list)
}

const (
	customFieldsPage1 = `{"infos":{"nbpages":2},"result":{
		"11":{"id":"11","code":"tier","name":"Tier","type":"select","rank":"2","useOn_client":"Y","useOn_prospect":"N","useOn_people":"N"},
		"12":{"id":"12","code":"region","name":"Region","type":"simpletext","rank":"1","useOn_prospect":"Y"},
		"13":{"id":"13","code":"sig","name":"Signature","type":"signature","rank":"1","useOn_client":"Y"}}}`
	customFieldsPage2 = `{"infos":{"nbpages":2},"result":{
		"12":{"id":"12","code":"region","name":"Region","type":"simpletext","rank":"1","useOn_prospect":"Y"},
		"21":{"id":"21","code":"birthday","name":"Birthday","type":"date","rank":"1","useOn_people":"Y"},
		"22":{"id":"22","code":"tier","name":"Tier again","type":"numeric","rank":"9","useOn_client":"Y"}}}`
)

func pageRequest(page int) crmModel.Pagination {
	return crmModel.Pagination{PageSize: 100, PageNum: page}
}

func newDefinitionService(crm *mockCRMClient) FieldDefinitionServiceInterface {
	return NewFieldDefinitionService(crm, cache.NewMemoryCache(time.Minute), "tenant", 100, time.Minute)
}

func TestLoadFieldDefinitionsMergesPages(t *testing.T) {

	crm := &mockCRMClient{}
	crm.On("GetList", crmModel.ListCustomFields, pageRequest(1)).Return(listPage(t, customFieldsPage1)).Once()
	crm.On("GetList", crmModel.ListCustomFields, pageRequest(2)).Return(listPage(t, customFieldsPage2)).Once()

	defs, err := newDefinitionService(crm).LoadFieldDefinitions(context.Background(), nil)

	require.NoError(t, err)
	codes := make([]string, 0, len(defs))
	for _, def := range defs {
		codes = append(codes, def.Code)
		assert.False(t, def.IsDefault)
		assert.False(t, def.ReadOnly)
	}
	// unknown "signature" type is left out, the second "tier" ranks later and is dropped
	assert.Equal(t, []string{"birthday", "region", "tier"}, codes)
	assert.Equal(t, model.FieldTypeSelect, defs[2].Type)
	crm.AssertExpectations(t)
}

func TestLoadFieldDefinitionsAppliesPredicate(t *testing.T) {

	crm := &mockCRMClient{}
	crm.On("GetList", crmModel.ListCustomFields, pageRequest(1)).Return(listPage(t, customFieldsPage1))
	crm.On("GetList", crmModel.ListCustomFields, pageRequest(2)).Return(listPage(t, customFieldsPage2))
	svc := newDefinitionService(crm)

	clients, _ := model.SyncApplicability.PredicateFor("client")
	defs, err := svc.LoadFieldDefinitions(context.Background(), clients)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "birthday", defs[0].Code)
	assert.Equal(t, "tier", defs[1].Code)

	contacts, _ := model.SyncApplicability.PredicateFor("contact")
	defs, err = svc.LoadFieldDefinitions(context.Background(), contacts)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "birthday", defs[0].Code)

	// both loads were served by two CRM calls thanks to the page cache
	crm.AssertNumberOfCalls(t, "GetList", 2)
}

func TestLoadFieldDefinitionsFailsOnAnyPage(t *testing.T) {

	crm := &mockCRMClient{}
	crm.On("GetList", crmModel.ListCustomFields, pageRequest(1)).Return(listPage(t, customFieldsPage1))
	crm.On("GetList", crmModel.ListCustomFields, pageRequest(2)).Return(
		crmModel.NewApiFailure[crmModel.ListResponse]("https://crm.test/0/", "POST", nil, errors.New("timeout")))

	defs, err := newDefinitionService(crm).LoadFieldDefinitions(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, defs)
	assert.True(t, errors2.IsServerError(err))
	assert.Contains(t, err.Error(), "timeout")
}

func TestLoadFieldDefinitionsSinglePage(t *testing.T) {

	crm := &mockCRMClient{}
	crm.On("GetList", crmModel.ListCustomFields, pageRequest(1)).Return(listPage(t, `{"infos":{"nbpages":1},"result":[]}`))

	defs, err := newDefinitionService(crm).LoadFieldDefinitions(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, defs)
	crm.AssertNumberOfCalls(t, "GetList", 1)
}
