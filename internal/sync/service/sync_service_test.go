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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	fieldModel "github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
	"github.com/wso2/crm-customer-data-sync/internal/mapping/model"
	runModel "github.com/wso2/crm-customer-data-sync/internal/sync_run/model"
	"github.com/wso2/crm-customer-data-sync/internal/sync_run/store"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/lock"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
)

type mockCRMClient struct {
	mock.Mock
}

func (m *mockCRMClient) GetList(ctx context.Context, kind crmModel.ListKind,
	pagination crmModel.Pagination) *crmModel.ApiResult[crmModel.ListResponse] {
	args := m.Called(kind, pagination.PageNum)
	return args.Get(0).(*crmModel.ApiResult[crmModel.ListResponse])
}

func (m *mockCRMClient) GetOne(ctx context.Context, kind crmModel.ListKind, id string) *crmModel.ApiResult[json.RawMessage] {
	args := m.Called(kind, id)
	return args.Get(0).(*crmModel.ApiResult[json.RawMessage])
}

type mockPlatformClient struct {
	mock.Mock
}

func (m *mockPlatformClient) WriteAccount(ctx context.Context, claims model.IdentityClaims,
	attributes model.NormalizedAttributeSet) error {
	return m.Called(claims, attributes).Error(0)
}

func (m *mockPlatformClient) WriteUser(ctx context.Context, claims model.IdentityClaims,
	attributes model.NormalizedAttributeSet) error {
	return m.Called(claims, attributes).Error(0)
}

func (m *mockPlatformClient) LinkAnonymousID(ctx context.Context, claims model.IdentityClaims, anonymousID string) error {
	return m.Called(claims, anonymousID).Error(0)
}

func (m *mockPlatformClient) PutStatus(ctx context.Context, status string, messages []string) error {
	return m.Called(status, messages).Error(0)
}

type mockDefinitionService struct {
	mock.Mock
}

func (m *mockDefinitionService) LoadFieldDefinitions(ctx context.Context,
	predicate fieldModel.ApplicabilityPredicate) ([]fieldModel.FieldDefinition, error) {
	args := m.Called()
	defs, _ := args.Get(0).([]fieldModel.FieldDefinition)
	return defs, args.Error(1)
}

// mockMapper keys every record by its id so expectations stay readable.
type mockMapper struct {
	mock.Mock
}

func (m *mockMapper) MapAttributes(record crmModel.Record, kind model.ObjectKind, parentID string,
	catalog *fieldModel.FieldCatalog) (model.NormalizedAttributeSet, error) {
	args := m.Called(record.ID, kind, parentID)
	attributes, _ := args.Get(0).(model.NormalizedAttributeSet)
	return attributes, args.Error(1)
}

func (m *mockMapper) ResolveClaims(record crmModel.Record, kind model.ObjectKind) (model.IdentityClaims,
	model.MappingProcedure, error) {
	args := m.Called(record.ID, kind)
	claims, _ := args.Get(0).(model.IdentityClaims)
	return claims, args.Get(1).(model.MappingProcedure), args.Error(2)
}

type syncFixture struct {
	crm         *mockCRMClient
	platform    *mockPlatformClient
	definitions *mockDefinitionService
	mapper      *mockMapper
	runs        store.SyncRunStoreInterface
	runLock     *lock.LocalLock
}

func newSyncFixture() *syncFixture {
	f := &syncFixture{
		crm:         &mockCRMClient{},
		platform:    &mockPlatformClient{},
		definitions: &mockDefinitionService{},
		mapper:      &mockMapper{},
		runs:        store.NewMemorySyncRunStore(),
		runLock:     lock.NewLocalLock(),
	}
	f.definitions.On("LoadFieldDefinitions").Return([]fieldModel.FieldDefinition{}, nil)
	return f
}

func (f *syncFixture) service(exclusive bool) SyncServiceInterface {
	return NewSyncService(f.crm, f.platform, f.definitions, f.mapper, f.runs, f.runLock, SyncSettings{
		Tenant:              "acme.example",
		PageSize:            2,
		MaxConcurrentWrites: 4,
		ExclusiveRuns:       exclusive,
	})
}

func (f *syncFixture) expectRecord(id string, kind model.ObjectKind, parentID string, procedure model.MappingProcedure) {
	claims := model.IdentityClaims{model.IdentityKeyExternalID: id}
	attributes := model.NormalizedAttributeSet{"sellsy/id": id}
	f.mapper.On("ResolveClaims", id, kind).Return(claims, procedure, nil)
	f.mapper.On("MapAttributes", id, kind, parentID).Return(attributes, nil)
}

func listPage(t *testing.T, doc string) *crmModel.ApiResult[crmModel.ListResponse] {
	t.Helper()
	var list crmModel.ListResponse
	require.NoError(t, json.Unmarshal([]byte(doc), &list))
	return crmModel.NewApiSuccess("https://crm.test/0/", http.MethodPost, nil, &list)
}

const (
	clientsPage1 = `{"infos":{"nbpages":2,"pagenum":1},"result":{
		"1":{"id":"1","type":"corporation","fullName":"Acme","contacts":{
			"5":{"id":"5","forename":"Ann","name":"Lee"}}},
		"2":{"id":"2","type":"person","people_forename":"Bob","people_name":"Ray"}}}`
	clientsPage2 = `{"infos":{"nbpages":2,"pagenum":2},"result":{
		"3":{"id":"3","type":"person","people_forename":"Cy","people_name":"Vo"}}}`
	clientsSinglePage = `{"infos":{"nbpages":1,"pagenum":1},"result":{
		"3":{"id":"3","type":"person","people_forename":"Cy","people_name":"Vo"}}}`
	contactsPage = `{"infos":{"nbpages":1,"pagenum":1},"result":{
		"7":{"id":"7","forename":"Dee","name":"Moe","linkedid":"42"},
		"8":{"id":"8","forename":"Eve","name":"Nox"}}}`
)

func TestFetchAllWritesEveryPage(t *testing.T) {

	f := newSyncFixture()
	f.crm.On("GetList", crmModel.ListClients, 1).Return(listPage(t, clientsPage1)).Once()
	f.crm.On("GetList", crmModel.ListClients, 2).Return(listPage(t, clientsPage2)).Once()
	f.expectRecord("1", model.ClientKind, "", model.ClientAccountProcedure)
	f.expectRecord("5", model.ContactKind, "1", model.ContactProcedure)
	f.expectRecord("2", model.ClientKind, "", model.ClientPersonProcedure)
	f.expectRecord("3", model.ClientKind, "", model.ClientPersonProcedure)
	f.platform.On("WriteAccount", mock.Anything, mock.Anything).Return(nil).Once()
	f.platform.On("WriteUser", mock.Anything, mock.Anything).Return(nil).Times(3)

	run, err := f.service(false).FetchAll(context.Background(), crmModel.ListClients, runModel.TriggerManual)

	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, constants.RunStatusSucceeded, run.Status)
	assert.Equal(t, 2, run.Pages)
	assert.Equal(t, 4, run.Records)
	assert.Equal(t, "acme.example", run.Tenant)
	assert.NotNil(t, run.FinishedAt)

	recorded, err := f.runs.GetSyncRun(context.Background(), run.RunID)
	require.NoError(t, err)
	assert.Equal(t, constants.RunStatusSucceeded, recorded.Status)
	assert.Equal(t, 4, recorded.Records)

	f.crm.AssertExpectations(t)
	f.mapper.AssertExpectations(t)
	f.platform.AssertExpectations(t)
	f.platform.AssertNotCalled(t, "LinkAnonymousID", mock.Anything, mock.Anything)
}

func TestFetchAllLinksContactAlias(t *testing.T) {

	f := newSyncFixture()
	f.crm.On("GetList", crmModel.ListContacts, 1).Return(listPage(t, contactsPage)).Once()
	f.expectRecord("7", model.ContactKind, "", model.ContactProcedure)
	f.expectRecord("8", model.ContactKind, "", model.ContactProcedure)
	f.platform.On("WriteUser", mock.Anything, mock.Anything).Return(nil).Twice()
	f.platform.On("LinkAnonymousID", model.IdentityClaims{model.IdentityKeyExternalID: "7"},
		"sellsy-contact:42").Return(nil).Once()

	run, err := f.service(false).FetchAll(context.Background(), crmModel.ListContacts, runModel.TriggerWebhook)

	require.NoError(t, err)
	assert.Equal(t, 1, run.Pages)
	assert.Equal(t, 2, run.Records)
	f.platform.AssertExpectations(t)
}

func TestFetchAllStopsOnPageFailure(t *testing.T) {

	f := newSyncFixture()
	f.crm.On("GetList", crmModel.ListClients, 1).Return(listPage(t, clientsPage1)).Once()
	f.crm.On("GetList", crmModel.ListClients, 2).Return(crmModel.NewApiFailure[crmModel.ListResponse](
		"https://crm.test/0/", http.MethodPost, nil, errors.New("gateway timeout"))).Once()
	f.expectRecord("1", model.ClientKind, "", model.ClientAccountProcedure)
	f.expectRecord("5", model.ContactKind, "1", model.ContactProcedure)
	f.expectRecord("2", model.ClientKind, "", model.ClientPersonProcedure)
	f.platform.On("WriteAccount", mock.Anything, mock.Anything).Return(nil)
	f.platform.On("WriteUser", mock.Anything, mock.Anything).Return(nil)

	run, err := f.service(false).FetchAll(context.Background(), crmModel.ListClients, runModel.TriggerManual)

	require.Error(t, err)
	assert.True(t, errors2.IsServerError(err))
	assert.Contains(t, err.Error(), "gateway timeout")
	require.NotNil(t, run)
	assert.Equal(t, constants.RunStatusFailed, run.Status)
	assert.Equal(t, 1, run.Pages)
	assert.Equal(t, 3, run.Records)

	recorded, getErr := f.runs.GetSyncRun(context.Background(), run.RunID)
	require.NoError(t, getErr)
	assert.Equal(t, constants.RunStatusFailed, recorded.Status)
	assert.NotEmpty(t, recorded.Error)
	f.crm.AssertExpectations(t)
}

func TestFetchAllFailsWhenAWriteFails(t *testing.T) {

	f := newSyncFixture()
	f.crm.On("GetList", crmModel.ListClients, 1).Return(listPage(t, clientsSinglePage)).Once()
	f.expectRecord("3", model.ClientKind, "", model.ClientPersonProcedure)
	f.platform.On("WriteUser", mock.Anything, mock.Anything).Return(errors.New("firehose refused"))

	run, err := f.service(false).FetchAll(context.Background(), crmModel.ListClients, runModel.TriggerCLI)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing client record 3")
	assert.Equal(t, constants.RunStatusFailed, run.Status)
	assert.Equal(t, 0, run.Records)
}

func TestFetchAllRejectsUnknownKind(t *testing.T) {

	f := newSyncFixture()

	run, err := f.service(false).FetchAll(context.Background(), crmModel.ListCustomFields, runModel.TriggerManual)

	assert.Nil(t, run)
	var clientErr *errors2.ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors2.UNKNOWN_OBJECT_KIND.Code, clientErr.Code)
	f.crm.AssertNotCalled(t, "GetList", mock.Anything, mock.Anything)
}

func TestFetchAllExclusiveRunConflict(t *testing.T) {

	f := newSyncFixture()
	acquired, err := f.runLock.Acquire(context.Background(), "acme.example:clients")
	require.NoError(t, err)
	require.True(t, acquired)

	run, err := f.service(true).FetchAll(context.Background(), crmModel.ListClients, runModel.TriggerManual)

	assert.Nil(t, run)
	var clientErr *errors2.ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, http.StatusConflict, clientErr.StatusCode)
	assert.Equal(t, errors2.SYNC_ALREADY_RUNNING.Code, clientErr.Code)

	// once released, the next run goes through and releases the key again
	require.NoError(t, f.runLock.Release(context.Background(), "acme.example:clients"))
	f.crm.On("GetList", crmModel.ListClients, 1).Return(listPage(t, clientsSinglePage)).Once()
	f.expectRecord("3", model.ClientKind, "", model.ClientPersonProcedure)
	f.platform.On("WriteUser", mock.Anything, mock.Anything).Return(nil)

	run, err = f.service(true).FetchAll(context.Background(), crmModel.ListClients, runModel.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, constants.RunStatusSucceeded, run.Status)
	assert.Equal(t, 1, run.Pages)
	f.crm.AssertExpectations(t)

	acquired, err = f.runLock.Acquire(context.Background(), "acme.example:clients")
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestSyncRecordWritesSingleContact(t *testing.T) {

	f := newSyncFixture()
	detail := json.RawMessage(`{"id":"9","forename":"Fay","name":"Orr","linkedid":"77","customFields":[]}`)
	f.crm.On("GetOne", crmModel.ListContacts, "9").Return(
		crmModel.NewApiSuccess("https://crm.test/0/", http.MethodPost, nil, &detail)).Once()
	f.expectRecord("9", model.ContactKind, "", model.ContactProcedure)
	f.platform.On("WriteUser", mock.Anything, mock.Anything).Return(nil).Once()
	f.platform.On("LinkAnonymousID", mock.Anything, "sellsy-contact:77").Return(nil).Once()

	err := f.service(false).SyncRecord(context.Background(), crmModel.ListContacts, "9")

	require.NoError(t, err)
	f.crm.AssertExpectations(t)
	f.platform.AssertExpectations(t)
}

func TestSyncRecordReportsFetchFailure(t *testing.T) {

	f := newSyncFixture()
	f.crm.On("GetOne", crmModel.ListProspects, "4").Return(crmModel.NewApiFailure[json.RawMessage](
		"https://crm.test/0/", http.MethodPost, nil, errors.New("not found"))).Once()

	err := f.service(false).SyncRecord(context.Background(), crmModel.ListProspects, "4")

	require.Error(t, err)
	assert.True(t, errors2.IsServerError(err))
	f.platform.AssertNotCalled(t, "WriteUser", mock.Anything, mock.Anything)
	f.platform.AssertNotCalled(t, "WriteAccount", mock.Anything, mock.Anything)
}
