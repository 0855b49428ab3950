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

package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/config"
)

const crmHost = "https://crm.test"

func newTestCRMClient(retries uint64) *CRMClient {
	return NewCRMClient(config.CRMConfig{
		Endpoint:       crmHost + "/0/",
		TimeoutSeconds: 5,
		MaxRetries:     retries,
	}, config.ConnectorConfig{
		AuthConsumerToken:  "ck",
		AuthConsumerSecret: "cs&1",
		AuthUserToken:      "ut",
		AuthUserSecret:     "us",
	})
}

// matchMethod checks the CRM method and page carried in the do_in form value.
func matchMethod(method string, page int) gock.MatchFunc {
	return func(req *http.Request, _ *gock.Request) (bool, error) {
		if err := req.ParseForm(); err != nil {
			return false, err
		}
		if req.PostForm.Get("request") != "1" || req.PostForm.Get("io_mode") != "json" {
			return false, nil
		}
		var body struct {
			Method string `json:"method"`
			Params struct {
				Pagination crmModel.Pagination `json:"pagination"`
			} `json:"params"`
		}
		if err := gojson.Unmarshal([]byte(req.PostForm.Get("do_in")), &body); err != nil {
			return false, err
		}
		return body.Method == method && (page == 0 || body.Params.Pagination.PageNum == page), nil
	}
}

func TestCRMClientGetList(t *testing.T) {
	defer gock.Off()

	gock.New(crmHost).
		Post("/0/").
		MatchHeader("Authorization",
			`^OAuth oauth_consumer_key="ck", oauth_nonce="\w+", oauth_signature="cs%25261%26us", oauth_signature_method="PLAINTEXT"`).
		AddMatcher(matchMethod("Client.getList", 2)).
		Reply(200).
		BodyString(`{"status":"success","error":"","response":{"infos":{"nbperpage":50,"pagenum":2,"nbpages":"3","nbtotal":"101"},
			"result":{"20":{"id":"20","type":"corporation"},"3":{"id":"3","type":"person"}}}}`)

	result := newTestCRMClient(0).GetList(context.Background(), crmModel.ListClients,
		crmModel.Pagination{PageSize: 50, PageNum: 2})

	require.True(t, result.Success, result.Error)
	require.NotNil(t, result.Data)
	assert.Equal(t, crmModel.FlexInt(3), result.Data.Infos.NumPages)
	records, err := crmModel.DecodeRecords(result.Data.Result)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "20", records[0].ID)
	assert.Equal(t, "3", records[1].ID)
	assert.True(t, gock.IsDone())
}

func TestCRMClientErrorEnvelope(t *testing.T) {
	defer gock.Off()

	gock.New(crmHost).
		Post("/0/").
		Reply(200).
		BodyString(`{"status":"error","error":{"code":"E_AUTH","message":"invalid token"},"response":null}`)

	result := newTestCRMClient(0).GetList(context.Background(), crmModel.ListProspects,
		crmModel.Pagination{PageSize: 50, PageNum: 1})

	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Contains(t, result.Error, "invalid token")
	assert.Error(t, result.ErrorDetails)
	assert.Equal(t, http.MethodPost, result.Method)
	form, ok := result.Payload.(url.Values)
	require.True(t, ok)
	assert.True(t, strings.Contains(form.Get("do_in"), "Prospects.getList"))
}

func TestCRMClientRetriesServerErrors(t *testing.T) {
	defer gock.Off()

	gock.New(crmHost).Post("/0/").Reply(503)
	gock.New(crmHost).
		Post("/0/").
		Reply(200).
		BodyString(`{"status":"success","response":{"infos":{"nbpages":1},"result":[]}}`)

	result := newTestCRMClient(2).GetList(context.Background(), crmModel.ListContacts,
		crmModel.Pagination{PageSize: 50, PageNum: 1})

	require.True(t, result.Success, result.Error)
	assert.Empty(t, result.Data.Result)
	assert.True(t, gock.IsDone())
}

func TestCRMClientDoesNotRetryClientErrors(t *testing.T) {
	defer gock.Off()

	gock.New(crmHost).Post("/0/").Times(1).Reply(401).BodyString("unauthorized")

	result := newTestCRMClient(3).GetList(context.Background(), crmModel.ListCustomFields,
		crmModel.Pagination{PageSize: 100, PageNum: 1})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "401")
	assert.True(t, gock.IsDone())
}

func TestCRMClientGetOne(t *testing.T) {
	defer gock.Off()

	gock.New(crmHost).
		Post("/0/").
		AddMatcher(func(req *http.Request, _ *gock.Request) (bool, error) {
			if err := req.ParseForm(); err != nil {
				return false, err
			}
			doIn := req.PostForm.Get("do_in")
			return strings.Contains(doIn, `"Client.getOne"`) && strings.Contains(doIn, `"clientid":"42"`), nil
		}).
		Reply(200).
		BodyString(`{"status":"success","response":{"client":{"id":"42"}}}`)

	result := newTestCRMClient(0).GetOne(context.Background(), crmModel.ListClients, "42")

	require.True(t, result.Success, result.Error)
	assert.JSONEq(t, `{"client":{"id":"42"}}`, string(*result.Data))
}

func TestCRMClientGetOneUnsupportedKind(t *testing.T) {

	result := newTestCRMClient(0).GetOne(context.Background(), crmModel.ListCustomFields, "1")
	assert.False(t, result.Success)
}

func TestOAuthEscape(t *testing.T) {
	assert.Equal(t, "a%20b%26c~d", oauthEscape("a b&c~d"))
}
