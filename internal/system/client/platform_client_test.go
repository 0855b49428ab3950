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
	"io"
	"net/http"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/crm-customer-data-sync/internal/mapping/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
)

const platformHost = "https://firehose.platform.test"

func newTestPlatformClient() *PlatformClient {
	return NewPlatformClient(config.PlatformConfig{
		Organization:   "acme.platform.test",
		FirehoseURL:    platformHost + "/",
		APIURL:         "https://api.platform.test/api/v1/",
		ConnectorID:    "connector-1",
		ConnectorToken: "top-secret",
		TimeoutSeconds: 5,
	})
}

type capturedBatch struct {
	Batch []struct {
		Type    string                 `json:"type"`
		Headers map[string]string      `json:"headers"`
		Body    map[string]interface{} `json:"body"`
	} `json:"batch"`
}

func captureBatch(t *testing.T, into *capturedBatch) gock.MatchFunc {
	return func(req *http.Request, _ *gock.Request) (bool, error) {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return false, err
		}
		require.NoError(t, gojson.Unmarshal(data, into))
		return true, nil
	}
}

func parseToken(t *testing.T, token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("top-secret"), nil
	})
	require.NoError(t, err)
	return claims
}

func TestPlatformClientWriteAccount(t *testing.T) {
	defer gock.Off()

	var batch capturedBatch
	gock.New(platformHost).
		Post("/").
		MatchHeader("Hull-Organization", "acme.platform.test").
		AddMatcher(captureBatch(t, &batch)).
		Reply(200)

	err := newTestPlatformClient().WriteAccount(context.Background(),
		model.IdentityClaims{model.IdentityKeyAnonymousID: "sellsy:42", model.IdentityKeyDomain: "acme.io"},
		model.NormalizedAttributeSet{
			"tier":      "Gold",
			"sellsy/id": model.AttributeEnvelope{Value: "42", Operation: model.OperationSetIfNull},
		})

	require.NoError(t, err)
	require.Len(t, batch.Batch, 1)
	event := batch.Batch[0]
	assert.Equal(t, EventTraits, event.Type)
	assert.Equal(t, "Gold", event.Body["tier"])
	assert.Equal(t, map[string]interface{}{"value": "42", "operation": "setIfNull"}, event.Body["sellsy/id"])

	claims := parseToken(t, event.Headers["Hull-Access-Token"])
	assert.Equal(t, "connector-1", claims["iss"])
	assert.Equal(t, "account", claims[claimSubject])
	assert.Equal(t, map[string]interface{}{"anonymous_id": "sellsy:42", "domain": "acme.io"}, claims[claimAsAccount])
	assert.True(t, gock.IsDone())
}

func TestPlatformClientLinkAnonymousID(t *testing.T) {
	defer gock.Off()

	var batch capturedBatch
	gock.New(platformHost).Post("/").AddMatcher(captureBatch(t, &batch)).Reply(202)

	err := newTestPlatformClient().LinkAnonymousID(context.Background(),
		model.IdentityClaims{model.IdentityKeyAnonymousID: "sellsy-contact:5"}, "sellsy-contact:77")

	require.NoError(t, err)
	require.Len(t, batch.Batch, 1)
	assert.Equal(t, EventAlias, batch.Batch[0].Type)
	assert.Equal(t, "sellsy-contact:77", batch.Batch[0].Body["anonymous_id"])
	claims := parseToken(t, batch.Batch[0].Headers["Hull-Access-Token"])
	assert.Equal(t, map[string]interface{}{"anonymous_id": "sellsy-contact:5"}, claims[claimAsUser])
}

func TestPlatformClientRejectedWrite(t *testing.T) {
	defer gock.Off()

	gock.New(platformHost).Post("/").Reply(400).BodyString("bad claims")

	err := newTestPlatformClient().WriteUser(context.Background(),
		model.IdentityClaims{model.IdentityKeyAnonymousID: "sellsy:1"}, model.NormalizedAttributeSet{})

	require.Error(t, err)
	assert.True(t, errors2.IsServerError(err))
	assert.Contains(t, err.Error(), "bad claims")
}

func TestPlatformClientPutStatus(t *testing.T) {
	defer gock.Off()

	gock.New("https://api.platform.test").
		Put("/api/v1/connector-1/status").
		MatchHeader("Hull-App-Id", "connector-1").
		JSON(map[string]interface{}{"status": "setupRequired", "messages": []string{"missing"}}).
		Reply(200)

	err := newTestPlatformClient().PutStatus(context.Background(), "setupRequired", []string{"missing"})

	require.NoError(t, err)
	assert.True(t, gock.IsDone())
}
