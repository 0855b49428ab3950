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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/metrics"
)

type CRMClientInterface interface {
	GetList(ctx context.Context, kind crmModel.ListKind, pagination crmModel.Pagination) *crmModel.ApiResult[crmModel.ListResponse]
	GetOne(ctx context.Context, kind crmModel.ListKind, id string) *crmModel.ApiResult[json.RawMessage]
}

// OAuthCredentials are the four OAuth 1.0 secrets issued by the CRM.
type OAuthCredentials struct {
	ConsumerToken  string
	ConsumerSecret string
	UserToken      string
	UserSecret     string
}

// CRMClient calls the CRM request API. Every call is a form POST to a single endpoint
// carrying the method name and its parameters, signed with OAuth 1.0 PLAINTEXT.
type CRMClient struct {
	Endpoint    string
	HTTPClient  *http.Client
	Credentials OAuthCredentials
	MaxRetries  uint64
}

func NewCRMClient(cfg config.CRMConfig, connector config.ConnectorConfig) *CRMClient {
	log.GetLogger().Info("Creating CRMClient with endpoint: " + cfg.Endpoint)
	return &CRMClient{
		Endpoint:    cfg.Endpoint,
		HTTPClient:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		Credentials: CredentialsFrom(connector),
		MaxRetries:  cfg.MaxRetries,
	}
}

// CredentialsFrom reads the OAuth secrets of the connector settings.
func CredentialsFrom(connector config.ConnectorConfig) OAuthCredentials {
	return OAuthCredentials{
		ConsumerToken:  connector.AuthConsumerToken,
		ConsumerSecret: connector.AuthConsumerSecret,
		UserToken:      connector.AuthUserToken,
		UserSecret:     connector.AuthUserSecret,
	}
}

type requestBody struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

// GetList fetches one page of a list endpoint.
func (c *CRMClient) GetList(ctx context.Context, kind crmModel.ListKind,
	pagination crmModel.Pagination) *crmModel.ApiResult[crmModel.ListResponse] {

	method := kind.Method()
	params := map[string]interface{}{"pagination": pagination}
	form, err := c.buildForm(method, params)
	if err != nil {
		return crmModel.NewApiFailure[crmModel.ListResponse](c.Endpoint, http.MethodPost, params, err)
	}
	if method == "" {
		return crmModel.NewApiFailure[crmModel.ListResponse](c.Endpoint, http.MethodPost, form,
			fmt.Errorf("no list method for %q", kind))
	}

	response, err := c.execute(ctx, method, form)
	if err != nil {
		return crmModel.NewApiFailure[crmModel.ListResponse](c.Endpoint, http.MethodPost, form, err)
	}
	var list crmModel.ListResponse
	if err := gojson.Unmarshal(response, &list); err != nil {
		return crmModel.NewApiFailure[crmModel.ListResponse](c.Endpoint, http.MethodPost, form,
			errors.Wrapf(err, "decoding %s response", method))
	}
	return crmModel.NewApiSuccess(c.Endpoint, http.MethodPost, form, &list)
}

// GetOne fetches the detail document of a single record.
func (c *CRMClient) GetOne(ctx context.Context, kind crmModel.ListKind, id string) *crmModel.ApiResult[json.RawMessage] {

	method, idParam := kind.DetailMethod()
	params := map[string]interface{}{idParam: id}
	if method == "" {
		return crmModel.NewApiFailure[json.RawMessage](c.Endpoint, http.MethodPost, params,
			fmt.Errorf("no detail method for %q", kind))
	}
	form, err := c.buildForm(method, params)
	if err != nil {
		return crmModel.NewApiFailure[json.RawMessage](c.Endpoint, http.MethodPost, params, err)
	}

	response, err := c.execute(ctx, method, form)
	if err != nil {
		return crmModel.NewApiFailure[json.RawMessage](c.Endpoint, http.MethodPost, form, err)
	}
	return crmModel.NewApiSuccess(c.Endpoint, http.MethodPost, form, &response)
}

func (c *CRMClient) buildForm(method string, params interface{}) (url.Values, error) {
	doIn, err := gojson.Marshal(requestBody{Method: method, Params: params})
	if err != nil {
		return nil, errors.Wrap(err, "encoding request")
	}
	form := url.Values{}
	form.Set("request", "1")
	form.Set("io_mode", "json")
	form.Set("do_in", string(doIn))
	return form, nil
}

// execute posts the form and returns the "response" member of a successful envelope.
func (c *CRMClient) execute(ctx context.Context, method string, form url.Values) (json.RawMessage, error) {

	logger := log.GetLogger()
	started := time.Now()
	var envelope crmModel.Envelope

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", c.authorizationHeader())

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			logger.Warn(fmt.Sprintf("CRM call %s failed, retrying", method), log.Error(err))
			return err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn(fmt.Sprintf("CRM call %s returned %d, retrying", method, resp.StatusCode))
			return fmt.Errorf("crm returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return backoff.Permanent(fmt.Errorf("crm returned status %d: %s", resp.StatusCode,
				strings.TrimSpace(string(body))))
		}
		if err := gojson.Unmarshal(bytes.TrimSpace(body), &envelope); err != nil {
			return backoff.Permanent(errors.Wrapf(err, "decoding %s envelope", method))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.MaxRetries), ctx)
	err := backoff.Retry(operation, policy)
	if err == nil && !envelope.Succeeded() {
		err = fmt.Errorf("%s: %s", method, envelope.ErrorMessage())
	}
	metrics.RecordCRMRequest(method, started, err)
	if err != nil {
		logger.Error(fmt.Sprintf("CRM call %s failed", method), log.Error(err))
		return nil, err
	}
	logger.Debug(fmt.Sprintf("CRM call %s succeeded in %s", method, time.Since(started)))
	return envelope.Response, nil
}

// authorizationHeader signs a request with OAuth 1.0 PLAINTEXT.
func (c *CRMClient) authorizationHeader() string {
	signature := oauthEscape(c.Credentials.ConsumerSecret) + "&" + oauthEscape(c.Credentials.UserSecret)
	params := [][2]string{
		{"oauth_consumer_key", c.Credentials.ConsumerToken},
		{"oauth_nonce", strings.ReplaceAll(uuid.NewString(), "-", "")},
		{"oauth_signature", signature},
		{"oauth_signature_method", "PLAINTEXT"},
		{"oauth_timestamp", strconv.FormatInt(time.Now().Unix(), 10)},
		{"oauth_token", c.Credentials.UserToken},
		{"oauth_version", "1.0"},
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, fmt.Sprintf(`%s="%s"`, p[0], oauthEscape(p[1])))
	}
	return "OAuth " + strings.Join(parts, ", ")
}

func oauthEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
