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
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	gojson "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/wso2/crm-customer-data-sync/internal/mapping/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/metrics"
)

// Token claims understood by the platform firehose.
const (
	claimAsUser    = "io.hull.asUser"
	claimAsAccount = "io.hull.asAccount"
	claimSubject   = "io.hull.subjectType"
)

// Firehose event types.
const (
	EventTraits = "traits"
	EventAlias  = "alias"
)

type PlatformClientInterface interface {
	WriteAccount(ctx context.Context, claims model.IdentityClaims, attributes model.NormalizedAttributeSet) error
	WriteUser(ctx context.Context, claims model.IdentityClaims, attributes model.NormalizedAttributeSet) error
	LinkAnonymousID(ctx context.Context, claims model.IdentityClaims, anonymousID string) error
	PutStatus(ctx context.Context, status string, messages []string) error
}

// PlatformClient writes traits and aliases to the customer data platform firehose.
type PlatformClient struct {
	FirehoseURL  string
	APIURL       string
	Organization string
	ConnectorID  string
	Secret       []byte
	HTTPClient   *http.Client
	MaxRetries   uint64
}

func NewPlatformClient(cfg config.PlatformConfig) *PlatformClient {
	log.GetLogger().Info("Creating PlatformClient for organization: " + cfg.Organization)
	return &PlatformClient{
		FirehoseURL:  cfg.FirehoseURL,
		APIURL:       strings.TrimSuffix(cfg.APIURL, "/"),
		Organization: cfg.Organization,
		ConnectorID:  cfg.ConnectorID,
		Secret:       []byte(cfg.ConnectorToken),
		HTTPClient:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		MaxRetries:   cfg.MaxRetries,
	}
}

type firehoseEvent struct {
	Type      string            `json:"type"`
	Headers   map[string]string `json:"headers"`
	Body      interface{}       `json:"body"`
	Timestamp string            `json:"timestamp"`
}

type firehoseBatch struct {
	Batch     []firehoseEvent `json:"batch"`
	Timestamp string          `json:"timestamp"`
	SentAt    string          `json:"sentAt"`
}

func (c *PlatformClient) WriteAccount(ctx context.Context, claims model.IdentityClaims,
	attributes model.NormalizedAttributeSet) error {
	return c.send(ctx, claimAsAccount, claims, EventTraits, attributes, errors2.WRITE_PLATFORM)
}

func (c *PlatformClient) WriteUser(ctx context.Context, claims model.IdentityClaims,
	attributes model.NormalizedAttributeSet) error {
	return c.send(ctx, claimAsUser, claims, EventTraits, attributes, errors2.WRITE_PLATFORM)
}

// LinkAnonymousID attaches anonymousID to the user addressed by claims.
func (c *PlatformClient) LinkAnonymousID(ctx context.Context, claims model.IdentityClaims, anonymousID string) error {
	return c.send(ctx, claimAsUser, claims, EventAlias,
		map[string]string{"anonymous_id": anonymousID}, errors2.LINK_ALIAS)
}

// PutStatus reports the connector health to the platform.
func (c *PlatformClient) PutStatus(ctx context.Context, status string, messages []string) error {

	if messages == nil {
		messages = []string{}
	}
	payload, err := gojson.Marshal(map[string]interface{}{"status": status, "messages": messages})
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}
	token, err := c.sign(jwt.MapClaims{})
	if err != nil {
		return err
	}
	headers := map[string]string{
		"Hull-App-Id":       c.ConnectorID,
		"Hull-Access-Token": token,
		"Hull-Organization": c.Organization,
	}
	target := fmt.Sprintf("%s/%s/status", c.APIURL, c.ConnectorID)
	if err := c.do(ctx, http.MethodPut, target, headers, payload); err != nil {
		return errors2.NewServerError(errors2.WRITE_PLATFORM.WithDescription("status update failed"), err)
	}
	return nil
}

func (c *PlatformClient) send(ctx context.Context, subjectClaim string, claims model.IdentityClaims,
	eventType string, body interface{}, failure errors2.ErrorMessage) error {

	subjectType := "user"
	if subjectClaim == claimAsAccount {
		subjectType = "account"
	}
	token, err := c.sign(jwt.MapClaims{subjectClaim: claims, claimSubject: subjectType})
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	batch := firehoseBatch{
		Batch: []firehoseEvent{{
			Type:      eventType,
			Headers:   map[string]string{"Hull-Access-Token": token},
			Body:      body,
			Timestamp: now,
		}},
		Timestamp: now,
		SentAt:    now,
	}
	payload, err := gojson.Marshal(batch)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}

	headers := map[string]string{"Hull-Organization": c.Organization}
	err = c.do(ctx, http.MethodPost, c.FirehoseURL, headers, payload)
	metrics.RecordPlatformWrite(subjectType+"_"+eventType, err)
	if err != nil {
		return errors2.NewServerError(failure.WithDescription("%s %s for %s", subjectType, eventType,
			claims.AnonymousID()), err)
	}
	return nil
}

// sign issues a short lived HS256 token for the connector.
func (c *PlatformClient) sign(claims jwt.MapClaims) (string, error) {
	now := time.Now()
	claims["iss"] = c.ConnectorID
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(5 * time.Minute).Unix()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
	if err != nil {
		return "", errors2.NewServerError(errors2.PLATFORM_TOKEN, err)
	}
	return token, nil
}

func (c *PlatformClient) do(ctx context.Context, method, target string, headers map[string]string, payload []byte) error {

	logger := log.GetLogger()
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			logger.Warn("Platform call failed, retrying", log.String("url", target), log.Error(err))
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		switch {
		case resp.StatusCode >= http.StatusInternalServerError, resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("platform returned status %d", resp.StatusCode)
		case resp.StatusCode >= http.StatusBadRequest:
			return backoff.Permanent(errors.Errorf("platform returned status %d: %s", resp.StatusCode,
				strings.TrimSpace(string(body))))
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.MaxRetries), ctx)
	return backoff.Retry(operation, policy)
}
