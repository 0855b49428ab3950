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
	"fmt"
	"sort"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	"github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/cache"
	"github.com/wso2/crm-customer-data-sync/internal/system/client"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

type FieldDefinitionServiceInterface interface {
	LoadFieldDefinitions(ctx context.Context, predicate model.ApplicabilityPredicate) ([]model.FieldDefinition, error)
}

// FieldDefinitionService assembles the tenant's custom field catalog from the paged
// CRM listing. Pages are served through the cache.
type FieldDefinitionService struct {
	crm      client.CRMClientInterface
	cache    cache.CacheInterface
	tenant   string
	pageSize int
	ttl      time.Duration
}

func NewFieldDefinitionService(crm client.CRMClientInterface, c cache.CacheInterface, tenant string,
	pageSize int, ttl time.Duration) FieldDefinitionServiceInterface {
	return &FieldDefinitionService{
		crm:      crm,
		cache:    c,
		tenant:   tenant,
		pageSize: pageSize,
		ttl:      ttl,
	}
}

// LoadFieldDefinitions fetches every custom field page, keeps the fields accepted by
// predicate and returns them ordered by rank, then code. Any page failure fails the
// whole load; a partial catalog is never returned.
func (s *FieldDefinitionService) LoadFieldDefinitions(ctx context.Context,
	predicate model.ApplicabilityPredicate) ([]model.FieldDefinition, error) {

	logger := log.GetLogger()

	first, err := s.fetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}
	merged := map[string]crmModel.CustomFieldDefinition{}
	if err := mergePage(merged, first); err != nil {
		return nil, err
	}
	pages := int(first.Infos.NumPages)
	for page := 2; page <= pages; page++ {
		list, err := s.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if err := mergePage(merged, list); err != nil {
			return nil, err
		}
	}

	var defs []model.FieldDefinition
	for _, cf := range merged {
		if predicate != nil && !predicate(cf) {
			continue
		}
		def, err := model.FromCustomField(cf)
		if err != nil {
			logger.Warn(fmt.Sprintf("Ignoring custom field %s: %v", cf.Code, err))
			continue
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Rank != defs[j].Rank {
			return defs[i].Rank < defs[j].Rank
		}
		return defs[i].Code < defs[j].Code
	})

	unique := defs[:0]
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if _, dup := seen[def.Code]; dup {
			logger.Warn(fmt.Sprintf("Ignoring custom field with duplicate code %s", def.Code))
			continue
		}
		seen[def.Code] = struct{}{}
		unique = append(unique, def)
	}

	logger.Debug(fmt.Sprintf("Loaded %d custom field definitions over %d page(s)", len(unique), max(pages, 1)))
	return unique, nil
}

func (s *FieldDefinitionService) fetchPage(ctx context.Context, page int) (crmModel.ListResponse, error) {

	key := fmt.Sprintf("%s_cfs_p%d", s.tenant, page)
	data, err := s.cache.GetOrCompute(ctx, key, s.ttl, func(ctx context.Context) ([]byte, error) {
		result := s.crm.GetList(ctx, crmModel.ListCustomFields, crmModel.Pagination{PageSize: s.pageSize, PageNum: page})
		if !result.Success || result.Data == nil {
			return nil, errors.Errorf("custom field page %d: %s", page, result.Error)
		}
		return gojson.Marshal(result.Data)
	})
	if err != nil {
		return crmModel.ListResponse{}, errors2.NewServerError(
			errors2.FETCH_CUSTOM_FIELDS.WithDescription("page %d could not be loaded", page), err)
	}

	var list crmModel.ListResponse
	if err := gojson.Unmarshal(data, &list); err != nil {
		return crmModel.ListResponse{}, errors2.NewServerError(errors2.UNMARSHAL_JSON, err)
	}
	return list, nil
}

func mergePage(merged map[string]crmModel.CustomFieldDefinition, list crmModel.ListResponse) error {
	defs, err := crmModel.DecodeCustomFieldDefinitions(list.Result)
	if err != nil {
		return errors2.NewServerError(errors2.UNMARSHAL_JSON, err)
	}
	for _, def := range defs {
		merged[def.ID.String()] = def
	}
	return nil
}
