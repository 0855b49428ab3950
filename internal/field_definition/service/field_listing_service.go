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

	"github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

type FieldListingServiceInterface interface {
	ListMappingFields(ctx context.Context, objectType, direction string) (model.FieldsSchema, error)
	ListIdentityFields(ctx context.Context, objectType, direction string) (model.FieldsSchema, error)
}

// FieldListingService lists the CRM fields an operator can pick as mapping or identity
// sources.
type FieldListingService struct {
	definitions FieldDefinitionServiceInterface
}

func NewFieldListingService(definitions FieldDefinitionServiceInterface) FieldListingServiceInterface {
	return &FieldListingService{definitions: definitions}
}

// ListMappingFields lists the attribute sources of a client, prospect or contact.
// Incoming listings also offer the smart tags sentinel.
func (s *FieldListingService) ListMappingFields(ctx context.Context, objectType, direction string) (model.FieldsSchema, error) {

	var defaults []model.FieldDefinition
	switch objectType {
	case "client":
		defaults = model.ClientCatalog()
	case "prospect":
		defaults = model.ProspectCatalog()
	case "contact":
		defaults = model.ContactCatalog()
	default:
		return unknownObjectType(objectType), nil
	}
	predicate, _ := model.MappingListingApplicability.PredicateFor(objectType)

	schema, err := s.list(ctx, defaults, predicate, direction)
	if err != nil {
		return model.FieldsSchema{}, err
	}
	if direction == constants.DirectionIncoming {
		smartTags := model.FieldOption{Value: constants.SmartTagsField, Label: "Smart Tags"}
		// smart tags sit between the built-in and the custom fields
		builtins := len(filterDirection(defaults, direction))
		options := append([]model.FieldOption{}, schema.Options[:builtins]...)
		options = append(options, smartTags)
		schema.Options = append(options, schema.Options[builtins:]...)
	}
	return schema, nil
}

// ListIdentityFields lists the identity sources of a corporation, person or contact.
func (s *FieldListingService) ListIdentityFields(ctx context.Context, objectType, direction string) (model.FieldsSchema, error) {

	var defaults []model.FieldDefinition
	switch objectType {
	case "corporation", "person":
		defaults = model.ClientCatalog()
	case "contact":
		defaults = model.ContactCatalog()
	default:
		return unknownObjectType(objectType), nil
	}
	predicate, _ := model.IdentityListingApplicability.PredicateFor(objectType)
	return s.list(ctx, defaults, predicate, direction)
}

func (s *FieldListingService) list(ctx context.Context, defaults []model.FieldDefinition,
	predicate model.ApplicabilityPredicate, direction string) (model.FieldsSchema, error) {

	customs, err := s.definitions.LoadFieldDefinitions(ctx, predicate)
	if err != nil {
		return model.FieldsSchema{}, err
	}
	catalog, dropped := model.NewFieldCatalog(defaults, customs)
	for _, code := range dropped {
		log.GetLogger().Warn(fmt.Sprintf("Custom field %s collides with a built-in field and is not listed", code))
	}

	options := make([]model.FieldOption, 0, len(defaults)+len(customs))
	for _, def := range filterDirection(catalog.Defaults(), direction) {
		options = append(options, model.FieldOption{Value: def.Code, Label: def.Label})
	}
	for _, def := range catalog.Customs() {
		options = append(options, model.FieldOption{Value: constants.CustomFieldPrefix + def.Code, Label: def.Label})
	}
	return model.FieldsSchema{OK: true, Options: options}, nil
}

// filterDirection keeps the writable built-in fields for outgoing listings.
func filterDirection(defaults []model.FieldDefinition, direction string) []model.FieldDefinition {
	if direction == constants.DirectionIncoming {
		return defaults
	}
	writable := make([]model.FieldDefinition, 0, len(defaults))
	for _, def := range defaults {
		if !def.ReadOnly {
			writable = append(writable, def)
		}
	}
	return writable
}

func unknownObjectType(objectType string) model.FieldsSchema {
	message := fmt.Sprintf("Unknown objectType '%s'.", objectType)
	return model.FieldsSchema{OK: false, Error: &message, Options: []model.FieldOption{}}
}
