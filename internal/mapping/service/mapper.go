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
	"fmt"
	"net/http"

	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
	fieldModel "github.com/wso2/crm-customer-data-sync/internal/field_definition/model"
	"github.com/wso2/crm-customer-data-sync/internal/mapping/model"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	errors2 "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

type MappingServiceInterface interface {
	MapAttributes(record crmModel.Record, kind model.ObjectKind, parentID string,
		catalog *fieldModel.FieldCatalog) (model.NormalizedAttributeSet, error)
	ResolveClaims(record crmModel.Record, kind model.ObjectKind) (model.IdentityClaims, model.MappingProcedure, error)
}

// MappingService turns CRM records into platform attributes and identity claims using
// the connector's configured tables.
type MappingService struct {
	mappings   model.MappingTables
	identities model.IdentityTables
}

func NewMappingService(mappings model.MappingTables, identities model.IdentityTables) MappingServiceInterface {
	return &MappingService{
		mappings:   mappings,
		identities: identities,
	}
}

// ResolveClaims picks the procedure of the record and resolves its identity claims.
func (s *MappingService) ResolveClaims(record crmModel.Record, kind model.ObjectKind) (model.IdentityClaims, model.MappingProcedure, error) {

	procedure, err := resolveProcedure(kind, record)
	if err != nil {
		return nil, "", err
	}
	identityKind := procedure.IdentityKind()
	claims := ResolveIdentity(record, s.identities.For(identityKind), identityKind.Namespace())
	return claims, procedure, nil
}

// MapAttributes maps one record. parentID is the owning corporation of a contact and is
// ignored for other kinds. A nil catalog maps against the built-in fields only.
func (s *MappingService) MapAttributes(record crmModel.Record, kind model.ObjectKind, parentID string,
	catalog *fieldModel.FieldCatalog) (model.NormalizedAttributeSet, error) {

	procedure, err := resolveProcedure(kind, record)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		defaults, err := fieldModel.DefaultCatalog(kind)
		if err != nil {
			return nil, err
		}
		catalog, _ = fieldModel.NewFieldCatalog(defaults, nil)
	}

	attributes := s.applyMappings(record, s.mappings.For(procedure), catalog)

	switch procedure {
	case model.ClientAccountProcedure, model.ProspectAccountProcedure:
		setIfNotEmpty(attributes, "name", record.FullName)
		attributes[constants.ServiceIDAttribute] = model.AttributeEnvelope{
			Value: record.ID, Operation: model.OperationSetIfNull}
	case model.ClientPersonProcedure, model.ProspectPersonProcedure:
		setIfNotEmpty(attributes, "first_name", record.PeopleForename)
		setIfNotEmpty(attributes, "last_name", record.PeopleName)
		attributes[constants.ServiceIDAttribute] = model.AttributeEnvelope{
			Value: record.ID, Operation: model.OperationSetIfNull}
	case model.ContactProcedure:
		if parentID != "" {
			attributes[constants.ServiceContactClientIDAttribute] = model.AttributeEnvelope{
				Value: parentID, Operation: model.OperationSet}
		}
		setIfNotEmpty(attributes, "first_name", record.Forename)
		setIfNotEmpty(attributes, "last_name", record.Name)
		attributes[constants.ServiceContactIDAttribute] = model.AttributeEnvelope{
			Value: record.ID, Operation: model.OperationSet}
		if record.LinkedID != "" {
			attributes[constants.ServiceContactLinkedIDAttribute] = model.AttributeEnvelope{
				Value: record.LinkedID, Operation: model.OperationSet}
		}
	}
	return attributes, nil
}

func (s *MappingService) applyMappings(record crmModel.Record, table []model.MappingEntry,
	catalog *fieldModel.FieldCatalog) model.NormalizedAttributeSet {

	logger := log.GetLogger()
	attributes := model.NormalizedAttributeSet{}
	for _, entry := range table {
		if entry.HullField == "" || entry.ServiceField == "" {
			continue
		}
		destination := entry.Destination()

		if code, ok := entry.CustomFieldCode(); ok {
			instance, found := record.CustomField(code)
			if !found {
				logger.Debug(fmt.Sprintf("Custom field %s not present on record %s", code, record.ID))
				continue
			}
			attributes[destination] = CastCustomFieldValue(instance, catalog.Custom(code))
			continue
		}

		if entry.IsSmartTags() {
			attributes[destination] = record.SmartTagWords()
			continue
		}

		value, found := record.Lookup(entry.ServiceField)
		if !found || value == nil {
			logger.Debug(fmt.Sprintf("Field %s not present on record %s", entry.ServiceField, record.ID))
			continue
		}
		def := catalog.Default(entry.ServiceField)
		cast := CastDefaultValue(value, def)
		if cast == nil && def != nil && def.Type == fieldModel.FieldTypeDate {
			logger.Debug(fmt.Sprintf("Field %s on record %s is not a valid date", entry.ServiceField, record.ID))
			continue
		}
		attributes[destination] = cast
	}
	return attributes
}

func setIfNotEmpty(attributes model.NormalizedAttributeSet, key, value string) {
	if value == "" {
		return
	}
	attributes[key] = model.AttributeEnvelope{Value: value, Operation: model.OperationSetIfNull}
}

func resolveProcedure(kind model.ObjectKind, record crmModel.Record) (model.MappingProcedure, error) {
	procedure, err := model.ResolveProcedure(kind, record.Type)
	if err != nil {
		return "", errors2.NewClientError(errors2.UNKNOWN_OBJECT_KIND.WithDescription("%s", err.Error()),
			http.StatusBadRequest)
	}
	return procedure, nil
}
