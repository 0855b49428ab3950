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

package model

import (
	"fmt"
	"strings"

	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
)

// MappingEntry maps one CRM source field onto one platform attribute.
type MappingEntry struct {
	HullField    string `yaml:"hull" json:"hull"`
	ServiceField string `yaml:"service" json:"service"`
}

// Destination returns the attribute path with the legacy "traits_" prefix stripped.
func (m MappingEntry) Destination() string {
	return strings.TrimPrefix(m.HullField, constants.LegacyTraitPrefix)
}

// CustomFieldCode returns the referenced custom field code when the source is a
// "$customfield.<code>" sentinel.
func (m MappingEntry) CustomFieldCode() (string, bool) {
	if !strings.HasPrefix(m.ServiceField, constants.CustomFieldPrefix) {
		return "", false
	}
	return strings.TrimPrefix(m.ServiceField, constants.CustomFieldPrefix), true
}

// IsSmartTags reports whether the source is the smart tag sentinel.
func (m MappingEntry) IsSmartTags() bool {
	return m.ServiceField == constants.SmartTagsField
}

// IdentityKey is a platform identity claim slot.
type IdentityKey string

const (
	IdentityKeyExternalID  IdentityKey = "external_id"
	IdentityKeyDomain      IdentityKey = "domain"
	IdentityKeyEmail       IdentityKey = "email"
	IdentityKeyAnonymousID IdentityKey = "anonymous_id"
)

// IsValid reports whether k is one of the supported identity slots.
func (k IdentityKey) IsValid() bool {
	switch k {
	case IdentityKeyExternalID, IdentityKeyDomain, IdentityKeyEmail, IdentityKeyAnonymousID:
		return true
	}
	return false
}

// IdentityMappingEntry maps one CRM source field onto one identity claim.
type IdentityMappingEntry struct {
	HullIdentityKey IdentityKey `yaml:"hull" json:"hull"`
	ServiceField    string      `yaml:"service" json:"service"`
}

// IdentityClaims is the claim set used to address a platform user or account.
type IdentityClaims map[IdentityKey]interface{}

// AnonymousID returns the anonymous id claim, or an empty string.
func (c IdentityClaims) AnonymousID() string {
	if v, ok := c[IdentityKeyAnonymousID].(string); ok {
		return v
	}
	return ""
}

// Operation is the write semantic of an attribute envelope.
type Operation string

const (
	OperationSet       Operation = "set"
	OperationSetIfNull Operation = "setIfNull"
)

// AttributeEnvelope wraps a value with its write semantic.
type AttributeEnvelope struct {
	Value     interface{} `json:"value"`
	Operation Operation   `json:"operation"`
}

// NormalizedAttributeSet is the flat attribute map sent to the platform. Values are
// either plain scalars / arrays or an AttributeEnvelope.
type NormalizedAttributeSet map[string]interface{}

// ObjectKind is the CRM object family a record belongs to.
type ObjectKind string

const (
	ClientKind   ObjectKind = "client"
	ProspectKind ObjectKind = "prospect"
	ContactKind  ObjectKind = "contact"
)

// ParseObjectKind returns the ObjectKind for s, or an error for anything else.
func ParseObjectKind(s string) (ObjectKind, error) {
	switch ObjectKind(s) {
	case ClientKind, ProspectKind, ContactKind:
		return ObjectKind(s), nil
	}
	return "", fmt.Errorf("unsupported object kind: %q", s)
}

// IdentityKind selects the identity table and namespace of a record.
type IdentityKind string

const (
	CorporationIdentity IdentityKind = "corporation"
	PersonIdentity      IdentityKind = "person"
	ContactIdentity     IdentityKind = "contact"
)

// Namespace returns the anonymous id prefix of the identity kind.
func (k IdentityKind) Namespace() string {
	if k == ContactIdentity {
		return constants.ServiceContactNamespace
	}
	return constants.ServiceNamespace
}

// MappingProcedure is one of the five record shapes the mapper knows how to map.
type MappingProcedure string

const (
	ClientAccountProcedure   MappingProcedure = "client-account"
	ClientPersonProcedure    MappingProcedure = "client-person"
	ProspectAccountProcedure MappingProcedure = "prospect-account"
	ProspectPersonProcedure  MappingProcedure = "prospect-person"
	ContactProcedure         MappingProcedure = "contact"
)

// IsAccount reports whether the procedure produces platform account attributes.
func (p MappingProcedure) IsAccount() bool {
	return p == ClientAccountProcedure || p == ProspectAccountProcedure
}

// IdentityKind returns the identity kind that addresses records of this procedure.
func (p MappingProcedure) IdentityKind() IdentityKind {
	switch p {
	case ClientAccountProcedure, ProspectAccountProcedure:
		return CorporationIdentity
	case ContactProcedure:
		return ContactIdentity
	default:
		return PersonIdentity
	}
}

// ResolveProcedure picks the mapping procedure for an object kind and CRM record type.
func ResolveProcedure(kind ObjectKind, recordType string) (MappingProcedure, error) {
	isCorporation := recordType == constants.RecordTypeCorporation
	switch kind {
	case ClientKind:
		if isCorporation {
			return ClientAccountProcedure, nil
		}
		return ClientPersonProcedure, nil
	case ProspectKind:
		if isCorporation {
			return ProspectAccountProcedure, nil
		}
		return ProspectPersonProcedure, nil
	case ContactKind:
		return ContactProcedure, nil
	}
	return "", fmt.Errorf("unsupported object kind: %q", kind)
}

// MappingTables holds one attribute mapping table per procedure.
type MappingTables struct {
	ClientAccount   []MappingEntry
	ClientPerson    []MappingEntry
	ProspectAccount []MappingEntry
	ProspectPerson  []MappingEntry
	Contact         []MappingEntry
}

// For returns the table bound to the procedure.
func (t MappingTables) For(p MappingProcedure) []MappingEntry {
	switch p {
	case ClientAccountProcedure:
		return t.ClientAccount
	case ClientPersonProcedure:
		return t.ClientPerson
	case ProspectAccountProcedure:
		return t.ProspectAccount
	case ProspectPersonProcedure:
		return t.ProspectPerson
	case ContactProcedure:
		return t.Contact
	}
	return nil
}

// IdentityTables holds one identity mapping table per identity kind.
type IdentityTables struct {
	Corporation []IdentityMappingEntry
	Person      []IdentityMappingEntry
	Contact     []IdentityMappingEntry
}

// For returns the table bound to the identity kind.
func (t IdentityTables) For(k IdentityKind) []IdentityMappingEntry {
	switch k {
	case CorporationIdentity:
		return t.Corporation
	case PersonIdentity:
		return t.Person
	case ContactIdentity:
		return t.Contact
	}
	return nil
}
