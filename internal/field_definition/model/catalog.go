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

	mappingModel "github.com/wso2/crm-customer-data-sync/internal/mapping/model"
)

func builtin(code, label string, fieldType FieldType, readOnly bool) FieldDefinition {
	return FieldDefinition{Code: code, Label: label, Type: fieldType, ReadOnly: readOnly, IsDefault: true}
}

// Clients and prospects share one record shape in the CRM.
var corporationCatalog = []FieldDefinition{
	builtin("thirdid", "Third ID", FieldTypeSimpleText, true),
	builtin("capital", "Capital", FieldTypeSimpleText, false),
	builtin("logo", "Logo", FieldTypeURL, false),
	builtin("joindate", "Join Date", FieldTypeDate, true),
	builtin("auxCode", "Auxiliary accounting code", FieldTypeSimpleText, false),
	builtin("accountingCode", "Accounting Code", FieldTypeSimpleText, false),
	builtin("stickyNote", "Sticky Note", FieldTypeRichText, false),
	builtin("ident", "Customer reference", FieldTypeSimpleText, false),
	builtin("rateCategory", "Company rate category", FieldTypeSimpleText, false),
	builtin("massmailingUnsubscribed", "Unsubscribe to email campaigns", FieldTypeBoolean, false),
	builtin("massmailingUnsubscribedSMS", "Unsubscribe to SMS campaigns", FieldTypeBoolean, false),
	builtin("phoningUnsubscribed", "Unsubscribe to phone campaigns", FieldTypeBoolean, false),
	builtin("massmailingUnsubscribedMail", "Unsubscribe to postal campaigns", FieldTypeBoolean, false),
	builtin("massmailingUnsubscribedCustom", "Unsubscribe to personalized marketing campaigns", FieldTypeBoolean, false),
	builtin("lastactivity", "Last activity", FieldTypeDate, true),
	builtin("ownerid", "Owner ID", FieldTypeStaff, false),
	builtin("maincontactid", "Main Contact ID", FieldTypeSimpleText, true),
	builtin("relationType", "Relation Type", FieldTypeSimpleText, true),
	builtin("actif", "Active", FieldTypeBoolean, true),
	builtin("pic", "Picture", FieldTypeURL, true),
	builtin("people_forename", "Main Contact First Name", FieldTypeSimpleText, true),
	builtin("people_name", "Main Contact Last Name", FieldTypeSimpleText, true),
	builtin("people_civil", "Main Contact Civility", FieldTypeSimpleText, true),
	builtin("dateTransformProspect", "Transformation Prospect Date", FieldTypeDate, true),
	builtin("score", "Score", FieldTypeSimpleText, true),
	builtin("mainContactName", "Main Contact Name", FieldTypeSimpleText, true),
	builtin("name", "Name", FieldTypeSimpleText, false),
	builtin("tel", "Telephone", FieldTypeSimpleText, false),
	builtin("fax", "Telefax", FieldTypeSimpleText, false),
	builtin("email", "Email", FieldTypeEmail, false),
	builtin("mobile", "Mobile", FieldTypeSimpleText, false),
	builtin("apenaf", "Company NAF code", FieldTypeSimpleText, false),
	builtin("rcs", "Company RCS (Fr)", FieldTypeSimpleText, false),
	builtin("siret", "Company SIRET", FieldTypeSimpleText, false),
	builtin("siren", "Corporation Siren", FieldTypeSimpleText, false),
	builtin("vat", "Company tax number", FieldTypeSimpleText, false),
	builtin("mainaddressid", "Main Address ID", FieldTypeSimpleText, true),
	builtin("maindelivaddressid", "Main Delivery Address ID", FieldTypeSimpleText, true),
	builtin("web", "Website", FieldTypeURL, false),
	builtin("corpType", "Corporation Type", FieldTypeSimpleText, true),
	builtin("addr_name", "Address Name", FieldTypeSimpleText, false),
	builtin("addr_part1", "Address Part 1", FieldTypeSimpleText, false),
	builtin("addr_part2", "Address Part 2", FieldTypeSimpleText, false),
	builtin("addr_zip", "Address Postal Code", FieldTypeSimpleText, false),
	builtin("addr_town", "Address City", FieldTypeSimpleText, false),
	builtin("addr_state", "Address State", FieldTypeSimpleText, false),
	builtin("addr_lat", "Address Latitude", FieldTypeSimpleText, true),
	builtin("addr_lng", "Address Longitude", FieldTypeSimpleText, true),
	builtin("addr_countrycode", "Address Country Code", FieldTypeSimpleText, false),
	builtin("delivaddr_name", "Delivery Address Name", FieldTypeSimpleText, true),
	builtin("delivaddr_part1", "Delivery Address Part 1", FieldTypeSimpleText, true),
	builtin("delivaddr_part2", "Delivery Address Part 2", FieldTypeSimpleText, true),
	builtin("delivaddr_zip", "Delivery Address Postal Code", FieldTypeSimpleText, true),
	builtin("delivaddr_town", "Delivery Address City", FieldTypeSimpleText, true),
	builtin("delivaddr_state", "Delivery Address State", FieldTypeSimpleText, true),
	builtin("delivaddr_lat", "Delivery Address Latitude", FieldTypeSimpleText, true),
	builtin("delivaddr_lng", "Delivery Address Longitude", FieldTypeSimpleText, true),
	builtin("delivaddr_countrycode", "Delivery Address Country Code", FieldTypeSimpleText, true),
	builtin("formated_joindate", "Formatted Join Date", FieldTypeDate, true),
	builtin("formated_transformprospectdate", "Formatted Transform Prospect Date", FieldTypeDate, true),
	builtin("scoreFormatted", "Formatted Score", FieldTypeSimpleText, true),
	builtin("scoreClass", "Score Class", FieldTypeSimpleText, true),
	builtin("corpid", "Corporation ID", FieldTypeSimpleText, true),
	builtin("lastactivity_formatted", "Formatted Last Activity", FieldTypeDate, true),
	builtin("addr_countryname", "Address Country Name", FieldTypeSimpleText, true),
	builtin("mainAddress", "Main Address", FieldTypeSimpleText, true),
	builtin("addr_geocode", "Address Geocode", FieldTypeSimpleText, true),
	builtin("delivaddr_countryname", "Delivery Address Country Name", FieldTypeSimpleText, true),
	builtin("delivAddress", "Delivery Address", FieldTypeSimpleText, true),
	builtin("fullName", "Full Name", FieldTypeSimpleText, true),
	builtin("contactId", "Contact ID", FieldTypeSimpleText, true),
	builtin("contactDetails", "Contact Details", FieldTypeSimpleText, true),
	builtin("formatted_tel", "Formatted Telephone", FieldTypeSimpleText, true),
	builtin("formatted_mobile", "Formatted Mobile", FieldTypeSimpleText, true),
	builtin("formatted_fax", "Formatted Telefaz", FieldTypeSimpleText, true),
	builtin("owner", "Owner", FieldTypeSimpleText, true),
	builtin("webUrl", "Web Url", FieldTypeSimpleText, true),
	builtin("id", "Sellsy ID", FieldTypeSimpleText, true),
}

var contactCatalog = []FieldDefinition{
	builtin("pic", "Picture", FieldTypeURL, true),
	builtin("name", "Last Name", FieldTypeSimpleText, false),
	builtin("forename", "First Name", FieldTypeSimpleText, false),
	builtin("tel", "Telephone", FieldTypeSimpleText, false),
	builtin("email", "Email", FieldTypeEmail, false),
	builtin("mobile", "Mobile", FieldTypeSimpleText, false),
	builtin("civil", "Civility", FieldTypeSelect, false),
	builtin("position", "Position", FieldTypeSimpleText, false),
	builtin("birthdate", "Date of Birth", FieldTypeDate, false),
	builtin("thirdid", "Third ID", FieldTypeSimpleText, true),
	builtin("id", "Sellsy ID", FieldTypeSimpleText, true),
	builtin("peopleid", "People ID", FieldTypeSimpleText, true),
	builtin("fullName", "Full Name", FieldTypeSimpleText, true),
	builtin("corpid", "Corporation ID", FieldTypeSimpleText, true),
	builtin("formatted_tel", "Formatted Telephone", FieldTypeSimpleText, true),
	builtin("formatted_mobile", "Mobile", FieldTypeSimpleText, true),
	builtin("formatted_fax", "Formatted Telefax", FieldTypeSimpleText, true),
	builtin("formatted_birthdate", "Formatted Date of Birth", FieldTypeDate, true),
}

func copyCatalog(src []FieldDefinition) []FieldDefinition {
	out := make([]FieldDefinition, len(src))
	copy(out, src)
	return out
}

// ClientCatalog returns the built-in fields of a client record.
func ClientCatalog() []FieldDefinition {
	return copyCatalog(corporationCatalog)
}

// ProspectCatalog returns the built-in fields of a prospect record.
func ProspectCatalog() []FieldDefinition {
	return copyCatalog(corporationCatalog)
}

// ContactCatalog returns the built-in fields of a contact record.
func ContactCatalog() []FieldDefinition {
	return copyCatalog(contactCatalog)
}

// DefaultCatalog returns the built-in fields for an object kind.
func DefaultCatalog(kind mappingModel.ObjectKind) ([]FieldDefinition, error) {
	switch kind {
	case mappingModel.ClientKind:
		return ClientCatalog(), nil
	case mappingModel.ProspectKind:
		return ProspectCatalog(), nil
	case mappingModel.ContactKind:
		return ContactCatalog(), nil
	}
	return nil, fmt.Errorf("unsupported object kind: %q", kind)
}

// FindDefault returns the catalog entry with the given code.
func FindDefault(catalog []FieldDefinition, code string) *FieldDefinition {
	for i := range catalog {
		if catalog[i].Code == code {
			return &catalog[i]
		}
	}
	return nil
}

// FieldCatalog is the set of field definitions in effect for one object kind during
// one sync run: the built-in catalog plus the tenant's custom fields.
type FieldCatalog struct {
	defaults []FieldDefinition
	customs  []FieldDefinition
	byCode   map[string]*FieldDefinition
	custom   map[string]*FieldDefinition
}

// NewFieldCatalog merges the built-in and custom definitions. A custom field whose code
// is already taken is left out; the dropped codes are returned for the caller to report.
func NewFieldCatalog(defaults, customs []FieldDefinition) (*FieldCatalog, []string) {

	catalog := &FieldCatalog{
		defaults: copyCatalog(defaults),
		byCode:   make(map[string]*FieldDefinition, len(defaults)+len(customs)),
		custom:   make(map[string]*FieldDefinition, len(customs)),
	}
	for i := range catalog.defaults {
		catalog.byCode[catalog.defaults[i].Code] = &catalog.defaults[i]
	}

	var dropped []string
	seen := make(map[string]struct{}, len(customs))
	kept := make([]FieldDefinition, 0, len(customs))
	for _, def := range customs {
		_, builtinCode := catalog.byCode[def.Code]
		_, duplicate := seen[def.Code]
		if builtinCode || duplicate {
			dropped = append(dropped, def.Code)
			continue
		}
		seen[def.Code] = struct{}{}
		kept = append(kept, def)
	}
	catalog.customs = kept
	for i := range catalog.customs {
		catalog.byCode[catalog.customs[i].Code] = &catalog.customs[i]
		catalog.custom[catalog.customs[i].Code] = &catalog.customs[i]
	}
	return catalog, dropped
}

// Default returns the built-in definition for code, or nil.
func (c *FieldCatalog) Default(code string) *FieldDefinition {
	if c == nil {
		return nil
	}
	def := c.byCode[code]
	if def == nil || !def.IsDefault {
		return nil
	}
	return def
}

// Custom returns the custom field definition for code, or nil.
func (c *FieldCatalog) Custom(code string) *FieldDefinition {
	if c == nil {
		return nil
	}
	return c.custom[code]
}

func (c *FieldCatalog) Defaults() []FieldDefinition {
	if c == nil {
		return nil
	}
	return copyCatalog(c.defaults)
}

func (c *FieldCatalog) Customs() []FieldDefinition {
	if c == nil {
		return nil
	}
	return copyCatalog(c.customs)
}
