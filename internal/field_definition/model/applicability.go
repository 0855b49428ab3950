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
	crmModel "github.com/wso2/crm-customer-data-sync/internal/crm/model"
)

// UseOnFlag names one of the "useOn_*" switches of a custom field.
type UseOnFlag string

const (
	UseOnClient   UseOnFlag = "client"
	UseOnProspect UseOnFlag = "prospect"
	UseOnPeople   UseOnFlag = "people"
)

const flagEnabled = "Y"

func (f UseOnFlag) enabledOn(def crmModel.CustomFieldDefinition) bool {
	switch f {
	case UseOnClient:
		return def.UseOnClient.String() == flagEnabled
	case UseOnProspect:
		return def.UseOnProspect.String() == flagEnabled
	case UseOnPeople:
		return def.UseOnPeople.String() == flagEnabled
	}
	return false
}

// ApplicabilityRule matches custom fields enabled on any of the listed flags.
type ApplicabilityRule struct {
	AnyOf []UseOnFlag
}

func (r ApplicabilityRule) Matches(def crmModel.CustomFieldDefinition) bool {
	for _, flag := range r.AnyOf {
		if flag.enabledOn(def) {
			return true
		}
	}
	return false
}

// ApplicabilityPredicate decides whether a custom field belongs to a catalog.
type ApplicabilityPredicate func(crmModel.CustomFieldDefinition) bool

// ApplicabilityTable binds an object or identity kind name to its rule.
type ApplicabilityTable map[string]ApplicabilityRule

// PredicateFor returns the predicate for kind. The second result is false for kinds the
// table does not know.
func (t ApplicabilityTable) PredicateFor(kind string) (ApplicabilityPredicate, bool) {
	rule, ok := t[kind]
	if !ok {
		return nil, false
	}
	return rule.Matches, true
}

// SyncApplicability selects the custom fields mapped during a fetch.
var SyncApplicability = ApplicabilityTable{
	"client":   {AnyOf: []UseOnFlag{UseOnClient, UseOnPeople}},
	"prospect": {AnyOf: []UseOnFlag{UseOnProspect, UseOnPeople}},
	"contact":  {AnyOf: []UseOnFlag{UseOnPeople}},
}

// IdentityListingApplicability selects the custom fields offered as identity sources.
var IdentityListingApplicability = ApplicabilityTable{
	"corporation": {AnyOf: []UseOnFlag{UseOnClient, UseOnProspect}},
	"person":      {AnyOf: []UseOnFlag{UseOnClient, UseOnProspect}},
	"contact":     {AnyOf: []UseOnFlag{UseOnPeople}},
}

// MappingListingApplicability selects the custom fields offered as mapping sources.
var MappingListingApplicability = ApplicabilityTable{
	"client":   {AnyOf: []UseOnFlag{UseOnClient}},
	"prospect": {AnyOf: []UseOnFlag{UseOnProspect}},
	"contact":  {AnyOf: []UseOnFlag{UseOnPeople}},
}
