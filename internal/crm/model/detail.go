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
	"encoding/json"

	"github.com/wso2/crm-customer-data-sync/internal/system/utils"
)

// ClientDetail is the single-record document returned by Client.getOne and
// Prospects.getOne. It is shaped differently from a list entry.
type ClientDetail struct {
	Client       map[string]interface{} `json:"client"`
	Corporation  map[string]interface{} `json:"corporation"`
	Contact      map[string]interface{} `json:"contact"`
	Address      json.RawMessage        `json:"address"`
	Contacts     json.RawMessage        `json:"contacts"`
	CustomFields json.RawMessage        `json:"customFields"`
	SmartTags    json.RawMessage        `json:"smartTags"`
	Score        map[string]interface{} `json:"score"`
	Avatar       interface{}            `json:"avatar"`
}

// FlattenClientDetail reshapes a detail document into the list record layout so
// the same mapping tables apply to webhook driven single-record syncs.
func FlattenClientDetail(detail ClientDetail) (Record, error) {

	addresses, err := decodeMaps(detail.Address)
	if err != nil {
		return Record{}, err
	}
	primary := findFlagged(addresses, "isMain")
	delivery := findFlagged(addresses, "isMainDeliv")

	contacts, err := decodeOrdered(detail.Contacts)
	if err != nil {
		return Record{}, err
	}
	var mainContact map[string]interface{}
	for _, raw := range contacts.Values() {
		var c map[string]interface{}
		if err := json.Unmarshal(raw, &c); err != nil {
			return Record{}, err
		}
		if utils.StringValue(c["isMain"]) == "Y" {
			mainContact = c
		}
	}

	customFields, err := flattenCustomFieldGroups(detail.CustomFields)
	if err != nil {
		return Record{}, err
	}

	client := detail.Client
	corp := detail.Corporation
	contact := detail.Contact
	fromCorpOrContact := func(key string) string {
		if v, ok := corp[key]; ok && corp != nil {
			return utils.StringValue(v)
		}
		return utils.StringValue(contact[key])
	}
	web := fromCorpOrContact("web")

	fields := map[string]interface{}{
		"id":                            utils.StringValue(client["id"]),
		"type":                          utils.StringValue(client["type"]),
		"name":                          utils.StringValue(client["name"]),
		"fullName":                      utils.StringValue(client["name"]),
		"thirdid":                       utils.StringValue(client["detailsid"]),
		"corpid":                        utils.StringValue(client["corpid"]),
		"accountingCode":                utils.StringValue(client["accountingCode"]),
		"auxCode":                       utils.StringValue(client["auxCode"]),
		"actif":                         utils.StringValue(client["actif"]),
		"joindate":                      utils.StringValue(client["joindate"]),
		"lastactivity":                  utils.StringValue(client["lastactivity"]),
		"dateTransformProspect":         utils.StringValue(client["transformationDate"]),
		"massmailingUnsubscribed":       utils.StringValue(client["massmailingUnsubscribed"]),
		"massmailingUnsubscribedCustom": utils.StringValue(client["massmailingUnsubscribedCustom"]),
		"massmailingUnsubscribedMail":   utils.StringValue(client["massmailingUnsubscribedMail"]),
		"massmailingUnsubscribedSMS":    utils.StringValue(client["massmailingUnsubscribedSMS"]),
		"phoningUnsubscribed":           utils.StringValue(client["phoningUnsubscribed"]),
		"ownerid":                       utils.StringValue(client["ownerid"]),
		"rateCategory":                  utils.StringValue(client["rateCategory"]),
		"relationType":                  utils.StringValue(client["relationType"]),
		"stickyNote":                    utils.StringValue(client["stickyNote"]),
		"apenaf":                        utils.StringValue(corp["apenaf"]),
		"capital":                       utils.StringValue(corp["capital"]),
		"corpType":                      utils.StringValue(corp["type"]),
		"logo":                          utils.StringValue(corp["logo"]),
		"rcs":                           utils.StringValue(corp["rcs"]),
		"siren":                         utils.StringValue(corp["siren"]),
		"siret":                         utils.StringValue(corp["siret"]),
		"vat":                           utils.StringValue(corp["vat"]),
		"email":                         fromCorpOrContact("email"),
		"fax":                           fromCorpOrContact("fax"),
		"mobile":                        fromCorpOrContact("mobile"),
		"tel":                           fromCorpOrContact("tel"),
		"web":                           web,
		"webUrl":                        web,
		"contactId":                     utils.StringValue(contact["id"]),
		"people_civil":                  utils.StringValue(contact["civil"]),
		"people_forename":               utils.StringValue(contact["forename"]),
		"people_name":                   utils.StringValue(contact["name"]),
		"mainContactName":               utils.StringValue(mainContact["name"]),
		"maincontactid":                 utils.StringValue(mainContact["id"]),
		"score":                         utils.StringValue(detail.Score["value"]),
		"scoreFormatted":                utils.StringValue(detail.Score["formatted"]),
		"avatar":                        detail.Avatar,
		"mainaddressid":                 utils.StringValue(primary["id"]),
		"mainAddress":                   utils.StringValue(primary["toHTML"]),
		"maindelivaddressid":            utils.StringValue(delivery["id"]),
		"delivAddress":                  utils.StringValue(delivery["toHTML"]),
		"customfields":                  customFields,
	}
	for _, part := range []string{"name", "part1", "part2", "zip", "town", "state", "lat", "lng", "countrycode", "countryname"} {
		fields["addr_"+part] = utils.StringValue(primary[part])
		fields["delivaddr_"+part] = utils.StringValue(delivery[part])
	}
	if len(detail.SmartTags) > 0 {
		fields["smartTags"] = detail.SmartTags
	}
	if len(detail.Contacts) > 0 {
		fields["contacts"] = detail.Contacts
	}

	return recordFromFields(fields)
}

// FlattenContactDetail reshapes a Peoples.getOne document into the list record layout.
func FlattenContactDetail(data []byte) (Record, error) {

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return Record{}, err
	}
	customFields, err := flattenCustomFieldGroups(members["customFields"])
	if err != nil {
		return Record{}, err
	}

	fields := map[string]interface{}{}
	for key, raw := range members {
		if key == "customFields" {
			continue
		}
		fields[key] = raw
	}
	id := members["id"]
	fields["customfields"] = customFields
	fields["isMain"] = ""
	fields["thirdid"] = id
	fields["peopleid"] = id

	return recordFromFields(fields)
}

func recordFromFields(fields map[string]interface{}) (Record, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return Record{}, err
	}
	return ParseRecord(data)
}

// flattenCustomFieldGroups turns {"<group>": {"list": [...]}} into a single list.
func flattenCustomFieldGroups(raw json.RawMessage) ([]json.RawMessage, error) {
	groups, err := decodeOrdered(raw)
	if err != nil {
		return nil, err
	}
	flat := []json.RawMessage{}
	for _, groupRaw := range groups.Values() {
		var group struct {
			List json.RawMessage `json:"list"`
		}
		if err := json.Unmarshal(groupRaw, &group); err != nil {
			return nil, err
		}
		items, err := decodeOrdered(group.List)
		if err != nil {
			return nil, err
		}
		flat = append(flat, items.Values()...)
	}
	return flat, nil
}

func decodeMaps(raw json.RawMessage) ([]map[string]interface{}, error) {
	entries, err := decodeOrdered(raw)
	if err != nil {
		return nil, err
	}
	maps := make([]map[string]interface{}, 0, len(entries))
	for _, v := range entries.Values() {
		var m map[string]interface{}
		if err := json.Unmarshal(v, &m); err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}

func findFlagged(items []map[string]interface{}, flag string) map[string]interface{} {
	for _, item := range items {
		if utils.StringValue(item[flag]) == "Y" {
			return item
		}
	}
	return nil
}
