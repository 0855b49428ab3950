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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString accepts JSON strings, numbers, booleans and null. The CRM API is not
// consistent about quoting ids and numeric columns.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		*s = ""
	case trimmed[0] == '"':
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = FlexString(str)
	case trimmed[0] == '{', trimmed[0] == '[':
		*s = ""
	default:
		*s = FlexString(trimmed)
	}
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// FlexInt accepts JSON numbers and numeric strings. Anything else decodes to 0.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {

	var s FlexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	str := strings.TrimSpace(string(s))
	if str == "" {
		*i = 0
		return nil
	}
	if n, err := strconv.Atoi(str); err == nil {
		*i = FlexInt(n)
		return nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		*i = 0
		return nil
	}
	*i = FlexInt(int(f))
	return nil
}

// Entry is one member of a JSON object, kept with its key.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// OrderedEntries decodes a JSON object into its members in document order. Arrays are
// accepted too (keys become indexes) because the CRM returns [] for empty collections.
type OrderedEntries []Entry

func (o *OrderedEntries) UnmarshalJSON(data []byte) error {
	entries, err := decodeOrdered(data)
	if err != nil {
		return err
	}
	*o = entries
	return nil
}

// MarshalJSON writes the entries back as an object in their original order.
func (o OrderedEntries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(e.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(e.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Values returns the raw member values in document order.
func (o OrderedEntries) Values() []json.RawMessage {
	values := make([]json.RawMessage, 0, len(o))
	for _, e := range o {
		values = append(values, e.Value)
	}
	return values
}

func decodeOrdered(data []byte) (OrderedEntries, error) {

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		// null, "", false: the CRM uses all of them for "nothing here".
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, _ := tok.(json.Delim)

	var entries OrderedEntries
	index := 0
	for dec.More() {
		key := strconv.Itoa(index)
		if delim == '{' {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			str, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			key = str
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: value})
		index++
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
