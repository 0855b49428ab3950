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

package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// MaxLimit caps every listing page.
const MaxLimit = 200

// ParseLimit reads the limit query parameter. A missing parameter yields fallback and
// values above MaxLimit are clamped.
func ParseLimit(r *http.Request, fallback int) (int, error) {
	limit := fallback

	if l := r.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("invalid limit %q: must be a positive integer", l)
		}
		limit = v
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, nil
}
