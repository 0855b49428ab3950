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

package lock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLock(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLock()

	ok, err := l.Acquire(ctx, "acme:clients")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Acquire(ctx, "acme:clients")
	require.NoError(t, err)
	assert.False(t, ok, "second acquire of a held key must fail")

	ok, _ = l.Acquire(ctx, "acme:contacts")
	assert.True(t, ok, "keys are independent")

	require.NoError(t, l.Release(ctx, "acme:clients"))
	ok, _ = l.Acquire(ctx, "acme:clients")
	assert.True(t, ok)
}
