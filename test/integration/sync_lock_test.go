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

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wso2/crm-customer-data-sync/internal/system/database/lock"
)

func Test_PostgresSyncLock(t *testing.T) {
	ctx := context.Background()
	replicaA := lock.NewPostgresLock(time.Minute)
	replicaB := lock.NewPostgresLock(time.Minute)
	key := testTenant + ":clients"

	t.Run("First_replica_acquires", func(t *testing.T) {
		acquired, err := replicaA.Acquire(ctx, key)
		require.NoError(t, err)
		require.True(t, acquired)
	})

	t.Run("Owner_can_renew", func(t *testing.T) {
		acquired, err := replicaA.Acquire(ctx, key)
		require.NoError(t, err)
		require.True(t, acquired)
	})

	t.Run("Second_replica_is_refused", func(t *testing.T) {
		acquired, err := replicaB.Acquire(ctx, key)
		require.NoError(t, err)
		require.False(t, acquired)
	})

	t.Run("Other_keys_are_independent", func(t *testing.T) {
		acquired, err := replicaB.Acquire(ctx, testTenant+":contacts")
		require.NoError(t, err)
		require.True(t, acquired)
		require.NoError(t, replicaB.Release(ctx, testTenant+":contacts"))
	})

	t.Run("Release_by_non_owner_is_ignored", func(t *testing.T) {
		require.NoError(t, replicaB.Release(ctx, key))
		acquired, err := replicaB.Acquire(ctx, key)
		require.NoError(t, err)
		require.False(t, acquired)
	})

	t.Run("Released_lock_can_be_taken", func(t *testing.T) {
		require.NoError(t, replicaA.Release(ctx, key))
		acquired, err := replicaB.Acquire(ctx, key)
		require.NoError(t, err)
		require.True(t, acquired)
		require.NoError(t, replicaB.Release(ctx, key))
	})

	t.Run("Expired_lease_can_be_taken", func(t *testing.T) {
		shortLived := lock.NewPostgresLock(100 * time.Millisecond)
		acquired, err := shortLived.Acquire(ctx, key)
		require.NoError(t, err)
		require.True(t, acquired)

		time.Sleep(300 * time.Millisecond)
		acquired, err = replicaA.Acquire(ctx, key)
		require.NoError(t, err)
		require.True(t, acquired)
		require.NoError(t, replicaA.Release(ctx, key))
	})
}
