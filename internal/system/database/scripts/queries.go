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

package scripts

var InsertSyncRun = map[string]string{
	"postgres": `INSERT INTO sync_runs (run_id, tenant_id, kind, trigger, status, pages, records, error, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
}

var UpdateSyncRun = map[string]string{
	"postgres": `
		UPDATE sync_runs
		SET status = $1,
			pages = $2,
			records = $3,
			error = $4,
			finished_at = $5
		WHERE run_id = $6`,
}

var GetSyncRunById = map[string]string{
	"postgres": `SELECT run_id, tenant_id, kind, trigger, status, pages, records, error, started_at, finished_at
		FROM sync_runs WHERE run_id = $1`,
}

var GetRecentSyncRuns = map[string]string{
	"postgres": `SELECT run_id, tenant_id, kind, trigger, status, pages, records, error, started_at, finished_at
		FROM sync_runs WHERE tenant_id = $1 ORDER BY started_at DESC LIMIT $2`,
}

var GetRecentSyncRunsByKind = map[string]string{
	"postgres": `SELECT run_id, tenant_id, kind, trigger, status, pages, records, error, started_at, finished_at
		FROM sync_runs WHERE tenant_id = $1 AND kind = $2 ORDER BY started_at DESC LIMIT $3`,
}

var AcquireSyncLock = map[string]string{
	"postgres": `
		INSERT INTO sync_locks (lock_key, owner, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (lock_key) DO UPDATE SET owner = EXCLUDED.owner, expires_at = EXCLUDED.expires_at
		WHERE sync_locks.expires_at < NOW() OR sync_locks.owner = EXCLUDED.owner`,
}

var ReleaseSyncLock = map[string]string{
	"postgres": `DELETE FROM sync_locks WHERE lock_key = $1 AND owner = $2`,
}
