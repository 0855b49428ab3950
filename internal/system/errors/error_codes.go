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

package errors

const errorPrefix = "CSYNC-"

var (
	// Server error codes

	FETCH_CUSTOM_FIELDS = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while fetching custom field definitions.",
	}

	FETCH_CRM_RECORDS = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while fetching records from the CRM.",
	}

	CRM_REQUEST = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while calling the CRM API.",
	}

	WRITE_PLATFORM = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while writing to the customer data platform.",
	}

	LINK_ALIAS = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while linking an anonymous id.",
	}

	PLATFORM_TOKEN = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while signing the platform access token.",
	}

	CACHE_OPERATION = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while accessing the cache.",
	}

	ADD_SYNC_RUN = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while recording the sync run.",
	}

	UPDATE_SYNC_RUN = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while updating the sync run.",
	}

	FETCH_SYNC_RUNS = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching sync runs.",
	}

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Unable to initialize database client.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while un-marshalling JSON.",
	}

	MAP_RECORD = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while mapping a CRM record.",
	}

	SYNC_LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while acquiring the sync lock.",
	}

	SYNC_LOCK_RELEASE = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while releasing the sync lock.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UNKNOWN_OBJECT_KIND = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Unknown object kind.",
	}

	INVALID_CONNECTOR_SETTINGS = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Invalid connector settings.",
	}

	INVALID_DIRECTION = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Invalid direction.",
		Description: "Direction must be either 'incoming' or 'outgoing'.",
	}

	SYNC_QUEUE_FULL = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Sync queue is full.",
		Description: "Too many fetch jobs are pending. Retry later.",
	}

	CONNECTOR_NOT_AUTHENTICATED = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Connector is not authenticated.",
	}

	SYNC_ALREADY_RUNNING = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "A sync run for this object kind is already in progress.",
	}

	SYNC_RUN_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "Sync run not found.",
	}

	UNSUPPORTED_WEBHOOK = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Unsupported webhook notification.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Unauthorized request.",
	}

	SYNC_WORKER_STOPPED = ErrorMessage{
		Code:    errorPrefix + "11011",
		Message: "The sync worker is not accepting jobs.",
	}
)
