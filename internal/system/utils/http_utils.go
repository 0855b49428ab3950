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

package utils

import (
	"errors"
	"net/http"

	gojson "github.com/goccy/go-json"

	customerrors "github.com/wso2/crm-customer-data-sync/internal/system/errors"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error. Client errors
// carry their own status; everything else is logged and reported as a 500.
func HandleError(w http.ResponseWriter, err error) {

	var clientError *customerrors.ClientError
	if ok := errors.As(err, &clientError); ok {
		WriteJSON(w, clientError.StatusCode, clientError.ErrorMessage)
		return
	}

	logger := log.GetLogger()
	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger.Error(err.Error(), log.String("code", serverError.Code), log.String("traceId", serverError.TraceID))
		WriteJSON(w, http.StatusInternalServerError, customerrors.ErrorMessage{
			Code:    serverError.Code,
			Message: serverError.Message,
			TraceID: serverError.TraceID,
		})
		return
	}

	logger.Error("Unhandled error", log.Error(err))
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "Internal server error",
	})
}

// WriteJSON writes data as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = gojson.NewEncoder(w).Encode(data)
}

// WriteBadRequest reports a malformed request.
func WriteBadRequest(w http.ResponseWriter, description string) {
	WriteJSON(w, http.StatusBadRequest, customerrors.BAD_REQUEST.WithDescription("%s", description))
}
