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

// Package utils provides utility functions for HTTP operations.
package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/asgardeo/conduit/internal/system/constants"
	"github.com/asgardeo/conduit/internal/system/log"
)

// maxRequestBodyBytes bounds the size of decoded API request bodies.
const maxRequestBodyBytes = 1 << 20

// DecodeJSONBody decodes the JSON body of the request into a value of type T.
func DecodeJSONBody[T any](r *http.Request) (*T, error) {
	if r.Body == nil {
		return nil, errors.New("request body is empty")
	}

	var data T
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.UseNumber()
	if err := decoder.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request body is empty")
		}
		return nil, errors.New("failed to decode request body: " + err.Error())
	}
	return &data, nil
}

// WriteJSONResponse writes the given value as a JSON response with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.GetLogger().Error("Error encoding response", log.Error(err))
	}
}

// ParseURL parses the given URL string and returns a URL object.
// Only absolute http and https URLs are accepted.
func ParseURL(urlStr string) (*url.URL, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New("unsupported URL scheme: " + parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return nil, errors.New("URL host is empty")
	}
	return parsedURL, nil
}

// AppendQueryParams merges the given parameters into the query of the URL. Existing keys are replaced.
func AppendQueryParams(u *url.URL, params url.Values) {
	if len(params) == 0 {
		return
	}
	query := u.Query()
	for key, values := range params {
		query.Del(key)
		for _, v := range values {
			query.Add(key, v)
		}
	}
	u.RawQuery = query.Encode()
}

// GetAllowedOrigin returns the configured origin matching the request origin, or an empty string.
func GetAllowedOrigin(allowedOrigins []string, requestOrigin string) string {
	requestOrigin = strings.TrimSuffix(requestOrigin, "/")
	for _, allowedOrigin := range allowedOrigins {
		if strings.EqualFold(strings.TrimSuffix(allowedOrigin, "/"), requestOrigin) {
			return allowedOrigin
		}
	}
	return ""
}
