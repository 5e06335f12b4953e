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

package action

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	sysconst "github.com/asgardeo/conduit/internal/system/constants"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
	syshttp "github.com/asgardeo/conduit/internal/system/http"
	"github.com/asgardeo/conduit/internal/system/log"
	sysutils "github.com/asgardeo/conduit/internal/system/utils"
)

const senderLoggerComponentName = "RequestSender"

// maxResponseBodyBytes bounds a response body. A larger body fails the call.
const maxResponseBodyBytes = 10 << 20

// HTTPSender sends calls with the HTTP client after applying its augmenters in order.
type HTTPSender struct {
	client     syshttp.HTTPClientInterface
	augmenters []Augmenter
	logger     *log.Logger
}

// NewHTTPSender creates a sender over the given HTTP client.
func NewHTTPSender(client syshttp.HTTPClientInterface, augmenters ...Augmenter) *HTTPSender {
	return &HTTPSender{
		client:     client,
		augmenters: augmenters,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, senderLoggerComponentName)),
	}
}

// Send issues one call. A response with a non 2xx status is returned together with a
// transport error. A call that received no response returns only the error.
func (s *HTTPSender) Send(ctx context.Context, rawURL string, opts RequestOptions) (*Response, error) {
	req, recorded, err := s.buildRequest(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("Outgoing call failed", log.String("method", recorded.Method), log.Error(err))
		return nil, integrationerror.NewTransportError(integrationerror.CodeRequestFailed, 0,
			fmt.Sprintf("%s %s failed", recorded.Method, req.URL.Redacted()), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes+1))
	if err != nil {
		return nil, integrationerror.NewTransportError(integrationerror.CodeRequestFailed, resp.StatusCode,
			"failed to read the response body", err)
	}
	if len(body) > maxResponseBodyBytes {
		return nil, integrationerror.NewTransportError(integrationerror.CodeRequestFailed, resp.StatusCode,
			fmt.Sprintf("response body of %s %s exceeds %d bytes", recorded.Method, req.URL.Redacted(),
				maxResponseBodyBytes), nil)
	}

	response := &Response{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Content: string(body),
		Request: recorded,
	}
	if isJSON(resp.Header.Get(sysconst.ContentTypeHeaderName), body) {
		var data interface{}
		if json.Unmarshal(body, &data) == nil {
			response.Data = data
		}
	}

	if s.logger.IsDebugEnabled() {
		fields := []log.Field{log.String("method", recorded.Method), log.Int("status", resp.StatusCode)}
		if authz := req.Header.Get(sysconst.AuthorizationHeaderName); authz != "" {
			fields = append(fields, log.String("authorization", log.MaskString(authz)))
		}
		s.logger.Debug("Outgoing call completed", fields...)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return response, integrationerror.NewTransportError(integrationerror.CodeResponseError, resp.StatusCode,
			fmt.Sprintf("%s %s returned %d %s", recorded.Method, req.URL.Redacted(), resp.StatusCode,
				http.StatusText(resp.StatusCode)), nil)
	}
	return response, nil
}

func (s *HTTPSender) buildRequest(ctx context.Context, rawURL string, opts RequestOptions) (*http.Request,
	Request, error) {
	target, err := sysutils.ParseURL(rawURL)
	if err != nil {
		return nil, Request{}, integrationerror.NewTransportError(integrationerror.CodeRequestFailed, 0,
			"invalid request URL", err)
	}
	if len(opts.SearchParams) > 0 {
		params := url.Values{}
		for k, v := range opts.SearchParams {
			params.Set(k, v)
		}
		sysutils.AppendQueryParams(target, params)
	}

	var (
		body        string
		contentType string
	)
	switch {
	case opts.JSON != nil:
		encoded, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, Request{}, integrationerror.NewTransportError(integrationerror.CodeRequestFailed, 0,
				"failed to encode the request body", err)
		}
		body, contentType = string(encoded), sysconst.ContentTypeJSON
	case opts.Form != nil:
		form := url.Values{}
		for k, v := range opts.Form {
			form.Set(k, v)
		}
		body, contentType = form.Encode(), sysconst.ContentTypeFormURLEncoded
	default:
		body = opts.Body
	}

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
		if body != "" {
			method = http.MethodPost
		}
	}

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, Request{}, integrationerror.NewTransportError(integrationerror.CodeRequestFailed, 0,
			"failed to create the request", err)
	}
	if contentType != "" {
		req.Header.Set(sysconst.ContentTypeHeaderName, contentType)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	for _, a := range s.augmenters {
		if err := a.Apply(req); err != nil {
			if _, ok := integrationerror.As(err); ok {
				return nil, Request{}, err
			}
			return nil, Request{}, integrationerror.NewAuthenticationError(
				integrationerror.CodeInvalidAuthentication, "failed to authenticate the request", err)
		}
	}

	headers := make(map[string]string, len(req.Header))
	for k := range req.Header {
		headers[k] = req.Header.Get(k)
	}
	return req, Request{Method: method, URL: req.URL.String(), Headers: headers, Body: body}, nil
}

func isJSON(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return true
	}
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
