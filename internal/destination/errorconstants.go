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

package destination

import "github.com/asgardeo/conduit/internal/system/error/serviceerror"

// Client errors for destination operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request body is malformed.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DST-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorDestinationNotFound is the error returned when a destination is not found.
	ErrorDestinationNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DST-1002",
		Error:            "Destination not found",
		ErrorDescription: "No destination is registered with the given id or path key",
	}
	// ErrorActionNotFound is the error returned when the destination has no such action.
	ErrorActionNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DST-1003",
		Error:            "Action not found",
		ErrorDescription: "The destination does not support the requested action",
	}
	// ErrorInvalidPayload is the error returned when the mapped payload or the settings are invalid.
	ErrorInvalidPayload = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DST-1004",
		Error:            "Invalid payload",
		ErrorDescription: "The mapped payload or the destination settings failed validation",
	}
	// ErrorAuthenticationFailed is the error returned when credentials could not be obtained.
	ErrorAuthenticationFailed = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DST-1005",
		Error:            "Authentication failed",
		ErrorDescription: "Credentials for the destination could not be obtained",
	}
	// ErrorInvalidDestinationID is the error returned when the destination id is empty.
	ErrorInvalidDestinationID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DST-1006",
		Error:            "Invalid destination id",
		ErrorDescription: "The destination id or path key must not be empty",
	}
	// ErrorInvalidLimit is the error returned when the limit parameter is invalid.
	ErrorInvalidLimit = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DST-1007",
		Error:            "Invalid pagination parameter",
		ErrorDescription: "The limit parameter must be a positive integer",
	}
)

// Server errors for destination operations.
var (
	// ErrorInternalServerError is the error returned when an unexpected error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "DST-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
	// ErrorDestinationCallFailed is the error returned when a call to the vendor API failed.
	ErrorDestinationCallFailed = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "DST-5002",
		Error:            "Destination call failed",
		ErrorDescription: "A call to the destination API failed",
	}
)
