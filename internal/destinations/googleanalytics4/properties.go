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

package googleanalytics4

import (
	"strings"

	"golang.org/x/text/currency"

	"github.com/asgardeo/conduit/internal/mapping"
	"github.com/asgardeo/conduit/internal/schema"
)

// measurementRequest is the Measurement Protocol request body.
type measurementRequest struct {
	ClientID       string                  `json:"client_id"`
	UserID         string                  `json:"user_id,omitempty"`
	Events         []measurementEvent      `json:"events"`
	UserProperties map[string]userProperty `json:"user_properties,omitempty"`
}

type measurementEvent struct {
	Name   string                 `json:"name"`
	Params map[string]interface{} `json:"params,omitempty"`
}

type userProperty struct {
	Value interface{} `json:"value"`
}

func clientIDField(name string) schema.FieldSpec {
	return schema.FieldSpec{
		Name:  name,
		Label: "Client ID",
		Description: "Uniquely identifies a user instance of a web client. " +
			"Defaults to the user id of the event.",
		Type:     schema.TypeString,
		Required: true,
		Default:  mapping.MustPathRef("$.userId"),
	}
}

func userIDField() schema.FieldSpec {
	return schema.FieldSpec{
		Name:        "user_id",
		Label:       "User ID",
		Description: "A unique identifier for a user.",
		Type:        schema.TypeString,
		Default:     mapping.MustPathRef("$.userId"),
	}
}

func userPropertiesField() schema.FieldSpec {
	return schema.FieldSpec{
		Name:        "user_properties",
		Label:       "User Properties",
		Description: "The user properties to send to Google Analytics 4.",
		Type:        schema.TypeObject,
	}
}

func engagementTimeField() schema.FieldSpec {
	return schema.FieldSpec{
		Name:  "engagement_time_msec",
		Label: "Engagement Time in Milliseconds",
		Description: "The amount of time a user interacted with your site, in milliseconds. " +
			"Events without it are not counted as active users.",
		Type: schema.TypeInteger,
	}
}

func paramsField() schema.FieldSpec {
	return schema.FieldSpec{
		Name:        "params",
		Label:       "Event Parameters",
		Description: "The event parameters to send to Google.",
		Type:        schema.TypeObject,
	}
}

func stringField(name, label, defaultPath string) schema.FieldSpec {
	f := schema.FieldSpec{Name: name, Label: label, Type: schema.TypeString}
	if defaultPath != "" {
		f.Default = mapping.MustPathRef(defaultPath)
	}
	return f
}

func numberField(name, label, defaultPath string) schema.FieldSpec {
	f := schema.FieldSpec{Name: name, Label: label, Type: schema.TypeNumber}
	if defaultPath != "" {
		f.Default = mapping.MustPathRef(defaultPath)
	}
	return f
}

// formatUserProperties wraps every user property value as {"value": v}.
func formatUserProperties(props map[string]interface{}) map[string]userProperty {
	if len(props) == 0 {
		return nil
	}
	formatted := make(map[string]userProperty, len(props))
	for k, v := range props {
		formatted[k] = userProperty{Value: v}
	}
	return formatted
}

// isCurrencyCode reports whether s is an upper case ISO 4217 currency code.
func isCurrencyCode(s string) bool {
	if s != strings.ToUpper(s) {
		return false
	}
	_, err := currency.ParseISO(s)
	return err == nil
}
