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

// Package gainsightpx forwards events to the Gainsight PX real time event endpoint.
package gainsightpx

import (
	"context"
	"fmt"
	"net/http"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/auth"
	"github.com/asgardeo/conduit/internal/destination"
	"github.com/asgardeo/conduit/internal/mapping"
	"github.com/asgardeo/conduit/internal/schema"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
)

const (
	// ID is the catalog identifier of the destination.
	ID = "61f83101210c42a28a88d240"
	// Path is the catalog path of the destination.
	Path = "destinations/gainsight-px-cloud-action"

	apiKeyHeaderName = "X-APTRINSIC-API-KEY"
	pushPath         = "/rte/segmentio/v1/push"
)

// dataCenters maps the data center setting to the event endpoint host.
var dataCenters = map[string]string{
	"north_america": "https://segment-esp.aptrinsic.com",
	"europe":        "https://segment-esp-eu.aptrinsic.com",
	"us2":           "https://segment-esp-us2.aptrinsic.com",
}

// Definition returns the Gainsight PX destination.
func Definition() *destination.Definition {
	return &destination.Definition{
		Name:        "Gainsight PX Cloud (Actions)",
		Slug:        "actions-gainsight-px-cloud-action",
		Description: "Send events to Gainsight PX.",
		Mode:        destination.ModeCloud,
		Authentication: auth.APIKeyScheme{
			Fields: []schema.FieldSpec{
				{
					Name:        "apiKey",
					Label:       "API Key",
					Description: "The Segment integration key found in the Gainsight PX integrations page.",
					Type:        schema.TypeString,
					Required:    true,
				},
				{
					Name:        "dataCenter",
					Label:       "Data Center",
					Description: "The Gainsight PX data center of the account.",
					Type:        schema.TypeString,
					Required:    true,
					Choices:     []string{"north_america", "europe", "us2"},
					Default:     mapping.NewLiteral("north_america"),
				},
			},
			SettingName: "apiKey",
			In:          auth.KeyInHeader,
			Name:        apiKeyHeaderName,
		},
		Actions: actionSet{},
	}
}

type actionSet struct{}

func (actionSet) Names() []string {
	return []string{"trackEvent"}
}

func (actionSet) Get(name string) (*action.Definition, bool) {
	if name == "trackEvent" {
		return trackEvent(), true
	}
	return nil, false
}

func trackEvent() *action.Definition {
	return &action.Definition{
		Key:                 "trackEvent",
		Title:               "Track Event",
		Description:         "Send an event to Gainsight PX.",
		DefaultSubscription: `type = "track" or type = "identify" or type = "page" or type = "group"`,
		Fields: []schema.FieldSpec{
			{
				Name:        "allFields",
				Label:       "All Fields",
				Description: "The whole event.",
				Type:        schema.TypeObject,
				Required:    true,
				Default:     mapping.MustPathRef("$."),
			},
		},
		Perform: func(ctx context.Context, sender action.RequestSender, input action.Input) error {
			endpoint, err := pushURL(input.Settings)
			if err != nil {
				return err
			}
			_, err = sender.Send(ctx, endpoint, action.RequestOptions{
				Method: http.MethodPost,
				JSON:   map[string]interface{}(input.Payload),
			})
			return err
		},
	}
}

func pushURL(settings schema.Payload) (string, error) {
	dc, _ := settings.String("dataCenter")
	host, ok := dataCenters[dc]
	if !ok {
		return "", integrationerror.NewValidationError(integrationerror.CodeSettingsValidation,
			fmt.Sprintf("unknown data center %q", dc))
	}
	return host + pushPath, nil
}
