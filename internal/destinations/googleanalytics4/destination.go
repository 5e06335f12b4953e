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

// Package googleanalytics4 sends events to the Google Analytics 4 Measurement Protocol.
package googleanalytics4

import (
	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/auth"
	"github.com/asgardeo/conduit/internal/destination"
	"github.com/asgardeo/conduit/internal/schema"
)

const (
	// ID is the catalog identifier of the destination.
	ID = "60ad61f9ff47a16b8fb7b5d9"
	// Path is the catalog path of the destination. Its last element is the path key.
	Path = "destinations/google-analytics-4"

	collectURL = "https://www.google-analytics.com/mp/collect"

	settingMeasurementID = "measurementId"
	settingAPISecret     = "apiSecret"
)

// Definition returns the Google Analytics 4 destination.
func Definition() *destination.Definition {
	return &destination.Definition{
		Name:        "Google Analytics 4 Cloud",
		Slug:        "actions-google-analytics-4",
		Description: "Send events server-side to the Google Analytics 4 Measurement Protocol.",
		Mode:        destination.ModeCloud,
		Authentication: auth.CustomScheme{
			Fields: []schema.FieldSpec{
				{
					Name:  settingMeasurementID,
					Label: "Measurement ID",
					Description: "The measurement ID associated with the web stream. " +
						"Found in the Google Analytics UI under Admin > Data Streams > Web > Measurement ID.",
					Type:     schema.TypeString,
					Required: true,
				},
				{
					Name:  settingAPISecret,
					Label: "API Secret",
					Description: "An API secret generated in the Google Analytics UI, navigate to " +
						"Admin > Data Streams > choose your stream > Measurement Protocol > Create.",
					Type:     schema.TypeString,
					Required: true,
				},
			},
			ExtendRequest: extendRequest,
		},
		Actions: actionSet{},
	}
}

func extendRequest(state auth.State) auth.RequestExtension {
	measurementID, _ := state.Settings.String(settingMeasurementID)
	apiSecret, _ := state.Settings.String(settingAPISecret)
	return auth.RequestExtension{
		SearchParams: map[string]string{
			"measurement_id": measurementID,
			"api_secret":     apiSecret,
		},
	}
}

type actionSet struct{}

func (actionSet) Names() []string {
	return []string{"customEvent", "refund"}
}

func (actionSet) Get(name string) (*action.Definition, bool) {
	switch name {
	case "customEvent":
		return customEvent(), true
	case "refund":
		return refund(), true
	}
	return nil, false
}
