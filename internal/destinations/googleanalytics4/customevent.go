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
	"context"
	"net/http"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/mapping"
	"github.com/asgardeo/conduit/internal/schema"
)

func customEvent() *action.Definition {
	return &action.Definition{
		Key:                 "customEvent",
		Title:               "Custom Event",
		Description:         "Send any custom event",
		DefaultSubscription: `type = "track"`,
		Fields: []schema.FieldSpec{
			clientIDField("clientId"),
			userIDField(),
			{
				Name:  "name",
				Label: "Event Name",
				Description: "The unique name of the custom event created in GA4. " +
					"Spaces in the name are replaced with underscores.",
				Type:     schema.TypeString,
				Required: true,
				Default:  mapping.MustPathRef("$.event"),
			},
			{
				Name:        "lowercase",
				Label:       "Lowercase Event Name",
				Description: "If true, the event name is converted to lowercase before it is sent.",
				Type:        schema.TypeBoolean,
				Default:     mapping.NewLiteral(false),
			},
			userPropertiesField(),
			engagementTimeField(),
			paramsField(),
		},
		Perform: performCustomEvent,
	}
}

func performCustomEvent(ctx context.Context, sender action.RequestSender, input action.Input) error {
	p := input.Payload
	clientID, _ := p.String("clientId")
	userID, _ := p.String("user_id")
	name, _ := p.String("name")
	params, _ := p.Object("params")
	userProps, _ := p.Object("user_properties")

	_, err := sender.Send(ctx, collectURL, action.RequestOptions{
		Method: http.MethodPost,
		JSON: measurementRequest{
			ClientID: clientID,
			UserID:   userID,
			Events: []measurementEvent{
				{Name: normalizeEventName(name, p.Bool("lowercase")), Params: params},
			},
			UserProperties: formatUserProperties(userProps),
		},
	})
	return err
}

// normalizeEventName trims the name and replaces whitespace with underscores.
func normalizeEventName(name string, lowercase bool) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if lowercase {
		name = cases.Lower(language.Und).String(name)
	}
	return name
}
