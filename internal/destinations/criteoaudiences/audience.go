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

package criteoaudiences

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/mapping"
	"github.com/asgardeo/conduit/internal/schema"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
)

const (
	operationAdd    = "add"
	operationRemove = "remove"
)

type audienceAttributes struct {
	AdvertiserID string `json:"advertiserId,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
}

type audienceResource struct {
	ID         string             `json:"id,omitempty"`
	Type       string             `json:"type"`
	Attributes audienceAttributes `json:"attributes"`
}

type audienceList struct {
	Data []audienceResource `json:"data"`
}

type audienceDocument struct {
	Data audienceResource `json:"data"`
}

type contactListAmendment struct {
	Data contactListData `json:"data"`
}

type contactListData struct {
	Type       string                `json:"type"`
	Attributes contactListAttributes `json:"attributes"`
}

type contactListAttributes struct {
	Operation      string   `json:"operation"`
	IdentifierType string   `json:"identifierType"`
	Identifiers    []string `json:"identifiers"`
}

func audienceAction(key, title, operation, subscription string) *action.Definition {
	return &action.Definition{
		Key:                 key,
		Title:               title,
		Description:         title + " in Criteo.",
		DefaultSubscription: subscription,
		Fields: []schema.FieldSpec{
			{
				Name:        "audience_key",
				Label:       "Audience key",
				Description: "The name of the Criteo audience. It is created when missing.",
				Type:        schema.TypeString,
				Required:    true,
				Default:     mapping.MustPathRef("$.properties.audience_key"),
			},
			{
				Name:        "email",
				Label:       "Email",
				Description: "The email of the user.",
				Type:        schema.TypeString,
				Required:    true,
				Default:     mapping.MustPathRef("$.context.traits.email"),
			},
		},
		Perform: func(ctx context.Context, sender action.RequestSender, input action.Input) error {
			return amendAudience(ctx, sender, input, operation)
		},
	}
}

func amendAudience(ctx context.Context, sender action.RequestSender, input action.Input, operation string) error {
	advertiserID, _ := input.Settings.String(settingAdvertiserID)
	audienceKey, _ := input.Payload.String("audience_key")
	email, _ := input.Payload.String("email")

	audienceID, err := findAudience(ctx, sender, advertiserID, audienceKey)
	if err != nil {
		return err
	}
	if audienceID == "" {
		if operation == operationRemove {
			return nil
		}
		if audienceID, err = createAudience(ctx, sender, advertiserID, audienceKey); err != nil {
			return err
		}
	}

	_, err = sender.Send(ctx, apiBaseURL+"/audiences/"+url.PathEscape(audienceID)+"/contactlist",
		action.RequestOptions{
			Method: http.MethodPatch,
			JSON: contactListAmendment{Data: contactListData{
				Type: "ContactlistAmendment",
				Attributes: contactListAttributes{
					Operation:      operation,
					IdentifierType: "email",
					Identifiers:    []string{strings.ToLower(strings.TrimSpace(email))},
				},
			}},
		})
	return err
}

// findAudience returns the id of the advertiser audience with the given name, or an empty string.
func findAudience(ctx context.Context, sender action.RequestSender, advertiserID, name string) (string, error) {
	resp, err := sender.Send(ctx, apiBaseURL+"/audiences", action.RequestOptions{
		Method:       http.MethodGet,
		SearchParams: map[string]string{"advertiser-id": advertiserID},
	})
	if err != nil {
		return "", err
	}
	var list audienceList
	if err := decodeData(resp, &list); err != nil {
		return "", err
	}
	for _, a := range list.Data {
		if a.Attributes.Name == name {
			return a.ID, nil
		}
	}
	return "", nil
}

func createAudience(ctx context.Context, sender action.RequestSender, advertiserID, name string) (string, error) {
	resp, err := sender.Send(ctx, apiBaseURL+"/audiences", action.RequestOptions{
		Method: http.MethodPost,
		JSON: audienceDocument{Data: audienceResource{
			Type: "Audience",
			Attributes: audienceAttributes{
				AdvertiserID: advertiserID,
				Name:         name,
				Description:  name,
			},
		}},
	})
	if err != nil {
		return "", err
	}
	var created audienceDocument
	if err := decodeData(resp, &created); err != nil {
		return "", err
	}
	if created.Data.ID == "" {
		return "", integrationerror.NewTransportError(integrationerror.CodeResponseError, resp.Status,
			"audience creation returned no audience id", nil)
	}
	return created.Data.ID, nil
}

// decodeData converts the decoded JSON body of a response into v.
func decodeData(resp *action.Response, v interface{}) error {
	raw, err := json.Marshal(resp.Data)
	if err == nil {
		err = json.Unmarshal(raw, v)
	}
	if err != nil {
		return integrationerror.NewTransportError(integrationerror.CodeResponseError, resp.Status,
			"unexpected response body", err)
	}
	return nil
}
