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

import (
	"context"
	"sort"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/auth"
	"github.com/asgardeo/conduit/internal/mapping"
	"github.com/asgardeo/conduit/internal/schema"
)

// testActions is an ActionSet backed by a map.
type testActions map[string]*action.Definition

func (a testActions) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a testActions) Get(name string) (*action.Definition, bool) {
	def, ok := a[name]
	return def, ok
}

// postEventAction posts the payload as JSON to the endpoint setting.
func postEventAction() *action.Definition {
	return &action.Definition{
		Key:   "postEvent",
		Title: "Post Event",
		Fields: []schema.FieldSpec{
			{Name: "name", Label: "Event Name", Type: schema.TypeString, Required: true,
				Default: mapping.MustPathRef("$.event")},
			{Name: "count", Label: "Count", Type: schema.TypeInteger},
		},
		Perform: func(ctx context.Context, sender action.RequestSender, input action.Input) error {
			endpoint, _ := input.Settings.String("endpoint")
			_, err := sender.Send(ctx, endpoint+"/events", action.RequestOptions{
				Method: "POST",
				JSON:   map[string]interface{}(input.Payload),
			})
			return err
		},
	}
}

func endpointField() schema.FieldSpec {
	return schema.FieldSpec{Name: "endpoint", Label: "Endpoint", Type: schema.TypeString, Required: true}
}

func noneDefinition(name string) *Definition {
	return &Definition{
		Name:           name,
		Slug:           "actions-" + name,
		Mode:           ModeCloud,
		Authentication: auth.NoneScheme{Fields: []schema.FieldSpec{endpointField()}},
		Actions:        testActions{"postEvent": postEventAction()},
	}
}
