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
	"path"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/auth"
	"github.com/asgardeo/conduit/internal/schema"
)

// Mode is the delivery mode of a destination.
type Mode string

// ModeCloud destinations call the vendor API from the server.
const ModeCloud Mode = "cloud"

// ActionSet is the closed set of actions a destination supports.
type ActionSet interface {
	// Names returns the action keys in a stable order.
	Names() []string
	// Get returns the definition of the named action.
	Get(name string) (*action.Definition, bool)
}

// Definition declares a destination.
type Definition struct {
	Name           string
	Slug           string
	Description    string
	Mode           Mode
	Authentication auth.Scheme
	// ExtendRequest is applied to every call after the authentication scheme.
	ExtendRequest auth.ExtendRequestFunc
	Actions       ActionSet
}

// Entry registers a definition under a stable id and a path. The last path element is
// the path key of the destination.
type Entry struct {
	ID         string
	Path       string
	Definition *Definition
}

// PathKey returns the last element of the entry path.
func (e Entry) PathKey() string {
	return pathKey(e.Path)
}

// Loader loads a destination definition on demand.
type Loader func() (*Definition, error)

// InvokeRequest is the input of a single action invocation.
type InvokeRequest struct {
	Event              interface{}            `json:"event"`
	Action             string                 `json:"-"`
	Mapping            map[string]interface{} `json:"mapping"`
	Settings           map[string]interface{} `json:"settings"`
	Auth               *auth.Credentials      `json:"auth,omitempty"`
	UseDefaultMappings bool                   `json:"useDefaultMappings"`
}

// DestinationSummary describes a registered destination.
type DestinationSummary struct {
	ID             string             `json:"id,omitempty"`
	PathKey        string             `json:"pathKey"`
	Name           string             `json:"name"`
	Slug           string             `json:"slug,omitempty"`
	Description    string             `json:"description,omitempty"`
	Mode           Mode               `json:"mode,omitempty"`
	Authentication auth.SchemeType    `json:"authentication"`
	Settings       []schema.FieldSpec `json:"settings,omitempty"`
	Actions        []ActionSummary    `json:"actions,omitempty"`
}

// ActionSummary describes an action of a destination.
type ActionSummary struct {
	Key                 string             `json:"key"`
	Title               string             `json:"title"`
	Description         string             `json:"description,omitempty"`
	DefaultSubscription string             `json:"defaultSubscription,omitempty"`
	Fields              []schema.FieldSpec `json:"fields"`
}

// DestinationListResponse is the body of the destination list response.
type DestinationListResponse struct {
	TotalResults int                  `json:"totalResults"`
	Destinations []DestinationSummary `json:"destinations"`
}

// InvokeActionResponse is the body of a successful invocation response.
type InvokeActionResponse struct {
	Responses []action.Response `json:"responses"`
}

// InvocationOutcome is the result of an invocation made through the service. Failure is set
// when the invocation failed; Result then holds the responses recorded before the failure.
type InvocationOutcome struct {
	InvocationID string
	Result       *action.InvocationResult
	Failure      *InvocationFailure
}

// InvocationFailure describes a failed invocation.
type InvocationFailure struct {
	Kind    string  `json:"kind"`
	Reason  string  `json:"reason"`
	Message string  `json:"message"`
	Status  int     `json:"status,omitempty"`
	Fields  []Field `json:"fields,omitempty"`
}

// Field is a failing field of a validation failure.
type Field struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvocationErrorResponse is the body of a failed invocation response.
type InvocationErrorResponse struct {
	Code        string             `json:"code"`
	Message     string             `json:"message"`
	Description string             `json:"description"`
	Failure     *InvocationFailure `json:"failure,omitempty"`
	Responses   []action.Response  `json:"responses"`
}

func pathKey(p string) string {
	if p == "" {
		return ""
	}
	return path.Base(p)
}

func summarize(entry Entry) DestinationSummary {
	def := entry.Definition
	summary := DestinationSummary{
		ID:          entry.ID,
		PathKey:     entry.PathKey(),
		Name:        def.Name,
		Slug:        def.Slug,
		Description: def.Description,
		Mode:        def.Mode,
	}
	scheme := def.Authentication
	if scheme == nil {
		scheme = auth.NoneScheme{}
	}
	summary.Authentication = scheme.Type()
	summary.Settings = scheme.SettingsFields()

	for _, name := range def.Actions.Names() {
		a, ok := def.Actions.Get(name)
		if !ok {
			continue
		}
		summary.Actions = append(summary.Actions, ActionSummary{
			Key:                 a.Key,
			Title:               a.Title,
			Description:         a.Description,
			DefaultSubscription: a.DefaultSubscription,
			Fields:              a.Fields,
		})
	}
	return summary
}
