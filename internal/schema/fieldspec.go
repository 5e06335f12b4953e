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

// Package schema describes action and settings fields and validates resolved values against them.
package schema

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/asgardeo/conduit/internal/mapping"
)

// FieldType is the declared value type of a field.
type FieldType string

const (
	// TypeString is a text field.
	TypeString FieldType = "string"
	// TypeNumber is a floating point field.
	TypeNumber FieldType = "number"
	// TypeInteger is a whole number field.
	TypeInteger FieldType = "integer"
	// TypeBoolean is a true/false field.
	TypeBoolean FieldType = "boolean"
	// TypeObject is a key/value field, optionally with declared Properties.
	TypeObject FieldType = "object"
)

// FieldSpec declares one input field of an action or of an authentication scheme.
type FieldSpec struct {
	Name        string            `json:"name"`
	Label       string            `json:"label"`
	Description string            `json:"description,omitempty"`
	Type        FieldType         `json:"type"`
	Multiple    bool              `json:"multiple,omitempty"`
	Required    bool              `json:"required,omitempty"`
	Default     mapping.Directive `json:"-"`
	Choices     []string          `json:"choices,omitempty"`
	Properties  []FieldSpec       `json:"properties,omitempty"`
}

// CheckFields verifies that a list of field specs is well formed. Every problem is reported.
func CheckFields(fields []FieldSpec) error {
	return checkFields(fields, "")
}

func checkFields(fields []FieldSpec, parent string) error {
	var errs error
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		path := joinPath(parent, f.Name)
		if f.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: field name is empty", describeParent(parent)))
			continue
		}
		if _, dup := seen[f.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s: duplicate field", path))
		}
		seen[f.Name] = struct{}{}

		switch f.Type {
		case TypeString, TypeNumber, TypeInteger, TypeBoolean:
			if len(f.Properties) > 0 {
				errs = multierr.Append(errs, fmt.Errorf("%s: properties are only allowed on object fields", path))
			}
		case TypeObject:
			errs = multierr.Append(errs, checkFields(f.Properties, path))
		default:
			errs = multierr.Append(errs, fmt.Errorf("%s: unsupported field type %q", path, f.Type))
		}

		if len(f.Choices) > 0 && f.Type != TypeString {
			errs = multierr.Append(errs, errors.New(path+": choices are only allowed on string fields"))
		}
	}
	return errs
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func describeParent(parent string) string {
	if parent == "" {
		return "fields"
	}
	return parent
}
