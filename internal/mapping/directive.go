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

// Package mapping resolves field directives against an incoming event document.
//
// A directive is either a literal value, a path reference into the event, a composite
// object built from nested directives, or a list of directives. Directives are built with
// Parse from the raw JSON-like mapping supplied by the caller, or constructed directly by
// destination definitions for field defaults.
package mapping

// Directive is a resolvable mapping expression.
type Directive interface {
	resolve(doc interface{}) (interface{}, bool, error)
}

// Literal resolves to its own value.
type Literal struct {
	Value interface{}
}

// PathRef resolves to the value found at a path in the document.
type PathRef struct {
	path Path
}

// Composite resolves to an object. Directives under Merge must produce objects; they are
// merged left to right before the explicit Entries are applied on top.
type Composite struct {
	Entries map[string]Directive
	Merge   []Directive
}

// List resolves every item and drops the absent ones.
type List struct {
	Items []Directive
}

// NewLiteral returns a literal directive.
func NewLiteral(value interface{}) Literal {
	return Literal{Value: value}
}

// NewPathRef parses the path expression and returns a path directive.
func NewPathRef(expr string) (PathRef, error) {
	p, err := ParsePath(expr)
	if err != nil {
		return PathRef{}, err
	}
	return PathRef{path: p}, nil
}

// MustPathRef is like NewPathRef but panics on an invalid expression.
// It is meant for field defaults declared in destination definitions.
func MustPathRef(expr string) PathRef {
	ref, err := NewPathRef(expr)
	if err != nil {
		panic(err)
	}
	return ref
}

// Path returns the parsed path of the directive.
func (r PathRef) Path() Path {
	return r.path
}

// String returns the path expression.
func (r PathRef) String() string {
	return r.path.String()
}
