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

package mapping

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

const (
	// PathKey marks an object as a path directive: {"@path": "$.event"}.
	PathKey = "@path"
	// MergeKey holds one directive or a list of directives whose objects are spread into the parent.
	MergeKey = "@merge"
)

// Parse converts a raw JSON-like mapping value into a directive. Every malformed
// directive in the tree is reported.
func Parse(raw interface{}) (Directive, error) {
	return parseAt("", raw)
}

// ParseMapping parses every entry of a raw field mapping.
func ParseMapping(raw map[string]interface{}) (map[string]Directive, error) {
	directives := make(map[string]Directive, len(raw))
	var errs error

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		d, err := parseAt(key, raw[key])
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		directives[key] = d
	}
	if errs != nil {
		return nil, errs
	}
	return directives, nil
}

func parseAt(location string, raw interface{}) (Directive, error) {
	switch v := raw.(type) {
	case map[string]interface{}:
		if _, ok := v[PathKey]; ok {
			return parsePathDirective(location, v)
		}
		return parseObject(location, v)
	case []interface{}:
		items := make([]Directive, 0, len(v))
		var errs error
		for i, item := range v {
			d, err := parseAt(fmt.Sprintf("%s[%d]", location, i), item)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			items = append(items, d)
		}
		if errs != nil {
			return nil, errs
		}
		return List{Items: items}, nil
	case nil, string, bool, json.Number:
		return Literal{Value: v}, nil
	default:
		if isNumber(v) {
			return Literal{Value: v}, nil
		}
		return nil, fmt.Errorf("%s: unsupported mapping value of type %T", describe(location), raw)
	}
}

func parsePathDirective(location string, v map[string]interface{}) (Directive, error) {
	if len(v) != 1 {
		return nil, fmt.Errorf("%s: %s directive must not have sibling keys", describe(location), PathKey)
	}
	expr, ok := v[PathKey].(string)
	if !ok {
		return nil, fmt.Errorf("%s: %s directive must be a string", describe(location), PathKey)
	}
	ref, err := NewPathRef(strings.TrimSpace(expr))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", describe(location), err)
	}
	return ref, nil
}

func parseObject(location string, v map[string]interface{}) (Directive, error) {
	composite := Composite{Entries: make(map[string]Directive, len(v))}
	var errs error

	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		child := joinLocation(location, key)
		if key == MergeKey {
			merge, err := parseMerge(child, v[key])
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			composite.Merge = merge
			continue
		}
		if strings.HasPrefix(key, "@") {
			errs = multierr.Append(errs, fmt.Errorf("%s: unsupported directive %q", describe(location), key))
			continue
		}
		d, err := parseAt(child, v[key])
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		composite.Entries[key] = d
	}

	if errs != nil {
		return nil, errs
	}
	return composite, nil
}

func parseMerge(location string, raw interface{}) ([]Directive, error) {
	rawItems, isList := raw.([]interface{})
	if !isList {
		rawItems = []interface{}{raw}
	}

	merge := make([]Directive, 0, len(rawItems))
	var errs error
	for i, item := range rawItems {
		itemLocation := location
		if isList {
			itemLocation = fmt.Sprintf("%s[%d]", location, i)
		}
		if _, ok := item.(map[string]interface{}); !ok {
			errs = multierr.Append(errs, fmt.Errorf("%s: %s entries must be objects or path directives",
				describe(itemLocation), MergeKey))
			continue
		}
		d, err := parseAt(itemLocation, item)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		merge = append(merge, d)
	}
	if errs != nil {
		return nil, errs
	}
	return merge, nil
}

func joinLocation(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func describe(location string) string {
	if location == "" {
		return "mapping"
	}
	return location
}

// isNumber reports whether the value is one of the Go numeric kinds produced by decoders.
func isNumber(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return true
	default:
		return false
	}
}
