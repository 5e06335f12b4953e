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
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

// Resolve evaluates the directive against the document. The boolean result reports
// whether a value was found. The document is never modified.
func Resolve(d Directive, doc interface{}) (interface{}, bool, error) {
	if d == nil {
		return nil, false, nil
	}
	return d.resolve(doc)
}

func (l Literal) resolve(interface{}) (interface{}, bool, error) {
	return l.Value, true, nil
}

func (r PathRef) resolve(doc interface{}) (interface{}, bool, error) {
	value, ok := r.path.Lookup(doc)
	if !ok {
		return nil, false, nil
	}
	return cloneValue(value), true, nil
}

func (c Composite) resolve(doc interface{}) (interface{}, bool, error) {
	result := make(map[string]interface{}, len(c.Entries))
	var errs error

	for i, d := range c.Merge {
		value, ok, err := Resolve(d, doc)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s[%d]: %w", MergeKey, i, err))
			continue
		}
		if !ok || value == nil {
			continue
		}
		obj, isObject := value.(map[string]interface{})
		if !isObject {
			errs = multierr.Append(errs, fmt.Errorf("%s[%d]: expected an object but got %s",
				MergeKey, i, TypeName(value)))
			continue
		}
		for k, v := range obj {
			result[k] = v
		}
	}

	for _, key := range sortedKeys(c.Entries) {
		value, ok, err := Resolve(c.Entries[key], doc)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		if ok {
			result[key] = value
		}
	}

	if errs != nil {
		return nil, false, errs
	}
	return result, true, nil
}

func (l List) resolve(doc interface{}) (interface{}, bool, error) {
	result := make([]interface{}, 0, len(l.Items))
	var errs error

	for i, d := range l.Items {
		value, ok, err := Resolve(d, doc)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("[%d]: %w", i, err))
			continue
		}
		if ok {
			result = append(result, value)
		}
	}

	if errs != nil {
		return nil, false, errs
	}
	return result, true, nil
}

// cloneValue copies maps and slices so that resolved values never alias the document.
func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		cloned := make(map[string]interface{}, len(v))
		for k, item := range v {
			cloned[k] = cloneValue(item)
		}
		return cloned
	case []interface{}:
		cloned := make([]interface{}, len(v))
		for i, item := range v {
			cloned[i] = cloneValue(item)
		}
		return cloned
	default:
		return v
	}
}

func sortedKeys(m map[string]Directive) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TypeName returns the JSON type name of a resolved value.
func TypeName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	default:
		if isNumber(value) {
			return "number"
		}
		return fmt.Sprintf("%T", value)
	}
}
