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

package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/asgardeo/conduit/internal/mapping"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
)

// coerceField converts a present value into the declared type of the field.
func coerceField(spec FieldSpec, value interface{}, path string) (interface{}, []integrationerror.FieldError) {
	if !spec.Multiple {
		return coerceSingle(spec, value, path)
	}

	items, isArray := value.([]interface{})
	if !isArray {
		coerced, errs := coerceSingle(spec, value, path)
		if len(errs) > 0 {
			return nil, errs
		}
		return []interface{}{coerced}, nil
	}

	result := make([]interface{}, 0, len(items))
	var errs []integrationerror.FieldError
	for i, item := range items {
		if item == nil {
			continue
		}
		coerced, itemErrs := coerceSingle(spec, item, fmt.Sprintf("%s[%d]", path, i))
		if len(itemErrs) > 0 {
			errs = append(errs, itemErrs...)
			continue
		}
		result = append(result, coerced)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return result, nil
}

func coerceSingle(spec FieldSpec, value interface{}, path string) (interface{}, []integrationerror.FieldError) {
	var (
		coerced interface{}
		ok      bool
	)

	switch spec.Type {
	case TypeString:
		coerced, ok = toString(value)
		if ok && len(spec.Choices) > 0 && !contains(spec.Choices, coerced.(string)) {
			return nil, []integrationerror.FieldError{{
				Field:   path,
				Message: fmt.Sprintf("must be one of %s", strings.Join(spec.Choices, ", ")),
			}}
		}
	case TypeNumber:
		coerced, ok = toNumber(value)
	case TypeInteger:
		coerced, ok = toInteger(value)
	case TypeBoolean:
		coerced, ok = toBoolean(value)
	case TypeObject:
		obj, isObject := value.(map[string]interface{})
		if !isObject {
			break
		}
		if len(spec.Properties) == 0 {
			return obj, nil
		}
		return validateObject(spec.Properties, obj, path)
	}

	if !ok {
		return nil, []integrationerror.FieldError{typeMismatch(spec, value, path)}
	}
	return coerced, nil
}

// validateObject checks the declared properties of an object value. Undeclared keys are kept.
func validateObject(props []FieldSpec, obj map[string]interface{}, path string) (interface{},
	[]integrationerror.FieldError) {
	result := make(map[string]interface{}, len(obj))
	for k, v := range obj {
		result[k] = v
	}

	var errs []integrationerror.FieldError
	for _, prop := range props {
		propPath := joinPath(path, prop.Name)
		value, present := obj[prop.Name]
		if !present || value == nil {
			if prop.Default != nil {
				var err error
				value, present, err = mapping.Resolve(prop.Default, obj)
				if err != nil {
					errs = append(errs, integrationerror.FieldError{Field: propPath, Message: err.Error()})
					continue
				}
			}
		}
		if !present || value == nil {
			delete(result, prop.Name)
			if prop.Required {
				errs = append(errs, missingRequired(propPath))
			}
			continue
		}
		coerced, propErrs := coerceField(prop, value, propPath)
		if len(propErrs) > 0 {
			errs = append(errs, propErrs...)
			continue
		}
		result[prop.Name] = coerced
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return result, nil
}

func toString(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), true
	default:
		return nil, false
	}
}

func toNumber(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}

// toInteger accepts integral numbers in [-2^63, 2^63). float64(math.MaxInt64) is 2^63.
func toInteger(value interface{}) (interface{}, bool) {
	n, ok := toNumber(value)
	if !ok {
		return nil, false
	}
	f := n.(float64)
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, false
	}
	return int64(f), true
}

func toBoolean(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return nil, false
}

func typeMismatch(spec FieldSpec, value interface{}, path string) integrationerror.FieldError {
	return integrationerror.FieldError{
		Field:   path,
		Message: fmt.Sprintf("expected %s but got %s", spec.Type, mapping.TypeName(value)),
	}
}

func missingRequired(path string) integrationerror.FieldError {
	return integrationerror.FieldError{Field: path, Message: "missing required field"}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
