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

// Payload is the validated, typed result of resolving a mapping.
// Strings are string, numbers float64, integers int64, booleans bool,
// objects map[string]interface{} and multiple values []interface{}.
type Payload map[string]interface{}

// String returns the string value of a field.
func (p Payload) String(name string) (string, bool) {
	v, ok := p[name].(string)
	return v, ok
}

// Number returns the number value of a field.
func (p Payload) Number(name string) (float64, bool) {
	v, ok := p[name].(float64)
	return v, ok
}

// Integer returns the integer value of a field.
func (p Payload) Integer(name string) (int64, bool) {
	v, ok := p[name].(int64)
	return v, ok
}

// Bool returns the boolean value of a field, or false when absent.
func (p Payload) Bool(name string) bool {
	v, _ := p[name].(bool)
	return v
}

// Object returns the object value of a field.
func (p Payload) Object(name string) (map[string]interface{}, bool) {
	v, ok := p[name].(map[string]interface{})
	return v, ok
}

// Objects returns the object items of a multiple object field.
func (p Payload) Objects(name string) []map[string]interface{} {
	items, _ := p[name].([]interface{})
	objects := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}

// Has reports whether the field has a value.
func (p Payload) Has(name string) bool {
	_, ok := p[name]
	return ok
}
