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
	"github.com/asgardeo/conduit/internal/mapping"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
	"github.com/asgardeo/conduit/internal/system/log"
)

const loggerComponentName = "FieldValidator"

// Options controls how a mapping is validated.
type Options struct {
	// UseDefaultMappings applies field defaults to fields missing from the mapping.
	UseDefaultMappings bool
}

// Validate resolves the raw mapping of every declared field against the document and
// checks the result against the field specs. Fields are processed in declaration order
// and every failing field is reported in a single validation error. Keys of the raw
// mapping that are not declared are ignored.
func Validate(fields []FieldSpec, rawMapping map[string]interface{}, document interface{},
	opts Options) (Payload, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	payload := make(Payload, len(fields))
	var fieldErrs []integrationerror.FieldError

	for _, f := range fields {
		directive, err := fieldDirective(f, rawMapping, opts)
		if err != nil {
			fieldErrs = append(fieldErrs, integrationerror.FieldError{Field: f.Name, Message: err.Error()})
			continue
		}

		value, found, err := mapping.Resolve(directive, document)
		if err != nil {
			fieldErrs = append(fieldErrs, integrationerror.FieldError{Field: f.Name, Message: err.Error()})
			continue
		}

		coerced, errs := checkValue(f, value, found, f.Name)
		if len(errs) > 0 {
			fieldErrs = append(fieldErrs, errs...)
			continue
		}
		if coerced != nil {
			payload[f.Name] = coerced
		}
	}

	if len(fieldErrs) > 0 {
		if logger.IsDebugEnabled() {
			logger.Debug("Payload validation failed", log.Int("failedFields", len(fieldErrs)))
		}
		return nil, integrationerror.NewFieldValidationError(integrationerror.CodePayloadValidation, fieldErrs)
	}
	return payload, nil
}

// ValidateValues checks already resolved values, such as destination settings, against
// the field specs. Defaults are always applied and resolve against the values themselves.
func ValidateValues(fields []FieldSpec, values map[string]interface{}) (Payload, error) {
	payload := make(Payload, len(fields))
	var fieldErrs []integrationerror.FieldError

	for _, f := range fields {
		value, found := values[f.Name]
		if (!found || value == nil) && f.Default != nil {
			var err error
			value, found, err = mapping.Resolve(f.Default, values)
			if err != nil {
				fieldErrs = append(fieldErrs, integrationerror.FieldError{Field: f.Name, Message: err.Error()})
				continue
			}
		}

		coerced, errs := checkValue(f, value, found, f.Name)
		if len(errs) > 0 {
			fieldErrs = append(fieldErrs, errs...)
			continue
		}
		if coerced != nil {
			payload[f.Name] = coerced
		}
	}

	if len(fieldErrs) > 0 {
		return nil, integrationerror.NewFieldValidationError(integrationerror.CodeSettingsValidation, fieldErrs)
	}
	return payload, nil
}

// fieldDirective picks the directive for a field: the caller's mapping entry if present,
// otherwise the field default when defaults are enabled.
func fieldDirective(f FieldSpec, rawMapping map[string]interface{}, opts Options) (mapping.Directive, error) {
	if raw, ok := rawMapping[f.Name]; ok {
		return mapping.Parse(raw)
	}
	if opts.UseDefaultMappings {
		return f.Default, nil
	}
	return nil, nil
}

// checkValue applies the required rule and type coercion. A nil value counts as absent.
func checkValue(f FieldSpec, value interface{}, found bool, path string) (interface{},
	[]integrationerror.FieldError) {
	if !found || value == nil {
		if f.Required {
			return nil, []integrationerror.FieldError{missingRequired(path)}
		}
		return nil, nil
	}
	return coerceField(f, value, path)
}
