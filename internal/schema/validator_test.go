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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/conduit/internal/mapping"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
)

type ValidatorTestSuite struct {
	suite.Suite
	event  map[string]interface{}
	fields []FieldSpec
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (suite *ValidatorTestSuite) SetupTest() {
	suite.event = map[string]interface{}{
		"event":  "Order Refunded",
		"userId": "user-1",
		"properties": map[string]interface{}{
			"order_id": "o-1",
			"total":    "19.99",
			"quantity": json.Number("3"),
			"gift":     "true",
			"products": []interface{}{
				map[string]interface{}{"product_id": "p-1", "price": 9.5},
				map[string]interface{}{"name": "Sock", "price": "1"},
			},
		},
	}
	suite.fields = []FieldSpec{
		{Name: "name", Type: TypeString, Required: true, Default: mapping.MustPathRef("$.event")},
		{Name: "value", Type: TypeNumber, Default: mapping.MustPathRef("$.properties.total")},
		{Name: "quantity", Type: TypeInteger, Default: mapping.MustPathRef("$.properties.quantity")},
		{Name: "gift", Type: TypeBoolean, Default: mapping.MustPathRef("$.properties.gift")},
		{Name: "tags", Type: TypeString, Multiple: true},
		{
			Name:     "items",
			Type:     TypeObject,
			Multiple: true,
			Default:  mapping.MustPathRef("$.properties.products"),
			Properties: []FieldSpec{
				{Name: "item_id", Type: TypeString},
				{Name: "price", Type: TypeNumber, Required: true},
			},
		},
	}
}

func (suite *ValidatorTestSuite) TestValidateWithDefaults() {
	payload, err := Validate(suite.fields, nil, suite.event, Options{UseDefaultMappings: true})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Order Refunded", payload["name"])
	assert.Equal(suite.T(), 19.99, payload["value"])
	assert.Equal(suite.T(), int64(3), payload["quantity"])
	assert.Equal(suite.T(), true, payload["gift"])
	assert.NotContains(suite.T(), payload, "tags")

	items := payload.Objects("items")
	require.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), 9.5, items[0]["price"])
	assert.Equal(suite.T(), "p-1", items[0]["product_id"])
	assert.Equal(suite.T(), float64(1), items[1]["price"])
}

func (suite *ValidatorTestSuite) TestDefaultsNeverAppliedWhenDisabled() {
	fields := []FieldSpec{
		{Name: "name", Type: TypeString, Default: mapping.MustPathRef("$.event")},
		{Name: "lowercase", Type: TypeBoolean, Default: mapping.NewLiteral(false)},
	}

	payload, err := Validate(fields, map[string]interface{}{}, suite.event, Options{})

	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), payload)
}

func (suite *ValidatorTestSuite) TestRequiredMissingNamesField() {
	fields := []FieldSpec{
		{Name: "client_id", Type: TypeString, Required: true},
		{Name: "name", Type: TypeString, Required: true, Default: mapping.MustPathRef("$.event")},
	}

	_, err := Validate(fields, map[string]interface{}{"name": map[string]interface{}{"@path": "$.missing"}},
		suite.event, Options{UseDefaultMappings: true})

	require.Error(suite.T(), err)
	ie, ok := integrationerror.As(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), integrationerror.KindValidation, ie.Kind)
	assert.Equal(suite.T(), []integrationerror.FieldError{
		{Field: "client_id", Message: "missing required field"},
		{Field: "name", Message: "missing required field"},
	}, ie.Fields)
}

func (suite *ValidatorTestSuite) TestNullValueIsAbsent() {
	fields := []FieldSpec{{Name: "user_id", Type: TypeString, Required: true}}

	_, err := Validate(fields, map[string]interface{}{"user_id": nil}, suite.event, Options{})

	require.Error(suite.T(), err)
	assert.True(suite.T(), integrationerror.IsKind(err, integrationerror.KindValidation))
}

func (suite *ValidatorTestSuite) TestValidationIsDeterministic() {
	fields := []FieldSpec{
		{Name: "a", Type: TypeNumber},
		{Name: "b", Type: TypeBoolean},
		{Name: "c", Type: TypeString, Required: true},
		{Name: "d", Type: TypeInteger},
	}
	raw := map[string]interface{}{"a": "abc", "b": "maybe", "d": 1.5, "unknown": true}

	var first error
	for i := 0; i < 20; i++ {
		_, err := Validate(fields, raw, suite.event, Options{})
		require.Error(suite.T(), err)
		if first == nil {
			first = err
			continue
		}
		assert.Equal(suite.T(), first.Error(), err.Error())
	}

	ie, _ := integrationerror.As(first)
	assert.Equal(suite.T(), []integrationerror.FieldError{
		{Field: "a", Message: "expected number but got string"},
		{Field: "b", Message: "expected boolean but got string"},
		{Field: "c", Message: "missing required field"},
		{Field: "d", Message: "expected integer but got number"},
	}, ie.Fields)
}

func (suite *ValidatorTestSuite) TestCoercion() {
	testCases := []struct {
		name     string
		spec     FieldSpec
		raw      interface{}
		expected interface{}
	}{
		{"NumericString", FieldSpec{Name: "f", Type: TypeNumber}, "12.5", 12.5},
		{"IntToNumber", FieldSpec{Name: "f", Type: TypeNumber}, 4, float64(4)},
		{"IntegralFloatToInteger", FieldSpec{Name: "f", Type: TypeInteger}, 4.0, int64(4)},
		{"TrueString", FieldSpec{Name: "f", Type: TypeBoolean}, "true", true},
		{"FalseString", FieldSpec{Name: "f", Type: TypeBoolean}, "FALSE", false},
		{"NumberToString", FieldSpec{Name: "f", Type: TypeString}, 42.0, "42"},
		{"JSONNumberToString", FieldSpec{Name: "f", Type: TypeString}, json.Number("1.50"), "1.50"},
		{"BoolToString", FieldSpec{Name: "f", Type: TypeString}, true, "true"},
		{"SingleToMultiple", FieldSpec{Name: "f", Type: TypeString, Multiple: true}, "one", []interface{}{"one"}},
		{"MultipleCoercesItems", FieldSpec{Name: "f", Type: TypeNumber, Multiple: true},
			[]interface{}{"1", 2, nil}, []interface{}{float64(1), float64(2)}},
		{"ChoiceAccepted", FieldSpec{Name: "f", Type: TypeString, Choices: []string{"US", "EU"}}, "EU", "EU"},
		{"SmallestInteger", FieldSpec{Name: "f", Type: TypeInteger}, json.Number("-9223372036854775808"),
			int64(math.MinInt64)},
		{"LargeIntegralFloat", FieldSpec{Name: "f", Type: TypeInteger}, float64(1 << 62), int64(1 << 62)},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			payload, err := Validate([]FieldSpec{tc.spec}, map[string]interface{}{"f": tc.raw}, nil, Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, payload["f"])
		})
	}
}

func (suite *ValidatorTestSuite) TestTypeMismatch() {
	testCases := []struct {
		name    string
		spec    FieldSpec
		raw     interface{}
		field   string
		message string
	}{
		{"ObjectToString", FieldSpec{Name: "f", Type: TypeString}, map[string]interface{}{"a": 1}, "f",
			"expected string but got object"},
		{"ArrayToNumber", FieldSpec{Name: "f", Type: TypeNumber}, []interface{}{1}, "f",
			"expected number but got array"},
		{"StringToObject", FieldSpec{Name: "f", Type: TypeObject}, "x", "f", "expected object but got string"},
		{"BadItem", FieldSpec{Name: "f", Type: TypeInteger, Multiple: true}, []interface{}{1, "x"}, "f[1]",
			"expected integer but got string"},
		{"ChoiceRejected", FieldSpec{Name: "f", Type: TypeString, Choices: []string{"US", "EU"}}, "APAC", "f",
			"must be one of US, EU"},
		{"IntegerOverflow", FieldSpec{Name: "f", Type: TypeInteger}, json.Number("9223372036854775808"), "f",
			"expected integer but got number"},
		{"IntegerUnderflow", FieldSpec{Name: "f", Type: TypeInteger}, -1e19, "f",
			"expected integer but got number"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			_, err := Validate([]FieldSpec{tc.spec}, map[string]interface{}{"f": tc.raw}, nil, Options{})
			ie, ok := integrationerror.As(err)
			require.True(t, ok)
			assert.Equal(t, []integrationerror.FieldError{{Field: tc.field, Message: tc.message}}, ie.Fields)
		})
	}
}

func (suite *ValidatorTestSuite) TestNestedPropertiesValidatedRecursively() {
	fields := []FieldSpec{{
		Name: "user",
		Type: TypeObject,
		Properties: []FieldSpec{
			{Name: "id", Type: TypeString, Required: true},
			{Name: "address", Type: TypeObject, Properties: []FieldSpec{
				{Name: "zip", Type: TypeInteger, Required: true},
			}},
		},
	}}
	raw := map[string]interface{}{"user": map[string]interface{}{
		"address": map[string]interface{}{"zip": "abc"},
	}}

	_, err := Validate(fields, raw, suite.event, Options{})

	ie, ok := integrationerror.As(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), []integrationerror.FieldError{
		{Field: "user.id", Message: "missing required field"},
		{Field: "user.address.zip", Message: "expected integer but got string"},
	}, ie.Fields)
}

func (suite *ValidatorTestSuite) TestMalformedMappingIsFieldError() {
	fields := []FieldSpec{{Name: "name", Type: TypeString}}

	_, err := Validate(fields, map[string]interface{}{"name": map[string]interface{}{"@path": "event"}},
		suite.event, Options{})

	ie, ok := integrationerror.As(err)
	require.True(suite.T(), ok)
	require.Len(suite.T(), ie.Fields, 1)
	assert.Equal(suite.T(), "name", ie.Fields[0].Field)
	assert.Contains(suite.T(), ie.Fields[0].Message, "must start with $")
}

func (suite *ValidatorTestSuite) TestLiteralMappingRoundTrip() {
	fields := []FieldSpec{{Name: "label", Type: TypeString}, {Name: "count", Type: TypeInteger}}

	payload, err := Validate(fields, map[string]interface{}{"label": "fixed", "count": int64(9)}, suite.event,
		Options{})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), Payload{"label": "fixed", "count": int64(9)}, payload)
}

func (suite *ValidatorTestSuite) TestValidateValues() {
	fields := []FieldSpec{
		{Name: "api_key", Type: TypeString, Required: true},
		{Name: "data_center", Type: TypeString, Choices: []string{"north_america", "europe"},
			Default: mapping.NewLiteral("north_america")},
	}

	payload, err := ValidateValues(fields, map[string]interface{}{"api_key": "secret"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), Payload{"api_key": "secret", "data_center": "north_america"}, payload)

	_, err = ValidateValues(fields, map[string]interface{}{"data_center": "asia"})
	ie, ok := integrationerror.As(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), integrationerror.CodeSettingsValidation, ie.Code)
	assert.Len(suite.T(), ie.Fields, 2)
}

func (suite *ValidatorTestSuite) TestCheckFields() {
	assert.NoError(suite.T(), CheckFields(suite.fields))

	err := CheckFields([]FieldSpec{
		{Name: "", Type: TypeString},
		{Name: "a", Type: "date"},
		{Name: "b", Type: TypeNumber, Properties: []FieldSpec{{Name: "x", Type: TypeString}}},
		{Name: "b", Type: TypeString},
		{Name: "c", Type: TypeObject, Properties: []FieldSpec{{Name: "y", Type: "bad"}}},
		{Name: "d", Type: TypeBoolean, Choices: []string{"yes"}},
	})

	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "field name is empty")
	assert.Contains(suite.T(), err.Error(), `a: unsupported field type "date"`)
	assert.Contains(suite.T(), err.Error(), "b: properties are only allowed on object fields")
	assert.Contains(suite.T(), err.Error(), "b: duplicate field")
	assert.Contains(suite.T(), err.Error(), `c.y: unsupported field type "bad"`)
	assert.Contains(suite.T(), err.Error(), "d: choices are only allowed on string fields")
}

func (suite *ValidatorTestSuite) TestPayloadAccessors() {
	payload := Payload{
		"s": "text", "n": 1.5, "i": int64(2), "b": true,
		"o":  map[string]interface{}{"k": "v"},
		"os": []interface{}{map[string]interface{}{"k": 1}, "skip"},
	}

	s, ok := payload.String("s")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "text", s)
	n, _ := payload.Number("n")
	assert.Equal(suite.T(), 1.5, n)
	i, _ := payload.Integer("i")
	assert.Equal(suite.T(), int64(2), i)
	assert.True(suite.T(), payload.Bool("b"))
	assert.False(suite.T(), payload.Bool("missing"))
	o, _ := payload.Object("o")
	assert.Equal(suite.T(), "v", o["k"])
	assert.Len(suite.T(), payload.Objects("os"), 1)
	assert.True(suite.T(), payload.Has("s"))
	_, ok = payload.String("n")
	assert.False(suite.T(), ok)
}

func (suite *ValidatorTestSuite) TestPropertyDefaultResolutionErrorReported() {
	fields := []FieldSpec{{
		Name: "item",
		Type: TypeObject,
		Properties: []FieldSpec{{
			Name:    "meta",
			Type:    TypeObject,
			Default: mapping.Composite{Merge: []mapping.Directive{mapping.NewLiteral("not an object")}},
		}},
	}}
	raw := map[string]interface{}{"item": map[string]interface{}{"id": "1"}}

	_, err := Validate(fields, raw, nil, Options{})

	ie, ok := integrationerror.As(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), integrationerror.KindValidation, ie.Kind)
	require.Len(suite.T(), ie.Fields, 1)
	assert.Equal(suite.T(), "item.meta", ie.Fields[0].Field)
	assert.Contains(suite.T(), ie.Fields[0].Message, "expected an object but got string")
}
