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

package googleanalytics4

import (
	"context"
	"fmt"
	"net/http"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/mapping"
	"github.com/asgardeo/conduit/internal/schema"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
)

const (
	codeIncorrectValueFormat = "INCORRECT_VALUE_FORMAT"
	codeMisconfiguredField   = "MISCONFIGURED_REQUIRED_FIELD"
)

// itemFields are the product item parameters accepted by Google.
var itemFields = []schema.FieldSpec{
	stringField("item_id", "Product ID", "$.product_id"),
	stringField("item_name", "Name", "$.name"),
	stringField("affiliation", "Affiliation", ""),
	stringField("coupon", "Coupon", "$.coupon"),
	stringField("currency", "Currency", ""),
	numberField("discount", "Discount", ""),
	{Name: "index", Label: "Index", Type: schema.TypeInteger, Default: mapping.MustPathRef("$.position")},
	stringField("item_brand", "Brand", "$.brand"),
	stringField("item_category", "Category", "$.category"),
	stringField("item_variant", "Variant", "$.variant"),
	numberField("price", "Price", "$.price"),
	{Name: "quantity", Label: "Quantity", Type: schema.TypeInteger, Default: mapping.MustPathRef("$.quantity")},
}

func refund() *action.Definition {
	return &action.Definition{
		Key:                 "refund",
		Title:               "Refund",
		Description:         "Send event when a refund is issued",
		DefaultSubscription: `type = "track" and event = "Order Refunded"`,
		Fields: []schema.FieldSpec{
			clientIDField("client_id"),
			userIDField(),
			stringField("currency", "Currency", "$.properties.currency"),
			{
				Name:     "transaction_id",
				Label:    "Order Id",
				Type:     schema.TypeString,
				Required: true,
				Default:  mapping.MustPathRef("$.properties.order_id"),
			},
			numberField("value", "Value", "$.properties.total"),
			stringField("affiliation", "Affiliation", "$.properties.affiliation"),
			stringField("coupon", "Coupon", "$.properties.coupon"),
			numberField("shipping", "Shipping", "$.properties.shipping"),
			{Name: "tax", Label: "Tax", Description: "Tax cost associated with a transaction.", Type: schema.TypeNumber},
			{
				Name:       "items",
				Label:      "Products",
				Type:       schema.TypeObject,
				Multiple:   true,
				Default:    mapping.MustPathRef("$.properties.products"),
				Properties: itemFields,
			},
			userPropertiesField(),
			engagementTimeField(),
			paramsField(),
		},
		Validate: validateRefund,
		Perform:  performRefund,
	}
}

func validateRefund(input action.Input) error {
	p := input.Payload
	currencyCode, hasCurrency := p.String("currency")
	if hasCurrency && currencyCode != "" && !isCurrencyCode(currencyCode) {
		return integrationerror.NewValidationError(codeIncorrectValueFormat,
			fmt.Sprintf("%s is not a valid currency code.", currencyCode))
	}
	// Google requires an event level currency whenever a value is sent.
	if value, ok := p.Number("value"); ok && value != 0 && !hasCurrency {
		return integrationerror.NewValidationError(codeMisconfiguredField, "Currency is required if value is set.")
	}

	items := p.Objects("items")
	if !hasCurrency {
		if len(items) == 0 {
			return missingCurrency()
		}
		if c, _ := items[0]["currency"].(string); c == "" {
			return missingCurrency()
		}
	}

	for _, item := range items {
		_, hasName := item["item_name"]
		_, hasID := item["item_id"]
		if !hasName && !hasID {
			return integrationerror.NewValidationError(codeMisconfiguredField,
				"One of product name or product id is required for product or impression data.")
		}
		if c, _ := item["currency"].(string); c != "" && !isCurrencyCode(c) {
			return integrationerror.NewValidationError(codeIncorrectValueFormat,
				fmt.Sprintf("%s is not a valid currency code.", c))
		}
	}
	return nil
}

func missingCurrency() error {
	return integrationerror.NewValidationError(codeMisconfiguredField,
		"One of item-level currency or top-level currency is required.")
}

func performRefund(ctx context.Context, sender action.RequestSender, input action.Input) error {
	p := input.Payload
	clientID, _ := p.String("client_id")
	userID, _ := p.String("user_id")
	userProps, _ := p.Object("user_properties")

	params := make(map[string]interface{})
	for _, name := range []string{"currency", "transaction_id", "value", "affiliation", "coupon", "shipping",
		"tax", "engagement_time_msec"} {
		if v, ok := p[name]; ok {
			params[name] = v
		}
	}
	params["items"] = googleItems(p.Objects("items"))
	if extra, ok := p.Object("params"); ok {
		for k, v := range extra {
			params[k] = v
		}
	}

	_, err := sender.Send(ctx, collectURL, action.RequestOptions{
		Method: http.MethodPost,
		JSON: measurementRequest{
			ClientID:       clientID,
			UserID:         userID,
			Events:         []measurementEvent{{Name: "refund", Params: params}},
			UserProperties: formatUserProperties(userProps),
		},
	})
	return err
}

// googleItems keeps the item parameters Google accepts.
func googleItems(items []map[string]interface{}) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		filtered := make(map[string]interface{}, len(itemFields))
		for _, f := range itemFields {
			if v, ok := item[f.Name]; ok {
				filtered[f.Name] = v
			}
		}
		result = append(result, filtered)
	}
	return result
}
