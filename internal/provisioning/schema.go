// internal/provisioning/schema.go
package provisioning

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// orderRequestSchema pins the provider's payload contract. address_2 is the
// only nullable field.
var orderRequestSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"address_1": map[string]interface{}{"type": "string", "minLength": 1},
		"address_2": map[string]interface{}{"type": []string{"string", "null"}},
		"city":      map[string]interface{}{"type": "string", "minLength": 1},
		"state":     map[string]interface{}{"type": "string", "minLength": 1},
		"postcode":  map[string]interface{}{"type": "string", "minLength": 1},
		"plan_name": map[string]interface{}{"type": "string", "minLength": 1},
	},
	"required":             []string{"address_1", "address_2", "city", "state", "postcode", "plan_name"},
	"additionalProperties": false,
}

// ValidateOrderRequest checks the payload against the provider contract
// before any network call is made.
func ValidateOrderRequest(order *OrderRequest) error {
	schemaLoader := gojsonschema.NewGoLoader(orderRequestSchema)
	documentLoader := gojsonschema.NewGoLoader(order)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("order payload invalid: %s", strings.Join(msgs, "; "))
	}

	return nil
}
