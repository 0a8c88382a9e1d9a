// Package output serializes parse results to JSON.
package output

import (
	"encoding/json"

	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
)

// ToJSON serializes a ParseResult.
func ToJSON(result *models.ParseResult, pretty bool) ([]byte, error) {
	return marshal(result, pretty)
}

// DocumentToJSON serializes a single sheet's Document.
func DocumentToJSON(doc *models.Document, pretty bool) ([]byte, error) {
	return marshal(doc, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
