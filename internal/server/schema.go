// internal/server/schema.go
package server

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/SpdVpr/svatbot-assistant/internal/common/errors"
)

// askRequestSchema validates the inbound ask payload before it reaches the
// router. Context is kept loose on purpose: the router only inspects the
// recognized fields and ignores the rest.
const askRequestSchema = `{
	"type": "object",
	"properties": {
		"query": {
			"type": "string",
			"minLength": 1,
			"maxLength": 4000
		},
		"systemPrompt": {
			"type": "string",
			"maxLength": 4000
		},
		"preferFreshness": {
			"type": "boolean"
		},
		"context": {
			"type": "object",
			"properties": {
				"weddingDate": {"type": "string"},
				"budget": {"type": "number", "minimum": 0},
				"guestCount": {"type": "integer", "minimum": 0},
				"venue": {"type": "string"},
				"tasks": {"type": "array"},
				"guests": {"type": "array"},
				"history": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"role": {"type": "string"},
							"content": {"type": "string"}
						},
						"required": ["role", "content"]
					}
				}
			}
		}
	},
	"required": ["query"],
	"additionalProperties": false
}`

var askSchemaLoader = gojsonschema.NewStringLoader(askRequestSchema)

// ValidateAskRequest checks the raw JSON body against the ask schema and
// returns a REQUEST_INVALID error listing every violation.
func ValidateAskRequest(body []byte) error {
	result, err := gojsonschema.Validate(askSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewRequestInvalidError("malformed JSON payload")
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return apperrors.NewRequestInvalidError(strings.Join(details, "; "))
}
