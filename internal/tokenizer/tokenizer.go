// Package tokenizer provides exact token counting for the rendered artifact.
// Budget enforcement during gathering uses a character heuristic instead;
// this package only serves the displayed summary.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter counts tokens for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model. Unknown models fall
// back to the default encoding. The returned string is the effective model
// or encoding name used.
func NewCounter(model string) (Counter, string, error) {
	normalizedModel := strings.ToLower(strings.TrimSpace(model))
	if normalizedModel == "" {
		normalizedModel = defaultModel
	}
	encoding, encodingError := tiktoken.EncodingForModel(normalizedModel)
	if encodingError == nil && encoding != nil {
		return encodingCounter{encoding: encoding, name: normalizedModel}, normalizedModel, nil
	}
	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return encodingCounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}

// encodingCounter wraps a tiktoken encoding.
type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// Name returns the effective model or encoding name.
func (counter encodingCounter) Name() string {
	return counter.name
}

// CountString counts the tokens in input.
func (counter encodingCounter) CountString(input string) (int, error) {
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
