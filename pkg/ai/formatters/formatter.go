package formatters

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Formatter builds the chat input for one kind of analysis. The ai-service
// answers in free text; each formatter asks for exactly one JSON object.
type Formatter interface {
	Name() string
	Input(payload map[string]interface{}) (string, error)
}

func languageLine(language string) string {
	if strings.TrimSpace(language) == "" {
		return ""
	}
	return fmt.Sprintf("LANGUAGE: write every string value in %s.\n\n", language)
}

func mustMarshal(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
