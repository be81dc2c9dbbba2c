package model

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strings"
	"sync"

	"resume-builder/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var schemaFS embed.FS

var (
	schemaOnce   sync.Once
	createSchema *gojsonschema.Schema
	patchSchema  *gojsonschema.Schema
	schemaErr    error
)

func init() {
	gojsonschema.FormatCheckers.Add("optional-email", optionalEmail{})
	gojsonschema.FormatCheckers.Add("optional-url", optionalURL{})
}

// optionalEmail accepts the empty string or a bare RFC 5322 address.
type optionalEmail struct{}

func (optionalEmail) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// optionalURL accepts the empty string or an absolute http(s) URL with a host.
type optionalURL struct{}

func (optionalURL) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func loadSchemas() {
	raw, err := schemaFS.ReadFile("schema/resume.schema.json")
	if err != nil {
		schemaErr = err
		return
	}
	var base map[string]interface{}
	if err := json.Unmarshal(raw, &base); err != nil {
		schemaErr = fmt.Errorf("parse resume schema: %w", err)
		return
	}
	patchSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(base))
	if schemaErr != nil {
		return
	}

	// create additionally requires a title
	withRequired := map[string]interface{}{}
	for k, v := range base {
		withRequired[k] = v
	}
	withRequired["required"] = []interface{}{"title"}
	createSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(withRequired))
}

// ValidateCreate validates a full document submitted for creation.
func ValidateCreate(m map[string]interface{}) error {
	schemaOnce.Do(loadSchemas)
	if schemaErr != nil {
		return schemaErr
	}
	return validate(createSchema, m)
}

// ValidatePatch validates only the keys present in m.
func ValidatePatch(m map[string]interface{}) error {
	schemaOnce.Do(loadSchemas)
	if schemaErr != nil {
		return schemaErr
	}
	return validate(patchSchema, m)
}

func validate(s *gojsonschema.Schema, m map[string]interface{}) error {
	if m == nil {
		m = map[string]interface{}{}
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	verr := &domain.ValidationError{}
	seen := map[string]bool{}
	for _, e := range res.Errors() {
		fe := fieldError(e)
		key := fe.Field + "|" + fe.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		verr.Fields = append(verr.Fields, fe)
	}
	sort.SliceStable(verr.Fields, func(i, j int) bool { return verr.Fields[i].Field < verr.Fields[j].Field })
	return verr
}

// fieldError turns a schema error into a dotted field path and a message
// suitable for showing next to the form field.
func fieldError(e gojsonschema.ResultError) domain.FieldError {
	field := e.Field()
	details := e.Details()
	if e.Type() == "required" {
		if prop, ok := details["property"].(string); ok && prop != "" {
			if field == "(root)" {
				field = prop
			} else if !strings.HasSuffix(field, "."+prop) && field != prop {
				field = field + "." + prop
			}
		}
	}
	if field == "(root)" {
		field = ""
	}

	msg := e.Description()
	switch e.Type() {
	case "required":
		msg = "is required"
	case "string_gte":
		if fmt.Sprint(details["min"]) == "1" {
			msg = "must not be empty"
		}
	case "number_gte", "number_lte":
		if strings.HasSuffix(field, "proficiency") {
			msg = "must be between 1 and 5"
		}
	case "format":
		switch details["format"] {
		case "optional-email":
			msg = "must be a valid email address"
		case "optional-url":
			msg = "must be a valid URL"
		}
	case "pattern":
		if strings.HasSuffix(field, "year") {
			msg = "must be a 4-digit year"
		} else if strings.HasPrefix(field, "colorPalette") {
			msg = "must be a hex color"
		}
	}
	return domain.FieldError{Field: field, Message: msg}
}
