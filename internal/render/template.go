package render

import "strings"

// TemplateID names one of the fixed page layouts.
type TemplateID string

const (
	TemplateOne   TemplateID = "TemplateOne"
	TemplateTwo   TemplateID = "TemplateTwo"
	TemplateThree TemplateID = "TemplateThree"
	TemplateFour  TemplateID = "TemplateFour"
	TemplateFive  TemplateID = "TemplateFive"
)

// Known returns every template a user can select, in picker order.
func Known() []TemplateID {
	return []TemplateID{TemplateOne, TemplateTwo, TemplateThree, TemplateFour, TemplateFive}
}

// Parse resolves id case-insensitively. The second value is false for an
// unknown id, which renders with the generic layout.
func Parse(id string) (TemplateID, bool) {
	id = strings.TrimSpace(id)
	for _, k := range Known() {
		if strings.EqualFold(string(k), id) {
			return k, true
		}
	}
	return TemplateID(id), false
}

// variantFor must list every Known id; the generic layout only serves
// unrecognised ids.
func variantFor(id TemplateID) Variant {
	switch id {
	case TemplateOne:
		return classic{}
	case TemplateTwo:
		return sidebar{}
	case TemplateThree:
		return banner{}
	case TemplateFour:
		return compact{}
	case TemplateFive:
		return creative{}
	}
	return generic{}
}
