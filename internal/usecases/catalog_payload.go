package usecases

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"learnpath.backend/internal/domain/entities"
)

// catalogFields is the accepted key set, in message order.
var catalogFields = []string{
	"name", "img", "duration", "level", "desc", "skills", "perks",
	"syllabus", "rating", "students", "slug", "href",
}

const levelChoices = "'Beginner' | 'Intermediate' | 'Advanced'"

// CoerceCatalogPayload normalizes loose form shapes before validation:
// comma-separated skills/perks become trimmed lists without blanks and
// non-empty string rating/students become numbers (NaN when unparseable).
// raw is not modified.
func CoerceCatalogPayload(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, key := range []string{"skills", "perks"} {
		if s, ok := out[key].(string); ok {
			out[key] = splitCommaList(s)
		}
	}
	for _, key := range []string{"rating", "students"} {
		if s, ok := out[key].(string); ok && s != "" {
			out[key] = parseLooseNumber(s)
		}
	}
	return out
}

func splitCommaList(s string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func parseLooseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ValidateCatalogPayload strictly validates a coerced payload. Every problem
// is reported in one BadRequest error formatted as "field: message" joined
// by "; ", followed by whole-object errors.
func ValidateCatalogPayload(raw map[string]any) (*entities.CatalogPayload, error) {
	errs := newFieldErrors()
	p := &entities.CatalogPayload{
		Level:    entities.LevelBeginner,
		Skills:   []string{},
		Perks:    []string{},
		Syllabus: []entities.SyllabusSection{},
	}

	p.Name = extractString(raw, "name", true, errs)
	p.Img = extractString(raw, "img", true, errs)
	p.Duration = extractString(raw, "duration", true, errs)
	if v, ok := raw["level"]; ok {
		if s, isStr := v.(string); isStr {
			p.Level = entities.Level(s)
		} else {
			errs.fail("level", fmt.Sprintf("Expected %s, received %s", levelChoices, jsTypeOf(v)))
		}
	}
	p.Desc = extractString(raw, "desc", true, errs)
	if v, ok := raw["skills"]; ok {
		if list, valid := extractStringList(v, "skills", errs); valid {
			p.Skills = list
		}
	}
	if v, ok := raw["perks"]; ok {
		if list, valid := extractStringList(v, "perks", errs); valid {
			p.Perks = list
		}
	}
	if v, ok := raw["syllabus"]; ok {
		p.Syllabus = extractSyllabus(v, errs)
	}
	p.Rating = extractNumber(raw, "rating", errs)
	p.Students = extractNumber(raw, "students", errs)
	p.Slug = extractString(raw, "slug", false, errs)
	p.Href = extractString(raw, "href", false, errs)

	if unknown := unknownKeys(raw, catalogFields); len(unknown) > 0 {
		errs.addForm("Unrecognized key(s) in object: '" + strings.Join(unknown, "', '") + "'")
	}

	if err := errs.collectValidatorErrors(validate.Struct(p), catalogConstraintMessage); err != nil {
		return nil, err
	}
	if !errs.empty() {
		return nil, errs.toError(catalogFields)
	}
	return p, nil
}

func catalogConstraintMessage(fe validator.FieldError, leaf string) string {
	switch fe.Tag() {
	case "min":
		switch leaf {
		case "name":
			return "Name is required"
		case "img":
			return "Image is required"
		case "duration":
			return "Duration is required"
		case "desc":
			return "Description is too short"
		case "title":
			return "Section title is required"
		case "rating", "students":
			return "Number must be greater than or equal to " + fe.Param()
		}
		return "String must contain at least " + fe.Param() + " character(s)"
	case "max":
		return "Number must be less than or equal to " + fe.Param()
	case "oneof":
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", levelChoices, fe.Value())
	}
	return "Invalid input"
}

func extractString(raw map[string]any, key string, required bool, errs *fieldErrors) string {
	v, ok := raw[key]
	if !ok {
		if required {
			errs.fail(key, "Required")
		}
		return ""
	}
	s, isStr := v.(string)
	if !isStr {
		errs.fail(key, "Expected string, received "+jsTypeOf(v))
		return ""
	}
	return strings.TrimSpace(s)
}

// extractStringList accepts []any from JSON or []string from coercion.
// Entries keep their index so constraint errors line up with the input.
func extractStringList(v any, path string, errs *fieldErrors) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		for i, s := range list {
			out[i] = strings.TrimSpace(s)
		}
		return out, true
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			s, isStr := item.(string)
			if !isStr {
				errs.fail(fmt.Sprintf("%s[%d]", path, i), "Expected string, received "+jsTypeOf(item))
				continue
			}
			out[i] = strings.TrimSpace(s)
		}
		return out, true
	default:
		errs.fail(path, "Expected array, received "+jsTypeOf(v))
		return nil, false
	}
}

func extractSyllabus(v any, errs *fieldErrors) []entities.SyllabusSection {
	list, ok := v.([]any)
	if !ok {
		errs.fail("syllabus", "Expected array, received "+jsTypeOf(v))
		return []entities.SyllabusSection{}
	}

	sections := make([]entities.SyllabusSection, len(list))
	for i, item := range list {
		base := fmt.Sprintf("syllabus[%d]", i)
		obj, isObj := item.(map[string]any)
		if !isObj {
			errs.fail(base, "Expected object, received "+jsTypeOf(item))
			// keep the zero section out of constraint checks
			errs.failed[base+".title"] = true
			continue
		}

		title, present := obj["title"]
		switch t := title.(type) {
		case string:
			sections[i].Title = strings.TrimSpace(t)
		default:
			if !present {
				errs.fail(base+".title", "Required")
			} else {
				errs.fail(base+".title", "Expected string, received "+jsTypeOf(title))
			}
		}

		if items, present := obj["items"]; present {
			if parsed, ok := extractStringList(items, base+".items", errs); ok {
				sections[i].Items = parsed
			}
		}
	}
	return sections
}

func extractNumber(raw map[string]any, key string, errs *fieldErrors) *float64 {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			errs.fail(key, "Expected number, received string")
			return nil
		}
		f = parsed
	default:
		errs.fail(key, "Expected number, received "+jsTypeOf(v))
		return nil
	}
	if math.IsNaN(f) {
		errs.fail(key, "Expected number, received nan")
		return nil
	}
	return &f
}

// unknownKeys returns the keys of raw outside allowed, sorted; decoded maps carry no input order.
func unknownKeys(raw map[string]any, allowed []string) []string {
	known := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		known[k] = true
	}
	var out []string
	for k := range raw {
		if !known[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// jsTypeOf names a decoded JSON value the way browser clients report types.
func jsTypeOf(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64:
		if math.IsNaN(t) {
			return "nan"
		}
		return "number"
	case int, int64, json.Number:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	}
	return "unknown"
}
