// Package validate provides Laravel-inspired struct-tag validation.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type CheckoutInput struct {
//	    BillingCity   string `json:"billing_city"   validate:"required,max=100"`
//	    PaymentMethod string `json:"payment_method" validate:"required,in=paypal,stripe"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		// `in=a,b,c` swallows the following comma-split pieces.
		rules = regroupIn(rules)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}
	return errs
}

// HasErrors reports whether the error map contains any entries.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

func applyRule(rule, name string, value reflect.Value) string {
	key, arg := rule, ""
	if idx := strings.IndexByte(rule, '='); idx != -1 {
		key, arg = rule[:idx], rule[idx+1:]
	}

	switch key {
	case "required":
		if isEmpty(value) {
			return fmt.Sprintf("The %s field is required", name)
		}
	case "email":
		if s, ok := asString(value); ok && !emailRe.MatchString(s) {
			return fmt.Sprintf("The %s field must be a valid email address", name)
		}
	case "numeric":
		if s, ok := asString(value); ok {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return fmt.Sprintf("The %s field must be numeric", name)
			}
		}
	case "integer":
		if s, ok := asString(value); ok {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				return fmt.Sprintf("The %s field must be an integer", name)
			}
		}
	case "min":
		n, _ := strconv.ParseFloat(arg, 64)
		if size, isNum := sizeOf(value); isNum && size < n {
			return fmt.Sprintf("The %s field must be at least %s", name, arg)
		} else if !isNum && size < n {
			return fmt.Sprintf("The %s field must be at least %s characters", name, arg)
		}
	case "max":
		n, _ := strconv.ParseFloat(arg, 64)
		if size, isNum := sizeOf(value); isNum && size > n {
			return fmt.Sprintf("The %s field must not exceed %s", name, arg)
		} else if !isNum && size > n {
			return fmt.Sprintf("The %s field must not exceed %s characters", name, arg)
		}
	case "in":
		allowed := strings.Split(arg, ",")
		s := fmt.Sprintf("%v", value.Interface())
		for _, a := range allowed {
			if s == a {
				return ""
			}
		}
		return fmt.Sprintf("The %s field must be one of: %s", name, arg)
	}

	return ""
}

// regroupIn rejoins the pieces of an `in=a,b,c` rule that the comma split
// scattered into separate entries.
func regroupIn(rules []string) []string {
	out := make([]string, 0, len(rules))
	for i := 0; i < len(rules); i++ {
		r := rules[i]
		if strings.HasPrefix(r, "in=") {
			parts := []string{r}
			for i+1 < len(rules) && !strings.ContainsRune(rules[i+1], '=') && !isKnownRule(rules[i+1]) {
				i++
				parts = append(parts, rules[i])
			}
			out = append(out, strings.Join(parts, ","))
			continue
		}
		out = append(out, r)
	}
	return out
}

func isKnownRule(s string) bool {
	switch s {
	case "required", "nullable", "email", "numeric", "integer":
		return true
	}
	return false
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	if idx := strings.IndexByte(tag, ','); idx != -1 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name
	}
	return tag
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func asString(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

// sizeOf returns the comparable "size" of a value: the numeric value itself
// for numbers (isNum=true), or the character length for strings.
func sizeOf(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		return float64(len([]rune(v.String()))), false
	default:
		return 0, false
	}
}
