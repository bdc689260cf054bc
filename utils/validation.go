// utils/validation.go
package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"scheduler-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Messages shown next to form inputs.
const (
	MsgForbiddenChars = "Field contains forbidden characters: <, >, '"
	MsgTooShort       = "Field must have at least 3 characters"
	MsgInvalidDate    = "Please select a valid date"
	MsgTooLong        = "Field may not be greater than 255 characters"
)

const (
	minTextLength = 3
	forbidden     = "<>'"
)

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// FieldKind selects the rule set ValidateForm applies to a field.
type FieldKind int

const (
	TextKind FieldKind = iota
	DateKind
)

// FormField is one name/value pair submitted by the add or edit form.
type FormField struct {
	Name  string
	Value string
	Kind  FieldKind
}

func TextField(name, value string) FormField {
	return FormField{Name: name, Value: value, Kind: TextKind}
}

func DateField(name, value string) FormField {
	return FormField{Name: name, Value: value, Kind: DateKind}
}

// FieldError is a single message attached to a form input.
type FieldError struct {
	Field   string
	Message string
}

// ValidateText applies the form rules to a subject or message value and
// returns the message to show, or "" when the value is acceptable.
func ValidateText(value string) string {
	if strings.ContainsAny(value, forbidden) {
		return MsgForbiddenChars
	}
	if utf8.RuneCountInString(value) < minTextLength {
		return MsgTooShort
	}
	return ""
}

// ValidateForm is shared by the add and edit forms. Errors come back in
// field order, at most one per field.
func ValidateForm(fields ...FormField) []FieldError {
	var errs []FieldError
	for _, f := range fields {
		switch f.Kind {
		case DateKind:
			if f.Value == "" {
				errs = append(errs, FieldError{Field: f.Name, Message: MsgInvalidDate})
			}
		default:
			if msg := ValidateText(f.Value); msg != "" {
				errs = append(errs, FieldError{Field: f.Name, Message: msg})
			}
		}
	}
	return errs
}

var registerOnce sync.Once

// RegisterValidators installs the isodate and notblank rules and makes
// validation errors report json field names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := models.ParseDate(fl.Field().String())
			return err == nil
		})
		// Whitespace only counts as missing.
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ErrMalformedBody is returned by BindJSON when the body is not a JSON object.
var ErrMalformedBody = errors.New("malformed request body")

// BindJSON decodes and validates the request body into obj. Field level
// problems are returned as FieldErrors; a body that is not a JSON object
// as ErrMalformedBody. An empty body counts as an empty object.
func BindJSON(c *gin.Context, obj any) (FieldErrors, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: body is null", ErrMalformedBody)
	}

	// Report every mistyped field, not just the first one the decoder hits.
	errs := FieldErrors{}
	skip := map[string]bool{}
	for name, typ := range structFields(obj) {
		raw, ok := fields[name]
		if !ok || rawMatches(typ, raw) {
			continue
		}
		errs.Add(name, fmt.Sprintf("The %s field must be a %s.", name, kindName(typ)))
		skip[name] = true
		delete(fields, name)
	}

	cleaned, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if err := json.Unmarshal(cleaned, obj); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		errs.Add(field, fmt.Sprintf("The %s field must be a %s.", field, kindName(typeErr.Type)))
		skip[field] = true
	}

	var verrs validator.ValidationErrors
	if vErr := binding.Validator.ValidateStruct(obj); vErr != nil {
		if !errors.As(vErr, &verrs) {
			return nil, vErr
		}
		addValidationErrors(errs, verrs, skip)
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// structFields maps the json names of obj's exported fields to their types.
func structFields(obj any) map[string]reflect.Type {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	out := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if name := jsonFieldName(f); name != "" {
			out[name] = f.Type
		}
	}
	return out
}

// rawMatches reports whether raw has the JSON type a scalar field of type t
// accepts. null always matches and leaves the field empty.
func rawMatches(t reflect.Type, raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == 'n' {
		return true
	}
	switch t.Kind() {
	case reflect.String:
		return raw[0] == '"'
	case reflect.Bool:
		return raw[0] == 't' || raw[0] == 'f'
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')
	default:
		return true
	}
}

func addValidationErrors(errs FieldErrors, verrs validator.ValidationErrors, skip map[string]bool) {
	for _, fe := range verrs {
		if skip[fe.Field()] {
			continue
		}
		errs.Add(fe.Field(), validationMessage(fe))
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", fe.Field(), fe.Param())
	case "isodate":
		return fmt.Sprintf("The %s field must be a valid date.", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return "integer"
	case reflect.Bool:
		return "boolean"
	default:
		return t.Kind().String()
	}
}
