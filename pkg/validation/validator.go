package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/oksasatya/devconnector/pkg/response"
)

// LocationBody is reported for every field bound from the JSON payload.
const LocationBody = "body"

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for common validations.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=6") // password minimum length
		// required passes "   "; notblank rejects whitespace-only strings
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

// BindJSON binds the request body into obj and validates it.
// An empty body is validated as `{}` so required fields are still reported
// individually. It returns nil when obj is valid.
func BindJSON(c *gin.Context, obj any) []response.Item {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}
	return ToItems(err, obj)
}

// ToItems converts validation/binding errors into `errors` array items.
// A field's message comes from its `msg` struct tag when present.
func ToItems(err error, obj any) []response.Item {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return []response.Item{{Msg: "Invalid value", Param: ute.Field, Location: LocationBody}}
	}
	if errors.As(err, &se) {
		return []response.Item{{Msg: "Invalid JSON payload", Location: LocationBody}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]response.Item, 0, len(verrs))
		for _, fe := range verrs {
			msg := tagMessage(obj, fe.StructField())
			if msg == "" {
				msg = fe.Field() + " " + formatFieldError(fe)
			}
			out = append(out, response.Item{Msg: msg, Param: fe.Field(), Location: LocationBody})
		}
		return out
	}

	// Fallback
	return []response.Item{{Msg: "Invalid payload", Location: LocationBody}}
}

func tagMessage(obj any, field string) string {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ""
	}
	f, ok := t.FieldByName(field)
	if !ok {
		return ""
	}
	return f.Tag.Get("msg")
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "pwd":
		return "must be at least 6 characters long"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	default:
		if param != "" {
			return fmt.Sprintf("failed '%s' with parameter '%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("failed '%s'", fe.Tag())
	}
}
