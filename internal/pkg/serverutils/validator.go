package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"simple-note/internal/dto"
	"simple-note/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("notblank", notBlank)
		validate.RegisterStructValidation(validateUpdateNote, dto.UpdateNoteRequest{})
	})
	return validate
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

// A supplied content, including an explicit null, must not be blank.
func validateUpdateNote(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.UpdateNoteRequest)
	if !req.Content.Set {
		return
	}
	if req.Content.Value == nil || strings.TrimSpace(*req.Content.Value) == "" {
		sl.ReportError(req.Content, "content", "Content", "notblank", "")
	}
}

// ValidateRequest runs struct validation and turns the first failure into an
// apperror validation error. The message comes from the field's errmsg tag.
func ValidateRequest(req interface{}) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return apperror.Validation("Invalid request body")
	}

	return apperror.Validation(messageFor(req, fieldErrors[0]))
}

func messageFor(req interface{}, fe validator.FieldError) string {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if field, ok := t.FieldByName(fe.StructField()); ok {
			if msg := field.Tag.Get("errmsg"); msg != "" {
				return msg
			}
		}
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
