package service

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gitlab.com/dirk.krummacker/contact-directory/internal/model"
	"gitlab.com/dirk.krummacker/contact-directory/pkg/api"
)

var registerOnce sync.Once

// registerValidations teaches gin's validator about calendar dates and the 'past' rule, and makes
// it report fields by their JSON names.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(dateValue, model.Date{})
		if err := v.RegisterValidation("past", pastDate); err != nil {
			panic(err)
		}
	})
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func dateValue(field reflect.Value) any {
	if d, ok := field.Interface().(model.Date); ok {
		return d.Time
	}
	return nil
}

// pastDate accepts dates strictly before today.
func pastDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	y, m, d := now().Date()
	return t.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func abortWithFieldErrors(c *gin.Context, errs ...api.FieldError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, api.ErrorResponse{
		Message: api.MessageValidationFailed,
		Errors:  errs,
	})
}

// bindPayload parses and validates the contact in the request body. Bodies that are not JSON are
// answered with BAD REQUEST, constraint violations with UNPROCESSABLE ENTITY.
func bindPayload(c *gin.Context, payload *model.ContactPayload) bool {
	err := c.ShouldBindJSON(payload)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	var dateErr *model.DateError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &validationErrs):
		errs := make([]api.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			errs = append(errs, api.FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		abortWithFieldErrors(c, errs...)
	case errors.As(err, &dateErr):
		abortWithFieldErrors(c, api.FieldError{Field: "birthday", Rule: "date"})
	case errors.As(err, &typeErr):
		abortWithFieldErrors(c, api.FieldError{Field: typeErr.Field, Rule: "type", Param: typeErr.Type.String()})
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Message: api.MessageInvalidJSON})
	}
	return false
}
