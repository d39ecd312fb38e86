package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/petdirectory/api/internal/helpers"
	"github.com/petdirectory/api/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func InitValidator() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

func validationCodes(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"INVALID_BODY"}
	}

	codes := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		codes = append(codes, "INVALID_"+strings.ToUpper(fieldErr.Field()))
	}
	return codes
}

// Validate decodes the JSON body into T, validates it, and parks the value in
// the request context for the typed handler wrappers.
func Validate[T any](next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body T

		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				helpers.RespondWithError(w, 400, []string{"INVALID_BODY"})
				return
			}
		}

		if err := validate.Struct(body); err != nil {
			helpers.RespondWithError(w, 400, validationCodes(err))
			return
		}

		ctx := context.WithValue(r.Context(), models.ValidatedBodyKey{}, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ValidateQuery decodes query parameters into T by `form` tag, validates, and
// parks the value in the request context.
func ValidateQuery[T any](next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var queryParams T

		if err := decodeQuery(r, &queryParams); err != nil {
			helpers.RespondWithError(w, 400, []string{"INVALID_QUERY"})
			return
		}

		if err := validate.Struct(queryParams); err != nil {
			helpers.RespondWithError(w, 400, validationCodes(err))
			return
		}

		ctx := context.WithValue(r.Context(), models.ValidatedQueryKey{}, queryParams)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func decodeQuery(r *http.Request, target any) error {
	values := r.URL.Query()
	v := reflect.ValueOf(target).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("form")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		raw := values.Get(name)
		if raw == "" {
			continue
		}

		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return err
			}
			fv.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			fv.SetBool(b)
		default:
		}
	}

	return nil
}
