package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/imagejob"
	"github.com/phrazzld/carousel-api/internal/redact"
)

// MapErrorToStatusCode maps an error's kind to an HTTP status code. Every
// kind is matched explicitly; nothing inspects error text.
func MapErrorToStatusCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUpstream, domain.KindMalformedOutput, domain.KindTimeout, domain.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a short user-facing message for err. Upstream
// failures that name their service pass the redacted cause through.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return validationMessage(err)
	case domain.KindNotFound:
		return "Carousel not found"
	case domain.KindUpstream:
		if svc := domain.ServiceOf(err); svc != "" {
			return fmt.Sprintf("%s error: %s", svc, causeMessage(err))
		}
		return "An external service failed. Please try again"
	case domain.KindMalformedOutput:
		return "The language model returned an unusable response. Please try again"
	case domain.KindTimeout:
		return "The request timed out. Please try again"
	case domain.KindUnknown:
		return "An unexpected error occurred"
	default:
		return "An unexpected error occurred"
	}
}

// GetImageErrorMessage is GetSafeErrorMessage for image generation. It keeps
// three upstream categories apart: failures of the image service itself,
// deadlines (with a hint to retry or switch to template mode) and any other
// AI service error.
func GetImageErrorMessage(err error) string {
	switch domain.KindOf(err) {
	case domain.KindTimeout:
		return "Image generation timed out. Try again or use template mode instead of AI mode"
	case domain.KindUpstream:
		if domain.ServiceOf(err) == imagejob.ServiceName {
			return fmt.Sprintf("Image service %s error: %s", imagejob.ServiceName, causeMessage(err))
		}
		return "AI service error. Please try again later"
	case domain.KindMalformedOutput:
		return "The image service returned an unusable image. Please try again"
	default:
		return GetSafeErrorMessage(err)
	}
}

// causeMessage returns the redacted cause of the outermost tagged error.
func causeMessage(err error) string {
	var derr *domain.Error
	if errors.As(err, &derr) && derr.Err != nil {
		return redact.Error(derr.Err)
	}
	return redact.Error(err)
}

// validationMessage renders a validation failure as "Invalid <field>: <reason>".
func validationMessage(err error) string {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		return "Validation error"
	}

	var verrs validator.ValidationErrors
	if errors.As(derr.Err, &verrs) {
		return SanitizeValidationError(verrs)
	}

	switch {
	case derr.Field != "" && derr.Message != "":
		return fmt.Sprintf("Invalid %s: %s", derr.Field, derr.Message)
	case derr.Field != "":
		return fmt.Sprintf("Invalid %s", derr.Field)
	case derr.Message != "":
		return derr.Message
	default:
		return "Validation error"
	}
}

// SanitizeValidationError turns struct validation errors into a user-friendly
// message naming the offending fields.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe)))
	}
	return strings.Join(parts, "; ")
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "min", "gte":
		return "must be at least " + fe.Param() + unitSuffix(fe)
	case "max", "lte":
		return "must be at most " + fe.Param() + unitSuffix(fe)
	case "oneof":
		return "must be one of " + fe.Param()
	case "codeword":
		return "only letters, digits and _ are allowed"
	case "dive":
		return "invalid item"
	default:
		return "validation failed"
	}
}

func unitSuffix(fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array:
		return " items"
	default:
		return ""
	}
}
