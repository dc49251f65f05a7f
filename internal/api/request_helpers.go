package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/phrazzld/carousel-api/internal/api/shared"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/generation"
)

// referenceField is the multipart field carrying the reference image.
const referenceField = "reference"

// multipartOverhead is the allowance for form fields and boundaries on top
// of the upload limit.
const multipartOverhead = 64 << 10

// allowedReferenceTypes are the sniffed content types accepted for uploads.
var allowedReferenceTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// decodeAndValidate decodes a JSON body into v and validates it. Both
// failures are reported as validation errors.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		return domain.NewValidationError("", "Invalid request format", err)
	}
	if err := shared.ValidateRequest(v); err != nil {
		return domain.NewValidationError("", "", err)
	}
	return nil
}

// readReference returns the optional reference image of a parsed multipart
// form. It enforces the size limit and sniffs the content type rather than
// trusting the client's header.
func readReference(r *http.Request, maxBytes int64) (*generation.Image, error) {
	file, header, err := r.FormFile(referenceField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewValidationError(referenceField, "could not be read", err)
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxBytes {
		return nil, domain.NewValidationError(referenceField, fmt.Sprintf("must be at most %d MB", maxBytes>>20), nil)
	}
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, domain.NewValidationError(referenceField, "could not be read", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.NewValidationError(referenceField, fmt.Sprintf("must be at most %d MB", maxBytes>>20), nil)
	}
	if len(data) == 0 {
		return nil, nil
	}

	mimeType := http.DetectContentType(data)
	if !allowedReferenceTypes[mimeType] {
		return nil, domain.NewValidationError(referenceField, "only JPG, PNG and WEBP images are supported", nil)
	}
	return &generation.Image{Data: data, MIMEType: mimeType}, nil
}

// parseAnalyzeForm parses and validates the multipart analyze request.
func parseAnalyzeForm(w http.ResponseWriter, r *http.Request, maxUpload int64) (AnalyzeForm, *generation.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(maxUpload + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return AnalyzeForm{}, nil, domain.NewValidationError(referenceField,
				fmt.Sprintf("must be at most %d MB", maxUpload>>20), err)
		}
		return AnalyzeForm{}, nil, domain.NewValidationError("", "Invalid request format", err)
	}

	form := AnalyzeForm{BusinessTheme: strings.TrimSpace(r.FormValue("businessTheme"))}
	if err := shared.ValidateRequest(form); err != nil {
		return AnalyzeForm{}, nil, domain.NewValidationError("", "", err)
	}

	ref, err := readReference(r, maxUpload)
	if err != nil {
		return AnalyzeForm{}, nil, err
	}
	return form, ref, nil
}

// respondWithServiceError writes the status and safe message for err, using
// messageFn to phrase it.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, messageFn func(error) string) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), messageFn(err), err)
}
