// Package handlers provides HTTP request handlers for the medlabel API endpoints.
// This file implements the HTTPHandler interface with dependency injection.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/extraction"
	"github.com/giygas/medlabel-api/interfaces"
	"github.com/giygas/medlabel-api/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// DefaultOCRTimeout bounds a single extraction request
const DefaultOCRTimeout = 10 * time.Second

// Multipart field carrying the label photo
const imageField = "image"

// Parts above this size are spooled to disk by the multipart reader
const multipartMemory = 8 << 20

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	catalog    interfaces.CatalogStore
	extractor  interfaces.Extractor
	validator  interfaces.MedicineValidator
	input      interfaces.InputValidator
	health     interfaces.HealthChecker
	ocrTimeout time.Duration
}

// HandlerOption configures an HTTPHandlerImpl
type HandlerOption func(*HTTPHandlerImpl)

// WithOCRTimeout sets the deadline applied to each extraction
func WithOCRTimeout(d time.Duration) HandlerOption {
	return func(h *HTTPHandlerImpl) { h.ocrTimeout = d }
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	catalog interfaces.CatalogStore,
	extractor interfaces.Extractor,
	validator interfaces.MedicineValidator,
	input interfaces.InputValidator,
	health interfaces.HealthChecker,
	opts ...HandlerOption,
) *HTTPHandlerImpl {
	h := &HTTPHandlerImpl{
		catalog:    catalog,
		extractor:  extractor,
		validator:  validator,
		input:      input,
		health:     health,
		ocrTimeout: DefaultOCRTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ExtractionResponse is returned by a successful extraction
type ExtractionResponse struct {
	ScanID string                    `json:"scanId"`
	Record *entities.ExtractedRecord `json:"record"`
}

// ScanResponse is an extraction followed by its validation
type ScanResponse struct {
	ScanID  string                     `json:"scanId"`
	Record  *entities.ExtractedRecord  `json:"record"`
	Verdict entities.ValidationVerdict `json:"verdict"`
}

// ExtractionErrorResponse carries the notification the client should show
type ExtractionErrorResponse struct {
	Error        string                `json:"error"`
	Message      string                `json:"message"`
	Code         int                   `json:"code"`
	Notification entities.Notification `json:"notification"`
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Debug("Failed to write response", "error", err)
	}
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// ExtractLabel runs the extractor on an uploaded label photo
func (h *HTTPHandlerImpl) ExtractLabel(w http.ResponseWriter, r *http.Request) {
	record, ok := h.extract(w, r)
	if !ok {
		return
	}

	h.RespondWithJSON(w, http.StatusOK, ExtractionResponse{
		ScanID: newScanID(r),
		Record: record,
	})
}

// ScanLabel extracts a record and validates it in one request
func (h *HTTPHandlerImpl) ScanLabel(w http.ResponseWriter, r *http.Request) {
	record, ok := h.extract(w, r)
	if !ok {
		return
	}

	verdict := h.validator.Validate(*record)

	h.RespondWithJSON(w, http.StatusOK, ScanResponse{
		ScanID:  newScanID(r),
		Record:  record,
		Verdict: verdict,
	})
}

// ValidateRecord validates a record submitted as JSON, typically after the
// user corrected it by hand
func (h *HTTPHandlerImpl) ValidateRecord(w http.ResponseWriter, r *http.Request) {
	var record entities.ExtractedRecord

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&record); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.RespondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		logging.Warn("Unusual user input", "error", err)
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}

	if err := h.input.ValidateRecord(&record); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondWithJSON(w, http.StatusOK, h.validator.Validate(record))
}

// ServeCatalog returns every catalog entry
func (h *HTTPHandlerImpl) ServeCatalog(w http.ResponseWriter, r *http.Request) {
	h.RespondWithCompressedJSON(w, r, http.StatusOK, h.catalog.Entries())
}

// FindCatalogEntry looks up one entry by case-insensitive name
func (h *HTTPHandlerImpl) FindCatalogEntry(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing medicine name")
		return
	}

	if err := h.input.ValidateInput(name); err != nil {
		logging.Warn("Unusual user input", "name", name)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, found := h.catalog.Lookup(name)
	if !found {
		h.RespondWithError(w, http.StatusNotFound, "Medicine not found in catalog")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, entry)
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.health.HealthCheck()

	h.RespondWithJSON(w, httpStatus, HealthResponse{
		Status: status,
		Data:   data,
	})
}

// extract reads the image, runs the extractor under the OCR deadline and
// writes the error response itself when it returns false
func (h *HTTPHandlerImpl) extract(w http.ResponseWriter, r *http.Request) (*entities.ExtractedRecord, bool) {
	image, err := readImage(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.RespondWithError(w, http.StatusRequestEntityTooLarge, "Image too large")
			return nil, false
		}
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	if _, err := h.input.ValidateImage(image); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.ocrTimeout)
	defer cancel()

	record, err := h.extractor.Extract(ctx, image)
	if err == nil && record != nil {
		return record, true
	}

	code := http.StatusUnprocessableEntity
	if errors.Is(err, context.DeadlineExceeded) {
		code = http.StatusGatewayTimeout
	}

	h.RespondWithJSON(w, code, ExtractionErrorResponse{
		Error:        http.StatusText(code),
		Message:      extraction.FailureNotice.Description,
		Code:         code,
		Notification: extraction.FailureNotice,
	})
	return nil, false
}

var errMissingImage = errors.New("missing image: send the photo as the request body or as multipart field \"image\"")

// readImage accepts either a raw body or a multipart form with an image field
func readImage(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, errMissingImage
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		image, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(image) == 0 {
			return nil, errMissingImage
		}
		return image, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, errors.New("invalid multipart form")
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile(imageField)
	if err != nil {
		return nil, errMissingImage
	}
	defer file.Close()

	return io.ReadAll(file)
}

// newScanID returns a fresh scan id, logged against the chi request id
func newScanID(r *http.Request) string {
	id := uuid.NewString()
	logging.Debug("Scan completed", "scan_id", id, "request_id", middleware.GetReqID(r.Context()))
	return id
}
