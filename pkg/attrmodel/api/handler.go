package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/content-attrs/pkg/attrmodel"
)

const maxBodyBytes = 1 << 20

// SchemaResponse is the response body describing a schema
type SchemaResponse struct {
	Name       string   `json:"name"`
	Record     bool     `json:"record"`
	Type       *string  `json:"type"`
	Declared   []string `json:"declared"`
	Table      []string `json:"table"`
	RecordKeys []string `json:"record_keys"`
	Computed   []string `json:"computed"`
}

// ChangesRequest is the request body for computing changes between two
// attribute sets of the same schema
type ChangesRequest struct {
	Original *attrmodel.Attributes `json:"original"`
	Current  *attrmodel.Attributes `json:"current"`
}

// ChangesResponse is the response body for changes
type ChangesResponse struct {
	Dirty   bool                  `json:"dirty"`
	Changes *attrmodel.Attributes `json:"changes"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes an error
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// SchemaHandler handles HTTP requests for the schemas of a registry
type SchemaHandler struct {
	registry *attrmodel.Registry
	logger   *slog.Logger
}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler(registry *attrmodel.Registry, logger *slog.Logger) *SchemaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchemaHandler{
		registry: registry,
		logger:   logger,
	}
}

// Routes returns the routes for schemas
func (h *SchemaHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(RecoveryMiddleware(h.logger))
	r.Use(LoggingMiddleware(h.logger))
	r.Use(RequestSizeLimitMiddleware(maxBodyBytes))

	r.Get("/schemas", h.ListSchemas)
	r.Get("/schemas/{name}", h.GetSchema)
	r.Post("/schemas/{name}/serialize", h.Serialize)
	r.Post("/schemas/{name}/changes", h.Changes)

	return r
}

// ListSchemas lists the registered schema names
func (h *SchemaHandler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.registry.Names())
}

// GetSchema describes one schema
func (h *SchemaHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schema(w, r)
	if !ok {
		return
	}

	resp := SchemaResponse{
		Name:       schema.Name(),
		Record:     schema.UsesRecord(),
		Declared:   nonNil(schema.DeclaredKeys()),
		Table:      nonNil(schema.TableKeys()),
		RecordKeys: nonNil(schema.RecordKeys()),
		Computed:   nonNil(schema.ComputedKeys()),
	}
	if tag, ok := schema.RecordType(); ok {
		resp.Type = &tag
	}

	render.JSON(w, r, resp)
}

// Serialize builds a model from the request body and returns its
// serialized form. With ?unguard=true the body is filled unguarded.
func (h *SchemaHandler) Serialize(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schema(w, r)
	if !ok {
		return
	}

	unguard := false
	if v := r.URL.Query().Get("unguard"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, "bad_request", "Invalid unguard parameter")
			return
		}
		unguard = b
	}

	var body attrmodel.Attributes
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	attrs, err := schema.DecodeRecord(&body)
	if err != nil {
		h.handleError(w, r, schema, err)
		return
	}

	m, err := attrmodel.New(schema, nil)
	if err != nil {
		h.handleError(w, r, schema, err)
		return
	}
	if unguard {
		m.Unguard()
	}
	if err := m.Refresh(attrs); err != nil {
		h.handleError(w, r, schema, err)
		return
	}
	m.Reguard()

	out, err := m.Serialize()
	if err != nil {
		h.handleError(w, r, schema, err)
		return
	}

	render.JSON(w, r, out)
}

// Changes hydrates a model from the original attributes, syncs it, applies
// the current attributes and reports what changed. Both sides are filled
// unguarded, as state loaded from storage is.
func (h *SchemaHandler) Changes(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schema(w, r)
	if !ok {
		return
	}

	var req ChangesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	original, err := schema.DecodeRecord(req.Original)
	if err != nil {
		h.handleError(w, r, schema, err)
		return
	}
	current, err := schema.DecodeRecord(req.Current)
	if err != nil {
		h.handleError(w, r, schema, err)
		return
	}

	m, err := attrmodel.New(schema, nil)
	if err != nil {
		h.handleError(w, r, schema, err)
		return
	}
	m.Unguard()
	if err := m.Refresh(original); err != nil {
		h.handleError(w, r, schema, err)
		return
	}
	m.SyncOriginal()
	if err := m.Refresh(current); err != nil {
		h.handleError(w, r, schema, err)
		return
	}
	m.Reguard()

	dirty, err := m.IsDirty()
	if err != nil {
		h.handleError(w, r, schema, err)
		return
	}
	changes, err := m.Changes()
	if err != nil {
		h.handleError(w, r, schema, err)
		return
	}

	render.JSON(w, r, ChangesResponse{Dirty: dirty, Changes: changes})
}

func (h *SchemaHandler) schema(w http.ResponseWriter, r *http.Request) (*attrmodel.Schema, bool) {
	name := chi.URLParam(r, "name")
	schema, err := h.registry.Get(name)
	if err != nil {
		h.handleError(w, r, nil, err)
		return nil, false
	}
	return schema, true
}

// handleError maps model errors onto HTTP status codes
func (h *SchemaHandler) handleError(w http.ResponseWriter, r *http.Request, schema *attrmodel.Schema, err error) {
	status, code := statusFor(err)

	attrs := []any{"error", err, "status", status}
	if schema != nil {
		attrs = append(attrs, "schema", schema.Name())
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", attrs...)
	} else {
		h.logger.Warn("Request rejected", attrs...)
	}

	h.writeError(w, r, status, code, err.Error())
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, attrmodel.ErrSchemaNotFound):
		return http.StatusNotFound, "schema_not_found"
	case errors.Is(err, attrmodel.ErrGuardedAttribute):
		return http.StatusForbidden, "guarded_attribute"
	case errors.Is(err, attrmodel.ErrInvalidRecord):
		return http.StatusBadRequest, "invalid_record"
	case errors.Is(err, attrmodel.ErrAttributeNotFound):
		return http.StatusUnprocessableEntity, "attribute_not_found"
	case errors.Is(err, attrmodel.ErrRecordField):
		return http.StatusUnprocessableEntity, "record_field"
	case errors.Is(err, attrmodel.ErrRecordNotPresent):
		return http.StatusUnprocessableEntity, "record_not_present"
	case errors.Is(err, attrmodel.ErrComputeCycle):
		return http.StatusUnprocessableEntity, "compute_cycle"
	}
	return http.StatusInternalServerError, "internal_error"
}

func (h *SchemaHandler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID, _ := r.Context().Value(RequestIDKey).(string)
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: requestID,
	}})
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}
