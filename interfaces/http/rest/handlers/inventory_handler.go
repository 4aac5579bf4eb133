package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"inventory-backend/application/services"
	"inventory-backend/domain/inventory"
	"inventory-backend/pkg/common"
	apperrors "inventory-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Route parameters
const (
	ParamID          = "id"
	QueryInventoryID = inventory.AttrInventoryID
)

// InventoryHandler handles inventory record HTTP requests
type InventoryHandler struct {
	service *services.InventoryService
	logger  *zap.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service *services.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger,
	}
}

// Get handles GET /inventory and GET /inventory/{id}. An inventory_id query
// parameter takes precedence over the path id; with neither, every record is
// returned.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if inventoryID := r.URL.Query().Get(QueryInventoryID); inventoryID != "" {
		records, err := h.service.ListByInventoryID(ctx, inventoryID)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusOK, records)
		return
	}

	if id := chi.URLParam(r, ParamID); id != "" {
		record, err := h.service.Get(ctx, id)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusOK, record)
		return
	}

	records, err := h.service.ListAll(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, records)
}

// Create handles POST /inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	record, err := h.service.Create(r.Context(), payload, true)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, record)
}

// Update handles PUT /inventory/{id}
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	record, err := h.service.Update(r.Context(), chi.URLParam(r, ParamID), payload)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, ParamID)); err != nil {
		h.respondError(w, r, err)
		return
	}

	common.RespondNoContent(w)
}

// MethodNotAllowed answers verbs the inventory routes do not serve
func (h *InventoryHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, r, apperrors.NewMethodNotAllowedError(r.Method))
}

// NotFound answers unknown routes
func (h *InventoryHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if err := common.RespondMessage(w, http.StatusNotFound, "Not found"); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// decodePayload reads a JSON object body. Anything else is an unexpected
// failure, exactly like a store error.
func decodePayload(r *http.Request) (map[string]any, error) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return payload, nil
}

// Helper methods

func (h *InventoryHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := common.RespondJSON(w, status, data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError maps err to the response contract: 404, 400 and 405 carry a
// message, everything else is a 500 exposing the raw error text.
func (h *InventoryHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)

	var writeErr error
	switch status {
	case http.StatusNotFound:
		writeErr = common.RespondMessage(w, status, "Item not found")
	case http.StatusMethodNotAllowed:
		writeErr = common.RespondMessage(w, status, "Method not allowed")
	case http.StatusBadRequest:
		writeErr = common.RespondMessage(w, status, apperrors.GetAppError(err).Message)
	default:
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeErr = common.RespondError(w, http.StatusInternalServerError, err.Error())
	}

	if writeErr != nil {
		h.logger.Error("Failed to encode response", zap.Error(writeErr))
	}
}
