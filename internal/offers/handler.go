package offers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/offerkit/offerkit/internal/platform/httpx"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListOffersRequest{Limit: 50}

	if status := r.URL.Query().Get("status"); status != "" {
		s := OfferStatus(status)
		req.Status = &s
	}
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid customer_id")
			return
		}
		req.CustomerID = &id
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 1000 {
			req.Limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			req.Offset = v
		}
	}

	offers, total, err := h.service.ListOffers(r.Context(), req)
	if err != nil {
		h.respondError(w, "list offers", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"offers": offers,
		"total":  total,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOfferRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	offer, err := h.service.CreateOffer(r.Context(), req)
	if err != nil {
		h.respondError(w, "create offer", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, offer)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	offer, err := h.service.GetOffer(r.Context(), id)
	if err != nil {
		h.respondError(w, "get offer", err)
		return
	}
	httpx.JSON(w, http.StatusOK, offer)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateOfferRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	offer, err := h.service.UpdateOffer(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "update offer", err)
		return
	}
	httpx.JSON(w, http.StatusOK, offer)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateOfferStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	offer, err := h.service.UpdateOfferStatus(r.Context(), id, req.Status)
	if err != nil {
		h.respondError(w, "update offer status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, offer)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteOffer(r.Context(), id); err != nil {
		h.respondError(w, "delete offer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	offerID, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	var req CreateGroupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	group, err := h.service.CreateGroup(r.Context(), offerID, req)
	if err != nil {
		h.respondError(w, "create group", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, group)
}

func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.parseID(w, r, "groupID")
	if !ok {
		return
	}
	var req UpdateGroupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	group, err := h.service.UpdateGroup(r.Context(), groupID, req)
	if err != nil {
		h.respondError(w, "update group", err)
		return
	}
	httpx.JSON(w, http.StatusOK, group)
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.parseID(w, r, "groupID")
	if !ok {
		return
	}
	if err := h.service.DeleteGroup(r.Context(), groupID); err != nil {
		h.respondError(w, "delete group", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.parseID(w, r, "groupID")
	if !ok {
		return
	}
	var req CreateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	item, err := h.service.CreateItem(r.Context(), groupID, req)
	if err != nil {
		h.respondError(w, "create item", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) ShowItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		h.respondError(w, "get item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	item, err := h.service.UpdateItem(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "update item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.respondError(w, "delete item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid "+param)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, httpx.ErrNotFound)
	case errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusConflict, "Invalid Status", err.Error())
	case errors.Is(err, ErrUndefinedMarkup):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable", err.Error())
	default:
		h.logger.Error(op+" failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
