package http

import (
	"encoding/json"
	"net/http"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/service"

	"github.com/gorilla/mux"
)

type ItemHandler struct {
	itemSvc service.ItemService
}

func NewItemHandler(itemSvc service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

type itemRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	PricePerDay        float64  `json:"price_per_day"`
	Price3Days         *float64 `json:"price_3_days,omitempty"`
	Price7Days         *float64 `json:"price_7_days,omitempty"`
	CancellationPolicy string   `json:"cancellation_policy"`
	City               string   `json:"city"`
	Neighborhood       string   `json:"neighborhood"`
	Category           string   `json:"category"`
}

func (req *itemRequest) toDomain(id, ownerID string) *domain.Item {
	return &domain.Item{
		ID:                 id,
		OwnerID:            ownerID,
		Title:              req.Title,
		Description:        req.Description,
		PricePerDay:        req.PricePerDay,
		Price3Days:         req.Price3Days,
		Price7Days:         req.Price7Days,
		CancellationPolicy: domain.CancellationPolicy(req.CancellationPolicy),
		City:               req.City,
		Neighborhood:       req.Neighborhood,
		Category:           req.Category,
	}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrMissingField)
		return
	}

	item, err := h.itemSvc.CreateItem(r.Context(), req.toDomain("", claimsFrom(r).UserID))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrMissingField)
		return
	}

	item, err := h.itemSvc.UpdateItem(r.Context(), claimsFrom(r).UserID, req.toDomain(mux.Vars(r)["id"], claimsFrom(r).UserID))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemSvc.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.itemSvc.ListItems(r.Context(), r.URL.Query().Get("city"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{
		Data: items,
		Meta: listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

func (h *ItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemSvc.ListMyItems(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type moderateRequest struct {
	Approve bool `json:"approve"`
}

func (h *ItemHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	if !claimsFrom(r).IsAdmin() {
		respondError(w, domain.ErrNotAllowed)
		return
	}

	var req moderateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrMissingField)
		return
	}

	item, err := h.itemSvc.ModerateItem(r.Context(), mux.Vars(r)["id"], req.Approve)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) ListPendingModeration(w http.ResponseWriter, r *http.Request) {
	if !claimsFrom(r).IsAdmin() {
		respondError(w, domain.ErrNotAllowed)
		return
	}

	items, err := h.itemSvc.ListPendingModeration(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
