package http

import (
	"encoding/json"
	"net/http"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/service"

	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

type createReviewRequest struct {
	BookingID string  `json:"booking_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrMissingField)
		return
	}
	if req.BookingID == "" {
		respondError(w, domain.ErrMissingField)
		return
	}

	review, err := h.reviewSvc.SubmitReview(r.Context(), claimsFrom(r).UserID, req.BookingID, req.Rating, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	reviews, total, err := h.reviewSvc.ListUserReviews(r.Context(), mux.Vars(r)["id"], page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{
		Data: reviews,
		Meta: listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}
