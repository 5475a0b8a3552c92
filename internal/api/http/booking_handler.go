package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	paymentSvc service.PaymentService
}

func NewBookingHandler(bookingSvc service.BookingService, paymentSvc service.PaymentService) *BookingHandler {
	return &BookingHandler{
		bookingSvc: bookingSvc,
		paymentSvc: paymentSvc,
	}
}

type createBookingRequest struct {
	ItemID    string `json:"item_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrMissingField)
		return
	}
	if req.ItemID == "" || req.StartDate == "" || req.EndDate == "" {
		respondError(w, domain.ErrMissingField)
		return
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), claimsFrom(r).UserID, req.ItemID, req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.GetBooking(r.Context(), claimsFrom(r).UserID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	bookings, total, err := h.bookingSvc.ListBookings(r.Context(), claimsFrom(r).UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{
		Data: bookings,
		Meta: listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

func (h *BookingHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	bookings, total, err := h.bookingSvc.ListBookingRequests(r.Context(), claimsFrom(r).UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{
		Data: bookings,
		Meta: listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.ApproveBooking(r.Context(), claimsFrom(r).UserID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.RejectBooking(r.Context(), claimsFrom(r).UserID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.bookingSvc.CancelBooking(r.Context(), claimsFrom(r).UserID, mux.Vars(r)["id"], false)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *BookingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	checkoutURL, err := h.paymentSvc.CreateCheckout(r.Context(), claimsFrom(r).UserID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"checkout_url": checkoutURL})
}

func (h *BookingHandler) Refund(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	booking, err := h.paymentSvc.RefundBooking(r.Context(), claims.UserID, claims.IsAdmin(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
