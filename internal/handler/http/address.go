package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/addressbook/internal/domain"
	"github.com/utafrali/addressbook/internal/service"
	"github.com/utafrali/addressbook/pkg/httputil"
	"github.com/utafrali/addressbook/pkg/middleware"
	"github.com/utafrali/addressbook/pkg/validator"
)

// AddressHandler handles HTTP requests for address book endpoints.
type AddressHandler struct {
	service *service.AddressService
	logger  *slog.Logger
}

// NewAddressHandler creates a new address HTTP handler.
func NewAddressHandler(svc *service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// CreateAddressRequest is the JSON request body for creating an address.
type CreateAddressRequest struct {
	Line1       string `json:"line1" validate:"required,min=1,max=500"`
	Line2       string `json:"line2" validate:"omitempty,max=500"`
	City        string `json:"city" validate:"required,min=1,max=100"`
	State       string `json:"state" validate:"required,min=1,max=100"`
	PostalCode  string `json:"postal_code" validate:"required,min=1,max=20"`
	CountryCode string `json:"country_code" validate:"required,iso3166_1_alpha2"`
}

// UpdateAddressRequest is the JSON request body for updating an address.
// Omitted fields are left unchanged.
type UpdateAddressRequest struct {
	Line1       *string `json:"line1" validate:"omitempty,min=1,max=500"`
	Line2       *string `json:"line2" validate:"omitempty,max=500"`
	City        *string `json:"city" validate:"omitempty,min=1,max=100"`
	State       *string `json:"state" validate:"omitempty,min=1,max=100"`
	PostalCode  *string `json:"postal_code" validate:"omitempty,min=1,max=20"`
	CountryCode *string `json:"country_code" validate:"omitempty,iso3166_1_alpha2"`
}

// identityFromRequest builds the caller's identity from the request context
// populated by the Identity middleware.
func identityFromRequest(r *http.Request) domain.Identity {
	ctx := r.Context()
	role := domain.RoleOwner
	if middleware.RoleFromContext(ctx) == "admin" {
		role = domain.RoleAdmin
	}
	return domain.Identity{
		TenantID: middleware.TenantIDFromContext(ctx),
		UserID:   middleware.UserIDFromContext(ctx),
		Role:     role,
	}
}

// --- Handlers ---

// Create handles POST /api/v1/address
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateAddressInput{
		Line1:       req.Line1,
		Line2:       req.Line2,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		CountryCode: req.CountryCode,
	}

	address, err := h.service.CreateAddress(r.Context(), identityFromRequest(r), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: address})
}

// Get handles GET /api/v1/address/{addressId}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	addressID := chi.URLParam(r, "addressId")

	address, err := h.service.GetAddress(r.Context(), identityFromRequest(r), addressID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: address})
}

// List handles GET /api/v1/address
//
// Admins may pass ?userId= to list another user's addresses within the tenant.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	forUserID := r.URL.Query().Get("userId")

	addresses, err := h.service.ListAddresses(r.Context(), identityFromRequest(r), forUserID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}

// Update handles PUT /api/v1/address/{addressId}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	addressID := chi.URLParam(r, "addressId")

	var req UpdateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.UpdateAddressInput{
		Line1:       req.Line1,
		Line2:       req.Line2,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		CountryCode: req.CountryCode,
	}

	address, err := h.service.UpdateAddress(r.Context(), identityFromRequest(r), addressID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: address})
}

// Delete handles DELETE /api/v1/address/{addressId}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	addressID := chi.URLParam(r, "addressId")

	if err := h.service.DeleteAddress(r.Context(), identityFromRequest(r), addressID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
