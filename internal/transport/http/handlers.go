package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"eshop/internal/domain"
	"eshop/internal/dto"
	obsmw "eshop/internal/observability/middleware"
	"eshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type handler struct {
	users          service.UserService
	orders         service.OrderService
	tokens         service.TokenService
	frontendDomain string
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, dto.MsgUnexpectedError)
		return
	}

	outcome, err := h.users.Register(r.Context(), req)
	if err != nil {
		slog.Error("registration", "error", err, "outcome", outcome,
			"request_id", obsmw.RequestIDFromContext(r.Context()))
	}

	switch outcome {
	case service.RegisterCreated:
		writeDetail(w, http.StatusCreated, dto.MsgSuccessNewRegister)
	case service.RegisterResent:
		writeDetail(w, http.StatusOK, dto.MsgUserExistsNotActive)
	case service.RegisterAlreadyActive:
		writeDetail(w, http.StatusOK, dto.MsgUserExistsActive)
	case service.RegisterEmailFailed:
		writeDetail(w, http.StatusInternalServerError, dto.MsgErrorSendingEmail)
	default:
		writeDetail(w, http.StatusBadRequest, dto.MsgUnexpectedError)
	}
}

// verifyEmail consumes the emailed activation link. Bad tokens are never
// rejected with a 4xx; the caller is a browser and gets redirected either way.
func (h *handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	err := h.users.Activate(r.Context(), token)
	switch {
	case err == nil:
		http.Redirect(w, r, h.frontendDomain+"/login?token=valid", http.StatusFound)
	case service.IsTokenError(err):
		http.Redirect(w, r, h.frontendDomain+"/login?token=invalid", http.StatusFound)
	default:
		// Token was fine but the account could not be loaded or saved.
		slog.Error("activation", "error", err,
			"request_id", obsmw.RequestIDFromContext(r.Context()))
		writeDetail(w, http.StatusInternalServerError, dto.MsgUnexpectedError)
	}
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, dto.MsgUnexpectedError)
		return
	}

	res, err := h.users.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeDetail(w, http.StatusUnauthorized, dto.MsgInvalidCredentials)
			return
		}
		slog.Error("login", "error", err,
			"request_id", obsmw.RequestIDFromContext(r.Context()))
		writeDetail(w, http.StatusInternalServerError, dto.MsgUnexpectedError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) profile(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, dto.FromUser(u))
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, dto.MsgUnexpectedError)
		return
	}

	res, err := h.users.UpdateProfile(r.Context(), u.ID, req)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, dto.MsgUnexpectedError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	res, err := h.users.List(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, dto.MsgUnexpectedError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) addOrder(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, dto.MsgUnexpectedError)
		return
	}

	res, err := h.orders.Place(r.Context(), u, req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeDetail(w, http.StatusBadRequest, verr.Msg)
			return
		}
		slog.Error("placing order", "error", err,
			"request_id", obsmw.RequestIDFromContext(r.Context()))
		writeDetail(w, http.StatusInternalServerError, dto.MsgUnexpectedError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) myOrders(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	res, err := h.orders.ListMine(r.Context(), u.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrders) {
			writeDetail(w, http.StatusNotFound, dto.MsgNoOrders)
			return
		}
		writeDetail(w, http.StatusInternalServerError, dto.MsgUnexpectedError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, dto.MsgOrderNotFound)
		return
	}

	res, err := h.orders.Get(r.Context(), u, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			writeDetail(w, http.StatusNotFound, dto.MsgOrderNotFound)
		case errors.Is(err, domain.ErrNotAuthorized):
			writeDetail(w, http.StatusForbidden, dto.MsgNotAuthorized)
		default:
			writeDetail(w, http.StatusInternalServerError, dto.MsgUnexpectedError)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.Detail{Detail: msg})
}
