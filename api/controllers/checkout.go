package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glowbeauty/glow-backend/api/middleware"
	"github.com/glowbeauty/glow-backend/api/responses"
	"github.com/glowbeauty/glow-backend/api/validators"
	"github.com/glowbeauty/glow-backend/internal/checkout"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/logger"
)

type openCheckoutRequest struct {
	Total decimal.Decimal `json:"total"`
}

type submitPaymentRequest struct {
	Method     string `json:"method" validate:"required,oneof=card emi cod"`
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	EMIMonths  int    `json:"emi_months,omitempty"`
}

func checkoutIDFromURL(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "checkoutId"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout id")
	}
	return id, nil
}

// OpenCheckout starts a fresh payment attempt for the session.
func OpenCheckout(manager *checkout.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload openCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := manager.Open(r.Context(), sessionID, payload.Total)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// SubmitPayment validates the form and starts simulated processing.
func SubmitPayment(manager *checkout.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checkoutID, err := checkoutIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload submitPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := manager.Submit(r.Context(), checkoutID, checkout.SubmitInput{
			Method:     checkout.PaymentMethod(payload.Method),
			CardNumber: payload.CardNumber,
			CardName:   payload.CardName,
			Expiry:     payload.Expiry,
			CVV:        payload.CVV,
			EMIMonths:  payload.EMIMonths,
			UserID:     middleware.UserIDFromContext(r.Context()),
			UserName:   middleware.UserNameFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// GetCheckout polls the attempt's state machine position.
func GetCheckout(manager *checkout.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checkoutID, err := checkoutIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := manager.Get(r.Context(), checkoutID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// CloseCheckout finishes the attempt: completed checkouts clear the cart,
// earlier closes abandon the attempt with the cart untouched.
func CloseCheckout(manager *checkout.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checkoutID, err := checkoutIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := manager.Close(r.Context(), checkoutID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListEMIPlans prices every installment plan against the principal query
// parameter.
func ListEMIPlans(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("principal"))
		if raw == "" {
			responses.WriteSuccess(w, checkout.EMIPlans())
			return
		}

		principal, err := decimal.NewFromString(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "principal must be a number"))
			return
		}
		quotes, err := checkout.QuoteAllEMIPlans(principal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quotes)
	}
}
