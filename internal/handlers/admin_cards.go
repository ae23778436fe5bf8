package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
	"github.com/horizonbank/horizon/internal/services"
)

// CardIssuer defines the card operations of the admin service.
type CardIssuer interface {
	IssueCard(ctx context.Context, accountID int64) (*models.CardDB, error)
	ReviewCard(ctx context.Context, cardID int64, approve bool) (*models.CardDB, error)
}

// IssueCardRequest represents the JSON body for issuing a card
// swagger:model IssueCardRequest
type IssueCardRequest struct {
	// Account the card draws on
	// required: true
	// default: 1
	AccountID int64 `json:"account_id"`
}

// ReviewCardRequest represents the JSON body for reviewing a card
// swagger:model ReviewCardRequest
type ReviewCardRequest struct {
	// Approve (true) or reject (false) the pending card
	// required: true
	// default: true
	Approve bool `json:"approve"`
}

// CardView is the wire form of a card
// swagger:model CardView
type CardView struct {
	// Card id
	// default: 1
	ID int64 `json:"id"`

	// Account id
	// default: 1
	AccountID int64 `json:"account_id"`

	// Masked card number
	// default: **** **** **** 4921
	MaskedNumber string `json:"masked_number"`

	// pending, active or rejected
	// default: pending
	Status string `json:"status"`
}

// CardResponse wraps a card
// swagger:model CardResponse
type CardResponse struct {
	// Success message
	// default: Card request created
	Message string `json:"message"`

	Card CardView `json:"card"`
}

func cardView(c models.CardDB) CardView {
	return CardView{
		ID:           c.CardID,
		AccountID:    c.AccountID,
		MaskedNumber: c.MaskedNumber,
		Status:       c.Status,
	}
}

// NewAdminIssueCardHandler returns an HTTP handler creating a pending card.
// @Summary Issue card
// @Description Creates a pending card request for an account
// @Tags admin
// @Accept json
// @Produce json
// @Param request body handlers.IssueCardRequest true "Issue Card Request"
// @Success 201 {object} handlers.CardResponse "Card request created"
// @Failure 404 {object} handlers.AdminErrorResponse "Account not found"
// @Router /admin/cards [post]
// @Security BearerAuth
func NewAdminIssueCardHandler(svc CardIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req IssueCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid request body"})
			return
		}

		card, err := svc.IssueCard(r.Context(), req.AccountID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAccountNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Account not found"})
			default:
				logger.Log.Errorw("failed to issue card", "accountID", req.AccountID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CardResponse{
			Message: "Card request created",
			Card:    cardView(*card),
		})
	}
}

// NewAdminReviewCardHandler returns an HTTP handler approving or rejecting a card.
// @Summary Review card
// @Description Approves or rejects a pending card request
// @Tags admin
// @Accept json
// @Produce json
// @Param cardID path int true "Card ID"
// @Param request body handlers.ReviewCardRequest true "Review Card Request"
// @Success 200 {object} handlers.CardResponse "Card reviewed"
// @Failure 400 {object} handlers.AdminErrorResponse "Card already reviewed"
// @Failure 404 {object} handlers.AdminErrorResponse "Card not found"
// @Router /admin/cards/{cardID}/review [post]
// @Security BearerAuth
func NewAdminReviewCardHandler(svc CardIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID, err := strconv.ParseInt(chi.URLParam(r, "cardID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid card id"})
			return
		}

		var req ReviewCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid request body"})
			return
		}

		card, err := svc.ReviewCard(r.Context(), cardID, req.Approve)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCardNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Card not found"})
			case errors.Is(err, services.ErrCardAlreadyReviewed):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Card already reviewed"})
			default:
				logger.Log.Errorw("failed to review card", "cardID", cardID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(CardResponse{
			Message: "Card reviewed",
			Card:    cardView(*card),
		})
	}
}
