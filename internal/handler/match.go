package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// MatchHandler handles HTTP requests for the match lifecycle.
type MatchHandler struct {
	matchService *service.MatchService
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// CreateMatchRequest is the HTTP request body for creating a match.
type CreateMatchRequest struct {
	UserID1 string `json:"userId1"`
	RideID1 string `json:"rideId1"`
	UserID2 string `json:"userId2"`
	RideID2 string `json:"rideId2"`
}

// ConfirmMatchRequest is the HTTP request body for confirming a match.
type ConfirmMatchRequest struct {
	UserID string `json:"userId"`
}

// MatchResponse is the HTTP representation of a match.
type MatchResponse struct {
	ID            string          `json:"id"`
	User1ID       string          `json:"user1Id"`
	Ride1ID       string          `json:"ride1Id"`
	User2ID       string          `json:"user2Id"`
	Ride2ID       string          `json:"ride2Id"`
	Status        string          `json:"status"`
	Confirmations map[string]bool `json:"confirmations"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// ConfirmMatchResponse is the HTTP response for a confirmation.
type ConfirmMatchResponse struct {
	MatchStatus  string `json:"matchStatus"`
	AllConfirmed bool   `json:"allConfirmed"`
}

func toMatchResponse(m *domain.Match) MatchResponse {
	return MatchResponse{
		ID:            m.ID,
		User1ID:       m.User1ID,
		Ride1ID:       m.Ride1ID,
		User2ID:       m.User2ID,
		Ride2ID:       m.Ride2ID,
		Status:        string(m.Status),
		Confirmations: m.Confirmations,
		CreatedAt:     formatTime(m.CreatedAt),
		UpdatedAt:     formatTime(m.UpdatedAt),
	}
}

// CreateMatch handles POST /v1/matches
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	match, err := h.matchService.CreateMatch(c.Request.Context(), service.CreateMatchRequest{
		User1ID: req.UserID1,
		Ride1ID: req.RideID1,
		User2ID: req.UserID2,
		Ride2ID: req.RideID2,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toMatchResponse(match))
}

// GetMatch handles GET /v1/matches/:id
func (h *MatchHandler) GetMatch(c *gin.Context) {
	match, err := h.matchService.GetMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toMatchResponse(match))
}

// ConfirmMatch handles POST /v1/matches/:id/confirm
func (h *MatchHandler) ConfirmMatch(c *gin.Context) {
	var req ConfirmMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	res, err := h.matchService.ConfirmMatch(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ConfirmMatchResponse{
		MatchStatus:  string(res.MatchStatus),
		AllConfirmed: res.AllConfirmed,
	})
}
