package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/geo"
	"carpool/internal/scoring"
	"carpool/internal/service"
)

// RideHandler handles HTTP requests for rides and match ranking.
type RideHandler struct {
	rideService     *service.RideService
	matchingService *service.MatchingService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, matchingService *service.MatchingService) *RideHandler {
	return &RideHandler{
		rideService:     rideService,
		matchingService: matchingService,
	}
}

// CreateRideRequest is the HTTP request body for creating a ride.
type CreateRideRequest struct {
	UserID           string              `json:"userId"`
	PickupLocation   *geo.Point          `json:"pickupLocation"`
	DropoffLocation  *geo.Point          `json:"dropoffLocation"`
	DepartureTime    Instant             `json:"departureTime"`
	SeatsAvailable   int                 `json:"seatsAvailable"`
	MaxFare          float64             `json:"maxFare"`
	GenderPreference string              `json:"genderPreference,omitempty"`
	VehicleInfo      *domain.VehicleInfo `json:"vehicleInfo,omitempty"`
}

// RideResponse is the HTTP representation of a ride request.
type RideResponse struct {
	ID               string              `json:"id"`
	UserID           string              `json:"userId"`
	PickupLocation   geo.Point           `json:"pickupLocation"`
	DropoffLocation  geo.Point           `json:"dropoffLocation"`
	DepartureTime    string              `json:"departureTime"`
	SeatsAvailable   int                 `json:"seatsAvailable"`
	MaxFare          float64             `json:"maxFare"`
	GenderPreference string              `json:"genderPreference"`
	VehicleInfo      *domain.VehicleInfo `json:"vehicleInfo"`
	Status           string              `json:"status"`
	MatchedWith      []string            `json:"matchedWith"`
	CreatedAt        string              `json:"createdAt"`
	UpdatedAt        string              `json:"updatedAt"`
}

// CandidateResponse is one ranked candidate ride.
type CandidateResponse struct {
	RideResponse
	MatchScore domain.MatchScore `json:"matchScore"`
}

// RankResponse is the HTTP response for a ranking.
type RankResponse struct {
	Reference    *RideResponse       `json:"userRide,omitempty"`
	TotalMatches int                 `json:"totalMatches"`
	Matches      []CandidateResponse `json:"matches"`
	Message      string              `json:"message,omitempty"`
}

// UserRidesResponse is the HTTP response for a user's rides.
type UserRidesResponse struct {
	UserID     string         `json:"userId"`
	TotalRides int            `json:"totalRides"`
	Rides      []RideResponse `json:"rides"`
}

func toRideResponse(r *domain.RideRequest) RideResponse {
	matchedWith := r.MatchedWith
	if matchedWith == nil {
		matchedWith = []string{}
	}
	return RideResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		PickupLocation:   r.Pickup,
		DropoffLocation:  r.Dropoff,
		DepartureTime:    formatTime(r.DepartureTime),
		SeatsAvailable:   r.SeatsAvailable,
		MaxFare:          r.MaxFare,
		GenderPreference: string(r.Preference),
		VehicleInfo:      r.VehicleInfo,
		Status:           string(r.Status),
		MatchedWith:      matchedWith,
		CreatedAt:        formatTime(r.CreatedAt),
		UpdatedAt:        formatTime(r.UpdatedAt),
	}
}

func toRankResponse(res *service.RankResult) RankResponse {
	resp := RankResponse{
		TotalMatches: len(res.Matches),
		Matches:      make([]CandidateResponse, 0, len(res.Matches)),
		Message:      res.Message,
	}
	if res.Reference != nil {
		ref := toRideResponse(res.Reference)
		resp.Reference = &ref
	}
	for _, m := range res.Matches {
		resp.Matches = append(resp.Matches, toCandidate(m))
	}
	return resp
}

func toCandidate(m scoring.RankedMatch) CandidateResponse {
	return CandidateResponse{RideResponse: toRideResponse(m.Ride), MatchScore: m.Score}
}

// parseMinScore reads the optional min_score query parameter.
func parseMinScore(c *gin.Context) (*int, bool) {
	raw, ok := c.GetQuery("min_score")
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
		UserID:         req.UserID,
		Pickup:         req.PickupLocation,
		Dropoff:        req.DropoffLocation,
		DepartureTime:  req.DepartureTime.Time,
		SeatsAvailable: req.SeatsAvailable,
		MaxFare:        req.MaxFare,
		Preference:     domain.Preference(req.GenderPreference),
		VehicleInfo:    req.VehicleInfo,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// ListUserRides handles GET /v1/users/:id/rides
func (h *RideHandler) ListUserRides(c *gin.Context) {
	userID := c.Param("id")
	rides, err := h.rideService.ListUserRides(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := UserRidesResponse{UserID: userID, TotalRides: len(rides), Rides: make([]RideResponse, 0, len(rides))}
	for _, r := range rides {
		resp.Rides = append(resp.Rides, toRideResponse(r))
	}
	respondJSON(c, http.StatusOK, resp)
}

// RankMatches handles GET /v1/rides/:id/matches
func (h *RideHandler) RankMatches(c *gin.Context) {
	minScore, ok := parseMinScore(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrInvalidMinScore.Error()})
		return
	}

	res, err := h.matchingService.RankMatches(c.Request.Context(), c.Param("id"), minScore)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRankResponse(res))
}

// RankMatchesForUser handles GET /v1/users/:id/matches
func (h *RideHandler) RankMatchesForUser(c *gin.Context) {
	minScore, ok := parseMinScore(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrInvalidMinScore.Error()})
		return
	}

	res, err := h.matchingService.RankMatchesForUser(c.Request.Context(), c.Param("id"), minScore)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRankResponse(res))
}
