package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/route"
	"carpool/internal/service"
)

// RouteHandler handles HTTP requests for route estimation.
type RouteHandler struct {
	tripService *service.TripService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(tripService *service.TripService) *RouteHandler {
	return &RouteHandler{tripService: tripService}
}

// EstimateRouteRequest is the HTTP request body for route estimation.
type EstimateRouteRequest struct {
	StartLat float64 `json:"start_lat"`
	StartLng float64 `json:"start_lng"`
	EndLat   float64 `json:"end_lat"`
	EndLng   float64 `json:"end_lng"`
}

// EstimateRouteResponse is the HTTP response for route estimation.
type EstimateRouteResponse struct {
	DistanceKm        float64 `json:"distance_km"`
	DurationMinutes   float64 `json:"duration_minutes"`
	Polyline          string  `json:"polyline,omitempty"`
	SuggestedFuelCost float64 `json:"suggested_fuel_cost"`
}

// Estimate handles POST /v1/routes/estimate
func (h *RouteHandler) Estimate(c *gin.Context) {
	var req EstimateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	estimate, err := h.tripService.EstimateRoute(c.Request.Context(),
		route.Coordinate{Lat: req.StartLat, Lng: req.StartLng},
		route.Coordinate{Lat: req.EndLat, Lng: req.EndLng},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, EstimateRouteResponse{
		DistanceKm:        estimate.DistanceKm,
		DurationMinutes:   estimate.DurationMinutes,
		Polyline:          estimate.Polyline,
		SuggestedFuelCost: estimate.SuggestedFuelCost,
	})
}
