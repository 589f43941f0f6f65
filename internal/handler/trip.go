package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// PostTripRequest is the HTTP request body for posting a trip.
type PostTripRequest struct {
	StartLocation string  `json:"start_location"`
	EndLocation   string  `json:"end_location"`
	StartLat      float64 `json:"start_lat"`
	StartLng      float64 `json:"start_lng"`
	EndLat        float64 `json:"end_lat"`
	EndLng        float64 `json:"end_lng"`
	DepartureTime string  `json:"departure_time"` // RFC 3339
	VehicleType   string  `json:"vehicle_type"`
	SeatsTotal    int     `json:"seats_total"`
	FuelCost      float64 `json:"fuel_cost,omitempty"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	ID                string  `json:"id"`
	DriverID          string  `json:"driver_id"`
	VehicleID         string  `json:"vehicle_id"`
	StartLocation     string  `json:"start_location"`
	EndLocation       string  `json:"end_location"`
	StartLat          float64 `json:"start_lat"`
	StartLng          float64 `json:"start_lng"`
	EndLat            float64 `json:"end_lat"`
	EndLng            float64 `json:"end_lng"`
	RoutePolyline     string  `json:"route_polyline,omitempty"`
	TotalDistanceKm   float64 `json:"total_distance_km,omitempty"`
	DepartureTime     string  `json:"departure_time"`
	SeatsTotal        int     `json:"seats_total"`
	SeatsAvailable    int     `json:"seats_available"`
	EstimatedFuelCost float64 `json:"estimated_fuel_cost"`
	Status            string  `json:"status"`
}

// TripDetailResponse adds driver, vehicle and live capacity to a trip.
type TripDetailResponse struct {
	TripResponse
	RemainingSeats int          `json:"remaining_seats"`
	Driver         *DriverInfo  `json:"driver,omitempty"`
	Vehicle        *VehicleInfo `json:"vehicle,omitempty"`
}

// DriverInfo contains driver details in the response.
type DriverInfo struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// VehicleInfo contains vehicle details in the response.
type VehicleInfo struct {
	Type  string `json:"type"`
	Model string `json:"model"`
}

// PostTrip handles POST /v1/trips
func (h *TripHandler) PostTrip(c *gin.Context) {
	var req PostTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "departure_time must be RFC 3339"})
		return
	}

	trip, err := h.tripService.PostTrip(c.Request.Context(), service.PostTripRequest{
		DriverID:      middleware.UserID(c),
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		StartLat:      req.StartLat,
		StartLng:      req.StartLng,
		EndLat:        req.EndLat,
		EndLng:        req.EndLng,
		DepartureTime: departure,
		VehicleType:   domain.VehicleType(req.VehicleType),
		SeatsTotal:    req.SeatsTotal,
		FuelCost:      req.FuelCost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// Search handles GET /v1/trips
func (h *TripHandler) Search(c *gin.Context) {
	trips, err := h.tripService.SearchTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, toTripResponse(trip))
	}

	c.JSON(http.StatusOK, response)
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	detail, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := TripDetailResponse{
		TripResponse:   toTripResponse(detail.Trip),
		RemainingSeats: detail.RemainingSeats,
	}

	if detail.Driver != nil {
		response.Driver = &DriverInfo{
			ID:     detail.Driver.ID,
			Name:   detail.Driver.Name,
			Rating: detail.Driver.Rating,
		}
	}

	if detail.Vehicle != nil {
		response.Vehicle = &VehicleInfo{
			Type:  string(detail.Vehicle.Type),
			Model: detail.Vehicle.Model,
		}
	}

	respondJSON(c, http.StatusOK, response)
}

// CloseTrip handles POST /v1/trips/:id/close
func (h *TripHandler) CloseTrip(c *gin.Context) {
	trip, err := h.tripService.CloseTrip(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:                trip.ID,
		DriverID:          trip.DriverID,
		VehicleID:         trip.VehicleID,
		StartLocation:     trip.StartLocation,
		EndLocation:       trip.EndLocation,
		StartLat:          trip.StartLat,
		StartLng:          trip.StartLng,
		EndLat:            trip.EndLat,
		EndLng:            trip.EndLng,
		RoutePolyline:     trip.RoutePolyline,
		TotalDistanceKm:   trip.TotalDistanceKm,
		DepartureTime:     trip.DepartureTime.Format(time.RFC3339),
		SeatsTotal:        trip.SeatsTotal,
		SeatsAvailable:    trip.SeatsAvailable,
		EstimatedFuelCost: trip.EstimatedFuelCost,
		Status:            string(trip.Status),
	}
}
