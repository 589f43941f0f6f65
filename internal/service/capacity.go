package service

import "carpool/internal/domain"

// RemainingSeats computes how many seats are still bookable on a trip given
// the bookings known for it. Pending and confirmed bookings count identically:
// a pending request provisionally holds its seats until the driver decides.
// The result never goes below zero.
func RemainingSeats(trip *domain.Trip, bookings []*domain.Booking) int {
	sum := 0
	for _, b := range bookings {
		if b.Status.Active() {
			sum += b.SeatsRequested
		}
	}
	return remainingFromSum(trip, sum)
}

func remainingFromSum(trip *domain.Trip, activeSeatSum int) int {
	remaining := trip.SeatsTotal - activeSeatSum
	if remaining < 0 {
		return 0
	}
	return remaining
}
