package handlers

import (
	"rentvehicle/models"
	"rentvehicle/services/booking"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
)

// BookingSvc is wired in main.
var BookingSvc booking.BookingService

func requesterRole(c *gin.Context) models.Role {
	return models.Role(c.GetString("role"))
}

// CheckAvailability returns rentable units and pickup locations for a model
// and date range. The storefront checkout polls this as the user edits.
func CheckAvailability(c *gin.Context) {
	availability, err := BookingSvc.CheckAvailability(
		c.Query("modelId"),
		c.Query("location"),
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", availability)
}

// CreateBooking places a rental order from the checkout submission.
func CreateBooking(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	b, err := BookingSvc.Create(c.GetString("userID"), input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Booking created", b)
}

// GetBooking returns one booking. Users can only read their own.
func GetBooking(c *gin.Context) {
	b, err := BookingSvc.Get(c.Param("id"), c.GetString("userID"), requesterRole(c))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", b)
}

// ListMyBookings returns the requester's bookings.
func ListMyBookings(c *gin.Context) {
	bookings, err := BookingSvc.ListMine(c.GetString("userID"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", bookings)
}

// ListAllBookings returns bookings for the back office (admin).
func ListAllBookings(c *gin.Context) {
	bookings, err := BookingSvc.ListAll(models.BookingStatus(c.Query("status")))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", bookings)
}

// ApproveBooking confirms a pending booking (admin).
func ApproveBooking(c *gin.Context) {
	b, err := BookingSvc.Approve(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Booking approved", b)
}

// CancelBooking withdraws a booking.
func CancelBooking(c *gin.Context) {
	b, err := BookingSvc.Cancel(c.Param("id"), c.GetString("userID"), requesterRole(c))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Booking canceled", b)
}

// CompleteBooking closes out a returned rental (admin).
func CompleteBooking(c *gin.Context) {
	b, err := BookingSvc.Complete(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Booking completed", b)
}
