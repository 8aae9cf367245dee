package handlers

import (
	"rentvehicle/services/payment"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
)

// PaymentSvc is wired in main.
var PaymentSvc payment.PaymentService

// CreatePaymentIntent opens a Stripe intent for an approved card booking.
func CreatePaymentIntent(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	p, err := PaymentSvc.CreateIntent(c.GetString("userID"), input.BookingID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Payment intent created", p)
}

// GetPayment returns the deposit record for a booking.
func GetPayment(c *gin.Context) {
	p, err := PaymentSvc.GetByBooking(c.GetString("userID"), c.Param("bookingId"), requesterRole(c))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", p)
}

// ConfirmPayment records a deposit the storefront finished with Stripe.
func ConfirmPayment(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	p, err := PaymentSvc.MarkSucceeded(c.GetString("userID"), input.BookingID, requesterRole(c))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Payment confirmed", p)
}
