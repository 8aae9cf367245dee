package handlers

import (
	"rentvehicle/models"
	"rentvehicle/services/review"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
)

// ReviewSvc is wired in main.
var ReviewSvc review.ReviewService

// CreateReview leaves a rating on one of the caller's bookings.
func CreateReview(c *gin.Context) {
	var input models.CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	r, err := ReviewSvc.Create(c.GetString("userID"), input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Review created", r)
}

// UpdateReview edits the rating or comment of an existing review.
func UpdateReview(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	r, err := ReviewSvc.Update(c.GetString("userID"), requesterRole(c), c.Param("id"), input.Rating, input.Comment)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Review updated", r)
}

// DeleteReview removes a review. Admins can moderate any review away.
func DeleteReview(c *gin.Context) {
	if err := ReviewSvc.Delete(c.GetString("userID"), requesterRole(c), c.Param("id")); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Review deleted", nil)
}

// ListModelReviews returns the reviews of a vehicle model with their
// average rating. Public, for the catalog detail page.
func ListModelReviews(c *gin.Context) {
	result, err := ReviewSvc.ListByModel(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", result)
}

// ListMyReviews returns the reviews the caller has written.
func ListMyReviews(c *gin.Context) {
	reviews, err := ReviewSvc.ListMine(c.GetString("userID"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", reviews)
}

// ListAllReviews returns every review for the back office moderation table.
func ListAllReviews(c *gin.Context) {
	reviews, err := ReviewSvc.ListAll()
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", reviews)
}
