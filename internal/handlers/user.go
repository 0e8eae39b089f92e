package handlers

import (
	"net/http"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func ListUsers(c *gin.Context) {
	contestID := c.Param("id")

	var users []models.User
	if err := database.DB.
		Where("contest_id = ?", contestID).
		Order("at_coder_id asc").
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser adds a participant by AtCoder handle. The rating color is
// scraped from their profile once, here; a failed profile fetch falls
// back to the default color and still registers the user.
func CreateUser(c *gin.Context) {
	contestID := c.Param("id")

	var req struct {
		AtCoderID string `json:"atcoderId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var contest models.Contest
	if err := database.DB.First(&contest, "id = ?", contestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
		return
	}

	var count int64
	database.DB.Model(&models.User{}).
		Where("contest_id = ? AND at_coder_id = ?", contestID, req.AtCoderID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This AtCoder ID has already been added"})
		return
	}

	user := models.User{
		ID:          uuid.New().String(),
		ContestID:   contestID,
		AtCoderID:   req.AtCoderID,
		RatingColor: scrape.ScrapeUserColor(req.AtCoderID),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func DeleteUser(c *gin.Context) {
	contestID := c.Param("id")
	userID := c.Param("userId")

	res := database.DB.Delete(&models.User{}, "id = ? AND contest_id = ?", userID, contestID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
