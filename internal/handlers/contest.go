package handlers

import (
	"net/http"
	"time"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/internal/scraper"
	"github.com/WACPAC/wacpac-virtual-contest/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// scrape is the shared AtCoder client, set once at startup
var scrape *scraper.Client

// InitScraper wires the AtCoder client used by the handlers
func InitScraper(c *scraper.Client) {
	scrape = c
}

func ListContests(c *gin.Context) {
	var contests []models.Contest
	if err := database.DB.Order("created_at desc").Find(&contests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contests"})
		return
	}
	c.JSON(http.StatusOK, contests)
}

func CreateContest(c *gin.Context) {
	var req struct {
		Name            string `json:"name" binding:"required"`
		DurationMinutes int    `json:"durationMinutes" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contest := models.Contest{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Status:          models.ContestStatusBefore,
		DurationMinutes: req.DurationMinutes,
	}

	if err := database.DB.Create(&contest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contest"})
		return
	}

	c.JSON(http.StatusCreated, contest)
}

func GetContest(c *gin.Context) {
	contestID := c.Param("id")

	var contest models.Contest
	err := database.DB.
		Preload("Problems", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Users").
		First(&contest, "id = ?", contestID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
		return
	}

	c.JSON(http.StatusOK, contest)
}

func DeleteContest(c *gin.Context) {
	contestID := c.Param("id")

	res := database.DB.Delete(&models.Contest{}, "id = ?", contestID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contest"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contest deleted"})
}

// StartContest transitions a contest to running. StartTime is set here,
// exactly once; the status invariant (startTime iff running/after) hangs
// on this being the only place that sets it.
func StartContest(c *gin.Context) {
	contestID := c.Param("id")

	var contest models.Contest
	if err := database.DB.First(&contest, "id = ?", contestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
		return
	}

	if contest.Status != models.ContestStatusBefore {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contest has already started or finished"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     models.ContestStatusRunning,
		"start_time": now,
	}
	if err := database.DB.Model(&contest).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start contest"})
		return
	}

	contest.Status = models.ContestStatusRunning
	contest.StartTime = &now
	c.JSON(http.StatusOK, contest)
}

// UpdateContestStatuses runs the status sweep on demand. The scheduler
// does the same thing every minute; this endpoint keeps the sweep
// manually triggerable.
func UpdateContestStatuses(c *gin.Context) {
	ended := services.SweepContestStatuses()
	c.JSON(http.StatusOK, gin.H{
		"message":      "Contest statuses updated",
		"updatedCount": ended,
	})
}
