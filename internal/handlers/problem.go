package handlers

import (
	"net/http"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ListProblems(c *gin.Context) {
	contestID := c.Param("id")

	var problems []models.Problem
	if err := database.DB.
		Where("contest_id = ?", contestID).
		Order("order_index asc").
		Find(&problems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch problems"})
		return
	}

	c.JSON(http.StatusOK, problems)
}

// CreateProblem registers an AtCoder problem in a contest. The display
// name and submissions URL come from scraping the problem page; the order
// index is max(existing)+1.
func CreateProblem(c *gin.Context) {
	contestID := c.Param("id")

	var req struct {
		ProblemURL string `json:"problemUrl" binding:"required"`
		Points     int    `json:"points" binding:"required,min=1"`
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
	database.DB.Model(&models.Problem{}).
		Where("contest_id = ? AND problem_url = ?", contestID, req.ProblemURL).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This problem URL has already been added"})
		return
	}

	info, err := scrape.ScrapeProblemInfo(req.ProblemURL)
	if err != nil {
		logger.Error().Err(err).Str("url", req.ProblemURL).Msg("Failed to scrape problem info")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read problem page"})
		return
	}

	orderIndex := 0
	var last models.Problem
	err = database.DB.
		Where("contest_id = ?", contestID).
		Order("order_index desc").
		First(&last).Error
	if err == nil {
		orderIndex = last.OrderIndex + 1
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create problem"})
		return
	}

	problem := models.Problem{
		ID:            uuid.New().String(),
		ContestID:     contestID,
		Name:          info.Name,
		ProblemURL:    req.ProblemURL,
		SubmissionURL: info.SubmissionURL,
		Points:        req.Points,
		OrderIndex:    orderIndex,
	}

	if err := database.DB.Create(&problem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create problem"})
		return
	}

	c.JSON(http.StatusCreated, problem)
}

func DeleteProblem(c *gin.Context) {
	contestID := c.Param("id")
	problemID := c.Param("problemId")

	res := database.DB.Delete(&models.Problem{}, "id = ? AND contest_id = ?", problemID, contestID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete problem"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Problem deleted"})
}
