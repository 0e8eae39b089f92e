package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/internal/services"
	apperrors "github.com/WACPAC/wacpac-virtual-contest/pkg/errors"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/logger"
	"github.com/gin-gonic/gin"
)

func GetStandings(c *gin.Context) {
	contestID := c.Param("id")

	standings, err := services.CalculateStandings(contestID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate standings"})
		return
	}

	c.JSON(http.StatusOK, standings)
}

// UpdateStandings triggers a scrape-and-store refresh. Per-problem
// scraping failures are absorbed inside the service; only precondition
// violations surface here.
func UpdateStandings(c *gin.Context) {
	contestID := c.Param("id")

	if err := services.RefreshStandings(contestID); err != nil {
		switch e := err.(type) {
		case *apperrors.AppError:
			c.JSON(e.Code, gin.H{"error": e.Message})
		case *apperrors.ContestStateError:
			c.JSON(http.StatusBadRequest, gin.H{"error": e.Message})
		default:
			logger.Error().Err(err).Str("contest_id", contestID).Msg("Standings update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update standings"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Standings updated"})
}

// ExportStandings renders the current standings as a downloadable CSV
// named after today's date.
func ExportStandings(c *gin.Context) {
	contestID := c.Param("id")

	standings, err := services.CalculateStandings(contestID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export standings"})
		return
	}

	var contest models.Contest
	if err := database.DB.First(&contest, "id = ?", contestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
		return
	}

	var problems []models.Problem
	if err := database.DB.
		Where("contest_id = ?", contestID).
		Order("order_index asc").
		Find(&problems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export standings"})
		return
	}

	csv := services.GenerateStandingsCSV(standings, problems, &contest)

	filename := fmt.Sprintf("standings-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
