package routes

import (
	"github.com/WACPAC/wacpac-virtual-contest/internal/handlers"
	"github.com/WACPAC/wacpac-virtual-contest/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterContestRoutes(r gin.IRouter) {
	contests := r.Group("/contests")
	{
		contests.GET("", handlers.ListContests)
		contests.POST("", handlers.CreateContest)
		contests.POST("/update-status", handlers.UpdateContestStatuses)

		contests.GET("/:id", handlers.GetContest)
		contests.DELETE("/:id", handlers.DeleteContest)
		contests.POST("/:id/start", handlers.StartContest)

		contests.GET("/:id/problems", handlers.ListProblems)
		contests.POST("/:id/problems", handlers.CreateProblem)
		contests.DELETE("/:id/problems/:problemId", handlers.DeleteProblem)

		contests.GET("/:id/users", handlers.ListUsers)
		contests.POST("/:id/users", handlers.CreateUser)
		contests.DELETE("/:id/users/:userId", handlers.DeleteUser)

		contests.GET("/:id/standings", handlers.GetStandings)
		contests.POST("/:id/standings/update", middleware.RefreshRateLimit(), handlers.UpdateStandings)
		contests.GET("/:id/standings/export", handlers.ExportStandings)
	}
}
