package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/handlers"
	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		api.GET("/tasks", taskHandler.ListTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks/kanban/view", taskHandler.KanbanView)
		api.GET("/tasks/late/list", taskHandler.ListLateTasks)
		api.GET("/tasks/upcoming", taskHandler.ListUpcomingTasks)
		api.GET("/tasks/stats/summary", taskHandler.TaskStats)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.POST("/tasks/:id/start", taskHandler.StartTask)
		api.POST("/tasks/:id/complete", taskHandler.ConcludeTask)
		api.POST("/tasks/:id/cancel", taskHandler.CancelTask)
		api.POST("/tasks/:id/comments", taskHandler.AddComment)
		api.POST("/tasks/:id/subtasks", taskHandler.AddSubtask)
		api.PUT("/tasks/:id/subtasks/:index/complete", taskHandler.CompleteSubtask)
		api.PUT("/tasks/:id/kanban", taskHandler.MoveKanban)
	}
}
