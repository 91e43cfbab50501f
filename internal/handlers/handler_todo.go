package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

func registerTodoRoutes(rg *gin.RouterGroup, todoSvc portssvc.TodoSvc) {
	rg.GET("/todos", listTodos(todoSvc))
	rg.GET("/dashboard", getDashboard(todoSvc))
}

// listTodos godoc
// @Summary The caller's to-do list
// @Description Derived on every call from the current invoices and payments.
// @Tags todos
// @Produce json
// @Success 200 {object} dto.TodoListResponse
// @Security BearerAuth
// @Router /todos [get]
func listTodos(todoSvc portssvc.TodoSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := todoSvc.ListTodos(c.Request.Context())
		if err != nil {
			respondWithError(c, err, "list to-dos")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// getDashboard godoc
// @Summary Headline invoice and payment figures
// @Description Customer managers only see figures for their own invoices.
// @Tags dashboard
// @Produce json
// @Success 200 {object} workflow.DashboardStats
// @Security BearerAuth
// @Router /dashboard [get]
func getDashboard(todoSvc portssvc.TodoSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := todoSvc.GetDashboard(c.Request.Context())
		if err != nil {
			respondWithError(c, err, "load dashboard")
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
