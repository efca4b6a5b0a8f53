package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database/stats"
)

type DashboardController struct {
	repo *stats.Repository
}

func NewDashboardController(repo *stats.Repository) *DashboardController {
	return &DashboardController{repo: repo}
}

// GetDashboard computes the analytics summary over the current catalogue.
// GET /api/dashboard
func (controller *DashboardController) GetDashboard(c *gin.Context) {
	dashboard, err := controller.repo.Dashboard()
	if err != nil {
		respondInternalError(c, err, "get dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
