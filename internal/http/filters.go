package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database/books"
)

type FiltersController struct {
	repo *books.Repository
}

func NewFiltersController(repo *books.Repository) *FiltersController {
	return &FiltersController{repo: repo}
}

// GetFilters returns the distinct statuses, genres and languages currently
// present in the catalogue, for populating selection widgets.
// GET /api/filters
func (controller *FiltersController) GetFilters(c *gin.Context) {
	filters, err := controller.repo.DistinctFilters()
	if err != nil {
		respondInternalError(c, err, "get filters")
		return
	}
	c.JSON(http.StatusOK, filters)
}
