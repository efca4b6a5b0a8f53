package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/stats"
)

// RouterConfig carries the dependencies of the HTTP layer.
type RouterConfig struct {
	Database *database.Database
	Version  string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	booksRepo := books.NewRepository(cfg.Database.DB)
	statsRepo := stats.NewRepository(cfg.Database.DB)

	booksController := NewBooksController(booksRepo)
	filtersController := NewFiltersController(booksRepo)
	dashboardController := NewDashboardController(statsRepo)
	healthController := NewHealthController(cfg.Database, cfg.Version)
	importController := NewImportController(cfg.Database.DB)

	api := router.Group("/api")
	{
		api.GET("/books", booksController.ListBooks)
		api.POST("/books", booksController.CreateBook)
		api.GET("/books/:id", booksController.GetBook)
		api.PUT("/books/:id", booksController.UpdateBook)
		api.DELETE("/books/:id", booksController.DeleteBook)

		api.GET("/filters", filtersController.GetFilters)
		api.GET("/dashboard", dashboardController.GetDashboard)
		api.POST("/import", importController.ImportCSV)
		api.GET("/health", healthController.Status)
	}

	return router
}
