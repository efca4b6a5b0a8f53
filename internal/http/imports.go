package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/importer"
)

type ImportController struct {
	db *gorm.DB
}

func NewImportController(db *gorm.DB) *ImportController {
	return &ImportController{db: db}
}

type ImportRequest struct {
	CSVPath string `json:"csv_path"`
}

// ImportCSV replaces the catalogue with the contents of a legacy spreadsheet
// export on the server's filesystem.
// POST /api/import
func (controller *ImportController) ImportCSV(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.CSVPath) == "" {
		respondBadRequest(c, "csv_path is required")
		return
	}

	imported, err := importer.ImportCSV(controller.db, req.CSVPath)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "imported": imported})
}
