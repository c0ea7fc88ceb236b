package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public lookups.
type CatalogHandler struct {
	BaseHandler
	subjectService services.SubjectService
}

func NewCatalogHandler(subjectService services.SubjectService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		subjectService: subjectService,
	}
}

func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"departments": models.Departments})
}

func (h *CatalogHandler) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"units": models.Units})
}

// ListSubjects returns subjects, optionally filtered by ?department=
// @Router /subjects [get]
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.subjectService.List(c.Request.Context(), c.Query("department"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}
