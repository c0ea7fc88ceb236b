package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	BaseHandler
	deliveryService services.DeliveryService
	attemptService  services.AttemptService
}

func NewStudentHandler(serviceManager services.ServiceManager, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:     NewBaseHandler(logger),
		deliveryService: serviceManager.Delivery(),
		attemptService:  serviceManager.Attempt(),
	}
}

// AvailableTests lists the tests the caller may sit now
// @Router /student/available-tests [get]
func (h *StudentHandler) AvailableTests(c *gin.Context) {
	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	tests, err := h.deliveryService.ListAvailable(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tests": tests})
}

// TestQuestions enters a test and returns the caller's questions
// @Router /test/{id}/questions [get]
func (h *StudentHandler) TestQuestions(c *gin.Context) {
	testID := ParseStringIDParam(c, "id")
	if testID == "" {
		return
	}

	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Student entering test", "test_id", testID)

	delivered, err := h.deliveryService.Start(c.Request.Context(), testID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, delivered)
}

// UpdateProgress records which question the caller is on
// @Router /test/{id}/progress [post]
func (h *StudentHandler) UpdateProgress(c *gin.Context) {
	testID := ParseStringIDParam(c, "id")
	if testID == "" {
		return
	}

	var req services.ProgressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.CurrentQuestion == nil {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", nil, "current_question is required")
		return
	}

	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.deliveryService.UpdateProgress(c.Request.Context(), testID, studentID, *req.CurrentQuestion); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress updated"})
}

// SubmitTest grades and stores the caller's answers
// @Router /test/submit [post]
func (h *StudentHandler) SubmitTest(c *gin.Context) {
	var req services.SubmitTestRequest
	if !h.bindJSON(c, &req) {
		return
	}

	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Submitting test", "test_id", req.TestID, "answers", len(req.Answers))

	resp, err := h.attemptService.Submit(c.Request.Context(), &req, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AttemptResult returns the detailed review of one of the caller's attempts
// @Router /student/results/{attempt_id} [get]
func (h *StudentHandler) AttemptResult(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}

	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	result, err := h.attemptService.GetResult(c.Request.Context(), attemptID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AttemptInsights returns the per-unit breakdown of one of the caller's attempts
// @Router /student/test-insights/{attempt_id} [get]
func (h *StudentHandler) AttemptInsights(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}

	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	insights, err := h.attemptService.GetInsights(c.Request.Context(), attemptID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}
