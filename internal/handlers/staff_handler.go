package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type StaffHandler struct {
	BaseHandler
	subjectService  services.SubjectService
	questionService services.QuestionService
	testService     services.TestService
	deliveryService services.DeliveryService
	resultService   services.ResultService
}

func NewStaffHandler(serviceManager services.ServiceManager, logger utils.Logger) *StaffHandler {
	return &StaffHandler{
		BaseHandler:     NewBaseHandler(logger),
		subjectService:  serviceManager.Subject(),
		questionService: serviceManager.Question(),
		testService:     serviceManager.Test(),
		deliveryService: serviceManager.Delivery(),
		resultService:   serviceManager.Result(),
	}
}

// CreateSubject creates a subject in the caller's department
// @Router /staff/subjects [post]
func (h *StaffHandler) CreateSubject(c *gin.Context) {
	var req services.CreateSubjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	staffID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	subject, err := h.subjectService.Create(c.Request.Context(), &req, staffID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Subject created successfully",
		"subject_id": subject.ID,
		"subject":    subject,
	})
}

// CreateQuestion adds a question to a subject
// @Router /staff/questions [post]
func (h *StaffHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	staffID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req, staffID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Question created successfully",
		"question_id": question.ID,
		"question":    question,
	})
}

// ListQuestions returns the caller's questions, optionally for one ?subject_id=
// @Router /staff/questions [get]
func (h *StaffHandler) ListQuestions(c *gin.Context) {
	staffID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	questions, err := h.questionService.ListOwn(c.Request.Context(), staffID, c.Query("subject_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// CreateTest schedules a test
// @Router /staff/tests [post]
func (h *StaffHandler) CreateTest(c *gin.Context) {
	var req services.CreateTestRequest
	if !h.bindJSON(c, &req) {
		return
	}

	staffID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Creating test", "subject_id", req.SubjectID)

	test, err := h.testService.Create(c.Request.Context(), &req, staffID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Test created successfully",
		"test_id": test.ID,
		"test":    test,
	})
}

// ListTests returns the caller's tests with subject details
// @Router /staff/tests [get]
func (h *StaffHandler) ListTests(c *gin.Context) {
	staffID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	tests, err := h.testService.ListOwn(c.Request.Context(), staffID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tests": tests})
}

// TestResults returns the roster of a test
// @Router /staff/test-results/{test_id} [get]
func (h *StaffHandler) TestResults(c *gin.Context) {
	testID := ParseStringIDParam(c, "test_id")
	if testID == "" {
		return
	}

	results, err := h.resultService.TestResults(c.Request.Context(), testID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// ExportTestResults downloads the roster as an xlsx workbook
// @Router /staff/test-results/{test_id}/export [get]
func (h *StaffHandler) ExportTestResults(c *gin.Context) {
	testID := ParseStringIDParam(c, "test_id")
	if testID == "" {
		return
	}

	h.LogRequest(c, "Exporting test results", "test_id", testID)

	data, err := h.resultService.ExportResults(c.Request.Context(), testID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="test-results-%s.xlsx"`, testID))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// TestInsights returns the aggregate report of a test
// @Router /staff/test-insights/{test_id} [get]
func (h *StaffHandler) TestInsights(c *gin.Context) {
	testID := ParseStringIDParam(c, "test_id")
	if testID == "" {
		return
	}

	report, err := h.resultService.TestInsights(c.Request.Context(), testID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// LiveStatus lists the students currently sitting a test
// @Router /staff/live-status/{test_id} [get]
func (h *StaffHandler) LiveStatus(c *gin.Context) {
	testID := ParseStringIDParam(c, "test_id")
	if testID == "" {
		return
	}

	status, err := h.deliveryService.LiveStatus(c.Request.Context(), testID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
