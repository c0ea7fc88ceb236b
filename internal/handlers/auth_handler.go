package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// RegisterStudent creates a student account
// @Router /student/register [post]
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req services.RegisterStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Registering student", "register_number", req.RegisterNumber)

	resp, err := h.authService.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RegisterStaff creates a staff account
// @Router /staff/register [post]
func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	var req services.RegisterStaffRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Registering staff", "email", req.Email)

	resp, err := h.authService.RegisterStaff(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login exchanges a register number or email and password for a bearer token
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
