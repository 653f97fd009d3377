package controllers

import (
	"eduplatform/dto"
	"eduplatform/response"
	"eduplatform/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth services.AuthServiceInterface
}

func NewAuthController(auth services.AuthServiceInterface) *AuthController {
	return &AuthController{auth: auth}
}

// Register godoc
// @Summary  Register a student or teacher account
// @Tags     auth
// @Accept   json
// @Param    body body dto.RegisterInput true "account"
// @Success  201 {object} response.Response{data=dto.AuthResponse}
// @Failure  409 {object} response.Response
// @Router   /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var input dto.RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	out, err := ctrl.auth.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Registered successfully", out)
}

// Login godoc
// @Summary  Exchange email and password for an access token
// @Tags     auth
// @Accept   json
// @Param    body body dto.LoginInput true "credentials"
// @Success  200 {object} response.Response{data=dto.AuthResponse}
// @Failure  401 {object} response.Response
// @Router   /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	out, err := ctrl.auth.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (ctrl *AuthController) GoogleLogin(c *gin.Context) {
	var input dto.GoogleLoginInput
	if !bindJSON(c, &input) {
		return
	}
	out, err := ctrl.auth.GoogleLogin(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (ctrl *AuthController) Me(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := ctrl.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserSummary(*user))
}
