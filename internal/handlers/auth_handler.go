package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	usecase "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/directory"
)

type TokenIssuer interface {
	Issue(userID uint, role identity.Role) (string, error)
}

type AuthHandler struct {
	users  *usecase.Users
	tokens TokenIssuer
}

func NewAuthHandler(users *usecase.Users, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest accepts a username or an email in Login.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.RegisterPatient(c.Request.Context(), usecase.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.withToken(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.withToken(c, http.StatusOK, user)
}

func (h *AuthHandler) Me(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	user, err := h.users.Get(c.Request.Context(), caller, caller.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, user)
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), caller, caller.UserID, usecase.ProfileInput{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, user)
}

// --------- JWT ---------

func (h *AuthHandler) withToken(c *gin.Context, status int, user *models.User) {
	token, err := h.tokens.Issue(user.ID, identity.Role(user.Role))
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(status, gin.H{
		"user":  user,
		"token": token,
	})
}
