package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azaliaz/luxefurnish/user-service/internal/domain/models"
	"github.com/azaliaz/luxefurnish/user-service/internal/logger"
	storerrros "github.com/azaliaz/luxefurnish/user-service/internal/storage/errors"
)

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authResponse struct {
	Message string          `json:"message,omitempty"`
	Token   string          `json:"token"`
	Role    string          `json:"role"`
	User    models.Identity `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Server) SignUp(ctx *gin.Context) {
	log := logger.Get()
	var req signupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		authAttempts.WithLabelValues("signup", "invalid").Inc()
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: "Username, email and password are required"})
		return
	}
	req.Email = normalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := s.valid.Struct(req); err != nil {
		authAttempts.WithLabelValues("signup", "invalid").Inc()
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
		return
	}

	user, err := s.storage.SaveUser(models.User{
		Username: req.Username,
		Email:    req.Email,
		Pass:     req.Password,
	})
	if err != nil {
		if errors.Is(err, storerrros.ErrUserExists) {
			authAttempts.WithLabelValues("signup", "duplicate").Inc()
			ctx.JSON(http.StatusConflict, errorResponse{Error: "User already exists"})
			return
		}
		authAttempts.WithLabelValues("signup", "error").Inc()
		log.Error().Err(err).Msg("save user failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	token, err := s.tokens.create(user.UID, user.Role)
	if err != nil {
		authAttempts.WithLabelValues("signup", "error").Inc()
		log.Error().Err(err).Msg("create jwt failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}
	authAttempts.WithLabelValues("signup", "success").Inc()
	ctx.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   token,
		Role:    user.Role,
		User:    user.Identity(),
	})
}

func (s *Server) SignIn(ctx *gin.Context) {
	log := logger.Get()
	var req signinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		authAttempts.WithLabelValues("signin", "invalid").Inc()
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: "Email and password are required"})
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := s.valid.Struct(req); err != nil {
		authAttempts.WithLabelValues("signin", "invalid").Inc()
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: "Email and password are required"})
		return
	}
	log.Debug().Str("email", req.Email).Msg("signin attempt")

	user, err := s.storage.ValidUser(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, storerrros.ErrUserNoExist) || errors.Is(err, storerrros.ErrInvalidPassword) {
			authAttempts.WithLabelValues("signin", "rejected").Inc()
			ctx.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid email or password"})
			return
		}
		authAttempts.WithLabelValues("signin", "error").Inc()
		log.Error().Err(err).Msg("validate user failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	token, err := s.tokens.create(user.UID, user.Role)
	if err != nil {
		authAttempts.WithLabelValues("signin", "error").Inc()
		log.Error().Err(err).Msg("create jwt failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}
	authAttempts.WithLabelValues("signin", "success").Inc()
	ctx.JSON(http.StatusOK, authResponse{
		Token: token,
		Role:  user.Role,
		User:  user.Identity(),
	})
}

// Me returns the identity behind the bearer token.
func (s *Server) Me(ctx *gin.Context) {
	log := logger.Get()
	uid := ctx.GetString("uid")
	user, err := s.storage.GetUser(uid)
	if err != nil {
		if errors.Is(err, storerrros.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		log.Error().Err(err).Msg("failed get user from db")
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user.Identity(), "role": user.Role})
}
