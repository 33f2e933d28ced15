package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/switchyard-io/switchyard/internal/models"
)

// demo credential set, stands in until a real identity provider is wired up
var demoCredentials = map[string]string{
	"admin": "admin123",
	"user":  "user123",
	"demo":  "demo123",
}

const tokenLifetime = 24 * time.Hour

// Login authenticates a demo user
// @Summary      Login
// @Description  Authenticates against the demo credential set and returns a bearer token
// @Id           Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body   models.LoginRequest  true "Credentials"
// @Success      200  {object}  models.LoginResponse
// @Failure      400  {object}  models.ValidationError
// @Failure      401  {object}  models.UnauthorizedError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/auth/login [post]
func (api *API) Login(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Login")
	defer span.End()

	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if request.Username == "" {
		c.JSON(http.StatusBadRequest, models.NewFieldNotPresentError("username"))
		return
	}
	if request.Password == "" {
		c.JSON(http.StatusBadRequest, models.NewFieldNotPresentError("password"))
		return
	}

	password, ok := demoCredentials[request.Username]
	if !ok || password != request.Password {
		c.JSON(http.StatusUnauthorized, models.NewUnauthorizedError("username or password is incorrect"))
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   request.Username,
		ID:        uuid.NewString(),
		Issuer:    "switchyard-apiserver",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(api.jwtSecret)
	if err != nil {
		api.SendInternalServerError(c, err)
		return
	}

	api.Logger(ctx).Infof("user %s logged in", request.Username)
	c.JSON(http.StatusOK, models.LoginResponse{
		Token: signed,
		User:  models.AuthUser{Username: request.Username},
	})
}

// Register accepts a demo registration
// @Summary      Register
// @Description  Accepts a registration for demo purposes, nothing is stored
// @Id           Register
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        registration  body   models.RegisterRequest  true "Registration"
// @Success      201  {object}  models.AuthUser
// @Failure      400  {object}  models.ValidationError
// @Router       /api/auth/register [post]
func (api *API) Register(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "Register")
	defer span.End()

	var request models.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if len(request.Username) < 3 {
		c.JSON(http.StatusBadRequest, models.NewFieldValidationError("username", "must be at least 3 characters"))
		return
	}
	if len(request.Password) < 6 {
		c.JSON(http.StatusBadRequest, models.NewFieldValidationError("password", "must be at least 6 characters"))
		return
	}

	c.JSON(http.StatusCreated, models.AuthUser{Username: request.Username})
}

// Logout ends a demo session
// @Summary      Logout
// @Description  Ends the session; tokens are stateless so this is a client-side affair
// @Id           Logout
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.BaseError
// @Router       /api/auth/logout [post]
func (api *API) Logout(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "Logout")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
