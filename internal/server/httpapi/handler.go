package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/server/auth"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

type registerRequest struct {
	Username        string `json:"username" binding:"required,max=64"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

type registerResponse struct {
	UserID int64 `json:"user_id"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken     string    `json:"access_token"`
	ExpiresAt       time.Time `json:"expires_at"`
	UserID          int64     `json:"user_id"`
	ProfileComplete bool      `json:"profile_complete"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type forgotPasswordResponse struct {
	ResetToken string `json:"reset_token,omitempty"`
}

type validateTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

type validateTokenResponse struct {
	Valid bool `json:"valid"`
}

type resetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

type profileRequest struct {
	DateOfBirth   string `json:"dob" binding:"required,datetime=2006-01-02"`
	TimeOfBirth   string `json:"tob" binding:"required,clocktime"`
	PlaceOfBirth  string `json:"place" binding:"required,max=128"`
	FavoriteColor string `json:"fav_color" binding:"max=64"`
	Rashi         string `json:"rashi" binding:"max=64"`
	Language      string `json:"language" binding:"max=64"`
	Gender        string `json:"gender" binding:"max=64"`
}

func (r profileRequest) fields() models.ProfileFields {
	return models.ProfileFields{
		DateOfBirth:   r.DateOfBirth,
		TimeOfBirth:   r.TimeOfBirth,
		PlaceOfBirth:  r.PlaceOfBirth,
		FavoriteColor: r.FavoriteColor,
		Rashi:         r.Rashi,
		Language:      r.Language,
		Gender:        r.Gender,
	}
}

type profileStatusResponse struct {
	Complete bool `json:"complete"`
}

const resetRequestedMessage = "if the account exists, a reset code has been sent"

func (s *HTTPServer) health(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"status": "ok"}, "ok")
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request", validationDetails(err))
		return
	}
	ctx := c.Request.Context()

	exists, err := s.gateway.UserExists(ctx, req.Email)
	if err != nil {
		respondKind(c, err, "")
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "user already exists", common.KindConflict.String())
		return
	}

	u, err := s.gateway.CreateUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			respondError(c, http.StatusConflict, "user already exists", common.KindConflict.String())
			return
		}
		respondKind(c, err, "registration failed")
		return
	}

	respondOK(c, http.StatusCreated, registerResponse{UserID: u.ID}, "registered")
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request", validationDetails(err))
		return
	}
	ctx := c.Request.Context()

	sess, err := s.gateway.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch common.KindOf(err) {
		case common.KindNotFound, common.KindInvalid:
			// unknown email and wrong password look the same to the client
			respondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		default:
			respondKind(c, err, "")
		}
		return
	}

	token, err := auth.GenerateToken(sess.UserID(), sess.ID(), s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.gateway.Logout(sess.ID())
		s.logger.Error(ctx, "error signing access token", "error", err)
		respondError(c, http.StatusInternalServerError, "internal error", nil)
		return
	}

	complete, err := s.gateway.IsProfileComplete(ctx, sess.UserID())
	if err != nil {
		s.gateway.Logout(sess.ID())
		respondKind(c, err, "")
		return
	}

	respondOK(c, http.StatusOK, loginResponse{
		AccessToken:     token,
		ExpiresAt:       sess.ExpiresAt(),
		UserID:          sess.UserID(),
		ProfileComplete: complete,
	}, "logged in")
}

func (s *HTTPServer) logout(c *gin.Context) {
	s.gateway.Logout(currentSession(c).ID())
	respondOK[any](c, http.StatusOK, nil, "logged out")
}

func (s *HTTPServer) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request", validationDetails(err))
		return
	}

	token, err := s.gateway.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		respondKind(c, err, "")
		return
	}

	var resp forgotPasswordResponse
	if s.exposeTokens {
		resp.ResetToken = token
	}
	respondOK(c, http.StatusOK, resp, resetRequestedMessage)
}

func (s *HTTPServer) validateResetToken(c *gin.Context) {
	var req validateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request", validationDetails(err))
		return
	}

	ok, err := s.gateway.ValidateResetToken(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		respondKind(c, err, "")
		return
	}
	respondOK(c, http.StatusOK, validateTokenResponse{Valid: ok}, "")
}

func (s *HTTPServer) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request", validationDetails(err))
		return
	}

	err := s.gateway.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword)
	if err != nil {
		respondKind(c, err, "invalid or expired token")
		return
	}
	respondOK[any](c, http.StatusOK, nil, "password updated")
}

func (s *HTTPServer) getProfile(c *gin.Context) {
	sess := currentSession(c)
	ctx := c.Request.Context()

	var (
		p   *models.Profile
		err error
	)
	if c.Query("fresh") == "true" {
		p, err = s.gateway.GetProfile(ctx, sess.UserID())
	} else {
		p, err = s.gateway.GetProfileSmart(ctx, sess, sess.UserID())
	}
	if err != nil {
		respondKind(c, err, "profile not found")
		return
	}
	respondOK(c, http.StatusOK, p, "")
}

func (s *HTTPServer) saveProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request", validationDetails(err))
		return
	}
	sess := currentSession(c)

	if err := s.gateway.SaveAndCacheProfile(c.Request.Context(), sess, req.fields()); err != nil {
		respondKind(c, err, "failed to save profile")
		return
	}
	respondOK(c, http.StatusOK, models.Profile{UserID: sess.UserID(), ProfileFields: req.fields()}, "profile saved")
}

func (s *HTTPServer) profileStatus(c *gin.Context) {
	sess := currentSession(c)

	complete, err := s.gateway.IsProfileComplete(c.Request.Context(), sess.UserID())
	if err != nil {
		respondKind(c, err, "")
		return
	}
	respondOK(c, http.StatusOK, profileStatusResponse{Complete: complete}, "")
}
