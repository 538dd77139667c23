package handlers

import (
	"errors"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/gudang-mitra/gudang-api/internal/auth"
	"github.com/gudang-mitra/gudang-api/internal/http/ban"
	"github.com/gudang-mitra/gudang-api/internal/models"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LoginHandler godoc
// @Summary Authenticate by email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginPayload true "email and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} FailureResponse
// @Failure 401 {object} FailureResponse
// @Failure 429 {object} FailureResponse
// @Router /api/auth/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		writeFailure(w, http.StatusBadRequest, "email and password are required")
		return
	}

	target := ban.Target(clientIP(r), payload.Email)
	if ban.IsBanned(target) {
		writeFailure(w, http.StatusTooManyRequests, "too many failed attempts, try again later")
		return
	}

	user, err := userRepo.GetByEmail(payload.Email)
	if err != nil {
		ban.RecordFailure(target)
		writeFailure(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	verifier := auth.VerifierFor(user.PasswordHash)
	if !verifier.Verify(user.PasswordHash, payload.Password) {
		ban.RecordFailure(target)
		writeFailure(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	ban.ClearStrikes(target)

	// migrate legacy plaintext credentials to bcrypt
	if verifier.NeedsRehash() {
		if hash, err := auth.HashPassword(payload.Password); err == nil {
			if err := userRepo.UpdatePasswordHash(user.ID, hash); err != nil {
				log.Printf("failed to migrate credential for user %d: %v", user.ID, err)
			}
		}
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "could not generate token")
		return
	}

	result := LoginResult{
		Success: true,
		User: UserResponse{
			Id:       user.ID,
			Username: user.Name,
			Email:    user.Email,
			Role:     user.Role,
		},
		Token: token,
	}

	if refreshStore != nil {
		refresh, err := refreshStore.Issue(r.Context(), user.ID)
		if err != nil {
			log.Printf("failed to issue refresh token for user %d: %v", user.ID, err)
		} else {
			result.RefreshToken = refresh
		}
	}

	if err := writeJSON(w, http.StatusOK, result); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// RegisterHandler godoc
// @Summary Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterPayload true "name, email and password"
// @Success 201 {object} UserResponse
// @Failure 400 {object} FailureResponse
// @Failure 409 {object} FailureResponse
// @Router /api/auth/register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		writeFailure(w, http.StatusBadRequest, "missing credentials")
		return
	}
	if len(payload.Name) < 3 || len(payload.Password) < 6 {
		writeFailure(w, http.StatusBadRequest, "name or password too short")
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeFailure(w, http.StatusConflict, "email already registered")
			return
		}
		log.Printf("failed to register user: %v", err)
		writeFailure(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	if err := writeJSON(w, http.StatusCreated, UserResponse{
		Id:       user.ID,
		Username: user.Name,
		Email:    user.Email,
		Role:     user.Role,
	}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshPayload true "refresh token"
// @Success 200 {object} LoginResult
// @Failure 400 {object} FailureResponse
// @Failure 401 {object} FailureResponse
// @Router /api/auth/refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := readJSON(w, r, &payload); err != nil || payload.RefreshToken == "" {
		writeFailure(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	if refreshStore == nil {
		writeFailure(w, http.StatusInternalServerError, "refresh tokens unavailable")
		return
	}

	userID, err := refreshStore.Redeem(r.Context(), payload.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			writeFailure(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		log.Printf("failed to redeem refresh token: %v", err)
		writeFailure(w, http.StatusInternalServerError, "could not refresh session")
		return
	}

	user, err := userRepo.GetByID(userID)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "could not generate token")
		return
	}
	refresh, err := refreshStore.Issue(r.Context(), user.ID)
	if err != nil {
		log.Printf("failed to rotate refresh token for user %d: %v", user.ID, err)
	}

	if err := writeJSON(w, http.StatusOK, LoginResult{
		Success: true,
		User: UserResponse{
			Id:       user.ID,
			Username: user.Name,
			Email:    user.Email,
			Role:     user.Role,
		},
		Token:        token,
		RefreshToken: refresh,
	}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// LogoutHandler godoc
// @Summary Revoke a refresh token, ending the session
// @Tags auth
// @Accept json
// @Param token body RefreshPayload true "refresh token"
// @Success 204 "No Content"
// @Failure 400 {object} FailureResponse
// @Router /api/auth/logout [post]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := readJSON(w, r, &payload); err != nil || payload.RefreshToken == "" {
		writeFailure(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	if refreshStore != nil {
		if err := refreshStore.Revoke(r.Context(), payload.RefreshToken); err != nil {
			log.Printf("failed to revoke refresh token: %v", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateUserAsAdminHandler godoc
// @Summary Create a user with an explicit role
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user body CreateUserAsAdminPayload true "user to create"
// @Success 201 {object} UserResponse
// @Failure 400 {object} FailureResponse
// @Failure 403 {string} string "Forbidden"
// @Failure 409 {object} FailureResponse
// @Router /api/admin/users [post]
func CreateUserAsAdminHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserAsAdminPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Name == "" || payload.Email == "" || payload.Password == "" || payload.Role == "" {
		writeFailure(w, http.StatusBadRequest, "missing fields")
		return
	}
	if !models.ValidRole(payload.Role) {
		writeFailure(w, http.StatusBadRequest, "role must be admin, manager or user")
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: hash,
		Role:         payload.Role,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeFailure(w, http.StatusConflict, "email already registered")
			return
		}
		log.Printf("failed to create user: %v", err)
		writeFailure(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	if err := writeJSON(w, http.StatusCreated, UserResponse{
		Id:       user.ID,
		Username: user.Name,
		Email:    user.Email,
		Role:     user.Role,
	}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
