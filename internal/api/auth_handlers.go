package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"kasjer/internal/auth"
	"kasjer/internal/database"
	"kasjer/internal/models"
	"kasjer/internal/validation"
)

type SignupRequest struct {
	Username string `json:"username" example:"MUC12345"`
	Email    string `json:"email" example:"player@example.com"`
	Password string `json:"password" example:"abc123"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"player@example.com"`
	Password string `json:"password" example:"abc123"`
}

// UserResponse never carries the password; models.User hides it from JSON.
type UserResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

func (s *Server) playerToken(user *models.User) string {
	token, err := auth.GenerateJWT(user.ID, user.Username, auth.RolePlayer, s.config.JWT.Secret, s.config.JWT.TTL)
	if err != nil {
		log.Printf("WARN: no player token for user %s: %v", user.ID, err)
		return ""
	}
	return token
}

// @Summary      Creates a player account
// @Description  Validates username, email and password, rejects an email that is already registered and stores the user.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signupRequest  body      SignupRequest  true  "New account"
// @Success      200            {object}  UserResponse
// @Failure      400            {object}  ErrorResponse "Invalid input or user already exists"
// @Failure      500            {object}  ErrorResponse
// @Router       /auth/signup [post]
func (s *Server) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if fields := validation.Signup(req.Username, req.Email, req.Password); fields != nil {
		writeValidation(w, "Invalid input", fields)
		return
	}

	existing, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeStoreError(w, "signup lookup", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, codeConflict, "User already exists")
		return
	}

	user, err := s.store.CreateUser(r.Context(), database.CreateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeStoreError(w, "create user", err)
		return
	}

	signupsTotal.Inc()
	writeJSON(w, http.StatusOK, UserResponse{User: user, Token: s.playerToken(user)})
}

// @Summary      Logs a player in
// @Description  Returns the user when both email and password match. Every failure looks the same to the caller.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Login Credentials"
// @Success      200           {object}  UserResponse
// @Failure      400           {object}  ErrorResponse "Invalid request body"
// @Failure      401           {object}  ErrorResponse "Invalid credentials"
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if res := validation.Email(req.Email); !res.Valid() {
		writeValidation(w, "Invalid input", validation.Errors{"email": res.Message})
		return
	}

	user, err := s.store.FindUserByCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrUnavailable) {
			log.Printf("ERROR: login while store unavailable: %v", err)
		} else {
			log.Printf("ERROR: login lookup failed: %v", err)
		}
	}
	if user == nil {
		loginFailuresTotal.Inc()
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user, Token: s.playerToken(user)})
}
