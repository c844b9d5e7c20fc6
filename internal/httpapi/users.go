package httpapi

import (
	"encoding/json"
	"net/http"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	id, err := s.users.Register(r.Context(), req.Username, req.Password, req.Fullname)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "user registered", map[string]string{"userId": id})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	userID, err := s.users.VerifyCredential(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	accessToken, err := s.tokens.NewAccessToken(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	refreshToken, err := s.tokens.NewRefreshToken(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.users.StoreRefreshToken(r.Context(), refreshToken); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "authentication added", map[string]string{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := s.users.CheckRefreshToken(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, err)
		return
	}

	userID, err := s.tokens.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	accessToken, err := s.tokens.NewAccessToken(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "access token refreshed", map[string]string{
		"accessToken": accessToken,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := s.users.RevokeRefreshToken(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "refresh token revoked", nil)
}
