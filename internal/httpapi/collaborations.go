package httpapi

import (
	"encoding/json"
	"net/http"
)

type collaborationRequest struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

func (r collaborationRequest) validate() string {
	if r.PlaylistID == "" {
		return "playlistId is required"
	}
	if r.UserID == "" {
		return "userId is required"
	}
	return ""
}

func (s *Server) handleAddCollaboration(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if msg := req.validate(); msg != "" {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	id, err := s.collaborations.Add(r.Context(), req.PlaylistID, req.UserID, ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "collaboration added", map[string]string{"collaborationId": id})
}

func (s *Server) handleRemoveCollaboration(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.authUserID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if msg := req.validate(); msg != "" {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.collaborations.Remove(r.Context(), req.PlaylistID, req.UserID, ownerID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "collaboration removed", nil)
}
