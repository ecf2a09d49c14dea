package server

import (
	"net/http"
	"time"

	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/repository"
	"gitlab.com/contasweb/contas-backend/internal/service"
)

type userDTO struct {
	UserID         string          `json:"userId"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone,omitempty"`
	Address        *models.Address `json:"address,omitempty"`
	ProfilePicture string          `json:"profilePicture,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastLogin      time.Time       `json:"lastLogin"`
}

func toUserDTO(u models.User) userDTO {
	return userDTO{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Address:        u.Address,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		LastLogin:      u.LastLogin,
	}
}

type createUserRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        *models.Address `json:"address"`
	ProfilePicture string          `json:"profilePicture"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.CreateUser(r.Context(), service.UserInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserDTO(*user))
}

func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetCurrentUser(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(*user))
}

type updateUserRequest struct {
	Name           *string         `json:"name"`
	Email          *string         `json:"email"`
	Phone          *string         `json:"phone"`
	Address        *models.Address `json:"address"`
	ProfilePicture *string         `json:"profilePicture"`
}

func (s *Server) handleUpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.users.UpdateCurrentUser(r.Context(), repository.UserUpdate{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	var address models.Address
	if err := decodeJSON(r, &address); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.users.UpdateAddress(r.Context(), address); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfileComplete(w http.ResponseWriter, r *http.Request) {
	complete, err := s.users.IsProfileComplete(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"profileComplete": complete})
}
