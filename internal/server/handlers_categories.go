package server

import (
	"net/http"
	"time"

	"gitlab.com/contasweb/contas-backend/internal/models"
)

type categoryDTO struct {
	CategoryID   int       `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toCategoryDTO(c models.Category) categoryDTO {
	return categoryDTO{
		CategoryID:   c.ID,
		CategoryName: c.Name,
		Description:  c.Description,
		CreatedAt:    c.CreatedAt,
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.GetCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toCategoryDTO(c))
	}
	writeJSON(w, http.StatusOK, dtos)
}

type createCategoryRequest struct {
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := s.categories.CreateCategory(r.Context(), req.CategoryName, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryDTO(*cat))
}
