package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pauljones0/promo-campaigns/internal/models"
)

type listCampaignsResponse struct {
	Campaigns []models.Campaign `json:"campaigns"`
}

// CreateCampaign handles POST /api/campaign.
func (s *Server) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in models.CampaignInput
	if !decodeJSON(w, r, &in) {
		return
	}

	id, err := s.campaigns.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, successResponse{Success: true, ID: id})
}

// ListCampaigns handles GET /api/campaign.
func (s *Server) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.campaigns.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	writeJSON(w, http.StatusOK, listCampaignsResponse{Campaigns: campaigns})
}

// UpdateCampaign handles PATCH /api/campaign/{id}.
func (s *Server) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var patch models.CampaignPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	if err := s.campaigns.Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// DeleteCampaign handles DELETE /api/campaign/{id}.
func (s *Server) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := s.campaigns.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
