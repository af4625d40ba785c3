package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/middleware"
	"github.com/pkordes/tripvote/internal/voting"
)

// RankedProposal is a proposal with its ranking annotations.
type RankedProposal struct {
	domain.Proposal
	Position          int     `json:"position"`
	Leader            bool    `json:"leader"`
	ParticipationRate float64 `json:"participationRate"`
}

// StandingResponse is the ranking of one category.
type StandingResponse struct {
	Category  domain.Category  `json:"category"`
	Proposals []RankedProposal `json:"proposals"`
}

func rankedToResponse(ranked []voting.Ranked) []RankedProposal {
	out := make([]RankedProposal, len(ranked))
	for i, r := range ranked {
		out[i] = RankedProposal{
			Proposal:          r.Proposal,
			Position:          r.Position,
			Leader:            r.Leader,
			ParticipationRate: r.Rate,
		}
	}
	return out
}

// categoryParam parses the {category} path segment, writing a 422 on failure.
func (s *Server) categoryParam(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	c, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, r, err)
		return "", false
	}
	return c, true
}

// participant returns the acting participant from the request header.
func participant(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(middleware.ParticipantHeader))
}

// ListProposals handles GET /trips/{tripID}/categories/{category}/proposals.
// Proposals are ranked by votes with participation rates.
func (s *Server) ListProposals(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}
	ranked, err := s.svc.Proposals.Ranking(r.Context(), chi.URLParam(r, "tripID"), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rankedToResponse(ranked))
}

// AddProposal handles POST /trips/{tripID}/categories/{category}/proposals.
func (s *Server) AddProposal(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}
	var in domain.ProposalInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := s.svc.Proposals.Add(r.Context(), chi.URLParam(r, "tripID"), category, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// DeleteProposal handles DELETE /trips/{tripID}/categories/{category}/proposals/{proposalID}.
func (s *Server) DeleteProposal(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}
	err := s.svc.Proposals.Delete(r.Context(), chi.URLParam(r, "tripID"), category, chi.URLParam(r, "proposalID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleVote handles POST /trips/{tripID}/categories/{category}/proposals/{proposalID}/vote.
// The voter is named by the X-Participant-Name header. The response is the
// category's ranking after the toggle.
func (s *Server) ToggleVote(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryParam(w, r)
	if !ok {
		return
	}
	who := participant(r)
	if who == "" {
		requestError(w, http.StatusBadRequest, middleware.ParticipantHeader+" header is required")
		return
	}
	trip, err := s.svc.Proposals.ToggleVote(r.Context(), chi.URLParam(r, "tripID"), category, chi.URLParam(r, "proposalID"), who)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	proposals, _ := trip.Categories.Get(category)
	writeJSON(w, http.StatusOK, rankedToResponse(voting.RankWithRates(proposals, len(trip.Participants))))
}

// GetStandings handles GET /trips/{tripID}/standings.
func (s *Server) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.svc.Proposals.Standings(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]StandingResponse, len(standings))
	for i, st := range standings {
		out[i] = StandingResponse{Category: st.Category, Proposals: rankedToResponse(st.Proposals)}
	}
	writeJSON(w, http.StatusOK, out)
}
