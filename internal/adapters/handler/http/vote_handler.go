package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/openvote/ballot/internal/core/domain"
	"github.com/openvote/ballot/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	Party string `json:"party"`
}

type voteDetails struct {
	Party   domain.Party `json:"party"`
	VotedAt time.Time    `json:"voted_at"`
}

type meResponse struct {
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Voted bool         `json:"voted"`
	Vote  *voteDetails `json:"vote"`
}

func (h *VoteHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := r.Context().Value(IdentityKey).(domain.Identity)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	vote, err := h.service.Status(r.Context(), identity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch vote status.")
		return
	}

	resp := meResponse{
		Name:  identity.Name,
		Email: identity.Email,
		Voted: vote != nil,
	}
	if vote != nil {
		resp.Vote = &voteDetails{Party: vote.Party, VotedAt: vote.VotedAt}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	identity, ok := r.Context().Value(IdentityKey).(domain.Identity)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	_, err := h.service.Submit(r.Context(), identity, domain.Party(req.Party))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParty) {
			respondError(w, http.StatusBadRequest, "Invalid party selection.")
			return
		}
		if errors.Is(err, domain.ErrAlreadyVoted) {
			respondError(w, http.StatusConflict, "You have already voted.")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to record vote.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Vote submitted successfully!",
	})
}
