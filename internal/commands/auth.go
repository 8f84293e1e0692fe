package commands

import (
	"context"

	"github.com/baiirun/cu/internal/clickup"
)

// TeamInfo is a workspace the token can see. Current marks the configured one.
type TeamInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

type AuthResult struct {
	Authenticated bool          `json:"authenticated"`
	User          *clickup.User `json:"user,omitempty"`
	Teams         []TeamInfo    `json:"teams,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// TeamConfigured reports whether the configured team id is one the token can
// see. It is false when the team list could not be loaded.
func (r AuthResult) TeamConfigured() bool {
	for _, t := range r.Teams {
		if t.Current {
			return true
		}
	}
	return false
}

// CheckAuth verifies the token by fetching the current user, then lists the
// workspaces it can reach. A failed team lookup does not fail authentication.
func (h *Handlers) CheckAuth(ctx context.Context) AuthResult {
	me, err := h.api.Me(ctx)
	if err != nil {
		return AuthResult{Error: err.Error()}
	}
	res := AuthResult{Authenticated: true, User: &me}

	teams, err := h.api.Teams(ctx)
	if err != nil {
		h.logger.Debug("team lookup failed", "error", err)
		return res
	}
	for _, t := range teams {
		res.Teams = append(res.Teams, TeamInfo{ID: t.ID, Name: t.Name, Current: t.ID == h.teamID})
	}
	return res
}
