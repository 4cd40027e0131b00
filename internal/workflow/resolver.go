// Package workflow closes issues on a tracker that has no "set status"
// operation. Closing is a two-step protocol: list the transitions that are
// legal for the issue right now, pick the one whose name means "closed",
// then apply it by id.
//
// Nothing guards the gap between the two calls. If another actor moves the
// issue in between, the apply call fails or succeeds on the tracker's state
// at that moment; no retry is attempted.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/jira-mcp/internal/tracker"
)

// closingNames are matched exactly, case-insensitively. Localized or
// custom workflow names fall through to the not-found outcome.
var closingNames = map[string]bool{
	"done":     true,
	"closed":   true,
	"resolved": true,
}

// TransitionID is the tracker's opaque transition id. The tracker sends it
// as a string, but numeric ids are accepted too.
type TransitionID string

// UnmarshalJSON accepts both "21" and 21.
func (id *TransitionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TransitionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("transition id: %w", err)
	}
	*id = TransitionID(n.String())
	return nil
}

// Transition is a state change that is currently legal for one issue.
type Transition struct {
	ID   TransitionID `json:"id"`
	Name string       `json:"name"`
}

// Resolution is the outcome of looking for a closing transition.
// When Found is false, Available lists every transition name the tracker
// offered, in order.
type Resolution struct {
	Found      bool
	Transition Transition
	Available  []string
}

type transitionsResponse struct {
	Transitions []Transition `json:"transitions"`
}

type applyRequest struct {
	Transition struct {
		ID TransitionID `json:"id"`
	} `json:"transition"`
}

// Resolver discovers and applies transitions through the tracker API.
type Resolver struct {
	api tracker.API
}

// NewResolver creates a Resolver.
func NewResolver(api tracker.API) *Resolver {
	return &Resolver{api: api}
}

// Transitions lists the transitions currently legal for the issue, in the
// order the tracker returned them.
func (r *Resolver) Transitions(ctx context.Context, issueKey string) ([]Transition, error) {
	body, err := r.api.Get(ctx, tracker.IssuePath(issueKey, "transitions"), nil)
	if err != nil {
		return nil, err
	}

	var resp transitionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding transitions for %s: %w", issueKey, err)
	}
	return resp.Transitions, nil
}

// ResolveClosingTransition finds the transition that closes the issue.
// A missing match is reported through Resolution, not as an error.
func (r *Resolver) ResolveClosingTransition(ctx context.Context, issueKey string) (Resolution, error) {
	transitions, err := r.Transitions(ctx, issueKey)
	if err != nil {
		return Resolution{}, err
	}

	if t, ok := SelectClosing(transitions); ok {
		return Resolution{Found: true, Transition: t}, nil
	}
	return Resolution{Available: Names(transitions)}, nil
}

// ApplyTransition performs the transition. Any 2xx response counts as
// success; the response body is ignored.
func (r *Resolver) ApplyTransition(ctx context.Context, issueKey string, id TransitionID) error {
	var req applyRequest
	req.Transition.ID = id

	if _, err := r.api.Post(ctx, tracker.IssuePath(issueKey, "transitions"), req); err != nil {
		return err
	}
	return nil
}

// SelectClosing returns the first transition whose name is one of done,
// closed or resolved, ignoring case. Order is the tracker's; the first match
// wins.
func SelectClosing(transitions []Transition) (Transition, bool) {
	for _, t := range transitions {
		if closingNames[strings.ToLower(t.Name)] {
			return t, true
		}
	}
	return Transition{}, false
}

// Names returns the transition names in order.
func Names(transitions []Transition) []string {
	names := make([]string, len(transitions))
	for i, t := range transitions {
		names[i] = t.Name
	}
	return names
}
