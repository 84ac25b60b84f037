package persona

import (
	"context"
	"fmt"
	"strings"
)

// Status is the persona workflow state.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusResolved Status = "resolved"
	StatusErrored  Status = "errored"
)

// Fallback persona rendered whenever no generated persona is available. The
// experience never shows a blank persona.
const (
	FallbackPersona     = "Curious Explorer"
	FallbackDescription = "Every order is a new discovery for this shopper, whose journey is just beginning."
)

// State is the externally visible workflow state. Persona and Description
// are either both set (resolved) or both empty.
type State struct {
	Status      Status
	Persona     string
	Description string
	Err         string

	fingerprint string
}

// Display returns the persona to render: the generated one when resolved,
// the deterministic fallback otherwise.
func (s State) Display() (string, string) {
	if s.Status == StatusResolved {
		return s.Persona, s.Description
	}
	return FallbackPersona, FallbackDescription
}

// Generator produces a persona result from aggregate shopping facts.
type Generator interface {
	GeneratePersona(ctx context.Context, req Request) (Result, error)
}

// Workflow drives persona generation through idle -> loading -> resolved or
// errored. A resolved state is soft-terminal: re-triggering with unchanged
// stats is a no-op, but a material stat change invalidates it and re-fetches.
//
// There is no cancellation of an in-flight request: if inputs change while
// one is outstanding, the stale response still lands (last write wins).
type Workflow struct {
	gen   Generator
	state State
}

func NewWorkflow(gen Generator) *Workflow {
	return &Workflow{
		gen:   gen,
		state: State{Status: StatusIdle},
	}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	return w.state
}

// Generate runs the workflow once. Without orders or a vendor ranking it is
// a no-op; with a persona already resolved for the same stats it skips the
// outbound call.
func (w *Workflow) Generate(ctx context.Context, req Request) State {
	if req.OrderCount == 0 || len(req.TopVendors) == 0 {
		return w.state
	}

	fp := fingerprint(req)
	if w.state.Status == StatusResolved && w.state.Err == "" && w.state.fingerprint == fp {
		return w.state
	}

	w.state = State{Status: StatusLoading, fingerprint: fp}

	result, err := w.gen.GeneratePersona(ctx, req)
	if err != nil {
		w.state = State{
			Status:      StatusErrored,
			Err:         fmt.Sprintf("could not generate your shopping persona: %v", err),
			fingerprint: fp,
		}
		return w.state
	}

	w.state = State{
		Status:      StatusResolved,
		Persona:     result.Persona,
		Description: result.Description,
		fingerprint: fp,
	}
	return w.state
}

// fingerprint identifies the stats a persona was derived from, so a resolved
// persona goes stale when they materially change.
func fingerprint(req Request) string {
	return fmt.Sprintf("%s|%d|%.2f|%.2f",
		strings.Join(req.TopVendors, ","), req.ProductsBought, req.MoneySpent, req.TotalSaved)
}
