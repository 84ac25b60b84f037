package persona

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	result Result
	err    error
	calls  int

	// observed captures the workflow state at call time.
	observed Status
	workflow *Workflow
}

func (m *mockGenerator) GeneratePersona(ctx context.Context, req Request) (Result, error) {
	m.calls++
	if m.workflow != nil {
		m.observed = m.workflow.State().Status
	}
	return m.result, m.err
}

func validRequest() Request {
	return Request{
		OrderCount:     3,
		TopVendors:     []string{"Acme", "Bolt"},
		ProductsBought: 7,
		MoneySpent:     210.50,
		TotalSaved:     32.00,
		TopProducts:    []string{"Socks", "Mug"},
	}
}

func TestWorkflowResolves(t *testing.T) {
	gen := &mockGenerator{result: Result{Persona: "X", Description: "Y"}}
	w := NewWorkflow(gen)
	gen.workflow = w

	assert.Equal(t, StatusIdle, w.State().Status)

	state := w.Generate(context.Background(), validRequest())

	assert.Equal(t, StatusLoading, gen.observed)
	assert.Equal(t, StatusResolved, state.Status)
	assert.Equal(t, "X", state.Persona)
	assert.Equal(t, "Y", state.Description)
	assert.Empty(t, state.Err)
}

func TestWorkflowErrors(t *testing.T) {
	gen := &mockGenerator{err: errors.New("service down")}
	w := NewWorkflow(gen)

	state := w.Generate(context.Background(), validRequest())

	assert.Equal(t, StatusErrored, state.Status)
	assert.Empty(t, state.Persona)
	assert.Empty(t, state.Description)
	require.NotEmpty(t, state.Err)
	assert.Contains(t, state.Err, "service down")

	// The caller still gets something to render.
	persona, description := state.Display()
	assert.Equal(t, FallbackPersona, persona)
	assert.Equal(t, FallbackDescription, description)
}

func TestWorkflowGuardsMissingData(t *testing.T) {
	gen := &mockGenerator{result: Result{Persona: "X", Description: "Y"}}
	w := NewWorkflow(gen)

	state := w.Generate(context.Background(), Request{OrderCount: 0, TopVendors: []string{"Acme"}})
	assert.Equal(t, StatusIdle, state.Status)

	state = w.Generate(context.Background(), Request{OrderCount: 3})
	assert.Equal(t, StatusIdle, state.Status)

	assert.Zero(t, gen.calls)
}

func TestWorkflowSkipsWhenResolved(t *testing.T) {
	gen := &mockGenerator{result: Result{Persona: "X", Description: "Y"}}
	w := NewWorkflow(gen)

	w.Generate(context.Background(), validRequest())
	w.Generate(context.Background(), validRequest())

	assert.Equal(t, 1, gen.calls)
}

func TestWorkflowRefetchesOnStatChange(t *testing.T) {
	gen := &mockGenerator{result: Result{Persona: "X", Description: "Y"}}
	w := NewWorkflow(gen)

	w.Generate(context.Background(), validRequest())

	changed := validRequest()
	changed.MoneySpent = 999.99
	w.Generate(context.Background(), changed)

	assert.Equal(t, 2, gen.calls)
}

func TestWorkflowRetriesAfterError(t *testing.T) {
	gen := &mockGenerator{err: errors.New("flaky")}
	w := NewWorkflow(gen)

	state := w.Generate(context.Background(), validRequest())
	assert.Equal(t, StatusErrored, state.Status)

	gen.err = nil
	gen.result = Result{Persona: "X", Description: "Y"}

	state = w.Generate(context.Background(), validRequest())
	assert.Equal(t, StatusResolved, state.Status)
	assert.Equal(t, 2, gen.calls)
}
