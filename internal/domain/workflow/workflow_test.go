package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/workflow"
)

func TestPurchaseOrderMachine_CicloLineal(t *testing.T) {
	m := workflow.PurchaseOrderMachine

	state := "pre_order"
	for _, next := range []string{"issued", "received", "paid"} {
		got, err := m.Transition(state, next)
		require.NoError(t, err)
		state = got
	}
	assert.Equal(t, "paid", state)
	assert.True(t, m.IsTerminal("paid"))
}

func TestPurchaseOrderMachine_RechazaRetrocesos(t *testing.T) {
	m := workflow.PurchaseOrderMachine

	cases := [][2]string{
		{"paid", "pre_order"},
		{"received", "issued"},
		{"pre_order", "received"}, // no se puede saltar issued
		{"pre_order", "paid"},
		{"issued", "paid"},
	}
	for _, c := range cases {
		_, err := m.Transition(c[0], c[1])
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "%s -> %s debería rechazarse", c[0], c[1])
	}
}

func TestProductionOrderMachine(t *testing.T) {
	m := workflow.ProductionOrderMachine

	assert.True(t, m.CanTransition("pre_production", "in_production"))
	assert.True(t, m.CanTransition("pre_production", "cancelled"))
	assert.True(t, m.CanTransition("in_production", "completed"))
	assert.True(t, m.CanTransition("in_production", "cancelled"))

	assert.False(t, m.CanTransition("completed", "in_production"))
	assert.False(t, m.CanTransition("cancelled", "pre_production"))
	assert.False(t, m.CanTransition("pre_production", "completed"))
}

func TestBatchMachine_Terminal(t *testing.T) {
	m := workflow.BatchMachine

	assert.True(t, m.CanTransition("active", "expired"))
	assert.True(t, m.CanTransition("active", "depleted"))
	// Una vez vencido o agotado no hay vuelta atrás
	assert.False(t, m.CanTransition("expired", "active"))
	assert.False(t, m.CanTransition("depleted", "active"))
	assert.False(t, m.CanTransition("expired", "depleted"))
}

func TestAlertYReminderMachines(t *testing.T) {
	assert.True(t, workflow.AlertMachine.CanTransition("active", "acknowledged"))
	assert.True(t, workflow.AlertMachine.CanTransition("acknowledged", "resolved"))
	assert.True(t, workflow.AlertMachine.CanTransition("active", "resolved"))
	assert.False(t, workflow.AlertMachine.CanTransition("resolved", "active"))

	assert.True(t, workflow.ReminderMachine.CanTransition("pending", "completed"))
	assert.True(t, workflow.ReminderMachine.CanTransition("pending", "cancelled"))
	assert.False(t, workflow.ReminderMachine.CanTransition("completed", "pending"))
}
