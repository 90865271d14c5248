package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":     1,
		"amount": "12.50",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeExpense, payload)
	after := time.Now()

	assert.Equal(t, "expense.created", evt.Type)
	assert.Equal(t, EntityTypeExpense, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before.UTC()) && !evt.Timestamp.After(after.UTC()))
}

func TestEvent_ToJSON(t *testing.T) {
	payload := map[string]interface{}{
		"id": float64(42),
	}

	evt := NewEvent(EventTypeUpdated, EntityTypeBudget, payload)

	data, err := evt.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// Verify it's valid JSON
	var decoded map[string]interface{}
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, "budget.updated", decoded["type"])
	assert.Equal(t, "budget", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"id":     float64(1),
		"amount": "50.00",
	}

	t.Run("ExpenseCreated", func(t *testing.T) {
		evt := ExpenseCreated(payload)
		assert.Equal(t, "expense.created", evt.Type)
		assert.Equal(t, EntityTypeExpense, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("CategoryCreated", func(t *testing.T) {
		evt := CategoryCreated(payload)
		assert.Equal(t, "category.created", evt.Type)
		assert.Equal(t, EntityTypeCategory, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("BudgetUpdated", func(t *testing.T) {
		evt := BudgetUpdated(payload)
		assert.Equal(t, "budget.updated", evt.Type)
		assert.Equal(t, EntityTypeBudget, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})
}

func TestOwnerKey(t *testing.T) {
	assert.Equal(t, int32(0), OwnerKey(nil))

	id := int32(9)
	assert.Equal(t, int32(9), OwnerKey(&id))
}
