package queries_test

import (
	"testing"

	"handoff/internal/core/application/usecases/queries"
	"handoff/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		orderID := kernel.NewUUID()

		query, err := queries.NewGetOrderQuery(orderID)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.OrderID().IsEqual(orderID))
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := queries.NewGetOrderQuery(invalidID)

		require.Error(t, err)
	})

	t.Run("should reject directly instantiated query", func(t *testing.T) {
		var query queries.GetOrderQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}
