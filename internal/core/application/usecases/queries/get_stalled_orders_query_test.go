package queries_test

import (
	"testing"
	"time"

	"handoff/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetStalledOrdersQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		query, err := queries.NewGetStalledOrdersQuery(10 * time.Minute)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, 10*time.Minute, query.OlderThan())
	})

	t.Run("should fail with zero threshold", func(t *testing.T) {
		_, err := queries.NewGetStalledOrdersQuery(0)

		require.Error(t, err)
	})

	t.Run("should fail with negative threshold", func(t *testing.T) {
		_, err := queries.NewGetStalledOrdersQuery(-time.Minute)

		require.Error(t, err)
	})

	t.Run("should reject directly instantiated query", func(t *testing.T) {
		var query queries.GetStalledOrdersQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetStalledOrdersQueryIsNotConstructed)
	})
}
