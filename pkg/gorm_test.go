package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSearchPath(t *testing.T) {
	dsn, err := withSearchPath("postgres://u:p@localhost:5432/exams?sslmode=disable", "college")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/exams?search_path=college&sslmode=disable", dsn)

	dsn, err = withSearchPath("postgres://u:p@localhost:5432/exams", "")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/exams", dsn)
}
