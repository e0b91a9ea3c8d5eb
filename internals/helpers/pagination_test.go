// file: internals/helpers/pagination_test.go
package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sortColumns = map[string]string{
	"created_at": "t.created_at",
	"rent":       "t.rent_amount",
}

func TestSafeOrderClause_WhitelistedKey(t *testing.T) {
	p := Params{SortBy: "rent", SortOrder: "desc"}

	got, err := p.SafeOrderClause(sortColumns, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "t.rent_amount DESC", got)
}

func TestSafeOrderClause_UnknownKeyFallsBackToDefault(t *testing.T) {
	// kolom liar dari query string tidak boleh sampai ke ORDER BY
	p := Params{SortBy: "password; DROP TABLE users", SortOrder: "asc"}

	got, err := p.SafeOrderClause(sortColumns, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "t.created_at ASC", got)
}

func TestSafeOrderClause_EmptySortByUsesDefault(t *testing.T) {
	p := Params{SortOrder: "desc"}

	got, err := p.SafeOrderClause(sortColumns, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "t.created_at DESC", got)
}

func TestSafeOrderClause_DefaultKeyMissingFromWhitelist(t *testing.T) {
	p := Params{SortBy: "nope"}

	_, err := p.SafeOrderClause(sortColumns, "also_nope")
	assert.Error(t, err)
}
