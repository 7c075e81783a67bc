package product

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCategoryUpdateQuery(t *testing.T) {
	id := gocql.TimeUUID()

	query, values, ok := categoryUpdateQuery(id, strPtr("Gaming"), nil)
	require.True(t, ok)
	assert.Equal(t, "UPDATE categories SET name = ? WHERE category_id = ?", query)
	assert.Equal(t, []interface{}{"Gaming", id}, values)

	query, values, ok = categoryUpdateQuery(id, nil, strPtr("https://cdn/img.png"))
	require.True(t, ok)
	assert.Equal(t, "UPDATE categories SET image = ? WHERE category_id = ?", query)
	assert.Equal(t, []interface{}{"https://cdn/img.png", id}, values)

	query, values, ok = categoryUpdateQuery(id, strPtr("Gaming"), strPtr("https://cdn/img.png"))
	require.True(t, ok)
	assert.Equal(t, "UPDATE categories SET name = ?, image = ? WHERE category_id = ?", query)
	assert.Equal(t, []interface{}{"Gaming", "https://cdn/img.png", id}, values)
}

func TestCategoryUpdateQueryNothingProvided(t *testing.T) {
	_, _, ok := categoryUpdateQuery(gocql.TimeUUID(), nil, nil)
	assert.False(t, ok)
}
