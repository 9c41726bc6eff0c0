package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeUnionHeader(t *testing.T) {
	a, err := ToRow(map[string]any{"id": 1, "name": "Ficciones"})
	require.NoError(t, err)
	b, err := ToRow(struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Extra string `json:"extra"`
	}{2, "El Aleph; cuentos", "x"})
	require.NoError(t, err)

	out, err := Encode([]Row{a, b})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id;name;extra", lines[0])
	assert.Equal(t, "1;Ficciones;", lines[1])
	assert.Equal(t, `2;"El Aleph; cuentos";x`, lines[2])
}

func TestToRowCells(t *testing.T) {
	row, err := ToRow(struct {
		Title  string         `json:"title"`
		Price  int64          `json:"price"`
		Active bool           `json:"active"`
		Owner  *int64         `json:"owner"`
		Data   map[string]any `json:"data"`
	}{Title: "Rayuela", Price: 1200, Active: true, Data: map[string]any{"a": 1}})
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "price", "active", "owner", "data"}, row.Keys)
	assert.Equal(t, "Rayuela", row.Values["title"])
	assert.Equal(t, "1200", row.Values["price"])
	assert.Equal(t, "true", row.Values["active"])
	assert.Equal(t, "", row.Values["owner"])
	assert.Equal(t, `{"a":1}`, row.Values["data"])

	_, err = ToRow([]int{1, 2})
	assert.Error(t, err)
}

func TestEncodeEmpty(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 34, 56, 789_000_000, time.UTC)
	assert.Equal(t, "books-2024-05-01T12-34-56-789Z.csv", Filename("books", ts))

	local := time.Date(2024, 5, 1, 14, 34, 56, 0, time.FixedZone("CEST", 2*3600))
	assert.Equal(t, "logs-2024-05-01T12-34-56-000Z.csv", Filename("logs", local))
}
