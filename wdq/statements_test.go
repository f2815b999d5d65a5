package wdq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func universeStatements(t *testing.T) *Statements {
	t.Helper()
	statements, err := mustItem(t, universeJSON).Statements()
	require.NoError(t, err)
	return statements
}

func TestStatementsByProperty(t *testing.T) {
	statements := universeStatements(t)

	t.Run("source order, no filter", func(t *testing.T) {
		stmts, err := statements.ByProperty("P31")
		require.NoError(t, err)
		require.Len(t, stmts, 3)
		assert.Equal(t, "Q1$a", stmts[0].ID)
		assert.Equal(t, "Q1$b", stmts[1].ID)
		assert.Equal(t, "Q1$c", stmts[2].ID)
	})

	t.Run("rank filter", func(t *testing.T) {
		stmts, err := statements.ByProperty("P31", RankPreferred)
		require.NoError(t, err)
		require.Len(t, stmts, 1)
		assert.Equal(t, "Q1$a", stmts[0].ID)

		stmts, err = statements.ByProperty("P31", RankPreferred, RankNormal)
		require.NoError(t, err)
		assert.Len(t, stmts, 2)
	})

	t.Run("absent rank defaults to normal", func(t *testing.T) {
		stmts, err := statements.ByProperty("P31", RankNormal)
		require.NoError(t, err)
		require.Len(t, stmts, 1)
		assert.Equal(t, "Q1$b", stmts[0].ID)
		assert.Equal(t, RankNormal, stmts[0].Rank)
	})

	t.Run("unknown property is empty", func(t *testing.T) {
		stmts, err := statements.ByProperty("P9999")
		require.NoError(t, err)
		assert.Empty(t, stmts)
	})
}

func TestStatementsAll(t *testing.T) {
	statements := universeStatements(t)

	t.Run("concatenates every property group", func(t *testing.T) {
		stmts, err := statements.All()
		require.NoError(t, err)
		assert.Len(t, stmts, 5)

		// Sum of per-property lengths equals the unfiltered total.
		total := 0
		for _, pid := range statements.Properties() {
			group, err := statements.ByProperty(pid)
			require.NoError(t, err)
			total += len(group)
		}
		assert.Equal(t, len(stmts), total)
	})

	t.Run("group order follows the parse", func(t *testing.T) {
		assert.Equal(t, []string{"P31", "P580", "P227"}, statements.Properties())

		stmts, err := statements.All()
		require.NoError(t, err)
		assert.Equal(t, "P31", stmts[0].Property.ID)
		assert.Equal(t, "P580", stmts[3].Property.ID)
		assert.Equal(t, "P227", stmts[4].Property.ID)
	})

	t.Run("rank filter applies across groups", func(t *testing.T) {
		stmts, err := statements.All(RankNormal)
		require.NoError(t, err)
		assert.Len(t, stmts, 3)
	})
}

func TestStatementsLen(t *testing.T) {
	statements := universeStatements(t)

	// Len ignores rank filters entirely.
	assert.Equal(t, 5, statements.Len())
}

func TestStatementDecode(t *testing.T) {
	t.Run("qualifiers and references", func(t *testing.T) {
		statements, err := mustItem(t, `{"id": "Q1", "statements": {"P69": [{
			"id": "Q1$edu",
			"property": {"id": "P69", "data_type": "wikibase-item"},
			"value": {"type": "value", "content": "Q34433"},
			"qualifiers": [
				{"property": {"id": "P580", "data_type": "time"}, "value": {"type": "value", "content": {"time": "+1971-00-00T00:00:00Z", "precision": 9}}}
			],
			"references": [
				{"hash": "deadbeef", "parts": [
					{"property": {"id": "P854", "data_type": "url"}, "value": {"type": "value", "content": "https://example.org/source"}}
				]}
			]
		}]}}`).Statements()
		require.NoError(t, err)

		stmts, err := statements.ByProperty("P69")
		require.NoError(t, err)
		require.Len(t, stmts, 1)

		stmt := stmts[0]
		require.Len(t, stmt.Qualifiers, 1)
		assert.Equal(t, "P580", stmt.Qualifiers[0].Property.ID)
		assert.Equal(t, ValueKindGeneric, stmt.Qualifiers[0].Value.Kind())

		require.Len(t, stmt.References, 1)
		assert.Equal(t, "deadbeef", stmt.References[0].Hash)
		require.Len(t, stmt.References[0].Parts, 1)
		assert.Equal(t, "P854", stmt.References[0].Parts[0].Property.ID)
	})

	t.Run("unknown rank is malformed", func(t *testing.T) {
		statements, err := mustItem(t, `{"id": "Q1", "statements": {"P31": [
			{"id": "Q1$x", "rank": "best", "property": {"id": "P31", "data_type": "wikibase-item"}, "value": {"type": "value", "content": "Q5"}}
		]}}`).Statements()
		require.NoError(t, err)

		_, err = statements.ByProperty("P31")
		require.ErrorIs(t, err, ErrMalformedData)
	})

	t.Run("missing property is malformed", func(t *testing.T) {
		statements, err := mustItem(t, `{"id": "Q1", "statements": {"P31": [
			{"id": "Q1$x", "value": {"type": "value", "content": "Q5"}}
		]}}`).Statements()
		require.NoError(t, err)

		_, err = statements.ByProperty("P31")
		require.ErrorIs(t, err, ErrMalformedData)
	})

	t.Run("decoding is deferred until access", func(t *testing.T) {
		// The broken statement only fails when its group is read.
		statements, err := mustItem(t, `{"id": "Q1", "statements": {
			"P1": [{"id": "Q1$ok", "property": {"id": "P1", "data_type": "string"}, "value": {"type": "value", "content": "fine"}}],
			"P2": [{"not": "a statement"}]
		}}`).Statements()
		require.NoError(t, err)

		_, err = statements.ByProperty("P1")
		require.NoError(t, err)

		_, err = statements.ByProperty("P2")
		require.ErrorIs(t, err, ErrMalformedData)
	})
}

func TestParseRank(t *testing.T) {
	tests := []struct {
		input   string
		want    Rank
		wantErr bool
	}{
		{"preferred", RankPreferred, false},
		{"normal", RankNormal, false},
		{"deprecated", RankDeprecated, false},
		{"best", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRank(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedData)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
