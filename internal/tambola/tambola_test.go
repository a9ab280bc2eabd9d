package tambola

import (
	"sort"
	"testing"

	"github.com/housielive/housie/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDrawSequenceIsPermutation(t *testing.T) {
	g := New(&Config{Seed: 42})

	seq := g.NewDrawSequence()
	require.Len(t, seq, models.DrawPoolSize)

	sorted := make([]int, len(seq))
	copy(sorted, seq)
	sort.Ints(sorted)

	for i, n := range sorted {
		assert.Equal(t, i+1, n, "sorting the sequence must yield 1..90")
	}
}

func TestNewDrawSequenceDeterministicWithSeed(t *testing.T) {
	first := New(&Config{Seed: 7}).NewDrawSequence()
	second := New(&Config{Seed: 7}).NewDrawSequence()

	assert.Equal(t, first, second)
}

func TestNewCardRows(t *testing.T) {
	g := New(&Config{Seed: 42})

	for run := 0; run < 50; run++ {
		rows := g.NewCardRows()

		seen := make(map[int]bool)
		var flat []int
		for i := range rows {
			for _, n := range rows[i] {
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, models.DrawPoolSize)
				assert.False(t, seen[n], "card numbers must be distinct")
				seen[n] = true
				flat = append(flat, n)
			}
		}
		require.Len(t, flat, 15)

		// Rows are ascending within and across: row 0 holds the lowest five.
		assert.True(t, sort.IntsAreSorted(flat), "rows must be the sorted numbers split 5/5/5")
	}
}

func TestNewCardLabel(t *testing.T) {
	g := New(&Config{Seed: 42})

	label := g.NewCardLabel()
	require.Len(t, label, cardLabelLength)
	for _, c := range label {
		assert.Contains(t, labelChars, string(c))
	}
}

func TestTicketLabel(t *testing.T) {
	assert.Equal(t, "HOUSIE42-0007", TicketLabel("HOUSIE42", 7))
	assert.Equal(t, "G1-0100", TicketLabel("G1", 100))
}
