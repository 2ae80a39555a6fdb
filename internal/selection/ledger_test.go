package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageIDs(from, to int) []int {
	ids := make([]int, 0, to-from+1)
	for id := from; id <= to; id++ {
		ids = append(ids, id)
	}
	return ids
}

// effectiveFromSnapshot recomputes |included - excluded| independently of the ledger.
func effectiveFromSnapshot(s Snapshot) int {
	excluded := make(map[int]bool, len(s.Excluded))
	for _, id := range s.Excluded {
		excluded[id] = true
	}
	n := 0
	for _, id := range s.Included {
		if !excluded[id] {
			n++
		}
	}
	return n
}

func TestNewLedger_Empty(t *testing.T) {
	l := NewLedger()

	assert.Equal(t, 0, l.EffectiveCount())
	assert.Empty(t, l.EffectiveIDs())
	for _, id := range []int{0, 1, -7, 129884} {
		assert.False(t, l.IsSelected(id), "id %d was never referenced", id)
	}
}

func TestLedger_SetEffective_ExclusionWins(t *testing.T) {
	l := NewLedger()

	l.setEffective(5, true)
	assert.True(t, l.IsSelected(5))

	l.setEffective(5, false)
	assert.False(t, l.IsSelected(5))
	assert.Equal(t, Snapshot{Included: []int{}, Excluded: []int{5}}, l.Snapshot())

	// A stale include that is also excluded must still read as unselected.
	l.included.Add(5)
	assert.False(t, l.IsSelected(5))
	assert.Equal(t, 0, l.EffectiveCount())

	l.setEffective(5, true)
	assert.True(t, l.IsSelected(5))
	assert.Equal(t, 1, l.EffectiveCount())
}

func TestLedger_EffectiveCountMatchesSets(t *testing.T) {
	l := NewLedger()
	page := pageIDs(1, 10)

	l.ToggleAllOnPage(page)
	l.ToggleRow(3)
	l.ToggleRow(42)
	l.included.Add(7)
	l.excluded[7] = struct{}{}
	_, err := l.SelectFirstN(4, page, 100)
	require.NoError(t, err)
	l.ToggleRow(9)

	assert.Equal(t, effectiveFromSnapshot(l.Snapshot()), l.EffectiveCount())
	assert.Len(t, l.EffectiveIDs(), l.EffectiveCount())
}

func TestLedger_EffectiveIDsOrder(t *testing.T) {
	l := NewLedger()

	l.ToggleRow(30)
	l.ToggleRow(10)
	l.ToggleRow(20)
	l.ToggleRow(10) // deselect
	l.ToggleRow(10) // reselect moves it to the end

	assert.Equal(t, []int{30, 20, 10}, l.EffectiveIDs())
}

func TestLedger_HeaderState(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		page     []int
		want     HeaderState
		all      bool
		some     bool
	}{
		{name: "empty page", page: nil, want: HeaderNone},
		{name: "none selected", page: pageIDs(1, 3), want: HeaderNone},
		{name: "some selected", selected: []int{2}, page: pageIDs(1, 3), want: HeaderSome, some: true},
		{name: "all selected", selected: []int{1, 2, 3}, page: pageIDs(1, 3), want: HeaderAll, all: true},
		{name: "selection elsewhere only", selected: []int{99}, page: pageIDs(1, 3), want: HeaderNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			for _, id := range tt.selected {
				l.ToggleRow(id)
			}

			assert.Equal(t, tt.want, l.HeaderState(tt.page))
			assert.Equal(t, tt.all, l.AreAllSelected(tt.page))
			assert.Equal(t, tt.some, l.AreSomeSelected(tt.page))
		})
	}
}

func TestLedger_Reset(t *testing.T) {
	l := NewLedger()
	l.ToggleAllOnPage(pageIDs(1, 5))
	l.ToggleRow(3)

	l.ResetSelections()

	assert.Equal(t, 0, l.EffectiveCount())
	assert.Equal(t, Snapshot{Included: []int{}, Excluded: []int{}}, l.Snapshot())
	assert.False(t, l.IsSelected(1))
}

func TestOrderedSet_CompactKeepsOrder(t *testing.T) {
	s := newOrderedSet()
	for id := 1; id <= 100; id++ {
		s.Add(id)
	}
	for id := 1; id <= 90; id++ {
		s.Remove(id)
	}
	s.Add(5)
	s.Add(95) // already present, keeps its slot

	assert.Equal(t, []int{91, 92, 93, 94, 95, 96, 97, 98, 99, 100, 5}, s.IDs())
	assert.Equal(t, 11, s.Len())
	assert.LessOrEqual(t, len(s.order), compactFactor*s.Len()+compactFactor+1)
}

func TestHeaderState_String(t *testing.T) {
	assert.Equal(t, "none", HeaderNone.String())
	assert.Equal(t, "some", HeaderSome.String())
	assert.Equal(t, "all", HeaderAll.String())
}
