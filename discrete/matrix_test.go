package discrete_test

import (
	"fmt"
	"testing"

	"github.com/db47h/nexus/discrete"
	"github.com/stretchr/testify/assert"
)

func TestMatrix_AddRows(t *testing.T) {
	m := discrete.New(2, 3)
	m.SetState(1, 2, 5)
	m.AddRows(3)
	assert.Equal(t, 5, m.Rows())
	assert.Equal(t, 3, m.Cols())
	s, err := m.State(1, 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, 5, s)
	assert.True(t, m.IsMissing(4, 2))
}

func TestMatrix_DuplicateRow(t *testing.T) {
	for _, r := range []int{0, 2, 5} {
		t.Run(fmt.Sprint(r), func(t *testing.T) {
			const cols = 4
			m := discrete.New(r+1, cols)
			m.SetState(r, 0, 1)
			m.SetGap(r, 1)
			m.AddState(r, 2, 0)
			m.AddState(r, 2, 1)
			m.SetPolymorphic(r, 2, true)

			added := m.DuplicateRow(r, 5, 0, cols-1)
			assert.Equal(t, 4, added)
			assert.GreaterOrEqual(t, m.Rows(), r+5)
			for i := r + 1; i < r+5; i++ {
				for j := 0; j < cols; j++ {
					assert.Equal(t, *m.Datum(r, j), *m.Datum(i, j), "row %d col %d", i, j)
				}
			}
		})
	}
}

func TestMatrix_DuplicateRowRange(t *testing.T) {
	m := discrete.New(4, 4)
	for j := 0; j < 4; j++ {
		m.SetState(0, j, j)
	}
	added := m.DuplicateRow(0, 3, 1, 2)
	assert.Equal(t, 0, added)
	assert.Equal(t, 4, m.Rows())
	for i := 1; i < 3; i++ {
		assert.True(t, m.IsMissing(i, 0))
		assert.True(t, m.IsMissing(i, 3))
		s, _ := m.State(i, 2, 0)
		assert.Equal(t, 2, s)
	}
	assert.True(t, m.IsMissing(3, 1))
}

func TestMatrix_CopyStatesFromFirstTaxon(t *testing.T) {
	m := discrete.New(2, 1)
	m.AddState(0, 0, 2)
	m.AddState(0, 0, 3)
	m.CopyStatesFromFirstTaxon(1, 0)
	assert.Equal(t, []int{2, 3}, m.Datum(1, 0).States())
	m.SetState(0, 0, 0)
	assert.Equal(t, 2, m.NumStates(1, 0))
}

func TestMatrix_ObsNumStates(t *testing.T) {
	m := discrete.New(4, 2)
	m.SetState(0, 0, 1)
	m.SetState(1, 0, 1)
	m.AddState(2, 0, 0)
	m.AddState(2, 0, 2)
	m.SetGap(3, 0)
	assert.Equal(t, 3, m.ObsNumStates(0))
	assert.Equal(t, 0, m.ObsNumStates(1))
}
