// Copyright 2017-2018 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package discrete

// Matrix is a grid of Datum with a fixed number of columns. Rows can be added
// after creation without disturbing existing data.
//
type Matrix struct {
	cols int
	data [][]Datum
}

// New returns a rows × cols matrix of missing data.
//
func New(rows, cols int) *Matrix {
	m := &Matrix{cols: cols}
	m.AddRows(rows)
	return m
}

// Rows returns the number of rows.
//
func (m *Matrix) Rows() int { return len(m.data) }

// Cols returns the number of columns.
//
func (m *Matrix) Cols() int { return m.cols }

// AddRows appends n rows of missing data.
//
func (m *Matrix) AddRows(n int) {
	for ; n > 0; n-- {
		m.data = append(m.data, make([]Datum, m.cols))
	}
}

// Datum returns the cell at row i, column j.
//
func (m *Matrix) Datum(i, j int) *Datum {
	return &m.data[i][j]
}

// DuplicateRow copies columns [startCol, endCol] of row into the next
// count-1 rows, growing the matrix first if needed. endCol < 0 means the last
// column. DuplicateRow returns the number of rows added to the matrix.
//
func (m *Matrix) DuplicateRow(row, count, startCol, endCol int) int {
	if endCol < 0 || endCol >= m.cols {
		endCol = m.cols - 1
	}
	added := 0
	if n := row + count - len(m.data); n > 0 {
		m.AddRows(n)
		added = n
	}
	src := m.data[row]
	for i := row + 1; i < row+count; i++ {
		dst := m.data[i]
		for j := startCol; j <= endCol; j++ {
			dst[j].CopyFrom(&src[j])
		}
	}
	return added
}

// CopyStatesFromFirstTaxon makes cell (i, j) a copy of cell (0, j).
//
func (m *Matrix) CopyStatesFromFirstTaxon(i, j int) {
	m.data[i][j].CopyFrom(&m.data[0][j])
}

// State returns the k-th state of cell (i, j).
//
func (m *Matrix) State(i, j, k int) (int, error) { return m.data[i][j].State(k) }

// NumStates returns the number of states of cell (i, j).
//
func (m *Matrix) NumStates(i, j int) int { return m.data[i][j].NumStates() }

func (m *Matrix) IsGap(i, j int) bool { return m.data[i][j].IsGap() }
func (m *Matrix) IsMissing(i, j int) bool { return m.data[i][j].IsMissing() }
func (m *Matrix) IsPolymorphic(i, j int) bool { return m.data[i][j].IsPolymorphic() }

func (m *Matrix) AddState(i, j, v int) { m.data[i][j].AddState(v) }
func (m *Matrix) SetState(i, j, v int) { m.data[i][j].SetState(v) }
func (m *Matrix) SetGap(i, j int) { m.data[i][j].SetGap() }
func (m *Matrix) SetMissing(i, j int) { m.data[i][j].SetMissing() }
func (m *Matrix) SetPolymorphic(i, j int, p bool) { m.data[i][j].SetPolymorphic(p) }

// ObsNumStates returns the number of distinct states observed in column j.
// Missing and gap cells do not count.
//
func (m *Matrix) ObsNumStates(j int) int {
	seen := make(map[int]struct{})
	for i := range m.data {
		d := &m.data[i][j]
		for k := 0; k < d.NumStates(); k++ {
			seen[d.states[k]] = struct{}{}
		}
	}
	return len(seen)
}
