/*
Copyright © 2026 the DiffReact authors.
This file is part of DiffReact.

DiffReact is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

DiffReact is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with DiffReact.  If not, see <http://www.gnu.org/licenses/>.
*/

package diffreact

import "math"

// tridiagonal solves tridiagonal linear systems with the Thomas algorithm:
// forward elimination followed by back substitution, O(N) time. The
// scratch vectors are reused across solves so stepping does not allocate.
type tridiagonal struct {
	cp, dp   []float64
	pivotTol float64
}

func newTridiagonal(n int, pivotTol float64) *tridiagonal {
	return &tridiagonal{
		cp:       make([]float64, n),
		dp:       make([]float64, n),
		pivotTol: pivotTol,
	}
}

// solve computes x such that a[i]·x[i−1] + b[i]·x[i] + c[i]·x[i+1] = d[i].
// a[0] and c[n−1] are ignored. x and d may not alias. A pivot magnitude
// below pivotTol aborts with a SingularMatrixError instead of returning a
// degenerate solution.
func (m *tridiagonal) solve(a, b, c, d, x []float64) error {
	n := len(b)
	if math.Abs(b[0]) < m.pivotTol {
		return &SingularMatrixError{Row: 0}
	}
	m.cp[0] = c[0] / b[0]
	m.dp[0] = d[0] / b[0]

	for i := 1; i < n; i++ {
		denom := b[i] - a[i]*m.cp[i-1]
		if math.Abs(denom) < m.pivotTol {
			return &SingularMatrixError{Row: i}
		}
		if i < n-1 {
			m.cp[i] = c[i] / denom
		} else {
			m.cp[i] = 0
		}
		m.dp[i] = (d[i] - a[i]*m.dp[i-1]) / denom
	}

	x[n-1] = m.dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = m.dp[i] - m.cp[i]*x[i+1]
	}
	return nil
}
