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

import "fmt"

// ValidationError reports input that cannot describe a valid simulation.
// It is always returned before any computation starts and is never retried.
type ValidationError struct {
	Field  string // the offending input
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("diffreact: %s %s", e.Field, e.Reason)
}

// SingularMatrixError is returned by the tridiagonal solver when forward
// elimination produces a pivot with magnitude below the configured
// tolerance. The integrator recovers from it by halving the time step.
type SingularMatrixError struct {
	Row int
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("diffreact: singular pivot at row %d", e.Row)
}

// NumericalError is returned when step-halving retries are exhausted
// without a successful solve. It preserves the last attempted step and the
// iteration it failed on so callers can present an actionable message.
type NumericalError struct {
	Step      float64 // last attempted time step [s]
	Iteration int     // time-step index the failure occurred on

	// TempIndex and Temperature identify the sweep member the failure
	// belongs to. TempIndex is -1 for single runs.
	TempIndex   int
	Temperature float64

	Err error // the underlying solver failure
}

func (e *NumericalError) Error() string {
	if e.TempIndex >= 0 {
		return fmt.Sprintf("diffreact: integration failed at iteration %d with Δt=%g s (temperature %g K): %v",
			e.Iteration, e.Step, e.Temperature, e.Err)
	}
	return fmt.Sprintf("diffreact: integration failed at iteration %d with Δt=%g s: %v",
		e.Iteration, e.Step, e.Err)
}

func (e *NumericalError) Unwrap() error { return e.Err }
