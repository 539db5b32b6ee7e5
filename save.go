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

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Save writes a binary snapshot of the result to w, suitable for
// reloading with LoadResult.
func (r *Result) Save(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("diffreact: saving result: %w", err)
	}
	return nil
}

// LoadResult reads a result snapshot previously written with Save.
func LoadResult(r io.Reader) (*Result, error) {
	var res Result
	if err := gob.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("diffreact: loading result: %w", err)
	}
	return &res, nil
}

// Save writes a binary snapshot of the sweep result to w.
func (s *SweepResult) Save(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("diffreact: saving sweep result: %w", err)
	}
	return nil
}

// LoadSweepResult reads a sweep snapshot previously written with Save.
func LoadSweepResult(r io.Reader) (*SweepResult, error) {
	var res SweepResult
	if err := gob.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("diffreact: loading sweep result: %w", err)
	}
	return &res, nil
}
