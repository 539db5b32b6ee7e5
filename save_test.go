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
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestSaveLoadResult(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalTime = 0.01
	res, err := Run(DefaultLayers(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := res.Save(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := LoadResult(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, res) {
		t.Error("loaded result differs from the saved one")
	}
}

func TestSaveLoadSweepResult(t *testing.T) {
	sw, err := RunSweep(arrheniusStack(), sweepConfig())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := sw.Save(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSweepResult(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Temperatures, sw.Temperatures) {
		t.Errorf("temperatures: got %v, want %v", got.Temperatures, sw.Temperatures)
	}
	if len(got.Runs) != len(sw.Runs) {
		t.Fatalf("run count: got %d, want %d", len(got.Runs), len(sw.Runs))
	}
	for i := range sw.Runs {
		if !reflect.DeepEqual(got.Runs[i], sw.Runs[i]) {
			t.Errorf("member %d differs after reload", i)
		}
	}
}

func TestLoadResultGarbage(t *testing.T) {
	_, err := LoadResult(strings.NewReader("not a snapshot"))
	if err == nil {
		t.Fatal("expected an error loading garbage")
	}
	if !strings.Contains(err.Error(), "diffreact: loading result") {
		t.Errorf("error %q lacks context", err)
	}
}
