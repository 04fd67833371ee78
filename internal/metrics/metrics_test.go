// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExport_Records(t *testing.T) {
	t.Parallel()

	e := New()
	e.Object(3)
	e.Object(1)
	e.Samples(4800)
	e.Finished(ResultOK, 2*time.Second, 2, 1, 3)
	e.Finished(ResultEmpty, time.Millisecond, 0, 0, 0)

	if got := testutil.ToFloat64(e.exports.WithLabelValues(ResultOK)); got != 1 {
		t.Errorf("ok exports = %v, want 1", got)
	}
	if got := testutil.ToFloat64(e.objects); got != 0 {
		t.Errorf("objects = %v, want 0 after an empty export", got)
	}
	if got := testutil.ToFloat64(e.skipped); got != 3 {
		t.Errorf("skipped = %v, want 3", got)
	}
	if got := testutil.ToFloat64(e.renders); got != 2 {
		t.Errorf("renders = %v, want 2", got)
	}
	if got := testutil.ToFloat64(e.samples); got != 4800 {
		t.Errorf("samples = %v, want 4800", got)
	}

	n, err := testutil.GatherAndCount(e.Registry())
	if err != nil {
		t.Fatal(err)
	}
	if n != 9 {
		t.Errorf("gathered %d series, want 9", n)
	}
}

func TestExport_Nil(t *testing.T) {
	t.Parallel()

	var e *Export
	e.Object(1)
	e.Samples(1)
	e.Finished(ResultFailed, time.Second, 0, 0, 0)
	if err := e.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Fatal(err)
	}
}

func TestExport_WriteTextfile(t *testing.T) {
	t.Parallel()

	e := New()
	e.Finished(ResultFailed, time.Second, 0, 0, 0)

	path := filepath.Join(t.TempDir(), "soundobjects.prom")
	if err := e.WriteTextfile(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `soundobjects_exports_total{result="failed"} 1`) {
		t.Errorf("textfile lacks the failed export:\n%s", data)
	}
}
