package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linker268/Swimmer-plot/pkg/pipeline"
)

func newTestServer(t *testing.T) *previewServer {
	t.Helper()

	csv := "Patient_ID,Cohort,C1D1,Resp_date1,Response1\np1,A,2023-01-01,2023-04-01,PR\np2,B,2023-02-01,2023-03-01,SD\n"
	path := filepath.Join(t.TempDir(), "trial.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	return &previewServer{
		runner: pipeline.NewRunner(nil, nil, newLogger(io.Discard, LogInfo)),
		input:  path,
		style:  pipeline.DefaultStyle,
		logger: newLogger(io.Discard, LogInfo),
	}
}

func TestServePlotSVG(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/plot.svg?group=1&grid=0&barh=999")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<svg") {
		t.Error("response should be an SVG document")
	}
	// barh=999 is clamped, not rejected.
	if !strings.Contains(string(body), `height="32.00"`) {
		t.Error("oversized bar height should clamp to the maximum")
	}
}

func TestServeBadSortIs400(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/plot.svg?sort=alphabetical")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServeHealthz(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestServeIndex(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "/plot.svg") {
		t.Error("index page should embed the plot")
	}
}
