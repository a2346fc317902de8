package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"spritepad/internal/domain"
	"spritepad/internal/server"
)

type fakeExports struct {
	saved   [][]byte
	saveErr error
	records []domain.ExportRecord
	frames  map[string][]domain.Frame
}

func (f *fakeExports) Save(_ context.Context, body []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, body)
	return "x.json", nil
}

func (f *fakeExports) List() ([]domain.ExportRecord, error) { return f.records, nil }

func (f *fakeExports) Frames(id string) ([]domain.Frame, error) {
	if id == "broken" {
		return nil, errors.New("decode export frames: malformed")
	}
	frames, ok := f.frames[id]
	if !ok {
		return nil, domain.ErrExportNotFound
	}
	return frames, nil
}

var assets = fstest.MapFS{
	"index.html": {Data: []byte("<html>spritepad</html>")},
	"main.js":    {Data: []byte("console.log('hi')")},
}

func newServer(exp *fakeExports) http.Handler {
	return server.New(server.Deps{Exports: exp, Assets: assets}).Handler()
}

func do(h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOutput_SavesBody(t *testing.T) {
	exp := &fakeExports{}
	body := []byte(`[[[[255,0,0]]]]`)

	rec := do(newServer(exp), http.MethodPost, "/output", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != server.MsgSaved {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if len(exp.saved) != 1 || !bytes.Equal(exp.saved[0], body) {
		t.Errorf("body not passed through: %q", exp.saved)
	}
}

func TestOutput_SaveFailure(t *testing.T) {
	exp := &fakeExports{saveErr: errors.New("disk full")}

	rec := do(newServer(exp), http.MethodPost, "/output", []byte("[]"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != server.MsgSaveError {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestStaticAndFallback(t *testing.T) {
	h := newServer(&fakeExports{})

	tests := []struct {
		path string
		want string
	}{
		{"/", "<html>spritepad</html>"},
		{"/main.js", "console.log('hi')"},
		{"/some/client/route", "<html>spritepad</html>"},
		{"/output", "<html>spritepad</html>"},
	}
	for _, tt := range tests {
		rec := do(h, http.MethodGet, tt.path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", tt.path, rec.Code)
			continue
		}
		if rec.Body.String() != tt.want {
			t.Errorf("%s: got %q", tt.path, rec.Body.String())
		}
	}
}

func TestListExports(t *testing.T) {
	exp := &fakeExports{records: []domain.ExportRecord{{ID: "a", FileName: "a.json", FrameCount: 2}}}

	rec := do(newServer(exp), http.MethodGet, "/exports", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []domain.ExportRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "a" || got[0].FrameCount != 2 {
		t.Errorf("unexpected list %+v", got)
	}
}

func TestSheet(t *testing.T) {
	red := domain.Color{R: 255}
	exp := &fakeExports{frames: map[string][]domain.Frame{
		"a": {{red, red, red, red}, {red, red, red, red}},
	}}
	h := newServer(exp)

	rec := do(h, http.MethodGet, "/exports/a/sheet.png?cell=4", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Error("body is not a PNG")
	}

	if rec := do(h, http.MethodGet, "/exports/missing/sheet.png", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/exports/broken/sheet.png", nil); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("undecodable: expected 422, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/exports/a/sheet.png?cell=500", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("oversized cell: expected 400, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/exports/a/sheet.png?cell=64&width=2000000", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("width beyond the frame: expected 400, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/exports/a/sheet.png?width=4", nil); rec.Code != http.StatusOK {
		t.Errorf("width equal to the cell count: expected 200, got %d", rec.Code)
	}
}
