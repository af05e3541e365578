package pdb_test

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	. "github.com/andrew-torda/rama/pkg/pdb"
	"github.com/andrew-torda/rama/pkg/pdb/cmmn"
	"github.com/andrew-torda/rama/pkg/pdb/pdbtest"
)

// pdbServer serves body for /<id>.pdb and 404 for anything else. It
// remembers which paths were asked for.
type pdbServer struct {
	*httptest.Server
	id   string
	body string
	mu   sync.Mutex
	hits []string
}

func newPDBServer(t *testing.T, id, body string) *pdbServer {
	s := &pdbServer{id: id, body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits = append(s.hits, r.URL.Path)
		s.mu.Unlock()
		if r.URL.Path != "/"+s.id+".pdb" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(s.body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *pdbServer) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.hits...)
}

func TestSplitID(t *testing.T) {
	tests := []struct{ arg, dir, id string }{
		{"1abc", ".", "1abc"},
		{"1abc.pdb", ".", "1abc"},
		{"1abc.pdb.gz", ".", "1abc"},
		{"a/b/1abc.ent", "a/b", "1abc"},
		{"/tmp/5pti", "/tmp", "5pti"},
		{"a/", "a", ""},
	}
	for _, tt := range tests {
		dir, id := SplitID(filepath.FromSlash(tt.arg))
		if dir != filepath.FromSlash(tt.dir) || id != tt.id {
			t.Errorf("SplitID(%q) gave %q %q, want %q %q", tt.arg, dir, id, tt.dir, tt.id)
		}
	}
}

func TestNewFetcher(t *testing.T) {
	f := NewFetcher(0)
	if got := f.URL("1abc"); got != "https://files.rcsb.org/download/1abc.pdb" {
		t.Error("site 0 URL", got)
	}
	if NewFetcher(NSite).URL("x") != f.URL("x") {
		t.Error("site numbers should wrap around")
	}
	if g := NewFetcher(1); g.Ext != "pdb.gz" {
		t.Error("site 1 ext", g.Ext)
	}
}

// With no local file, we go to the server with exactly <base>/<id>.<ext>,
// save what we get verbatim and, the second time, use the saved file.
func TestResolveFetches(t *testing.T) {
	body := pdbtest.File(pdbtest.Chain("A", 4))
	srv := newPDBServer(t, "1abc", body)
	var logbuf bytes.Buffer
	f := &Fetcher{BaseURL: srv.URL + "/", Ext: "pdb", Client: srv.Client(), Log: log.New(&logbuf, "", 0)}
	dir := t.TempDir()
	arg := filepath.Join(dir, "1abc")

	fname, id, src, err := f.Resolve(arg)
	if err != nil {
		t.Fatal(err)
	}
	if id != "1abc" || src != cmmn.HTTPSrc || fname != filepath.Join(dir, "1abc.pdb") {
		t.Errorf("Resolve gave %q %q %d", fname, id, src)
	}
	if hits := srv.seen(); len(hits) != 1 || hits[0] != "/1abc.pdb" {
		t.Errorf("server saw %v", hits)
	}
	got, err := os.ReadFile(fname)
	if err != nil || string(got) != body {
		t.Error("saved file is not what was served", err)
	}
	if logbuf.Len() == 0 {
		t.Error("nothing logged")
	}
	if grps, err := ReadFile(fname, nil); err != nil || len(grps.Phi) != 3 {
		t.Error("cannot read the saved file", err)
	}

	// Now it is cached. Asking with an extension finds it too.
	for _, a := range []string{arg, arg + ".pdb", arg + ".ent"} {
		fname2, _, src, err := f.Resolve(a)
		if err != nil || src != cmmn.FileSrc || fname2 != fname {
			t.Errorf("%s: second Resolve gave %q %d %v", a, fname2, src, err)
		}
	}
	if hits := srv.seen(); len(hits) != 1 {
		t.Error("cached file was fetched again", hits)
	}
}

func TestResolveNotFound(t *testing.T) {
	srv := newPDBServer(t, "1abc", "whatever")
	f := &Fetcher{BaseURL: srv.URL, Ext: "pdb", Client: srv.Client()}
	dir := t.TempDir()
	_, _, _, err := f.Resolve(filepath.Join(dir, "9zzz"))
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
	if nf.ID != "9zzz" || nf.URL != srv.URL+"/9zzz.pdb" {
		t.Errorf("NotFoundError has %q %q", nf.ID, nf.URL)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Error("failed fetch left files behind", entries)
	}
}

func TestFetchBadID(t *testing.T) {
	f := NewFetcher(0)
	for _, id := range []string{"", "a b", "../x", "x?y"} {
		if err := f.Fetch(id, filepath.Join(t.TempDir(), "x.pdb")); !errors.Is(err, ErrBadID) {
			t.Errorf("%q: want ErrBadID, got %v", id, err)
		}
	}
	if _, _, _, err := f.Resolve("somedir/"); !errors.Is(err, ErrBadID) {
		t.Error("directory argument should be ErrBadID, got", err)
	}
}
