// Go to a pdb website and download coordinates, unless we already
// have them.
// The files are saved exactly as they came, so a later run finds them
// on disk. Gzipped sites are fine, since the file reader looks for
// compression itself.

package pdb

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/andrew-torda/rama/pkg/pdb/cmmn"
)

// Sites for structures. Pick one with the site number in NewFetcher.
var sites = []struct {
	urlBase string
	ext     string
}{
	{"https://files.rcsb.org/download", "pdb"},
	{"https://files.rcsb.org/download", "pdb.gz"},
}

// NSite is the number of sites we know about.
var NSite = len(sites)

// NotFoundError is what we get when there is no local file and the
// server does not give us one.
type NotFoundError struct {
	ID     string
	URL    string
	Status string
}

func (e *NotFoundError) Error() string {
	return "Wanted " + e.ID + " using " + e.URL + ", got " + e.Status
}

// ErrBadID is for identifiers we will not put into a URL.
var ErrBadID = errors.New("not a plausible accession code")

var idOK = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Fetcher knows where to look for a structure on the web.
// If Client is nil, http.DefaultClient is used. If Log is nil, nothing
// is logged.
type Fetcher struct {
	BaseURL string
	Ext     string
	Client  *http.Client
	Log     *log.Logger
}

// NewFetcher sets up a fetcher for one of the sites. If siteNum is too
// big, we wrap around rather than complain.
func NewFetcher(siteNum int) *Fetcher {
	if siteNum < 0 {
		siteNum = -siteNum
	}
	s := sites[siteNum%len(sites)]
	return &Fetcher{BaseURL: s.urlBase, Ext: s.ext}
}

func (f *Fetcher) logf(format string, v ...any) {
	if f.Log != nil {
		f.Log.Printf(format, v...)
	}
}

// URL is where we would find id.
func (f *Fetcher) URL(id string) string {
	return strings.TrimRight(f.BaseURL, "/") + "/" + id + "." + f.Ext
}

// SplitID takes a file name or accession code and returns the directory
// part and the identifier, with any extensions removed. "a/1abc.pdb.gz"
// gives "a" and "1abc".
func SplitID(arg string) (dir, id string) {
	dir, id = filepath.Split(arg)
	if i := strings.IndexByte(id, '.'); i != -1 {
		id = id[:i]
	}
	return filepath.Clean(dir), id
}

// Fetch downloads id and writes it to dst. Nothing is written unless the
// whole body arrives.
func (f *Fetcher) Fetch(id, dst string) error {
	if !idOK.MatchString(id) {
		return fmt.Errorf("%q: %w", id, ErrBadID)
	}
	url := f.URL(id)
	f.logf("fetching %s to %s", url, dst)
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &NotFoundError{ID: id, URL: url, Status: resp.Status}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".part*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // fails harmlessly after the rename
	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("reading %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return err
	}
	f.logf("wrote %d bytes to %s", n, dst)
	return nil
}

// isFile says if fname is there and is not a directory.
func isFile(fname string) bool {
	fi, err := os.Stat(fname)
	return err == nil && !fi.IsDir()
}

// Resolve turns a command line argument into a file we can read.
// If arg names a file, that is it. Next, we look for <id>.<ext> next to
// where arg points, which is where earlier downloads were saved.
// Last, we download it to that name. src says where the file came from.
func (f *Fetcher) Resolve(arg string) (fname, id string, src byte, err error) {
	dir, id := SplitID(arg)
	if id == "" {
		return "", "", cmmn.FileSrc, fmt.Errorf("%q: %w", arg, ErrBadID)
	}
	if isFile(arg) {
		return arg, id, cmmn.FileSrc, nil
	}
	fname = filepath.Join(dir, id+"."+f.Ext)
	if isFile(fname) {
		f.logf("using cached %s", fname)
		return fname, id, cmmn.FileSrc, nil
	}
	if err := f.Fetch(id, fname); err != nil {
		return "", id, cmmn.HTTPSrc, err
	}
	return fname, id, cmmn.HTTPSrc, nil
}
