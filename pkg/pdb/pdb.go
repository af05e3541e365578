// This is the upper level for reading structure files.
// Decide if a file is compressed or not and if it is in a format we
// can read. Then map it and hand it to the parser.

package pdb

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/rama/pkg/pdb/zwrap"
	"github.com/edsrzf/mmap-go"
)

const (
	oldFmt byte = iota
	mmcifFmt
	unkFmt
)

// ErrMmcif is returned for files in mmcif format. Only old style pdb
// files are read.
var ErrMmcif = errors.New("mmcif format is not read, give a pdb format file")

// a fakecloser turns a reader over mapped memory into something
// zwrap will take. Unmapping is done by whoever did the mapping.
type fakecloser struct {
	io.ReadSeeker
}

func (fakecloser) Close() error { return nil }

// comparefirst says if line s starts with the word t. A line shorter
// than the word cannot match.
func comparefirst(s, t string) bool {
	return len(t) > 0 && len(s) >= len(t) && s[:len(t)] == t
}

// lookInText guesses from the first lines of a file if it is in old
// pdb format or in mmcif.
func lookInText(head []byte) byte {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "HETATM", "ATOM", "MODEL"}
	mmcifWords := []string{"data_", "_entry.id", "loop_"}
	const maxTestLines = 5000
	scnnr := bufio.NewScanner(bytes.NewReader(head))
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		if s == "" {
			continue
		}
		for _, w := range mmcifWords {
			if comparefirst(s, w) {
				return mmcifFmt
			}
		}
		for _, w := range pdbWords {
			if comparefirst(s, w) {
				return oldFmt
			}
		}
	}
	return unkFmt
}

// oldOrMmcif decides from the file name. A trailing .gz is dropped
// first, so a.pdb.gz counts as .pdb. Only the last extension is looked
// at, so dots earlier in the name do not matter.
func oldOrMmcif(fname string) byte {
	s := strings.ToLower(filepath.Base(fname))
	s = strings.TrimSuffix(s, ".gz")
	switch strings.TrimPrefix(filepath.Ext(s), ".") {
	case "cif", "mmcif":
		return mmcifFmt
	case "pdb", "ent":
		return oldFmt
	}
	return unkFmt
}

// ReadFile takes a file name, maps the file, decompresses it if it is
// gzipped and returns the phi and psi groups. If the name does not
// tell us the format, we peek at the contents.
func ReadFile(fname string, opts *Options) (*Groups, error) {
	typ := oldOrMmcif(fname)
	if typ == mmcifFmt {
		return nil, ErrMmcif
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, errors.New(fname + " is a directory")
	}
	if fi.Size() == 0 { // nothing to map
		if typ == unkFmt {
			return nil, errors.New(fname + ": cannot recognise format")
		}
		return new(Groups), nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer mm.Unmap()

	rdr, err := zwrap.WrapMaybe(fakecloser{bytes.NewReader(mm)})
	if err != nil {
		return nil, errors.New("reading " + fname + " " + err.Error())
	}
	defer rdr.Close()

	const peekSize = 16 * 1024
	brdr := bufio.NewReaderSize(rdr, peekSize)
	if typ == unkFmt {
		head, _ := brdr.Peek(peekSize) // short files give a short head
		switch lookInText(head) {
		case mmcifFmt:
			return nil, ErrMmcif
		case unkFmt:
			return nil, errors.New(fname + ": cannot recognise format")
		}
	}
	return Parse(brdr, opts)
}
