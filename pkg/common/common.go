// 12 Oct 2026

package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	return WrtTempExt(s, "")
}

// WrtTempExt is WrtTemp, but the file name ends with ext, so that
// code which looks at suffixes (.pdb, .gz) can be tested.
func WrtTempExt(s, ext string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing*"+ext)
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}

	if _, err := io.WriteString(f_tmp, s); err != nil {
		f_tmp.Close()
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}
