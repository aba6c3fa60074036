// Package tests provides the external test suites used by snestor tests,
// downloading them on first use.
package tests

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

// EnvSingleStep enables the single step processor tests when set to a
// non-empty value. The suite is large (hundreds of MB), it's downloaded on
// first use only.
const EnvSingleStep = "SNESTOR_SINGLESTEP"

// SingleStepFiles returns the file names of the single step tests, one per
// opcode and per mode ('e' for emulation, 'n' for native).
func SingleStepFiles() []string {
	names := make([]string, 0, 512)
	for opcode := 0; opcode < 256; opcode++ {
		for _, mode := range []string{"e", "n"} {
			names = append(names, fmt.Sprintf("%02x.%s.json", opcode, mode))
		}
	}
	return names
}

func download(url, dest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return nil
}

// download all 512 65816 single step test files into dest dir.
func downloadSingleStepTests(tb testing.TB, dest string) {
	const urlfmt = `https://raw.githubusercontent.com/SingleStepTests/65816/main/v1/%s`

	tempdir, err := os.MkdirTemp("", "65816.singlestep.tests.*")
	if err != nil {
		tb.Fatal(err)
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, name := range SingleStepFiles() {
		name := name
		url := fmt.Sprintf(urlfmt, name)
		g.Go(func() error {
			if err := download(url, filepath.Join(tempdir, name)); err != nil {
				return err
			}
			tb.Log("downloaded", url)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		os.RemoveAll(tempdir)
		tb.Fatalf("failed to download all files: %s", err)
	}

	if err := os.Rename(tempdir, dest); err != nil {
		tb.Fatal(err)
	}

	tb.Log("renaming", tempdir, "to", dest)
}

var downloadOnce sync.Once

// SingleStepTestsPath returns the directory holding the single step tests,
// downloading them if needed. The test is skipped unless EnvSingleStep is
// set.
func SingleStepTestsPath(tb testing.TB) string {
	tb.Helper()
	if os.Getenv(EnvSingleStep) == "" {
		tb.Skipf("single step tests disabled, set %s=1 to enable them", EnvSingleStep)
	}

	_, b, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(b), "65816.singlestep.tests")

	downloadOnce.Do(func() {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			tb.Log("65816 single step tests directory not found, downloading it...")
			downloadSingleStepTests(tb, dir)
			tb.Log("single step tests downloaded in", dir)
		}
	})
	return dir
}
