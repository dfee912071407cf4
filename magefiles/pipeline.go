//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// run executes the built CLI binary with the given arguments.
func run(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Extract runs outline extraction over input/, writing JSON outlines to output/.
func Extract() error {
	mg.Deps(Build)
	fmt.Println("[extract] Extracting outlines from input/ into output/.")
	return run("extract", "--input-dir", "input", "--output-dir", "output")
}

// Index ingests outlines and section bodies from input/ into the SQLite index.
func Index() error {
	mg.Deps(Build)
	fmt.Println("[index] Indexing sections from input/ into index/outline.db.")
	return run("index", "--input-dir", "input", "--index-dir", "index")
}
