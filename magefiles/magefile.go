//go:build mage

// Package main contains Mage build targets for coaz-assist developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the service expects.
var projectDirs = []string{
	"data",
	".secrets",
	"bin",
}

// Init creates the project directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "coaz-assist"
	cmdPkg  = "./cmd/coaz-assist"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	return sh.RunV("go", "build", "-o", out, cmdPkg)
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Tidy synchronizes go.mod with the source imports.
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}
