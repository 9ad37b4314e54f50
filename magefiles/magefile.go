//go:build mage

// Package main provides build targets for tempo-recipe using Mage.
//
// Usage:
//
//	mage build      Compile tempo-recipe to bin/
//	mage test       Run all tests
//	mage testShort  Run tests that need no cmake toolchain
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install tempo-recipe to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "tempo-recipe"
	binaryDir  = "bin"
	cmdDir     = "./cmd/tempo-recipe"
)

// Build compiles the tempo-recipe binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestShort runs the tests that need neither cmake nor a C compiler.
func TestShort() error {
	return sh.RunV("go", "test", "-short", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}

// Install installs tempo-recipe to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.RunV("go", "install", cmdDir)
}
