//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	demoPkg = "./cmd/nframe"
)

var Default = Build.Demo

type Build mg.Namespace

// Demo builds the nframe demo into bin/
func (Build) Demo() error {

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	out := filepath.Join(binDir, "nframe")
	fmt.Println("Building", out)
	return sh.RunV("go", "build", "-o", out, demoPkg)
}

type Test mg.Namespace

// Unit runs every test. None of them need a GPU.
func (Test) Unit() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs the tests with the race detector, which covers the shader watcher goroutine
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./shaders/...", "./buffers/...", "./picking/...")
}

type Run mg.Namespace

// Demo builds and starts the demo with debug logging
func (Run) Demo() error {

	mg.Deps(Build.Demo)
	return sh.RunV(filepath.Join(binDir, "nframe"), "-v")
}

// Vet runs go vet over the module
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}
