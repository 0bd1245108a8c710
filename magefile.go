//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

// Build builds the dataquality binary into bin/
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/dataquality", "./cmd/dataquality")
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs gofmt and go vet
func Lint() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("gofmt needed on:\n%s", out)
	}
	return sh.RunV("go", "vet", "./...")
}

// QA runs lint and tests
func QA() {
	mg.SerialDeps(Lint, Test)
}

// Check runs the quality checks with the sample configuration
func Check() error {
	mg.Deps(Build)
	return sh.RunV("bin/dataquality", "check", "--config", "examples/config.yaml")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}
