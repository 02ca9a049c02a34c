//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Build targets for the survey project.
//
// Usage:
//
//	mage build        Compile the survey binary to bin/
//	mage test:all     Run all tests
//	mage test:race    Run all tests with the race detector
//	mage test:cover   Run tests and write coverage.out
//	mage lint         Check gofmt and run golangci-lint
//	mage fmt          List files that need gofmt
//	mage serve        Build and start the web shell
//	mage image:build  Build the container image
//	mage image:run    Run the image against the working directory
//	mage clean        Remove build artifacts
//	mage install      Install survey to GOPATH/bin
//	mage stats        Print per-package Go and template line counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "survey"
	binaryDir  = "bin"
	cmdDir     = "./cmd/survey"
	versionVar = "github.com/mesh-intelligence/bisurvey/internal/cli.Version"
)

// ldflags stamps the version from SURVEY_VERSION when it is set.
func ldflags() string {
	if v := os.Getenv("SURVEY_VERSION"); v != "" {
		return "-X " + versionVar + "=" + v
	}
	return ""
}

// Build compiles the survey binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Serve builds the binary and starts the web shell in the working directory.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName), "serve")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	_ = os.Remove("coverage.out")
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
