//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// lintPackages are the source trees checked by Lint.
var lintPackages = []string{"./cmd/...", "./internal/...", "./pkg/..."}

// Lint checks formatting and then runs golangci-lint over the survey packages.
func Lint() error {
	mg.Deps(Fmt)
	args := append([]string{"run", "--timeout", "5m"}, lintPackages...)
	return sh.RunV(binLint, args...)
}

// Fmt fails when any Go file under the survey packages is not gofmt-clean.
func Fmt() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "magefiles")
	if err != nil {
		return err
	}
	if files := strings.TrimSpace(out); files != "" {
		return fmt.Errorf("gofmt needed:\n%s", files)
	}
	return nil
}
