//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const (
	imageName  = "bisurvey"
	dockerfile = "magefiles/Dockerfile"
	imagePort  = "8501"
)

// runtimes lists container CLIs in order of preference.
var runtimes = []string{"podman", "docker"}

// Image namespaces the container image targets.
type Image mg.Namespace

// containerRuntime returns the first runtime on PATH whose daemon answers
// `info`.
func containerRuntime() (string, error) {
	for _, name := range runtimes {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		if err := exec.Command(name, "info").Run(); err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", name, err)
			continue
		}
		return name, nil
	}
	return "", errors.New("no usable container runtime (tried podman, docker)")
}

// imageRef tags the image with SURVEY_VERSION, or latest when unset.
func imageRef() string {
	tag := os.Getenv("SURVEY_VERSION")
	if tag == "" {
		tag = "latest"
	}
	return imageName + ":" + tag
}

func runContainer(args ...string) error {
	rt, err := containerRuntime()
	if err != nil {
		return err
	}
	cmd := exec.Command(rt, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Build builds the survey image with the repo root as context.
func (Image) Build() error {
	fmt.Fprintln(os.Stderr, "building", imageRef())
	return runContainer("build", "-t", imageRef(), "-f", dockerfile, ".")
}

// Run starts the image with the working directory mounted as /data, so the
// container reads and writes the local survey CSV.
func (Image) Run() error {
	mg.Deps(Image.Build)
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	return runContainer("run", "--rm",
		"-p", imagePort+":"+imagePort,
		"-v", filepath.Clean(cwd)+":/data",
		imageRef())
}
