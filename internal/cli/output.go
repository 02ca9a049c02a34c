package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/bisurvey/internal/render"
)

// Output formats selected with --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func (a *app) format() (string, error) {
	if a.flags.jsonMode {
		return outputJSON, nil
	}
	switch f := strings.ToLower(a.flags.output); f {
	case "", outputText:
		return outputText, nil
	case outputJSON, outputYAML:
		return f, nil
	default:
		return "", userError(fmt.Errorf("unknown output format %q (valid: text, json, yaml)", a.flags.output))
	}
}

// jsonOutput reports whether a structured format was requested.
func (a *app) jsonOutput() bool {
	f, err := a.format()
	return err == nil && f != outputText
}

// emit writes v in the structured format selected by the flags.
func (a *app) emit(cmd *cobra.Command, v any) error {
	f, err := a.format()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if f == outputYAML {
		data, err := yaml.Marshal(v)
		if err != nil {
			return sysError(fmt.Errorf("marshal yaml: %w", err))
		}
		_, err = out.Write(data)
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal json: %w", err))
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func (a *app) renderer(cmd *cobra.Command) *render.Renderer {
	return render.New(cmd.OutOrStdout())
}
