package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/bisurvey/internal/views"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

const header = "PREG1,PREG2,PREG3,PREG4,PREG5\n"

const sample = header +
	"Power BI,4,5,Si,2\n" +
	"Excel,2,3,No,4\n" +
	"Power BI,5,4,Si,1\n"

// env is an isolated configuration and data location for one test.
type env struct {
	configDir string
	dataFile  string
}

func newEnv(t *testing.T, content string) env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BISURVEY_CONFIG_DIR", "")
	t.Setenv("BISURVEY_DATA_FILE", "")
	t.Setenv("BISURVEY_LOGO", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	e := env{
		configDir: filepath.Join(dir, "config"),
		dataFile:  filepath.Join(dir, "encuesta.csv"),
	}
	if content != "" {
		require.NoError(t, os.WriteFile(e.dataFile, []byte(content), 0o644))
	}
	return e
}

// runSurvey executes the CLI in-process with the env's directories.
func (e env) runSurvey(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	full := append([]string{"--config-dir", e.configDir, "--data-file", e.dataFile}, args...)
	code = run(root, full, &errOut)
	return out.String(), errOut.String(), code
}

func (e env) data(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(e.dataFile)
	require.NoError(t, err)
	return string(b)
}

func TestVersion(t *testing.T) {
	e := newEnv(t, "")
	out, _, code := e.runSurvey(t, "version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "survey v"+Version)
	assert.Contains(t, out, modulePath)
}

func TestInit(t *testing.T) {
	e := newEnv(t, "")

	_, stderr, code := e.runSurvey(t, "init")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, header, e.data(t))
	cfg, err := os.ReadFile(filepath.Join(e.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "127.0.0.1:8501")

	// A second init keeps existing data.
	require.NoError(t, os.WriteFile(e.dataFile, []byte(sample), 0o644))
	_, _, code = e.runSurvey(t, "init")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, sample, e.data(t))
}

func TestSubmit(t *testing.T) {
	e := newEnv(t, "")

	out, stderr, code := e.runSurvey(t, "submit", "--tool", "power bi", "--frequency", "4",
		"--quality", "5", "--improved", "sí", "--difficulty", "2")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, Saved)
	assert.Equal(t, header+"Power BI,4,5,Si,2\n", e.data(t))

	_, _, code = e.runSurvey(t, "submit", "--tool", "Excel")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, header+"Power BI,4,5,Si,2\nExcel,3,3,Si,1\n", e.data(t))
}

func TestSubmit_UserErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing tool", []string{"submit"}},
		{"unknown tool", []string{"submit", "--tool", "Looker"}},
		{"score out of range", []string{"submit", "--tool", "Excel", "--quality", "0"}},
		{"bad answer", []string{"submit", "--tool", "Excel", "--improved", "quizas"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, "")
			_, stderr, code := e.runSurvey(t, tt.args...)
			assert.Equal(t, exitUserError, code)
			assert.NotEmpty(t, stderr)
			_, err := os.Stat(e.dataFile)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestSubmit_WriteFailureIsSystemError(t *testing.T) {
	e := newEnv(t, "")
	blocker := filepath.Join(filepath.Dir(e.dataFile), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	e.dataFile = filepath.Join(blocker, "encuesta.csv")

	_, _, code := e.runSurvey(t, "submit", "--tool", "Excel")
	assert.Equal(t, exitSysError, code)
}

func TestSubmit_ForeignFileIsUserError(t *testing.T) {
	const foreign = "A,B\n1,2\n"
	e := newEnv(t, foreign)

	_, _, code := e.runSurvey(t, "submit", "--tool", "Excel")
	assert.Equal(t, exitUserError, code)
	data, err := os.ReadFile(e.dataFile)
	require.NoError(t, err)
	assert.Equal(t, foreign, string(data))
}

func TestList(t *testing.T) {
	e := newEnv(t, "")
	out, _, code := e.runSurvey(t, "list")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, views.NoResponses)

	e = newEnv(t, sample)
	out, _, code = e.runSurvey(t, "list")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "PREG1")
	assert.Contains(t, out, "Excel")

	out, _, code = e.runSurvey(t, "list", "--json")
	require.Equal(t, exitSuccess, code)
	var ds types.Dataset
	require.NoError(t, json.Unmarshal([]byte(out), &ds))
	assert.Len(t, ds, 3)

	out, _, code = e.runSurvey(t, "list", "-o", "yaml")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "PREG1: Power BI")

	out, _, code = e.runSurvey(t, "list", "--csv")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, sample, out)
}

func TestList_UnknownFormat(t *testing.T) {
	e := newEnv(t, sample)
	_, _, code := e.runSurvey(t, "list", "-o", "xml")
	assert.Equal(t, exitUserError, code)
}

func TestList_SchemaMismatch(t *testing.T) {
	e := newEnv(t, "A,B\n1,2\n")
	_, stderr, code := e.runSurvey(t, "list")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "schema")
}

func TestConfigFile_DataFile(t *testing.T) {
	e := newEnv(t, sample)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"),
		[]byte("data_file: "+e.dataFile+"\n"), 0o644))

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	code := run(root, []string{"--config-dir", e.configDir, "list", "--csv"}, &errOut)
	require.Equal(t, exitSuccess, code, errOut.String())
	assert.Equal(t, sample, out.String())
}

func TestConfigFile_InvalidLogLevel(t *testing.T) {
	e := newEnv(t, sample)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"),
		[]byte("log_level: loud\n"), 0o644))

	_, _, code := e.runSurvey(t, "list")
	assert.Equal(t, exitUserError, code)
}

func TestEdit(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		e := newEnv(t, sample)
		out, stderr, code := e.runSurvey(t, "edit", "set", "1", "PREG3", "5")
		require.Equal(t, exitSuccess, code, stderr)
		assert.Contains(t, out, ChangesSaved)
		assert.Equal(t, header+"Power BI,4,5,Si,2\nExcel,2,5,No,4\nPower BI,5,4,Si,1\n", e.data(t))
	})
	t.Run("set by position", func(t *testing.T) {
		e := newEnv(t, sample)
		_, _, code := e.runSurvey(t, "edit", "set", "0", "1", "Qlik")
		require.Equal(t, exitSuccess, code)
		assert.True(t, strings.HasPrefix(strings.TrimPrefix(e.data(t), header), "Qlik,4,5,Si,2\n"))
	})
	t.Run("add at position", func(t *testing.T) {
		e := newEnv(t, sample)
		_, _, code := e.runSurvey(t, "edit", "add", "Otros", "1", "1", "No", "1", "--at", "0")
		require.Equal(t, exitSuccess, code)
		assert.True(t, strings.HasPrefix(strings.TrimPrefix(e.data(t), header), "Otros,1,1,No,1\n"))
	})
	t.Run("delete", func(t *testing.T) {
		e := newEnv(t, sample)
		_, _, code := e.runSurvey(t, "edit", "delete", "0")
		require.Equal(t, exitSuccess, code)
		assert.Equal(t, header+"Excel,2,3,No,4\nPower BI,5,4,Si,1\n", e.data(t))
	})
	t.Run("clear requires confirmation", func(t *testing.T) {
		e := newEnv(t, sample)
		_, _, code := e.runSurvey(t, "edit", "clear")
		assert.Equal(t, exitUserError, code)
		assert.Equal(t, sample, e.data(t))

		_, _, code = e.runSurvey(t, "edit", "clear", "--yes")
		require.Equal(t, exitSuccess, code)
		assert.Equal(t, header, e.data(t))
	})
	t.Run("import", func(t *testing.T) {
		e := newEnv(t, sample)
		src := filepath.Join(t.TempDir(), "otro.csv")
		require.NoError(t, os.WriteFile(src, []byte("PREG5,PREG4,PREG3,PREG2,PREG1\n3,No,2,1,Tableau\n"), 0o644))
		_, stderr, code := e.runSurvey(t, "edit", "import", src)
		require.Equal(t, exitSuccess, code, stderr)
		assert.Equal(t, header+"Tableau,1,2,No,3\n", e.data(t))
	})
}

func TestEdit_ErrorsLeaveFileUntouched(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"row out of range", []string{"edit", "set", "7", "PREG1", "Excel"}},
		{"row not a number", []string{"edit", "delete", "first"}},
		{"unknown field", []string{"edit", "set", "0", "PREG9", "1"}},
		{"invalid value", []string{"edit", "set", "0", "PREG2", "6"}},
		{"invalid new row", []string{"edit", "add", "Excel", "1", "1", "Maybe", "1"}},
		{"missing import", []string{"edit", "import", "/does/not/exist.csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, sample)
			_, _, code := e.runSurvey(t, tt.args...)
			assert.Equal(t, exitUserError, code)
			assert.Equal(t, sample, e.data(t))
		})
	}
}

func TestStats(t *testing.T) {
	e := newEnv(t, "")
	out, _, code := e.runSurvey(t, "stats")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, views.NoResponses)

	out, _, code = e.runSurvey(t, "stats", "PREG2", "--json")
	require.Equal(t, exitSuccess, code)
	var empty views.QuestionStats
	require.NoError(t, json.Unmarshal([]byte(out), &empty))
	assert.True(t, empty.Empty)
	assert.Equal(t, "PREG2", empty.Field)

	e = newEnv(t, sample)
	out, stderr, code := e.runSurvey(t, "stats")
	require.Equal(t, exitSuccess, code, stderr)
	for _, f := range types.Fields {
		assert.Contains(t, out, f.Question())
	}

	out, _, code = e.runSurvey(t, "stats", "PREG3", "--json")
	require.Equal(t, exitSuccess, code)
	var q views.QuestionStats
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Len(t, q.Buckets, views.HistogramBuckets)

	_, _, code = e.runSurvey(t, "stats", "PREG9")
	assert.Equal(t, exitUserError, code)
}

func TestAnalysis(t *testing.T) {
	e := newEnv(t, "")
	out, _, code := e.runSurvey(t, "analysis")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, views.NoAnalysis)

	e = newEnv(t, sample)
	out, stderr, code := e.runSurvey(t, "analysis")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, "Power BI")
	assert.Contains(t, out, "Total")

	out, _, code = e.runSurvey(t, "analysis", "-o", "json")
	require.Equal(t, exitSuccess, code)
	var v views.AnalisisView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Len(t, v.Points, 3)
}

func TestExport(t *testing.T) {
	e := newEnv(t, sample)
	db := filepath.Join(t.TempDir(), "out", "encuesta.db")

	out, stderr, code := e.runSurvey(t, "export", "--sqlite", db)
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, "3 respuestas")
	info, err := os.Stat(db)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWatch_RejectsFormView(t *testing.T) {
	e := newEnv(t, sample)
	_, _, code := e.runSurvey(t, "watch", "--view", "Encuesta")
	assert.Equal(t, exitUserError, code)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitSysError, exitCode(sysError(os.ErrPermission)))
	assert.Equal(t, exitUserError, exitCode(userError(os.ErrNotExist)))
	assert.Equal(t, exitUserError, exitCode(assert.AnError))
}
