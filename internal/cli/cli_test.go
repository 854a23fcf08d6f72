package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
	"github.com/blagoySimandov/cvtex/internal/pdf"
)

var fixedNow = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	dir    string
	input  string
	config string
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newTestEnv(t *testing.T, configBody string) *testEnv {
	t.Helper()
	env := &testEnv{dir: t.TempDir()}

	fixture, err := os.ReadFile(filepath.Join("testdata", "cv.yaml"))
	require.NoError(t, err)
	env.input = filepath.Join(env.dir, "cv.yaml")
	require.NoError(t, os.WriteFile(env.input, fixture, 0644))

	env.config = filepath.Join(env.dir, "cvtex.toml")
	require.NoError(t, os.WriteFile(env.config, []byte(configBody), 0644))
	return env
}

func (env *testEnv) app() *app {
	return &app{out: &env.out, errOut: &env.errOut, now: func() time.Time { return fixedNow }}
}

func (env *testEnv) run(args ...string) error {
	env.out.Reset()
	env.errOut.Reset()
	root := newRootCmd(env.app())
	root.SetArgs(append([]string{"--config", env.config}, args...))
	return root.ExecuteContext(context.Background())
}

func TestRenderWritesTexNextToInput(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.run(env.input))

	tex, err := os.ReadFile(filepath.Join(env.dir, "cv.tex"))
	require.NoError(t, err)
	out := string(tex)
	assert.Contains(t, out, `\documentclass[11pt,a4paper,sans]{moderncv}`)
	assert.Contains(t, out, `\cventry{2022--2023}{Consultant}{Initech}`)
	assert.Contains(t, out, `\cventry{2022--2023}{Cloud migration}`)
	assert.Contains(t, out, `\cvitemwithcomment{English}{C1}{}`)
	assert.Equal(t, strings.Count(out, "{"), strings.Count(out, "}"))
	assert.Contains(t, env.errOut.String(), "wrote LaTeX")
}

func TestRenderSubcommandWithOptions(t *testing.T) {
	env := newTestEnv(t, "output_dir = \"build\"\n[render]\nsection_experience = \"Work\"\n")
	outPath := filepath.Join(env.dir, "nested", "resume.tex")
	require.NoError(t, env.run("render", env.input, "--skills-section", "-o", outPath))

	tex, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(tex), `\section{Work}`)
	assert.Contains(t, string(tex), `\cvitem{CI/CD}{git (2 years), gitlab (1 year)}`)
}

func TestRenderOutputDir(t *testing.T) {
	env := newTestEnv(t, "")
	outDir := filepath.Join(env.dir, "build")
	require.NoError(t, os.WriteFile(env.config, []byte("output_dir = \""+outDir+"\"\n"), 0644))

	require.NoError(t, env.run(env.input))
	assert.FileExists(t, filepath.Join(outDir, "cv.tex"))
}

func TestRenderRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, os.WriteFile(env.input, []byte("personal data:\n  title: nobody\n"), 0644))

	err := env.run(env.input)
	require.Error(t, err)
	assert.Equal(t, ExitInputError, ExitCode(err))
	assert.Contains(t, err.Error(), "personal data.name: is required")
	assert.NoFileExists(t, filepath.Join(env.dir, "cv.tex"))
}

func TestRenderLogsDateWarnings(t *testing.T) {
	env := newTestEnv(t, "")
	content := "personal data: {name: Jo}\nexperiences:\n  - {beginning: 2020-05, end: 2019-01, title: Job}\n"
	require.NoError(t, os.WriteFile(env.input, []byte(content), 0644))

	require.NoError(t, env.run(env.input))
	assert.Contains(t, env.errOut.String(), "before beginning")
	assert.Contains(t, env.errOut.String(), "experiences[0]")
}

func TestRenderInvalidPreamble(t *testing.T) {
	env := newTestEnv(t, "")
	preamble := filepath.Join(env.dir, "preamble.tex")
	require.NoError(t, os.WriteFile(preamble, []byte("\\documentclass{moderncv}\xff"), 0644))
	require.NoError(t, os.WriteFile(env.config, []byte("preamble = \""+preamble+"\"\n"), 0644))

	err := env.run(env.input)
	require.Error(t, err)
	assert.Equal(t, ExitPreambleError, ExitCode(err))
}

func TestUsageErrors(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.run()
	assert.Equal(t, ExitUsageError, ExitCode(err))

	err = env.run("render", env.input, "--no-such-flag")
	assert.Equal(t, ExitUsageError, ExitCode(err))

	err = env.run("skills", env.input, "--format", "xml")
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestConfigErrors(t *testing.T) {
	env := newTestEnv(t, "[pdf]\nengine = \"word\"\n")
	err := env.run(env.input)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

func TestUnknownEngineFlag(t *testing.T) {
	env := newTestEnv(t, "")
	err := env.run(env.input, "--pdf", "--engine", "word")
	assert.Equal(t, ExitEngineError, ExitCode(err))
	assert.FileExists(t, filepath.Join(env.dir, "cv.tex"))
}

type fakeEngine struct {
	texPath, outDir string
	deadline        bool
	err             error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Compile(ctx context.Context, texPath, outDir string) (string, error) {
	f.texPath, f.outDir = texPath, outDir
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return "", f.err
	}
	return filepath.Join(outDir, "cv.pdf"), nil
}

func TestCompileWithEngine(t *testing.T) {
	env := newTestEnv(t, "[pdf]\ntimeout = \"5s\"\n")
	a := env.app()
	a.configPath = env.config
	require.NoError(t, a.setup(nil, nil))

	texPath := filepath.Join(env.dir, "out", "cv.tex")
	engine := &fakeEngine{}
	require.NoError(t, a.compileWith(context.Background(), engine, texPath))
	assert.Equal(t, texPath, engine.texPath)
	assert.Equal(t, filepath.Join(env.dir, "out"), engine.outDir)
	assert.True(t, engine.deadline)
	assert.Contains(t, env.errOut.String(), "wrote PDF")

	failing := &fakeEngine{err: pdf.ErrEngineNotFound}
	err := a.compileWith(context.Background(), failing, texPath)
	assert.Equal(t, ExitEngineError, ExitCode(err))
	assert.True(t, errors.Is(err, pdf.ErrEngineNotFound))
}

func TestSkillsText(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.run("skills", env.input))

	out := env.out.String()
	assert.Contains(t, out, "CI/CD")
	assert.Contains(t, out, "git     2 years")
	assert.Contains(t, out, "azure   1 year")
	assert.Contains(t, out, "python  4 months")
	assert.Less(t, strings.Index(out, "programming languages"), strings.Index(out, "cloud computing"))
}

func TestSkillsRawJSON(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.run("skills", env.input, "--raw", "-f", "json"))

	var report []struct {
		Category string `json:"category"`
		Skills   []struct {
			Name     string              `json:"name"`
			Duration curriculum.Duration `json:"duration"`
		} `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &report))
	require.Len(t, report, 3)
	assert.Equal(t, "cloud computing", report[1].Category)
	assert.Equal(t, "azure", report[1].Skills[0].Name)
	assert.Equal(t, curriculum.Duration{Years: 1, Months: 2}, report[1].Skills[0].Duration)
	assert.Equal(t, "CI/CD", report[2].Category)
	assert.Equal(t, curriculum.Duration{Years: 1, Months: 11}, report[2].Skills[0].Duration)
}

func TestSkillsIncludeEducation(t *testing.T) {
	env := newTestEnv(t, "")
	content := "personal data: {name: Jo}\neducation:\n  - {beginning: 2010-09, end: 2012-09, description: {programming: [c]}}\n"
	require.NoError(t, os.WriteFile(env.input, []byte(content), 0644))

	require.NoError(t, env.run("skills", env.input))
	assert.Contains(t, env.out.String(), "no skills found")

	require.NoError(t, env.run("skills", env.input, "--education", "-f", "yaml"))
	assert.Contains(t, env.out.String(), "name: c")
}

func TestSkillsWrite(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.run("skills", env.input, "--write"))

	updated, err := os.ReadFile(env.input)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(updated), "personal data:\n  name: Jessica Meyer"))
	assert.Contains(t, string(updated), "\nskills:\n")

	// The file still renders after the report was added.
	require.NoError(t, env.run(env.input))

	jsonInput := filepath.Join(env.dir, "cv.json")
	require.NoError(t, os.WriteFile(jsonInput, []byte(`{"personal data": {"name": "Jo"}}`), 0644))
	err = env.run("skills", jsonInput, "--write")
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestDumpFormats(t *testing.T) {
	env := newTestEnv(t, "")

	require.NoError(t, env.run("dump", env.input))
	assert.Contains(t, env.out.String(), "title: Cloud migration")

	require.NoError(t, env.run("dump", env.input, "-f", "json"))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &decoded))
	assert.Contains(t, decoded, "personal data")

	require.NoError(t, env.run("dump", env.input, "-f", "spew"))
	assert.Contains(t, env.out.String(), "Institution: (string) (len=7) \"Initech\"")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneralError, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitInputError, ExitCode(curriculum.ValidationErrors{{Field: "x", Reason: "y"}}))
	assert.Equal(t, ExitConfigError, ExitCode(withCode(ExitConfigError, errors.New("bad"))))
}
