package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logist-pro/lgp-api-examples/client"
	"github.com/logist-pro/lgp-api-examples/devmode"
	"github.com/logist-pro/lgp-api-examples/internal/json"
	"github.com/logist-pro/lgp-api-examples/internal/sandbox"
	"github.com/logist-pro/lgp-api-examples/internal/scenario"
)

func startSandbox(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(sandbox.New(sandbox.DefaultConfig()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// execute runs the CLI against srv with the sandbox credentials and returns stdout.
func execute(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	defaults := [][2]string{
		{"--base-url", srv.URL},
		{"--api-key", devmode.APIKey},
		{"--login", devmode.Login},
		{"--password", devmode.Password},
	}
	full := append([]string{}, args...)
	for _, d := range defaults {
		if !containsArg(args, d[0]) {
			full = append(full, d[0], d[1])
		}
	}

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(full)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func containsArg(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

func tenderIDFrom(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if id, ok := strings.CutPrefix(line, "Tender created: "); ok {
			return strings.TrimSpace(id)
		}
	}
	t.Fatalf("no tender id in output:\n%s", out)
	return ""
}

func TestCLI_RunCreate(t *testing.T) {
	srv := startSandbox(t)

	out, err := execute(t, srv, "run")
	require.NoError(t, err)
	assert.Contains(t, out, "Tender created: ")
	assert.Contains(t, out, "(Awaiting)")
	assert.NotContains(t, out, "Best proposal")
}

func TestCLI_RunAssignAndAwait(t *testing.T) {
	srv := startSandbox(t)

	out, err := execute(t, srv, "run", "--scenario", "assign", "--cost", "45000", "--await-status", "Assigned", "--login-mode", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "(Assigned)")
	assert.Contains(t, out, "Best proposal:   45000")
}

func TestCLI_RunLoginFailureExitCode(t *testing.T) {
	srv := startSandbox(t)

	_, err := execute(t, srv, "run", "--password", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrAuthentication)
	assert.Equal(t, 2, scenario.ExitCode(err))
}

func TestCLI_RunRejectsUnknownScenario(t *testing.T) {
	srv := startSandbox(t)

	_, err := execute(t, srv, "run", "--scenario", "auction")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LGP_SCENARIO")
	assert.Equal(t, 1, scenario.ExitCode(err))
}

func TestCLI_Ping(t *testing.T) {
	srv := startSandbox(t)

	out, err := execute(t, srv, "ping")
	require.NoError(t, err)
	assert.Equal(t, "API reachable: "+srv.URL+"\n", out)
}

func TestCLI_FlagsOverrideEnvironment(t *testing.T) {
	srv := startSandbox(t)
	t.Setenv("LGP_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("LGP_API_KEY", "from-env")

	_, err := execute(t, srv, "ping")
	require.NoError(t, err)
}

func TestCLI_Dictionaries(t *testing.T) {
	srv := startSandbox(t)

	out, err := execute(t, srv, "dictionaries")
	require.NoError(t, err)

	var dicts client.Dictionaries
	require.NoError(t, json.Unmarshal([]byte(out), &dicts))
	want := sandbox.DefaultConfig()
	require.Len(t, dicts.Corporates, len(want.Corporates))
	assert.Equal(t, want.Corporates[0].ID, dicts.Corporates[0].ID)
	assert.Equal(t, want.Contractors[0].ID, dicts.Contractors[0].ID)
}

func TestCLI_TenderGetAndAwait(t *testing.T) {
	srv := startSandbox(t)

	out, err := execute(t, srv, "run")
	require.NoError(t, err)
	id := tenderIDFrom(t, out)

	out, err = execute(t, srv, "tender", "get", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Tender: "+id)
	assert.Contains(t, out, "Number:          1")

	out, err = execute(t, srv, "tender", "await", id, "--status", "Awaiting")
	require.NoError(t, err)
	assert.Contains(t, out, "(Awaiting)")

	_, err = execute(t, srv, "tender", "get", "missing")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestCLI_TenderAwaitRequiresStatus(t *testing.T) {
	srv := startSandbox(t)

	_, err := execute(t, srv, "tender", "await", "some-id")
	require.Error(t, err)
}
