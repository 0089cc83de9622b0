// file: cmd/main_test.go
package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dkoosis/sonarr-mcp/internal/config"
	"github.com/dkoosis/sonarr-mcp/internal/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{config.PathEnvVar, "SONARR_URL", "SONARR_API_KEY"} {
		t.Setenv(name, "")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sonarr-mcp "+Version)
	assert.Contains(t, out, "Compiler: go")
}

func TestConfigCommand_MasksKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("SONARR_URL", "http://sonarr.local:8989/")
	t.Setenv("SONARR_API_KEY", "abcdef123456")

	out, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "url: http://sonarr.local:8989\n")
	assert.Contains(t, out, "3456")
	assert.NotContains(t, out, "abcdef123456")
	assert.Contains(t, out, "timeout_seconds: 30")
}

func TestConfigCommand_InvalidConfig(t *testing.T) {
	clearEnv(t)
	keyring.MockInit()

	_, err := execute(t, "", "config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sonarr.url")
}

func TestKeyringCommands(t *testing.T) {
	keyring.MockInit()
	const url = "http://sonarr.local:8989"

	out, err := execute(t, "from-stdin-key\nignored\n", "keyring", "set", "--url", url)
	require.NoError(t, err)
	assert.Equal(t, "Stored API key for "+url+"\n", out)

	store := credentials.NewKeyringStore(nil)
	key, err := store.Lookup(url)
	require.NoError(t, err)
	assert.Equal(t, "from-stdin-key", key)

	_, err = execute(t, "", "keyring", "set", "--url", url, "arg-key")
	require.NoError(t, err)
	key, _ = store.Lookup(url)
	assert.Equal(t, "arg-key", key)

	out, err = execute(t, "", "keyring", "delete", "--url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted API key")
	key, err = store.Lookup(url)
	require.NoError(t, err)
	assert.Empty(t, key)

	_, err = execute(t, "", "keyring", "set")
	assert.Error(t, err, "--url is required")
	_, err = execute(t, "  \n", "keyring", "set", "--url", url)
	assert.EqualError(t, err, "API key is empty")
}

func TestCheckCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v3/system/status":
			_, _ = w.Write([]byte(`{"appName":"Sonarr","version":"4.0.1","osName":"ubuntu","osVersion":"22.04"}`))
		case "/api/v3/diskspace":
			_, _ = w.Write([]byte(`[{"path":"/tv","freeSpace":500000000000,"totalSpace":1000000000000}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	clearEnv(t)
	t.Setenv("SONARR_URL", srv.URL)
	t.Setenv("SONARR_API_KEY", "k")

	out, err := execute(t, "", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected to Sonarr 4.0.1 at "+srv.URL)
	assert.Contains(t, out, "OS: ubuntu 22.04")
	assert.Contains(t, out, "Disk /tv: 465.66 GB free of 931.32 GB (50%)")
}
