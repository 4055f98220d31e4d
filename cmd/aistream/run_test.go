package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenAI answers streamed and non-streamed chat completions and records
// how many messages each request carried.
type fakeOpenAI struct {
	mu       sync.Mutex
	counts   []int
	status   int
	lastBody map[string]any
}

func (f *fakeOpenAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	messages, _ := body["messages"].([]any)

	f.mu.Lock()
	f.counts = append(f.counts, len(messages))
	f.lastBody = body
	status := f.status
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
		return
	}
	if stream, _ := body["stream"].(bool); !stream {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"full reply"}}]}`)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n")
	fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}\n\n")
	fmt.Fprint(w, "data: [DONE]\n\n")
}

// setup starts a fake vendor, writes a profiles file pointing at it and
// moves into a scratch directory so no local config or .env is picked up.
func setup(t *testing.T) (*fakeOpenAI, string) {
	t.Helper()
	fake := &fakeOpenAI{}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	chdir(t, dir)
	profilesPath := filepath.Join(dir, "profiles.yaml")
	content := fmt.Sprintf(`
profiles:
  - name: Fake
    format_type: openai
    api_url: %s/v1/chat/completions
    api_key: sk-test
    model_name: fake-model
    is_default: true
  - name: Other
    format_type: gemini
    api_url: https://generativelanguage.googleapis.com/v1beta
    model_name: gemini-1.5-flash
`, server.URL)
	require.NoError(t, os.WriteFile(profilesPath, []byte(content), 0o600))
	return fake, profilesPath
}

func runCLI(args []string, stdin string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_OneShotStreams(t *testing.T) {
	fake, profilesPath := setup(t)

	code, stdout, stderr := runCLI([]string{"--profiles", profilesPath, "--system", "Be brief.", "Say", "hello"}, "")

	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "Hello world\n", stdout)
	assert.Equal(t, []int{2}, fake.counts)
}

func TestRun_NonStreaming(t *testing.T) {
	fake, profilesPath := setup(t)

	code, stdout, stderr := runCLI([]string{"--profiles", profilesPath, "--stream=false", "--model", "other-model", "hi"}, "")

	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "full reply\n", stdout)
	assert.Equal(t, "other-model", fake.lastBody["model"])
	assert.Equal(t, false, fake.lastBody["stream"])
}

func TestRun_List(t *testing.T) {
	_, profilesPath := setup(t)

	code, stdout, _ := runCLI([]string{"--profiles", profilesPath, "--list"}, "")

	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "OpenAI Compatible")
	assert.Contains(t, stdout, "Google Gemini")
	assert.Contains(t, stdout, "fake-model")
	assert.Contains(t, stdout, "formats: openai (OpenAI Compatible), claude (Anthropic Claude), gemini (Google Gemini)")
}

func TestRun_HistoryLimitOpensOnUserTurn(t *testing.T) {
	fake, profilesPath := setup(t)

	code, _, stderr := runCLI([]string{"--profiles", profilesPath, "--history", "4"}, "first\nsecond\nthird\n")

	require.Equal(t, exitOK, code, stderr)
	// third: the last four are a1 u2 a2 u3, sent from u2
	assert.Equal(t, []int{1, 3, 3}, fake.counts)
	messages := fake.lastBody["messages"].([]any)
	first := messages[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "second", first["content"])
}

func TestRun_DefaultCommandSavesProfiles(t *testing.T) {
	_, profilesPath := setup(t)

	code, _, stderr := runCLI([]string{"--profiles", profilesPath}, "/profile other\n/default\n")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "default is now Other")

	code, stdout, _ := runCLI([]string{"--profiles", profilesPath, "--list"}, "")
	require.Equal(t, exitOK, code)
	for _, line := range strings.Split(stdout, "\n") {
		if strings.HasPrefix(line, "Other") {
			assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "*"), line)
		}
		if strings.HasPrefix(line, "Fake") {
			assert.False(t, strings.HasSuffix(strings.TrimSpace(line), "*"), line)
		}
	}

	raw, err := os.ReadFile(profilesPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "sk-test")
}

func TestRun_InteractiveKeepsHistory(t *testing.T) {
	fake, profilesPath := setup(t)

	stdin := "first\nsecond\n/clear\nthird\n/exit\nnever sent\n"
	code, stdout, stderr := runCLI([]string{"--profiles", profilesPath}, stdin)

	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, strings.Repeat("Hello world\n", 3), stdout)
	// second carries first + reply + second; /clear resets
	assert.Equal(t, []int{1, 3, 1}, fake.counts)
	assert.Contains(t, stderr, "history cleared")
}

func TestRun_HTTPErrorDropsUserTurn(t *testing.T) {
	fake, profilesPath := setup(t)
	fake.status = http.StatusTooManyRequests

	code, _, stderr := runCLI([]string{"--profiles", profilesPath, "hi"}, "")

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "quota exceeded")
}

func TestRun_InteractiveSurvivesErrors(t *testing.T) {
	fake, profilesPath := setup(t)
	fake.status = http.StatusTooManyRequests

	code, _, stderr := runCLI([]string{"--profiles", profilesPath}, "first\n/profile other\n/bogus\n")

	assert.Equal(t, exitOK, code)
	assert.Equal(t, []int{1}, fake.counts)
	assert.Contains(t, stderr, "quota exceeded")
	assert.Contains(t, stderr, "using Other")
	assert.Contains(t, stderr, "unknown command /bogus")
}

func TestRun_UnknownProfile(t *testing.T) {
	_, profilesPath := setup(t)

	code, _, stderr := runCLI([]string{"--profiles", profilesPath, "--profile", "missing", "hi"}, "")

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "profile not found")
}

func TestRun_BadFlag(t *testing.T) {
	code, _, _ := runCLI([]string{"--no-such-flag"}, "")

	assert.Equal(t, exitUsage, code)
}

func TestRun_EnvFileExpandsKeys(t *testing.T) {
	fake, _ := setup(t)
	dir := t.TempDir()
	profilesPath := filepath.Join(dir, "profiles.toml")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-from-dotenv" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fake.ServeHTTP(w, r)
	}))
	defer server.Close()

	require.NoError(t, os.WriteFile(profilesPath, []byte(fmt.Sprintf(`
[[profiles]]
name = "Env"
api_url = "%s"
api_key = "${AISTREAM_TEST_KEY}"
model_name = "m"
`, server.URL)), 0o600))
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("AISTREAM_TEST_KEY=sk-from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("AISTREAM_TEST_KEY") })

	code, stdout, stderr := runCLI([]string{"--profiles", profilesPath, "--env-file", envPath, "hi"}, "")

	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "Hello world\n", stdout)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
