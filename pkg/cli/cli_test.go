package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/pageobject/pkg/aip"
	"github.com/devicelab-dev/pageobject/pkg/config"
	"github.com/devicelab-dev/pageobject/pkg/core"
)

const homeSource = `<?xml version="1.0" encoding="UTF-8"?>
<XCUIElementTypeApplication type="XCUIElementTypeApplication" name="Example" label="Example" visible="true">
  <XCUIElementTypeOther type="XCUIElementTypeOther" name="home.mainView" visible="true">
    <XCUIElementTypeTable type="XCUIElementTypeTable" name="home.tableView" visible="true">
      <XCUIElementTypeCell type="XCUIElementTypeCell" visible="true">
        <XCUIElementTypeStaticText type="XCUIElementTypeStaticText" name="label" label="label" visible="true"/>
      </XCUIElementTypeCell>
    </XCUIElementTypeTable>
  </XCUIElementTypeOther>
</XCUIElementTypeApplication>`

// runApp runs the CLI with args and returns what it wrote to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"pageobject", "--no-ansi"}, args...))
	return out.String(), err
}

// fakeWDA records the requests it receives.
type fakeWDA struct {
	mu     sync.Mutex
	paths  []string
	bodies []map[string]interface{}
}

func (f *fakeWDA) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var body map[string]interface{}
	json.NewDecoder(r.Body).Decode(&body)
	f.paths = append(f.paths, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, body)

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/session":
		json.NewEncoder(w).Encode(map[string]interface{}{"value": map[string]interface{}{"sessionId": "s1"}})
	case strings.HasSuffix(r.URL.Path, "/source"):
		json.NewEncoder(w).Encode(map[string]interface{}{"value": homeSource})
	default:
		json.NewEncoder(w).Encode(map[string]interface{}{"value": map[string]interface{}{"ready": true}})
	}
}

func newFakeWDA(t *testing.T) (*fakeWDA, string) {
	t.Helper()
	fake := &fakeWDA{}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return fake, server.URL
}

func TestIDsText(t *testing.T) {
	out, err := runApp(t, "ids")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"home\n", "home.tableView", "textField.textField", "image.imageView"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("--no-ansi output should not contain escape codes")
	}
}

func TestIDsJSON(t *testing.T) {
	out, err := runApp(t, "ids", "--format", "json", "--namespace", "home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entries []aip.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 home entries, got %d", len(entries))
	}
	if entries[0].Identifier != "home.mainView" || entries[1].Identifier != "home.tableView" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestIDsYAML(t *testing.T) {
	out, err := runApp(t, "ids", "-f", "yaml", "-n", "button")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entries []aip.Entry
	if err := yaml.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, out)
	}
	if len(entries) != 2 || entries[1].Identifier != "button.button" || entries[1].Namespace != "button" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestIDsUnknownFormat(t *testing.T) {
	_, err := runApp(t, "ids", "--format", "csv")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestIDsUnknownNamespace(t *testing.T) {
	_, err := runApp(t, "ids", "--namespace", "settings")
	if err == nil || !strings.Contains(err.Error(), `unknown screen "settings"`) {
		t.Errorf("expected unknown screen error, got %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	_, url := newFakeWDA(t)

	out, err := runApp(t, "--wda-url", url, "status", "--timeout", "2s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "ready") {
		t.Errorf("expected ready, got %q", out)
	}
}

func TestStatusCommand_Unreachable(t *testing.T) {
	_, err := runApp(t, "--wda-url", "http://127.0.0.1:1", "status", "--timeout", "50ms")
	if !errors.Is(err, core.ErrServerUnreachable) {
		t.Errorf("expected ErrServerUnreachable, got %v", err)
	}
}

func TestLaunchCommand(t *testing.T) {
	fake, url := newFakeWDA(t)

	out, err := runApp(t, "--wda-url", url, "-b", "com.example.app", "launch", "--arg", "-disableAnimations", "HomeCoordinator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "launched com.example.app into HomeCoordinator") {
		t.Errorf("unexpected output %q", out)
	}

	if len(fake.paths) != 2 || fake.paths[1] != "POST /session/s1/wda/apps/launch" {
		t.Fatalf("unexpected requests %v", fake.paths)
	}
	args, _ := fake.bodies[1]["arguments"].([]interface{})
	want := []string{"-FIRDebugDisabled", "-coordinatorUnderUITest", "HomeCoordinator", "-disableAnimations"}
	if len(args) != len(want) {
		t.Fatalf("arguments = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("argument %d = %v, want %s", i, args[i], want[i])
		}
	}
}

func TestLaunchCommand_MissingBundleID(t *testing.T) {
	_, err := runApp(t, "launch", "HomeCoordinator")
	if !errors.Is(err, core.ErrMissingRequired) {
		t.Errorf("expected ErrMissingRequired, got %v", err)
	}
}

func TestLaunchCommand_ConfigScenario(t *testing.T) {
	fake, url := newFakeWDA(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "wda:\n  url: " + url + "\n  bundleId: com.example.app\nscenario: ImageCoordinator\nlaunchArguments: [\"-locale\", \"en\"]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runApp(t, "--config", path, "launch"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	args, _ := fake.bodies[len(fake.bodies)-1]["arguments"].([]interface{})
	if len(args) != 5 || args[2] != "ImageCoordinator" || args[3] != "-locale" {
		t.Errorf("unexpected arguments %v", args)
	}
}

func TestSourceCommand_XML(t *testing.T) {
	fake, url := newFakeWDA(t)

	out, err := runApp(t, "--wda-url", url, "source")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != homeSource {
		t.Errorf("expected raw page source, got %q", out)
	}
	if fake.paths[len(fake.paths)-1] != "DELETE /session/s1" {
		t.Errorf("session should be deleted, got %v", fake.paths)
	}
}

func TestSourceCommand_IDs(t *testing.T) {
	_, url := newFakeWDA(t)

	out, err := runApp(t, "--wda-url", url, "source", "--ids")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "✓") || !strings.Contains(out, "home.tableView") {
		t.Errorf("expected declared identifiers marked, got:\n%s", out)
	}
	if !strings.Contains(out, "?") {
		t.Errorf("expected undeclared identifiers marked, got:\n%s", out)
	}
}

func TestSourceCommand_FileNamespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home.xml")
	if err := os.WriteFile(path, []byte(homeSource), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runApp(t, "source", "--file", path, "--namespace", "home"); err != nil {
		t.Errorf("home screen should be complete: %v", err)
	}

	out, err := runApp(t, "source", "--file", path, "--namespace", "textField")
	if err == nil || !strings.Contains(err.Error(), `2 of 2 identifiers of screen "textField" missing`) {
		t.Errorf("expected missing identifiers error, got %v", err)
	}
	if !strings.Contains(out, "missing textField.textField") {
		t.Errorf("expected missing identifier listed, got:\n%s", out)
	}
}

func TestSourceCommand_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xml")
	if err := os.WriteFile(path, []byte("<XCUIElementTypeApplication>"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := runApp(t, "source", "--file", path, "--ids")
	if err == nil || !strings.Contains(err.Error(), "parse page source") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestSetup_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeouts:\n  maxSwipes: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := runApp(t, "--config", path, "ids")
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSetup_FlagsOverrideConfig(t *testing.T) {
	app := NewApp()
	app.Writer = &bytes.Buffer{}
	var got *config.Config
	app.Commands = append(app.Commands, &cli.Command{
		Name: "inspect",
		Action: func(c *cli.Context) error {
			got = loadedConfig(c)
			return nil
		},
	})

	if err := app.Run([]string{"pageobject", "--wda-url", "http://device:8100", "-b", "com.x", "inspect"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WDA.URL != "http://device:8100" || got.WDA.BundleID != "com.x" {
		t.Errorf("flags not applied: %+v", got.WDA)
	}
	if got.Timeouts.MaxSwipes != config.DefaultMaxSwipes {
		t.Errorf("defaults not applied: %+v", got.Timeouts)
	}
}

func TestColor(t *testing.T) {
	old := colorsEnabled
	defer func() { colorsEnabled = old }()

	colorsEnabled = true
	if paint(colorGreen, "ok") != colorGreen+"ok"+colorReset {
		t.Errorf("paint with colors enabled = %q", paint(colorGreen, "ok"))
	}

	colorsEnabled = false
	if paint(colorGreen, "ok") != "ok" {
		t.Errorf("paint with colors disabled = %q", paint(colorGreen, "ok"))
	}
}

func TestSetup_LogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "cli.log")
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logFile: "+logPath+"\nlogLevel: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runApp(t, "--config", path, "ids"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
