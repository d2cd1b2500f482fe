package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartlayout/pkg/observability"
)

func TestVerboseFlag(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantLevel log.Level
		wantHooks bool
	}{
		{"default", []string{"cache", "path"}, log.InfoLevel, false},
		{"long flag", []string{"--verbose", "cache", "path"}, log.DebugLevel, true},
		{"short flag after command", []string{"cache", "path", "-v"}, log.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observability.Reset()
			defer observability.Reset()
			t.Setenv("XDG_CACHE_HOME", t.TempDir())

			c := testCLI()
			root := c.RootCommand()
			root.SetArgs(tt.args)
			if err := root.Execute(); err != nil {
				t.Fatalf("Execute: %v", err)
			}

			if got := c.Logger.GetLevel(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}
			_, logged := observability.Pipeline().(*observability.LogHooks)
			if logged != tt.wantHooks {
				t.Errorf("pipeline log hooks installed = %v, want %v", logged, tt.wantHooks)
			}
		})
	}
}

func TestVerboseLogsArrangedAxes(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Out = &bytes.Buffer{}
	c.setVerbose(true)

	input := writeDefinition(t)
	root := c.RootCommand()
	root.SetArgs([]string{"layout", input, "--no-cache", "--measurer", "approx", "-o", input + ".out.json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout: %v", err)
	}

	// the flag default turns verbosity back off before the command runs
	if c.Logger.GetLevel() != log.InfoLevel {
		t.Fatalf("level = %v, want info without --verbose", c.Logger.GetLevel())
	}

	buf.Reset()
	root = c.RootCommand()
	root.SetArgs([]string{"layout", input, "--verbose", "--no-cache", "--measurer", "approx", "-o", input + ".out.json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout --verbose: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"layout started", "axis arranged", "layout complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose log missing %q:\n%s", want, out)
		}
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Laid out revenue.yaml")

	out := buf.String()
	if !strings.Contains(out, "Laid out revenue.yaml (") || !strings.Contains(out, "s)") {
		t.Errorf("progress output %q should end with an elapsed duration", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield the default logger")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.DebugLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	loggerFromContext(ctx).Debug("cache miss", "type", "layout")
	if !strings.Contains(buf.String(), "type=layout") {
		t.Errorf("attached logger did not write: %q", buf.String())
	}
}
