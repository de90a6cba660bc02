package config

import (
	"flag"
	"testing"

	"go.uber.org/zap/zapcore"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	c, err := fromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !c.Debug || c.LogLevel != "info" || c.LogFormat != "console" || c.LibraryPath != "" {
		t.Fatalf("defaults = %+v", c)
	}
}

func TestFromEnvironment(t *testing.T) {
	c, err := fromLookup(lookupFrom(map[string]string{
		EnvLibrary:   "/opt/sdl/libSDL2.so",
		EnvDebug:     "false",
		EnvLogLevel:  "debug",
		EnvLogFormat: "json",
		EnvHints:     "SDL_RENDER_VSYNC=1, SDL_VIDEO_X11_NET_WM_BYPASS_COMPOSITOR=0",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if c.LibraryPath != "/opt/sdl/libSDL2.so" || c.Debug || c.LogLevel != "debug" || c.LogFormat != "json" {
		t.Fatalf("config = %+v", c)
	}
	if c.Hints["SDL_RENDER_VSYNC"] != "1" || c.Hints["SDL_VIDEO_X11_NET_WM_BYPASS_COMPOSITOR"] != "0" {
		t.Fatalf("hints = %v", c.Hints)
	}
}

func TestFromEnvironmentErrors(t *testing.T) {
	tests := []map[string]string{
		{EnvDebug: "maybe"},
		{EnvHints: "novalue"},
		{EnvLogLevel: "loud"},
		{EnvLogFormat: "xml"},
	}
	for _, env := range tests {
		if _, err := fromLookup(lookupFrom(env)); err == nil {
			t.Errorf("expected error for %v", env)
		}
	}
}

func TestFlagsOverride(t *testing.T) {
	c := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	err := fs.Parse([]string{"-sdl-lib", "x.so", "-debug=false", "-hint", "A=1", "-hint", "B=2"})
	if err != nil {
		t.Fatal(err)
	}
	if c.LibraryPath != "x.so" || c.Debug || len(c.Hints) != 2 {
		t.Fatalf("config = %+v", c)
	}
	if got := (hintFlag{&c}).String(); got != "A=1,B=2" {
		t.Fatalf("hint flag = %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	c := Default()
	c.LogFormat = "json"
	l, err := c.NewLogger()
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug enabled at info level")
	}
}
