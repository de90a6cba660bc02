// Command sdlinfo lists the SDL version, displays, joysticks and haptic
// devices. With -i it opens an interactive browser that can rumble a haptic
// device.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tinyrange/gosdl/internal/config"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.LogLevel = "warn"

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	interactive := fs.Bool("i", false, "browse haptic devices interactively")
	duration := fs.Duration("rumble", 500*time.Millisecond, "rumble duration in the browser")
	cfg.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	resource.SetLogger(logger)

	sys, err := sdl.Open(cfg, sdl.DefaultFlags)
	if err != nil {
		logger.Fatal("init", zap.Error(err))
	}
	defer sys.Close()

	rep := collect(sys)

	if *interactive {
		err := runBrowser(sys, rep, *duration)
		sys.Close()
		if err != nil {
			os.Exit(1)
		}
		return
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if err := rep.write(os.Stdout, styled); err != nil {
		logger.Fatal("write", zap.Error(err))
	}
}
