package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/tinyrange/gosdl/internal/config"
	"github.com/tinyrange/gosdl/internal/geom"
	"github.com/tinyrange/gosdl/internal/graphics"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/resource"
	"github.com/tinyrange/gosdl/internal/sdl"
	"github.com/tinyrange/gosdl/internal/text"
	"github.com/tinyrange/gosdl/internal/video"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	screenshot := fs.String("screenshot", "", "write a PNG of the first frame to this path and exit")
	fontName := fs.String("font", "DejaVuSans.ttf", "system font used for the overlay text")
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

	gfx, err := graphics.New(sys, "SDL Demo in Go", 800, 600)
	if err != nil {
		logger.Fatal("window", zap.Error(err))
	}

	gfx.SetClear(true)
	gfx.SetClearColor(geom.Color{R: 0x1a, G: 0x1f, B: 0x29, A: 0xff})

	tex, err := makeCheckerTexture(gfx)
	if err != nil {
		logger.Fatal("texture", zap.Error(err))
	}

	overlay := loadOverlay(cfg, gfx, *fontName, logger)

	const quadSize = 200.0

	logger.Info("scale", zap.Float32("scale", gfx.Scale()))

	err = gfx.Loop(func(f graphics.Frame) error {
		if f.GetKeyState(graphics.KeyEscape) == graphics.KeyStatePressed {
			return graphics.Stop
		}

		x, y := f.CursorPos()
		f.RenderQuad(x, y, float32(quadSize), float32(quadSize), tex, graphics.ColorWhite)

		if overlay != nil {
			msg := fmt.Sprintf("The quick brown fox jumps over the lazy dog.\nScale = %f", gfx.Scale())
			if _, err := overlay.Draw(msg, 10, 10, graphics.ColorYellow); err != nil {
				return err
			}
		}

		if *screenshot != "" {
			img, err := f.Screenshot()
			if err != nil {
				return fmt.Errorf("screenshot: %w", err)
			}

			file, err := os.Create(*screenshot)
			if err != nil {
				return fmt.Errorf("create screenshot file: %w", err)
			}
			defer file.Close()

			if err := png.Encode(file, img); err != nil {
				return fmt.Errorf("encode screenshot: %w", err)
			}

			logger.Info("taken screenshot", zap.String("path", *screenshot))
			return graphics.Stop
		}

		return nil
	})
	if err != nil {
		logger.Fatal("run loop", zap.Error(err))
	}
}

// makeCheckerTexture fills a streaming texture through a pixel lock.
func makeCheckerTexture(gfx graphics.Window) (graphics.Texture, error) {
	t, err := gfx.Renderer().NewTexture(native.PixelFormatRGBA32, native.TextureAccessStreaming, 4, 4)
	if err != nil {
		return nil, err
	}

	red := geom.Color{R: 0xff, G: 0x66, B: 0x66, A: 0xff}
	green := geom.Color{R: 0x66, G: 0xff, B: 0x66, A: 0xff}

	err = t.WithLock(nil, func(l *video.TextureLock) error {
		for y := range l.Height() {
			for x := range l.Width() {
				c := green
				if (x+y)%2 == 0 {
					c = red
				}
				if err := l.SetPixel(x, y, c); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		t.Close()
		return nil, err
	}
	return gfx.AdoptTexture(t), nil
}

// loadOverlay sets up text rendering. Text is optional: a missing SDL2_ttf or
// font only disables the overlay.
func loadOverlay(cfg config.Config, gfx graphics.Window, name string, logger *zap.Logger) *text.Renderer {
	ttf, err := native.LoadTTF(cfg.TTFLibraryPath)
	if err != nil {
		logger.Warn("text disabled", zap.Error(err))
		return nil
	}
	eng, err := text.Init(gfx.System(), ttf)
	if err != nil {
		logger.Warn("text disabled", zap.Error(err))
		return nil
	}
	font, err := eng.OpenByName(name, 16)
	if err != nil {
		eng.Close()
		logger.Warn("text disabled", zap.String("font", name), zap.Error(err))
		return nil
	}

	tr := text.NewRenderer(gfx.Renderer(), font)
	gfx.OnClose(eng.Close)
	gfx.OnClose(font.Close)
	gfx.OnClose(tr.Close)
	return tr
}
