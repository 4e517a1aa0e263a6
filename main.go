package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/spikevale/hook"
	"github.com/milk9111/spikevale/level"
	"github.com/milk9111/spikevale/levels"
	"github.com/milk9111/spikevale/scripts"
)

func main() {
	settingsPath := flag.String("settings", "settings.yaml", "settings file")
	levelName := flag.String("level", "", "level file (path on disk, or a bundled level name)")
	debug := flag.Bool("debug", false, "enable debug overlays")
	noHazard := flag.Bool("nohazard", false, "disable hazard damage (preview mode)")
	flag.Parse()

	settings, err := LoadSettings(*settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		settings.Level = *levelName
	}
	if *debug {
		settings.Debug = true
	}

	bus := hook.NewBus()
	for _, name := range settings.Scripts {
		src, err := scripts.Load(name)
		if err != nil {
			log.Printf("skip script %s: %v", name, err)
			continue
		}
		script, err := hook.NewScript(name, src)
		if err != nil {
			log.Printf("skip script %s: %v", name, err)
			continue
		}
		script.Attach(bus)
		log.Printf("attached script %s (%d hooks)", name, len(script.Handles()))
	}

	lvl, levelPath := loadLevel(settings.Level)

	game, err := NewGame(settings, bus, lvl, levelPath, settings.Debug)
	if err != nil {
		log.Fatal(err)
	}
	game.sim.NoHazard = *noHazard

	if levelPath != "" {
		watcher, err := level.NewWatcher(filepath.Dir(levelPath))
		if err != nil {
			log.Printf("level watcher: %v", err)
		} else {
			defer watcher.Close()
			game.SetWatcher(watcher)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle("spikevale")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// loadLevel resolves a level reference: a path on disk wins, then the
// bundled levels.
func loadLevel(name string) (*level.Level, string) {
	if _, err := os.Stat(name); err == nil {
		lvl, err := level.Load(name)
		if err != nil {
			log.Fatal(err)
		}
		return lvl, name
	}

	data, err := levels.Load(filepath.Base(name))
	if err != nil {
		log.Fatal(err)
	}
	lvl, err := level.LoadData(data)
	if err != nil {
		log.Fatal(err)
	}
	return lvl, ""
}
