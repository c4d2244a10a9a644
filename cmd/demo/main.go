package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jordiv/sceneflow/client/game"
	"github.com/jordiv/sceneflow/pkg/config"
	"github.com/jordiv/sceneflow/pkg/log"
	"github.com/jordiv/sceneflow/pkg/version"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	configPath := flag.String("config", "configs/sceneflow.yaml", "Path to the scene configuration file")
	watch := flag.Bool("watch", false, "Reload the configuration file on change")
	debug := flag.Bool("debug", false, "Show the debug overlay")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting demo version %s", version.Get())

	loader := config.NewLoader(filepath.Dir(*configPath))
	cfg, err := loader.Load(filepath.Base(*configPath))
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	g, err := game.NewGame(game.NewGameOptions{
		Config:      cfg,
		ConfigPath:  *configPath,
		WatchConfig: *watch,
		Debug:       *debug,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}
	defer g.Close()

	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	ebiten.SetWindowTitle("Sceneflow Demo")
	if err := ebiten.RunGame(g); err != nil {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}
