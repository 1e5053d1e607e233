package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/san-kum/battleputt/internal/config"
	"github.com/san-kum/battleputt/internal/kv"
	"github.com/san-kum/battleputt/internal/physics"
	"github.com/san-kum/battleputt/internal/scene"
	"github.com/san-kum/battleputt/internal/sim"
	"github.com/san-kum/battleputt/internal/tunables"
)

var (
	configFile     string
	dataDir        string
	storageBackend string
	redisURL       string
	stepsPerFrame  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "battleputt",
		Short:        "minigolf physics sandbox",
		SilenceUsage: true,
		RunE:         runPlay,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	flags.StringVar(&storageBackend, "storage", config.DefaultBackend, "parameter storage: file, memory or redis")
	flags.StringVar(&redisURL, "redis", config.DefaultRedisURL, "redis url for the redis storage backend")
	flags.IntVar(&stepsPerFrame, "steps", config.DefaultStepsPerFrame, "physics steps per frame")

	rootCmd.AddCommand(
		newPlayCmd(),
		newGUICmd(),
		newSimCmd(),
		newTuneCmd(),
		newParamsCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the environment and finally
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("storage") {
		cfg.Storage.Backend = storageBackend
	}
	if flags.Changed("redis") {
		cfg.Storage.RedisURL = redisURL
	}
	if flags.Changed("steps") {
		cfg.Loop.StepsPerFrame = stepsPerFrame
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (kv.Store, error) {
	store, err := kv.Open(cfg.Storage.Backend, cfg.DataDir, cfg.Storage.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	return store, nil
}

func closeStore(store kv.Store) {
	if c, ok := store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}
}

// session is one live course: persisted parameters, the scene bound to
// them and the loop driving it.
type session struct {
	cfg    *config.Config
	store  kv.Store
	params *tunables.Params
	scene  *scene.Scene
	sync   *tunables.Sync
	loop   *sim.Loop
}

// newSession runs headless until the caller sets loop.Renderer.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	params := tunables.Load(store)
	world := physics.NewWorld(physics.Vec2{Y: cfg.World.Gravity})
	sc := scene.Build(world, &params, cfg.SceneOptions())
	sync := tunables.NewSync(store)
	sc.Bind(sync)

	loop, err := sim.New(sc, nil, cfg.SimConfig())
	if err != nil {
		closeStore(store)
		return nil, err
	}

	return &session{
		cfg:    cfg,
		store:  store,
		params: &params,
		scene:  sc,
		sync:   sync,
		loop:   loop,
	}, nil
}

func (s *session) Close() { closeStore(s.store) }

func (s *session) logPath() string {
	return filepath.Join(s.cfg.DataDir, "battleputt.log")
}
