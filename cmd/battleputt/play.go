package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/battleputt/internal/gui"
	"github.com/san-kum/battleputt/internal/viz"
)

var (
	theme   string
	gifPath string
	fps     int
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "play in the terminal",
		RunE:  runPlay,
	}
	cmd.Flags().StringVar(&theme, "theme", "", "color theme")
	cmd.Flags().StringVar(&gifPath, "gif", "", "where to save GIF recordings")
	return cmd
}

func newGUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "play in a window",
		RunE:  runGUI,
	}
	cmd.Flags().IntVar(&fps, "fps", 0, "target frame rate")
	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	r := viz.NewCanvasRenderer(80, 24, s.cfg.World.Width, s.cfg.World.Height)
	s.loop.Renderer = r

	opts := viz.Options{
		Theme:    s.cfg.View.Theme,
		Interval: time.Duration(s.cfg.Loop.IntervalMs) * time.Millisecond,
		GIFPath:  filepath.Join(s.cfg.DataDir, "battleputt.gif"),
	}
	if theme != "" {
		opts.Theme = theme
	}
	if gifPath != "" {
		opts.GIFPath = gifPath
	}

	if err := os.MkdirAll(s.cfg.DataDir, 0755); err != nil {
		return err
	}
	return viz.Run(viz.NewModel(s.loop, r, s.sync, opts), s.logPath())
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	s.loop.Renderer = gui.NewRenderer(s.cfg.World.Width, s.cfg.World.Height)

	rate := s.cfg.View.FPS
	if cmd.Flags().Changed("fps") {
		rate = fps
	}
	return gui.Run(s.loop, s.sync, rate)
}
