package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/battleputt/internal/config"
	"github.com/san-kum/battleputt/internal/kv"
	"github.com/san-kum/battleputt/internal/tunables"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "show or edit the persisted course parameters",
		RunE:  showParams,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "list every parameter with its range",
			RunE:  showParams,
		},
		&cobra.Command{
			Use:   "get [name]",
			Short: "print one parameter",
			Args:  cobra.ExactArgs(1),
			RunE:  getParam,
		},
		&cobra.Command{
			Use:   "set [name] [value]",
			Short: "edit one parameter",
			Args:  cobra.ExactArgs(2),
			RunE:  setParam,
		},
		&cobra.Command{
			Use:   "reset",
			Short: "restore every parameter to its default",
			RunE:  resetParams,
		},
		&cobra.Command{
			Use:   "preset [name]",
			Short: "apply a named preset",
			Args:  cobra.ExactArgs(1),
			RunE:  applyPreset,
		},
	)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				preset := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t", name)
				for _, f := range tunables.Fields() {
					if v, ok := preset[f]; ok {
						fmt.Fprintf(w, "%s=%g ", f, v)
					}
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "battleputt.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("config written to %s\n", path)
			return nil
		},
	})
	return cmd
}

// editor loads the persisted parameters and routes edits through the same
// sync protocol the interactive front ends use.
type editor struct {
	store  kv.Store
	params tunables.Params
	sync   *tunables.Sync
}

func openEditor(cmd *cobra.Command) (*editor, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return &editor{
		store:  store,
		params: tunables.Load(store),
		sync:   tunables.NewSync(store),
	}, nil
}

func (e *editor) Close() { closeStore(e.store) }

func showParams(cmd *cobra.Command, args []string) error {
	e, err := openEditor(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\tvalue\tdefault\trange")
	defaults := tunables.Defaults()
	for _, f := range tunables.Fields() {
		rng := "on/off"
		if f.Kind() == tunables.Number {
			r := f.Range()
			rng = fmt.Sprintf("%g..%g step %g", r.Min, r.Max, r.Step)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f, e.params.Format(f), defaults.Format(f), rng)
	}
	return w.Flush()
}

func getParam(cmd *cobra.Command, args []string) error {
	f := tunables.ParseField(args[0])
	if f == tunables.FieldUnknown {
		return fmt.Errorf("%w: %s", tunables.ErrUnknownField, args[0])
	}

	e, err := openEditor(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Println(e.params.Format(f))
	return nil
}

func setParam(cmd *cobra.Command, args []string) error {
	e, err := openEditor(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	var editErr error
	panel := tunables.NewPanel(&e.params, func(c tunables.Change) {
		editErr = e.sync.OnEdit(c)
	})
	if err := panel.Set(args[0], args[1]); err != nil {
		return err
	}
	if editErr != nil {
		return editErr
	}

	f := tunables.ParseField(args[0])
	fmt.Printf("%s = %s\n", f, e.params.Format(f))
	return nil
}

func resetParams(cmd *cobra.Command, args []string) error {
	e, err := openEditor(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	e.params = tunables.Defaults()
	if err := tunables.Store(e.store, e.params); err != nil {
		return err
	}
	fmt.Println("parameters reset to defaults")
	return nil
}

func applyPreset(cmd *cobra.Command, args []string) error {
	e, err := openEditor(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := config.ApplyPreset(args[0], &e.params, e.sync.OnEdit); err != nil {
		return err
	}
	fmt.Printf("preset %s applied\n", args[0])
	return nil
}
