package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-reprgen/pkg/model"
	"github.com/goliatone/go-reprgen/pkg/render"
	"github.com/goliatone/go-reprgen/pkg/specfile"
)

const declaredStyle = "(declared)"

type renderOptions struct {
	spec        string
	instance    string
	style       string
	interactive bool
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the repr of declared instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.spec, "spec", "s", "", "declaration file or directory")
	flags.StringVarP(&opts.instance, "instance", "i", "", "instance to render (all when empty)")
	flags.StringVar(&opts.style, "style", "", "style overriding the declared one")
	flags.BoolVar(&opts.interactive, "interactive", false, "pick the instance and style from a prompt")
	_ = cmd.MarkFlagRequired("spec")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, opts *renderOptions) error {
	doc, err := loadSpec(opts.spec, a.logger)
	if err != nil {
		return err
	}
	if len(doc.Instances()) == 0 {
		return fmt.Errorf("reprgen: %s declares no instances", opts.spec)
	}

	if opts.interactive {
		if err := a.pick(cmd, doc, opts); err != nil {
			return err
		}
	}

	targets := doc.Instances()
	if opts.instance != "" {
		inst, ok := doc.Instance(opts.instance)
		if !ok {
			return fmt.Errorf("reprgen: unknown instance %q", opts.instance)
		}
		targets = []specfile.Instance{inst}
	}

	r := render.New(render.WithStyles(doc.Styles()), render.WithLogger(a.logger))
	out := cmd.OutOrStdout()
	for _, inst := range targets {
		var (
			text string
			err  error
		)
		if opts.style != "" {
			text, err = r.RenderStyle(inst.Record, model.StyleNamed(opts.style))
		} else {
			text, err = r.RenderInstance(inst.Record)
		}
		if err != nil {
			return fmt.Errorf("reprgen: instance %q: %w", inst.Name, err)
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) pick(cmd *cobra.Command, doc *specfile.Document, opts *renderOptions) error {
	ctx := cmd.Context()

	if opts.instance == "" {
		names := make([]string, 0, len(doc.Instances()))
		for _, inst := range doc.Instances() {
			names = append(names, inst.Name)
		}
		choice, err := a.prompter.Select(ctx, selectConfig{
			Message: "Instance:",
			Options: names,
			Default: names[0],
		})
		if err != nil {
			return err
		}
		opts.instance = choice
	}

	if opts.style == "" {
		styles := append([]string{declaredStyle}, doc.Styles().List()...)
		choice, err := a.prompter.Select(ctx, selectConfig{
			Message: "Style:",
			Options: styles,
			Default: declaredStyle,
			Help:    "Keep the class's own style or force another one",
		})
		if err != nil {
			return err
		}
		if choice != declaredStyle {
			opts.style = choice
		}
	}
	return nil
}

func newClassesCmd(a *app) *cobra.Command {
	var spec string
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List declared classes with their resolution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadSpec(spec, a.logger)
			if err != nil {
				return err
			}
			return writeClasses(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().StringVarP(&spec, "spec", "s", "", "declaration file or directory")
	_ = cmd.MarkFlagRequired("spec")
	return cmd
}

func writeClasses(w io.Writer, doc *specfile.Document) error {
	for _, class := range doc.Classes() {
		marker := "-"
		if class.Declared() {
			marker = "declared"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", class, marker); err != nil {
			return err
		}
	}
	return nil
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Validate declaration documents",
		Long: `check loads every given file or directory on its own and reports the
documents that fail to load. It exits non-zero when any document is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				if _, err := loadSpec(path, a.logger); err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("reprgen: %d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}
}

// loadSpec loads a single file or every document under a directory.
func loadSpec(path string, logger *zap.Logger) (*specfile.Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("reprgen: spec path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reprgen: %w", err)
	}
	if info.IsDir() {
		return specfile.LoadFS(os.DirFS(path), specfile.WithLogger(logger))
	}
	return specfile.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path), specfile.WithLogger(logger))
}
