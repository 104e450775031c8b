// Command metascope extracts file metadata from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/openmeta/metascope"
	"github.com/openmeta/metascope/internal/render"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "metascope",
		Short:         "Format-dispatching metadata extraction",
		Version:       metascope.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newFormatsCmd(), newFieldsCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	var (
		tierName    string
		displayName string
		output      string
		timeout     time.Duration
		parallel    bool
	)

	cmd := &cobra.Command{
		Use:   "extract <file>...",
		Short: "Extract metadata from one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := metascope.ParseTier(tierName)
			if err != nil {
				return err
			}
			display, err := metascope.ParseDisplayLevel(displayName)
			if err != nil {
				return err
			}
			enc, err := render.ParseEncoding(output)
			if err != nil {
				return err
			}

			opts := []metascope.Option{
				metascope.WithTier(tier),
				metascope.WithDisplayLevel(display),
				metascope.WithPluginTimeout(timeout),
			}
			if parallel {
				opts = append(opts, metascope.WithConcurrency(runtime.NumCPU()))
			}

			eng := metascope.New(opts...)
			envs, err := eng.ExtractMany(context.Background(), args)
			if err != nil {
				return err
			}

			for _, env := range envs {
				data, err := render.Encode(env, enc)
				if err != nil {
					return err
				}
				cmd.OutOrStdout().Write(data)
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tierName, "tier", "free", "subscription tier (free, professional, forensic, enterprise)")
	cmd.Flags().StringVar(&displayName, "display", "simple", "display level (simple, advanced, raw)")
	cmd.Flags().StringVar(&output, "output", "json", "output encoding (json, yaml, cbor)")
	cmd.Flags().DurationVar(&timeout, "plugin-timeout", 3*time.Second, "per-plugin timeout")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run plugins for distinct formats concurrently")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List registered decoder plugins",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range metascope.RegisteredPlugins() {
				count := "-"
				if fc, ok := p.(metascope.FieldCounter); ok {
					count = fmt.Sprintf("%d", fc.FieldCount())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s formats=%v fields=%s\n", p.Name(), p.Formats(), count)
			}
			return nil
		},
	}
}

func newFieldsCmd() *cobra.Command {
	var standard string
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List catalog field definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := metascope.DefaultCatalog()
			standards := cat.Standards()
			if standard != "" {
				standards = []string{standard}
			}
			for _, std := range standards {
				for _, def := range cat.Standard(std) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\t%s\ttier=%s\tdisplay=%s\n",
						def.Standard, def.Name, def.Type, def.MinTier, def.Display)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&standard, "standard", "", "limit to one standard (e.g. exif, id3v2)")
	return cmd
}
