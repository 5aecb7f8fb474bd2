package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report"
	"github.com/pentaho/pentaho-reporting-sub000/pkg/report/outline"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, logLevel string

	root := &cobra.Command{
		Use:          "reportdef",
		Short:        "Inspect banded report definitions",
		Long:         `reportdef builds report definitions from YAML outlines and prints their element trees.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg, err := report.LoadConfigFile(configPath)
				if err != nil {
					return err
				}
				report.SetGlobalConfig(cfg)
			}
			if logLevel != "" {
				cfg := report.GetGlobalConfig()
				cfg.LogLevel = logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
				report.SetGlobalConfig(cfg)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, off)")

	root.AddCommand(newOutlineCmd(), newDeriveCmd(), newVersionCmd())
	return root
}

func newOutlineCmd() *cobra.Command {
	var format string
	var validate bool

	cmd := &cobra.Command{
		Use:   "outline [file]",
		Short: "Build a report from an outline and print its element tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildReport(args[0])
			if err != nil {
				return err
			}
			tree := outline.Summarize(r)
			switch format {
			case "text":
				err = tree.WriteText(cmd.OutOrStdout())
			case "yaml":
				err = tree.WriteYAML(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return err
			}
			if validate {
				return printValidation(cmd, r)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, yaml)")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the structure after building")
	return cmd
}

func newDeriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive [file]",
		Short: "Cache a report template and show that derived copies are isolated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cache := report.NewDefinitionCacheWithConfig(report.CacheConfig{MaxSize: 1})
			defer func() {
				if cerr := cache.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			first, err := cache.AcquireOrLoad(args[0], func() (*report.MasterReport, error) {
				return buildReport(args[0])
			})
			if err != nil {
				return err
			}
			before := first.ChangeTracker()
			first.SetName(first.Name() + "-edited")
			if band := first.ItemBand(); band != nil {
				if err := band.AddElement(report.NewLabel("edited")); err != nil {
					return err
				}
			}

			second, ok := cache.Acquire(args[0])
			if !ok {
				return fmt.Errorf("template %q was not cached", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "edited copy:  name=%q id=%s changes=%d->%d nodes=%d\n",
				first.Name(), first.ObjectID(), before, first.ChangeTracker(), outline.Summarize(first).Count())
			fmt.Fprintf(out, "fresh copy:   name=%q id=%s changes=%d nodes=%d\n",
				second.Name(), second.ObjectID(), second.ChangeTracker(), outline.Summarize(second).Count())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reportdef version %s\n", version)
		},
	}
}

func buildReport(path string) (*report.MasterReport, error) {
	o, err := outline.Load(path)
	if err != nil {
		return nil, err
	}
	return o.Build()
}

func printValidation(cmd *cobra.Command, r *report.MasterReport) error {
	err := report.ValidateDefinition(r)
	if err == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "structure ok")
		return nil
	}
	var verr *report.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for _, issue := range verr.Issues {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %s\n", issue.Severity, issue.Code, issue.Path, issue.Message)
	}
	if verr.HasErrors() {
		return fmt.Errorf("%d structure issues", len(verr.Issues))
	}
	return nil
}
