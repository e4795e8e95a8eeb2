package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// options holds the flags shared by run and watch.
type options struct {
	page     string
	script   string
	config   string
	out      string
	site     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pagekit",
		Short: "Replay browser events against an enhanced HTML page",
		Long: `pagekit loads an HTML page, attaches the site's enhancement behaviors
and replays a scripted sequence of browser events against it.

The resulting document is written back out as HTML, and everything the
page did (redirects, scrolls, console output) is logged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func bindFlags(cmd *cobra.Command, o *options) {
	cmd.Flags().StringVarP(&o.page, "page", "p", "", "HTML page to enhance")
	cmd.Flags().StringVarP(&o.script, "script", "s", "", "Event script (YAML); defaults to page lifecycle only")
	cmd.Flags().StringVarP(&o.config, "config", "c", "pagekit.toml", "Path to configuration file")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Write the resulting HTML here instead of stdout")
	cmd.Flags().StringVar(&o.site, "site", "", "Site name used in the page-ready message")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("page")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pagekit %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}
