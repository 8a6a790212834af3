// Command scssparse parses SCSS stylesheets, values and selectors and prints the resulting tree.
package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scssgo/parse/scss"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	format      string
	encoding    string
	sourceIndex int
	debug       bool
	noColor     bool
	watch       bool

	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "scssparse",
		Short:         "Parse SCSS stylesheets into a syntax tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "o", "tree", "Output format: tree, yaml or stats")
	rootCmd.PersistentFlags().StringVar(&opts.encoding, "encoding", "utf-8", "Source encoding, anything but utf-8 restricts identifiers to ASCII")
	rootCmd.PersistentFlags().IntVar(&opts.sourceIndex, "source-index", 0, "Source index recorded in every node position")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	parseCmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse stylesheets, - reads from stdin",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				return watchFiles(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
			}
			failed := false
			for _, name := range args {
				if err := parseFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, name); err != nil {
					failed = true
				}
			}
			if failed {
				return errParseFailed
			}
			return nil
		},
	}
	parseCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Parse the files again whenever they change")

	valueCmd := &cobra.Command{
		Use:   "value TEXT",
		Short: "Parse a value list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.parser("")
			value, err := p.ParseValue([]byte(args[0]))
			if err != nil {
				printError(cmd.ErrOrStderr(), opts, err)
				return errParseFailed
			}
			return writeValue(cmd.OutOrStdout(), opts.format, value)
		},
	}

	selectorCmd := &cobra.Command{
		Use:   "selector TEXT",
		Short: "Parse a selector list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.parser("")
			list, err := p.ParseSelectors([]byte(args[0]))
			if err != nil {
				printError(cmd.ErrOrStderr(), opts, err)
				return errParseFailed
			}
			return writeSelectors(cmd.OutOrStdout(), opts.format, list)
		},
	}

	rootCmd.AddCommand(parseCmd, valueCmd, selectorCmd)
	return rootCmd
}

var errParseFailed = errors.New("parse failed")

func (opts *options) parser(name string) *scss.Parser {
	return scss.NewParser(name, opts.sourceIndex, opts.encoding, scss.WithLogger(opts.log))
}

// parseFile parses a single file and writes the tree in the configured format. Parse errors are printed to errOut.
func parseFile(out, errOut io.Writer, opts *options, name string) error {
	var src []byte
	var err error
	sourceName := name
	if name == "-" {
		src, err = io.ReadAll(os.Stdin)
		sourceName = ""
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		printError(errOut, opts, err)
		return err
	}

	root, err := opts.parser(sourceName).Parse(src)
	if err != nil {
		printError(errOut, opts, err)
		return err
	}
	opts.log.Debug("parsed", zap.String("file", name), zap.Int("children", len(root.Children)))
	return writeTree(out, opts.format, root)
}
