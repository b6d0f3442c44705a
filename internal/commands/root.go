package commands

import (
	"errors"
	"os"

	"github.com/moasq/tuimenu/internal/config"
	"github.com/moasq/tuimenu/internal/logging"
	"github.com/moasq/tuimenu/internal/menu"
	"github.com/moasq/tuimenu/internal/terminal"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// ErrCancelled is returned when the user leaves the menu without choosing.
var ErrCancelled = errors.New("selection cancelled")

// Exit codes.
const (
	ExitOK        = 0
	ExitCancelled = 1
	ExitError     = 2
)

var rootCmd = &cobra.Command{
	Use:   "tuimenu [flags] ENTRY...",
	Short: "Pick one item from a menu in the terminal",
	Long: `tuimenu draws a menu on the terminal, reads the label the user types and
prints the tag of the chosen item on stdout.

Each ENTRY is either "[Heading]", which opens a group, or items separated by
"|" whose elements are separated by ",":

  tuimenu -d 1 -t 10 "[Fruits]" "a,Apple,1|b,Banana,2"`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelect(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an Execute error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrCancelled):
		return ExitCancelled
	}
	return ExitError
}

// ReportError appends err to the log file and shows it on stderr.
func ReportError(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	terminal.Error(err.Error())
}

// flags holds the raw definition flag values shared by every subcommand.
var flags config.Flags

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.Prompt, config.FlagPrompt, "p", config.DefaultPrompt, "prompt shown before the input (markup allowed)")
	pf.StringVarP(&flags.Default, config.FlagDefault, "d", "", "tag chosen when the prompt times out")
	pf.StringVarP(&flags.Timeout, config.FlagTimeout, "t", "", "give up after this long, e.g. 30s or 2.5 (seconds)")
	pf.StringVar(&flags.Format, config.FlagFormat, menu.DefaultFieldOrder, "order of the elements inside an item")
	pf.StringVar(&flags.ItemDelimiter, config.FlagItemDelimiter, menu.DefaultItemDelimiter, "separator between the items of one entry")
	pf.StringVar(&flags.ElementDelimiter, config.FlagElementDelimiter, menu.DefaultElementDelimiter, "separator between the elements of an item")
	pf.StringVarP(&flags.File, config.FlagFile, "f", "", "YAML menu definition file")
	pf.StringVarP(&flags.Output, config.FlagOutput, "o", config.OutputTag, "what to print: tag, label, text or json")
	pf.StringVar(&flags.LogFile, config.FlagLogFile, "", "log file (default tuimenu.log)")
	pf.BoolVar(&flags.Trace, config.FlagTrace, false, "append JSON trace entries to the log file")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mcpCmd)
}

// loadConfig merges flags, environment and definition file, and applies the
// logging settings.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	f := flags
	f.Changed = cmd.Flags().Changed
	cfg, err := config.Load(config.Sources{Flags: f, Args: args, Environ: os.Environ()})
	if err != nil {
		return config.Config{}, err
	}

	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	for _, w := range cfg.Warnings {
		terminal.Warning(w)
	}
	return cfg, nil
}
