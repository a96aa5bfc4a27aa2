package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"advisordesk/internal/articulation"
	"advisordesk/internal/config"
	"advisordesk/internal/logging"
	"advisordesk/internal/perception"
)

var (
	// Global flags
	verbose   bool
	workspace string

	// Logger
	logger *zap.Logger

	cfg config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "advisordesk",
	Short: "AdvisorDesk - conversational command pipeline for financial advisors",
	Long: `AdvisorDesk understands free-text advisor requests ("approve the
Sarah Chen email", "what's on my plate today") and turns them into structured
commands, and splits assistant replies with inline card directives into
renderable segments.

Run without arguments to start the interactive chat loop.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		if workspace == "" {
			workspace, _ = os.Getwd()
		}
		cfg, err = config.LoadWorkspace(workspace)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if err := logging.Initialize(workspace, logging.Options{
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			Categories: cfg.Logging.Categories,
		}); err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}
		logging.Boot("%s %s starting", cfg.Name, cfg.Version)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

// parseCmd classifies a single utterance and prints the command as JSON.
var parseCmd = &cobra.Command{
	Use:   "parse <utterance...>",
	Short: "Classify one utterance and extract its entities",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		utterance := strings.Join(args, " ")
		command := perception.Understand(utterance, nil)
		logger.Debug("parsed utterance",
			zap.String("utterance", utterance),
			zap.String("intent", string(command.Intent.Intent)),
			zap.Float64("confidence", command.Intent.Confidence))
		return printJSON(cmd.OutOrStdout(), command)
	},
}

// segmentsCmd parses an assistant reply (argument or stdin) into segments.
var segmentsCmd = &cobra.Command{
	Use:   "segments [reply]",
	Short: "Split an assistant reply into text and card segments",
	Long: `Splits a reply containing inline <<<CARD:type:{...}>>> directives
into an ordered list of segments. With no argument, the reply is read from
stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var message string
		if len(args) == 1 {
			message = args[0]
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			message = string(data)
		}
		return printJSON(cmd.OutOrStdout(), articulation.ParseSegments(message))
	},
}

// cardsCmd lists the card dispatch registry.
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the card types the rendering layer understands",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, cardType := range articulation.CardTypes() {
			c, _ := articulation.Contract(cardType)
			fmt.Fprintf(out, "%-20s %s", c.Type, c.Description)
			if len(c.Required) > 0 {
				fmt.Fprintf(out, " (requires: %s)", strings.Join(c.Required, ", "))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace directory (default: cwd)")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(segmentsCmd)
	rootCmd.AddCommand(cardsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
