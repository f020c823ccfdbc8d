package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/picatz/xai"
	"github.com/picatz/xai/internal/history"
	"github.com/picatz/xai/internal/logging"
	"github.com/picatz/xai/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// rootFlags are the flags of the root command. Verbosity and history flags
// are persistent and shared with the subcommands.
type rootFlags struct {
	license   bool
	verbose   int
	debug     bool
	quiet     bool
	maxTokens int
	markdown  bool
	history   string
}

func newRootCommand(a *app) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "xai-prompter [input] [output]",
		Short: "Send a prompt to the xAI responses API",
		Long: `Send a prompt to the xAI responses API and write the generated text.

The prompt is read from the input file, or from standard input when no input
file is given. The generated text is written to the output file, or to
standard output when no output file is given.

The API key, endpoint, and model are read from the "xai" module manifest and
its environment variables, not from flags. Run "xai-prompter manifest init"
to create a manifest.`,
		Example: `  echo "Why is the sky blue?" | xai-prompter
  xai-prompter prompt.txt answer.md
  XAI_MODEL=grok-4-0709 xai-prompter --max-tokens 512 prompt.txt`,
		Args: cobra.MaximumNArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(logging.LevelFromFlags(flags.verbose, flags.debug, flags.quiet))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.license {
				_, err := io.WriteString(cmd.OutOrStdout(), license)
				return err
			}
			return a.runGenerate(cmd, flags, args)
		},
	}

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	cmd.Flags().BoolVar(&flags.license, "license", false, "print the license and exit")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "upper bound on generated tokens (overrides the max-tokens variable)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "render the generated text as terminal markdown")

	cmd.PersistentFlags().CountVarP(&flags.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only log errors")
	cmd.PersistentFlags().StringVar(&flags.history, "history", "", "directory where exchanges are archived (overrides the history variable)")

	cmd.AddCommand(
		newHistoryCommand(a, flags),
		newManifestCommand(),
	)

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, flags *rootFlags, args []string) error {
	provider, err := a.loadProvider()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(provider)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("max-tokens") {
		if flags.maxTokens <= 0 {
			return fmt.Errorf("--max-tokens must be positive, got %d", flags.maxTokens)
		}
		cfg.maxTokens = &flags.maxTokens
	}
	if flags.history != "" {
		cfg.historyDir = flags.history
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	opts := cfg.options()

	client := xai.NewClient(
		xai.WithHTTPClient(a.httpClient),
		xai.WithLogger(log.Logger),
	)

	texts, err := client.Generate(cmd.Context(), input, opts)
	if err != nil {
		return err
	}

	log.Info().Int("segments", len(texts)).Str("model", opts.Model).Msg("generated response")

	if cfg.historyDir != "" {
		if err := recordExchange(cmd, cfg.historyDir, opts.Model, input, texts); err != nil {
			// The response is still written; a broken archive must not lose it.
			log.Error().Err(err).Str("dir", cfg.historyDir).Msg("unable to archive exchange")
		}
	}

	return writeOutput(cmd, args, texts, flags.markdown)
}

// readInput reads the prompt from the input file when given, or else from
// standard input with surrounding whitespace trimmed.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			log.Error().Err(err).Msg("unable to read input file")
			return "", fmt.Errorf("unable to read input file: %w", err)
		}
		return string(b), nil
	}

	stdin := cmd.InOrStdin()
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		log.Info().Msg("reading prompt from standard input, press Ctrl-D to send")
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		log.Error().Err(err).Msg("unable to read STDIN")
		return "", fmt.Errorf("unable to read standard input: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// writeOutput writes every text segment, back to back, to the output file
// when given, or else to standard output.
func writeOutput(cmd *cobra.Command, args []string, texts []string, markdown bool) (err error) {
	out := cmd.OutOrStdout()

	if len(args) > 1 {
		var f *os.File
		f, err = os.Create(args[1])
		if err != nil {
			log.Error().Err(err).Msg("unable to open output file")
			return fmt.Errorf("unable to open output file: %w", err)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		out = f
	}

	if markdown && len(texts) > 0 {
		s, err := render.Markdown(strings.Join(texts, ""), terminalWidth(out))
		if err != nil {
			return err
		}
		texts = []string{s}
	}

	for _, text := range texts {
		if _, err := io.WriteString(out, text); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
	}

	return nil
}

// terminalWidth returns 3/4 of the terminal width when w is a terminal, and
// 0 (the renderer default) otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width * 3 / 4
}

func recordExchange(cmd *cobra.Command, dir, model, input string, texts []string) error {
	archive, err := history.Open(dir, nil)
	if err != nil {
		return err
	}

	ex, err := archive.Record(cmd.Context(), model, input, texts)
	if err != nil {
		return errors.Join(err, archive.Close(cmd.Context()))
	}

	log.Debug().Str("id", ex.ID).Msg("archived exchange")

	return archive.Close(cmd.Context())
}
