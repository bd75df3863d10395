package highlight

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/highlight/internal/version"
	"github.com/arthur-debert/highlight/pkg/cobrax/topics"
	"github.com/arthur-debert/highlight/pkg/config"
	hl "github.com/arthur-debert/highlight/pkg/highlight"
	"github.com/arthur-debert/highlight/pkg/logging"
	"github.com/arthur-debert/highlight/pkg/syntax"
	"github.com/arthur-debert/highlight/pkg/themes"
	"github.com/arthur-debert/highlight/pkg/types"
	"github.com/arthur-debert/highlight/pkg/ui"
)

// ReportedError wraps an error that has already been written to the
// command's error output
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already written out
func IsReported(err error) bool {
	var reported *ReportedError
	return stderrors.As(err, &reported)
}

type rootOptions struct {
	verbosity   int
	theme       string
	listThemes  bool
	file        string
	contentType string
	configPath  string
	output      string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "highlight [language]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		ValidArgsFunction: languageCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, opts, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.theme, "theme", "t", "", MsgFlagTheme)
	flags.BoolVarP(&opts.listThemes, "list-themes", "l", false, MsgFlagListThemes)
	flags.StringVarP(&opts.file, "file", "f", "", MsgFlagFile)
	flags.StringVar(&opts.contentType, "content-type", "", MsgFlagContentType)
	flags.StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	flags.StringVarP(&opts.output, "output", "o", ui.FormatTerminal.String(), MsgFlagOutput)

	_ = rootCmd.RegisterFlagCompletionFunc("theme", themeCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"term", "auto", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkFlagFilename("file")
	_ = rootCmd.MarkFlagFilename("config", "toml", "yaml", "yml")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if _, err := topics.InitializeWithOptions(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func runHighlight(cmd *cobra.Command, opts *rootOptions, args []string) error {
	format, err := ui.ParseFormat(opts.output)
	if err != nil {
		return fmt.Errorf(MsgErrFormat, err)
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	result, err := execute(cmd, opts, args)
	if err != nil {
		return report(cmd, format, err)
	}
	return ui.Render(renderer, result)
}

// report writes err to the error output in the selected format
func report(cmd *cobra.Command, format ui.Format, err error) error {
	renderer, rerr := ui.NewRenderer(format, cmd.ErrOrStderr())
	if rerr != nil {
		return err
	}
	if rerr := renderer.RenderError(err); rerr != nil {
		return err
	}
	return &ReportedError{Err: err}
}

func execute(cmd *cobra.Command, opts *rootOptions, args []string) (*hl.Result, error) {
	logger := logging.GetLogger("cli")

	sources, err := config.Load(config.Options{ConfigPath: opts.configPath})
	if err != nil {
		return nil, err
	}

	req := hl.Request{
		ListThemes: opts.listThemes,
		Sources:    sources,
		Metadata: types.Metadata{
			ContentType: opts.contentType,
			SourcePath:  opts.file,
		},
	}
	if len(args) > 0 {
		req.Hint = args[0]
	}
	if cmd.Flags().Changed("theme") {
		req.ThemeFlag = &types.Value{
			Raw:  opts.theme,
			Span: types.Span{Kind: types.SourceFlag, Key: "theme"},
		}
	}

	if !opts.listThemes {
		input, err := readInput(cmd.InOrStdin(), opts.file)
		if err != nil {
			return nil, err
		}
		req.Input = input
	}

	result, err := hl.New(syntax.New(), themes.NewBuiltin()).Run(req)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("grammar", result.Grammar).Str("theme", string(result.Theme)).Msg("Run finished")
	return result, nil
}

// readInput returns the bytes of file, or of stdin when file is empty. A
// terminal stdin is refused rather than waited on.
func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf(MsgErrReadInput, err)
		}
		return data, nil
	}

	if f, ok := stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil, stderrors.New(MsgErrNoInput)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf(MsgErrReadInput, err)
	}
	return data, nil
}

// languageCompletion offers the short name of every grammar
func languageCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	seen := make(map[string]bool)
	var names []string
	for _, g := range syntax.New().Grammars() {
		name := strings.ToLower(g.Name())
		if aliases := g.Aliases(); len(aliases) > 0 {
			name = aliases[0]
		}
		if !seen[name] && strings.HasPrefix(name, toComplete) {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, cobra.ShellCompDirectiveNoFileComp
}

// themeCompletion offers the built-in and custom theme ids
func themeCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var custom *themes.Collection
	if sources, err := config.Load(config.Options{}); err == nil {
		if path := sources.CustomThemesPath(); path != "" {
			custom, _ = themes.LoadCustom(path)
		}
	}

	var ids []string
	for _, id := range themes.NewCatalog(themes.NewBuiltin(), custom).IDs() {
		if strings.HasPrefix(string(id), toComplete) {
			ids = append(ids, string(id))
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				return fmt.Errorf(MsgErrCompletion, args[0], err)
			}
			return nil
		},
	}
}
