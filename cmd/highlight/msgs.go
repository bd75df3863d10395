package highlight

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Syntax highlight text for the terminal"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagTheme       = "Theme to render with (see --list-themes)"
	MsgFlagListThemes  = "List the available themes instead of highlighting"
	MsgFlagFile        = "Read input from this file; its name also hints the language"
	MsgFlagContentType = "MIME type of the input, e.g. text/x-toml"
	MsgFlagConfig      = "Configuration file to merge over the user configuration"
	MsgFlagOutput      = "Output format: term, auto, text or json"

	// Error messages
	MsgErrNoInput    = "no input: pipe text on stdin or use --file"
	MsgErrReadInput  = "failed to read input: %w"
	MsgErrFormat     = "invalid --output: %w"
	MsgErrCompletion = "failed to generate %s completion: %w"

	MsgVersionFormat = "highlight version %s\n  commit: %s\n  built:  %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
