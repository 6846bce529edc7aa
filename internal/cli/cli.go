package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/vk/preconfig/internal/app"
	"github.com/vk/preconfig/internal/errs"
	"github.com/vk/preconfig/internal/format"
	"github.com/vk/preconfig/internal/params"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode maps an error to the process exit code: an ExitError's own Code,
// 2 for user mistakes (template syntax, flag validation), 1 for everything
// else.
func ExitCode(err error) int {
	var syntaxErr *errs.SyntaxError
	var validationErr *errs.ValidationError
	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.As(err, &syntaxErr), errors.As(err, &validationErr):
		return 2
	default:
		return 1
	}
}

// NewCommand builds the root cobra command. The template is read from the
// positional file argument, or from inR when no argument is given.
func NewCommand(inR io.Reader, outW, errW io.Writer) *cobra.Command {
	var (
		formatFlag     string
		paramFlags     []string
		paramsFileFlag string
		outputFlag     string
		logLevelFlag   string
		logFormatFlag  string
	)

	cmd := &cobra.Command{
		Use:   "preconfig [<file>]",
		Short: "Resolve ${...} control expressions in configuration templates",
		Long: `preconfig resolves control expressions of the form ` + "`${source:path}`" + ` or
` + "`${source(arg):path}`" + ` in text, JSON or YAML templates. Sources are
runtime parameters (para), the process environment (env), other files
(file), the document itself (self), and base64 transcoding.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parameters, err := gatherParameters(paramsFileFlag, paramFlags)
			if err != nil {
				return err
			}

			cfg := &app.Config{
				Format:     formatFlag,
				OutputPath: outputFlag,
				Parameters: parameters,
				LogLevel:   logLevelFlag,
				LogFormat:  logFormatFlag,
			}
			if len(args) == 1 {
				cfg.InputPath = args[0]
			}

			a := app.New(inR, outW, errW, cfg)
			return a.Run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", format.Text, "Output format: text, json or yaml.")
	cmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "Parameter as key=value; repeatable.")
	cmd.Flags().StringVar(&paramsFileFlag, "params-file", "", "HCL file of top-level attributes used as parameters.")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the result to a file instead of stdout.")
	cmd.Flags().StringVar(&logLevelFlag, "log-level", "info", "Logging level: debug, info, warn or error.")
	cmd.Flags().StringVar(&logFormatFlag, "log-format", "text", "Log output format: text or json.")

	cmd.SetIn(inR)
	cmd.SetOut(outW)
	cmd.SetErr(errW)
	return cmd
}

// gatherParameters merges file-sourced parameters with -p pairs; pairs win.
func gatherParameters(paramsFile string, pairs []string) (map[string]string, error) {
	fromFile := map[string]string{}
	if paramsFile != "" {
		loaded, err := params.LoadFile(paramsFile)
		if err != nil {
			return nil, err
		}
		fromFile = loaded
	}
	fromPairs, err := params.ParsePairs(pairs)
	if err != nil {
		return nil, err
	}
	return params.Merge(fromFile, fromPairs), nil
}
