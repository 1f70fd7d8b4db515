// Package cli implements the jsonapi command: validating and reformatting
// JSON:API documents stored as JSON or YAML.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hypermedia-go/jsonapi"
	"github.com/hypermedia-go/jsonapi/jsonapiyaml"
	"github.com/urfave/cli/v3"
)

// Formats accepted by --input-format and --output-format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrInvalidDocument is returned by the validate command when the document
// decodes but fails validation.
var ErrInvalidDocument = errors.New("invalid document")

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitFailure = 2
)

// Run executes the command line args and returns the process exit code.
// Failures other than an invalid document are logged to errOut through the
// handler configured by --log-level.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	cmd := a.command()
	if err := cmd.Run(ctx, args); err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			return ExitInvalid
		}
		a.logger(cmd).Error("jsonapi error", slog.String("error", err.Error()))
		return ExitFailure
	}
	return ExitOK
}

// New returns the root command reading from in and writing results to out
// and diagnostics to errOut.
func New(in io.Reader, out, errOut io.Writer) *cli.Command {
	a := &app{in: in, out: out, errOut: errOut}
	return a.command()
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "jsonapi",
		Usage:     "Validate and reformat JSON:API documents",
		Writer:    a.out,
		ErrWriter: a.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("JSONAPI_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Check the structure of a document",
				ArgsUsage: "[FILE|-]",
				Action:    a.validate,
				Flags: []cli.Flag{
					inputFormatFlag(),
					&cli.BoolFlag{Name: "strict", Usage: "Reject unknown members"},
					&cli.BoolFlag{Name: "full-linkage", Usage: "Require every included resource to be linked from primary data"},
					&cli.BoolFlag{Name: "allow-missing-ids", Usage: "Accept primary resources without id"},
					&cli.BoolFlag{Name: "require-supported-version", Usage: "Require a supported jsonapi.version"},
				},
			},
			{
				Name:      "fmt",
				Usage:     "Decode a document and write it back",
				ArgsUsage: "[FILE|-]",
				Action:    a.format,
				Flags: []cli.Flag{
					inputFormatFlag(),
					&cli.StringFlag{
						Name:    "output-format",
						Aliases: []string{"o"},
						Usage:   "Output format (json, yaml)",
						Value:   FormatJSON,
						Sources: cli.EnvVars("JSONAPI_OUTPUT_FORMAT"),
					},
					&cli.BoolFlag{Name: "indent", Usage: "Indent JSON output"},
				},
			},
		},
	}
}

func inputFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "input-format",
		Aliases: []string{"i"},
		Usage:   "Input format (json, yaml); inferred from the file extension when empty",
	}
}

func (a *app) logger(cmd *cli.Command) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
}

func (a *app) validate(ctx context.Context, cmd *cli.Command) error {
	log := a.logger(cmd)

	doc, err := a.readDocument(cmd, log)
	if err != nil {
		return err
	}

	var opts []jsonapi.ValidateOption
	if cmd.Bool("strict") {
		opts = append(opts, jsonapi.WithRejectUnknownMembers())
	}
	if cmd.Bool("full-linkage") {
		opts = append(opts, jsonapi.WithRequireFullLinkage())
	}
	if cmd.Bool("allow-missing-ids") {
		opts = append(opts, jsonapi.WithAllowMissingIDs())
	}
	if cmd.Bool("require-supported-version") {
		opts = append(opts, jsonapi.WithRequireSupportedVersion())
	}

	if err := doc.Validate(opts...); err != nil {
		var verr *jsonapi.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for _, p := range verr.Problems {
			fmt.Fprintln(a.out, p)
		}
		log.Info("validation failed", slog.Int("problems", len(verr.Problems)))
		return ErrInvalidDocument
	}

	fmt.Fprintln(a.out, "valid")
	return nil
}

func (a *app) format(ctx context.Context, cmd *cli.Command) error {
	log := a.logger(cmd)

	doc, err := a.readDocument(cmd, log)
	if err != nil {
		return err
	}

	var out []byte
	switch f := strings.ToLower(cmd.String("output-format")); f {
	case FormatJSON:
		out, err = json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		if cmd.Bool("indent") {
			var buf bytes.Buffer
			if err := json.Indent(&buf, out, "", "  "); err != nil {
				return fmt.Errorf("indent document: %w", err)
			}
			out = buf.Bytes()
		}
		out = append(out, '\n')
	case FormatYAML:
		out, err = jsonapiyaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", f)
	}

	log.Debug("writing document", slog.String("format", cmd.String("output-format")), slog.Int("bytes", len(out)))
	_, err = a.out.Write(out)
	return err
}

func (a *app) readDocument(cmd *cli.Command, log *slog.Logger) (jsonapi.Document, error) {
	name := cmd.Args().First()
	var (
		data []byte
		err  error
	)
	if name == "" || name == "-" {
		name = "-"
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return jsonapi.Document{}, fmt.Errorf("read %s: %w", name, err)
	}

	format := strings.ToLower(cmd.String("input-format"))
	if format == "" {
		format = inferFormat(name)
	}
	log.Debug("decoding document", slog.String("source", name), slog.String("format", format), slog.Int("bytes", len(data)))

	var doc jsonapi.Document
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = jsonapiyaml.Unmarshal(data, &doc)
	default:
		return jsonapi.Document{}, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return jsonapi.Document{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return doc, nil
}

func inferFormat(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}
