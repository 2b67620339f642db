package cli

import (
	"fmt"
	"os"
	"strings"

	"densebit/dense"
	"densebit/dense/dalpha"
	"densebit/dense/dschema"
	"densebit/dense/dsize"
	"densebit/dense/dvalid"
	"densebit/ui"
	"github.com/alexflint/go-arg"
	"github.com/goccy/go-json"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	Args struct {
		Encode  *EncodeCmd  `arg:"subcommand:encode"`
		Decode  *DecodeCmd  `arg:"subcommand:decode"`
		Inspect *InspectCmd `arg:"subcommand:inspect"`
		Verbose bool        `arg:"-v,--verbose" help:"log codec statistics"`
	}
	EncodeCmd struct {
		Schema   string `arg:"required" help:"path to schema document" placeholder:"schema.json"`
		In       string `arg:"required" help:"path to JSON data" placeholder:"data.json"`
		Out      string `help:"destination file; stdout when omitted"`
		Alphabet string `help:"base64url, base45qr, or a custom symbol string"`
		Force    bool   `help:"overwrite the destination file"`
	}
	DecodeCmd struct {
		Schema   string `arg:"required" help:"path to schema document" placeholder:"schema.json"`
		In       string `arg:"required" help:"path to encoded payload" placeholder:"payload.txt"`
		Out      string `help:"destination file; stdout when omitted"`
		Alphabet string `help:"base64url, base45qr, or a custom symbol string"`
		Force    bool   `help:"overwrite the destination file"`
	}
	InspectCmd struct {
		Schema string `arg:"required" help:"path to schema document" placeholder:"schema.json"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"densebit packs structured data into the fewest bits its schema allows.\n",
			"Both sides of a payload must hold the identical schema document;",
			"the encoded string carries no framing and no self-description.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

func loadSchema(path string) (dense.Schema, error) {
	documentBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "loadSchema error: read schema document")
	}
	return dschema.Parse(documentBytes)
}

func writeOutput(path string, content []byte, force bool) error {
	if path == "" {
		fmt.Println(string(content))
		return nil
	}
	if CheckExistence(path) && !force {
		return fmt.Errorf(
			"destination file %s exists; pass --force to allow overwriting", path,
		)
	}
	return os.WriteFile(path, content, 0644)
}

func StartEncoding(cmd *EncodeCmd, logger *zap.Logger) error {
	schema, err := loadSchema(cmd.Schema)
	if err != nil {
		return err
	}
	alphabet, err := dalpha.ByName(cmd.Alphabet)
	if err != nil {
		return err
	}
	dataBytes, err := os.ReadFile(cmd.In)
	if err != nil {
		return errors.Wrap(err, "StartEncoding error: read data file")
	}
	record := orderedmap.New()
	if err := json.Unmarshal(dataBytes, record); err != nil {
		return errors.Wrap(err, "StartEncoding error: unmarshal data file")
	}
	if issues := dvalid.Validate(schema, record); len(issues) > 0 {
		return issues
	}
	encoded, err := dense.Encode(schema, record, alphabet)
	if err != nil {
		return err
	}
	if measurement, err := dsize.Measure(schema, record); err == nil {
		logger.Info(
			"encoded",
			zap.Int("fields", len(schema)),
			zap.Int("total_bits", measurement.TotalBits),
			zap.Int("symbols", len(encoded)),
			zap.String("alphabet", alphabet.String()),
		)
	}
	return writeOutput(cmd.Out, []byte(encoded), cmd.Force)
}

func StartDecoding(cmd *DecodeCmd, logger *zap.Logger) error {
	schema, err := loadSchema(cmd.Schema)
	if err != nil {
		return err
	}
	alphabet, err := dalpha.ByName(cmd.Alphabet)
	if err != nil {
		return err
	}
	payloadBytes, err := os.ReadFile(cmd.In)
	if err != nil {
		return errors.Wrap(err, "StartDecoding error: read payload file")
	}
	encoded := strings.TrimSpace(string(payloadBytes))
	record, err := dense.Decode(schema, encoded, alphabet)
	if err != nil {
		return err
	}
	recordBytes, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Wrap(err, "StartDecoding error: marshal record")
	}
	logger.Info(
		"decoded",
		zap.Int("fields", len(schema)),
		zap.Int("symbols", len(encoded)),
		zap.String("alphabet", alphabet.String()),
	)
	return writeOutput(cmd.Out, recordBytes, cmd.Force)
}

func StartInspecting(cmd *InspectCmd) error {
	schema, err := loadSchema(cmd.Schema)
	if err != nil {
		return err
	}
	return ui.Start(schema)
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)

	logger := zap.NewNop()
	if args.Verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	err := error(nil)
	switch {
	case args.Encode != nil:
		err = StartEncoding(args.Encode, logger)
	case args.Decode != nil:
		err = StartDecoding(args.Decode, logger)
	case args.Inspect != nil:
		err = StartInspecting(args.Inspect)
	default:
		parser.WriteHelp(os.Stdout)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
