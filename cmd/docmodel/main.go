package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/docmodel"
	"github.com/reoring/docmodel/schema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	var err error
	switch args[0] {
	case "validate":
		err = validateCmd(args[1:], stdout, stderr)
	case "jsonschema":
		err = jsonSchemaCmd(args[1:], stdout, stderr)
	case "convert":
		err = convertCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
	switch {
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errUsage):
		return 2
	case errors.Is(err, errInvalid):
		return 1
	case err != nil:
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

var (
	errUsage   = errors.New("usage")
	errInvalid = errors.New("document is invalid")
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "docmodel CLI\n\nUsage:\n  docmodel validate -rules rules.yaml [-env .env] [-v] doc.json|doc.yaml...\n  docmodel jsonschema -rules rules.yaml\n  docmodel convert -to json|yaml doc.json|doc.yaml\n\nNotes:\n  - Settings are read from DOCMODEL_* environment variables.")
}

func newFlags(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func loadSchema(path string, logger *slog.Logger) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	s, err := schema.FromYAML(data, schema.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// readDocument decodes a JSON or YAML file, chosen by extension.
func readDocument(path string, settings *docmodel.Settings) (*docmodel.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opt := docmodel.WithSettings(settings)
	var d *docmodel.Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		d, err = docmodel.ParseYAML(data, opt)
	default:
		d, err = docmodel.ParseJSON(data, opt)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func validateCmd(args []string, stdout, stderr io.Writer) error {
	fs := newFlags("validate", stderr)
	var rules, envFile string
	var verbose bool
	fs.StringVar(&rules, "rules", "", "YAML rule file")
	fs.StringVar(&envFile, "env", "", "optional dotenv file with DOCMODEL_* settings")
	fs.BoolVar(&verbose, "v", false, "log each violation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rules == "" || fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	settings, err := docmodel.LoadSettings(envFiles...)
	if err != nil {
		return err
	}
	s, err := loadSchema(rules, logger)
	if err != nil {
		return err
	}

	invalid := false
	for _, path := range fs.Args() {
		d, err := readDocument(path, settings)
		if err != nil {
			return err
		}
		res := s.Validate(d)
		if res.IsValid() {
			fmt.Fprintf(stdout, "%s: ok\n", path)
			continue
		}
		invalid = true
		for _, v := range res.Violations {
			fmt.Fprintf(stdout, "%s: %s: %s\n", path, v.FieldPath, v.Message)
		}
	}
	if invalid {
		return errInvalid
	}
	return nil
}

func jsonSchemaCmd(args []string, stdout, stderr io.Writer) error {
	fs := newFlags("jsonschema", stderr)
	var rules string
	fs.StringVar(&rules, "rules", "", "YAML rule file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rules == "" {
		fs.Usage()
		return errUsage
	}
	s, err := loadSchema(rules, slog.New(slog.DiscardHandler))
	if err != nil {
		return err
	}
	out, err := s.JSONSchema()
	if err != nil {
		return err
	}
	b, err := j.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(b))
	return err
}

func convertCmd(args []string, stdout, stderr io.Writer) error {
	fs := newFlags("convert", stderr)
	var to string
	fs.StringVar(&to, "to", "json", "output format: json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || (to != "json" && to != "yaml") {
		fs.Usage()
		return errUsage
	}
	settings, err := docmodel.LoadSettings()
	if err != nil {
		return err
	}
	d, err := readDocument(fs.Arg(0), settings)
	if err != nil {
		return err
	}
	var b []byte
	if to == "yaml" {
		b, err = yaml.Marshal(d)
	} else {
		b, err = d.MarshalJSON()
		b = append(b, '\n')
	}
	if err != nil {
		return err
	}
	_, err = stdout.Write(b)
	return err
}
