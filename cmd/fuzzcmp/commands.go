package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/preprocess"
	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/stream"
	"github.com/baditaflorin/go_fuzzy_compare/internal/config"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/algorithm"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/domain"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/extract"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/fuzzy"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v2"
)

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Score two strings",
		ArgsUsage: "<s1> <s2>",
		Action:    runCompare,
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Rank choices against a query",
		ArgsUsage: "<query> [choice...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "choices-file",
				Aliases: []string{"f"},
				Usage:   "Read choices from files, one per line: a path, a glob such as 'lists/**/*.txt', or '-' for stdin",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of matches (0 = all)",
				Value:   -1,
			},
			&cli.IntFlag{
				Name:  "cutoff",
				Usage: "Drop matches worse than this score",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Scoring goroutines (0 = GOMAXPROCS)",
				Value: -1,
			},
		},
		Action: runExtract,
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List scorers, preprocessors and stemming languages",
		Action: runList,
	}
}

// settings resolves the config file and the global flags into one configuration.
func settings(c *cli.Context) (config.CompareConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.CompareConfig{}, err
	}
	cc := cfg.Compare
	if v := c.String("algorithm"); v != "" {
		cc.Algorithm = v
	}
	if v := c.String("preprocessor"); v != "" {
		cc.Preprocessor = v
	}
	if v := c.String("language"); v != "" {
		cc.Language = v
	}
	if c.Bool("no-preprocess") {
		cc.Preprocessor = preprocess.NameNone
	}
	return cc, nil
}

func cliLogger(c *cli.Context) (ports.Logger, error) {
	if !c.Bool("verbose") {
		return logger.Nop(), nil
	}
	cfg := logger.DefaultConfig(c.App.ErrWriter, false)
	cfg.AsyncWrite = false
	return logger.NewCustomStdLogger(cfg)
}

func buildAlgorithm(cc config.CompareConfig, log ports.Logger) (string, *algorithm.Algorithm, error) {
	scorer, err := fuzzy.ByName(cc.Algorithm)
	if err != nil {
		return "", nil, err
	}
	p, err := cc.BuildPreprocessor()
	if err != nil {
		return "", nil, err
	}
	return fuzzy.NameOf(scorer), algorithm.NewWithPreprocessor(scorer, p).WithLogger(log), nil
}

func runCompare(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("compare needs exactly two arguments: <s1> <s2>", 2)
	}
	cc, err := settings(c)
	if err != nil {
		return err
	}
	log, err := cliLogger(c)
	if err != nil {
		return err
	}
	defer log.Close()

	name, algo, err := buildAlgorithm(cc, log)
	if err != nil {
		return err
	}

	s1, s2 := c.Args().Get(0), c.Args().Get(1)
	result := compareResult{
		Algorithm:      name,
		Preprocessor:   preprocess.Describe(algo.Preprocessor()),
		S1:             s1,
		S2:             s2,
		Score:          algo.Compare(s1, s2),
		HigherIsBetter: fuzzy.HigherIsBetter(name),
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, result)
	}
	_, err = fmt.Fprintln(c.App.Writer, renderCompare(result))
	return err
}

func runExtract(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("extract needs a query", 2)
	}
	cc, err := settings(c)
	if err != nil {
		return err
	}
	log, err := cliLogger(c)
	if err != nil {
		return err
	}
	defer log.Close()

	query := c.Args().First()
	choices := c.Args().Tail()

	name, algo, err := buildAlgorithm(cc, log)
	if err != nil {
		return err
	}

	ecfg := extract.Config{
		HigherIsBetter: fuzzy.HigherIsBetter(name),
		Workers:        cc.Workers,
	}
	if c.IsSet("cutoff") {
		ecfg.Cutoff, ecfg.HasCutoff = c.Int("cutoff"), true
	}
	if c.Int("workers") >= 0 {
		ecfg.Workers = c.Int("workers")
	}
	limit := cc.Limit
	if c.Int("limit") >= 0 {
		limit = c.Int("limit")
	}

	extractor, err := extract.New(algo, ecfg, log)
	if err != nil {
		return err
	}

	var matches []domain.Match
	if path := c.String("choices-file"); path != "" && len(choices) == 0 {
		// Only the choices file: rank it as it streams in.
		matches, err = extractFile(c, extractor, query, path, limit)
	} else {
		if path != "" {
			var fromFile []string
			if fromFile, err = readChoices(c, path, log); err != nil {
				return err
			}
			choices = append(choices, fromFile...)
		}
		matches, err = extractor.Top(c.Context, query, choices, limit)
	}
	if err != nil {
		return err
	}

	result := extractResult{
		Algorithm:      name,
		Preprocessor:   preprocess.Describe(algo.Preprocessor()),
		Query:          query,
		HigherIsBetter: ecfg.HigherIsBetter,
		Matches:        matches,
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, result)
	}
	_, err = fmt.Fprintln(c.App.Writer, renderExtract(result))
	return err
}

func runList(c *cli.Context) error {
	result := listResult{
		Scorers:       fuzzy.Names(),
		Preprocessors: preprocess.Names(),
		Languages:     preprocess.StemLanguages(),
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, result)
	}
	_, err := fmt.Fprintln(c.App.Writer, renderList(result))
	return err
}

// choiceFiles reads several files as one stream of lines.
type choiceFiles struct {
	io.Reader
	files []*os.File
}

func (cf *choiceFiles) Close() error {
	var first error
	for _, f := range cf.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openChoices opens "-" (stdin), a file, or every file matching a doublestar pattern
// such as "lists/**/*.txt".
func openChoices(c *cli.Context, pattern string) (io.ReadCloser, error) {
	if pattern == "-" {
		return io.NopCloser(c.App.Reader), nil
	}

	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid choices pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("failed to open choices file: nothing matches %q", pattern)
	}

	cf := &choiceFiles{}
	readers := make([]io.Reader, 0, 2*len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			cf.Close()
			return nil, fmt.Errorf("failed to open choices file: %w", err)
		}
		cf.files = append(cf.files, f)
		// a file without a trailing newline must not run into the next one
		readers = append(readers, f, strings.NewReader("\n"))
	}
	cf.Reader = io.MultiReader(readers...)
	return cf, nil
}

func readChoices(c *cli.Context, path string, log ports.Logger) ([]string, error) {
	r, err := openChoices(c, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	choices, err := stream.NewLineReader(log, stream.Config{}).ReadAll(c.Context, r)
	if err != nil {
		return nil, fmt.Errorf("failed to read choices: %w", err)
	}
	return choices, nil
}

func extractFile(c *cli.Context, e *extract.Extractor, query, path string, limit int) ([]domain.Match, error) {
	r, err := openChoices(c, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	matches, _, err := e.TopReader(c.Context, query, r, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read choices: %w", err)
	}
	return matches, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
