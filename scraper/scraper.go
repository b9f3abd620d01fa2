package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"wml-taglinks/config"
	"wml-taglinks/fetcher"
	"wml-taglinks/filter"
	"wml-taglinks/parser"
	"wml-taglinks/properties"
	"wml-taglinks/writer"
)

// Pipeline stages, used to categorise failures
const (
	StageFetch = "fetch"
	StageParse = "parse"
	StageWrite = "write"
)

// StageError wraps the failure of one pipeline stage
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result summarises a completed run
type Result struct {
	URL     string
	Path    string
	Found   int // Anchors found in data rows
	Skipped int // Anchors dropped by the missing href policy
	Written int // Lines written to the properties file
}

// Scraper runs fetch, parse, transform and write in sequence
type Scraper struct {
	cfg     *config.Config
	fetcher fetcher.Fetcher
	parser  *parser.Parser
	filter  *filter.Filter
	writer  *writer.Writer
}

// NewScraper wires a Scraper from cfg using the given fetcher
func NewScraper(cfg *config.Config, f fetcher.Fetcher) *Scraper {
	return &Scraper{
		cfg:     cfg,
		fetcher: f,
		parser:  parser.NewParser(),
		filter:  filter.NewFilter(cfg),
		writer:  writer.NewWriter(cfg.OutputPath),
	}
}

// Run performs a single pass. Nothing is written unless fetching and
// parsing both succeed.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		URL:  s.cfg.TargetURL(),
		Path: s.writer.Path(),
	}

	slog.Info("fetching reference page", "url", res.URL)
	body, err := s.fetcher.Fetch(ctx, res.URL)
	if err != nil {
		return nil, &StageError{Stage: StageFetch, Err: err}
	}

	links, err := s.parser.ParseLinks(body)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}
	res.Found = len(links)

	links, skipped, err := s.filter.Apply(links)
	res.Skipped = skipped
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}
	slog.Debug("parsed links", "found", res.Found, "skipped", res.Skipped)

	entries := properties.Format(s.cfg.BaseURL, links, s.cfg.Escape)

	written, err := s.writer.WriteEntries(entries)
	res.Written = written
	if err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}

	return res, nil
}
