package grep

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/fathom-search/fathom/internal/models"
)

// ErrToolMissing is returned when the ripgrep binary is not on PATH. Distinct
// from "no matches", which is a success with an empty result.
var ErrToolMissing = errors.New("grep: ripgrep (rg) not found on PATH")

// ToolError reports a ripgrep run that failed outright (exit code > 1).
type ToolError struct {
	Code   int
	Stderr string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("grep: ripgrep exited with code %d: %s", e.Code, strings.TrimSpace(e.Stderr))
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for discarded output lines.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// Client invokes ripgrep against a project tree and decodes its JSON event
// stream into match records.
type Client struct {
	executable string
	logger     *slog.Logger
}

func NewClient(opts ...Option) *Client {
	c := &Client{executable: "rg", logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search runs a case-sensitive literal search under projectRoot. Exit code 1
// from ripgrep means no matches and yields an empty, non-error result.
func (c *Client) Search(
	ctx context.Context,
	projectRoot, pattern string,
) ([]models.LiteralMatch, error) {
	args := []string{
		"--json",
		"--fixed-strings",
		"--context", "1",
		"--",
		pattern,
		projectRoot,
	}
	cmd := exec.CommandContext(ctx, c.executable, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return nil, ErrToolMissing
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("grep: search cancelled: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.ExitCode() == 1 {
				return nil, nil
			}
			return nil, &ToolError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return nil, err
	}
	return c.decode(stdout.Bytes()), nil
}

// rg --json event envelope; only "match" events carry results.
type rgEvent struct {
	Type string `json:"type"`
	Data struct {
		Path struct {
			Text string `json:"text"`
		} `json:"path"`
		Lines struct {
			Text string `json:"text"`
		} `json:"lines"`
		LineNumber     int   `json:"line_number"`
		AbsoluteOffset int64 `json:"absolute_offset"`
		Submatches     []struct {
			Match struct {
				Text string `json:"text"`
			} `json:"match"`
			Start int `json:"start"`
			End   int `json:"end"`
		} `json:"submatches"`
	} `json:"data"`
}

// decode parses the line-delimited JSON stream, discarding context events and
// any lines that are not well-formed records.
func (c *Client) decode(output []byte) []models.LiteralMatch {
	var matches []models.LiteralMatch
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var ev rgEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			c.logger.Debug("discarding unparseable output line", "error", err)
			continue
		}
		if ev.Type != "match" {
			continue
		}
		m := models.LiteralMatch{
			File:           ev.Data.Path.Text,
			LineNumber:     ev.Data.LineNumber,
			Text:           strings.TrimSpace(ev.Data.Lines.Text),
			AbsoluteOffset: ev.Data.AbsoluteOffset,
		}
		for _, sub := range ev.Data.Submatches {
			m.Submatches = append(m.Submatches, models.LiteralExtent{
				Start: sub.Start,
				End:   sub.End,
				Text:  sub.Match.Text,
			})
		}
		matches = append(matches, m)
	}
	return matches
}
