// Package session drives the interactive check-and-fill workflow.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"flagcheck/internal/config"
	"flagcheck/internal/provision"
	"flagcheck/internal/report"
	"flagcheck/internal/store"
	"flagcheck/internal/tags"
	"flagcheck/internal/validate"
)

const (
	promptDir     = "Enter the path to the folder containing the flag files: "
	promptTagFile = "Enter the path to the countries.txt file: "
	promptCreate  = "\nDo you want to create the missing flags? (y/n): "
)

// Session holds the answers and collaborators for one run. Directory,
// TagFile and AssumeYes pre-answer the corresponding prompts.
type Session struct {
	In     io.Reader
	Out    io.Writer
	Layout config.FlagLayout
	Logger *zap.Logger

	Directory string
	TagFile   string
	AssumeYes bool
}

type Summary struct {
	StartedAt time.Time
	Directory string
	TagFile   string
	Tags      []string
	TagsErr   error

	Initial      *validate.Report
	Declined     bool
	Provision    *provision.Result
	ProvisionErr error
	Verification *validate.Report
}

// Succeeded reports whether the run ended with a complete flag set.
func (s *Summary) Succeeded() bool {
	if s.Verification != nil {
		return s.Verification.Complete()
	}
	return s.Initial != nil && s.Initial.Complete() && len(s.Tags) > 0
}

// Run executes the prompts and the check/fill sequence. Errors are only
// returned for failures of the session itself; tag file and copy problems
// are printed and recorded in the Summary.
func (s *Session) Run(ctx context.Context) (*Summary, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	input := s.In
	if input == nil {
		input = strings.NewReader("")
	}
	in := bufio.NewReader(input)
	out := report.NewPrinter(s.Out)
	summary := &Summary{StartedAt: time.Now().UTC()}

	var err error
	if summary.Directory, err = s.answer(in, promptDir, s.Directory); err != nil {
		return nil, err
	}
	if summary.TagFile, err = s.answer(in, promptTagFile, s.TagFile); err != nil {
		return nil, err
	}

	summary.Tags, summary.TagsErr = tags.ReadFile(summary.TagFile)
	if summary.TagsErr != nil {
		out.Error("Error: %v", summary.TagsErr)
	}
	if len(summary.Tags) == 0 {
		out.Line("No valid country tags found in the file. Exiting.")
		return summary, nil
	}
	logger.Debug("read tags", zap.String("file", summary.TagFile), zap.Int("count", len(summary.Tags)))
	out.Tags(summary.Tags)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	out.Heading("Initial Flag Check")
	summary.Initial = validate.Run(summary.Directory, summary.Tags, s.Layout)
	out.Validation(summary.Initial)

	if summary.Initial.Complete() {
		out.Line("\nNo need to create any missing files.")
		return summary, nil
	}

	confirmed := s.AssumeYes
	if !confirmed {
		reply, err := s.answer(in, promptCreate, "")
		if err != nil {
			return summary, err
		}
		confirmed = strings.EqualFold(reply, "y")
	}
	if !confirmed {
		summary.Declined = true
		return summary, nil
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	out.Heading("Creating Missing Flags")
	summary.Provision, summary.ProvisionErr = provision.Run(summary.Directory, summary.Initial.Missing, s.Layout, provision.Options{Logger: logger})
	if summary.ProvisionErr != nil {
		out.Error("Error: %v", summary.ProvisionErr)
	} else {
		out.Provision(summary.Provision)
	}

	if !summary.Provision.OK() {
		out.Line("\nSome files could not be created. Please check the errors above.")
		return summary, nil
	}

	out.Heading("Verification Flag Check")
	summary.Verification = validate.Run(summary.Directory, summary.Tags, s.Layout)
	out.Validation(summary.Verification)
	return summary, nil
}

// answer prints prompt and reads one trimmed line, unless preset is already
// filled in. End of input counts as an empty answer.
func (s *Session) answer(in *bufio.Reader, prompt, preset string) (string, error) {
	if preset != "" {
		return strings.TrimSpace(preset), nil
	}
	fmt.Fprint(s.Out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Record converts the summary into a history entry.
func (s *Summary) Record() store.Run {
	run := store.Run{
		ID:        store.NewRunID(),
		StartedAt: s.StartedAt,
		Directory: s.Directory,
		TagFile:   s.TagFile,
		TagCount:  len(s.Tags),
	}
	if s.Initial != nil {
		run.Missing = append([]string(nil), s.Initial.Missing...)
	}
	if s.Provision != nil {
		run.Created = len(s.Provision.Created())
		run.Failed = len(s.Provision.Failed())
	}
	if s.Verification != nil {
		run.Verified = true
		run.MissingAfter = len(s.Verification.Missing)
	}
	return run
}
