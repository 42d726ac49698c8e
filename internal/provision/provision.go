// Package provision fills gaps in a flag folder by copying the template flag.
package provision

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"flagcheck/internal/config"
)

var (
	ErrTemplateMissing = errors.New("template flag not found")
	ErrInvalidName     = errors.New("flag name must be a bare file name")
	ErrTemplateTarget  = errors.New("refusing to overwrite the template flag")
)

type Options struct {
	Logger *zap.Logger
}

type Outcome struct {
	Name    string
	Path    string
	Created bool
	Err     error
}

type Result struct {
	Template string
	Outcomes []Outcome
}

func (r *Result) Created() []string {
	names := make([]string, 0, len(r.Outcomes))
	for _, outcome := range r.Outcomes {
		if outcome.Created {
			names = append(names, outcome.Name)
		}
	}
	return names
}

func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, outcome := range r.Outcomes {
		if !outcome.Created {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// OK reports whether every requested file was created.
func (r *Result) OK() bool {
	return r != nil && len(r.Failed()) == 0
}

// Run copies the layout's template flag in dir to each name in missing. It
// returns ErrTemplateMissing before touching the filesystem when the template
// is absent. Failures on individual files are reported in the Result and do
// not stop the remaining copies.
func Run(dir string, missing []string, layout config.FlagLayout, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	templatePath := filepath.Join(dir, layout.TemplateFile())
	info, err := os.Stat(templatePath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, templatePath)
	}

	result := &Result{
		Template: templatePath,
		Outcomes: make([]Outcome, 0, len(missing)),
	}
	for _, name := range missing {
		outcome := Outcome{Name: name, Path: filepath.Join(dir, name)}
		if err := checkName(name, layout.TemplateFile()); err != nil {
			outcome.Err = err
		} else {
			outcome.Err = copyFile(templatePath, outcome.Path, info)
		}
		outcome.Created = outcome.Err == nil

		if outcome.Created {
			logger.Debug("created flag", zap.String("file", outcome.Path))
		} else {
			logger.Warn("creating flag failed", zap.String("file", name), zap.Error(outcome.Err))
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

func checkName(name, template string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if name == template {
		return ErrTemplateTarget
	}
	return nil
}

// copyFile duplicates src into dst with src's permission bits and
// modification time.
func copyFile(src, dst string, info os.FileInfo) error {
	if err := writeCopy(src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting times on %s: %w", filepath.Base(dst), err)
	}
	return nil
}

func writeCopy(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening template: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(dst), err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", filepath.Base(dst), closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying template to %s: %w", filepath.Base(dst), err)
	}
	// OpenFile applies the umask; an existing file also keeps its old mode.
	if err := out.Chmod(perm); err != nil {
		return fmt.Errorf("setting mode on %s: %w", filepath.Base(dst), err)
	}
	return nil
}
