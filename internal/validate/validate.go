package validate

import (
	"os"
	"path/filepath"

	"flagcheck/internal/config"
)

type Report struct {
	Directory string
	Tags      []string
	// Checked lists every expected file, tag-major and variant-minor.
	Checked []string
	Missing []string
}

func (r *Report) Complete() bool {
	return r != nil && len(r.Missing) == 0
}

// Run checks dir for the flag files layout expects for each tag. The
// filesystem is read fresh on every call.
func Run(dir string, tags []string, layout config.FlagLayout) *Report {
	report := &Report{
		Directory: dir,
		Tags:      append([]string(nil), tags...),
		Checked:   make([]string, 0, len(tags)*len(layout.Variants)),
		Missing:   []string{},
	}

	for _, tag := range tags {
		for _, name := range layout.Filenames(tag) {
			report.Checked = append(report.Checked, name)
			if !isRegularFile(filepath.Join(dir, name)) {
				report.Missing = append(report.Missing, name)
			}
		}
	}

	return report
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
