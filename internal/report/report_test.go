package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"flagcheck/internal/provision"
	"flagcheck/internal/validate"
)

func TestValidation_AllPresent(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Validation(&validate.Report{Missing: []string{}})

	assert.Equal(t, "All required flag files are present!\n", buf.String())
}

func TestValidation_Missing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Validation(&validate.Report{Missing: []string{"USA.tga", "USA_fascist.tga"}})

	want := "The following flag files are missing:\n" +
		"- USA.tga\n" +
		"- USA_fascist.tga\n" +
		"\nPlease review the missing files and add them to the folder.\n"
	assert.Equal(t, want, buf.String())
}

func TestProvision(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Provision(&provision.Result{Outcomes: []provision.Outcome{
		{Name: "USA.tga", Created: true},
		{Name: "USA_fascist.tga", Err: errors.New("permission denied")},
		{Name: "USA_communist.tga", Created: true},
	}})

	want := "Error creating USA_fascist.tga: permission denied\n" +
		"\nCreated the following flag files:\n" +
		"- USA.tga\n" +
		"- USA_communist.tga\n"
	assert.Equal(t, want, buf.String())
}

func TestProvision_NothingCreated(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Provision(&provision.Result{})

	assert.Empty(t, buf.String())
}

func TestHeadingAndTags(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Tags([]string{"GHO", "USA"})
	p.Heading("Initial Flag Check")

	assert.Equal(t, "Found 2 country tags: GHO, USA\n\n=== Initial Flag Check ===\n", buf.String())
}
