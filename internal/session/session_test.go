package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"flagcheck/internal/config"
)

type fixture struct {
	dir     string
	tagFile string
	layout  config.FlagLayout
}

func newFixture(t *testing.T, tagFile string) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		dir:     filepath.Join(root, "flags"),
		tagFile: filepath.Join(root, "countries.txt"),
		layout:  config.DefaultLayout(),
	}
	require.NoError(t, os.Mkdir(f.dir, 0o755))
	require.NoError(t, os.WriteFile(f.tagFile, []byte(tagFile), 0o644))
	return f
}

func (f fixture) write(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(f.dir, name), []byte("flag"), 0o644))
	}
}

func (f fixture) session(t *testing.T, input string, out *bytes.Buffer) *Session {
	return &Session{
		In:     strings.NewReader(input),
		Out:    out,
		Layout: f.layout,
		Logger: zaptest.NewLogger(t),
	}
}

func TestRun_CreatesMissingFlags(t *testing.T) {
	f := newFixture(t, "GHO = Ghana\nUSA = United States\n")
	f.write(t, f.layout.Filenames("GHO")...)

	var out bytes.Buffer
	input := f.dir + "\n" + f.tagFile + "\ny\n"
	summary, err := f.session(t, input, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"GHO", "USA"}, summary.Tags)
	assert.Equal(t, f.layout.Filenames("USA"), summary.Initial.Missing)
	require.NotNil(t, summary.Provision)
	assert.True(t, summary.Provision.OK())
	require.NotNil(t, summary.Verification)
	assert.True(t, summary.Verification.Complete())
	assert.True(t, summary.Succeeded())

	text := out.String()
	assert.Contains(t, text, promptDir)
	assert.Contains(t, text, promptTagFile)
	assert.Contains(t, text, "Found 2 country tags: GHO, USA")
	assert.Contains(t, text, "=== Initial Flag Check ===")
	assert.Contains(t, text, "- USA_republic.tga")
	assert.Contains(t, text, "=== Creating Missing Flags ===")
	assert.Contains(t, text, "Created the following flag files:")
	assert.Contains(t, text, "=== Verification Flag Check ===")
	assert.True(t, strings.HasSuffix(text, "All required flag files are present!\n"))
}

func TestRun_DeclineCreatesNothing(t *testing.T) {
	for _, reply := range []string{"n", "yes", "", "Y "} {
		t.Run(reply, func(t *testing.T) {
			f := newFixture(t, "GHO = Ghana\nUSA = United States\n")
			f.write(t, f.layout.Filenames("GHO")...)

			var out bytes.Buffer
			summary, err := f.session(t, f.dir+"\n"+f.tagFile+"\n"+reply+"\n", &out).Run(context.Background())
			require.NoError(t, err)

			if strings.TrimSpace(reply) == "Y" {
				assert.False(t, summary.Declined)
				assert.NotNil(t, summary.Provision)
				return
			}
			assert.True(t, summary.Declined)
			assert.Nil(t, summary.Provision)
			_, statErr := os.Stat(filepath.Join(f.dir, "USA.tga"))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestRun_NoTagsExits(t *testing.T) {
	f := newFixture(t, "# only comments\n\n# USA = x\n")

	var out bytes.Buffer
	summary, err := f.session(t, f.dir+"\n"+f.tagFile+"\n", &out).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, summary.Tags)
	assert.NoError(t, summary.TagsErr)
	assert.Nil(t, summary.Initial)
	assert.Contains(t, out.String(), "No valid country tags found in the file. Exiting.")
}

func TestRun_MissingTagFile(t *testing.T) {
	f := newFixture(t, "")

	var out bytes.Buffer
	s := f.session(t, "", &out)
	s.Directory = f.dir
	s.TagFile = filepath.Join(f.dir, "nope.txt")
	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Error(t, summary.TagsErr)
	assert.Nil(t, summary.Initial)
	assert.Contains(t, out.String(), "Error: reading tags file")
	assert.NotContains(t, out.String(), promptDir)
}

func TestRun_AllPresent(t *testing.T) {
	f := newFixture(t, "GHO = Ghana\n")
	f.write(t, f.layout.Filenames("GHO")...)

	var out bytes.Buffer
	summary, err := f.session(t, f.dir+"\n"+f.tagFile+"\n", &out).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Succeeded())
	assert.Nil(t, summary.Provision)
	assert.Contains(t, out.String(), "No need to create any missing files.")
	assert.NotContains(t, out.String(), "(y/n)")
}

func TestRun_TemplateMissing(t *testing.T) {
	f := newFixture(t, "USA = United States\n")

	var out bytes.Buffer
	s := f.session(t, "", &out)
	s.Directory = f.dir
	s.TagFile = f.tagFile
	s.AssumeYes = true
	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Error(t, summary.ProvisionErr)
	assert.Nil(t, summary.Verification)
	assert.False(t, summary.Succeeded())
	assert.Contains(t, out.String(), "template flag not found")
	assert.Contains(t, out.String(), "Some files could not be created. Please check the errors above.")
	entries, readErr := os.ReadDir(f.dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRun_PartialFailureSkipsVerification(t *testing.T) {
	f := newFixture(t, "GHO = Ghana\n")
	f.write(t, "GHO.tga")
	require.NoError(t, os.Mkdir(filepath.Join(f.dir, "GHO_fascist.tga"), 0o755))

	var out bytes.Buffer
	s := f.session(t, "", &out)
	s.Directory = f.dir
	s.TagFile = f.tagFile
	s.AssumeYes = true
	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, summary.Provision)
	assert.False(t, summary.Provision.OK())
	assert.Len(t, summary.Provision.Created(), 3)
	assert.Nil(t, summary.Verification)
	assert.Contains(t, out.String(), "Error creating GHO_fascist.tga")
}

func TestRun_EndOfInputAtConfirmation(t *testing.T) {
	f := newFixture(t, "USA = United States\n")

	var out bytes.Buffer
	summary, err := f.session(t, f.dir+"\n"+f.tagFile, &out).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Declined)
}

func TestRun_CanceledContext(t *testing.T) {
	f := newFixture(t, "USA = United States\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s := f.session(t, "", &out)
	s.Directory = f.dir
	s.TagFile = f.tagFile
	_, err := s.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummaryRecord(t *testing.T) {
	f := newFixture(t, "GHO = Ghana\nUSA = United States\n")
	f.write(t, f.layout.Filenames("GHO")...)

	var out bytes.Buffer
	s := f.session(t, "", &out)
	s.Directory = f.dir
	s.TagFile = f.tagFile
	s.AssumeYes = true
	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	run := summary.Record()
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, f.dir, run.Directory)
	assert.Equal(t, 2, run.TagCount)
	assert.Len(t, run.Missing, 5)
	assert.Equal(t, 5, run.Created)
	assert.Zero(t, run.Failed)
	assert.True(t, run.Verified)
	assert.Zero(t, run.MissingAfter)
}
