package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/hike/internal/location"
)

func TestParseLocalPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	req, err := Parse(file)
	require.NoError(t, err)
	assert.Equal(t, OpenFile{Path: file}, req)

	req, err = Parse(dir)
	require.NoError(t, err)
	assert.Equal(t, OpenFrom{Dir: dir}, req)
}

func TestParseExistingFileBeatsOtherRecognizers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("quit", nil, 0o644))

	req, err := Parse("quit")
	require.NoError(t, err)
	assert.Equal(t, OpenFile{Path: filepath.Join(dir, "quit")}, req)
}

func TestParseURL(t *testing.T) {
	req, err := Parse("https://example.com/README.md")
	require.NoError(t, err)
	want, _ := location.ParseURL("https://example.com/README.md")
	assert.Equal(t, OpenURL{URL: want}, req)

	_, err = Parse("ftp://example.com/README.md")
	assert.ErrorIs(t, err, ErrUnrecognizedInput)
}

func TestParseChangeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	docs := filepath.Join(home, "docs")

	_, err := Parse("cd ~/docs")
	assert.ErrorIs(t, err, ErrUnrecognizedInput, "directory does not exist yet")

	require.NoError(t, os.Mkdir(docs, 0o755))
	for _, input := range []string{"cd ~/docs", "chdir ~/docs", "  cd   ~/docs  "} {
		req, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, ChangeDirectory{Dir: docs}, req, input)
	}

	_, err = Parse("CD ~/docs")
	assert.ErrorIs(t, err, ErrUnrecognizedInput, "keyword is case sensitive")
}

func TestParseChangeDirectoryRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := Parse("cd " + file)
	assert.ErrorIs(t, err, ErrUnrecognizedInput)
}

func TestParseForge(t *testing.T) {
	tests := []struct {
		input string
		want  location.ForgeRequest
	}{
		{"gh octocat hello-world", location.ForgeRequest{Forge: location.GitHub, Owner: "octocat", Repository: "hello-world"}},
		{"github octocat/hello-world", location.ForgeRequest{Forge: location.GitHub, Owner: "octocat", Repository: "hello-world"}},
		{"GH octocat/hello-world", location.ForgeRequest{Forge: location.GitHub, Owner: "octocat", Repository: "hello-world"}},
		{"gl group/project docs/index.md", location.ForgeRequest{Forge: location.GitLab, Owner: "group", Repository: "project", Filename: "docs/index.md"}},
		{"cb owner repo:dev", location.ForgeRequest{Forge: location.Codeberg, Owner: "owner", Repository: "repo", Branch: "dev"}},
		{"bitbucket owner/repo:v1.2 CHANGES.md", location.ForgeRequest{Forge: location.Bitbucket, Owner: "owner", Repository: "repo", Branch: "v1.2", Filename: "CHANGES.md"}},
		{"bb owner/repo  notes  ", location.ForgeRequest{Forge: location.Bitbucket, Owner: "owner", Repository: "repo", Filename: "notes"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, OpenFromForge{tt.want}, req)
		})
	}
}

func TestParseForgeDefaultsFileLate(t *testing.T) {
	req, err := Parse("gh octocat hello-world")
	require.NoError(t, err)
	forge := req.(OpenFromForge)
	assert.Empty(t, forge.Filename)
	assert.Empty(t, forge.Branch)
	assert.Equal(t, location.DefaultForgeFile, forge.File())
}

func TestParseForgeMalformed(t *testing.T) {
	for _, input := range []string{"gh", "gh octocat", "sourcehut owner/repo"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrUnrecognizedInput, input)
	}
}

func TestParseBuiltins(t *testing.T) {
	tests := map[string]Action{
		"quit":     Quit,
		"Q":        Quit,
		"`quit`":   Quit,
		"contents": Contents,
		"toc":      Contents,
		" C ":      Contents,
		"back":     Back,
		"fwd":      Forward,
		"r":        Reload,
		"bm":       Bookmark,
		"?":        Help,
	}
	for input, want := range tests {
		req, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, Builtin{Action: want}, req, input)
	}
}

func TestParseUnrecognized(t *testing.T) {
	for _, input := range []string{"", "   ", "make me a sandwich", "quitter"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrUnrecognizedInput, input)
	}
}

func TestHelpEntriesCoverBuiltins(t *testing.T) {
	entries := HelpEntries()
	var names []string
	for _, e := range entries {
		names = append(names, e.Command)
	}
	for _, b := range builtins {
		assert.Contains(t, names, b.name)
	}
	assert.Equal(t, "contents", Contents.String())
}
