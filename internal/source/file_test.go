package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileJSONArray(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "candidates.json", `[
		{"name": "Jane Doe", "linkedin_url": "https://linkedin.com/in/jane-doe",
		 "education": [{"school": "MIT", "degree": "PhD", "year": 2019}],
		 "github_profile": {"username": "janedoe", "followers": 300}}
	]`)

	candidates, err := (&File{Path: path}).Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "2019", c.Education[0].Year)
	require.NotNil(t, c.GitHub)
	assert.Equal(t, 300, c.GitHub.Followers)
}

func TestFileYAMLObject(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "candidates.yaml", `
candidates:
  - name: Jane Doe
    headline: Senior ML Engineer
    skills: [python, pytorch]
  - linkedin_url: https://linkedin.com/in/john-smith
`)

	candidates, err := (&File{Path: path}).Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, []string{"python", "pytorch"}, candidates[0].Skills)
	assert.Equal(t, "John Smith", candidates[1].Name)
}

func TestFileEmptyList(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "candidates.yml", "candidates: []\n")

	candidates, err := (&File{Path: path}).Candidates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFileSchemaViolation(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "candidates.json", `[{"name": "Jane"}, {"skills": "python"}]`)

	_, err := (&File{Path: path}).Candidates(context.Background())
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	require.NotEmpty(t, verr.Errors)
	assert.Equal(t, "1.skills", verr.Errors[0].Field)
	assert.Contains(t, err.Error(), "1.skills")
}

func TestFileRejectsUnknownShape(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no candidates key": `{"people": []}`,
		"scalar document":   `42`,
		"malformed":         `[{"name": `,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, "candidates.json", content)
			_, err := (&File{Path: path}).Candidates(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestFileMissing(t *testing.T) {
	t.Parallel()

	_, err := (&File{Path: filepath.Join(t.TempDir(), "nope.json")}).Candidates(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
