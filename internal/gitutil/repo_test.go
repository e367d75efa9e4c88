package gitutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeOutsideRepository(t *testing.T) {
	_, ok := Describe(t.TempDir())
	assert.False(t, ok)
}

func TestDescribeFreshRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	info, ok := Describe(dir)
	require.True(t, ok)
	assert.Equal(t, dir, info.Root)
	assert.Equal(t, "", info.Branch, "no commits yet, no branch name")
}

func TestDescribeRepositoryWithCommit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("hi\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("file.txt")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)

	info, ok := Describe(dir)
	require.True(t, ok)
	assert.Equal(t, dir, info.Root)
	assert.NotEmpty(t, info.Branch)
}

func TestDescribeFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "nested", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	info, ok := Describe(sub)
	require.True(t, ok)
	assert.Equal(t, dir, info.Root)
}
