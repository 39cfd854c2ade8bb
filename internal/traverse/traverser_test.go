package traverse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the traverser:
// - Files under ignored directories (node_modules, .git, ...) never appear,
//   at any depth
// - Files are returned depth-first in directory-listing order
// - A missing or non-directory root is a fatal error
// - Extra glob ignore patterns exclude files and prune directories

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestWalk_PrunesIgnoredDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.ts"))
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"))
	writeFile(t, filepath.Join(root, ".git", "HEAD"))
	writeFile(t, filepath.Join(root, "src", "dist", "bundle.js"))
	writeFile(t, filepath.Join(root, "src", "b.ts"))
	writeFile(t, filepath.Join(root, ".idea", "workspace.xml"))
	writeFile(t, filepath.Join(root, ".vscode", "settings.json"))

	traverser, err := New(nil)
	require.NoError(t, err)

	files, err := traverser.Walk(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.ts"),
		filepath.Join(root, "src", "b.ts"),
	}, files)
}

func TestWalk_DepthFirstListingOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "one.ts"))
	writeFile(t, filepath.Join(root, "a", "two.ts"))
	writeFile(t, filepath.Join(root, "b.ts"))
	writeFile(t, filepath.Join(root, "c", "three.ts"))

	traverser, err := New(nil)
	require.NoError(t, err)

	files, err := traverser.Walk(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a", "one.ts"),
		filepath.Join(root, "a", "two.ts"),
		filepath.Join(root, "b.ts"),
		filepath.Join(root, "c", "three.ts"),
	}, files)
}

func TestWalk_MissingRoot(t *testing.T) {
	t.Parallel()

	traverser, err := New(nil)
	require.NoError(t, err)

	_, err = traverser.Walk(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "folder does not exist")
}

func TestWalk_RootIsFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "file.ts")
	writeFile(t, path)

	traverser, err := New(nil)
	require.NoError(t, err)

	_, err = traverser.Walk(path)
	require.Error(t, err)
}

func TestWalk_ExtraIgnorePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.ts"))
	writeFile(t, filepath.Join(root, "skip.generated.ts"))
	writeFile(t, filepath.Join(root, "vendor", "lib.ts"))

	traverser, err := New([]string{"*.generated.ts", "vendor/**"})
	require.NoError(t, err)

	files, err := traverser.Walk(root)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "keep.ts")}, files)
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New([]string{"[unclosed"})
	require.Error(t, err)
}
