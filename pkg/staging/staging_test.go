package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultOpts = &Opts{
	Dir:     "aml/staging",
	Globs:   []string{"*.py", "*.cfg", "*.txt"},
	Subdirs: []string{"model_data", "yolo3"},
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func sourceTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "train.py"), "print('train')")
	writeFile(t, filepath.Join(root, "convert.py"), "print('convert')")
	writeFile(t, filepath.Join(root, "yolov3.cfg"), "[net]")
	writeFile(t, filepath.Join(root, "requirements.txt"), "keras")
	writeFile(t, filepath.Join(root, "README.md"), "not staged")
	writeFile(t, filepath.Join(root, "model_data", "coco_classes.txt"), "person")
	writeFile(t, filepath.Join(root, "model_data", "anchors", "yolo_anchors.txt"), "10,13")
	writeFile(t, filepath.Join(root, "yolo3", "model.py"), "def yolo_body(): pass")
	writeFile(t, filepath.Join(root, "aml", "config.json"), "{}")

	return root
}

var expectedFiles = []string{
	"convert.py",
	"model_data/anchors/yolo_anchors.txt",
	"model_data/coco_classes.txt",
	"requirements.txt",
	"train.py",
	"yolo3/model.py",
	"yolov3.cfg",
}

func readTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		content, err := os.ReadFile(path)
		tree[filepath.ToSlash(rel)] = string(content)
		return err
	})
	require.NoError(t, err)
	return tree
}

func TestAssembleFromScratch(t *testing.T) {
	root := sourceTree(t)

	res, err := Assemble(root, defaultOpts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "aml", "staging"), res.Dir)
	assert.Equal(t, expectedFiles, res.Files)
	assert.Len(t, res.Digest, 64)

	tree := readTree(t, res.Dir)
	assert.Equal(t, "print('train')", tree["train.py"])
	assert.Equal(t, "10,13", tree["model_data/anchors/yolo_anchors.txt"])
	assert.NotContains(t, tree, "README.md")
}

func TestAssembleEmptyStagingDir(t *testing.T) {
	root := sourceTree(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "aml", "staging"), 0o755))

	res, err := Assemble(root, defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, expectedFiles, res.Files)
}

func TestAssembleRemovesStaleFiles(t *testing.T) {
	root := sourceTree(t)
	writeFile(t, filepath.Join(root, "aml", "staging", "old_train.py"), "stale")
	writeFile(t, filepath.Join(root, "aml", "staging", "yolo3", "removed.py"), "stale")

	res, err := Assemble(root, defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, expectedFiles, res.Files)

	_, err = os.Stat(filepath.Join(res.Dir, "old_train.py"))
	assert.True(t, os.IsNotExist(err))
}

func TestAssembleIsIdempotent(t *testing.T) {
	root := sourceTree(t)

	first, err := Assemble(root, defaultOpts)
	require.NoError(t, err)
	firstTree := readTree(t, first.Dir)

	second, err := Assemble(root, defaultOpts)
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, firstTree, readTree(t, second.Dir))
}

func TestAssembleDigestTracksContent(t *testing.T) {
	root := sourceTree(t)

	first, err := Assemble(root, defaultOpts)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "train.py"), "print('train v2')")
	second, err := Assemble(root, defaultOpts)
	require.NoError(t, err)

	assert.NotEqual(t, first.Digest, second.Digest)
}

func TestAssembleMissingSubdir(t *testing.T) {
	root := sourceTree(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "yolo3")))

	_, err := Assemble(root, defaultOpts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yolo3")
}

func assertSourcesIntact(t *testing.T, root string) {
	t.Helper()
	for _, path := range []string{"train.py", "yolo3/model.py", "model_data/coco_classes.txt"} {
		_, err := os.Stat(filepath.Join(root, path))
		assert.NoError(t, err, path)
	}
}

func TestAssembleRejectsUnsafeDirs(t *testing.T) {
	for name, dir := range map[string]string{
		"root":            ".",
		"root with slash": "./",
		"ancestor":        "..",
		"subdir":          "yolo3",
		"below subdir":    "model_data/staging",
	} {
		t.Run(name, func(t *testing.T) {
			root := sourceTree(t)

			_, err := Assemble(root, &Opts{Dir: dir, Globs: defaultOpts.Globs, Subdirs: defaultOpts.Subdirs})
			require.Error(t, err)
			assertSourcesIntact(t, root)
		})
	}
}

func TestAssembleRejectsAbsoluteRoot(t *testing.T) {
	root := sourceTree(t)

	_, err := Assemble(root, &Opts{Dir: root, Globs: defaultOpts.Globs, Subdirs: defaultOpts.Subdirs})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source root")
	assertSourcesIntact(t, root)
}

func TestAssembleAllowsSiblingWithSubdirPrefix(t *testing.T) {
	root := sourceTree(t)

	res, err := Assemble(root, &Opts{Dir: "yolo3_staging", Globs: defaultOpts.Globs, Subdirs: defaultOpts.Subdirs})
	require.NoError(t, err)
	assert.Equal(t, expectedFiles, res.Files)
}
