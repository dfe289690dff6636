package installer

import (
	"io"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	f, err := fs.Open(name)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

func TestCopyKeys(t *testing.T) {
	src := memfs.New()
	require.NoError(t, util.WriteFile(src, "/A.bikey", []byte("key A"), 0644))
	require.NoError(t, util.WriteFile(src, "/B.bikey", []byte("key B"), 0644))
	require.NoError(t, util.WriteFile(src, "/old/C.bikey", []byte("key C"), 0644))

	dst := memfs.New()
	require.NoError(t, util.WriteFile(dst, "/B.bikey", []byte("server B"), 0644))

	n, err := CopyKeys(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "key A", readAll(t, dst, "/A.bikey"))
	assert.Equal(t, "server B", readAll(t, dst, "/B.bikey"))
	assert.Equal(t, "key C", readAll(t, dst, "/old/C.bikey"))

	n, err = CopyKeys(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
