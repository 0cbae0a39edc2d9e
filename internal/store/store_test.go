package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contractTest exercises the behavior every Store backend must share.
func contractTest(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	// Absent key loads as nil without error.
	value, err := st.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, value)

	// Round trip.
	require.NoError(t, st.Save(ctx, KeyCart, []byte(`[{"quantity":1}]`)))
	value, err = st.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"quantity":1}]`), value)

	// Overwrite wins.
	require.NoError(t, st.Save(ctx, KeyCart, []byte(`[]`)))
	value, err = st.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)

	// Keys are independent.
	require.NoError(t, st.Save(ctx, KeyCustomerMobile, []byte("9876543210")))
	value, err = st.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)

	// Delete removes, and deleting twice is fine.
	require.NoError(t, st.Delete(ctx, KeyCart))
	value, err = st.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Nil(t, value)
	require.NoError(t, st.Delete(ctx, KeyCart))
}

func TestMemoryStore_Contract(t *testing.T) {
	contractTest(t, NewMemoryStore())
}

func TestFileStore_Contract(t *testing.T) {
	st, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	contractTest(t, st)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	st, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, KeyCart, []byte(`[1,2,3]`)))

	// A new instance over the same directory sees the value.
	st2, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)
	value, err := st2.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), value)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")

	_, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	original := []byte("abc")
	require.NoError(t, st.Save(ctx, "k", original))
	original[0] = 'x'

	value, err := st.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), value)

	// Mutating the loaded slice does not affect the store.
	value[0] = 'z'
	again, err := st.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
