package badger

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/cache-db"
	backend, err := OpenBackend(path, false)
	require.NoError(t, err)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}

func TestWithTx_ReadWrite(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte("k"), []byte("v")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	err = backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte("k"))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			assert.Equal(t, []byte("v"), val)
			return nil
		})
	}, false)
	require.NoError(t, err)
}

func TestWithTx_DiscardsOnError(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte("k"), []byte("v")); err != nil {
			return err
		}
		return assert.AnError // never committed
	}, true)
	require.Error(t, err)

	err = backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get([]byte("k"))
		assert.ErrorIs(t, err, badger.ErrKeyNotFound)
		return nil
	}, false)
	require.NoError(t, err)
}
