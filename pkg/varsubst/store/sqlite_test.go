package store_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/randalmurphal/varsubst/pkg/varsubst/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vars.db")

	s1, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s1.Set("prod", "DB_HOST", "persistent"))
	require.NoError(t, s1.Close())

	s2, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	v, err := s2.Get("prod", "DB_HOST")
	require.NoError(t, err)
	assert.Equal(t, "persistent", v)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := store.NewSQLiteStore("/nonexistent/path/vars.db")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "vars.db"))
	require.NoError(t, err)
	defer s.Close()

	const numGoroutines = 20
	const numOps = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			set := fmt.Sprintf("set_%d", id%4)
			for j := 0; j < numOps; j++ {
				name := fmt.Sprintf("VAR_%d", j%5)
				switch j % 3 {
				case 0:
					assert.NoError(t, s.Set(set, name, "v"))
				case 1:
					_, _ = s.Get(set, name)
				case 2:
					_, err := s.List(set)
					assert.NoError(t, err)
				}
			}
		}(i)
	}
	wg.Wait()

	infos, err := s.List("set_0")
	require.NoError(t, err)
	assert.Len(t, infos, 5)
}

func TestSQLiteStore_Unicode(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("prod", "GREETING", "héllo wörld ✓"))
	v, err := s.Get("prod", "GREETING")
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld ✓", v)
}
