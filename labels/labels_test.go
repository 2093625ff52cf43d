// SPDX-License-Identifier: MIT

package labels_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/pathgraph/labels"
)

func TestLayerBasics(t *testing.T) {
	var nilLayer *labels.Layer
	require.Equal(t, "", nilLayer.Get(7))
	require.Zero(t, nilLayer.Len())

	l := labels.NewLayer()
	require.Equal(t, "", l.Get(3), "unset reads as empty")
	l.Set(3, "Kitchen")
	l.Set(1, "")
	l.Set(9, "Hall")
	require.Equal(t, "Kitchen", l.Get(3))
	require.Equal(t, 3, l.Len(), "empty string is an explicit label")
	require.Equal(t, []uint64{1, 3, 9}, l.IDs())

	c := l.Clone()
	c.Set(3, "Bath")
	require.Equal(t, "Kitchen", l.Get(3), "clone is independent")

	moved, dropped := l.Remap(func(id uint64) (uint64, bool) { return id + 10, id != 9 })
	require.Equal(t, 1, dropped)
	require.Equal(t, []uint64{11, 13}, moved.IDs())
	require.Equal(t, "Kitchen", moved.Get(13))
	require.Equal(t, 3, l.Len(), "remap leaves the source untouched")
	l.Delete(9)

	l.Delete(1)
	require.Equal(t, 1, l.Len())
}

// StoreSuite runs the Store contract against one implementation.
type StoreSuite struct {
	suite.Suite
	open  func(t *testing.T) labels.Store
	store labels.Store
}

func (s *StoreSuite) SetupTest() {
	s.store = s.open(s.T())
}

func (s *StoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *StoreSuite) TestMissingLayer() {
	ok, err := s.store.HasLayer("Floor")
	s.Require().NoError(err)
	s.False(ok)

	_, _, err = s.store.LoadLayer("Floor")
	s.ErrorIs(err, labels.ErrMissingLayer)
}

func (s *StoreSuite) TestCreateIsIdempotent() {
	s.Require().NoError(s.store.CreateLayer("Floor", "fp1"))
	ok, err := s.store.HasLayer("Floor")
	s.Require().NoError(err)
	s.True(ok)

	l := labels.NewLayer()
	l.Set(2, "Kitchen")
	s.Require().NoError(s.store.SaveLayer("Floor", l, "fp1"))

	// A second create must not clear existing labels or the fingerprint.
	s.Require().NoError(s.store.CreateLayer("Floor", "fp2"))
	got, fp, err := s.store.LoadLayer("Floor")
	s.Require().NoError(err)
	s.Equal("Kitchen", got.Get(2))
	s.Equal("fp1", fp)
}

func (s *StoreSuite) TestSaveReplacesLabels() {
	l := labels.NewLayer()
	l.Set(0, "A")
	l.Set(1, "B")
	s.Require().NoError(s.store.SaveLayer("Floor", l, "fp"))

	l2 := labels.NewLayer()
	l2.Set(1, "C")
	s.Require().NoError(s.store.SaveLayer("Floor", l2, "fp2"))

	got, fp, err := s.store.LoadLayer("Floor")
	s.Require().NoError(err)
	s.Equal([]uint64{1}, got.IDs())
	s.Equal("C", got.Get(1))
	s.Equal("fp2", fp)

	// Loaded layers are detached from the store.
	got.Set(1, "mutated")
	again, _, err := s.store.LoadLayer("Floor")
	s.Require().NoError(err)
	s.Equal("C", again.Get(1))
}

func (s *StoreSuite) TestLayersAreIsolatedByMesh() {
	a := labels.NewLayer()
	a.Set(0, "A")
	s.Require().NoError(s.store.SaveLayer("One", a, ""))
	s.Require().NoError(s.store.CreateLayer("Two", ""))

	got, _, err := s.store.LoadLayer("Two")
	s.Require().NoError(err)
	s.Zero(got.Len())
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(*testing.T) labels.Store { return labels.NewMemoryStore() }})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(t *testing.T) labels.Store {
		st, err := labels.OpenSQLite(filepath.Join(t.TempDir(), "labels.db"))
		require.NoError(t, err)
		return st
	}})
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "labels.db")

	st, err := labels.OpenSQLite(path)
	require.NoError(t, err)
	l := labels.NewLayer()
	l.Set(4, "Kitchen")
	l.Set(5, "")
	require.NoError(t, st.SaveLayer("Floor", l, "abc"))
	require.NoError(t, st.Close())
	require.NoError(t, st.Close(), "second close is a no-op")

	_, err = st.HasLayer("Floor")
	require.ErrorIs(t, err, labels.ErrStoreClosed)

	st, err = labels.OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()

	got, fp, err := st.LoadLayer("Floor")
	require.NoError(t, err)
	require.Equal(t, "abc", fp)
	require.Equal(t, "Kitchen", got.Get(4))
	require.Equal(t, []uint64{4, 5}, got.IDs())
}

func TestClosedMemoryStore(t *testing.T) {
	st := labels.NewMemoryStore()
	require.NoError(t, st.Close())
	require.ErrorIs(t, st.CreateLayer("x", ""), labels.ErrStoreClosed)
	_, _, err := st.LoadLayer("x")
	require.ErrorIs(t, err, labels.ErrStoreClosed)
}
