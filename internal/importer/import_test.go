package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresoft-ricent/beaverbuild/internal/db"
	"github.com/caresoft-ricent/beaverbuild/internal/descriptor"
	"github.com/caresoft-ricent/beaverbuild/internal/flutter"
	"github.com/caresoft-ricent/beaverbuild/internal/history"
	"github.com/caresoft-ricent/beaverbuild/internal/signing"
)

func seed(t *testing.T, path string, labels ...string) {
	t.Helper()
	conn, err := db.Open(path)
	require.NoError(t, err)
	r := history.NewRepository(conn)
	defer func() { _ = r.Close() }()
	sel := signing.NewSelector(signing.MapLookup(nil), "/h").Select()
	for _, l := range labels {
		_, err := r.Record(history.Entry{
			Label:      l,
			ProjectDir: "/work/app",
			Selection:  sel,
			Descriptor: descriptor.Evaluate(descriptor.Defaults(), sel, flutter.Version{Code: 1, Name: "1.0.0"}),
		})
		require.NoError(t, err)
	}
}

func TestMergeDatabase(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ci.db")
	seed(t, src, "ci-1", "ci-2")

	dst, err := db.Open(filepath.Join(dir, "local.db"))
	require.NoError(t, err)
	defer func() { _ = dst.Close() }()

	res, err := MergeDatabase(dst, src)
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 2}, res)

	res, err = MergeDatabase(dst, src)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 2}, res)

	evs, err := history.NewRepository(dst).List(0)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, "ci-2", evs[0].Label)
	assert.Equal(t, signing.KindDebug, evs[0].Kind)

	latest, err := history.NewRepository(dst).Latest()
	require.NoError(t, err)
	assert.True(t, latest.ProjectDir.Valid)
	assert.Equal(t, "/work/app", latest.ProjectDir.String)
}

func TestMergeMissingSource(t *testing.T) {
	dst, err := db.Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	defer func() { _ = dst.Close() }()
	_, err = MergeDatabase(dst, filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)
}
