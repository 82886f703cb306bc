package history

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresoft-ricent/beaverbuild/internal/db"
	"github.com/caresoft-ricent/beaverbuild/internal/descriptor"
	"github.com/caresoft-ricent/beaverbuild/internal/flutter"
	"github.com/caresoft-ricent/beaverbuild/internal/signing"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	r := NewRepository(conn)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func entry(label string, env map[string]string) Entry {
	sel := signing.NewSelector(signing.MapLookup(env), "/home/ci").Select()
	return Entry{
		Label:      label,
		ProjectDir: "/src/app",
		Selection:  sel,
		Descriptor: descriptor.Evaluate(descriptor.Defaults(), sel, flutter.Version{Code: 9, Name: "2.0.0"}),
	}
}

var releaseEnv = map[string]string{
	signing.EnvKeystore:      "/keys/upload.jks",
	signing.EnvKeystoreAlias: "upload",
	signing.EnvKeystorePass:  "hunter2",
}

func TestRecordAndGetRelease(t *testing.T) {
	r := newRepo(t)
	id, err := r.Record(entry("ci-main", releaseEnv))
	require.NoError(t, err)

	ev, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "ci-main", ev.Label)
	assert.Equal(t, signing.KindRelease, ev.Kind)
	assert.True(t, ev.Presence.All())
	assert.Equal(t, "/keys/upload.jks", ev.KeystorePath.String)
	assert.Equal(t, "upload", ev.KeyAlias.String)
	assert.Equal(t, "com.ricent.beaverai", ev.ApplicationID)
	assert.Equal(t, int64(9), ev.VersionCode.Int64)
	assert.Equal(t, "/src/app", ev.ProjectDir.String)
	assert.Len(t, ev.Fingerprint, 64)
	assert.False(t, strings.Contains(ev.Descriptor, "hunter2"), "password leaked into history")
}

func TestRecordPartialIsDebug(t *testing.T) {
	r := newRepo(t)
	id, err := r.Record(entry("", map[string]string{signing.EnvKeystore: "/k.jks"}))
	require.NoError(t, err)

	ev, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, DefaultLabel, ev.Label)
	assert.Equal(t, signing.KindDebug, ev.Kind)
	assert.Equal(t, signing.Presence{Keystore: true}, ev.Presence)
	assert.False(t, ev.KeystorePath.Valid)
}

func TestSameInputsSameFingerprint(t *testing.T) {
	r := newRepo(t)
	_, err := r.Record(entry("a", releaseEnv))
	require.NoError(t, err)
	_, err = r.Record(entry("b", releaseEnv))
	require.NoError(t, err)

	evs, err := r.List(0)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, "b", evs[0].Label)
	assert.Equal(t, evs[0].Fingerprint, evs[1].Fingerprint)
}

func TestListLimitLatestClear(t *testing.T) {
	r := newRepo(t)
	_, err := r.Latest()
	assert.ErrorIs(t, err, ErrNotFound)

	for _, l := range []string{"one", "two", "three"} {
		_, err := r.Record(entry(l, nil))
		require.NoError(t, err)
	}
	evs, err := r.List(2)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, "three", evs[0].Label)

	latest, err := r.Latest()
	require.NoError(t, err)
	assert.Equal(t, "three", latest.Label)

	n, err := r.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = r.Get(latest.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRecordRejectsNilDescriptor(t *testing.T) {
	r := newRepo(t)
	_, err := r.Record(Entry{Label: "x"})
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	if err := ValidateLabel("  "); err == nil {
		t.Fatalf("expected error for empty label")
	}
	if err := ValidateLabel("nightly build"); err != nil {
		t.Fatalf("unexpected error for valid label: %v", err)
	}
	if err := ValidateLabel("bad\x00label"); err == nil {
		t.Fatalf("expected error for control bytes")
	}
	if err := ValidateLabel(string([]byte{0xff, 0xff})); err == nil {
		t.Fatalf("expected error for invalid utf8")
	}
	if s := SanitizeLabel(" job\u200B-42\n "); s != "job-42" {
		t.Fatalf("unexpected sanitized label %q", s)
	}
}
