package signing

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputs(path, alias, pass bool) map[string]string {
	m := map[string]string{}
	if path {
		m[EnvKeystore] = "/keys/release.jks"
	}
	if alias {
		m[EnvKeystoreAlias] = "upload"
	}
	if pass {
		m[EnvKeystorePass] = "s3cret"
	}
	return m
}

func TestHasReleaseSigningTruthTable(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		path, alias, pass := mask&1 != 0, mask&2 != 0, mask&4 != 0
		t.Run(fmt.Sprintf("path=%v,alias=%v,pass=%v", path, alias, pass), func(t *testing.T) {
			lookup := MapLookup(inputs(path, alias, pass))
			want := path && alias && pass
			assert.Equal(t, want, HasReleaseSigning(lookup))

			sel := NewSelector(lookup, "/home/dev").Select()
			assert.Equal(t, want, sel.Release())
			assert.Equal(t, Presence{Keystore: path, Alias: alias, Password: pass}, sel.Presence)
			if want {
				assert.Equal(t, KindRelease, sel.Config.Kind)
			} else {
				assert.Equal(t, KindDebug, sel.Config.Kind)
				assert.Equal(t, sel.Debug, sel.Config)
			}
		})
	}
}

func TestSelectReleasePopulated(t *testing.T) {
	sel := NewSelector(MapLookup(inputs(true, true, true)), "/home/dev").Select()
	require.True(t, sel.Release())
	assert.Equal(t, Config{
		Name:          NameRelease,
		Kind:          KindRelease,
		StoreFile:     "/keys/release.jks",
		StorePassword: "s3cret",
		KeyAlias:      "upload",
		KeyPassword:   "s3cret",
	}, sel.Config)
}

func TestSelectAllAbsentIsDebug(t *testing.T) {
	sel := NewSelector(MapLookup(nil), "/home/dev").Select()
	require.False(t, sel.Release())
	assert.Equal(t, NameDebug, sel.Config.Name)
	assert.Equal(t, filepath.Join("/home/dev", ".android", "debug.keystore"), sel.Config.StoreFile)
	assert.Equal(t, DebugKeyAlias, sel.Config.KeyAlias)
}

func TestSelectPartialCredentials(t *testing.T) {
	// only keystore path
	sel := NewSelector(MapLookup(inputs(true, false, false)), "/h").Select()
	assert.Equal(t, KindDebug, sel.Config.Kind)

	// password without alias
	sel = NewSelector(MapLookup(inputs(true, false, true)), "/h").Select()
	assert.Equal(t, KindDebug, sel.Config.Kind)
	assert.NotEqual(t, "s3cret", sel.Config.KeyPassword)
}

func TestEmptyValueCountsAsPresent(t *testing.T) {
	m := map[string]string{EnvKeystore: "", EnvKeystoreAlias: "", EnvKeystorePass: ""}
	creds, ok := ReadCredentials(MapLookup(m))
	require.True(t, ok)
	assert.Equal(t, Credentials{}, creds)
}

func TestSelectIsDeterministic(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		lookup := MapLookup(inputs(mask&1 != 0, mask&2 != 0, mask&4 != 0))
		s := NewSelector(lookup, "/h")
		assert.Equal(t, s.Select(), s.Select())
		assert.Equal(t, s.Select(), NewSelector(lookup, "/h").Select())
	}
}

func TestSelectorHomeFromLookup(t *testing.T) {
	sel := NewSelector(MapLookup(map[string]string{"HOME": "/users/a"}), "").Select()
	assert.Equal(t, filepath.Join("/users/a", ".android", "debug.keystore"), sel.Debug.StoreFile)
}

func TestRedacted(t *testing.T) {
	c := ReleaseConfig(Credentials{KeystorePath: "/k", KeyAlias: "a", KeyPassword: "p"}).Redacted()
	assert.Equal(t, redacted, c.StorePassword)
	assert.Equal(t, redacted, c.KeyPassword)
	assert.Equal(t, "/k", c.StoreFile)

	empty := Config{Name: NameDebug}.Redacted()
	assert.Empty(t, empty.KeyPassword)
}
