// Package signing selects the signing configuration used for release builds.
//
// Release signing is used only when the keystore path, key alias and key
// password are all supplied through the environment. Any missing input falls
// back to the debug signing configuration so local builds still produce an
// installable artifact.
package signing

import (
	"os"
	"path/filepath"
)

// Environment variables read by the selector.
const (
	EnvKeystore      = "RICENT_KEYSTORE"
	EnvKeystoreAlias = "RICENT_KEYSTORE_ALIAS"
	EnvKeystorePass  = "RICENT_KEYSTORE_PASS"
)

// Names of the signing configurations referenced by build types.
const (
	NameRelease = "release"
	NameDebug   = "debug"
)

// Debug keystore defaults shared by every Android SDK installation.
const (
	DebugKeyAlias = "androiddebugkey"
	DebugPassword = "android"
)

const redacted = "********"

// LookupFunc reports the value of a named input and whether it was set.
type LookupFunc func(key string) (string, bool)

// Kind identifies which signing configuration was chosen.
type Kind string

const (
	KindRelease Kind = "release"
	KindDebug   Kind = "debug"
)

// Credentials holds the release keystore inputs. A Credentials value only
// exists when all three fields were supplied.
type Credentials struct {
	KeystorePath string
	KeyAlias     string
	KeyPassword  string
}

// Config is a named signing configuration as consumed by the packaging
// toolchain.
type Config struct {
	Name          string `json:"name" yaml:"name" validate:"required"`
	Kind          Kind   `json:"kind" yaml:"kind" validate:"oneof=release debug"`
	StoreFile     string `json:"storeFile" yaml:"storeFile"`
	StorePassword string `json:"storePassword" yaml:"storePassword"`
	KeyAlias      string `json:"keyAlias" yaml:"keyAlias"`
	KeyPassword   string `json:"keyPassword" yaml:"keyPassword"`
}

// Redacted returns a copy of c with its passwords masked.
func (c Config) Redacted() Config {
	if c.StorePassword != "" {
		c.StorePassword = redacted
	}
	if c.KeyPassword != "" {
		c.KeyPassword = redacted
	}
	return c
}

// ReadCredentials returns the release credentials when all three inputs are
// present. Values are not validated; an explicitly empty variable counts as
// present.
func ReadCredentials(lookup LookupFunc) (Credentials, bool) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	path, okPath := lookup(EnvKeystore)
	alias, okAlias := lookup(EnvKeystoreAlias)
	pass, okPass := lookup(EnvKeystorePass)
	if !okPath || !okAlias || !okPass {
		return Credentials{}, false
	}
	return Credentials{KeystorePath: path, KeyAlias: alias, KeyPassword: pass}, true
}

// HasReleaseSigning reports whether all release inputs are present.
func HasReleaseSigning(lookup LookupFunc) bool {
	_, ok := ReadCredentials(lookup)
	return ok
}

// ReleaseConfig builds the release signing configuration. The store and the
// key share one password.
func ReleaseConfig(c Credentials) Config {
	return Config{
		Name:          NameRelease,
		Kind:          KindRelease,
		StoreFile:     c.KeystorePath,
		StorePassword: c.KeyPassword,
		KeyAlias:      c.KeyAlias,
		KeyPassword:   c.KeyPassword,
	}
}

// DebugConfig returns the SDK's built-in debug signing configuration rooted
// at the given home directory.
func DebugConfig(home string) Config {
	return Config{
		Name:          NameDebug,
		Kind:          KindDebug,
		StoreFile:     filepath.Join(home, ".android", "debug.keystore"),
		StorePassword: DebugPassword,
		KeyAlias:      DebugKeyAlias,
		KeyPassword:   DebugPassword,
	}
}
