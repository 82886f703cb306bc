// Package flutter reads the application version the Flutter tool hands to
// the Android build.
package flutter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// Defaults used when neither local.properties nor pubspec.yaml carry a version.
const (
	DefaultVersionCode = 1
	DefaultVersionName = "1.0.0"
)

// ErrMalformedVersion is returned for version strings that cannot be parsed.
var ErrMalformedVersion = errors.New("malformed version")

// Version is the pair exposed to Gradle as flutter.versionCode and
// flutter.versionName.
type Version struct {
	Code   int    `json:"versionCode" yaml:"versionCode"`
	Name   string `json:"versionName" yaml:"versionName"`
	Source string `json:"-" yaml:"-"`
}

type pubspec struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ParseVersion splits a pubspec version such as "1.4.0+12" into its name and
// build number. A version without a build number uses DefaultVersionCode.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty", ErrMalformedVersion)
	}
	name, build, hasBuild := strings.Cut(s, "+")
	if strings.TrimSpace(name) == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
	}
	v := Version{Name: name, Code: DefaultVersionCode}
	if hasBuild {
		code, err := strconv.Atoi(build)
		if err != nil || code <= 0 {
			return Version{}, fmt.Errorf("%w: build number %q", ErrMalformedVersion, build)
		}
		v.Code = code
	}
	return v, nil
}

// ReadPubspec returns the version declared in a pubspec.yaml file. ok is
// false when the file does not exist or declares no version.
func ReadPubspec(path string) (Version, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Version{}, false, nil
		}
		return Version{}, false, err
	}
	var p pubspec
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Version{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	if strings.TrimSpace(p.Version) == "" {
		return Version{}, false, nil
	}
	v, err := ParseVersion(p.Version)
	if err != nil {
		return Version{}, false, fmt.Errorf("%s: %w", path, err)
	}
	v.Source = path
	return v, true, nil
}

// ReadLocalProperties returns the version written by the Flutter tool into
// android/local.properties. ok is false unless both keys are present.
func ReadLocalProperties(path string) (Version, bool, error) {
	props, err := readProperties(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Version{}, false, nil
		}
		return Version{}, false, err
	}
	codeRaw, okCode := props.Get("flutter.versionCode")
	name, okName := props.Get("flutter.versionName")
	if !okCode || !okName {
		return Version{}, false, nil
	}
	code, err := strconv.Atoi(codeRaw)
	if err != nil || code <= 0 {
		return Version{}, false, fmt.Errorf("%s: %w: versionCode %q", path, ErrMalformedVersion, codeRaw)
	}
	return Version{Code: code, Name: name, Source: path}, true, nil
}

// Resolve finds the version for the Flutter project rooted at projectDir.
// local.properties wins over pubspec.yaml; the defaults apply when neither
// provides one.
func Resolve(projectDir string) (Version, error) {
	v, ok, err := ReadLocalProperties(filepath.Join(projectDir, "android", "local.properties"))
	if err != nil || ok {
		return v, err
	}
	v, ok, err = ReadPubspec(filepath.Join(projectDir, "pubspec.yaml"))
	if err != nil || ok {
		return v, err
	}
	return Version{Code: DefaultVersionCode, Name: DefaultVersionName}, nil
}

// readProperties loads a Java properties file such as the local.properties
// written by the Android and Flutter tools, with ${} expansion disabled.
func readProperties(path string) (*properties.Properties, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadBytes(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}
