// Package descriptor evaluates the Android build settings of the app into a
// descriptor consumed by the packaging toolchain.
package descriptor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/caresoft-ricent/beaverbuild/internal/flutter"
	"github.com/caresoft-ricent/beaverbuild/internal/signing"
)

// Build type names.
const (
	BuildTypeDebug   = "debug"
	BuildTypeRelease = "release"
)

// Project holds the static Android settings of the app.
type Project struct {
	Namespace       string `mapstructure:"namespace"`
	ApplicationID   string `mapstructure:"application_id"`
	CompileSdk      int    `mapstructure:"compile_sdk"`
	MinSdk          int    `mapstructure:"min_sdk"`
	TargetSdk       int    `mapstructure:"target_sdk"`
	NdkVersion      string `mapstructure:"ndk_version"`
	JavaVersion     string `mapstructure:"java_version"`
	KotlinJvmTarget string `mapstructure:"kotlin_jvm_target"`
	FlutterSource   string `mapstructure:"flutter_source"`
}

// Defaults returns the settings shipped with the app.
func Defaults() Project {
	return Project{
		Namespace:       "com.ricent.beaverai",
		ApplicationID:   "com.ricent.beaverai",
		CompileSdk:      36,
		MinSdk:          23,
		TargetSdk:       36,
		NdkVersion:      "27.0.12077973",
		JavaVersion:     "17",
		KotlinJvmTarget: "17",
		FlutterSource:   "../..",
	}
}

// CompileOptions mirrors the Java language levels of the build.
type CompileOptions struct {
	SourceCompatibility string `json:"sourceCompatibility" yaml:"sourceCompatibility" validate:"required,javaversion"`
	TargetCompatibility string `json:"targetCompatibility" yaml:"targetCompatibility" validate:"required,javaversion"`
}

// KotlinOptions mirrors the Kotlin compiler settings of the build.
type KotlinOptions struct {
	JvmTarget string `json:"jvmTarget" yaml:"jvmTarget" validate:"required,javaversion"`
}

// BuildType is a named build variant and the signing config it references.
type BuildType struct {
	Name          string `json:"name" yaml:"name" validate:"required"`
	SigningConfig string `json:"signingConfig" yaml:"signingConfig" validate:"required"`
}

// Descriptor is the evaluated build configuration.
type Descriptor struct {
	Namespace      string                    `json:"namespace" yaml:"namespace" validate:"required,appid" jsonschema:"description=Kotlin/Java namespace of the generated R class"`
	ApplicationID  string                    `json:"applicationId" yaml:"applicationId" validate:"required,appid"`
	CompileSdk     int                       `json:"compileSdk" yaml:"compileSdk" validate:"gte=1"`
	MinSdk         int                       `json:"minSdk" yaml:"minSdk" validate:"gte=1,ltefield=TargetSdk"`
	TargetSdk      int                       `json:"targetSdk" yaml:"targetSdk" validate:"gte=1,ltefield=CompileSdk"`
	NdkVersion     string                    `json:"ndkVersion,omitempty" yaml:"ndkVersion,omitempty"`
	CompileOptions CompileOptions            `json:"compileOptions" yaml:"compileOptions"`
	KotlinOptions  KotlinOptions             `json:"kotlinOptions" yaml:"kotlinOptions"`
	VersionCode    int                       `json:"versionCode" yaml:"versionCode" validate:"gte=1"`
	VersionName    string                    `json:"versionName" yaml:"versionName" validate:"required"`
	FlutterSource  string                    `json:"flutterSource" yaml:"flutterSource"`
	SigningConfigs map[string]signing.Config `json:"signingConfigs" yaml:"signingConfigs" validate:"required,dive"`
	BuildTypes     map[string]BuildType      `json:"buildTypes" yaml:"buildTypes" validate:"required,dive"`
}

// Evaluate builds the descriptor for one signing selection. The release
// build type references whatever the selection chose; debug always uses
// the debug config.
func Evaluate(p Project, sel signing.Selection, v flutter.Version) *Descriptor {
	d := &Descriptor{
		Namespace:     p.Namespace,
		ApplicationID: p.ApplicationID,
		CompileSdk:    p.CompileSdk,
		MinSdk:        p.MinSdk,
		TargetSdk:     p.TargetSdk,
		NdkVersion:    p.NdkVersion,
		CompileOptions: CompileOptions{
			SourceCompatibility: p.JavaVersion,
			TargetCompatibility: p.JavaVersion,
		},
		KotlinOptions: KotlinOptions{JvmTarget: p.KotlinJvmTarget},
		VersionCode:   v.Code,
		VersionName:   v.Name,
		FlutterSource: p.FlutterSource,
		SigningConfigs: map[string]signing.Config{
			signing.NameDebug: sel.Debug,
		},
		BuildTypes: map[string]BuildType{
			BuildTypeDebug:   {Name: BuildTypeDebug, SigningConfig: signing.NameDebug},
			BuildTypeRelease: {Name: BuildTypeRelease, SigningConfig: sel.Config.Name},
		},
	}
	if sel.Release() {
		d.SigningConfigs[signing.NameRelease] = sel.Config
	}
	return d
}

// ReleaseSigning returns the signing config referenced by the release build
// type.
func (d *Descriptor) ReleaseSigning() (signing.Config, bool) {
	bt, ok := d.BuildTypes[BuildTypeRelease]
	if !ok {
		return signing.Config{}, false
	}
	c, ok := d.SigningConfigs[bt.SigningConfig]
	return c, ok
}

// Redacted returns a copy of d with every signing password masked.
func (d *Descriptor) Redacted() *Descriptor {
	out := *d
	out.SigningConfigs = make(map[string]signing.Config, len(d.SigningConfigs))
	for k, c := range d.SigningConfigs {
		out.SigningConfigs[k] = c.Redacted()
	}
	out.BuildTypes = make(map[string]BuildType, len(d.BuildTypes))
	for k, bt := range d.BuildTypes {
		out.BuildTypes[k] = bt
	}
	return &out
}

// BuildTypeNames returns the build type names in sorted order.
func (d *Descriptor) BuildTypeNames() []string {
	names := make([]string, 0, len(d.BuildTypes))
	for k := range d.BuildTypes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Fingerprint hashes the redacted descriptor. Evaluating the same inputs
// twice yields the same fingerprint.
func (d *Descriptor) Fingerprint() (string, error) {
	b, err := json.Marshal(d.Redacted())
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
