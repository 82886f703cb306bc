// Package exporter renders descriptors for the packaging toolchain and
// copies the history database.
package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/caresoft-ricent/beaverbuild/internal/descriptor"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatProperties Format = "properties"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatProperties:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want json, yaml or properties)", s)
	}
}

// Options control descriptor rendering.
type Options struct {
	// IncludeSecrets keeps signing passwords in the output. Only the
	// properties format honours it since that is what the toolchain reads.
	IncludeSecrets bool
}

// WriteDescriptor writes d to w in the requested format.
func WriteDescriptor(w io.Writer, d *descriptor.Descriptor, f Format, opts Options) error {
	out := d
	if !(opts.IncludeSecrets && f == FormatProperties) {
		out = d.Redacted()
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case FormatProperties:
		return writeProperties(w, out)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// Properties flattens d into android.* keys.
func Properties(d *descriptor.Descriptor) map[string]string {
	p := map[string]string{
		"android.namespace":                          d.Namespace,
		"android.applicationId":                      d.ApplicationID,
		"android.compileSdk":                         strconv.Itoa(d.CompileSdk),
		"android.minSdk":                             strconv.Itoa(d.MinSdk),
		"android.targetSdk":                          strconv.Itoa(d.TargetSdk),
		"android.compileOptions.sourceCompatibility": d.CompileOptions.SourceCompatibility,
		"android.compileOptions.targetCompatibility": d.CompileOptions.TargetCompatibility,
		"android.kotlinOptions.jvmTarget":            d.KotlinOptions.JvmTarget,
		"android.versionCode":                        strconv.Itoa(d.VersionCode),
		"android.versionName":                        d.VersionName,
		"flutter.source":                             d.FlutterSource,
	}
	if d.NdkVersion != "" {
		p["android.ndkVersion"] = d.NdkVersion
	}
	for name, bt := range d.BuildTypes {
		p["android.buildTypes."+name+".signingConfig"] = bt.SigningConfig
	}
	for name, sc := range d.SigningConfigs {
		prefix := "android.signingConfigs." + name + "."
		p[prefix+"storeFile"] = sc.StoreFile
		p[prefix+"storePassword"] = sc.StorePassword
		p[prefix+"keyAlias"] = sc.KeyAlias
		p[prefix+"keyPassword"] = sc.KeyPassword
	}
	return p
}

func writeProperties(w io.Writer, d *descriptor.Descriptor) error {
	props := Properties(d)
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, escapeProperty(props[k])); err != nil {
			return err
		}
	}
	return nil
}

var propertyEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"=", `\=`,
	":", `\:`,
)

func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}
