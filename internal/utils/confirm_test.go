package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	cases := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "": false, "maybe\n": false}
	for in, want := range cases {
		var out bytes.Buffer
		if got := Confirm(strings.NewReader(in), &out, "sure? "); got != want {
			t.Fatalf("Confirm(%q) = %v, want %v", in, got, want)
		}
		if out.String() != "sure? " {
			t.Fatalf("unexpected prompt %q", out.String())
		}
	}
}
