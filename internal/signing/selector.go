package signing

import "os"

// Presence records which release inputs were supplied.
type Presence struct {
	Keystore bool `json:"keystore"`
	Alias    bool `json:"alias"`
	Password bool `json:"password"`
}

// All reports whether every input is present.
func (p Presence) All() bool {
	return p.Keystore && p.Alias && p.Password
}

// Selection is the outcome of one evaluation.
type Selection struct {
	Config   Config
	Debug    Config
	Presence Presence
}

// Release reports whether release signing was selected.
func (s Selection) Release() bool {
	return s.Config.Kind == KindRelease
}

// Selector chooses between release and debug signing.
type Selector struct {
	lookup LookupFunc
	home   string
}

// NewSelector returns a Selector reading inputs through lookup. A nil lookup
// reads the process environment. home locates the debug keystore; when empty
// it is taken from the HOME (or USERPROFILE) input.
func NewSelector(lookup LookupFunc, home string) *Selector {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if home == "" {
		if h, ok := lookup("HOME"); ok && h != "" {
			home = h
		} else if h, ok := lookup("USERPROFILE"); ok {
			home = h
		}
	}
	return &Selector{lookup: lookup, home: home}
}

// Select evaluates the inputs. It never fails: partial or missing
// credentials select the debug configuration.
func (s *Selector) Select() Selection {
	_, okPath := s.lookup(EnvKeystore)
	_, okAlias := s.lookup(EnvKeystoreAlias)
	_, okPass := s.lookup(EnvKeystorePass)
	sel := Selection{
		Debug:    DebugConfig(s.home),
		Presence: Presence{Keystore: okPath, Alias: okAlias, Password: okPass},
	}
	if creds, ok := ReadCredentials(s.lookup); ok {
		sel.Config = ReleaseConfig(creds)
	} else {
		sel.Config = sel.Debug
	}
	return sel
}

// MapLookup adapts a map to a LookupFunc.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}
