package profile

import (
	"sort"
	"time"

	"github.com/AnyUserName/asciisketch/internal/art"
)

// Profile is a named set of generator settings.
type Profile struct {
	Name     string
	MinLevel uint8
	MaxLevel uint8
	Gamma    float64
	Width    int           // 0 keeps the source width (capped at art.MaxWidth)
	Step     time.Duration // delay added before each deferred step
	Preview  string        // preview encoder format
}

// DefaultName is used when no profile is requested.
const DefaultName = "sketch"

// Built-in profiles.
var profiles = map[string]Profile{
	"sketch": {
		Name:     "sketch",
		MinLevel: art.DefaultMinLevel,
		MaxLevel: art.DefaultMaxLevel,
		Gamma:    art.DefaultGamma,
		Step:     300 * time.Millisecond,
		Preview:  "jpeg",
	},
	"soft": {
		Name:     "soft",
		MinLevel: 60,
		MaxLevel: 160,
		Gamma:    1.0,
		Step:     300 * time.Millisecond,
		Preview:  "jpeg",
	},
	"bold": {
		Name:     "bold",
		MinLevel: 100,
		MaxLevel: 130,
		Gamma:    0.6,
		Width:    120,
		Step:     300 * time.Millisecond,
		Preview:  "png",
	},
	// demo renders the bundled sample at once, without pauses.
	"demo": {
		Name:     "demo",
		MinLevel: art.DefaultMinLevel,
		MaxLevel: art.DefaultMaxLevel,
		Gamma:    art.DefaultGamma,
		Width:    150,
		Preview:  "jpeg",
	},
}

// Get returns a profile by name. Falls back to sketch if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Options converts the profile into generator options. Width is only
// applied when set.
func (p Profile) Options() []art.Option {
	opts := []art.Option{
		art.WithLevels(p.MinLevel, p.MaxLevel),
		art.WithGamma(p.Gamma),
	}
	if p.Width > 0 {
		opts = append(opts, art.WithWidth(p.Width))
	}
	return opts
}
