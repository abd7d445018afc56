package config

import (
	"fmt"
	"strings"
)

// Component is an optional Cloud SDK release channel that is installed before
// use and prefixed to every gcloud invocation.
type Component string

const (
	// ComponentNone selects the GA command surface.
	ComponentNone Component = ""
	// ComponentAlpha selects `gcloud alpha`.
	ComponentAlpha Component = "alpha"
	// ComponentBeta selects `gcloud beta`.
	ComponentBeta Component = "beta"
)

// ValidComponents lists the accepted non-empty component channels.
var ValidComponents = []Component{ComponentAlpha, ComponentBeta}

// ParseComponent converts user input into a Component. Matching is
// case-insensitive and surrounding whitespace is ignored.
func ParseComponent(s string) (Component, error) {
	switch c := Component(strings.ToLower(strings.TrimSpace(s))); c {
	case ComponentNone, ComponentAlpha, ComponentBeta:
		return c, nil
	default:
		return ComponentNone, fmt.Errorf("invalid gcloud component %q: must be one of %v", s, ValidComponents)
	}
}

// UnmarshalText lets envconfig reject unknown channels while loading.
func (c *Component) UnmarshalText(text []byte) error {
	parsed, err := ParseComponent(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// IsSet reports whether a channel other than GA is selected.
func (c Component) IsSet() bool {
	return c != ComponentNone
}

func (c Component) String() string {
	if c == ComponentNone {
		return "none"
	}
	return string(c)
}
