package autoref

import (
	"fmt"
	"strings"
)

// TagKey is the struct tag consumed by the metadata builder.
const TagKey = "autoref"

// Strategy selects the search domain of a field.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyOwn
	StrategyDescendant
	StrategyAncestor
	StrategySibling
	StrategyExternal
)

var strategyTokens = map[string]Strategy{
	"own":        StrategyOwn,
	"get":        StrategyOwn,
	"descendant": StrategyDescendant,
	"children":   StrategyDescendant,
	"ancestor":   StrategyAncestor,
	"parent":     StrategyAncestor,
	"sibling":    StrategySibling,
	"siblings":   StrategySibling,
	"external":   StrategyExternal,
	"asset":      StrategyExternal,
}

func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyOwn:
		return "own"
	case StrategyDescendant:
		return "descendant"
	case StrategyAncestor:
		return "ancestor"
	case StrategySibling:
		return "sibling"
	case StrategyExternal:
		return "external"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// MarshalText encodes the strategy by its canonical token.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsGraph reports whether the strategy searches the scene graph.
func (s Strategy) IsGraph() bool {
	return s >= StrategyOwn && s <= StrategySibling
}

// domain describes where the strategy searches, relative to a node.
func (s Strategy) domain() string {
	switch s {
	case StrategyOwn:
		return "on"
	case StrategyDescendant:
		return "in descendants of"
	case StrategyAncestor:
		return "in ancestors of"
	case StrategySibling:
		return "in siblings of"
	default:
		return "for"
	}
}

// annotation is the parsed form of one autoref tag.
type annotation struct {
	Strategy    Strategy
	Token       string
	Name        string
	HasName     bool
	Path        string
	HasPath     bool
	Mode        SyncMode
	IncludeSelf bool
	Optional    bool
	Tracked     bool
}

// parseTag parses tag and returns every problem found.
func parseTag(tag string) (annotation, []string) {
	var a annotation
	var problems []string
	var strategies []string
	hasFilter := false

	for _, raw := range strings.Split(tag, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}

		key, value, hasValue := strings.Cut(token, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if s, ok := strategyTokens[key]; ok && !hasValue {
			strategies = append(strategies, key)
			a.Strategy = s
			a.Token = key
			continue
		}

		switch {
		case key == "name" && hasValue:
			a.Name, a.HasName = value, true
			hasFilter = true
		case key == "path" && hasValue:
			a.Path, a.HasPath = value, true
			hasFilter = true
		case key == "mode" && hasValue:
			m, err := ParseMode(value)
			if err != nil {
				problems = append(problems, err.Error())
			}
			a.Mode = m
			hasFilter = true
		case key == "self" && !hasValue:
			a.IncludeSelf = true
			hasFilter = true
		case key == "optional" && !hasValue:
			a.Optional = true
			hasFilter = true
		case key == "sync" && !hasValue:
			a.Tracked = true
		default:
			problems = append(problems, fmt.Sprintf("unknown annotation token %q", token))
		}
	}

	if len(strategies) > 1 {
		problems = append(problems, fmt.Sprintf("multiple resolution strategies: %s", strings.Join(strategies, ", ")))
		return a, problems
	}

	if a.Strategy == StrategyNone {
		if hasFilter {
			problems = append(problems, "filters require a resolution strategy")
		}
		return a, problems
	}

	if a.HasName && a.Strategy == StrategyExternal {
		problems = append(problems, "name filter is not applicable to external lookup")
	}
	if a.HasPath && a.Strategy != StrategyExternal {
		problems = append(problems, fmt.Sprintf("path filter is only applicable to external lookup, not %s", a.Strategy))
	}
	if !a.HasPath && a.Strategy == StrategyExternal {
		problems = append(problems, "external lookup requires a path filter")
	}
	if a.IncludeSelf && a.Strategy != StrategyDescendant && a.Strategy != StrategyAncestor {
		problems = append(problems, fmt.Sprintf("self is not applicable to %s lookup", a.Strategy))
	}

	return a, problems
}
