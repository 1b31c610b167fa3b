package autoref

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"auto-reference/core/scene"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestions bounds the "did you mean" list of a diagnostic.
const maxSuggestions = 3

// AssetResolver gives external lookups access to the asset store.
type AssetResolver interface {
	TypeChecker
	// Load returns the asset at path. A non-nil t must match the asset type.
	Load(ctx context.Context, path string, t reflect.Type) (any, error)
	// List returns the asset paths under prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
	// PathOf returns the path an asset was loaded from.
	PathOf(v any) (string, bool)
}

// lookup is the outcome of running a strategy.
type lookup struct {
	// matches are the candidates in traversal order.
	matches []any
	// misses are derived names of type-matching components rejected by the name filter.
	misses []string
}

// find runs the strategy of fd for the component self on node.
func find(ctx context.Context, assets AssetResolver, node *scene.Node, self scene.Component, fd *FieldDescriptor) (lookup, error) {
	switch fd.Strategy {
	case StrategyOwn:
		return collect([]*scene.Node{node}, self, fd, false), nil
	case StrategyDescendant:
		return collect(descendants(node, fd.IncludeSelf), self, fd, false), nil
	case StrategyAncestor:
		return collect(ancestors(node, fd.IncludeSelf), self, fd, true), nil
	case StrategySibling:
		return collect(node.Siblings(), self, fd, false), nil
	case StrategyExternal:
		return findExternal(ctx, assets, fd)
	default:
		return lookup{}, fmt.Errorf("unsupported strategy %s", fd.Strategy)
	}
}

func descendants(node *scene.Node, includeSelf bool) []*scene.Node {
	var nodes []*scene.Node
	node.Walk(func(n *scene.Node) bool {
		if n != node || includeSelf {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

func ancestors(node *scene.Node, includeSelf bool) []*scene.Node {
	var nodes []*scene.Node
	start := node.Parent()
	if includeSelf {
		start = node
	}
	for n := start; n != nil; n = n.Parent() {
		nodes = append(nodes, n)
	}
	return nodes
}

// collect scans the components of nodes in order. With first set it stops at the first match.
func collect(nodes []*scene.Node, self scene.Component, fd *FieldDescriptor, first bool) lookup {
	var l lookup
	for _, n := range nodes {
		for _, c := range n.Components() {
			if c == self || !reflect.TypeOf(c).AssignableTo(fd.Target) {
				continue
			}
			if fd.HasNameFilter && scene.NameOf(c) != fd.NameFilter {
				l.misses = append(l.misses, scene.NameOf(c))
				continue
			}
			l.matches = append(l.matches, c)
			if first {
				return l
			}
		}
	}
	return l
}

func findExternal(ctx context.Context, assets AssetResolver, fd *FieldDescriptor) (lookup, error) {
	if assets == nil {
		return lookup{}, fmt.Errorf("no asset store is configured")
	}

	if !fd.Sequence {
		v, err := assets.Load(ctx, fd.PathFilter, fd.Target)
		if err != nil {
			return lookup{}, err
		}
		return lookup{matches: []any{v}}, nil
	}

	paths, err := assets.List(ctx, fd.PathFilter)
	if err != nil {
		return lookup{}, err
	}
	sort.Strings(paths)

	var l lookup
	for _, p := range paths {
		v, err := assets.Load(ctx, p, nil)
		if err != nil {
			return lookup{}, err
		}
		// Assets of other types under the prefix are outside the domain.
		if reflect.TypeOf(v) != fd.Target {
			continue
		}
		l.matches = append(l.matches, v)
	}
	return l, nil
}

// inDomain reports whether the component c lies in the graph search domain of fd.
func inDomain(node *scene.Node, self scene.Component, fd *FieldDescriptor, c scene.Component) bool {
	owner := c.Node()
	if c == self || owner == nil {
		return false
	}

	switch fd.Strategy {
	case StrategyOwn:
		return owner == node
	case StrategyDescendant:
		if owner == node {
			return fd.IncludeSelf
		}
		for p := owner.Parent(); p != nil; p = p.Parent() {
			if p == node {
				return true
			}
		}
		return false
	case StrategyAncestor:
		if owner == node {
			return fd.IncludeSelf
		}
		for p := node.Parent(); p != nil; p = p.Parent() {
			if p == owner {
				return true
			}
		}
		return false
	case StrategySibling:
		for _, s := range node.Siblings() {
			if s == owner {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// suggest ranks names close to the name filter.
func suggest(filter string, names []string) []string {
	unique := dedupe(names)
	ranks := fuzzy.RankFindNormalizedFold(filter, unique)
	sort.Sort(ranks)

	var out []string
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			return out
		}
	}

	// Nothing fuzzy-matched: offer what exists instead.
	if len(out) == 0 {
		sort.Strings(unique)
		if len(unique) > maxSuggestions {
			unique = unique[:maxSuggestions]
		}
		out = unique
	}
	return out
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		if _, ok := seen[n]; ok || n == "" {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// describeDomain renders the search domain of fd for a node, used in diagnostics.
func describeDomain(node *scene.Node, fd *FieldDescriptor) string {
	var b strings.Builder
	b.WriteString(typeName(fd.Target))
	if fd.HasNameFilter {
		fmt.Fprintf(&b, " named %q", fd.NameFilter)
	}
	if fd.Strategy == StrategyExternal {
		fmt.Fprintf(&b, " at %q", fd.PathFilter)
		return b.String()
	}
	fmt.Fprintf(&b, " %s %q", fd.Strategy.domain(), node.Name())
	return b.String()
}
