package autoref

import (
	"fmt"
	"path"
	"reflect"
	"strings"

	"auto-reference/core/scene"
)

// Severity of a LogItem.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status returns the status flag carried by the severity.
func (s Severity) Status() SyncStatus {
	if s == SeverityError {
		return StatusError
	}
	return StatusWarning
}

// LogItem is one diagnostic.
type LogItem struct {
	Severity    Severity `json:"severity"`
	Package     string   `json:"package"`
	Type        string   `json:"type"`
	Member      string   `json:"member"`
	Annotation  string   `json:"annotation"`
	Message     string   `json:"message"`
	Node        string   `json:"node,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Owner returns the short package-qualified type name, e.g. components.Turret.
func (l LogItem) Owner() string {
	if l.Package == "" {
		return l.Type
	}
	return path.Base(l.Package) + "." + l.Type
}

func (l LogItem) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", l.Severity, l.Owner())
	if l.Member != "" {
		fmt.Fprintf(&b, ".%s", l.Member)
	}
	if l.Annotation != "" {
		fmt.Fprintf(&b, " [%s]", l.Annotation)
	}
	fmt.Fprintf(&b, ": %s", l.Message)
	if l.Node != "" {
		fmt.Fprintf(&b, " (node %s)", l.Node)
	}
	if len(l.Suggestions) > 0 {
		fmt.Fprintf(&b, "; did you mean %s?", strings.Join(l.Suggestions, ", "))
	}
	return b.String()
}

// TypeReport groups the diagnostics of one component type.
type TypeReport struct {
	Package string    `json:"package"`
	Type    string    `json:"type"`
	Items   []LogItem `json:"items"`
}

// StatisticsInfo counts what a batch touched.
type StatisticsInfo struct {
	Types      int `json:"types"`
	Fields     int `json:"fields"`
	Callbacks  int `json:"callbacks"`
	Components int `json:"components"`
	Nodes      int `json:"nodes"`
	Modified   int `json:"modified"`
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
}

// ReportInfo is the outcome of one batch.
type ReportInfo struct {
	Status     SyncStatus     `json:"status"`
	Summary    string         `json:"summary"`
	Types      []TypeReport   `json:"types"`
	Statistics StatisticsInfo `json:"statistics"`
}

// Items returns every diagnostic of the report in type order.
func (r ReportInfo) Items() []LogItem {
	var items []LogItem
	for _, tr := range r.Types {
		items = append(items, tr.Items...)
	}
	return items
}

// aggregator folds statuses and diagnostics of one batch.
type aggregator struct {
	status SyncStatus
	stats  StatisticsInfo
	order  []reflect.Type
	types  map[reflect.Type]*TypeReport
	seen   map[reflect.Type]bool
	nodes  map[*scene.Node]struct{}
}

func newAggregator() *aggregator {
	return &aggregator{
		types: make(map[reflect.Type]*TypeReport),
		seen:  make(map[reflect.Type]bool),
		nodes: make(map[*scene.Node]struct{}),
	}
}

// touchType records the build diagnostics of meta the first time the type is
// seen in the batch, and returns their status on every call. first reports
// whether this call recorded them.
func (a *aggregator) touchType(meta *TypeMetadata) (status SyncStatus, first bool) {
	for _, item := range meta.Messages {
		status |= item.Severity.Status()
	}
	if a.seen[meta.Type] {
		return status, false
	}
	a.seen[meta.Type] = true
	a.stats.Types++
	for _, item := range meta.Messages {
		a.add(meta.Type, item)
	}
	return status, true
}

func (a *aggregator) touchNode(n *scene.Node) {
	if n == nil {
		return
	}
	if _, ok := a.nodes[n]; !ok {
		a.nodes[n] = struct{}{}
		a.stats.Nodes++
	}
}

func (a *aggregator) add(t reflect.Type, item LogItem) SyncStatus {
	tr, ok := a.types[t]
	if !ok {
		tr = &TypeReport{Package: item.Package, Type: item.Type}
		a.types[t] = tr
		a.order = append(a.order, t)
	}
	tr.Items = append(tr.Items, item)

	if item.Severity == SeverityError {
		a.stats.Errors++
	} else {
		a.stats.Warnings++
	}
	return item.Severity.Status()
}

func (a *aggregator) fold(s SyncStatus) {
	a.status |= s
}

func (a *aggregator) report() ReportInfo {
	r := ReportInfo{
		Status:     a.status,
		Summary:    a.status.Summary(),
		Statistics: a.stats,
		Types:      make([]TypeReport, 0, len(a.order)),
	}
	for _, t := range a.order {
		tr := *a.types[t]
		tr.Items = append([]LogItem(nil), tr.Items...)
		r.Types = append(r.Types, tr)
	}
	return r
}
