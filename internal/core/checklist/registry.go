// Package checklist contains the checklist template registry and the pure
// logic for joining checklist item instances to their templates and stages.
package checklist

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// CustomGroupLabel is the bucket for items without a resolvable template.
const CustomGroupLabel = "Inne / Niestandardowe"

//go:embed templates.yaml
var defaultCatalogYAML []byte

// Template is the immutable reference definition of a checklist task.
type Template struct {
	ID              string `yaml:"id"`
	Label           string `yaml:"label"`
	Stage           string `yaml:"stage"` // empty when the task has no owning stage
	AllowAttachment bool   `yaml:"allow_attachment"`
	Locked          bool   `yaml:"locked"`
}

// Registry holds the template catalog with O(1) lookup by template ID.
type Registry struct {
	templates []Template
	byID      map[string]Template
}

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// NewRegistry builds a registry from a template list.
func NewRegistry(templates []Template) *Registry {
	byID := make(map[string]Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}
	return &Registry{templates: templates, byID: byID}
}

// ParseRegistry parses a YAML template catalog.
func ParseRegistry(data []byte) (*Registry, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}
	for i, t := range f.Templates {
		if t.ID == "" || t.Label == "" {
			return nil, fmt.Errorf("template catalog entry %d missing id or label", i)
		}
	}
	return NewRegistry(f.Templates), nil
}

var defaultRegistry = mustParseDefault()

func mustParseDefault() *Registry {
	r, err := ParseRegistry(defaultCatalogYAML)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the embedded montage checklist catalog.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Templates returns a copy of the template catalog in catalog order.
func (r *Registry) Templates() []Template {
	out := make([]Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// Resolve looks up a template by ID. Missing or empty IDs resolve to false,
// never to an error: such items belong to the custom group.
func (r *Registry) Resolve(templateID string) (Template, bool) {
	if templateID == "" {
		return Template{}, false
	}
	t, ok := r.byID[templateID]
	return t, ok
}

// ForStage returns the templates associated with a stage value.
func (r *Registry) ForStage(stageValue string) []Template {
	var out []Template
	for _, t := range r.templates {
		if t.Stage != "" && t.Stage == stageValue {
			out = append(out, t)
		}
	}
	return out
}

// Item is a per-montage checklist item instance.
type Item struct {
	ID          string
	TemplateID  string // empty for custom items
	Label       string
	Completed   bool
	CompletedAt string // RFC3339, empty when incomplete
	Attachment  string // file reference, empty when none
}

// AssociatedStage resolves the stage an item belongs to through its template.
// Returns ok=false for custom items and for items whose template is missing
// from the registry.
func (r *Registry) AssociatedStage(item Item) (string, bool) {
	t, ok := r.Resolve(item.TemplateID)
	if !ok || t.Stage == "" {
		return "", false
	}
	return t.Stage, true
}

// Locked reports whether an item may not be renamed or deleted. Custom and
// orphaned items are always unlocked.
func (r *Registry) Locked(item Item) bool {
	t, ok := r.Resolve(item.TemplateID)
	return ok && t.Locked
}

// AllowsAttachment reports whether an item accepts a file attachment.
// Custom and orphaned items accept attachments.
func (r *Registry) AllowsAttachment(item Item) bool {
	t, ok := r.Resolve(item.TemplateID)
	if !ok {
		return true
	}
	return t.AllowAttachment
}

// Groups is the result of joining items to stages once, up front.
type Groups struct {
	ByStage map[string][]Item
	Custom  []Item
}

// GroupByStage partitions items by their associated stage. Items without a
// resolvable stage land in the custom bucket.
func (r *Registry) GroupByStage(items []Item) Groups {
	g := Groups{ByStage: make(map[string][]Item)}
	for _, item := range items {
		if stageValue, ok := r.AssociatedStage(item); ok {
			g.ByStage[stageValue] = append(g.ByStage[stageValue], item)
		} else {
			g.Custom = append(g.Custom, item)
		}
	}
	return g
}

// Stages returns the stage values present in the groups, sorted for stable
// iteration.
func (g Groups) Stages() []string {
	out := make([]string, 0, len(g.ByStage))
	for s := range g.ByStage {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
