// Package runtimeops defines the declarative game specification consumed by the
// preview: a world grid plus loosely typed systems and entities.
package runtimeops

// World describes the grid a preview runs on.
type World struct {
	TileSize  int  `yaml:"tileSize" json:"tileSize"`
	Width     int  `yaml:"width" json:"width"`   // Columns
	Height    int  `yaml:"height" json:"height"` // Rows
	WrapEdges bool `yaml:"wrapEdges" json:"wrapEdges"`
}

// System is a typed gameplay rule. Type is raw until normalised.
type System struct {
	Type   string         `yaml:"type" json:"type"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// Component is an open record attached to an entity. Recognised shapes carry a
// "type" discriminator (GridPosition, Snake, Renderable) or bare fields.
type Component map[string]any

// Type returns the component's discriminator, or "" when it has none.
func (c Component) Type() string {
	s, _ := c["type"].(string)
	return s
}

// Has reports whether the component carries the given field.
func (c Component) Has(field string) bool {
	_, ok := c[field]
	return ok
}

// Entity is a named bag of components.
type Entity struct {
	ID         string      `yaml:"id" json:"id"`
	Name       string      `yaml:"name,omitempty" json:"name,omitempty"`
	Components []Component `yaml:"components" json:"components"`
}

// Ops is a complete runtime-operations document.
type Ops struct {
	World    *World   `yaml:"world" json:"world"`
	Systems  []System `yaml:"systems" json:"systems"`
	Entities []Entity `yaml:"entities,omitempty" json:"entities,omitempty"`
}

// SystemTypes returns the type of every system in declaration order.
func (o Ops) SystemTypes() []string {
	types := make([]string, len(o.Systems))
	for i, s := range o.Systems {
		types[i] = s.Type
	}
	return types
}

// SystemParams returns the params of the first system whose type equals t.
func (o Ops) SystemParams(t string) (map[string]any, bool) {
	for _, s := range o.Systems {
		if s.Type == t {
			return s.Params, true
		}
	}
	return nil, false
}
