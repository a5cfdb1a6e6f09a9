package loader

// Declaration is the top-level shape of a flow declaration file: an import
// table plus the single node (usually a graph) it defines.
type Declaration struct {
	Imports map[string][]string `yaml:"imports,omitempty"`
	Node    NodeDecl             `yaml:"node"`
}

// NodeDecl describes one graph: its exposed pins, its child instances, and
// the connections wiring them together.
type NodeDecl struct {
	ID          string           `yaml:"id"`
	Inputs      []PinDecl        `yaml:"inputs,omitempty"`
	Outputs     []PinDecl        `yaml:"outputs,omitempty"`
	Instances   []InstanceDecl   `yaml:"instances,omitempty"`
	Connections []ConnectionDecl `yaml:"connections,omitempty"`
}

// PinDecl describes one of a graph's or instance's exposed pins.
type PinDecl struct {
	ID       string  `yaml:"id"`
	Mode     string  `yaml:"mode,omitempty"`     // "queue" (default), "sticky", "static"
	Required string  `yaml:"required,omitempty"` // "required" (default), "optional", "required_if_connected"
	Value    *Wrapper `yaml:"value,omitempty"`   // default for sticky/static pins
}

// Wrapper is the `{type, value}` literal shape used throughout a flow
// declaration for typed data: pin defaults, an InlineValue's configured
// value, a Conditional case's comparison value.
type Wrapper struct {
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

// InstanceDecl describes one child node inside a graph.
type InstanceDecl struct {
	ID   string `yaml:"id"`
	// NodeID names a concrete node class to instantiate, resolved through
	// the Loader's import table, or — when it equals "MACRO__"+ID — the
	// distinguished marker meaning this instance is a built-in macro,
	// named by MacroID.
	NodeID        string         `yaml:"nodeId"`
	MacroID       string         `yaml:"macroId,omitempty"`
	InputConfig   map[string]any `yaml:"inputConfig,omitempty"`
	MacroData     map[string]any `yaml:"macroData,omitempty"`
}

// EndpointDecl names one pin of one instance, or — when InsID is empty —
// one of the owning graph's own exposed pins.
type EndpointDecl struct {
	InsID string `yaml:"insId,omitempty"`
	PinID string `yaml:"pinId"`
}

// ConnectionDecl wires one output pin to one input pin.
type ConnectionDecl struct {
	From    EndpointDecl `yaml:"from"`
	To      EndpointDecl `yaml:"to"`
	Delayed bool         `yaml:"delayed,omitempty"`
	Hidden  bool         `yaml:"hidden,omitempty"`
}
