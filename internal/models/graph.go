package models

// Node normalization bounds.
const (
	MaxNodeText     = 200
	MinCoord        = 0.0
	MaxCoord        = 10000.0
	DefaultNodeKind = "square"
)

// DefaultEdgeWeight is used when an edge is created without a weight.
const DefaultEdgeWeight = 1.0

// Node is a positioned vertex of the graph canvas.
type Node struct {
	ID   int64   `json:"id"`
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Kind string  `json:"kind"`
}

// Edge is a directed, weighted connection between two nodes.
type Edge struct {
	ID       int64   `json:"id"`
	SourceID int64   `json:"source_id"`
	TargetID int64   `json:"target_id"`
	Weight   float64 `json:"weight"`
}
