package api

// NoteRequest is the request body for creating or updating a note.
type NoteRequest struct {
	Text string `json:"text" example:"buy milk"`
}

// NodeRequest is the request body for creating a graph node.
type NodeRequest struct {
	Text string  `json:"text" example:"idea"`
	X    float64 `json:"x" example:"120"`
	Y    float64 `json:"y" example:"80"`
	Kind string  `json:"kind,omitempty" example:"square"`
}

// EdgeRequest is the request body for creating a graph edge.
// A missing weight means the default weight.
type EdgeRequest struct {
	SourceID int64    `json:"source_id" example:"1"`
	TargetID int64    `json:"target_id" example:"2"`
	Weight   *float64 `json:"weight,omitempty" example:"1"`
}

// AIMockRequest is the request body for the canned suggestion endpoint.
type AIMockRequest struct {
	Texts []string `json:"texts"`
}

// AIMockResponse carries the canned suggestion.
type AIMockResponse struct {
	Result string `json:"result"`
}

// PingResponse is returned by GET /ping.
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}

// OKResponse acknowledges a delete.
type OKResponse struct {
	OK bool `json:"ok"`
}
