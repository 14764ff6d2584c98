package mcpserver

// DataContract describes the notes and graph data model that LLM consumers
// should respect when calling the mutating tools.
const DataContract = `# VitaminX Data Contract

## Notes

- A note is ` + "`" + `{id, text, created_at}` + "`" + `. Ids are integers assigned by the server.
- ` + "`" + `text` + "`" + ` is trimmed; a note with empty text is rejected.
- ` + "`" + `created_at` + "`" + ` is set once on create and never changes on update.
- Listings are newest first. ` + "`" + `search_notes` + "`" + ` matches notes containing every word of the query, case-insensitively.

## Graph

- A node is ` + "`" + `{id, text, x, y, kind}` + "`" + `. Text is trimmed and cut to 200 characters.
- ` + "`" + `x` + "`" + ` and ` + "`" + `y` + "`" + ` are clamped to [0, 10000]. ` + "`" + `kind` + "`" + ` defaults to ` + "`" + `square` + "`" + `.
- An edge is ` + "`" + `{id, source_id, target_id, weight}` + "`" + `. Both ends must exist.
- Deleting a node removes every edge that touches it.

## Example

` + "```" + `json
{"nodes": [{"id": 1, "text": "idea", "x": 120, "y": 80, "kind": "square"}],
 "edges": [{"id": 1, "source_id": 1, "target_id": 1, "weight": 1}]}
` + "```" + `
`
