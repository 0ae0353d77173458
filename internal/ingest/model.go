package ingest

// Relative position buckets for where a chunk falls within its source book.
const (
	PositionEarly = "early"
	PositionMid   = "mid"
	PositionLate  = "late"
)

// Chunk is a fixed-size, possibly overlapping window of a book's text
// with positional metadata. Chunks are immutable once created.
type Chunk struct {
	Text             string `json:"text"`
	Book             string `json:"book"`
	ChunkIndex       int    `json:"chunk_index"`
	RelativePosition string `json:"relative_position"`
	TokenStart       int    `json:"token_start"`
	TokenEnd         int    `json:"token_end"`
}
