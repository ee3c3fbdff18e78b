package parser

import (
	"context"
	"encoding/json"
)

// Decoder turns raw transaction bytes (base64) into the decoder's JSON
// description of the transaction. The resolver owns normalization; a
// Decoder only has to get the bytes decoded.
type Decoder interface {
	// Decode returns the decoded transaction as raw JSON.
	Decode(ctx context.Context, transactionBytes string) (json.RawMessage, error)
	// Validate checks that the bytes are decodable without returning the
	// full decoded form.
	Validate(ctx context.Context, transactionBytes string) error
}
