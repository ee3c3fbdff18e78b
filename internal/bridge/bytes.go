package bridge

import (
	"encoding/base64"
	"encoding/json"
)

// EncodeBytes is the single binary encoding used on the bridge. Consumers
// never see raw byte arrays, only base64 text.
func EncodeBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// NormalizeBinary rewrites a tagged Buffer object in a reply payload into a
// base64 JSON string. Strings and any other shapes pass through unchanged;
// the payload is still valid JSON either way.
func NormalizeBinary(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || raw[0] != '{' {
		return raw
	}

	var buf struct {
		Type string        `json:"type"`
		Data []json.Number `json:"data"`
	}
	if err := json.Unmarshal(raw, &buf); err != nil || buf.Type != "Buffer" || buf.Data == nil {
		return raw
	}

	bytes := make([]byte, len(buf.Data))
	for i, n := range buf.Data {
		v, err := n.Int64()
		if err != nil || v < 0 || v > 255 {
			return raw
		}
		bytes[i] = byte(v)
	}

	encoded, err := json.Marshal(EncodeBytes(bytes))
	if err != nil {
		return raw
	}
	return encoded
}
