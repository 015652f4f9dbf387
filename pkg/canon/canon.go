package canon

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Marshal returns the canonical JSON encoding of v: object keys sorted,
// compact separators, no trailing newline. This is the encoding that gets
// hashed. It is deliberately distinct from Pretty, so that cosmetic changes
// to the persisted form can never shift a recorded hash.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canon marshal: %w", err)
	}

	// Round-trip through a generic value so maps re-marshal with sorted keys
	// and numbers keep their original tokens.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var norm any
	if err := dec.Decode(&norm); err != nil {
		return nil, fmt.Errorf("canon normalize: %w", err)
	}

	out, err := json.Marshal(norm)
	if err != nil {
		return nil, fmt.Errorf("canon remarshal: %w", err)
	}
	return out, nil
}

// Pretty returns the human-readable persisted encoding of v: two-space
// indent and a trailing newline.
func Pretty(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("pretty marshal: %w", err)
	}
	return append(out, '\n'), nil
}

// SHA256Hex returns the lowercase hex SHA-256 digest of b.
func SHA256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// FileSHA256 returns the SHA-256 digest of the file's current content.
func FileSHA256(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return SHA256Hex(b), nil
}
