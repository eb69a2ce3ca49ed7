package utils

import (
	"encoding/json"
	"fmt"
	"math"
)

// CosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched lengths or zero-magnitude inputs.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// FlattenVector decodes an embedding response into a flat vector. Feature
// extraction endpoints return either [..] or nested [[..]] arrays depending on
// the model, so nesting is flattened recursively.
func FlattenVector(raw json.RawMessage) ([]float64, error) {
	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}
	var nested []json.RawMessage
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("embedding response is not an array: %w", err)
	}
	var out []float64
	for _, inner := range nested {
		vals, err := FlattenVector(inner)
		if err != nil {
			return nil, err
		}
		out = append(out, vals...)
	}
	return out, nil
}
