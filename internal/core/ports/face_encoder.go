package ports

import "context"

// BoundingBox is the pixel region of a detected face within the source image.
type BoundingBox struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// DetectedFace is one face found by the encoder together with its
// fixed-dimension embedding vector.
type DetectedFace struct {
	Box       BoundingBox `json:"box"`
	Embedding []float64   `json:"embedding"`
}

// FaceEncoder is the opaque detection/embedding capability. Given an image it
// returns zero or more detected faces. The encoder's native distance metric
// calibrates the match tolerance; the workflows never interpret the vectors
// beyond distance comparison.
type FaceEncoder interface {
	DetectAndEncode(ctx context.Context, image []byte) ([]DetectedFace, error)
}
