package vision

import "context"

// Image is one reference image attached to a generation request.
type Image struct {
	Data []byte
	MIME string
}

// Request describes a single multimodal generation call.
type Request struct {
	Model           string
	Images          []Image
	Instruction     string
	Temperature     float32
	MaxOutputTokens int32
	JSONResponse    bool
}

// Backend generates text from an instruction plus optional images.
// Implementations must honor ctx cancellation and deadlines.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ImageRequest describes a single image generation call.
type ImageRequest struct {
	Model       string
	Prompt      string
	AspectRatio string
}

// GeneratedImage is one image produced by a backend, with any text the
// model emitted alongside it.
type GeneratedImage struct {
	Data  []byte
	MIME  string
	Notes string
}

// ImageBackend produces images. Implemented by backends whose model
// family supports image output.
type ImageBackend interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error)
}
