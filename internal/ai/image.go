package ai

import (
	"context"
	"fmt"
	"slices"
)

// AspectRatios lists the supported output shapes.
var AspectRatios = []string{"1:1", "16:9", "9:16", "4:3", "3:4"}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount    int    `json:"sampleCount"`
	AspectRatio    string `json:"aspectRatio"`
	OutputMimeType string `json:"outputMimeType"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

// GenerateImage produces one image for the prompt and returns it as a
// data URI. On failure the caller gets a typed error and no image; there
// is no blank-image fallback.
func (g *Gateway) GenerateImage(ctx context.Context, prompt, aspectRatio string) (string, error) {
	if !g.configured() {
		return "", ErrNotConfigured
	}

	if !slices.Contains(AspectRatios, aspectRatio) {
		return "", fmt.Errorf("%w: unsupported aspect ratio %q", ErrGenerationFailed, aspectRatio)
	}

	req := predictRequest{
		Instances: []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{
			SampleCount:    1,
			AspectRatio:    aspectRatio,
			OutputMimeType: "image/jpeg",
		},
	}

	var resp predictResponse
	path := "/v1beta/models/" + g.cfg.ImageModel + ":predict"
	if err := g.post(ctx, path, req, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Predictions) == 0 || resp.Predictions[0].BytesBase64Encoded == "" {
		return "", fmt.Errorf("%w: no image generated", ErrGenerationFailed)
	}

	return "data:image/jpeg;base64," + resp.Predictions[0].BytesBase64Encoded, nil
}
