package ai

import (
	"context"
	"fmt"

	"vlogify/internal/models"
)

type Image struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64, no data-URI prefix
}

type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Answer struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

// FindPlaces answers a location question, grounded through the maps tool.
// Device coordinates are optional and bias the retrieval.
func (g *Gateway) FindPlaces(ctx context.Context, prompt string, location *models.Location) (*Answer, error) {
	return g.findPlaces(ctx, []part{{Text: prompt}}, location)
}

// FindPlacesWithImage is the image+text variant: the photo travels as an
// inline part next to the prompt.
func (g *Gateway) FindPlacesWithImage(ctx context.Context, prompt string, image Image, location *models.Location) (*Answer, error) {
	parts := []part{
		{Text: prompt},
		{InlineData: &inlineData{MimeType: image.MimeType, Data: image.Data}},
	}
	return g.findPlaces(ctx, parts, location)
}

func (g *Gateway) findPlaces(ctx context.Context, parts []part, location *models.Location) (*Answer, error) {
	if !g.configured() {
		return nil, ErrNotConfigured
	}

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		Tools:    []tool{{GoogleMaps: &struct{}{}}},
	}

	if location != nil {
		req.ToolConfig = &toolConfig{
			RetrievalConfig: retrievalConfig{
				LatLng: latLng{
					Latitude:  location.Latitude,
					Longitude: location.Longitude,
				},
			},
		}
	}

	resp, err := g.generateContent(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	text := resp.text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrSearchFailed)
	}

	return &Answer{
		Text:      text,
		Citations: resp.citations(),
	}, nil
}
