package ai

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vlogify/internal/config"
	"vlogify/internal/models"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*Gateway, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gw := New(config.AI{
		APIKey:     "test-api-key",
		BaseURL:    server.URL,
		ChatModel:  "gemini-2.5-flash",
		ImageModel: "imagen-4.0-generate-001",
		Timeout:    5 * time.Second,
	}, log.Default())

	return gw, server
}

func chatResponse(text string) generateResponse {
	return generateResponse{
		Candidates: []candidate{{
			Content: content{Role: "model", Parts: []part{{Text: text}}},
		}},
	}
}

func TestGateway_Chat(t *testing.T) {
	t.Run("returns the model reply", func(t *testing.T) {
		var gotPath string
		var gotBody generateRequest

		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &gotBody))
			json.NewEncoder(w).Encode(chatResponse("Hello from the model"))
		})

		history := []Turn{
			{Role: "user", Text: "Hi"},
			{Role: "model", Text: "Hello!"},
		}

		reply := gw.Chat(context.Background(), "What's new?", history)

		assert.Equal(t, "Hello from the model", reply)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
		require.Len(t, gotBody.Contents, 3) // history plus the latest prompt
		assert.Equal(t, "user", gotBody.Contents[2].Role)
		assert.Equal(t, "What's new?", gotBody.Contents[2].Parts[0].Text)
	})

	t.Run("service error degrades to the fallback", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal error", http.StatusInternalServerError)
		})

		reply := gw.Chat(context.Background(), "Hi", nil)

		assert.Equal(t, chatFallback, reply)
	})

	t.Run("placeholder key never hits the network", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		gw := New(config.AI{APIKey: "YOUR_API_KEY", BaseURL: server.URL, ChatModel: "m", Timeout: time.Second}, log.Default())

		reply := gw.Chat(context.Background(), "Hi", nil)

		assert.Equal(t, chatKeyFallback, reply)
		assert.Zero(t, calls.Load())
	})
}

func TestGateway_GenerateImage(t *testing.T) {
	t.Run("returns a data URI", func(t *testing.T) {
		var gotPath string
		var gotBody predictRequest

		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &gotBody))
			json.NewEncoder(w).Encode(predictResponse{
				Predictions: []prediction{{BytesBase64Encoded: "aW1hZ2U=", MimeType: "image/jpeg"}},
			})
		})

		uri, err := gw.GenerateImage(context.Background(), "a mountain sunrise", "16:9")

		require.NoError(t, err)
		assert.Equal(t, "data:image/jpeg;base64,aW1hZ2U=", uri)
		assert.Equal(t, "/v1beta/models/imagen-4.0-generate-001:predict", gotPath)
		assert.Equal(t, "16:9", gotBody.Parameters.AspectRatio)
		assert.Equal(t, 1, gotBody.Parameters.SampleCount)
	})

	t.Run("missing key is a configuration error", func(t *testing.T) {
		gw := New(config.AI{APIKey: "", Timeout: time.Second}, log.Default())

		_, err := gw.GenerateImage(context.Background(), "prompt", "1:1")

		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("unsupported aspect ratio", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("should not reach the service")
		})

		_, err := gw.GenerateImage(context.Background(), "prompt", "2:1")

		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("empty prediction list", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(predictResponse{})
		})

		_, err := gw.GenerateImage(context.Background(), "prompt", "1:1")

		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("service failure", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})

		_, err := gw.GenerateImage(context.Background(), "prompt", "1:1")

		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.NotErrorIs(t, err, ErrNotConfigured)
	})
}

func TestGateway_FindPlaces(t *testing.T) {
	t.Run("grounded answer with citations", func(t *testing.T) {
		var gotBody generateRequest

		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &gotBody))

			resp := chatResponse("Try the ramen place around the corner.")
			resp.Candidates[0].GroundingMetadata = &groundingMetadata{
				GroundingChunks: []groundingChunk{
					{Web: &webSource{URI: "https://maps.example.com/ramen", Title: "Ramen Ichiro"}},
					{Web: nil}, // chunk without a web source is skipped
				},
			}
			json.NewEncoder(w).Encode(resp)
		})

		location := &models.Location{Latitude: 35.68, Longitude: 139.76}
		answer, err := gw.FindPlaces(context.Background(), "best ramen near me", location)

		require.NoError(t, err)
		assert.Equal(t, "Try the ramen place around the corner.", answer.Text)
		require.Len(t, answer.Citations, 1)
		assert.Equal(t, "Ramen Ichiro", answer.Citations[0].Title)

		require.Len(t, gotBody.Tools, 1)
		assert.NotNil(t, gotBody.Tools[0].GoogleMaps)
		require.NotNil(t, gotBody.ToolConfig)
		assert.InDelta(t, 35.68, gotBody.ToolConfig.RetrievalConfig.LatLng.Latitude, 0.001)
	})

	t.Run("no location omits the tool config", func(t *testing.T) {
		var gotBody generateRequest

		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &gotBody))
			json.NewEncoder(w).Encode(chatResponse("Answer"))
		})

		_, err := gw.FindPlaces(context.Background(), "coffee in Paris", nil)

		require.NoError(t, err)
		assert.Nil(t, gotBody.ToolConfig)
	})

	t.Run("image variant sends inline data", func(t *testing.T) {
		var gotBody generateRequest

		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &gotBody))
			json.NewEncoder(w).Encode(chatResponse("Looks like the Eiffel Tower."))
		})

		image := Image{MimeType: "image/png", Data: "cGhvdG8="}
		answer, err := gw.FindPlacesWithImage(context.Background(), "where is this?", image, nil)

		require.NoError(t, err)
		assert.Equal(t, "Looks like the Eiffel Tower.", answer.Text)

		require.Len(t, gotBody.Contents, 1)
		require.Len(t, gotBody.Contents[0].Parts, 2)
		require.NotNil(t, gotBody.Contents[0].Parts[1].InlineData)
		assert.Equal(t, "image/png", gotBody.Contents[0].Parts[1].InlineData.MimeType)
	})

	t.Run("typed errors", func(t *testing.T) {
		gw := New(config.AI{APIKey: "PLACEHOLDER", Timeout: time.Second}, log.Default())
		_, err := gw.FindPlaces(context.Background(), "anything", nil)
		assert.ErrorIs(t, err, ErrNotConfigured)

		failing, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "backend unavailable", http.StatusServiceUnavailable)
		})
		_, err = failing.FindPlaces(context.Background(), "anything", nil)
		assert.ErrorIs(t, err, ErrSearchFailed)
		assert.NotErrorIs(t, err, ErrNotConfigured)
	})
}
