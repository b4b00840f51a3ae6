package generator

import (
	"context"
	"encoding/base64"

	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockModel struct {
	calls        int
	lastModel    string
	lastParts    []*genai.Part
	lastOpts     gemini.GenerateOptions
	generateFunc func(parts []*genai.Part) (*gemini.Response, error)
}

func (m *mockModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	m.lastModel = model
	m.lastParts = parts
	m.lastOpts = opts
	if m.generateFunc != nil {
		return m.generateFunc(parts)
	}
	return imageResponse("image/png", []byte("fake")), nil
}

// factoryFor は生成回数を数えるファクトリを返すのだ。
func factoryFor(m *mockModel, created *int) ModelFactory {
	return func(ctx context.Context, apiKey string) (PartsGenerator, error) {
		*created++
		return m, nil
	}
}

func imageResponse(mimeType string, data []byte) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
				},
			}},
		},
	}
}

func assetOf(mimeType string, raw []byte) *domain.ImageAsset {
	return &domain.ImageAsset{
		Data:      domain.BuildDataURL(mimeType, base64.StdEncoding.EncodeToString(raw)),
		MediaType: mimeType,
	}
}
