package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenaiModel は genai SDK を直接使う PartsGenerator 実装です。
// 出力モダリティは常に画像のみを要求します。
type GenaiModel struct {
	client *genai.Client
}

var _ PartsGenerator = (*GenaiModel)(nil)

// NewGenaiModel は Gemini API バックエンドのクライアントを作成します。
func NewGenaiModel(ctx context.Context, apiKey string) (*GenaiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai クライアントの作成に失敗しました: %w", err)
	}
	return &GenaiModel{client: client}, nil
}

func genaiFactory(ctx context.Context, apiKey string) (PartsGenerator, error) {
	return NewGenaiModel(ctx, apiKey)
}

// GenerateWithParts はパーツ列を1つのユーザーターンとして送信します。
func (m *GenaiModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := m.client.Models.GenerateContent(ctx, model, contents, buildConfig(opts))
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

func buildConfig(opts gemini.GenerateOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{responseModalityImage},
		Seed:               seedToPtrInt32(opts.Seed),
	}
	if opts.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: opts.SystemPrompt}}}
	}
	return cfg
}
