package generator

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

var errInvalidResponse = errors.New("Geminiからの有効な応答がありませんでした")

// GeminiImageCore はパーツ変換とレスポンス解析を担う共通ロジックです。
type GeminiImageCore struct{}

// NewGeminiImageCore は GeminiImageCore を初期化します。
func NewGeminiImageCore() *GeminiImageCore {
	return &GeminiImageCore{}
}

// BuildParts は [指示文, 画像1, 画像2] の順でパーツを組み立てます。
// image2 が nil のときは省略するのだ。
func (c *GeminiImageCore) BuildParts(instruction string, image1, image2 *domain.ImageAsset) ([]*genai.Part, error) {
	parts := []*genai.Part{{Text: instruction}}
	for i, asset := range []*domain.ImageAsset{image1, image2} {
		if asset == nil {
			continue
		}
		part, err := c.ToPart(asset)
		if err != nil {
			return nil, fmt.Errorf("image%d: %w", i+1, err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// ToPart は Data URL のプレフィックスを取り除き、genai.Part (InlineData) に変換します。
func (c *GeminiImageCore) ToPart(asset *domain.ImageAsset) (*genai.Part, error) {
	mimeType := asset.MediaType
	if mimeType == "" {
		if mt, _, err := domain.ParseDataURL(asset.Data); err == nil {
			mimeType = mt
		}
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("MIMEタイプが画像ではありません: %q", mimeType)
	}

	data, err := base64.StdEncoding.DecodeString(asset.Payload())
	if err != nil {
		return nil, fmt.Errorf("base64 デコード失敗: %w", err)
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: mimeType,
			Data:     data,
		},
	}, nil
}

// ParseToResponse は Gemini のレスポンスから最初の画像パーツを探します。
// 画像がなければ domain.ErrNoImage を返します。
func (c *GeminiImageCore) ParseToResponse(resp *gemini.Response) (*ImageOutput, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, errInvalidResponse
	}

	// 最初の候補 (Candidate) のみを見る。
	candidate := resp.RawResponse.Candidates[0]
	if candidate == nil {
		return nil, errInvalidResponse
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil {
				continue
			}
			if strings.HasPrefix(part.InlineData.MIMEType, "image/") && len(part.InlineData.Data) > 0 {
				return &ImageOutput{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックはログにだけ残す
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		slog.Warn("画像生成が異常終了しました", "finish_reason", candidate.FinishReason)
	}

	return nil, domain.ErrNoImage
}
