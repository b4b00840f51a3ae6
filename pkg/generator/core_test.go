package generator

import (
	"testing"

	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiImageCore_ToPart(t *testing.T) {
	core := NewGeminiImageCore()

	t.Run("Data URLのプレフィックスを外してデコードする", func(t *testing.T) {
		part, err := core.ToPart(assetOf("image/png", []byte("png-bytes")))
		require.NoError(t, err)
		require.NotNil(t, part.InlineData)
		assert.Equal(t, "image/png", part.InlineData.MIMEType)
		assert.Equal(t, []byte("png-bytes"), part.InlineData.Data)
	})

	t.Run("MediaTypeが空ならData URLから補う", func(t *testing.T) {
		a := assetOf("image/webp", []byte("w"))
		a.MediaType = ""
		part, err := core.ToPart(a)
		require.NoError(t, err)
		assert.Equal(t, "image/webp", part.InlineData.MIMEType)
	})

	t.Run("画像以外のMIMEタイプはエラー", func(t *testing.T) {
		_, err := core.ToPart(&domain.ImageAsset{Data: "data:text/plain;base64,QQ==", MediaType: "text/plain"})
		assert.Error(t, err)
	})

	t.Run("壊れたbase64はエラー", func(t *testing.T) {
		_, err := core.ToPart(&domain.ImageAsset{Data: "data:image/png;base64,@@@", MediaType: "image/png"})
		assert.Error(t, err)
	})
}

func TestGeminiImageCore_BuildParts(t *testing.T) {
	core := NewGeminiImageCore()

	parts, err := core.BuildParts("instruction", assetOf("image/png", []byte("a")), assetOf("image/jpeg", []byte("b")))
	require.NoError(t, err)
	require.Len(t, parts, 3, "テキスト(1) + 画像(2) = 3パーツあるはずなのだ")
	assert.Equal(t, "instruction", parts[0].Text)
	assert.Equal(t, []byte("a"), parts[1].InlineData.Data)
	assert.Equal(t, []byte("b"), parts[2].InlineData.Data)

	parts, err = core.BuildParts("instruction", assetOf("image/png", []byte("a")), nil)
	require.NoError(t, err)
	assert.Len(t, parts, 2)
}

func TestGeminiImageCore_ParseToResponse(t *testing.T) {
	core := NewGeminiImageCore()

	t.Run("正常系: 最初の画像パーツを返す", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{
						{Text: "here you go"},
						{InlineData: &genai.Blob{MIMEType: "application/json", Data: []byte("{}")}},
						{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
						{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("second")}},
					}},
				}},
			},
		}

		out, err := core.ParseToResponse(resp)
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), out.Data)
		assert.Equal(t, "image/png", out.MimeType)
	})

	t.Run("異常系: 画像データなしは ErrNoImage", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "just text"}}}},
				},
			},
		}
		_, err := core.ParseToResponse(resp)
		assert.ErrorIs(t, err, domain.ErrNoImage)
	})

	t.Run("異常系: ブロックされた候補も ErrNoImage", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			},
		}
		_, err := core.ParseToResponse(resp)
		assert.ErrorIs(t, err, domain.ErrNoImage)
	})

	t.Run("異常系: 候補なしは不正な応答", func(t *testing.T) {
		_, err := core.ParseToResponse(&gemini.Response{RawResponse: &genai.GenerateContentResponse{}})
		assert.ErrorIs(t, err, errInvalidResponse)

		_, err = core.ParseToResponse(nil)
		assert.ErrorIs(t, err, errInvalidResponse)
	})
}
