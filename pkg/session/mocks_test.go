package session

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/shouni/chroma-weaver/pkg/domain"
)

// --- Mocks ---

type mockGenerator struct {
	mu      sync.Mutex
	calls   int
	result  *domain.GenerationResult
	err     error
	release chan struct{}
}

func (m *mockGenerator) Generate(ctx context.Context, mode domain.Mode, image1, image2 *domain.ImageAsset) (*domain.GenerationResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.release != nil {
		<-m.release
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockIngester は読み込んだ内容をそのまま Data に入れる。"bad" なら失敗する。
// gates にキーがあれば、そのチャネルが閉じるまで待つのだ。
type mockIngester struct {
	gates map[string]chan struct{}
}

func (m *mockIngester) FromReader(r io.Reader, declaredType string) (*domain.ImageAsset, error) {
	raw, _ := io.ReadAll(r)
	body := string(raw)
	if gate, ok := m.gates[body]; ok {
		<-gate
	}
	if body == "bad" {
		return nil, errors.New("decode failed")
	}
	return &domain.ImageAsset{Data: domain.BuildDataURL("image/png", body), MediaType: "image/png"}, nil
}

func (m *mockIngester) FromURI(ctx context.Context, uri string) (*domain.ImageAsset, error) {
	if uri == "missing.png" {
		return nil, errors.New("no such file")
	}
	return &domain.ImageAsset{Data: domain.BuildDataURL("image/png", uri), MediaType: "image/png"}, nil
}
