package ingest

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// LocalReader はローカルファイルシステム用の remoteio.InputReader 実装です。
// "file://" プレフィックス付きのパスも受け付けます。
type LocalReader struct{}

var _ remoteio.InputReader = (*LocalReader)(nil)

// NewLocalReader は LocalReader を返します。
func NewLocalReader() *LocalReader {
	return &LocalReader{}
}

func (r *LocalReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(localPath(uri))
}

// List は uri 配下の通常ファイルを順に fn に渡します。
func (r *LocalReader) List(ctx context.Context, uri string, fn func(string) error) error {
	root := localPath(uri)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return fn(path)
	})
}

func localPath(uri string) string {
	return filepath.Clean(strings.TrimPrefix(uri, "file://"))
}
