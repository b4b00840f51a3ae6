package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shouni/chroma-weaver/pkg/config"
	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/chroma-weaver/pkg/generator"
	"github.com/shouni/chroma-weaver/pkg/ingest"
	"github.com/shouni/chroma-weaver/pkg/session"
	"github.com/shouni/chroma-weaver/pkg/webui"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("起動に失敗しました", "error", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "", "listen address (overrides WEAVER_ADDR)")
	mode := flag.String("mode", string(domain.DefaultMode), "initial mode: FUSE, EXTEND or REMIX")
	image1 := flag.String("image1", "", "image path to preload into the first slot")
	image2 := flag.String("image2", "", "image path to preload into the second slot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	initialMode, err := domain.ParseMode(*mode)
	if err != nil {
		return err
	}

	gen := generator.NewWeaveGenerator(cfg.GeneratorOptions())
	if !gen.Configured() {
		slog.Warn("APIキーが設定されていません。生成時にエラーになります", "env", "GEMINI_API_KEY")
	}
	ing := ingest.New(ingest.NewLocalReader(), cfg.IngestOptions())

	ctrl, err := session.NewController(gen, ing)
	if err != nil {
		return err
	}
	ctrl.SetMode(initialMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	preload := []struct {
		slot domain.Slot
		path string
	}{{domain.Slot1, *image1}, {domain.Slot2, *image2}}
	for _, p := range preload {
		if p.path == "" {
			continue
		}
		if err := ctrl.UploadURI(ctx, p.slot, p.path); err != nil {
			slog.Warn("画像のプリロードに失敗しました", "slot", p.slot, "path", p.path, "error", err)
		}
	}

	srv, err := webui.NewServer(ctrl)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Chroma Weaver を起動しました", "url", "http://"+cfg.Addr, "model", gen.Model(), "ingest_policy", cfg.IngestPolicy)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("シャットダウンに失敗しました: %w", err)
	}
	slog.Info("停止しました")
	return nil
}
