package webui

import (
	"context"
	"embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/chroma-weaver/pkg/imgutil"
	"github.com/shouni/chroma-weaver/pkg/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// DefaultMaxUploadBytes は multipart フォーム全体の上限です。
	DefaultMaxUploadBytes = 32 << 20

	downloadQuality = 95
)

// Server は1セッション分の UI を提供します。
type Server struct {
	ctrl           *session.Controller
	tmpl           *template.Template
	maxUploadBytes int64
}

// NewServer はテンプレートを読み込んで Server を初期化します。
func NewServer(ctrl *session.Controller) (*Server, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("ctrl (session.Controller) is required")
	}
	tmpl, err := template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗しました: %w", err)
	}
	return &Server{
		ctrl:           ctrl,
		tmpl:           tmpl,
		maxUploadBytes: DefaultMaxUploadBytes,
	}, nil
}

// Routes はルーティング済みのハンドラを返します。
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Get("/result", s.handleResult)

	r.Post("/mode", s.handleMode)
	r.Post("/upload/{slot}", s.handleUpload)
	r.Post("/generate", s.handleGenerate)
	r.Post("/undo", s.handleUndo)
	r.Post("/redo", s.handleRedo)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", newPageView(s.ctrl.Snapshot())); err != nil {
		slog.ErrorContext(r.Context(), "テンプレートの描画に失敗しました", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type statusResponse struct {
	Loading bool   `json:"loading"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	loading, msg := s.ctrl.Status()
	writeJSON(w, http.StatusOK, statusResponse{
		Loading: loading,
		Message: msg,
		Error:   s.ctrl.Snapshot().Err,
	})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	present := s.ctrl.Snapshot().History.Present
	if present == "" {
		http.Error(w, "no result yet", http.StatusNotFound)
		return
	}
	mediaType, payload, err := domain.ParseDataURL(present)
	if err != nil {
		http.Error(w, "result is not downloadable", http.StatusInternalServerError)
		return
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		http.Error(w, "result is not downloadable", http.StatusInternalServerError)
		return
	}

	// ファイル名は .jpeg 固定なので、中身も JPEG にそろえる
	if mediaType != imgutil.MediaTypeJPEG {
		if converted, err := imgutil.CompressToJPEG(data, downloadQuality); err == nil {
			data, mediaType = converted, imgutil.MediaTypeJPEG
		} else {
			slog.WarnContext(r.Context(), "JPEGへの変換に失敗したので元の形式で返します", "media_type", mediaType, "error", err)
		}
	}

	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", domain.ResultFileName))
	_, _ = w.Write(data)
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	mode, err := domain.ParseMode(r.FormValue("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.ctrl.SetMode(mode)
	redirectHome(w, r)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	slot, err := domain.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		slog.WarnContext(r.Context(), "アップロードを受け取れませんでした", "slot", slot, "error", err)
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// 読み込み失敗は State 側にメッセージが残るので、画面に戻すだけでよい
	if err := s.ctrl.Upload(slot, file, header.Header.Get("Content-Type")); err != nil {
		var slotErr *domain.SlotReadError
		if !errors.As(err, &slotErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	redirectHome(w, r)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// リロードやタブを閉じても生成は最後まで行い、結果はサーバー側の履歴に残す
	ctx := context.WithoutCancel(r.Context())
	if _, err := s.ctrl.Generate(ctx); err != nil {
		if errors.Is(err, domain.ErrBusy) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		slog.InfoContext(r.Context(), "生成に失敗しました", "error", err)
	}
	redirectHome(w, r)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Undo()
	redirectHome(w, r)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Redo()
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("JSONの書き込みに失敗しました", "error", err)
	}
}

// requestLogger は chi のレスポンスラッパーでステータスを拾って slog に出します。
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		if r.URL.Path == "/status" {
			return
		}
		slog.InfoContext(r.Context(), "request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(started),
		)
	})
}
