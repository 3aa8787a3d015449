// Package server serves seeded mandalas over HTTP and streams their
// epochs over WebSocket.
package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gogpu/mandala"
	"github.com/gogpu/mandala/internal/config"
	"github.com/gogpu/mandala/internal/raster"
	"github.com/gogpu/mandala/internal/svg"
)

const streamWriteTimeout = 5 * time.Second

var errBadRequest = errors.New("bad request")

// EpochMessage is one WebSocket frame of an epoch stream.
type EpochMessage struct {
	Epoch  int        `json:"epoch"`
	Center [2]float64 `json:"center"`
	Paths  []string   `json:"paths"`
}

// Handler serves mandala endpoints.
type Handler struct {
	cfg *config.Config
	log *slog.Logger
}

// NewHandler creates a handler generating mandalas with cfg. A nil logger
// uses slog.Default.
func NewHandler(cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, log: logger}
}

// Routes returns the router with every endpoint registered.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}).Methods("GET")
	r.HandleFunc("/mandalas/{seed:[0-9]+}.svg", h.SVG).Methods("GET")
	r.HandleFunc("/mandalas/{seed:[0-9]+}.{format:png|bmp|tiff}", h.Image).Methods("GET")
	r.HandleFunc("/ws/mandalas/{seed:[0-9]+}", h.Stream).Methods("GET")
	return r
}

// SVG handles GET /mandalas/{seed}.svg.
func (h *Handler) SVG(w http.ResponseWriter, r *http.Request) {
	seed, epochs, err := h.params(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	tag := h.etag(seed, epochs, "svg")
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	m, err := h.generate(seed, epochs)
	if err != nil {
		h.fail(w, "generate mandala", err)
		return
	}
	style := svg.DefaultStyle()
	style.StrokeWidth = h.cfg.StrokeWidth
	var buf bytes.Buffer
	if err := svg.Encode(&buf, m.Bounds(), m.Render(), style); err != nil {
		h.fail(w, "encode svg", err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// Image handles GET /mandalas/{seed}.{png,bmp,tiff}.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	seed, epochs, err := h.params(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	format := mux.Vars(r)["format"]
	tag := h.etag(seed, epochs, format)
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	m, err := h.generate(seed, epochs)
	if err != nil {
		h.fail(w, "generate mandala", err)
		return
	}
	img, err := raster.Rasterize(m.Render(), m.Bounds(), raster.Options{
		Width:       h.cfg.Width,
		Height:      h.cfg.Height,
		StrokeWidth: h.cfg.StrokeWidth,
		Foreground:  color.Black,
		Background:  color.White,
	})
	if err != nil {
		h.fail(w, "rasterize", err)
		return
	}
	var buf bytes.Buffer
	if err := raster.Encode(&buf, img, format); err != nil {
		h.fail(w, "encode image", err)
		return
	}
	w.Header().Set("Content-Type", raster.ContentType(format))
	w.Write(buf.Bytes())
}

// Stream handles GET /ws/mandalas/{seed}. It sends the first epoch and
// then each generated epoch as an EpochMessage, and closes normally.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	seed, epochs, err := h.params(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	m, err := h.generate(seed, 0)
	if err != nil {
		h.fail(w, "generate mandala", err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.cfg.AllowedOrigins,
	})
	if err != nil {
		h.log.Error("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())
	for i := 0; i <= epochs; i++ {
		if i > 0 {
			if err := m.GenerateEpoch(); err != nil {
				h.log.Error("generate epoch", "error", err, "seed", seed, "epoch", i)
				conn.Close(websocket.StatusInternalError, "generation failed")
				return
			}
		}
		all := m.Epochs()
		if err := h.send(ctx, conn, all[len(all)-1]); err != nil {
			h.log.Debug("stream closed", "error", err, "seed", seed, "epoch", i)
			return
		}
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, e *mandala.Epoch) error {
	paths := e.Render()
	msg := EpochMessage{
		Epoch:  e.ID(),
		Center: [2]float64{e.Center().X, e.Center().Y},
		Paths:  make([]string, 0, len(paths)),
	}
	for _, p := range paths {
		if d := p.SVGPathData(); d != "" {
			msg.Paths = append(msg.Paths, d)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, msg)
}

// params reads the seed path variable and the epochs query parameter.
func (h *Handler) params(r *http.Request) (uint64, int, error) {
	seed, err := strconv.ParseUint(mux.Vars(r)["seed"], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: seed: %v", errBadRequest, err)
	}
	epochs := h.cfg.Epochs
	if v := r.URL.Query().Get("epochs"); v != "" {
		epochs, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: epochs %q", errBadRequest, v)
		}
	}
	if epochs < 0 || epochs > h.cfg.MaxEpochs {
		return 0, 0, fmt.Errorf("%w: epochs %d outside [0, %d]", errBadRequest, epochs, h.cfg.MaxEpochs)
	}
	return seed, epochs, nil
}

func (h *Handler) generate(seed uint64, epochs int) (*mandala.Mandala, error) {
	m, err := mandala.NewSeeded(h.cfg.Size(), seed, h.cfg.Options()...)
	if err != nil {
		return nil, err
	}
	for range epochs {
		if err := m.GenerateEpoch(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// etag names the output by every input that shapes it, so equal requests
// share a tag across restarts.
func (h *Handler) etag(seed uint64, epochs int, format string) string {
	c := h.cfg
	name := fmt.Sprintf("%d/%d/%dx%d/%g/%d/%g/%s",
		seed, epochs, c.Width, c.Height, c.Symmetry, c.Detail, c.StrokeWidth, format)
	return `"` + uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String() + `"`
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	h.log.Error(msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// logRequests logs one line per request with its status and duration.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack lets websocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer %T cannot hijack", r.ResponseWriter)
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}
