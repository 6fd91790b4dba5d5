package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"regexp"
	"strconv"

	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/export"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/render"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/shell"
	"github.com/lightswitch/lightswitch/version"
)

const maxFrameSize = 2048

type ApiServer struct {
	shellCtx *shell.ShellCtxt
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewApiServer(ctx *shell.ShellCtxt) *ApiServer {
	return &ApiServer{shellCtx: ctx}
}

func (s *ApiServer) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func (s *ApiServer) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Data: data})
}

// loadError maps archive errors to a status code.
func loadError(err error) int {
	var notFound *archive.WordNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// GET /api/words?filter=<regexp>
func (s *ApiServer) handleWords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	words := s.shellCtx.Archive.Words()
	if filter := r.URL.Query().Get("filter"); filter != "" {
		re, err := regexp.Compile(filter)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid filter: %v", err))
			return
		}
		matched := words[:0]
		for _, word := range words {
			if re.MatchString(word) {
				matched = append(matched, word)
			}
		}
		words = matched
	}

	s.writeSuccess(w, words)
}

// GET /api/info?word=<word>
func (s *ApiServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	word := r.URL.Query().Get("word")
	if word == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("word parameter required"))
		return
	}
	shown, stream, err := s.shellCtx.Archive.LoadOrFallback(word, s.shellCtx.Picker)
	if err != nil {
		s.writeError(w, loadError(err), err)
		return
	}

	s.writeSuccess(w, shell.WordToJSON(archive.Key(word), shown, stream))
}

// GET /api/vbuf?word=<word>
func (s *ApiServer) handleVbuf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	word := r.URL.Query().Get("word")
	if word == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("word parameter required"))
		return
	}
	// Load tells a missing word from a damaged entry
	if _, err := s.shellCtx.Archive.Load(word); err != nil {
		s.writeError(w, loadError(err), err)
		return
	}
	blob, _ := s.shellCtx.Archive.Raw(word)

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.vbuf\"", archive.Key(word)))
	w.Write(blob)
}

func floatParam(r *http.Request, name string, def float32) (float32, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return float32(f), nil
}

// GET /api/frame?word=<word>&t=<reveal>&erase=<erase>&size=<px>&thick=<bool>
func (s *ApiServer) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	word := query.Get("word")
	if word == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("word parameter required"))
		return
	}

	o := render.DefaultFrameOptions(512)
	o.Player = s.shellCtx.PlayerOptions()
	var err error
	if o.Reveal, err = floatParam(r, "t", o.Reveal); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if o.Erase, err = floatParam(r, "erase", shader.EraseDisabled); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if v := query.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 || size > maxFrameSize {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("size must be between 1 and %d", maxFrameSize))
			return
		}
		o.Size = size
	}
	if v := query.Get("thick"); v != "" {
		if o.Player.ThickLines, err = strconv.ParseBool(v); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid thick: %v", err))
			return
		}
	}

	shown, stream, err := s.shellCtx.Archive.LoadOrFallback(word, s.shellCtx.Picker)
	if err != nil {
		s.writeError(w, loadError(err), err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, render.Frame(s.shellCtx.Program, shown, stream, o)); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to encode PNG: %v", err))
		return
	}
	log.Trace.Printf("frame %s t=%g erase=%g", shown, o.Reveal, o.Erase)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Word-Shown", shown)
	w.Write(buf.Bytes())
}

// GET /api/pdf?word=<word>&word=<word>...
func (s *ApiServer) handlePdf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	words := r.URL.Query()["word"]
	if len(words) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("word parameter required"))
		return
	}

	gen := export.CreatePdfGenerator(export.DefaultOptions())
	for _, word := range words {
		shown, stream, err := s.shellCtx.Archive.LoadOrFallback(word, s.shellCtx.Picker)
		if err != nil {
			s.writeError(w, loadError(err), err)
			return
		}
		gen.AddPicture(shown, stream)
	}

	var buf bytes.Buffer
	if err := gen.Write(&buf); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to export: %v", err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(buf.Bytes())
}

// GET /api/version
func (s *ApiServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeSuccess(w, map[string]interface{}{
		"version": version.Version,
		"words":   s.shellCtx.Archive.Len(),
	})
}

func (s *ApiServer) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/words", s.handleWords)
	mux.HandleFunc("/api/info", s.handleInfo)
	mux.HandleFunc("/api/vbuf", s.handleVbuf)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/pdf", s.handlePdf)
	mux.HandleFunc("/api/version", s.handleVersion)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
	<title>lightswitch</title>
</head>
<body>
	<h1>lightswitch picture archive</h1>
	<h2>Endpoints:</h2>
	<ul>
		<li>GET /api/words - List archive words</li>
		<li>GET /api/info - Describe a word picture</li>
		<li>GET /api/vbuf - Download the encoded vertex buffer</li>
		<li>GET /api/frame - Render a frame to PNG</li>
		<li>GET /api/pdf - Export pictures as PDF</li>
		<li>GET /api/version - Get version</li>
	</ul>
</body>
</html>
		`)
	})
	return mux
}

func runServerMode(ctx *shell.ShellCtxt, addr string) {
	server := NewApiServer(ctx)

	log.Info.Printf("Starting HTTP server on %s", addr)
	if err := http.ListenAndServe(addr, server.routes()); err != nil {
		log.Error.Fatalf("Server failed: %v", err)
	}
}
