package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kiwitts/kiwi-go/internal/audio"
	"github.com/kiwitts/kiwi-go/internal/document"
	"github.com/kiwitts/kiwi-go/internal/tts"
)

// HealthResponse represents the response body for /v1/healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VoiceInfo describes one catalog voice.
type VoiceInfo struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Gender    string `json:"gender"`
}

// VoicesResponse represents the response body for /v1/voices.
type VoicesResponse struct {
	Language string      `json:"language"`
	Voices   []VoiceInfo `json:"voices"`
}

// SynthesizeRequest represents the request body for /v1/synthesize.
type SynthesizeRequest struct {
	Text     string `json:"text"`
	Voice    string `json:"voice,omitempty"`
	Format   string `json:"format,omitempty"`
	Language string `json:"language,omitempty"`
}

// SynthesizeResponse represents the outcome of a synthesis request. A failed
// synthesis is reported in-band with Success false rather than as an HTTP
// error.
type SynthesizeResponse struct {
	Success        bool    `json:"success"`
	OutputPath     string  `json:"output_path,omitempty"`
	FileSize       int64   `json:"file_size,omitempty"`
	ProcessingTime float64 `json:"processing_time"`
	Error          string  `json:"error,omitempty"`
	DownloadURL    string  `json:"download_url,omitempty"`
}

// CleanupResponse represents the response body for /v1/cleanup.
type CleanupResponse struct {
	CleanedFiles int `json:"cleaned_files"`
}

// femaleVoices lists the catalog voices presented as female. The provider
// does not expose gender for this tier, so the set is maintained by hand.
var femaleVoices = map[string]bool{
	"Kore":        true,
	"Leda":        true,
	"Aoede":       true,
	"Callirrhoe":  true,
	"Pulcherrima": true,
	"Despina":     true,
	"Charon":      true,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// handleHealthz handles GET /v1/healthz requests.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleVoices handles GET /v1/voices requests. An optional language query
// parameter overrides the configured default.
func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language == "" {
		language = s.cfg.Language
	}

	names := tts.ListVoices(language)
	voices := make([]VoiceInfo, 0, len(names))
	for _, name := range names {
		short := tts.VoiceShortName(name)
		gender := "male"
		if femaleVoices[short] {
			gender = "female"
		}
		voices = append(voices, VoiceInfo{Name: name, ShortName: short, Gender: gender})
	}

	writeJSON(w, http.StatusOK, VoicesResponse{Language: language, Voices: voices})
}

// handleSynthesize handles POST /v1/synthesize requests.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("failed to decode synthesize request", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "text is required"})
		return
	}

	s.synthesize(w, r, req.Text, req.Voice, req.Format, req.Language)
}

// handleSynthesizeFile handles POST /v1/synthesize-file requests. The
// uploaded document is extracted and synthesized in one round trip.
func (s *Server) handleSynthesizeFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}
	defer file.Close()

	// Keep the original extension so extractor dispatch works on the copy.
	tmp, err := os.CreateTemp(s.cfg.TempDir, "upload_*"+filepath.Ext(header.Filename))
	if err != nil {
		s.logger.Error("failed to create upload file", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to store upload"})
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		s.logger.Error("failed to write upload file", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to store upload"})
		return
	}
	tmp.Close()

	if err := document.ValidateInput(tmp.Name()); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: uploadError(header.Filename, err)})
		return
	}

	extractor, err := s.extractors.ForPath(tmp.Name())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: uploadError(header.Filename, err)})
		return
	}

	text, err := extractor.Parse(tmp.Name())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: uploadError(header.Filename, err)})
		return
	}
	if text == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "document contains no text"})
		return
	}

	s.synthesize(w, r, text,
		r.FormValue("voice"), r.FormValue("format"), r.FormValue("language"))
}

// synthesize runs the shared synthesis path for both JSON and upload
// requests. Empty overrides fall back to the configured defaults.
func (s *Server) synthesize(w http.ResponseWriter, r *http.Request, text, voice, format, language string) {
	if format == "" {
		format = s.cfg.Format
	}
	encoding, err := audio.ParseFormat(format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown format %q", format)})
		return
	}

	if voice == "" {
		voice = s.cfg.Voice
	}
	if language == "" {
		language = s.cfg.Language
	}

	cfg := tts.Config{
		VoiceName:    voice,
		LanguageCode: language,
		Encoding:     encoding,
		SampleRate:   s.cfg.SampleRate,
	}
	if err := cfg.ValidateVoice(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	client, err := s.getClient(r.Context(), cfg)
	if err != nil {
		if errors.Is(err, tts.ErrAuthentication) {
			s.logger.Error("provider credentials unavailable", "error", err)
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("failed to create synthesis client", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create synthesis client"})
		return
	}

	outputPath := filepath.Join(s.cfg.TempDir,
		fmt.Sprintf("tts_%d.%s", time.Now().UnixMilli(), encoding.Extension()))

	result := client.Synthesize(r.Context(), text, outputPath)
	if !result.Success {
		s.logger.Warn("synthesis failed", "error", result.ErrorMessage)
		writeJSON(w, http.StatusOK, SynthesizeResponse{
			Success:        false,
			ProcessingTime: result.Duration.Seconds(),
			Error:          result.ErrorMessage,
		})
		return
	}

	var size int64
	if info, err := os.Stat(result.OutputFile); err == nil {
		size = info.Size()
	}

	entry := s.files.Add(result.OutputFile)

	s.logger.Info("synthesis complete",
		"id", entry.ID,
		"output", result.OutputFile,
		"bytes", size,
		"duration", result.Duration,
	)

	writeJSON(w, http.StatusOK, SynthesizeResponse{
		Success:        true,
		OutputPath:     result.OutputFile,
		FileSize:       size,
		ProcessingTime: result.Duration.Seconds(),
		DownloadURL:    "/v1/download/" + entry.ID,
	})
}

// handleDownload handles GET /v1/download/{id} requests.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	entry, ok := s.files.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "file not found or expired"})
		return
	}

	if _, err := os.Stat(entry.Path); err != nil {
		s.files.Remove(id)
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "file not found or expired"})
		return
	}

	mediaType := audio.MP3.MediaType()
	if strings.EqualFold(filepath.Ext(entry.Path), ".wav") {
		mediaType = audio.Linear16.MediaType()
	}

	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(entry.Path)))
	http.ServeFile(w, r, entry.Path)
}

// handleCleanup handles DELETE /v1/cleanup requests.
func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	cleaned := s.files.Cleanup()
	writeJSON(w, http.StatusOK, CleanupResponse{CleanedFiles: cleaned})
}

// uploadError maps an extraction failure to a client-facing message that
// names the uploaded file rather than the temp copy on disk.
func uploadError(filename string, err error) string {
	switch {
	case errors.Is(err, document.ErrUnsupportedType):
		return fmt.Sprintf("unsupported file type: %s", filename)
	case errors.Is(err, document.ErrNotUTF8):
		return fmt.Sprintf("file is not valid UTF-8: %s", filename)
	default:
		return fmt.Sprintf("failed to read document: %s", filename)
	}
}
