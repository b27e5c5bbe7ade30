package tts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"

	"github.com/kiwitts/kiwi-go/internal/audio"
)

// Retry parameters for transient provider failures.
const (
	maxRetries     = 2
	baseRetryDelay = 500 * time.Millisecond
	maxRetryDelay  = 2 * time.Second
)

// synthesizeFunc performs one provider call. Swapped out in tests.
type synthesizeFunc func(ctx context.Context, req *texttospeech.SynthesizeSpeechRequest) (*texttospeech.SynthesizeSpeechResponse, error)

// Client synthesizes speech through the cloud provider. One Client serves a
// single Config; independent Clients may synthesize concurrently as long as
// each call targets a distinct output path.
type Client struct {
	cfg    Config
	logger *slog.Logger
	call   synthesizeFunc
}

// New creates a Client. The voice name is validated against the configured
// language and the known-voice catalog, and provider credentials are acquired
// once here. A credential failure is fatal to construction and never retried.
func New(ctx context.Context, cfg Config, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	cfg = cfg.withDefaults()

	if err := cfg.ValidateVoice(); err != nil {
		return nil, err
	}

	svc, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v. Run 'gcloud auth application-default login' or set GOOGLE_APPLICATION_CREDENTIALS",
			ErrAuthentication, err)
	}

	return &Client{
		cfg:    cfg,
		logger: logger,
		call: func(ctx context.Context, req *texttospeech.SynthesizeSpeechRequest) (*texttospeech.SynthesizeSpeechResponse, error) {
			return svc.Text.Synthesize(req).Context(ctx).Do()
		},
	}, nil
}

// Config returns the synthesis configuration the Client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

// Synthesize converts text to speech and writes the audio to outputPath.
// Expected failures are captured in the result, never returned as errors.
// The output file is written only after a successful provider response; no
// partial file is ever left behind.
func (c *Client) Synthesize(ctx context.Context, text, outputPath string) *ProcessingResult {
	start := time.Now()

	if err := ValidateTextLength(text); err != nil {
		return failureResult(time.Since(start), err)
	}

	if err := audio.EnsureParentDir(outputPath); err != nil {
		return failureResult(time.Since(start),
			fmt.Errorf("%w: creating output directory: %v", ErrSynthesisFailed, err))
	}

	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{
			// Chirp 3 HD accepts plain text only, no SSML.
			Text: text,
		},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: c.cfg.LanguageCode,
			Name:         c.cfg.VoiceName,
		},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding:   c.cfg.Encoding.String(),
			SampleRateHertz: int64(c.cfg.SampleRate),
		},
	}

	resp, err := c.synthesizeWithRetry(ctx, req)
	if err != nil {
		return failureResult(time.Since(start), err)
	}

	data, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return failureResult(time.Since(start),
			fmt.Errorf("%w: invalid audio payload: %v", ErrSynthesisFailed, err))
	}

	if c.cfg.Encoding == audio.Linear16 {
		data = audio.EnsureWAV(data, c.cfg.SampleRate)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return failureResult(time.Since(start),
			fmt.Errorf("%w: writing %s: %v", ErrSynthesisFailed, outputPath, err))
	}

	duration := time.Since(start)
	c.logger.Debug("synthesis complete",
		"output", outputPath,
		"bytes", len(data),
		"duration", duration,
	)

	return &ProcessingResult{
		OutputFile: outputPath,
		Success:    true,
		Duration:   duration,
	}
}

// synthesizeWithRetry invokes the provider with exponential backoff. A
// provider failure is treated as transient until attempts are exhausted,
// except for request errors that cannot succeed on retry.
func (c *Client) synthesizeWithRetry(ctx context.Context, req *texttospeech.SynthesizeSpeechRequest) (*texttospeech.SynthesizeSpeechResponse, error) {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= maxRetries; attempt++ {
		attempts++

		resp, err := c.call(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == maxRetries || !retryable(err) {
			break
		}

		delay := time.Duration(float64(baseRetryDelay) * math.Pow(1.5, float64(attempt)))
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}

		c.logger.Warn("synthesis attempt failed, retrying",
			"attempt", attempt+1,
			"error", err,
			"delay", delay,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w after %d attempts: %v", ErrSynthesisFailed, attempt+1, ctx.Err())
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("%w after %d attempts, last error: %v", ErrSynthesisFailed, attempts, lastErr)
}

// retryable reports whether a provider error is worth another attempt.
// Client-side request errors will fail identically every time; 429 is the
// one 4xx that clears up on its own.
func retryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != http.StatusTooManyRequests {
			return false
		}
	}
	return true
}
