package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrGatewayTimeout marks a gateway call that exceeded the deadline. It is
// distinct from a connection error so the shell can show "timed out"
// rather than a generic failure.
var ErrGatewayTimeout = errors.New("model gateway timed out")

// maxTTSBytes caps how much synthesized audio is read back.
const maxTTSBytes = 16 << 20

// GatewayClient calls the local model gateway that hosts the
// summarization, captioning and text-to-speech models. Every call carries
// a hard deadline: a slow model must surface as a timeout error, never as
// a hang.
type GatewayClient struct {
	log     *zap.Logger
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewGatewayClient creates a client for the gateway at baseURL.
func NewGatewayClient(log *zap.Logger, baseURL string, timeout time.Duration) *GatewayClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GatewayClient{
		log:     log,
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Summarize returns a summary of the given text.
func (g *GatewayClient) Summarize(ctx context.Context, text string) (string, error) {
	var out struct {
		Summary string `json:"summary"`
		Error   string `json:"error"`
	}
	if err := g.postJSON(ctx, "/summarize", map[string]string{"text": text}, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("summarization failed: %s", out.Error)
	}
	return out.Summary, nil
}

// Caption returns a caption for the image at the given URL.
func (g *GatewayClient) Caption(ctx context.Context, imageURL string) (string, error) {
	var out struct {
		Caption string `json:"caption"`
		Error   string `json:"error"`
	}
	if err := g.postJSON(ctx, "/caption", map[string]string{"url": imageURL}, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("captioning failed: %s", out.Error)
	}
	return out.Caption, nil
}

// Speak synthesizes the text and returns the audio bytes (mpeg).
func (g *GatewayClient) Speak(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	resp, err := g.post(ctx, "/tts", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("text-to-speech failed: gateway returned %s", resp.Status)
	}
	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxTTSBytes))
	if err != nil {
		return nil, g.classify(err)
	}
	return audio, nil
}

func (g *GatewayClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := g.post(ctx, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The gateway reports model failures as {error} with a non-200 status;
	// decode those too so the caller gets the inline message.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway returned unreadable response (%s): %w", resp.Status, err)
	}
	return nil
}

func (g *GatewayClient) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	resp, err := g.do(ctx, path, body)
	if err != nil {
		cancel()
		return nil, err
	}
	// Tie the body's lifetime to the deadline as well.
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (g *GatewayClient) do(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		err = g.classify(err)
		g.log.Warn("Gateway call failed",
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}
	return resp, nil
}

// classify separates deadline expiry from ordinary transport failures.
func (g *GatewayClient) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrGatewayTimeout
	}
	return err
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	c.cancel()
	return c.ReadCloser.Close()
}
