package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/utils"
	"github.com/MKhiriev/deep-video-discovery/models"
)

const (
	apiKeyHeader = "X-API-Key"

	// busyRetries is how often a request answered with 503 is repeated.
	// Loads are deduplicated by the server, so repeating a POST is safe.
	busyRetries      = 2
	busyRetryWait    = 500 * time.Millisecond
	busyRetryMaxWait = 3 * time.Second
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates cfg.ServerAddress and configures the underlying
// HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.ServerAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	client.
		SetRetryCount(busyRetries).
		SetRetryWaitTime(busyRetryWait).
		SetRetryMaxWaitTime(busyRetryMaxWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err == nil && resp != nil && resp.StatusCode() == http.StatusServiceUnavailable
		})

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Authenticate implements [ServerAdapter]. It POSTs to /api/auth/token with
// the X-API-Key header and stores the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Authenticate(ctx context.Context, apiKey, clientID string) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(apiKeyHeader, apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(models.TokenRequest{ClientID: clientID}).
		Post("/api/auth/token")
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return "", fmt.Errorf("token parse bearer token: %w", err)
	}

	h.SetToken(token)
	h.logger.Debug().Msg("bearer token received")
	return token, nil
}

func (h *httpServerAdapter) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/healthz")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// Load implements [ServerAdapter]. The server answers 202 for a new video
// and 200 for a source it already has.
func (h *httpServerAdapter) Load(ctx context.Context, req models.LoadRequest) (models.Video, bool, error) {
	var v models.Video

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&v).
		Post("/api/videos")
	if err != nil {
		return models.Video{}, false, fmt.Errorf("load request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Video{}, false, err
	}

	return v, resp.StatusCode() == http.StatusAccepted, nil
}

func (h *httpServerAdapter) List(ctx context.Context, filter models.ListFilter) ([]models.Video, error) {
	query := map[string]string{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Limit > 0 {
		query["limit"] = strconv.FormatUint(filter.Limit, 10)
	}
	if filter.Offset > 0 {
		query["offset"] = strconv.FormatUint(filter.Offset, 10)
	}

	var videos []models.Video
	resp, err := h.authedRequest(ctx).
		SetQueryParams(query).
		SetResult(&videos).
		Get("/api/videos")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return videos, nil
}

func (h *httpServerAdapter) Get(ctx context.Context, id string) (models.Video, error) {
	var v models.Video
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetResult(&v).
		Get("/api/videos/{id}")
	if err != nil {
		return models.Video{}, fmt.Errorf("get request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Video{}, err
	}

	return v, nil
}

func (h *httpServerAdapter) Delete(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Delete("/api/videos/{id}")
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DecodeFrames(ctx context.Context, id string) (models.Video, error) {
	var v models.Video
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetResult(&v).
		Post("/api/videos/{id}/frames")
	if err != nil {
		return models.Video{}, fmt.Errorf("decode request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Video{}, err
	}

	return v, nil
}

func (h *httpServerAdapter) Frames(ctx context.Context, id string) ([]string, error) {
	var frames []string
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetResult(&frames).
		Get("/api/videos/{id}/frames")
	if err != nil {
		return nil, fmt.Errorf("frames request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return frames, nil
}

// DownloadFrame implements [ServerAdapter]. The body is streamed into dst
// without buffering the image.
func (h *httpServerAdapter) DownloadFrame(ctx context.Context, id, name string, dst io.Writer) (int64, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Accept", "image/jpeg").
		SetPathParams(map[string]string{"id": id, "name": name}).
		SetDoNotParseResponse(true).
		Get("/api/videos/{id}/frames/{name}")
	if err != nil {
		return 0, fmt.Errorf("frame request: %w", err)
	}

	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		msg, _ := io.ReadAll(io.LimitReader(body, 4096))
		return 0, mapStatus(resp.StatusCode(), string(msg))
	}

	n, err := io.Copy(dst, body)
	if err != nil {
		return n, fmt.Errorf("frame download: %w", err)
	}
	return n, nil
}

func (h *httpServerAdapter) FetchSubtitle(ctx context.Context, id, language string) (models.Video, error) {
	var v models.Video
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(models.SubtitleRequest{Language: language}).
		SetResult(&v).
		Post("/api/videos/{id}/subtitles")
	if err != nil {
		return models.Video{}, fmt.Errorf("subtitle request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Video{}, err
	}

	return v, nil
}

func (h *httpServerAdapter) Subtitles(ctx context.Context, id string) ([]models.Cue, error) {
	var cues []models.Cue
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetResult(&cues).
		Get("/api/videos/{id}/subtitles")
	if err != nil {
		return nil, fmt.Errorf("subtitles request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return cues, nil
}

func (h *httpServerAdapter) SubtitlesSRT(ctx context.Context, id string) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Accept", "application/x-subrip").
		SetPathParam("id", id).
		SetQueryParam("format", "srt").
		Get("/api/videos/{id}/subtitles")
	if err != nil {
		return "", fmt.Errorf("subtitles request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return resp.String(), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
