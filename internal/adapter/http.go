package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/keychain-vault/internal/config"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/utils"
	"github.com/MKhiriev/keychain-vault/models"
	"github.com/go-resty/resty/v2"
)

// Routes served by the storage server.
const (
	FilesRoute = "/files/"
	ListRoute  = "/list/"
)

type httpStorage struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	logger *logger.Logger
}

// NewHTTPStorage constructs a [Storage] backed by a remote storage server.
// It normalises and validates the base URL from cfg.Address. When hashKey is
// non-empty every request and response body carries an HMAC digest that is
// verified on the other side.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid
// URL.
func NewHTTPStorage(cfg config.Storage, hashKey string, log *logger.Logger) (Storage, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid storage http address: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &httpStorage{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		hasher: utils.NewHasher(hashKey),
		logger: log,
	}, nil
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

// Read implements [Storage] with GET /files/{path}.
func (h *httpStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if _, err := CleanPath(path); err != nil {
		return nil, err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		Get(FilesRoute + escapePath(path))
	if err != nil {
		return nil, fmt.Errorf("%w: read request %s: %w", ErrIO, path, err)
	}
	if err = mapHTTPError(resp, path); err != nil {
		return nil, err
	}
	if err = h.verify(resp, path); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// Write implements [Storage] with PUT /files/{path}.
func (h *httpStorage) Write(ctx context.Context, path string, data []byte) error {
	if _, err := CleanPath(path); err != nil {
		return err
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data)
	if h.hasher.Enabled() {
		req.SetHeader(utils.ContentHMACHeader, h.hasher.Sum(data))
	}

	resp, err := req.Put(FilesRoute + escapePath(path))
	if err != nil {
		return fmt.Errorf("%w: write request %s: %w", ErrIO, path, err)
	}
	return mapHTTPError(resp, path)
}

// List implements [Storage] with GET /list/{dir}.
func (h *httpStorage) List(ctx context.Context, dir string) ([]models.FileInfo, error) {
	dir, err := CleanDir(dir)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		Get(ListRoute + escapePath(dir))
	if err != nil {
		return nil, fmt.Errorf("%w: list request %s: %w", ErrIO, dir, err)
	}
	if err = mapHTTPError(resp, dir); err != nil {
		return nil, err
	}
	if err = h.verify(resp, dir); err != nil {
		return nil, err
	}

	var entries []models.FileInfo
	if err = json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("%w: decode list response: %w", ErrIO, err)
	}
	return entries, nil
}

// Remove implements [Storage] with DELETE /files/{path}.
func (h *httpStorage) Remove(ctx context.Context, path string) error {
	if _, err := CleanPath(path); err != nil {
		return err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		Delete(FilesRoute + escapePath(path))
	if err != nil {
		return fmt.Errorf("%w: remove request %s: %w", ErrIO, path, err)
	}
	return mapHTTPError(resp, path)
}

func (h *httpStorage) verify(resp *resty.Response, path string) error {
	if h.hasher.Verify(resp.Body(), resp.Header().Get(utils.ContentHMACHeader)) {
		return nil
	}
	h.logger.Error().Str("path", path).Msg("response digest mismatch")
	return fmt.Errorf("%w: %s", ErrIntegrity, path)
}

func escapePath(p string) string {
	if p == "" {
		return ""
	}
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
