package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/application/ports"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/pkg/config"
)

// Verificar en tiempo de compilación que StorageClient implementa ObjectStorage.
var _ ports.ObjectStorage = (*StorageClient)(nil)

// StorageClient adaptador que implementa ObjectStorage contra la API REST de
// Supabase Storage. Las operaciones de escritura usan la service key; la URL
// pública de lectura no requiere credenciales (bucket público).
type StorageClient struct {
	baseURL    string
	serviceKey string
	bucket     string
	expSecs    int
	httpClient *http.Client
}

// NewStorageClient construye el adaptador a partir de la configuración de storage.
func NewStorageClient(cfg config.StorageConfig, serviceKey string) *StorageClient {
	return &StorageClient{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		serviceKey: serviceKey,
		bucket:     cfg.Bucket,
		expSecs:    cfg.SignedExpSecs,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

type signedUploadResponse struct {
	URL string `json:"url"`
}

// PresignSubida emite una URL firmada de subida para el path dado.
func (c *StorageClient) PresignSubida(ctx context.Context, path string) (*ports.SubidaFirmada, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/upload/sign/%s/%s", c.baseURL, c.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(
		fmt.Sprintf(`{"expiresIn":%d}`, c.expSecs),
	))
	if err != nil {
		return nil, fmt.Errorf("storage: crear HTTP request: %w", err)
	}
	c.setHeaders(req)

	var resp signedUploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.URL == "" {
		return nil, fmt.Errorf("storage: respuesta sin URL firmada")
	}
	// La API devuelve un path relativo a /storage/v1.
	signed := resp.URL
	if !strings.HasPrefix(signed, "http") {
		signed = c.baseURL + "/storage/v1" + signed
	}
	return &ports.SubidaFirmada{
		SignedURL: signed,
		Path:      path,
		PublicURL: c.PublicURL(path),
	}, nil
}

// Eliminar borra el objeto del bucket.
func (c *StorageClient) Eliminar(ctx context.Context, path string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("storage: crear HTTP request: %w", err)
	}
	c.setHeaders(req)
	return c.do(req, nil)
}

// PublicURL devuelve la URL pública de lectura de un path.
func (c *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}

// PathDesdeURL invierte PublicURL; error si la URL no pertenece al bucket.
func (c *StorageClient) PathDesdeURL(url string) (string, error) {
	prefijo := c.PublicURL("")
	if !strings.HasPrefix(url, prefijo) || len(url) == len(prefijo) {
		return "", domain.ErrEntradaInvalida
	}
	return url[len(prefijo):], nil
}

func (c *StorageClient) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("authorization", "Bearer "+c.serviceKey)
	req.Header.Set("content-type", "application/json")
}

func (c *StorageClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return fmt.Errorf("storage: timeout o cancelación: %w", req.Context().Err())
		}
		return fmt.Errorf("storage: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("storage: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("storage: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("storage: deserializar respuesta: %w", err)
	}
	return nil
}
