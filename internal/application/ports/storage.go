package ports

import "context"

// SubidaFirmada destino de subida pre-firmado para una foto.
// El cliente sube el binario directamente contra SignedURL; el archivo solo
// aparece en el local tras confirmar con Path.
type SubidaFirmada struct {
	SignedURL string
	Path      string
	PublicURL string
}

// ObjectStorage puerto hacia el almacenamiento de objetos de fotos de locales.
type ObjectStorage interface {
	// PresignSubida emite una URL firmada de subida para el path dado.
	PresignSubida(ctx context.Context, path string) (*SubidaFirmada, error)
	// Eliminar borra el objeto del bucket.
	Eliminar(ctx context.Context, path string) error
	// PublicURL devuelve la URL pública de lectura de un path.
	PublicURL(path string) string
	// PathDesdeURL invierte PublicURL; error si la URL no pertenece al bucket.
	PathDesdeURL(url string) (string, error)
}
