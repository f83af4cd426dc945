package dto

// PresignFotoRequest pide un destino firmado de subida para una foto nueva.
type PresignFotoRequest struct {
	Extension string `json:"extension"` // jpg, png, webp
}

// PresignFotoResponse destino firmado más el estado de la cuota del plan.
type PresignFotoResponse struct {
	Success       bool   `json:"success"`
	SignedURL     string `json:"signedUrl"`
	Path          string `json:"path"`
	PublicURL     string `json:"publicUrl"`
	FotosActuales int    `json:"fotosActuales"`
	Limite        int    `json:"limite"`
}

// ConfirmFotoRequest confirma una subida completada contra la URL firmada.
type ConfirmFotoRequest struct {
	Path string `json:"path"`
}

// ConfirmFotoResponse foto incorporada a la lista persistida del local.
type ConfirmFotoResponse struct {
	Success bool     `json:"success"`
	URL     string   `json:"url"`
	Fotos   []string `json:"fotos"`
	Mensaje string   `json:"mensaje"`
}

// EliminarFotoRequest borra una foto por su URL pública.
type EliminarFotoRequest struct {
	URL string `json:"url"`
}

// EliminarFotoResponse lista de fotos resultante.
type EliminarFotoResponse struct {
	Success bool     `json:"success"`
	Fotos   []string `json:"fotos"`
}

// BoostRequest activación de "llenar rápido" (solo plan premium).
type BoostRequest struct {
	Promocion     string  `json:"promocion"`
	DuracionHoras int     `json:"duracion_horas"`
	RadioKm       float64 `json:"radio_km"`
}

// BoostResponse resultado del boost con la cuota mensual restante.
type BoostResponse struct {
	Success         bool   `json:"success"`
	Mensaje         string `json:"mensaje"`
	BoostsRestantes int    `json:"boosts_restantes"`
}
