package usecase_test

import (
	"context"
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/application/ports"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

type memLocales struct {
	locales map[string]*entity.Local
}

func nuevosLocales(locales ...*entity.Local) *memLocales {
	m := &memLocales{locales: map[string]*entity.Local{}}
	for _, l := range locales {
		copia := *l
		m.locales[l.ID] = &copia
	}
	return m
}

func (m *memLocales) Create(_ context.Context, l *entity.Local) error {
	m.locales[l.ID] = l
	return nil
}

func (m *memLocales) GetByID(_ context.Context, id string) (*entity.Local, error) {
	l, ok := m.locales[id]
	if !ok {
		return nil, nil
	}
	copia := *l
	return &copia, nil
}

func (m *memLocales) GetByPropietario(_ context.Context, propietarioID string) (*entity.Local, error) {
	for _, l := range m.locales {
		if l.PropietarioID != nil && *l.PropietarioID == propietarioID {
			copia := *l
			return &copia, nil
		}
	}
	return nil, nil
}

func (m *memLocales) List(_ context.Context) ([]*entity.Local, error) {
	out := make([]*entity.Local, 0, len(m.locales))
	for _, l := range m.locales {
		copia := *l
		out = append(out, &copia)
	}
	return out, nil
}

func (m *memLocales) Update(_ context.Context, l *entity.Local) error {
	if _, ok := m.locales[l.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *l
	m.locales[l.ID] = &copia
	return nil
}

func (m *memLocales) Delete(_ context.Context, id string) error {
	delete(m.locales, id)
	return nil
}

func (m *memLocales) AsignarPropietario(_ context.Context, localID, propietarioID string) error {
	l, ok := m.locales[localID]
	if !ok {
		return domain.ErrNotFound
	}
	l.PropietarioID = &propietarioID
	return nil
}

type memCodigos struct {
	codigos map[string]*entity.CodigoInvitacion
	// colisiones fuerza N inserts fallidos con ErrConflicto antes de aceptar.
	colisiones int
}

func (m *memCodigos) Create(_ context.Context, c *entity.CodigoInvitacion) error {
	if m.colisiones > 0 {
		m.colisiones--
		return domain.ErrConflicto
	}
	if _, ok := m.codigos[c.Codigo]; ok {
		return domain.ErrConflicto
	}
	if m.codigos == nil {
		m.codigos = map[string]*entity.CodigoInvitacion{}
	}
	m.codigos[c.Codigo] = c
	return nil
}

func (m *memCodigos) GetVigente(_ context.Context, codigo string) (*entity.CodigoInvitacion, error) {
	c, ok := m.codigos[codigo]
	if !ok || c.Usado {
		return nil, nil
	}
	return c, nil
}

func (m *memCodigos) MarcarUsado(_ context.Context, codigo, usadoPor string, fechaUso time.Time) error {
	c, ok := m.codigos[codigo]
	if !ok {
		return domain.ErrNotFound
	}
	c.Usado = true
	c.UsadoPor = &usadoPor
	c.FechaUso = &fechaUso
	return nil
}

type memPerfiles struct {
	perfiles map[string]*entity.Propietario
}

func (m *memPerfiles) GetByID(_ context.Context, id string) (*entity.Propietario, error) {
	p, ok := m.perfiles[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (m *memPerfiles) Existe(_ context.Context, id string) (bool, error) {
	_, ok := m.perfiles[id]
	return ok, nil
}

func (m *memPerfiles) AsignarLocal(_ context.Context, id, localID, nombre string) error {
	p, ok := m.perfiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.LocalAsignadoID = &localID
	p.NombreCompleto = nombre
	return nil
}

func (m *memPerfiles) ActualizarPlan(_ context.Context, id string, plan entity.TipoPlan, venceEn time.Time) error {
	p, ok := m.perfiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Plan = plan
	p.PlanVenceEn = &venceEn
	return nil
}

// txDirecto ejecuta el callback sin transacción real (los fakes son atómicos).
type txDirecto struct {
	locales repository.LocalRepository
	codigos repository.CodigoRepository
}

func (t *txDirecto) Run(_ context.Context, fn func(repository.LocalRepository, repository.CodigoRepository) error) error {
	return fn(t.locales, t.codigos)
}

type memStorage struct {
	base       string
	eliminados []string
}

func (m *memStorage) PresignSubida(_ context.Context, path string) (*ports.SubidaFirmada, error) {
	return &ports.SubidaFirmada{
		SignedURL: m.base + "/upload/" + path + "?firma=xyz",
		Path:      path,
		PublicURL: m.PublicURL(path),
	}, nil
}

func (m *memStorage) Eliminar(_ context.Context, path string) error {
	m.eliminados = append(m.eliminados, path)
	return nil
}

func (m *memStorage) PublicURL(path string) string {
	return m.base + "/public/" + path
}

func (m *memStorage) PathDesdeURL(url string) (string, error) {
	prefijo := m.base + "/public/"
	if len(url) <= len(prefijo) || url[:len(prefijo)] != prefijo {
		return "", domain.ErrEntradaInvalida
	}
	return url[len(prefijo):], nil
}

type memNotificador struct {
	boosts []ports.Boost
	err    error
}

func (m *memNotificador) EnviarBoost(_ context.Context, b ports.Boost) error {
	if m.err != nil {
		return m.err
	}
	m.boosts = append(m.boosts, b)
	return nil
}
