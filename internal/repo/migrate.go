package repo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/esturismo/motoristas/internal/domain"
)

// driverRecord is the on-disk shape of a driver. Keys and stored values are
// the ones written by earlier versions of the system, so existing data files
// load unchanged.
type driverRecord struct {
	ID             string            `json:"id"`
	Nome           string            `json:"nome"`
	DataNascimento *string           `json:"data_nascimento"`
	CPF            string            `json:"cpf"`
	Celular        *string           `json:"celular"`
	TipoVinculo    *string           `json:"tipo_vinculo,omitempty"`
	ValidadeCNH    *string           `json:"validade_cnh"`
	ValidadeCurso  *string           `json:"validade_curso"`
	DataCadastro   string            `json:"data_cadastro"`
	Status         *string           `json:"status,omitempty"`
	Arquivos       map[string]string `json:"arquivos"`
}

const (
	storedActive   = "ativo"
	storedInactive = "inativo"
)

// storedRoles maps domain file roles to their persisted keys. The same keys
// prefix the stored file names.
var storedRoles = map[domain.FileRole]string{
	domain.RolePhoto:           "foto",
	domain.RoleLicense:         "cnh",
	domain.RolePassengerCourse: "curso_passageiro",
	domain.RoleResidenceProof:  "comprovante_residencia",
}

// registeredAtLayouts are tried in order when reading data_cadastro.
// Older files carry a zone-less timestamp with microseconds.
var registeredAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// toDomain validates the record and applies the back-compatibility defaults:
// a missing status means active, a missing bond type means "registrado" and
// a missing file map means no files.
func (rec driverRecord) toDomain() (domain.Driver, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("invalid id: %w", err)
	}

	d := domain.Driver{
		ID:            id,
		Name:          rec.Nome,
		BirthDate:     deref(rec.DataNascimento),
		TaxID:         rec.CPF,
		Phone:         deref(rec.Celular),
		BondType:      domain.DefaultBondType,
		LicenseExpiry: deref(rec.ValidadeCNH),
		CourseExpiry:  deref(rec.ValidadeCurso),
		RegisteredAt:  parseRegisteredAt(rec.DataCadastro),
		Status:        domain.StatusActive,
		Files:         make(map[domain.FileRole]string, len(rec.Arquivos)),
	}
	if rec.TipoVinculo != nil {
		d.BondType = *rec.TipoVinculo
	}
	if rec.Status != nil && (*rec.Status == storedInactive || *rec.Status == string(domain.StatusInactive)) {
		d.Status = domain.StatusInactive
	}
	for key, name := range rec.Arquivos {
		d.Files[roleFromStored(key)] = name
	}
	return d, nil
}

func fromDomain(d domain.Driver) driverRecord {
	status := storedActive
	if d.Status == domain.StatusInactive {
		status = storedInactive
	}
	rec := driverRecord{
		ID:             d.ID.String(),
		Nome:           d.Name,
		DataNascimento: &d.BirthDate,
		CPF:            d.TaxID,
		Celular:        &d.Phone,
		TipoVinculo:    &d.BondType,
		ValidadeCNH:    &d.LicenseExpiry,
		ValidadeCurso:  &d.CourseExpiry,
		DataCadastro:   d.RegisteredAt.Format(time.RFC3339Nano),
		Status:         &status,
		Arquivos:       make(map[string]string, len(d.Files)),
	}
	for role, name := range d.Files {
		rec.Arquivos[StoredRole(role)] = name
	}
	return rec
}

// StoredRole returns the persisted key of a role. Unknown roles pass through.
func StoredRole(role domain.FileRole) string {
	if key, ok := storedRoles[role]; ok {
		return key
	}
	return string(role)
}

func roleFromStored(key string) domain.FileRole {
	for role, k := range storedRoles {
		if k == key {
			return role
		}
	}
	return domain.FileRole(key)
}

func parseRegisteredAt(s string) time.Time {
	for _, layout := range registeredAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
