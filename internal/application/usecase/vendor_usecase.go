package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/domain"
	"github.com/gestorventas/deposito-api/internal/domain/entity"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail valida el formato básico de un email.
func ValidEmail(email string) bool { return emailPattern.MatchString(email) }

// VendorUseCase alta, consulta, edición y baja de vendedores.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create registra un vendedor con rol USER.
func (uc *VendorUseCase) Create(ctx context.Context, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	return uc.create(ctx, in, []string{entity.RoleUser})
}

// CreateAdmin registra un vendedor con rol ADMIN. Si el email ya existe devuelve el existente
// sin modificarlo, para que el seed sea idempotente.
func (uc *VendorUseCase) CreateAdmin(ctx context.Context, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	resp, err := uc.create(ctx, in, []string{entity.RoleAdmin, entity.RoleUser})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		existing, gerr := uc.repo.GetByEmail(ctx, strings.TrimSpace(in.Email))
		if gerr != nil {
			return nil, gerr
		}
		return toVendorResponse(existing), nil
	}
	return resp, err
}

func (uc *VendorUseCase) create(ctx context.Context, in dto.CreateVendorRequest, roles []string) (*dto.VendorResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return nil, invalid("nombre obligatorio")
	}
	if !ValidEmail(email) {
		return nil, invalid("email con formato inválido")
	}
	if in.Password == "" {
		return nil, invalid("password obligatorio")
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	v := &entity.Vendor{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// Get obtiene un vendedor. nil si no existe.
func (uc *VendorUseCase) Get(ctx context.Context, id string) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil || v == nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// List lista todos los vendedores.
func (uc *VendorUseCase) List(ctx context.Context) ([]dto.VendorResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVendorResponse(v))
	}
	return out, nil
}

// Update aplica los campos presentes y no vacíos del patch.
func (uc *VendorUseCase) Update(ctx context.Context, id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, notFound("vendedor", id)
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := strings.TrimSpace(*in.Email)
		if !ValidEmail(email) {
			return nil, invalid("email con formato inválido")
		}
		if email != v.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			v.Email = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		v.PasswordHash = string(hash)
	}
	v.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// Delete elimina el vendedor y, en cascada, sus clientes, pedidos y líneas.
func (uc *VendorUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: vendedor %s", domain.ErrNotFound, id)
	}
	return nil
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	if v == nil {
		return nil
	}
	return &dto.VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Roles:     v.Roles,
		CreatedAt: v.CreatedAt,
	}
}
