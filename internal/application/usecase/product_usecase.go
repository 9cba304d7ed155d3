package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/domain"
	"github.com/gestorventas/deposito-api/internal/domain/entity"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductUseCase CRUD del catálogo de productos (global, no pertenece a ningún vendedor).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. El precio se redondea a 2 decimales; categoría vacía = OTROS.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, invalid("descripción obligatoria")
	}
	price := in.Price.Round(2)
	if !price.IsPositive() {
		return nil, invalid("el precio debe ser mayor que 0")
	}
	category := strings.ToUpper(strings.TrimSpace(in.Category))
	if category == "" {
		category = entity.CategoryOtros
	}
	if !entity.IsValidCategory(category) {
		return nil, invalid("categoría desconocida: " + in.Category)
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Description: desc,
		Price:       price,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Get obtiene un producto. nil si no existe.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List lista productos, opcionalmente filtrados por categoría.
func (uc *ProductUseCase) List(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	category = strings.ToUpper(strings.TrimSpace(category))
	if category != "" && !entity.IsValidCategory(category) {
		return nil, invalid("categoría desconocida: " + category)
	}
	list, err := uc.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update aplica el patch. Las líneas existentes conservan el precio que capturaron.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("producto", id)
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		price := in.Price.Round(2)
		if !price.IsPositive() {
			return nil, invalid("el precio debe ser mayor que 0")
		}
		p.Price = price
	}
	if in.Category != nil && *in.Category != "" {
		c := strings.ToUpper(strings.TrimSpace(*in.Category))
		if !entity.IsValidCategory(c) {
			return nil, invalid("categoría desconocida: " + *in.Category)
		}
		p.Category = c
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto. Devuelve domain.ErrConflict si alguna línea lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
	}
}

// priceOrDefault precio de una línea nueva: el informado, o precio del producto × cantidad.
// Siempre a 2 decimales, como lo guarda la columna.
func priceOrDefault(explicit *decimal.Decimal, product *entity.Product, quantity int) decimal.Decimal {
	if explicit != nil {
		return explicit.Round(2)
	}
	return product.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
