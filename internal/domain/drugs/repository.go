package drugs

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("drug not found")
	ErrAlreadyExists = errors.New("drug already exists")
)

// Repository guarda el catálogo. GetByName/Delete reciben el nombre tal cual;
// cada adapter compara por NormalizeName.
type Repository interface {
	Create(ctx context.Context, d Drug) error
	Update(ctx context.Context, d Drug) error
	GetByName(ctx context.Context, name string) (Drug, error)
	List(ctx context.Context) ([]Drug, error)
	Delete(ctx context.Context, name string) error
}
