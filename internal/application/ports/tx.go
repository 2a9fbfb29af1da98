package ports

import (
	"context"

	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	PriceTiers repository.PriceTierRepository
	Images     repository.ProductImageRepository
	Clients    repository.ClientRepository
	Quotes     repository.QuoteRepository
	Settings   repository.SettingRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD. Si fn retorna error se hace
// rollback y ninguna escritura hecha con repos queda persistida.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
