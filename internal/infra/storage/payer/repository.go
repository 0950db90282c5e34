package payer

import (
	"context"
	"fmt"

	"github.com/m04kA/TMS-SearchService/internal/domain"
	"github.com/m04kA/TMS-SearchService/pkg/dbmetrics"
	"github.com/m04kA/TMS-SearchService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы со страховыми компаниями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория страховых компаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает все страховые компании, упорядоченные по имени
func (r *Repository) List(ctx context.Context) ([]domain.InsurancePayer, error) {
	query, args, err := psqlbuilder.Select("id", "name").
		From("insurance_payers").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payers := make([]domain.InsurancePayer, 0)
	for rows.Next() {
		var p domain.InsurancePayer
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("%w: List - scan payer: %v", ErrScanRow, err)
		}
		payers = append(payers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return payers, nil
}
