package repository

import (
	"database/sql"
	"fmt"
	"time"

	"fgibacktest/internal/db/models/postgres/public/model"
	"fgibacktest/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type BacktestRunRepository interface {
	Add(tx *sql.Tx, run model.BacktestRun) (*model.BacktestRun, error)
	Get(id uuid.UUID) (*model.BacktestRun, error)
	List(limit int) ([]model.BacktestRun, error)
}

type backtestRunRepositoryHandler struct {
	Db *sql.DB
}

func NewBacktestRunRepository(db *sql.DB) BacktestRunRepository {
	return backtestRunRepositoryHandler{Db: db}
}

// Add keeps the caller's run id so persisted rows match what was returned
// to the client
func (h backtestRunRepositoryHandler) Add(tx *sql.Tx, run model.BacktestRun) (*model.BacktestRun, error) {
	if run.BacktestRunID == uuid.Nil {
		run.BacktestRunID = uuid.New()
	}
	run.CreatedAt = time.Now().UTC()

	query := table.BacktestRun.
		INSERT(table.BacktestRun.AllColumns).
		MODEL(run).
		RETURNING(table.BacktestRun.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.BacktestRun{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert backtest run: %w", err)
	}

	return &out, nil
}

func (h backtestRunRepositoryHandler) Get(id uuid.UUID) (*model.BacktestRun, error) {
	query := table.BacktestRun.
		SELECT(table.BacktestRun.AllColumns).
		WHERE(table.BacktestRun.BacktestRunID.EQ(postgres.UUID(id)))

	result := model.BacktestRun{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to get backtest run %s: %w", id.String(), err)
	}

	return &result, nil
}

func (h backtestRunRepositoryHandler) List(limit int) ([]model.BacktestRun, error) {
	if limit <= 0 {
		limit = 50
	}
	query := table.BacktestRun.
		SELECT(table.BacktestRun.AllColumns).
		ORDER_BY(table.BacktestRun.CreatedAt.DESC()).
		LIMIT(int64(limit))

	result := []model.BacktestRun{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list backtest runs: %w", err)
	}

	return result, nil
}
