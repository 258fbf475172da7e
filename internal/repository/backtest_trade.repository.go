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

type BacktestTradeRepository interface {
	AddMany(tx *sql.Tx, trades []model.BacktestTrade) ([]model.BacktestTrade, error)
	ListForRun(runID uuid.UUID) ([]model.BacktestTrade, error)
}

type backtestTradeRepositoryHandler struct {
	Db *sql.DB
}

func NewBacktestTradeRepository(db *sql.DB) BacktestTradeRepository {
	return backtestTradeRepositoryHandler{Db: db}
}

func (h backtestTradeRepositoryHandler) AddMany(tx *sql.Tx, trades []model.BacktestTrade) ([]model.BacktestTrade, error) {
	if len(trades) == 0 {
		return []model.BacktestTrade{}, nil
	}

	now := time.Now().UTC()
	for i := range trades {
		trades[i].CreatedAt = now
	}

	query := table.BacktestTrade.
		INSERT(table.BacktestTrade.MutableColumns).
		MODELS(trades).
		RETURNING(table.BacktestTrade.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := []model.BacktestTrade{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert backtest trades: %w", err)
	}

	return out, nil
}

func (h backtestTradeRepositoryHandler) ListForRun(runID uuid.UUID) ([]model.BacktestTrade, error) {
	query := table.BacktestTrade.
		SELECT(table.BacktestTrade.AllColumns).
		WHERE(table.BacktestTrade.BacktestRunID.EQ(postgres.UUID(runID))).
		ORDER_BY(table.BacktestTrade.TradeDate.ASC())

	result := []model.BacktestTrade{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades for run %s: %w", runID.String(), err)
	}

	return result, nil
}
