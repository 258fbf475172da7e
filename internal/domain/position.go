package domain

import (
	"github.com/shopspring/decimal"
)

// Position is either FlatPosition or LongPosition. the engine type-switches
// on it, so a flat book can only ever be asked about entering and a long
// book only about exiting
type Position interface {
	MarkToMarket(close decimal.Decimal) decimal.Decimal
	isPosition()
}

type FlatPosition struct {
	Cash decimal.Decimal
}

type LongPosition struct {
	Quantity decimal.Decimal
}

func (FlatPosition) isPosition() {}
func (LongPosition) isPosition() {}

func (p FlatPosition) MarkToMarket(close decimal.Decimal) decimal.Decimal {
	return p.Cash
}

func (p LongPosition) MarkToMarket(close decimal.Decimal) decimal.Decimal {
	return p.Quantity.Mul(close)
}

// Enter converts all cash into the asset, net of fee
func (p FlatPosition) Enter(price, feeRate decimal.Decimal) LongPosition {
	net := p.Cash.Mul(decimal.NewFromInt(1).Sub(feeRate))
	return LongPosition{
		Quantity: net.Div(price),
	}
}

// Exit sells the whole quantity, net of fee
func (p LongPosition) Exit(price, feeRate decimal.Decimal) FlatPosition {
	gross := p.Quantity.Mul(price)
	return FlatPosition{
		Cash: gross.Mul(decimal.NewFromInt(1).Sub(feeRate)),
	}
}
