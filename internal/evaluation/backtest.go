package evaluation

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-features/internal/predictor"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Backtest walks consecutive pairs (cur, next). When both predictors call UP
// on cur it accrues next.close-cur.close, when both call DOWN it accrues
// cur.close-next.close, and disagreement adds nothing.
func (e *Evaluator) Backtest(ctx context.Context, bars []types.Bar, price predictor.PriceForecaster, direction predictor.DirectionClassifier) (decimal.Decimal, error) {
	if len(bars) < 2 {
		if e.cfg.Strict {
			return decimal.Zero, errors.NewInsufficientDataErrorf(2, len(bars), "backtest", "backtest needs at least 2 bars, got %d", len(bars))
		}

		return decimal.Zero, nil
	}

	price = predictor.CheckPrice(price)
	direction = predictor.CheckDirection(direction)

	pnl := decimal.Zero

	for i := 0; i < len(bars)-1; i++ {
		if err := canceled(ctx); err != nil {
			return decimal.Zero, err
		}

		cur := bars[i]
		next := bars[i+1]

		pf, df, err := e.predictPair(cur, price, direction)
		if err != nil {
			return decimal.Zero, err
		}

		upPrice := pf.IsUp(cur.Close)
		upDirection := df.Outcome.IsUp()

		move := decimal.NewFromFloat(next.Close).Sub(decimal.NewFromFloat(cur.Close))

		switch {
		case upPrice && upDirection:
			pnl = pnl.Add(move)
		case !upPrice && !upDirection:
			pnl = pnl.Sub(move)
		}
	}

	return pnl, nil
}

// LookbackSweep runs the backtest on the most recent proportional slice of
// bars for each lookback: take = total*duration/maxDuration, at least 1.
// Bars timestamped after referenceDate are dropped first; bars with a zero
// time are always kept. A lookback covering fewer than two bars yields zero
// P&L in both modes.
func (e *Evaluator) LookbackSweep(ctx context.Context, bars []types.Bar, referenceDate optional.Option[time.Time], lookbacks []types.Lookback, price predictor.PriceForecaster, direction predictor.DirectionClassifier) ([]types.LookbackResult, error) {
	results := make([]types.LookbackResult, 0, len(lookbacks))
	if len(lookbacks) == 0 {
		return results, nil
	}

	var maxDuration time.Duration

	for _, lb := range lookbacks {
		if lb.Duration <= 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "lookback %s must have a positive duration, got %s", lb.Name, lb.Duration)
		}

		maxDuration = max(maxDuration, lb.Duration)
	}

	eligible := filterUntil(bars, referenceDate)
	total := len(eligible)

	if total == 0 && e.cfg.Strict {
		return nil, errors.NewInsufficientDataError(1, 0, "lookback", "no bars on or before the reference date")
	}

	for _, lb := range lookbacks {
		take := int(float64(total) * float64(lb.Duration) / float64(maxDuration))
		take = min(max(take, 1), total)

		if take < 2 {
			// a single bar has no pair to trade, even in strict mode
			e.logger.Warn("Lookback too short to backtest",
				zap.String("lookback", lb.Name),
				zap.Int("bars", take),
			)

			results = append(results, types.LookbackResult{Name: lb.Name, Bars: take, PnL: decimal.Zero})

			continue
		}

		pnl, err := e.Backtest(ctx, eligible[total-take:], price, direction)
		if err != nil {
			return nil, err
		}

		e.logger.Debug("Lookback backtest",
			zap.String("lookback", lb.Name),
			zap.Int("bars", take),
			zap.String("pnl", pnl.String()),
		)

		results = append(results, types.LookbackResult{Name: lb.Name, Bars: take, PnL: pnl})
	}

	return results, nil
}

func filterUntil(bars []types.Bar, referenceDate optional.Option[time.Time]) []types.Bar {
	if referenceDate.IsNone() {
		return bars
	}

	ref := referenceDate.Unwrap()
	out := make([]types.Bar, 0, len(bars))

	for _, bar := range bars {
		if bar.Time.IsZero() || !bar.Time.After(ref) {
			out = append(out, bar)
		}
	}

	return out
}
