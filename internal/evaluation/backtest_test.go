package evaluation

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/mocks"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/shopspring/decimal"
)

func (suite *EvaluatorTestSuite) TestBacktestDirections() {
	bars := mocks.Monotonic(10, 100, 1)

	testCases := []struct {
		name      string
		delta     float64
		direction types.Outcome
		expected  int64
	}{
		{name: "both up", delta: 1, direction: types.OutcomeUp, expected: 9},
		{name: "both down", delta: -1, direction: types.OutcomeDown, expected: -9},
		{name: "disagree", delta: 1, direction: types.OutcomeDown, expected: 0},
		{name: "flat forecast is down", delta: 0, direction: types.OutcomeDown, expected: -9},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			pnl, err := suite.evaluator().Backtest(context.Background(), bars, shiftPrice(tc.delta), fixedDirection(tc.direction, 0.8))
			suite.Require().NoError(err)
			suite.True(decimal.NewFromInt(tc.expected).Equal(pnl), pnl.String())
		})
	}
}

func (suite *EvaluatorTestSuite) TestBacktestIsExact() {
	bars := mocks.Monotonic(11, 1, 0.1)

	pnl, err := suite.evaluator().Backtest(context.Background(), bars, shiftPrice(1), fixedDirection(types.OutcomeUp, 1))
	suite.Require().NoError(err)

	expected := decimal.NewFromFloat(bars[10].Close).Sub(decimal.NewFromFloat(bars[0].Close))
	suite.True(expected.Equal(pnl), "expected %s, got %s", expected, pnl)
}

func (suite *EvaluatorTestSuite) TestBacktestDeterministic() {
	gen := mocks.NewDataGenerator(3)
	cfg := mocks.DefaultConfig()
	cfg.Count = 300
	bars := gen.Generate(cfg)

	direction := directionFunc(func(bar types.Bar) (types.DirectionForecast, error) {
		if bar.IsBullish() {
			return types.DirectionForecast{Outcome: types.OutcomeUp, Confidence: 0.7}, nil
		}

		return types.DirectionForecast{Outcome: types.OutcomeDown, Confidence: 0.7}, nil
	})

	first, err := suite.evaluator().Backtest(context.Background(), bars, shiftPrice(0.01), direction)
	suite.Require().NoError(err)
	second, err := suite.evaluator().Backtest(context.Background(), bars, shiftPrice(0.01), direction)
	suite.Require().NoError(err)

	suite.True(first.Equal(second))
}

func (suite *EvaluatorTestSuite) TestBacktestTooShort() {
	for _, n := range []int{0, 1} {
		pnl, err := suite.evaluator().Backtest(context.Background(), mocks.Monotonic(n, 100, 1), shiftPrice(1), fixedDirection(types.OutcomeUp, 1))
		suite.Require().NoError(err)
		suite.True(pnl.IsZero())
	}

	suite.cfg.Strict = true
	_, err := suite.evaluator().Backtest(context.Background(), mocks.Monotonic(1, 100, 1), shiftPrice(1), fixedDirection(types.OutcomeUp, 1))
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *EvaluatorTestSuite) TestBacktestPredictionFailure() {
	failing := priceFunc(func(types.Bar) (types.PriceForecast, error) {
		return types.PriceForecast{}, errTrain
	})

	pnl, err := suite.evaluator().Backtest(context.Background(), mocks.Monotonic(5, 100, 1), failing, fixedDirection(types.OutcomeUp, 1))
	suite.True(errors.HasCode(err, errors.ErrCodePredictionFailed))
	suite.True(pnl.IsZero())
}

func (suite *EvaluatorTestSuite) TestLookbackSweep() {
	bars := mocks.Monotonic(30, 100, 1)

	results, err := suite.evaluator().LookbackSweep(context.Background(), bars, optional.None[time.Time](), suite.cfg.Lookbacks,
		shiftPrice(1), fixedDirection(types.OutcomeUp, 1))
	suite.Require().NoError(err)
	suite.Require().Len(results, 3)

	// 1d, 1w and 1m against a 30 day maximum
	suite.Equal("1d", results[0].Name)
	suite.Equal(1, results[0].Bars)
	suite.True(results[0].PnL.IsZero())

	suite.Equal("1w", results[1].Name)
	suite.Equal(7, results[1].Bars)
	suite.True(decimal.NewFromInt(6).Equal(results[1].PnL))

	suite.Equal("1m", results[2].Name)
	suite.Equal(30, results[2].Bars)
	suite.True(decimal.NewFromInt(29).Equal(results[2].PnL))
}

func (suite *EvaluatorTestSuite) TestLookbackSweepReferenceDate() {
	bars := mocks.Monotonic(30, 100, 1)
	ref := bars[19].Time

	results, err := suite.evaluator().LookbackSweep(context.Background(), bars, optional.Some(ref), suite.cfg.Lookbacks,
		shiftPrice(1), fixedDirection(types.OutcomeUp, 1))
	suite.Require().NoError(err)
	suite.Require().Len(results, 3)

	suite.Equal(4, results[1].Bars)
	suite.True(decimal.NewFromInt(3).Equal(results[1].PnL))
	suite.Equal(20, results[2].Bars)
	suite.True(decimal.NewFromInt(19).Equal(results[2].PnL))
}

func (suite *EvaluatorTestSuite) TestLookbackSweepEdgeCases() {
	e := suite.evaluator()

	results, err := e.LookbackSweep(context.Background(), mocks.Monotonic(5, 100, 1), optional.None[time.Time](), nil,
		shiftPrice(1), fixedDirection(types.OutcomeUp, 1))
	suite.Require().NoError(err)
	suite.NotNil(results)
	suite.Empty(results)

	_, err = e.LookbackSweep(context.Background(), mocks.Monotonic(5, 100, 1), optional.None[time.Time](),
		[]types.Lookback{{Name: "bad", Duration: 0}}, shiftPrice(1), fixedDirection(types.OutcomeUp, 1))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	results, err = e.LookbackSweep(context.Background(), nil, optional.None[time.Time](), suite.cfg.Lookbacks,
		shiftPrice(1), fixedDirection(types.OutcomeUp, 1))
	suite.Require().NoError(err)
	suite.Require().Len(results, 3)
	for _, r := range results {
		suite.Zero(r.Bars)
		suite.True(r.PnL.IsZero())
	}
}

func (suite *EvaluatorTestSuite) TestLookbackSweepStrictSkipsSingleBar() {
	suite.cfg.Strict = true
	bars := mocks.Monotonic(30, 100, 1)

	results, err := suite.evaluator().LookbackSweep(context.Background(), bars, optional.None[time.Time](), suite.cfg.Lookbacks,
		shiftPrice(1), fixedDirection(types.OutcomeUp, 1))
	suite.Require().NoError(err)
	suite.Require().Len(results, 3)

	suite.Equal(1, results[0].Bars)
	suite.True(results[0].PnL.IsZero())
	suite.True(decimal.NewFromInt(29).Equal(results[2].PnL))
}
