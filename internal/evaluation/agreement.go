package evaluation

import (
	"context"

	"github.com/rxtech-lab/argo-features/internal/predictor"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Agreement scores both predictors on every labeled bar. Unlabeled bars are
// ignored. Any predictor failure fails the whole pass.
func (e *Evaluator) Agreement(ctx context.Context, bars []types.Bar, price predictor.PriceForecaster, direction predictor.DirectionClassifier) (types.AgreementReport, error) {
	price = predictor.CheckPrice(price)
	direction = predictor.CheckDirection(direction)

	var report types.AgreementReport

	for _, bar := range bars {
		if !bar.IsLabeled() {
			continue
		}

		if err := canceled(ctx); err != nil {
			return types.AgreementReport{}, err
		}

		pf, df, err := e.predictPair(bar, price, direction)
		if err != nil {
			return types.AgreementReport{}, err
		}

		upPrice := pf.IsUp(bar.Close)
		upDirection := df.Outcome.IsUp()
		real := bar.Outcome.IsUp()

		report.Total++

		if upPrice == real {
			report.PriceCorrect++
		}

		if upDirection == real {
			report.DirectionCorrect++
		}

		if upPrice != upDirection {
			continue
		}

		report.Agreeing++

		if upDirection == real {
			report.Concordant++
		}

		if df.Confidence >= e.cfg.Evaluation.ConfidenceThreshold &&
			relativeMove(pf.PredictedCloseNext, bar.Close) >= e.cfg.Evaluation.MinMoveRatio {
			report.HighConfidence++

			if upDirection == real {
				report.HighConfidenceCorrect++
			}
		}
	}

	if report.Total == 0 && e.cfg.Strict {
		return types.AgreementReport{}, errors.NewInsufficientDataError(1, 0, "agreement", "agreement needs at least one labeled bar")
	}

	report.PriceAccuracy = percent(report.PriceCorrect, report.Total)
	report.DirectionAccuracy = percent(report.DirectionCorrect, report.Total)
	report.AgreementRate = percent(report.Agreeing, report.Total)
	report.ConcordantAccuracy = percent(report.Concordant, report.Agreeing)
	report.HighConfidenceRate = percent(report.HighConfidence, report.Total)
	report.HighConfidenceAccuracy = percent(report.HighConfidenceCorrect, report.HighConfidence)

	return report, nil
}
