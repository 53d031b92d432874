package currency

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// loggingSource decorates a RateSource with logging
type loggingSource struct {
	next   RateSource
	logger logrus.FieldLogger
}

// NewLoggingSource returns a RateSource that logs every fetch made through next
// at debug level. Reporting failures is left to the caller.
func NewLoggingSource(logger logrus.FieldLogger, next RateSource) RateSource {
	return &loggingSource{
		next:   next,
		logger: logger,
	}
}

func (s *loggingSource) Rates(ctx context.Context) (rates Rates, err error) {
	defer func(begin time.Time) {
		entry := s.logger.WithFields(logrus.Fields{
			"method": "rates",
			"count":  len(rates),
			"took":   time.Since(begin),
		})
		if err != nil {
			entry.WithError(err).Debug("failed to fetch rates")
			return
		}
		entry.Debug("fetched rates")
	}(time.Now())
	return s.next.Rates(ctx)
}
