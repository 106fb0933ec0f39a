package usecase

import (
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/readme-bot/internal/domain"
)

var summaryActions = []domain.Action{
	domain.ActionCreated,
	domain.ActionUpdated,
	domain.ActionUpToDate,
	domain.ActionNoFiles,
	domain.ActionSkippedArchived,
	domain.ActionSkippedEmpty,
	domain.ActionFailed,
}

// Summarize logs per-action counts and the size of the prompts sent during the pass.
func Summarize(report *domain.Report, logger logrus.FieldLogger) {
	fields := logrus.Fields{"repositories": len(report.Outcomes)}
	for _, action := range summaryActions {
		if n := report.Count(action); n > 0 {
			fields[string(action)] = n
		}
	}

	var sizes []int
	for _, o := range report.Outcomes {
		if o.PromptBytes > 0 {
			sizes = append(sizes, o.PromptBytes)
		}
	}
	if data := stats.LoadRawData(sizes); len(data) > 0 {
		// Mean and Max only fail on empty input.
		mean, _ := stats.Mean(data)
		largest, _ := stats.Max(data)
		fields["prompt_bytes_mean"] = int(mean)
		fields["prompt_bytes_max"] = int(largest)
	}

	logger.WithFields(fields).Info("Documentation pass summary")
}
