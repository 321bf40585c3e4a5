package services

import (
	"unicode/utf8"

	"github.com/custodia-labs/patristic/internal/core/domain"
)

// BuildDocuments turns records into documents, dropping records that fail the
// inclusion rules. Every record gets an outcome; output order follows input order.
func BuildDocuments(records []domain.Record, policy domain.BuildPolicy) ([]domain.Document, []domain.BuildOutcome) {
	docs := make([]domain.Document, 0, len(records))
	outcomes := make([]domain.BuildOutcome, 0, len(records))

	for i := range records {
		reason := filterReason(&records[i], policy)
		if reason != domain.FilterNone {
			outcomes = append(outcomes, domain.BuildOutcome{
				RecordID: records[i].ID,
				Status:   domain.BuildFiltered,
				Reason:   reason,
			})
			continue
		}

		docs = append(docs, domain.NewDocument(records[i]))
		outcomes = append(outcomes, domain.BuildOutcome{
			RecordID: records[i].ID,
			Status:   domain.BuildKept,
		})
	}

	return docs, outcomes
}

// filterReason returns why r is excluded, or FilterNone when it is kept.
func filterReason(r *domain.Record, policy domain.BuildPolicy) domain.FilterReason {
	if utf8.RuneCountInString(r.Text) < policy.MinTextLength {
		return domain.FilterTextTooShort
	}
	if r.SourceTitle == "" {
		return domain.FilterMissingSourceTitle
	}
	return domain.FilterNone
}
