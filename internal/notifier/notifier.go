package notifier

import (
	"context"

	"github.com/L1nMay/vulnassess/internal/model"
)

type Notifier interface {
	NotifyAssessment(ctx context.Context, rec *model.AssessmentRecord) error
}

// Nop discards notifications.
type Nop struct{}

func (Nop) NotifyAssessment(context.Context, *model.AssessmentRecord) error { return nil }
