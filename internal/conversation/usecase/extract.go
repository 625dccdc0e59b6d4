package usecase

import (
	"context"
	"errors"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/extractor"
	"timesheet-assistant/internal/submission"
	"timesheet-assistant/internal/validator"
)

// Extract runs the extractor and validator over a transcript.
func (uc *implUseCase) Extract(ctx context.Context, input conversation.ExtractInput) (conversation.ExtractOutput, error) {
	if len(input.Turns) == 0 {
		return conversation.ExtractOutput{}, conversation.ErrEmptyTranscript
	}

	x := extractor.Extract(input.Turns)
	out := conversation.ExtractOutput{
		Raw:      x,
		Defaults: x.Misses,
		Complete: extractor.IsComplete(input.Turns),
	}

	entry, err := validator.Validate(x.Entry(uc.now()))
	out.Entry = entry
	if err != nil {
		out.Missing = missingFields(err)
	}
	return out, nil
}

// TestDelivery pings the delivery endpoint once.
func (uc *implUseCase) TestDelivery(ctx context.Context) (submission.Outcome, error) {
	if uc.pinger == nil {
		return submission.Outcome{Status: submission.StatusSkipped}, submission.ErrNotConfigured
	}
	return uc.pinger.Ping(ctx)
}

func missingFields(err error) []string {
	var mf *validator.MissingFieldsError
	if errors.As(err, &mf) {
		return mf.Fields
	}
	return nil
}
