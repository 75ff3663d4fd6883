package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/byigitt/kaiban/common/id"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
)

// appendTranscript writes the USER/ASSISTANT pair for an applied operation.
// The response carries the validated arguments so a transcript can be
// replayed against the contract version it was written under.
func (d *Dispatcher) appendTranscript(ctx context.Context, stores StoreProvider, req Request, summary string) error {
	name := req.Args.Operation()
	applied, err := json.Marshal(req.Args)
	if err != nil {
		return fmt.Errorf("encoding operation arguments: %w", err)
	}

	msgs := []model.ConversationMessage{
		{
			ID:             id.New(),
			ConversationID: req.ConversationID,
			Role:           model.RoleUser,
			Content:        req.Command,
			Metadata: model.MessageMetadata{
				Type:          name.TranscriptType() + "-request",
				PromptVersion: operation.ContractVersion,
			},
		},
		{
			ID:             id.New(),
			ConversationID: req.ConversationID,
			Role:           model.RoleAssistant,
			Content:        summary,
			Metadata: model.MessageMetadata{
				Type:          name.TranscriptType() + "-response",
				PromptVersion: operation.ContractVersion,
				Result:        applied,
			},
		},
	}

	if err := stores.Messages().CreateMany(ctx, msgs); err != nil {
		return fmt.Errorf("appending transcript: %w", err)
	}
	if err := stores.Conversations().Touch(ctx, req.ConversationID); err != nil {
		return fmt.Errorf("touching conversation: %w", err)
	}
	return nil
}
