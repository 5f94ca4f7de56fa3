package editor

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"folio/internal/domain"
	"folio/internal/domain/models/content"
)

// OpType names a block operation.
type OpType string

const (
	OpInsert     OpType = "insert"
	OpUpdateText OpType = "update_text"
	OpRemove     OpType = "remove"
	OpMove       OpType = "move"
)

// BlockOp is one editing step as sent by the admin client.
type BlockOp struct {
	Op    OpType                  `json:"op"`
	Index int                     `json:"index"`
	To    int                     `json:"to,omitempty"`
	Kind  content.Kind            `json:"kind,omitempty"`
	Text  string                  `json:"text,omitempty"`
	Media *content.MediaReference `json:"media,omitempty"`
	Attrs map[string]any          `json:"attrs,omitempty"`
}

// Validate checks the operation's shape; index bounds are checked when the
// operation is applied.
func (op BlockOp) Validate() error {
	return validation.ValidateStruct(&op,
		validation.Field(&op.Op, validation.Required, validation.In(OpInsert, OpUpdateText, OpRemove, OpMove)),
		validation.Field(&op.Kind, validation.When(op.Op == OpInsert, validation.Required)),
		validation.Field(&op.Index, validation.Min(0)),
		validation.Field(&op.To, validation.Min(0)),
	)
}

// Apply runs ops in order and stops at the first failure. Operations
// applied before the failure stay applied.
func (s *Session) Apply(ops []BlockOp) error {
	for i, op := range ops {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("%w: op %d: %v", domain.ErrValidation, i, err)
		}
		if err := s.apply(op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Op, err)
		}
	}
	return nil
}

func (s *Session) apply(op BlockOp) error {
	switch op.Op {
	case OpInsert:
		_, err := s.InsertBlock(op.Kind, Payload{Text: op.Text, Media: op.Media, Attrs: op.Attrs})
		return err
	case OpUpdateText:
		return s.UpdateBlockText(op.Index, op.Text)
	case OpRemove:
		return s.RemoveBlock(op.Index)
	case OpMove:
		return s.MoveBlock(op.Index, op.To)
	}
	return fmt.Errorf("%w: unknown operation %q", domain.ErrValidation, op.Op)
}
