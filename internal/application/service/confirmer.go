package service

import (
	"context"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/pkg/apperror"
	"github.com/lromero86/tacopos-api/pkg/utils"
)

// Confirmation carries the operator's answer to a destructive-action
// prompt. The prompt itself happens on the client; the till only sees
// the answer.
type Confirmation struct {
	Confirmed bool
	PIN       string
}

// Confirmer guards destructive operations. A declined confirmation
// must leave the system completely untouched.
type Confirmer interface {
	Confirm(ctx context.Context, operator *entity.Operator, action string, c Confirmation) error
}

// Confirmation failures
var (
	ErrConfirmationRequired = &apperror.AppError{
		Code:    428,
		Kind:    apperror.KindValidation,
		Message: "Confirmation required",
	}
	ErrInvalidPIN = &apperror.AppError{
		Code:    403,
		Kind:    apperror.KindAuth,
		Message: "Invalid confirmation PIN",
	}
)

// PINConfirmer accepts an explicit confirmed flag, and additionally
// demands the operator's till PIN when one is configured.
type PINConfirmer struct{}

// NewPINConfirmer creates the production confirmer
func NewPINConfirmer() *PINConfirmer {
	return &PINConfirmer{}
}

// Confirm validates the operator's answer for the given action
func (p *PINConfirmer) Confirm(ctx context.Context, operator *entity.Operator, action string, c Confirmation) error {
	if !c.Confirmed {
		return ErrConfirmationRequired
	}
	if operator != nil && operator.HasPIN() {
		if !utils.CheckPIN(c.PIN, operator.PINHash) {
			return ErrInvalidPIN
		}
	}
	return nil
}
