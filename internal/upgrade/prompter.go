package upgrade

import (
	"fmt"

	"github.com/zubzet/tooling/internal/messages"
)

// Prompter asks the operator a yes/no question. It has no other side effects.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// PromptConfirmFunc answers a yes/no question.
type PromptConfirmFunc func(question string) (bool, error)

// PromptFuncs adapts a callback into a Prompter.
type PromptFuncs struct {
	ConfirmFunc PromptConfirmFunc
}

// Confirm asks question through ConfirmFunc.
// Returns an error if no ConfirmFunc is configured.
func (p PromptFuncs) Confirm(question string) (bool, error) {
	if p.ConfirmFunc == nil {
		return false, fmt.Errorf(messages.PromptHandlerRequired)
	}
	return p.ConfirmFunc(question)
}
