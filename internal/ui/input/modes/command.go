package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"nexventory/internal/ui/input/types"
)

// CommandMode reads an /adm command line
type CommandMode struct {
	TextInputMode
}

func NewCommandMode(ti *textinput.Model) *CommandMode {
	return &CommandMode{
		TextInputMode: NewTextInputMode(types.ModeCommand, "command", ":", ti),
	}
}
