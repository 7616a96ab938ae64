// Package console echoes messages to a writer, normally stdout.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/angas/cheapslots-go/types"
)

type Console struct {
	w io.Writer
}

func New(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

func (c *Console) Name() string {
	return "console"
}

func (c *Console) Notify(_ context.Context, msg types.Message) error {
	text := msg.Text
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(c.w, text); err != nil {
		return fmt.Errorf("%w: write to console: %v", types.ErrDeliveryFailure, err)
	}
	return nil
}
