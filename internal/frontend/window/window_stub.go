//go:build tinygo || !cgo

package window

import (
	"context"
	"errors"

	"github.com/Versifine/folio/internal/frontend"
	"github.com/Versifine/folio/internal/input"
)

var ErrUnavailable = errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")

func Run(_ context.Context, _ *frontend.Session, _ *input.Keyboard, _ int) error {
	return ErrUnavailable
}
