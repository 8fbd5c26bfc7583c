package frontend

import (
	"fmt"
	"log/slog"

	"github.com/Versifine/folio/internal/catalog"
	"github.com/Versifine/folio/internal/scene"
)

// Opener hands a link to whatever can show it.
type Opener interface {
	Open(url string) error
}

// LogOpener only logs. There is no browser to hand links to in a terminal or
// a bare window, so the URL is surfaced to the user through the log.
type LogOpener struct{}

func (LogOpener) Open(url string) error {
	slog.Info("Open link", "url", url)
	return nil
}

// Resolve turns a clicked screen into a URL. For contact actions choice is
// the 1-based menu entry from ContactOptions; anything out of range is a
// cancelled menu and yields "".
func Resolve(action scene.Action, cat *catalog.Catalog, choice int) (string, error) {
	switch action.Kind {
	case scene.ActionOpenGitHub:
		if action.Project.GitHubURL == "" {
			return "", fmt.Errorf("project %s has no github url", action.Project.ID)
		}
		return action.Project.GitHubURL, nil
	case scene.ActionContact:
		if cat == nil {
			return "", fmt.Errorf("no catalog for contact options")
		}
		opts := cat.ContactOptions()
		if choice < 1 || choice > len(opts) {
			return "", nil
		}
		return opts[choice-1].URL, nil
	default:
		return "", nil
	}
}
