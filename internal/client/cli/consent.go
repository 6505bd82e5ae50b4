package cli

import (
	"context"

	"github.com/dmitrijs2005/focusgroup/internal/client/services"
)

func (a *App) Consent(ctx context.Context, args []string) error {
	if len(args) == 0 {
		choice, cats, err := a.consent.Current(ctx)
		if err != nil {
			return err
		}
		if choice == "" {
			a.println("No cookie preference recorded")
			return nil
		}
		a.printf("Choice: %s\nnecessary: %t\nanalytics: %t\nmarketing: %t\npreferences: %t\n",
			choice, cats.Necessary, cats.Analytics, cats.Marketing, cats.Preferences)
		return nil
	}

	switch args[0] {
	case "accept":
		return a.consent.AcceptAll(ctx)
	case "reject":
		return a.consent.RejectAll(ctx)
	case "custom":
		var cats services.ConsentCategories
		for _, c := range []struct {
			label string
			dst   *bool
		}{
			{"Allow analytics cookies? (y/n)", &cats.Analytics},
			{"Allow marketing cookies? (y/n)", &cats.Marketing},
			{"Allow preference cookies? (y/n)", &cats.Preferences},
		} {
			s, err := a.ask(c.label)
			if err != nil {
				return err
			}
			*c.dst = yes(s)
		}
		return a.consent.SaveCustom(ctx, cats)
	default:
		a.println("Usage: consent [accept|reject|custom]")
		return nil
	}
}
