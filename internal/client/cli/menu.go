package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/focusgroup/internal/access"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/client"
	"github.com/dmitrijs2005/focusgroup/internal/client/services"
)

const menuUsage = "Usage: menu [show|enable <s>|disable <s>|show-section <s>|hide-section <s>|enable-all|disable-all|preview|save|discard]"

func (a *App) Menu(ctx context.Context, args []string) error {
	u, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	if !access.CanEditSettings(u.Role) {
		return errors.New("admin access required")
	}
	if err := a.menu.Load(ctx); err != nil {
		return errors.New(client.Message(err))
	}

	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}
	section := func() (string, error) {
		if len(args) < 2 {
			return "", fmt.Errorf("missing section; one of %s", strings.Join(api.SectionNames, ", "))
		}
		return args[1], nil
	}

	switch sub {
	case "show":
		return a.printMenu()
	case "enable", "disable":
		s, err := section()
		if err != nil {
			return err
		}
		return a.menu.SetEnabled(s, sub == "enable")
	case "show-section", "hide-section":
		s, err := section()
		if err != nil {
			return err
		}
		return a.menu.SetVisible(s, sub == "show-section")
	case "enable-all":
		return a.menu.EnableAll()
	case "disable-all":
		return a.menu.DisableAll()
	case "preview":
		titles, err := a.menu.Preview()
		if err != nil {
			return err
		}
		if len(titles) == 0 {
			a.println("(no sections visible)")
			return nil
		}
		a.println(strings.Join(titles, " | "))
		return nil
	case "save":
		if !a.menu.Dirty() {
			a.println("No changes to save")
			return nil
		}
		return a.saveMenu(ctx)
	case "discard":
		return a.menu.Discard()
	default:
		a.println(menuUsage)
		return nil
	}
}

// saveMenu reports local refusals. Failed requests were already shown by the
// editor's notifier.
func (a *App) saveMenu(ctx context.Context) error {
	err := a.menu.Save(ctx)
	if errors.Is(err, services.ErrBusy) || errors.Is(err, services.ErrNotLoaded) {
		return err
	}
	return nil
}

func (a *App) printMenu() error {
	draft, err := a.menu.Draft()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tTITLE\tENABLED\tVISIBLE\tSTATUS")
	draft.Each(func(name string, s *api.MenuSection) {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%t\t%s\n", name, s.Title, s.Enabled, s.Visible, services.SectionStatus(*s))
	})
	if err := tw.Flush(); err != nil {
		return err
	}
	if a.menu.Dirty() {
		a.println("(unsaved changes)")
	}
	return nil
}
