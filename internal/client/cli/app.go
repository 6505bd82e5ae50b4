package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/focusgroup/internal/client/client"
	"github.com/dmitrijs2005/focusgroup/internal/client/config"
	"github.com/dmitrijs2005/focusgroup/internal/client/querycache"
	"github.com/dmitrijs2005/focusgroup/internal/client/services"
	"github.com/dmitrijs2005/focusgroup/internal/client/store"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger

	store     *store.Store
	api       *client.HTTPClient
	cache     *querycache.Cache
	session   *services.Session
	menu      *services.MenuEditor
	dashboard *services.Dashboard
	consent   *services.Consent

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local store at cfg.DatabasePath and connects the
// services to the API at cfg.ServerURL.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	hc := client.NewHTTPClient(cfg.ServerURL, st.Tokens, client.WithTimeout(cfg.RequestTimeout))
	return newApp(cfg, log, st, hc, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(cfg *config.Config, log logging.Logger, st *store.Store, hc *client.HTTPClient, r *bufio.Reader, w io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	cache := querycache.New()
	notifier := &printNotifier{w: w}

	session := services.NewSession(hc, st.Tokens, cache, log)
	session.Attach(hc)

	return &App{
		config:    cfg,
		log:       log,
		store:     st,
		api:       hc,
		cache:     cache,
		session:   session,
		menu:      services.NewMenuEditor(hc, cache, notifier, log),
		dashboard: services.NewDashboard(hc, cache, session),
		consent:   services.NewConsent(st.Metadata),
		reader:    r,
		out:       w,
	}
}

func (a *App) notifier() services.Notifier {
	return &printNotifier{w: a.out}
}

// Run rehydrates the session and enters the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()

	if err := a.session.Init(ctx); err != nil {
		return err
	}

	a.println("Focus Group dashboard (type 'help' for commands)")
	if show, err := a.consent.ShouldShowBanner(ctx); err == nil && show {
		a.println("We use cookies to improve your experience. Type 'consent accept', 'consent reject' or 'consent custom'.")
	}

	runREPL(ctx, a, func() string { return a.status(ctx) }, bufio.NewScanner(a.reader))
	return nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	ok, _ := a.session.IsAuthenticated(ctx)
	return ok
}

func (a *App) status(ctx context.Context) string {
	u, _ := a.session.CurrentUser(ctx)
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Email, u.Role)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// printNotifier renders notices as terminal lines.
type printNotifier struct {
	w io.Writer
}

func (p *printNotifier) Success(title, msg string) {
	fmt.Fprintf(p.w, "[ok] %s: %s\n", title, msg)
}

func (p *printNotifier) Error(title, msg string) {
	fmt.Fprintf(p.w, "[error] %s: %s\n", title, msg)
}
