package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/activity"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/auth"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/config"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/metrics"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/overlay"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/validate"
)

// app holds everything a command needs, opened from one base directory
type app struct {
	settings  config.Settings
	store     kv.Store
	metrics   *metrics.Metrics
	activity  *activity.Log
	auth      *auth.Service
	users     *overlay.Users
	orders    *overlay.Orders
	dashboard *overlay.Dashboard
	validator *validate.Validator
	session   *models.Session
}

// loadSettings reads .panel/config.json, applies PANEL_* overrides and
// fills defaults
func loadSettings(dir string) (config.Settings, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return config.Settings{}, err
	}
	config.ApplyEnv(cfg)
	return config.Resolve(dir, cfg)
}

// openApp wires the store, remote client and overlays for dir
func openApp(ctx context.Context, dir string) (*app, error) {
	settings, err := loadSettings(dir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	store, err := kv.Open(ctx, settings.Store)
	if err != nil {
		return nil, err
	}
	src := remote.Source(remote.New(settings.APIBaseURL, settings.HTTPTimeout))
	a, err := newApp(ctx, settings, store, src)
	if err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

// newApp builds an app over an already opened store and remote source
func newApp(ctx context.Context, settings config.Settings, store kv.Store, src remote.Source) (*app, error) {
	m := metrics.New()
	src = remote.Observed(src, m)
	// Each operation draws at most one injected failure: mutations and
	// login through delay, reads through reads.
	delay := &remote.Injector{Latency: settings.Latency, FailureRate: settings.FailureRate}
	var reads *remote.Injector
	if settings.FailureRate > 0 {
		reads = &remote.Injector{FailureRate: settings.FailureRate}
	}

	v, err := validate.New()
	if err != nil {
		return nil, err
	}

	a := &app{
		settings:  settings,
		store:     store,
		metrics:   m,
		activity:  activity.New(store),
		auth:      auth.New(store, delay),
		validator: v,
	}

	a.session, err = a.auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	actor := ""
	if a.session != nil {
		actor = a.session.User.Name
	}

	opts := []overlay.Option{
		overlay.WithDelay(delay),
		overlay.WithReadFaults(reads),
		overlay.WithMetrics(m),
		overlay.WithActivity(a.activity),
		overlay.WithLogger(slog.Default()),
		overlay.WithActor(actor),
	}
	a.users = overlay.NewUsers(src, store, opts...)
	a.orders = overlay.NewOrders(src, store, opts...)
	a.dashboard = &overlay.Dashboard{Users: a.users, Orders: a.orders, Activity: a.activity}
	return a, nil
}

// Close releases the store
func (a *app) Close() error {
	return a.store.Close()
}

// requireLogin returns auth.ErrNotLoggedIn unless a valid session exists
func (a *app) requireLogin(ctx context.Context) error {
	ok, err := a.auth.Validate(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: run 'panel login' first", auth.ErrNotLoggedIn)
	}
	return nil
}

// withApp opens the app for the current base directory, checks the session
// when needed and runs fn
func withApp(ctx context.Context, needLogin bool, fn func(*app) error) error {
	a, err := openApp(ctx, getBaseDir())
	if err != nil {
		return err
	}
	defer a.Close()

	if needLogin {
		if err := a.requireLogin(ctx); err != nil {
			return err
		}
	}
	return fn(a)
}

// errorCode maps an error to the structured JSON error code
func errorCode(err error) string {
	var se *remote.StatusError
	var ve *validate.Error
	switch {
	case errors.Is(err, overlay.ErrNotFound), errors.Is(err, remote.ErrNotFound):
		return output.ErrCodeNotFound
	case errors.Is(err, overlay.ErrInvalidFilter), errors.As(err, &ve):
		return output.ErrCodeInvalidInput
	case errors.Is(err, auth.ErrNotLoggedIn), errors.Is(err, auth.ErrInvalidCredentials):
		return output.ErrCodeUnauthorized
	case errors.Is(err, remote.ErrInjected):
		return output.ErrCodeInjectedError
	case errors.As(err, &se):
		return output.ErrCodeRemoteError
	default:
		return output.ErrCodeInternal
	}
}

// fail reports a non-nil err in the requested format and returns it
func fail(jsonOut bool, err error) error {
	if err == nil {
		return nil
	}
	if jsonOut {
		output.JSONError(errorCode(err), err.Error())
	} else {
		output.Error("%v", err)
	}
	return err
}
