package handlers

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/metrics"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	hwtest "github.com/harborwave/harbor-wave/internal/testing"
	"github.com/harborwave/harbor-wave/internal/ui"
)

// testEnv swaps the factory vars for a fixture account and buffered output.
type testEnv struct {
	cloud  *hwtest.CloudFixture
	store  *config.Store
	out    *bytes.Buffer
	errOut *bytes.Buffer
	opts   *Options

	connects int
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	t.Setenv("HARBOR_WAVE_API_KEY", "")
	t.Setenv("DIGITALOCEAN_TOKEN", "")
	t.Setenv(metrics.PushgatewayEnv, "")

	env := &testEnv{
		cloud:  hwtest.NewCloudFixture(),
		store:  config.NewStore(t.TempDir()),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	env.opts = &Options{ConfigDir: env.store.Dir()}
	if cfg != nil {
		require.NoError(t, env.store.Save(cfg))
	}

	origStore := newStore
	origConnect := connect
	origPrinter := newPrinter
	origLogger := newLogger
	origCtx := newProvisioningContext
	t.Cleanup(func() {
		newStore = origStore
		connect = origConnect
		newPrinter = origPrinter
		newLogger = origLogger
		newProvisioningContext = origCtx
	})

	newStore = func(string) *config.Store { return env.store }
	connect = func(token string) (digitalocean.Gateway, error) {
		env.connects++
		if err := digitalocean.ValidateCredential(token); err != nil {
			return nil, err
		}
		return env.cloud.Mock(), nil
	}
	newPrinter = func() *ui.Printer { return ui.NewPrinter(env.out, env.errOut, ui.PlainStyles()) }
	newLogger = func(int, string) (logr.Logger, func(), error) { return logr.Discard(), func() {}, nil }
	newProvisioningContext = func(ctx context.Context, cfg *config.Config, cloud digitalocean.Gateway, obs provisioning.Observer) *provisioning.Context {
		pCtx := provisioning.NewContext(ctx, cfg, cloud, obs)
		pCtx.Timeouts = hwtest.FastTimeouts()
		pCtx.Metrics = metrics.NewRecorderWithPushURL(cfg.Tag, "")
		return pCtx
	}
	return env
}
