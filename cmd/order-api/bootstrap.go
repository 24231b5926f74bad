package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/OrderBox/config"
	"github.com/BearBump/OrderBox/internal/api/lookupapi"
	"github.com/BearBump/OrderBox/internal/integrations/commerce"
	"github.com/BearBump/OrderBox/internal/integrations/commerce/c7http"
	"github.com/BearBump/OrderBox/internal/integrations/shipping"
	"github.com/BearBump/OrderBox/internal/integrations/shipping/wshttp"
	"github.com/BearBump/OrderBox/internal/metrics"
	"github.com/BearBump/OrderBox/internal/orderid"
	"github.com/BearBump/OrderBox/internal/services/lookup"
)

type orderAPIApp struct {
	ctx     context.Context
	cancel  context.CancelFunc
	opts    orderAPIOpts
	handler http.Handler
}

// mustBootstrapOrderAPI builds the whole pipeline from configuration.
// configPath is optional; without it everything comes from env.
func mustBootstrapOrderAPI() *orderAPIApp {
	cfg, err := config.Load(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}

	handler, err := buildHandler(cfg)
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &orderAPIApp{
		ctx:    ctx,
		cancel: cancel,
		opts: orderAPIOpts{
			httpAddr:    cfg.HTTPAddr,
			swaggerPath: cfg.SwaggerPath,
		},
		handler: handler,
	}
}

func buildHandler(cfg *config.Config) (http.Handler, error) {
	ids, err := orderid.New(cfg.OrderIDRegex)
	if err != nil {
		return nil, err
	}

	var resolver commerce.Resolver
	if cfg.Commerce.Enable {
		client := c7http.New(
			cfg.Commerce.BaseURL,
			cfg.Commerce.AppID,
			cfg.Commerce.AppSecret,
			cfg.Commerce.Tenant,
			time.Duration(cfg.Commerce.TimeoutS)*time.Second,
		)
		switch cfg.Commerce.Shape {
		case config.ShapeSearchDetail:
			resolver = c7http.NewSearchDetailResolver(client)
		case config.ShapeSearchEmbedded:
			resolver = c7http.NewSearchEmbeddedResolver(client)
		}
	}

	var provider shipping.Provider
	if cfg.Shipping.Enable {
		timeout := time.Duration(cfg.Shipping.TimeoutS) * time.Second
		switch cfg.Shipping.Mode {
		case config.ModeEnrichment:
			provider = wshttp.NewEnrichment(cfg.Shipping.BaseURL, cfg.Shipping.APIKey, timeout, true)
		case config.ModeSoleSource:
			provider = wshttp.NewSoleSource(
				cfg.Shipping.BaseURL,
				cfg.Shipping.UserKey,
				cfg.Shipping.Password,
				cfg.Shipping.CustomerNo,
				timeout,
				true,
			)
		}
	}

	svc := lookup.New(ids, resolver, provider, cfg.SupportContact)
	api := lookupapi.New(svc, lookupapi.Options{
		APIKey:             cfg.APIKey,
		EnforceIPAllowlist: cfg.EnforceIPAllowlist,
		AllowedProxyIPs:    cfg.AllowedProxyIPs,
	}, metrics.New())

	return api.Router(), nil
}

func (a *orderAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
}

func (a *orderAPIApp) Run() error {
	return runOrderAPI(a.ctx, a.opts, a.handler)
}
