package svcctx

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/jackzampolin/citydir/internal/home"
	"github.com/jackzampolin/citydir/internal/metrics"
	"github.com/jackzampolin/citydir/internal/providers"
)

func TestWithServicesRoundTrip(t *testing.T) {
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New: %v", err)
	}
	svc := &Services{
		Registry: providers.NewRegistry(),
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Home:     h,
		Metrics:  metrics.NewRecorder(),
	}

	ctx := WithServices(context.Background(), svc)

	if got := ServicesFrom(ctx); got != svc {
		t.Errorf("ServicesFrom = %p, want %p", got, svc)
	}
	if got := RegistryFrom(ctx); got != svc.Registry {
		t.Errorf("RegistryFrom = %p, want %p", got, svc.Registry)
	}
	if got := LoggerFrom(ctx); got != svc.Logger {
		t.Errorf("LoggerFrom = %p, want %p", got, svc.Logger)
	}
	if got := HomeFrom(ctx); got != svc.Home {
		t.Errorf("HomeFrom = %p, want %p", got, svc.Home)
	}
	if got := MetricsFrom(ctx); got != svc.Metrics {
		t.Errorf("MetricsFrom = %p, want %p", got, svc.Metrics)
	}
	if got := ConfigFrom(ctx); got != nil {
		t.Errorf("ConfigFrom with no manager = %p, want nil", got)
	}
}

func TestAccessorsWithoutServices(t *testing.T) {
	ctx := context.Background()

	if ServicesFrom(ctx) != nil {
		t.Error("ServicesFrom on bare context should be nil")
	}
	if ConfigFrom(ctx) != nil || RegistryFrom(ctx) != nil || LoggerFrom(ctx) != nil ||
		HomeFrom(ctx) != nil || MetricsFrom(ctx) != nil {
		t.Error("accessors on bare context should all be nil")
	}
}
