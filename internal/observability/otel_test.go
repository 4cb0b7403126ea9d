package observability

import (
	"context"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	h := ParseHeaders("x-api-key=abc, bad, =empty,tenant=payona")
	if len(h) != 2 || h["x-api-key"] != "abc" || h["tenant"] != "payona" {
		t.Fatalf("ParseHeaders: unexpected %v", h)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("ParseHeaders(empty): want nil")
	}
}

func TestClampRatio(t *testing.T) {
	if clampRatio(-1) != 0 || clampRatio(2) != 1 || clampRatio(0.25) != 0.25 {
		t.Fatalf("clampRatio out of range")
	}
}

func TestInitOTelDisabledReturnsNoopShutdown(t *testing.T) {
	shutdown := InitOTel(context.Background(), nil, OtelConfig{Enabled: false})
	if shutdown == nil {
		t.Fatalf("shutdown should never be nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
