package httpx

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryRateLimiterEnforcesWindow(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	for i := 0; i < 3; i++ {
		decision := rl.Allow("ip:1.2.3.4", 3, time.Minute)
		if !decision.allowed {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
	}
	decision := rl.Allow("ip:1.2.3.4", 3, time.Minute)
	if decision.allowed {
		t.Fatalf("expected fourth request to be limited")
	}
	if other := rl.Allow("ip:5.6.7.8", 3, time.Minute); !other.allowed {
		t.Fatalf("unrelated key must not be limited")
	}
}

func TestMemoryRateLimiterSweepDropsExpiredEntries(t *testing.T) {
	rl := NewMemoryRateLimiter().(*memoryRateLimiter)
	defer rl.Close()

	rl.Allow("ip:1.2.3.4", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	rl.cleanup(time.Now())

	rl.mu.Lock()
	remaining := len(rl.entries)
	rl.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected expired entries to be swept, %d left", remaining)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "", wantErr: true},
		{header: "abc.def.ghi", wantErr: true},
		{header: "Basic dXNlcjpwYXNz", wantErr: true},
		{header: "Bearer", wantErr: true},
	}
	for _, tc := range cases {
		got, err := bearerToken(tc.header)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("bearerToken(%q): expected error", tc.header)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("bearerToken(%q) = %q, %v", tc.header, got, err)
		}
	}
}

func TestRateLimitKeyIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	if got := rateLimitKeyIP(req); got != "ip:10.1.2.3" {
		t.Fatalf("unexpected key: %q", got)
	}
}
