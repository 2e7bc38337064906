package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newBenchChecker mirrors the component set the runtime registers.
func newBenchChecker() *Checker {
	checker := New(0)
	checker.RegisterCheck(ComponentIRC, BoolCheck(func() bool { return true }, "irc connection down"))
	checker.RegisterCheck(ComponentProvider, BoolCheck(func() bool { return true }, "provider unhealthy"))
	checker.RegisterCheck(ComponentStore, passing())
	return checker
}

func BenchmarkCheckReadiness(b *testing.B) {
	checker := newBenchChecker()
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = checker.CheckReadiness(ctx)
	}
}

func BenchmarkCheckReadiness_Empty(b *testing.B) {
	checker := New(0)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = checker.CheckReadiness(ctx)
	}
}

func BenchmarkCheckReadiness_Failing(b *testing.B) {
	checker := New(0)
	checker.RegisterCheck(ComponentIRC, failing("not connected"))
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = checker.CheckReadiness(ctx)
	}
}

func BenchmarkLivenessHandler(b *testing.B) {
	handler := New(0).LivenessHandler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		handler(httptest.NewRecorder(), req)
	}
}

func BenchmarkReadinessHandler(b *testing.B) {
	handler := newBenchChecker().ReadinessHandler()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		handler(httptest.NewRecorder(), req)
	}
}

func BenchmarkCheckReadiness_Parallel(b *testing.B) {
	checker := newBenchChecker()
	ctx := context.Background()

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = checker.CheckReadiness(ctx)
		}
	})
}
