package middleware

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

func tracing(name string, order *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name+"-before")
			next.ServeHTTP(w, r)
			*order = append(*order, name+"-after")
		})
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(order *[]string) Middleware
		want  []string
	}{
		{
			name: "outermost first",
			build: func(order *[]string) Middleware {
				return Chain(tracing("apikey", order), tracing("ratelimit", order))
			},
			want: []string{"apikey-before", "ratelimit-before", "handler", "ratelimit-after", "apikey-after"},
		},
		{
			name: "nil entries skipped",
			build: func(order *[]string) Middleware {
				return Chain(nil, tracing("apikey", order), nil)
			},
			want: []string{"apikey-before", "handler", "apikey-after"},
		},
		{
			name:  "empty",
			build: func(*[]string) Middleware { return Chain() },
			want:  []string{"handler"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var order []string
			h := tt.build(&order)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, "handler")
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			if !slices.Equal(order, tt.want) {
				t.Errorf("order = %v, want %v", order, tt.want)
			}
		})
	}
}
