package requestmeta

import "context"

type contextKey string

const clientIPKey contextKey = "client_ip"

// WithClientIP stores the request origin address so services can stamp it
// onto audit fields without depending on net/http.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
