package requestcontext

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type clientIPKey struct{}

// WithClientIPConfig is applied to the fiber app, see [WithClientIPConfig.Apply].
type WithClientIPConfig struct {
	// [Optional] ProxyHeader is a header set by the edge proxy with the client IP. (e.g. X-Real-IP, CF-Connecting-IP)
	ProxyHeader string `mapstructure:"proxy_header"`

	// [Optional] TrustedProxies are the IPs or CIDR ranges allowed to set ProxyHeader.
	// When empty, the header is trusted from any peer.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Apply sets the proxy options on a fiber config, c.IP() honors them afterwards.
func (w WithClientIPConfig) Apply(conf fiber.Config) fiber.Config {
	conf.ProxyHeader = w.ProxyHeader
	if len(w.TrustedProxies) > 0 {
		conf.EnableTrustedProxyCheck = true
		conf.TrustedProxies = w.TrustedProxies
	}
	return conf
}

// WithClientIP stores the client IP resolved by fiber in the request context.
func WithClientIP() Option {
	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		return context.WithValue(ctx, clientIPKey{}, c.IP()), nil
	}
}

// GetClientIP get clientIP from context. If not found, return empty string
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}
