package requestcontext

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gaze-network/public-sale/pkg/bip322"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

const (
	DefaultCallerHeader          = "X-Caller"
	DefaultCallerSignatureHeader = "X-Caller-Signature"
	DefaultCallerTimestampHeader = "X-Caller-Timestamp"
	DefaultCallerMaxAge          = 5 * time.Minute
)

// WithCallerConfig configures caller authentication, see [WithCaller].
type WithCallerConfig struct {
	// [Optional] Header carries the caller address. Default: X-Caller
	Header string `mapstructure:"header"`

	// [Optional] SignatureHeader carries the base64 BIP-322 signature of [CallerMessage]. Default: X-Caller-Signature
	SignatureHeader string `mapstructure:"signature_header"`

	// [Optional] TimestampHeader carries the signing time in unix seconds. Default: X-Caller-Timestamp
	TimestampHeader string `mapstructure:"timestamp_header"`

	// [Optional] MaxAge is the accepted distance between the signing time and the server clock. Default: 5m
	MaxAge time.Duration `mapstructure:"max_age"`
}

func (w WithCallerConfig) withDefaults() WithCallerConfig {
	w.Header = utils.Default(w.Header, DefaultCallerHeader)
	w.SignatureHeader = utils.Default(w.SignatureHeader, DefaultCallerSignatureHeader)
	w.TimestampHeader = utils.Default(w.TimestampHeader, DefaultCallerTimestampHeader)
	w.MaxAge = utils.Default(w.MaxAge, DefaultCallerMaxAge)
	return w
}

// CallerMessage returns the message a caller signs for a request.
// uri is the request path with its query string.
func CallerMessage(method string, uri string, timestamp int64, body []byte) string {
	return fmt.Sprintf("%s %s\n%d\n%s", strings.ToUpper(method), uri, timestamp, hex.EncodeToString(chainhash.HashB(body)))
}

type callerKey struct{}

// WithCaller authenticates the caller of a request. The caller header must come with a BIP-322
// signature of [CallerMessage] and a signing time within MaxAge of the server clock. A signed
// request is accepted once, so a client sending the same request twice must change the timestamp.
//
// An absent caller header leaves the caller empty.
func WithCaller(conf WithCallerConfig, params *chaincfg.Params) Option {
	conf = conf.withDefaults()
	seen := newReplayCache()
	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		rawCaller := strings.TrimSpace(c.Get(conf.Header))
		if rawCaller == "" {
			return ctx, nil
		}
		address, err := btcutil.DecodeAddress(rawCaller, params)
		if err != nil {
			return nil, requestcontextError{err: err, status: http.StatusBadRequest, message: "invalid caller address"}
		}

		timestamp, err := strconv.ParseInt(c.Get(conf.TimestampHeader), 10, 64)
		if err != nil {
			return nil, requestcontextError{err: err, status: http.StatusUnauthorized, message: "invalid caller timestamp"}
		}
		now := time.Now()
		signedAt := time.Unix(timestamp, 0)
		if signedAt.Before(now.Add(-conf.MaxAge)) || signedAt.After(now.Add(conf.MaxAge)) {
			return nil, requestcontextError{status: http.StatusUnauthorized, message: "caller signature expired"}
		}

		signature, err := base64.StdEncoding.DecodeString(c.Get(conf.SignatureHeader))
		if err != nil {
			return nil, requestcontextError{err: err, status: http.StatusUnauthorized, message: "invalid caller signature"}
		}
		caller := address.EncodeAddress()
		message := CallerMessage(c.Method(), c.OriginalURL(), timestamp, c.Body())
		if !bip322.VerifyMessage(address, signature, message) {
			return nil, requestcontextError{status: http.StatusUnauthorized, message: "invalid caller signature"}
		}
		if !seen.add(chainhash.HashH([]byte(caller+"\n"+message)), signedAt.Add(conf.MaxAge), now) {
			return nil, requestcontextError{status: http.StatusUnauthorized, message: "caller signature already used"}
		}

		ctx = context.WithValue(ctx, callerKey{}, caller)
		ctx = logger.WithContext(ctx, "caller", caller)
		return ctx, nil
	}
}

// GetCaller get the authenticated caller address from context. If not found, return empty string
//
// Warning: Request context should be setup before using this function
func GetCaller(ctx context.Context) string {
	if caller, ok := ctx.Value(callerKey{}).(string); ok {
		return caller
	}
	return ""
}
