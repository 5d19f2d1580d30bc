package fetch

import (
	"context"
	"prospects/internal/components/telemetry"
	"prospects/lib/restyutil"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type TransportOptions struct {
	// Timeout defaults to 30 seconds.
	Timeout time.Duration
	// DisableCloudflareBypass leaves the default round tripper in place, tests use it
	// when talking to httptest servers.
	DisableCloudflareBypass bool
	// Dump receives every request/response exchange when set.
	Dump restyutil.InstrumentOutput
}

// RestyTransport fetches documents with a resty client. It never retries.
type RestyTransport struct {
	http *resty.Client
}

func NewRestyTransport(opts TransportOptions, tel telemetry.API) RestyTransport {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := resty.New()
	if !opts.DisableCloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)
	client.SetRetryCount(0)

	telemetry.InstrumentResty(client, telemetry.NewScopedAPI("transport", tel))
	restyutil.InstrumentClient(client, tracer, opts.Dump)

	return RestyTransport{http: client}
}

func (t RestyTransport) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	res, err := t.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &TransportError{URL: url, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}
