package requester

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
	"webextractor/internal/app/page"
	"webextractor/internal/usecase"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type requester struct {
	timeout   time.Duration
	userAgent string
	logger    *zap.Logger
	rt        http.RoundTripper
}

// NewRequester builds a requester. A nil rt uses http.DefaultTransport and an
// empty userAgent uses DefaultUserAgent.
func NewRequester(timeout time.Duration, userAgent string, logger *zap.Logger, rt http.RoundTripper) requester {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	logger.Debug("new requester initialize", zap.Duration("timeout", timeout))
	return requester{
		timeout:   timeout,
		userAgent: userAgent,
		logger:    logger,
		rt:        rt,
	}
}

// Get fetches url once. Connection failures come back as *TransportError,
// non-2xx responses as *ProtocolError.
func (r requester) Get(ctx context.Context, url string) (usecase.Page, error) {
	cl := &http.Client{
		Timeout:   r.timeout,
		Transport: r.rt,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.logger.Error("error by get new request", zap.String("url", url), zap.Error(err))
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", r.userAgent)
	// Set explicitly so the transport leaves the body compressed for decode.
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := cl.Do(req)
	if err != nil {
		r.logger.Debug("http.client error", zap.String("url", url), zap.Error(err))
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProtocolError{URL: url, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: eris.Wrap(err, "read body")}
	}

	body := r.decode(url, resp.Header, raw)
	p, err := page.NewPage(bytes.NewReader(body), r.logger)
	if err != nil {
		return nil, eris.Wrapf(err, "get new page %s", url)
	}
	return p, nil
}

// decode undoes gzip content-encoding and converts the declared charset to
// UTF-8. Each step falls back to its input on failure.
func (r requester) decode(url string, h http.Header, raw []byte) []byte {
	body := raw
	if strings.EqualFold(strings.TrimSpace(h.Get("Content-Encoding")), "gzip") {
		plain, err := gunzip(raw)
		if err != nil {
			r.logger.Warn("error in decompression, using raw body", zap.String("url", url), zap.Error(err))
		} else {
			body = plain
		}
	}

	cr, err := charset.NewReader(bytes.NewReader(body), h.Get("Content-Type"))
	if err != nil {
		r.logger.Debug("charset detection failed", zap.String("url", url), zap.Error(err))
		return body
	}
	utf8Body, err := io.ReadAll(cr)
	if err != nil {
		r.logger.Debug("charset conversion failed", zap.String("url", url), zap.Error(err))
		return body
	}
	return utf8Body
}

func gunzip(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, eris.Wrap(err, "gzip reader")
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, eris.Wrap(err, "gzip read")
	}
	return out, nil
}
