// Package download performs HTTP downloads with an identifying user agent
// and optional SHA-256 verification.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"licensetools/logger"
	"licensetools/version"
)

// Download describes one file to fetch. When SHA256 is non-empty, the
// downloaded bytes must match it exactly before the file reaches Filename.
type Download struct {
	URL      string
	Filename string
	SHA256   string
}

// ChecksumError reports a digest mismatch for a verified download.
type ChecksumError struct {
	URL      string
	Got      string
	Expected string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: got %s, expected %s", e.URL, e.Got, e.Expected)
}

// TransportError reports a non-success HTTP status.
type TransportError struct {
	URL    string
	Status string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("download failed for %s: %s", e.URL, e.Status)
}

// Client wraps an HTTP client with the identifying user agent.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient returns a client identifying itself as licensetools.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		userAgent:  version.UserAgent,
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{URL: url, Status: resp.Status}
	}
	return io.ReadAll(resp.Body)
}

func (d Download) verify(data []byte) error {
	if d.SHA256 == "" {
		return nil
	}
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	if digest != d.SHA256 {
		return &ChecksumError{URL: d.URL, Got: digest, Expected: d.SHA256}
	}
	return nil
}

// FetchFile downloads d into directory. The target file is only written
// after the checksum has been verified.
func (c *Client) FetchFile(ctx context.Context, d Download, directory string) error {
	target := filepath.Join(directory, d.Filename)
	logger.Infof("Downloading %s to %s ...", d.URL, target)

	data, err := c.get(ctx, d.URL)
	if err != nil {
		return err
	}
	if err := d.verify(data); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// FetchSequential downloads the given files with at most one request per
// second, per the crates.io data access policy. The batch halts at the
// first failure; earlier files are left in place.
func (c *Client) FetchSequential(ctx context.Context, downloads []Download, directory string) error {
	return c.fetchSequential(ctx, downloads, directory, rate.NewLimiter(rate.Every(time.Second), 1))
}

func (c *Client) fetchSequential(ctx context.Context, downloads []Download, directory string, limiter *rate.Limiter) error {
	for _, d := range downloads {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if err := c.FetchFile(ctx, d, directory); err != nil {
			return err
		}
	}
	return nil
}
