// Package flow talks to flowagility.com: session login, event discovery
// and page fetches. Everything it returns is handed to extract as a
// rendered page; no parsing semantics live here.
package flow

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/gocolly/colly/v2"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/config"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/extract"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client is a logged-in flowagility session. Cookies persist across
// requests on the underlying collector.
type Client struct {
	cfg config.Config
	c   *colly.Collector
}

// NewClient builds a session client from cfg. No request is made until
// Login or FetchPage.
func NewClient(cfg config.Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowedDomains(base.Hostname()),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(30 * time.Second)
	c.Limit(&colly.LimitRule{
		DomainGlob: "*",
		Delay:      cfg.RenderPollInterval,
	})

	return &Client{cfg: cfg, c: c}, nil
}

// Login authenticates the session with the configured credentials. The
// login form carries a CSRF token, so the form page is fetched first.
func (cl *Client) Login(ctx context.Context) error {
	if cl.cfg.Email == "" || cl.cfg.Password == "" {
		return fmt.Errorf("login: missing credentials (set FLOW_EMAIL / FLOW_PASS)")
	}

	loginURL := cl.cfg.BaseURL + "/user/login"
	page, err := cl.FetchPage(ctx, loginURL)
	if err != nil {
		return fmt.Errorf("login: loading form: %w", err)
	}
	token, _ := page.Doc().Find(`input[name="_csrf_token"]`).Attr("value")

	form := map[string]string{
		"user[email]":    cl.cfg.Email,
		"user[password]": cl.cfg.Password,
	}
	if token != "" {
		form["_csrf_token"] = token
	}

	var status int
	var body []byte
	c := cl.c.Clone()
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	if err := c.Post(loginURL, form); err != nil {
		return fmt.Errorf("login: posting form: %w", err)
	}
	if status >= 400 {
		return fmt.Errorf("login: rejected with status %d", status)
	}
	// A rejected sign-in comes back as a 200 that re-renders the form.
	if isLoginPage(body) {
		return fmt.Errorf("login: credentials rejected for %s", cl.cfg.Email)
	}
	log.Info("logged in", "email", cl.cfg.Email)
	return nil
}

// isLoginPage reports whether the markup still renders the sign-in form.
func isLoginPage(body []byte) bool {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return false
	}
	return doc.Find(`input[name="user[password]"]`).Length() > 0
}

// FetchPage retrieves one URL and parses it into an extract.Page,
// retrying transient failures with exponential backoff bounded by
// Config.ClickRetries.
func (cl *Client) FetchPage(ctx context.Context, pageURL string) (*extract.Page, error) {
	var body []byte
	op := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		b, err := cl.fetch(pageURL)
		if err != nil {
			log.Warn("fetch failed, retrying", "url", pageURL, "err", err)
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cl.cfg.ClickRetries)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	return extract.NewPage(bytes.NewReader(body), pageURL)
}

func (cl *Client) fetch(pageURL string) ([]byte, error) {
	var body []byte
	var fetchErr error

	c := cl.c.Clone()
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})
	if err := c.Visit(pageURL); err != nil {
		return nil, err
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	return body, nil
}

// absURL resolves href against the configured base.
func (cl *Client) absURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimRight(cl.cfg.BaseURL, "/") + "/" + strings.TrimLeft(href, "/")
}
