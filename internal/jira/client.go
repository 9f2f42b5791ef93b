/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/config"
	"github.com/rs/zerolog"
)

type Client struct {
	baseURL string
	email   string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.JiraBaseURL,
		email:   cfg.JiraEmail,
		token:   cfg.JiraAPIToken,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		log:     log,
	}
}

func (c *Client) apiURL(path string, q url.Values) string {
	base := strings.TrimRight(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") { path = "/" + path }
	u := base + path
	if len(q) > 0 { u = u + "?" + q.Encode() }
	return u
}

// doJSON performs one request and decodes the body into whatever JSON value
// the endpoint returns (object or array). No retries: a failed request aborts
// the extraction path it belongs to.
func (c *Client) doJSON(ctx context.Context, method, u string, body any) (any, error) {
	if c.baseURL == "" { return nil, errors.New("jira: empty baseURL") }
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil { return nil, err }
		r = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil { return nil, err }
	req.Header.Set("Accept", "application/json")
	if body != nil { req.Header.Set("Content-Type", "application/json") }
	req.SetBasicAuth(c.email, c.token)
	resp, err := c.http.Do(req)
	if err != nil { return nil, err }
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return nil, err }
	return out, nil
}

// SprintIssues lists issues in a sprint via the Agile API, optionally
// restricted by a JQL clause.
func (c *Client) SprintIssues(ctx context.Context, sprintID string, startAt, max int, jql, fields string) (any, error) {
	if sprintID == "" { return nil, errors.New("jira: empty sprint id") }
	q := url.Values{}
	if strings.TrimSpace(jql) != "" { q.Set("jql", jql) }
	if fields != "" { q.Set("fields", fields) }
	q.Set("startAt", fmt.Sprint(startAt))
	if max > 0 { q.Set("maxResults", fmt.Sprint(max)) }
	u := c.apiURL("/rest/agile/1.0/sprint/"+url.PathEscape(sprintID)+"/issue", q)
	return c.doJSON(ctx, http.MethodGet, u, nil)
}

// Sprint fetches sprint details (name, state) for stamping onto issues.
func (c *Client) Sprint(ctx context.Context, sprintID string) (any, error) {
	if sprintID == "" { return nil, errors.New("jira: empty sprint id") }
	u := c.apiURL("/rest/agile/1.0/sprint/"+url.PathEscape(sprintID), nil)
	return c.doJSON(ctx, http.MethodGet, u, nil)
}

// Search runs a JQL search with explicit field and expand selectors.
func (c *Client) Search(ctx context.Context, jql, fields, expand string, startAt, max int) (any, error) {
	if jql == "" { return nil, errors.New("jira: empty jql") }
	q := url.Values{}
	q.Set("jql", jql)
	if fields != "" { q.Set("fields", fields) }
	if expand != "" { q.Set("expand", expand) }
	q.Set("startAt", fmt.Sprint(startAt))
	if max > 0 { q.Set("maxResults", fmt.Sprint(max)) }
	u := c.apiURL("/rest/api/3/search", q)
	return c.doJSON(ctx, http.MethodGet, u, nil)
}

// UpdatedWorklogs lists ids of worklogs updated since the given epoch
// milliseconds. Availability depends on the server version; callers fall back
// to a JQL search when it fails.
func (c *Client) UpdatedWorklogs(ctx context.Context, since int64, startAt, max int) (any, error) {
	q := url.Values{}
	q.Set("since", fmt.Sprint(since))
	q.Set("startAt", fmt.Sprint(startAt))
	if max > 0 { q.Set("maxResults", fmt.Sprint(max)) }
	u := c.apiURL("/rest/api/3/worklog/updated", q)
	return c.doJSON(ctx, http.MethodGet, u, nil)
}

// WorklogList batch-fetches full worklog bodies. The upstream enforces a hard
// ceiling on ids per call; callers chunk accordingly.
func (c *Client) WorklogList(ctx context.Context, ids []int64) (any, error) {
	if len(ids) == 0 { return []any{}, nil }
	u := c.apiURL("/rest/api/3/worklog/list", nil)
	return c.doJSON(ctx, http.MethodPost, u, map[string]any{"ids": ids})
}

// Issue fetches a single issue with the given field selector.
func (c *Client) Issue(ctx context.Context, idOrKey, fields string) (any, error) {
	if idOrKey == "" { return nil, errors.New("jira: empty issue id") }
	q := url.Values{}
	if fields != "" { q.Set("fields", fields) }
	u := c.apiURL("/rest/api/3/issue/"+url.PathEscape(idOrKey), q)
	return c.doJSON(ctx, http.MethodGet, u, nil)
}
