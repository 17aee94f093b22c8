package youtrack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type restClient struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

// NewRESTClient builds a client without validating cfg. Prefer NewClient.
func NewRESTClient(cfg Config) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &restClient{
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + "/api",
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *restClient) authenticateRequest(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")
}

// getJSON performs one GET and decodes the body into out. It does not retry.
func (c *restClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("YouTrack request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Body:       strings.TrimSpace(string(body)),
		}
		log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("YouTrack request rejected")
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode YouTrack response for %s: %w", path, err)
	}
	return nil
}

func (c *restClient) FetchIssues(ctx context.Context, q Query) ([]Issue, error) {
	params := url.Values{}
	params.Set("fields", issueFields)
	params.Set("$top", strconv.Itoa(q.EffectiveLimit()))
	if query := q.String(); query != "" {
		params.Set("query", query)
	}

	log.Info().Msg("Requesting issues from YouTrack")
	log.Debug().Str("query", q.String()).Int("top", q.EffectiveLimit()).Msg("YouTrack search details")

	var items []IssueDTO
	if err := c.getJSON(ctx, "/issues", params, &items); err != nil {
		return nil, err
	}
	return MapIssues(items), nil
}

func (c *restClient) GetProjects(ctx context.Context) ([]Project, error) {
	params := url.Values{}
	params.Set("fields", projectFields)
	params.Set("$top", strconv.Itoa(MaxLimit))

	var items []ProjectDTO
	if err := c.getJSON(ctx, "/admin/projects", params, &items); err != nil {
		return nil, err
	}
	projects := make([]Project, 0, len(items))
	for _, p := range items {
		projects = append(projects, Project(p))
	}
	return projects, nil
}

func (c *restClient) GetUsers(ctx context.Context) ([]User, error) {
	params := url.Values{}
	params.Set("fields", userFields)

	var items []UserDTO
	if err := c.getJSON(ctx, "/users", params, &items); err != nil {
		return nil, err
	}
	users := make([]User, 0, len(items))
	for _, u := range items {
		users = append(users, mapUser(u))
	}
	return users, nil
}

func (c *restClient) GetProjectCustomFields(ctx context.Context, projectID string) ([]ProjectCustomField, error) {
	params := url.Values{}
	params.Set("fields", customFieldFields)

	var items []ProjectCustomFieldDTO
	path := "/admin/projects/" + url.PathEscape(projectID) + "/customFields"
	if err := c.getJSON(ctx, path, params, &items); err != nil {
		return nil, err
	}
	fields := make([]ProjectCustomField, 0, len(items))
	for _, f := range items {
		fields = append(fields, mapProjectCustomField(f))
	}
	return fields, nil
}

func (c *restClient) DiscoverSprints(ctx context.Context) ([]string, error) {
	projects, err := c.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	return DiscoverSprints(ctx, c, projects)
}
