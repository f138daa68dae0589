package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/huangsam/repopulse/schema"
)

// DefaultGraphQLEndpoint is GitHub's GraphQL API endpoint.
const DefaultGraphQLEndpoint = "https://api.github.com/graphql"

// TrackerKind selects between the issue and pull-request connections of
// the GraphQL schema; both share the pagination contract.
type TrackerKind string

// Tracker kinds supported.
const (
	IssueKind       TrackerKind = "issues"
	PullRequestKind TrackerKind = "pullRequests"
)

// GitHubTracker implements IssueTracker against GitHub's GraphQL API.
// Pagination is fail-soft: any non-success response yields an empty
// page with HasMore false, so a flaky token or rate limit truncates the
// fetched set instead of failing the run. Callers should be aware this
// can under-report.
type GitHubTracker struct {
	Owner    string
	Repo     string
	Auth     string
	Kind     TrackerKind
	Endpoint string
	PageSize int
	Client   *http.Client
}

var _ IssueTracker = &GitHubTracker{} // Compile-time check

// NewGitHubTracker creates a tracker client for the given repository.
func NewGitHubTracker(owner, repo, auth string, kind TrackerKind) *GitHubTracker {
	return &GitHubTracker{
		Owner:    owner,
		Repo:     repo,
		Auth:     auth,
		Kind:     kind,
		Endpoint: DefaultGraphQLEndpoint,
		PageSize: DefaultPageSize,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// graphQLResponse mirrors the subset of the response the client reads.
type graphQLResponse struct {
	Data struct {
		Repository struct {
			Issues       *connection `json:"issues"`
			PullRequests *connection `json:"pullRequests"`
		} `json:"repository"`
	} `json:"data"`
}

type connection struct {
	TotalCount int `json:"totalCount"`
	PageInfo   struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
	Nodes []struct {
		Number    int64      `json:"number"`
		CreatedAt time.Time  `json:"createdAt"`
		ClosedAt  *time.Time `json:"closedAt"`
	} `json:"nodes"`
}

// TotalCount implements the IssueTracker interface.
func (t *GitHubTracker) TotalCount(ctx context.Context) (int, error) {
	query := fmt.Sprintf(
		`query { repository(owner: %q, name: %q) { %s { totalCount } } }`,
		t.Owner, t.Repo, t.Kind,
	)
	resp, err := t.post(ctx, query)
	if err != nil {
		return 0, err
	}
	conn := t.pick(resp)
	if conn == nil {
		return 0, fmt.Errorf("tracker response missing %s connection", t.Kind)
	}
	return conn.TotalCount, nil
}

// Page implements the IssueTracker interface. An empty cursor fetches
// the first page.
func (t *GitHubTracker) Page(ctx context.Context, cursor string) (IssuePage, error) {
	after := "null"
	if cursor != "" {
		after = strconv.Quote(cursor)
	}
	query := fmt.Sprintf(
		`query { repository(owner: %q, name: %q) { %s(first: %d, after: %s) {
			pageInfo { hasNextPage endCursor }
			nodes { number createdAt closedAt }
		} } }`,
		t.Owner, t.Repo, t.Kind, t.PageSize, after,
	)

	resp, err := t.post(ctx, query)
	if err != nil {
		// Fail-soft: truncate pagination instead of erroring.
		return IssuePage{HasMore: false}, nil
	}
	conn := t.pick(resp)
	if conn == nil {
		return IssuePage{HasMore: false}, nil
	}

	facts := make([]schema.IssueFact, 0, len(conn.Nodes))
	for _, node := range conn.Nodes {
		facts = append(facts, schema.IssueFact{
			IssueID:   strconv.FormatInt(node.Number, 10),
			CreatedAt: node.CreatedAt.UTC(),
			ClosedAt:  utcOrNil(node.ClosedAt),
		})
	}
	return IssuePage{
		Facts:      facts,
		NextCursor: conn.PageInfo.EndCursor,
		HasMore:    conn.PageInfo.HasNextPage,
	}, nil
}

// pick returns the connection matching the tracker kind.
func (t *GitHubTracker) pick(resp *graphQLResponse) *connection {
	if t.Kind == PullRequestKind {
		return resp.Data.Repository.PullRequests
	}
	return resp.Data.Repository.Issues
}

// post sends one GraphQL query and decodes the response.
func (t *GitHubTracker) post(ctx context.Context, query string) (*graphQLResponse, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("cannot encode tracker query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot build tracker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.Auth != "" {
		req.Header.Set("Authorization", "Bearer "+t.Auth)
	}

	httpResp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracker request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tracker responded with status %d", httpResp.StatusCode)
	}

	var resp graphQLResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("cannot decode tracker response: %w", err)
	}
	return &resp, nil
}

// utcOrNil normalizes an optional timestamp to UTC.
func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
