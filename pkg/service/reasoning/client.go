package reasoning

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/safe"
)

const defaultTimeout = 30 * time.Second

// maxErrorBodySize caps how much of an error body is read for the detail
// message
const maxErrorBodySize = 4 * 1024

// Client calls the remote reasoning endpoint. The call is best-effort by
// design: callers treat any returned error as a signal to fall back to
// the local response generator. Timeouts are enforced here on the HTTP
// transport, not in the assistant logic.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

var _ interfaces.ReasoningClient = &Client{}

type Option func(*Client)

// WithToken sets the bearer credential. The endpoint tolerates absent
// credentials, so an empty token just omits the header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient overrides the HTTP client, mainly for tests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, goerr.New("reasoning endpoint is required")
	}

	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Query sends the message with its assembled context and history, and
// normalizes the heterogeneous response shapes into a ReasoningReply.
func (c *Client) Query(ctx context.Context, message string, petContext *model.AssistantContext, history []model.ArchivedMessage) (*interfaces.ReasoningReply, error) {
	if history == nil {
		history = []model.ArchivedMessage{}
	}

	body, err := json.Marshal(&queryRequest{
		Message:             message,
		PetContext:          petContext,
		ConversationHistory: history,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal reasoning request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create reasoning request", goerr.V("endpoint", c.endpoint))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call reasoning service", goerr.V("endpoint", c.endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, goerr.Wrap(&StatusError{
			StatusCode: resp.StatusCode,
			Detail:     strings.TrimSpace(string(detail)),
		}, "reasoning service request failed", goerr.V("status", resp.StatusCode))
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, goerr.Wrap(err, "failed to decode reasoning response")
	}

	text := decoded.replyText()
	if text == "" {
		return nil, goerr.New("reasoning response has no reply text")
	}

	return &interfaces.ReasoningReply{
		Message: text,
		Actions: decoded.actions(),
	}, nil
}
