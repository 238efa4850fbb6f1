package slack

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/m-mizutani/actnotify/pkg/domain/interfaces"
	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/m-mizutani/actnotify/pkg/domain/types"
	"github.com/m-mizutani/actnotify/pkg/utils/ctxutil"
	"github.com/m-mizutani/goerr"
)

const DefaultAPIURL = "https://slack.com/api"

// Client delivers a payload either to the Slack Web API with a bot token or
// to an incoming webhook. Every Send makes exactly one request.
type Client struct {
	apiURL     string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	client     *resty.Client
}

var _ interfaces.Slack = &Client{}

type Option func(*Client)

// WithAPIURL replaces the Web API base URL, e.g. for a proxy or a test server.
// An empty apiURL keeps DefaultAPIURL.
func WithAPIURL(apiURL string) Option {
	return func(x *Client) {
		if apiURL != "" {
			x.apiURL = strings.TrimSuffix(apiURL, "/")
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(x *Client) {
		x.userAgent = ua
	}
}

// WithTimeout bounds the single request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(x *Client) {
		x.timeout = d
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

func New(options ...Option) *Client {
	x := &Client{
		apiURL:    DefaultAPIURL,
		userAgent: types.AppName + "/" + types.AppVersion,
	}
	for _, opt := range options {
		opt(x)
	}

	if x.httpClient != nil {
		x.client = resty.NewWithClient(x.httpClient)
	} else {
		x.client = resty.New()
	}
	if x.timeout > 0 {
		x.client.SetTimeout(x.timeout)
	}
	x.client.SetLogger(&restyLogger{})

	return x
}

// apiResponse is the common part of chat.postMessage and chat.update responses.
type apiResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Warning string `json:"warning"`
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

func (x *Client) Send(ctx context.Context, cred model.Credentials, payload *model.Payload) (types.MessageID, error) {
	switch {
	case cred.WebhookURL != "":
		if payload.TS != "" {
			return "", types.ErrInvalidConfig.Wrap(
				goerr.New("incoming webhook can not update a message").With("message_id", payload.TS))
		}
		return "", x.postWebhook(ctx, cred.WebhookURL, payload)

	case cred.BotToken != "":
		return x.postAPI(ctx, cred.BotToken, payload)

	default:
		return "", types.ErrInvalidConfig.Wrap(goerr.New("missing bot token or webhook URL"))
	}
}

func (x *Client) endpoint(payload *model.Payload) string {
	if payload.TS != "" {
		return x.apiURL + "/chat.update"
	}
	return x.apiURL + "/chat.postMessage"
}

func authorization(token string) string {
	if strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}

func (x *Client) postAPI(ctx context.Context, token string, payload *model.Payload) (types.MessageID, error) {
	endpoint := x.endpoint(payload)
	header := map[string]string{
		"Authorization": authorization(token),
		"User-Agent":    x.userAgent,
	}
	ctxutil.Logger(ctx).Debug("request to Slack API", "url", endpoint, "header", header)

	var result apiResponse
	resp, err := x.client.R().
		SetContext(ctx).
		SetHeaders(header).
		SetBody(payload).
		ForceContentType("application/json").
		SetResult(&result).
		SetError(&result).
		Post(endpoint)
	if err != nil {
		return "", goerr.Wrap(err, "failed to request Slack API").With("url", endpoint)
	}

	ctxutil.Logger(ctx).Debug("response from Slack API",
		"status", resp.StatusCode(),
		"body", resp.String(),
	)

	if result.Warning != "" {
		ctxutil.Logger(ctx).Warn("warning from Slack API", "warning", result.Warning)
	}

	if !resp.IsSuccess() {
		if result.Error != "" {
			return "", &types.RemoteError{Code: result.Error, StatusCode: resp.StatusCode()}
		}
		return "", goerr.New("unexpected response from Slack API").
			With("url", endpoint).
			With("status", resp.StatusCode()).
			With("body", resp.String())
	}

	if !result.OK {
		code := result.Error
		if code == "" {
			code = "unknown"
		}
		return "", &types.RemoteError{Code: code, StatusCode: resp.StatusCode()}
	}

	return types.MessageID(result.TS), nil
}

func (x *Client) postWebhook(ctx context.Context, webhookURL string, payload *model.Payload) error {
	ctxutil.Logger(ctx).Debug("request to Slack webhook", "header", map[string]string{
		"User-Agent": x.userAgent,
	})

	resp, err := x.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", x.userAgent).
		SetBody(payload).
		Post(webhookURL)
	if err != nil {
		return goerr.Wrap(redactURL(err), "failed to request Slack webhook")
	}

	body := resp.String()
	ctxutil.Logger(ctx).Debug("response from Slack webhook",
		"status", resp.StatusCode(),
		"body", body,
	)

	if resp.IsSuccess() && body == "ok" {
		return nil
	}

	// Webhooks answer errors with a bare code such as "invalid_payload".
	code := body
	if code == "" || strings.ContainsAny(code, " \n<") {
		code = "unknown"
	}
	return &types.RemoteError{Code: code, StatusCode: resp.StatusCode()}
}

// redactURL strips the path and query of the URL embedded in a transport
// error. The path of a webhook URL is its secret.
func redactURL(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	redacted := "[REDACTED]"
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil && u.Host != "" {
		redacted = u.Scheme + "://" + u.Host + "/[REDACTED]"
	}
	urlErr.URL = redacted
	return err
}
