package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gastrack-dev/gastrack/internal/cli/auth"
	"github.com/gastrack-dev/gastrack/internal/nav"
)

// RequestHook runs before every outbound request.
type RequestHook func(*http.Request)

// ResponseHook runs after every response, success or failure, before the
// result is delivered to the caller.
type ResponseHook func(*http.Response)

// Client represents an HTTP client for the GasTrack API. Cross-cutting
// behavior (bearer attachment, global 401 handling) is expressed as an
// ordered pipeline of hooks applied uniformly to every call.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	requestHooks  []RequestHook
	responseHooks []ResponseHook
	validate      *validator.Validate
}

// New creates a new API client for the given base URL
// (e.g. http://localhost:8000/api/v1).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		validate: validator.New(),
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnRequest appends a hook to the request phase of the pipeline.
func (c *Client) OnRequest(h RequestHook) {
	c.requestHooks = append(c.requestHooks, h)
}

// OnResponse appends a hook to the response phase of the pipeline.
func (c *Client) OnResponse(h ResponseHook) {
	c.responseHooks = append(c.responseHooks, h)
}

// UseBearerAuth installs the request hook that attaches the stored bearer
// token to every outgoing call. Anonymous requests (login, register) proceed
// untouched when no token is stored.
func (c *Client) UseBearerAuth(tokens auth.TokenStore) {
	c.OnRequest(func(req *http.Request) {
		token, err := tokens.LoadToken()
		if err != nil || token == "" {
			return
		}
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	})
}

// UseUnauthorizedLogout installs the response hook that terminates the
// session on any 401: the stored token is cleared, onLogout callbacks run
// (the session resets itself through one of these), and the client is
// redirected to /login with history replacement. The hook fires before the
// originating caller observes the failure.
func (c *Client) UseUnauthorizedLogout(tokens auth.TokenStore, navigator nav.Navigator, onLogout ...func()) {
	c.OnResponse(func(resp *http.Response) {
		if resp.StatusCode != http.StatusUnauthorized {
			return
		}
		_ = tokens.DeleteToken()
		for _, f := range onLogout {
			f()
		}
		if navigator != nil {
			navigator.Replace(nav.RouteLogin)
		}
	})
}

// get performs a GET and decodes the JSON response into out.
func (c *Client) get(path string, query url.Values, out any) error {
	return c.do(http.MethodGet, path, query, "", nil, out)
}

// postJSON performs a POST with a JSON body.
func (c *Client) postJSON(path string, body, out any) error {
	return c.sendJSON(http.MethodPost, path, body, out)
}

// putJSON performs a PUT with a JSON body.
func (c *Client) putJSON(path string, body, out any) error {
	return c.sendJSON(http.MethodPut, path, body, out)
}

// put performs a bodyless PUT.
func (c *Client) put(path string, out any) error {
	return c.do(http.MethodPut, path, nil, "", nil, out)
}

// delete performs a DELETE.
func (c *Client) delete(path string) error {
	return c.do(http.MethodDelete, path, nil, "", nil, nil)
}

func (c *Client) sendJSON(method, path string, body, out any) error {
	if body != nil {
		if err := c.validate.Struct(body); err != nil {
			return fmt.Errorf("invalid request payload: %w", err)
		}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	return c.do(method, path, nil, "application/json", bytes.NewReader(jsonData), out)
}

// postForm performs a POST with a form-encoded body.
func (c *Client) postForm(path string, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(http.MethodPost, path, nil, "application/x-www-form-urlencoded", body, out)
}

// postMultipart performs a POST uploading a single file part named "file".
func (c *Client) postMultipart(path, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload: %w", err)
	}

	return c.do(http.MethodPost, path, nil, writer.FormDataContentType(), &buf, out)
}

// do builds the request, runs the hook pipeline around the call, maps non-2xx
// responses to *Error and decodes successful bodies into out.
func (c *Client) do(method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for _, hook := range c.requestHooks {
		hook(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// Response hooks run before the caller sees the result, so the global
	// 401 logout completes ahead of any call-site error handling.
	for _, hook := range c.responseHooks {
		hook(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return newError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
