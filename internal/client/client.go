package client

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"reolink-cli/pkg/models"
)

// APIPath is where every Reolink command is posted.
const APIPath = "/cgi-bin/api.cgi"

var ErrNotLoggedIn = errors.New("not logged in")

type ReolinkClient struct {
	HTTP   *resty.Client
	Config ClientConfig
	token  string
}

type ClientConfig struct {
	BaseURL  string // e.g. http://192.168.1.20
	Username string
	Password string
	Token    string // reuse a saved token instead of logging in
	Insecure bool   // skip TLS verification, cameras ship self-signed certs
}

func New(cfg ClientConfig) *ReolinkClient {
	r := resty.New()
	r.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")

	if cfg.Insecure {
		r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &ReolinkClient{
		HTTP:   r,
		Config: cfg,
		token:  cfg.Token,
	}
}

// Token returns the session token in use, empty before Login.
func (c *ReolinkClient) Token() string {
	return c.token
}

// Login authenticates with the camera and keeps the token for subsequent
// commands. The token is returned so it can be persisted.
func (c *ReolinkClient) Login() (string, error) {
	body := []models.Command{
		models.NewCommand("Login", 0, models.LoginParam{
			User: models.LoginUser{
				UserName: c.Config.Username,
				Password: c.Config.Password,
			},
		}),
	}

	var result []models.Response
	resp, err := c.HTTP.R().
		SetQueryParam("cmd", "Login").
		SetQueryParam("token", "null").
		SetBody(body).
		SetResult(&result).
		ForceContentType("application/json").
		Post(APIPath)

	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", fmt.Errorf("login failed: %s: %s", resp.Status(), resp.String())
	}

	var login models.LoginValue
	if err := models.FirstValue(result, &login); err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	if login.Token.Name == "" {
		return "", errors.New("login successful but no token returned")
	}

	c.token = login.Token.Name
	logrus.WithFields(logrus.Fields{
		"host":      c.Config.BaseURL,
		"leaseTime": login.Token.LeaseTime,
	}).Debug("logged in")

	return c.token, nil
}

// ExecuteCommand posts body to the camera and returns the decoded response
// array. Batched bodies (multi) are sent without the cmd query parameter.
// Device-side errors are left inside the returned elements.
func (c *ReolinkClient) ExecuteCommand(command string, body []models.Command, multi bool) ([]models.Response, error) {
	if c.token == "" {
		return nil, ErrNotLoggedIn
	}

	req := c.HTTP.R().
		SetQueryParam("token", c.token).
		SetBody(body)
	if !multi {
		req.SetQueryParam("cmd", command)
	}

	var result []models.Response
	resp, err := req.
		SetResult(&result).
		ForceContentType("application/json").
		Post(APIPath)

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, &HTTPError{Command: command, StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	logrus.WithFields(logrus.Fields{
		"command":   command,
		"multi":     multi,
		"responses": len(result),
	}).Debug("command executed")

	return result, nil
}

// HTTPError is a non-2xx reply from the camera's web server.
type HTTPError struct {
	Command    string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s failed: HTTP %d: %s", e.Command, e.StatusCode, e.Body)
}

// IsAuthError reports whether err means the token must be renewed.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNotLoggedIn) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 401 || httpErr.StatusCode == 403
	}
	var devErr *models.ResponseError
	if errors.As(err, &devErr) {
		return devErr.RspCode == models.RspCodeLoginRequired
	}
	return false
}
