package session

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// State 是单个会话客户端的生命周期状态。
// Unknown 只出现在恢复尝试之前，之后只会在 Anonymous 和 Authenticated 之间切换
type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Client 持有某一类主体的当前会话（净化后的主体 + 令牌），
// 三类主体各用独立的存储键，互不共享，可以同时登录
type Client struct {
	mu       sync.Mutex
	store    Store
	tokenKey string
	dataKey  string

	state     State
	token     string
	principal json.RawMessage
}

func NewClient(store Store, tokenKey, dataKey string) *Client {
	return &Client{
		store:    store,
		tokenKey: tokenKey,
		dataKey:  dataKey,
		state:    StateUnknown,
	}
}

// 三类会话客户端的存储键沿用原有前端的约定
func NewAdminClient(store Store) *Client {
	return NewClient(store, "auth_token", "user_data")
}

func NewEmployeeClient(store Store) *Client {
	return NewClient(store, "employee_auth_token", "employee_data")
}

func NewCustomerClient(store Store) *Client {
	return NewClient(store, "customer_auth_token", "customer_data")
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Restore 在"挂载"时从存储中恢复会话，对应 Unknown → Anonymous|Authenticated。
// 这里不判断令牌是否过期：过期只会在后续请求收到 401 时被发现
func (c *Client) Restore() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token, hasToken, err := c.store.Get(c.tokenKey)
	if err != nil {
		return c.state, err
	}
	data, hasData, err := c.store.Get(c.dataKey)
	if err != nil {
		return c.state, err
	}

	if !hasToken || !hasData {
		c.state = StateAnonymous
		c.token = ""
		c.principal = nil
		return c.state, nil
	}

	c.state = StateAuthenticated
	c.token = token
	c.principal = json.RawMessage(data)
	return c.state, nil
}

// Establish 在登录或注册成功后写入会话，对应 Anonymous → Authenticated
func (c *Client) Establish(principal any, token string) error {
	data, err := json.Marshal(principal)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Set(c.tokenKey, token); err != nil {
		return err
	}
	if err := c.store.Set(c.dataKey, string(data)); err != nil {
		return err
	}

	c.state = StateAuthenticated
	c.token = token
	c.principal = data
	return nil
}

// Clear 在登出或令牌被服务端拒绝时清空会话，对应 Authenticated → Anonymous
func (c *Client) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(c.tokenKey); err != nil {
		return err
	}
	if err := c.store.Delete(c.dataKey); err != nil {
		return err
	}

	c.state = StateAnonymous
	c.token = ""
	c.principal = nil
	return nil
}

func (c *Client) Token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.state == StateAuthenticated
}

// Principal 把保存的主体反序列化到 v 中，没有会话时返回 false
func (c *Client) Principal(v any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated || c.principal == nil {
		return false, nil
	}
	if err := json.Unmarshal(c.principal, v); err != nil {
		return false, err
	}
	return true, nil
}

// HTTPClient 返回带显式超时的 http.Client，所有请求自动附带 bearer 令牌
func (c *Client) HTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &Transport{Client: c},
	}
}

// Transport 给每个请求附上 Authorization 头。收到 401 说明令牌已经失效
// （过期或被拒），此时清空本地会话，调用方应引导用户重新登录
type Transport struct {
	Client *Client
	Base   http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := t.Client.Token(); ok {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.Client.State() == StateAuthenticated {
		if err := t.Client.Clear(); err != nil {
			slog.Error("清除本地会话失败", "error", err)
		}
	}

	return resp, nil
}
