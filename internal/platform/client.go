package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("platform config invalid")
	ErrRequestFailed   = errors.New("platform request failed")
	ErrResponseInvalid = errors.New("platform response invalid")
)

// RemoteError 平台返回的业务拒绝
// Message 为平台给出的用户可见原因，展示时优先于本地兜底文案。
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("platform rejected request (code %d)", e.StatusCode)
	}
	return e.Message
}

// RemoteMessage 提取平台拒绝原因；非业务拒绝时返回空串
func RemoteMessage(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return strings.TrimSpace(remote.Message)
	}
	return ""
}

// Config 平台接口配置
type Config struct {
	BaseURL   string `json:"base_url"`   // 平台网关地址，如 https://api.example.com
	Token     string `json:"token"`      // 服务间调用令牌
	TimeoutMS int    `json:"timeout_ms"` // 单次请求超时（毫秒）
}

// Client 店铺平台接口客户端
// 目录、优惠券、订单的价格与库存均以平台响应为准。
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New 创建平台客户端
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrConfigInvalid
	}
	if _, err := url.Parse(base); err != nil {
		return nil, ErrConfigInvalid
	}
	timeout := 10 * time.Second
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &Client{
		baseURL:    base,
		token:      strings.TrimSpace(cfg.Token),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// envelope 平台统一响应结构
type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

// doJSON 发送 JSON 请求并解包统一响应
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if c == nil || c.httpClient == nil {
		return ErrConfigInvalid
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if env.StatusCode != 0 {
		return &RemoteError{StatusCode: env.StatusCode, Message: env.Msg}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return nil
}
