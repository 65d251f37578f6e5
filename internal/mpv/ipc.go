// Package mpv drives an mpv instance over its JSON IPC socket
// (--input-ipc-server). See https://mpv.io/manual/stable/#json-ipc.
package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	hserrors "github.com/tessro/holdseek/internal/errors"
)

// ErrPropertyUnavailable is returned when mpv reports a property as
// unavailable, e.g. duration of a live stream or time-pos while idle.
var ErrPropertyUnavailable = errors.New("property unavailable")

// Request is one JSON IPC command.
type Request struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id,omitempty"`
	Async     bool  `json:"async,omitempty"`
}

// Response is one line read from the socket: either a command reply or an
// unsolicited event.
type Response struct {
	RequestID int    `json:"request_id,omitempty"`
	Error     string `json:"error"`
	Data      any    `json:"data,omitempty"`
	Event     string `json:"event,omitempty"`
	Name      string `json:"name,omitempty"`
}

// Client is a connection to one mpv IPC socket. The connection is opened
// lazily and re-opened once after a write or read failure. Commands are
// serialized.
type Client struct {
	path   string
	logger hclog.Logger

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	nextID int
}

// NewClient creates a client for the socket at path. No connection is made
// until the first command.
func NewClient(path string, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{path: path, logger: logger}
}

// Close closes the connection if one is open.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Client) closeLocked() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	if err != nil {
		return fmt.Errorf("closing mpv ipc socket: %w", err)
	}
	return nil
}

func (c *Client) connectLocked(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	if c.path == "" {
		return fmt.Errorf("mpv ipc socket path is empty: %w", hserrors.ErrPlayerUnavailable)
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.path)
	if err != nil {
		return fmt.Errorf("connect to mpv ipc socket %s: %w", c.path, errors.Join(hserrors.ErrPlayerUnavailable, err))
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.logger.Debug("connected to mpv", "socket", c.path)
	return nil
}

// Command sends args as an IPC command and returns the reply data.
func (c *Client) Command(ctx context.Context, args ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	data, err := json.Marshal(Request{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("encode mpv command: %w", err)
	}
	data = append(data, '\n')

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if err := c.connectLocked(ctx); err != nil {
			lastErr = err
			continue
		}

		deadline, ok := ctx.Deadline()
		if !ok {
			deadline = time.Time{}
		}
		_ = c.conn.SetDeadline(deadline)

		if _, err := c.conn.Write(data); err != nil {
			lastErr = fmt.Errorf("write to mpv ipc socket: %w", err)
			_ = c.closeLocked()
			continue
		}

		resp, err := c.readReply(id)
		if err != nil {
			lastErr = err
			_ = c.closeLocked()
			if ctx.Err() != nil || isTimeout(err) {
				lastErr = fmt.Errorf("mpv command %v: %w", args, errors.Join(hserrors.ErrTimeout, err))
				break
			}
			continue
		}
		switch resp.Error {
		case "success":
			return resp.Data, nil
		case "property unavailable":
			return nil, fmt.Errorf("%v: %w", args, ErrPropertyUnavailable)
		default:
			return nil, fmt.Errorf("mpv command %v: %s", args, resp.Error)
		}
	}
	return nil, lastErr
}

// readReply reads lines until the reply to id arrives. Events and replies
// to abandoned requests are skipped.
func (c *Client) readReply(id int) (*Response, error) {
	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("read from mpv ipc socket: %w", err)
		}
		var resp Response
		if err := json.Unmarshal(line, &resp); err != nil {
			return nil, fmt.Errorf("decode mpv ipc response: %w", err)
		}
		if resp.Event != "" {
			c.logger.Trace("mpv event", "event", resp.Event, "name", resp.Name)
			continue
		}
		if resp.RequestID != id {
			continue
		}
		return &resp, nil
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// GetProperty returns the value of an mpv property.
func (c *Client) GetProperty(ctx context.Context, name string) (any, error) {
	return c.Command(ctx, "get_property", name)
}

// SetProperty sets an mpv property.
func (c *Client) SetProperty(ctx context.Context, name string, value any) error {
	_, err := c.Command(ctx, "set_property", name, value)
	return err
}
