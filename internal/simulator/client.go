// Client for the external driving-simulator RPC endpoint.
//
// The simulator owns world state, physics, and actor lifecycle; this package
// only speaks its wire protocol: newline-delimited JSON request/response
// pairs over a single TCP connection. Calls are synchronous and serialized.
package simulator

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"
)

// Client is a connection to a running simulator server.
type Client struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder

	mu     sync.Mutex
	nextID uint64
}

type request struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// RemoteError is an error reported by the simulator for a specific call.
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("simulator: %s: %s", e.Method, e.Message)
}

// Connect dials the simulator and returns a ready client. The timeout only
// bounds the initial dial; established calls block until the server answers.
func Connect(host string, port int, timeout time.Duration) (*Client, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return &Client{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}, nil
}

// call performs one synchronous RPC round trip. result may be nil when the
// caller does not need the payload.
func (c *Client) call(method string, params, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	req := request{ID: c.nextID, Method: method, Params: params}
	if err := c.enc.Encode(req); err != nil {
		return fmt.Errorf("send %s: %w", method, err)
	}

	var resp response
	if err := c.dec.Decode(&resp); err != nil {
		return fmt.Errorf("recv %s: %w", method, err)
	}
	if resp.Error != "" {
		return &RemoteError{Method: method, Message: resp.Error}
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

// ServerVersion reports the simulator server version string.
func (c *Client) ServerVersion() (string, error) {
	var out struct {
		Version string `json:"version"`
	}
	if err := c.call("get_version", nil, &out); err != nil {
		return "", err
	}
	return out.Version, nil
}

// LoadWorld asks the server to load the named map and returns a handle to
// the resulting world.
func (c *Client) LoadWorld(name string) (*World, error) {
	var out struct {
		MapName string `json:"map_name"`
	}
	params := map[string]string{"map_name": name}
	if err := c.call("load_world", params, &out); err != nil {
		return nil, err
	}
	return &World{c: c, mapName: out.MapName}, nil
}

// World returns a handle to the currently loaded world without reloading it.
func (c *Client) World() (*World, error) {
	var out struct {
		MapName string `json:"map_name"`
	}
	if err := c.call("get_world", nil, &out); err != nil {
		return nil, err
	}
	return &World{c: c, mapName: out.MapName}, nil
}

// Close tears down the connection. Actor handles are invalid afterwards.
func (c *Client) Close() error {
	return c.conn.Close()
}
