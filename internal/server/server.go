// Package server speaks newline-delimited JSON-RPC 2.0 over a byte
// stream (normally stdin/stdout) and routes tool calls to the gateway.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/openflow-dev/wrench/internal/gateway"
)

const (
	serverName    = "wrench"
	serverVersion = "0.1.0"
)

// InitializeResult answers the initialize handshake.
type InitializeResult struct {
	ServerInfo   ServerInfo   `json:"server_info"`
	Capabilities Capabilities `json:"capabilities"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Capabilities struct {
	Tools bool `json:"tools"`
}

// ListToolsResult answers tools/list.
type ListToolsResult struct {
	Tools []gateway.ToolInfo `json:"tools"`
}

// CallParams are the tools/call request parameters.
type CallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// CallResult is the tools/call response envelope.
type CallResult struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError"`
}

type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Server struct {
	gateway *gateway.Gateway
	log     *logrus.Logger
}

func New(g *gateway.Gateway, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{gateway: g, log: log}
}

// Serve handles JSON-RPC requests on the stream until the peer
// disconnects or the context is cancelled.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.PlainObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(s.handle))

	s.log.WithField("server", serverName).Info("gateway serving")

	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	}
}

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	switch req.Method {
	case "initialize":
		return InitializeResult{
			ServerInfo:   ServerInfo{Name: serverName, Version: serverVersion},
			Capabilities: Capabilities{Tools: true},
		}, nil

	case "tools/list":
		return ListToolsResult{Tools: gateway.List()}, nil

	case "tools/call":
		if req.Params == nil {
			return nil, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeInvalidParams,
				Message: "tools/call requires parameters",
			}
		}
		var params CallParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeInvalidParams,
				Message: fmt.Sprintf("invalid tools/call parameters: %v", err),
			}
		}

		// Unknown tool names come back as IsError results, not JSON-RPC
		// errors; only malformed requests are protocol failures.
		resp := s.gateway.Dispatch(params.Name, params.Arguments)
		return CallResult{
			Content: []ContentItem{{Type: "text", Text: resp.Content}},
			IsError: resp.IsError,
		}, nil

	default:
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not supported: %s", req.Method),
		}
	}
}

// Stdio returns the process's stdin/stdout as a single stream suitable
// for Serve.
func Stdio() io.ReadWriteCloser {
	return stdioStream{in: os.Stdin, out: os.Stdout}
}

type stdioStream struct {
	in  io.ReadCloser
	out io.WriteCloser
}

func (s stdioStream) Read(p []byte) (int, error)  { return s.in.Read(p) }
func (s stdioStream) Write(p []byte) (int, error) { return s.out.Write(p) }

func (s stdioStream) Close() error {
	if err := s.in.Close(); err != nil {
		return err
	}
	return s.out.Close()
}
