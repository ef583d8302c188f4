package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/leengari/shardmerge/internal/engine"
	"github.com/leengari/shardmerge/internal/executor"
)

type Request struct {
	Query string `json:"query"`
}

// EngineFactory builds one engine per connection
type EngineFactory func() *engine.Engine

// Start starts the TCP server and blocks until the listener fails
func Start(port int, newEngine EngineFactory) {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("Failed to bind to port", "port", port, "error", err)
		return
	}
	defer listener.Close()

	slog.Info("Running on port", "port", port)
	Serve(listener, newEngine)
}

// Serve accepts connections on listener until it is closed
func Serve(listener net.Listener, newEngine EngineFactory) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			slog.Error("Failed to accept connection", "error", err)
			continue
		}
		go handleConnection(conn, newEngine())
	}
}

func handleConnection(conn net.Conn, eng *engine.Engine) {
	defer conn.Close()

	// Use Decoder instead of Scanner for network streams
	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		// Decode directly from the connection
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return // Connection closed gracefully
			}
			slog.Error("decode error", "error", err)

			// Send error back to client
			errResult := &executor.Result{
				Error: fmt.Sprintf("Invalid request format: %v", err),
			}
			_ = encoder.Encode(errResult)
			return
		}

		if req.Query == "exit" || req.Query == "\\q" {
			return
		}

		result, err := eng.Execute(context.Background(), req.Query)
		if err != nil {
			// Return error as a Result object
			errResult := &executor.Result{
				Error: err.Error(),
			}
			if err := encoder.Encode(errResult); err != nil {
				slog.Error("encode error", "error", err)
				return
			}
			continue
		}

		if err := encoder.Encode(result); err != nil {
			slog.Error("encode error", "error", err)
			return
		}
	}
}
