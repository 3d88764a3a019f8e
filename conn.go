package respond

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Murilinho145SG/respond/httpio"
	"github.com/Murilinho145SG/respond/log"
	"github.com/Murilinho145SG/respond/status"
)

// Server defines configuration options for the HTTP server.
type Server struct {
	InitialReadSize int           // Largest request head accepted, in bytes
	Timeout         time.Duration // Deadline for the whole exchange on one connection
	RequestID       bool          // Stamp every response with an X-Request-Id header
	ResponseOptions []httpio.Option
}

// DefaultBuffer is the default buffer size for reading from connections.
var DefaultBuffer = 8192

// DefaultTimeout is used when Server.Timeout is zero.
var DefaultTimeout = 10 * time.Second

// ErrHeadTooLarge is returned when the request head does not fit the read buffer.
var ErrHeadTooLarge = errors.New("request head too large")

func serverConfig(server []Server) Server {
	var cfg Server
	if len(server) > 0 {
		cfg = server[0]
	}

	if cfg.InitialReadSize <= 0 {
		cfg.InitialReadSize = DefaultBuffer
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return cfg
}

// Run starts an HTTP server on the specified address and handles incoming connections using the provided router.
func Run(addrs string, router *Router, server ...Server) error {
	listener, err := net.Listen("tcp", addrs)
	if err != nil {
		return err
	}

	return Serve(listener, router, server...)
}

// RunTLS starts an HTTPS server on the specified address using the provided TLS certificate and key.
func RunTLS(addrs string, router *Router, certStr, key string, server ...Server) error {
	cert, err := tls.LoadX509KeyPair(certStr, key)
	if err != nil {
		return err
	}

	config := &tls.Config{
		Certificates:     []tls.Certificate{cert},
		MinVersion:       tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{tls.CurveP256, tls.X25519},
	}

	listener, err := tls.Listen("tcp", addrs, config)
	if err != nil {
		return err
	}

	return Serve(listener, router, server...)
}

// Serve accepts connections on listener until Accept fails, handling each
// connection in its own goroutine.
func Serve(listener net.Listener, router *Router, server ...Server) error {
	cfg := serverConfig(server)
	log.Info("Listening on", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}

		go handleConn(conn, router, cfg)
	}
}

// handleConn answers a single request on conn and closes it.
func handleConn(conn net.Conn, router *Router, cfg Server) {
	defer lingerClose(conn)

	conn.SetDeadline(time.Now().Add(cfg.Timeout))

	res := httpio.NewResponse(cfg.ResponseOptions...)

	req, err := parseConn(conn, cfg.InitialReadSize)
	if err != nil {
		switch {
		case errors.Is(err, ErrHeadTooLarge):
			Text(res, status.RequestHeaderFieldsTooLarge, "request head too large\n")
		case errors.Is(err, httpio.ErrInvalidRequestLine), errors.Is(err, httpio.ErrInvalidHeader), errors.Is(err, httpio.ErrInvalidContentLength):
			Error(res, err, status.BadRequest)
		default:
			log.Debug(conn.RemoteAddr().String(), "closed before sending a request:", err)
			return
		}

		writeResponse(conn, res)
		return
	}
	req.RemoteAddr = conn.RemoteAddr().String()

	logger := log.Logger().With().Str("remote", req.RemoteAddr).Str("method", req.Method).Str("path", req.Path).Logger()
	var id string
	if cfg.RequestID {
		id = uuid.NewString()
		res.SetHeader("X-Request-Id", id)
		logger = logger.With().Str("request_id", id).Logger()
	}

	handler := router.ParseRoute(req)
	if handler == nil {
		handler = NotFound
	}

	if err := runHandler(handler, res, req); err != nil {
		logger.Error().Err(err).Msg("handler panicked")
		res = internalError(cfg, id)
	} else if err := res.Validate(); err != nil {
		logger.Error().Err(err).Msg("handler built an invalid response")
		res = internalError(cfg, id)
	}

	if err := writeResponse(conn, res); err != nil {
		logger.Debug().Err(err).Msg("write failed")
		return
	}

	logger.Debug().Int("status", res.StatusCode()).Msg("served")
}

func runHandler(handler Handler, res *httpio.Response, req *httpio.Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	handler(res, req)
	return nil
}

// internalError replaces a failed response, keeping its request id.
func internalError(cfg Server, id string) *httpio.Response {
	res := httpio.NewResponse(cfg.ResponseOptions...)
	if id != "" {
		res.SetHeader("X-Request-Id", id)
	}
	Text(res, status.InternalServerError, "internal server error\n")
	return res
}

// lingerClose discards what the client is still sending before closing conn,
// otherwise unread request bytes turn the close into a reset.
func lingerClose(conn net.Conn) {
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		cw.CloseWrite()
		conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		io.Copy(io.Discard, io.LimitReader(conn, 256<<10))
	}

	conn.Close()
}

// writeResponse frames res for a connection that is closed afterwards.
func writeResponse(conn net.Conn, res *httpio.Response) error {
	if !res.Header().Has("Content-Length") {
		res.SetHeader("Content-Length", strconv.Itoa(len(res.Content())))
	}
	if !res.Header().Has("Connection") {
		res.SetHeader("Connection", "close")
	}

	_, err := res.WriteTo(conn)
	return err
}

// parseConn reads the request head from conn. The body is left on the
// connection, behind whatever was read past the head.
func parseConn(conn net.Conn, size int) (*httpio.Request, error) {
	head := make([]byte, size)
	read := 0

	for {
		n, err := conn.Read(head[read:])
		read += n

		if i := bytes.Index(head[:read], []byte("\r\n\r\n")); i >= 0 {
			req := httpio.NewRequest()
			if err := req.Parse(head[:i]); err != nil {
				return nil, err
			}

			rest := bytes.NewReader(head[i+4 : read])
			if err := req.SetBody(io.MultiReader(rest, conn)); err != nil {
				return nil, err
			}

			return req, nil
		}

		if read == size {
			return nil, ErrHeadTooLarge
		}

		if err != nil {
			return nil, err
		}
	}
}
