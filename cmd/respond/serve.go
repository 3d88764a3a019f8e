package main

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Murilinho145SG/respond"
	"github.com/Murilinho145SG/respond/config"
	"github.com/Murilinho145SG/respond/httpio"
	"github.com/Murilinho145SG/respond/log"
	"github.com/Murilinho145SG/respond/middlewares/limiter"
	"github.com/Murilinho145SG/respond/status"
)

var (
	configPath string
	flagAddr   string
	flagDebug  bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `
Usage: respond serve [options]

  Starts a server whose responses are built with the respond builder:

      $ respond serve --config=/etc/respond/config.yaml
  `,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Address to listen on (overrides the configuration)")
	serveCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagDebug {
		cfg.Log.Level = "debug"
	}

	err := log.Setup(log.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Out:        cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	router, err := newRouter(cfg)
	if err != nil {
		return err
	}

	return respond.Run(cfg.Addr, router, respond.Server{
		InitialReadSize: cfg.ReadSize,
		Timeout:         cfg.Timeout,
		RequestID:       cfg.RequestID,
		ResponseOptions: cfg.ResponseOptions(),
	})
}

func newRouter(cfg config.Config) (*respond.Router, error) {
	wrap := func(h respond.Handler) respond.Handler { return h }
	if cfg.Limiter.MaxAttempts > 0 {
		wrap = limiter.New(cfg.Limiter.MaxAttempts, cfg.Limiter.Window).Limit
	}

	router := respond.NewRouter()
	router.Route("/", wrap(index))
	router.Route("/status", wrap(statusHandler))
	router.Route("/cookie", wrap(cookieHandler))

	for _, r := range cfg.Redirects {
		if err := router.Redirect(r.Path, r.Target, r.Status); err != nil {
			return nil, err
		}
	}

	return router, nil
}

func query(req *httpio.Request) url.Values {
	_, raw, _ := strings.Cut(req.Path, "?")
	values, _ := url.ParseQuery(raw)
	return values
}

func index(res *httpio.Response, req *httpio.Request) {
	respond.Text(res, status.OK, "Hello World!\n")
}

// statusHandler answers with the code given in ?code=.
func statusHandler(res *httpio.Response, req *httpio.Request) {
	code, err := strconv.Atoi(query(req).Get("code"))
	if err != nil {
		respond.Error(res, err, status.BadRequest)
		return
	}

	if err := res.SetStatusCode(code); err != nil {
		respond.Error(res, err, status.BadRequest)
		return
	}

	text, _ := status.Text(code)
	res.SetHeader("Content-Type", "text/plain; charset=utf-8")
	res.SetContent(text + "\n")
}

// cookieHandler sets the cookie given by ?name=&value=&ttl=.
func cookieHandler(res *httpio.Response, req *httpio.Request) {
	q := query(req)
	name := q.Get("name")
	if name == "" {
		respond.Text(res, status.BadRequest, "name is required\n")
		return
	}

	ttl := 0
	if raw := q.Get("ttl"); raw != "" {
		var err error
		if ttl, err = strconv.Atoi(raw); err != nil {
			respond.Error(res, err, status.BadRequest)
			return
		}
	}

	res.SetCookie(name, q.Get("value"), ttl)
	respond.Text(res, status.OK, "cookie set\n")
}
