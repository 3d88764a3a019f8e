package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Murilinho145SG/respond/httpio"
)

type renderOptions struct {
	status         int
	headers        []string
	addHeaders     []string
	cookies        []string
	cookieTTL      int
	insecure       bool
	noHTTPOnly     bool
	redirect       string
	redirectStatus int
	body           string
	join           bool
	strict         bool
}

var (
	flagsRender renderOptions

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Print an HTTP/1.1 response built from flags",
		Long: `
Usage: respond render [options]

  Builds a response and prints its wire form, Set-Cookie lines included:

      $ respond render --status 404 --header "Content-Type: text/plain" --body nope
  `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := buildResponse(flagsRender, time.Now)
			if err != nil {
				return err
			}

			_, err = res.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
)

func init() {
	f := renderCmd.Flags()
	f.IntVar(&flagsRender.status, "status", 200, "Status code")
	f.StringArrayVar(&flagsRender.headers, "header", nil, `Header to set, as "Name: value" (repeatable)`)
	f.StringArrayVar(&flagsRender.addHeaders, "add-header", nil, `Header value to append, as "Name: value" (repeatable)`)
	f.StringArrayVar(&flagsRender.cookies, "cookie", nil, `Cookie to set, as "name=value" (repeatable)`)
	f.IntVar(&flagsRender.cookieTTL, "cookie-ttl", 0, "Seconds until the cookies expire")
	f.BoolVar(&flagsRender.insecure, "insecure-cookies", false, "Do not mark cookies Secure")
	f.BoolVar(&flagsRender.noHTTPOnly, "no-http-only", false, "Do not mark cookies HttpOnly")
	f.StringVar(&flagsRender.redirect, "redirect", "", "Redirect to this URL")
	f.IntVar(&flagsRender.redirectStatus, "redirect-status", 0, "Status for --redirect (default 301)")
	f.StringVar(&flagsRender.body, "body", "", "Response body")
	f.BoolVar(&flagsRender.join, "join", false, "Join repeated header values on one line")
	f.BoolVar(&flagsRender.strict, "strict", false, "Fail on header or cookie syntax errors")
}

func splitHeader(raw string) (string, string, error) {
	name, value, found := strings.Cut(raw, ":")
	if !found {
		return "", "", fmt.Errorf("header %q: expected \"Name: value\"", raw)
	}

	return strings.TrimSpace(name), strings.TrimSpace(value), nil
}

func buildResponse(opts renderOptions, now func() time.Time) (*httpio.Response, error) {
	policy := httpio.LinePerValue
	if opts.join {
		policy = httpio.JoinValues
	}

	res := httpio.NewResponse(httpio.WithMultiValue(policy), httpio.WithClock(now))
	if err := res.SetStatusCode(opts.status); err != nil {
		return nil, err
	}

	for _, raw := range opts.headers {
		name, value, err := splitHeader(raw)
		if err != nil {
			return nil, err
		}
		res.SetHeader(name, value)
	}

	for _, raw := range opts.addHeaders {
		name, value, err := splitHeader(raw)
		if err != nil {
			return nil, err
		}
		res.AddHeader(name, value)
	}

	res.SetSecure(!opts.insecure)
	res.SetHTTPOnly(!opts.noHTTPOnly)
	for _, raw := range opts.cookies {
		name, value, found := strings.Cut(raw, "=")
		if !found {
			return nil, fmt.Errorf("cookie %q: expected \"name=value\"", raw)
		}
		res.SetCookie(name, value, opts.cookieTTL)
	}

	if opts.redirect != "" {
		if opts.redirectStatus == 0 {
			res.Redirect(opts.redirect)
		} else if err := res.RedirectWithStatus(opts.redirect, opts.redirectStatus); err != nil {
			return nil, err
		}
	}

	res.SetContent(opts.body)

	if opts.strict {
		if err := res.Validate(); err != nil {
			return nil, err
		}
	}

	return res, nil
}
