// Package limiter blocks remote addresses that used up their attempts.
package limiter

import (
	"math"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/Murilinho145SG/respond"
	"github.com/Murilinho145SG/respond/httpio"
	"github.com/Murilinho145SG/respond/log"
	"github.com/Murilinho145SG/respond/status"
)

type Timeout struct {
	Attempts uint
	Time     time.Time
}

// Limiter counts attempts per remote host. An address that reached
// MaxAttempts is answered with 429 until Window has passed since its last
// request.
type Limiter struct {
	MaxAttempts uint
	Window      time.Duration

	mu       sync.Mutex
	attempts map[string]*Timeout
	now      func() time.Time
}

func New(maxAttempts uint, window time.Duration) *Limiter {
	return &Limiter{
		MaxAttempts: maxAttempts,
		Window:      window,
		attempts:    make(map[string]*Timeout),
		now:         time.Now,
	}
}

func host(req *httpio.Request) string {
	h, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}

	return h
}

// blocked reports whether req must be refused, refreshing the block when it
// is. Admitted requests are counted when count is set.
func (l *Limiter) blocked(req *httpio.Request, count bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ip := host(req)
	if t := l.attempts[ip]; t != nil && t.Attempts >= l.MaxAttempts {
		if l.now().Sub(t.Time) < l.Window {
			t.Time = l.now()
			return true
		}

		delete(l.attempts, ip)
	}

	if count {
		l.addAttempt(ip)
	}
	return false
}

func (l *Limiter) refuse(res *httpio.Response) {
	retry := int(math.Ceil(l.Window.Seconds()))
	res.SetHeader("Retry-After", strconv.Itoa(retry))
	respond.Text(res, status.TooManyRequests, "too many requests\n")
}

func (l *Limiter) wrap(handler respond.Handler, count bool) respond.Handler {
	return func(res *httpio.Response, req *httpio.Request) {
		if l.blocked(req, count) {
			log.Debug(req.RemoteAddr, "is rate limited")
			l.refuse(res)
			return
		}

		handler(res, req)
	}
}

// Wrap refuses blocked addresses and otherwise calls handler. Attempts are
// only counted through AddAttempt.
func (l *Limiter) Wrap(handler respond.Handler) respond.Handler {
	return l.wrap(handler, false)
}

// Limit is Wrap with every admitted request counted as an attempt.
func (l *Limiter) Limit(handler respond.Handler) respond.Handler {
	return l.wrap(handler, true)
}

func (l *Limiter) AddAttempt(req *httpio.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.addAttempt(host(req))
}

func (l *Limiter) addAttempt(ip string) {
	if l.attempts[ip] == nil {
		l.attempts[ip] = &Timeout{Attempts: 1, Time: l.now()}
		return
	}

	l.attempts[ip].Attempts++
	l.attempts[ip].Time = l.now()
}

func (l *Limiter) RemoveAttempt(req *httpio.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, host(req))
}
