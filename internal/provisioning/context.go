package provisioning

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/launcher/internal/config"
)

// Context wraps the dependencies shared by all steps of a request.
type Context struct {
	context.Context
	Logger   logr.Logger
	Status   StatusEmitter
	Timeouts *config.Timeouts
}

// NewContext creates a provisioning context. The logger is taken from ctx.
// A nil status emitter logs the events instead.
func NewContext(ctx context.Context, status StatusEmitter) *Context {
	logger := log.FromContext(ctx)
	if status == nil {
		status = LogEmitter{Logger: logger}
	}
	return &Context{
		Context:  ctx,
		Logger:   logger,
		Status:   status,
		Timeouts: config.LoadTimeouts(),
	}
}

func (c *Context) timeouts() *config.Timeouts {
	if c.Timeouts == nil {
		c.Timeouts = config.LoadTimeouts()
	}
	return c.Timeouts
}

// withTimeout derives a context bounded by d. Zero means no bound.
func (c *Context) withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(c.Context)
	}
	return context.WithTimeout(c.Context, d)
}

func (c *Context) emit(req *Request, t StatusEventType, data map[string]any) {
	if c.Status == nil {
		return
	}
	c.Status.Emit(NewStatusMessageEvent(req.Projectile.ID, t, data))
}
