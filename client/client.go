package client

import (
	"fmt"

	"github.com/arloliu/go-sllp/catalog"
	"github.com/arloliu/go-sllp/logger"
	"github.com/arloliu/go-sllp/transport"
	"github.com/arloliu/go-sllp/wire"
)

// Client is a single-owner SLLP client. It holds the transport it was
// constructed with, a structured logger, and the entity catalog populated
// by Init.
type Client struct {
	transport   transport.Transport
	logger      logger.Logger
	catalog     *catalog.Catalog
	initialized bool

	// scratch is a reusable send-side buffer (spec.md §5 "Buffers"):
	// one MaxMessage-sized array per client instance, never shared across
	// instances and never accessed concurrently, since a Client is not
	// safe for concurrent use.
	scratch [wire.MaxMessage]byte
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger overrides the default package-level logger for this Client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New constructs a Client over the given transport. It fails only if
// transport is nil (spec.md §6: "fails only if either callback is absent").
func New(t transport.Transport, opts ...Option) (*Client, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: transport is nil", ErrParamInvalid)
	}

	c := &Client{
		transport: t,
		logger:    logger.GetLogger(),
		catalog:   catalog.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Initialized reports whether Init has completed successfully.
func (c *Client) Initialized() bool { return c.initialized }

// Close clears the initialized flag, so Initialized reports false. The
// command methods do not check that flag and are not disabled by Close. The
// underlying transport's lifecycle belongs to the caller (spec.md §1 scope) —
// Close does not touch it.
func (c *Client) Close() error {
	c.initialized = false
	return nil
}

// Version returns the negotiated (or, for legacy servers, assumed) server
// version. It is the zero Version until Init has run.
func (c *Client) Version() catalog.Version { return c.catalog.Version() }

// Vars returns a defensive copy of the variable catalog.
func (c *Client) Vars() []catalog.Variable { return c.catalog.Vars() }

// Groups returns a defensive copy of the group catalog.
func (c *Client) Groups() []catalog.Group { return c.catalog.Groups() }

// Curves returns a defensive copy of the curve catalog.
func (c *Client) Curves() []catalog.Curve { return c.catalog.Curves() }

// Funcs returns a defensive copy of the function catalog.
func (c *Client) Funcs() []catalog.Function { return c.catalog.Funcs() }

// VarHandle, GroupHandle, CurveHandle and FuncHandle mint Handles to the
// entity at idx in the respective catalog list, for use with the command
// methods below. Callers normally obtain indices from Vars()/Groups()/
// Curves()/Funcs() rather than hardcoding them.
func (c *Client) VarHandle(idx uint16) catalog.Handle   { return c.catalog.VarHandle(idx) }
func (c *Client) GroupHandle(idx uint16) catalog.Handle { return c.catalog.GroupHandle(idx) }
func (c *Client) CurveHandle(idx uint16) catalog.Handle { return c.catalog.CurveHandle(idx) }
func (c *Client) FuncHandle(idx uint16) catalog.Handle  { return c.catalog.FuncHandle(idx) }
