package session

import (
	"context"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/reference"
	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/staging"
	"github.com/wippyai/datapin/transcoder"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// Session is a connection to one engine. Like the engine itself it is
// meant for use from one goroutine at a time.
type Session struct {
	engine rpc.Engine
	conn   io.Closer
	stager *staging.Stager
	env    reference.Env
	local  bool
}

// New creates a session over an existing engine transport.
func New(engine rpc.Engine, opts ...Option) (*Session, error) {
	return newSession(engine, buildConfig(opts))
}

// Dial connects to the engine at target and creates a session over the
// connection. Without dial options the connection is unencrypted.
func Dial(target string, opts ...Option) (*Session, error) {
	cfg := buildConfig(opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := rpc.Dial(target, cfg.DialOptions...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEngine, errors.KindDisconnected, err, "dial "+target)
	}
	s, err := newSession(client, cfg)
	if err != nil {
		client.Close()
		return nil, err
	}
	s.conn = client
	Logger().Info("connected to engine",
		zap.String("target", target),
		zap.Bool("local", cfg.Local))
	return s, nil
}

func newSession(engine rpc.Engine, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger != nil {
		SetLogger(cfg.Logger)
		rpc.SetLogger(cfg.Logger)
		staging.SetLogger(cfg.Logger)
		reference.SetLogger(cfg.Logger)
	}
	if cfg.Metrics != nil {
		m, err := rpc.NewMetrics(cfg.Metrics)
		if err != nil {
			return nil, err
		}
		rpc.SetMetrics(m)
	}

	stager, err := staging.New(staging.Config{Dir: cfg.StagingDir, Local: cfg.Local})
	if err != nil {
		return nil, err
	}
	return &Session{
		engine: engine,
		stager: stager,
		local:  cfg.Local,
		env: reference.Env{
			Engine:  engine,
			Encoder: transcoder.NewEncoder(stager),
			Decoder: transcoder.NewDecoder(stager),
		},
	}, nil
}

// Local reports whether the engine shares this machine's filesystem.
func (s *Session) Local() bool { return s.local }

// Engine returns the engine transport.
func (s *Session) Engine() rpc.Engine { return s.engine }

// Close removes every file received from the engine and closes the
// connection if the session opened it.
func (s *Session) Close() error {
	err := s.stager.Close()
	if s.conn != nil {
		err = multierr.Append(err, s.conn.Close())
	}
	Logger().Debug("session closed", zap.Error(err))
	return err
}

// Lookup resolves a full element name.
func (s *Session) Lookup(ctx context.Context, name string) (wire.ElementInfo, error) {
	info, err := rpc.Invoke(ctx, rpc.CallElementByName, rpc.Lookup, func(ctx context.Context) (*wire.ElementInfo, error) {
		return s.engine.ElementByName(ctx, &wire.ElementName{Name: name})
	})
	if err != nil {
		return wire.ElementInfo{}, err
	}
	return *info, nil
}

// Datapin returns the plain datapin with the given name.
func (s *Session) Datapin(ctx context.Context, name string) (*Datapin, error) {
	info, err := s.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	if info.Reference != wire.NotReference {
		return nil, errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
			Path(name).
			Expected("datapin").
			Actual("reference").
			Build()
	}
	kind, err := transcoder.KindOf(info.Type)
	if err != nil {
		return nil, err
	}
	return &Datapin{s: s, info: info, kind: kind}, nil
}

// Reference returns the scalar reference with the given name.
func (s *Session) Reference(ctx context.Context, name string) (*reference.Reference, error) {
	info, err := s.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return reference.New(s.env, info)
}

// ReferenceArray returns the reference array with the given name.
func (s *Session) ReferenceArray(ctx context.Context, name string) (*reference.Array, error) {
	info, err := s.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return reference.NewArray(s.env, info)
}

// Release drops a file received from the engine before the session is
// closed.
func (s *Session) Release(f value.File) error {
	return s.stager.Release(f)
}
