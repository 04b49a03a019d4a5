package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/and161185/edu-web/internal/config"
	"github.com/and161185/edu-web/internal/crypto/sealer"
	"github.com/and161185/edu-web/internal/service"
	"github.com/and161185/edu-web/internal/store"
	"github.com/and161185/edu-web/internal/transport"
)

// keyFile holds the master key the per-origin sealing keys are derived from.
const keyFile = "session.key"

type app struct {
	cfg     *config.Config
	log     *zap.Logger
	out     io.Writer
	store   store.Store
	session service.SessionService
	profile *service.ProfileFlow
	signup  *service.SignupFlow
}

// newLogger builds a JSON logger writing to w at the named level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// newSealer loads or creates the master key and derives the key for origin.
// An unusable key file is replaced; reset reports that records sealed with it are lost.
func newSealer(stateDir, origin string, log *zap.Logger) (s *sealer.Sealer, reset bool, err error) {
	path := filepath.Join(stateDir, keyFile)
	master, err := sealer.LoadOrCreateKey(path)
	if err != nil {
		log.Warn("session key unusable, generating a new one", zap.String("path", path), zap.Error(err))
		if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			return nil, false, rerr
		}
		reset = true
		if master, err = sealer.LoadOrCreateKey(path); err != nil {
			return nil, reset, err
		}
	}
	key, err := sealer.DeriveKey(master, []byte(origin))
	if err != nil {
		return nil, reset, err
	}
	s, err = sealer.New(key)
	return s, reset, err
}

// newStore builds the per-origin file store. Without a usable key nothing is persisted.
func newStore(cfg *config.Config, origin string, log *zap.Logger) store.Store {
	if !cfg.SealSession {
		return store.NewFile(cfg.StateDir, origin, nil, log)
	}
	s, reset, err := newSealer(cfg.StateDir, origin, log)
	if err != nil {
		log.Warn("session persistence disabled", zap.Error(err))
		return store.Nop{}
	}
	st := store.NewFile(cfg.StateDir, origin, s, log)
	if reset {
		if err := st.Clear(); err != nil {
			log.Warn("clear session sealed with the old key", zap.String("path", st.Path()), zap.Error(err))
		}
	}
	return st
}

func newApp(cfg *config.Config, log *zap.Logger, out io.Writer) *app {
	origin := store.Origin(cfg.APIBaseURL)
	st := newStore(cfg, origin, log.Named("store"))

	client := transport.New(cfg.APIBaseURL, cfg.HTTPTimeout, log.Named("http"))
	sess := service.NewSessionManager(client, st, log.Named("session"))

	return &app{
		cfg:     cfg,
		log:     log,
		out:     out,
		store:   st,
		session: sess,
		profile: service.NewProfileFlow(client, sess),
		signup:  service.NewSignupFlow(client),
	}
}
