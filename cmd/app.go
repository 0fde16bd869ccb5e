package cmd

import (
	"fmt"

	"github.com/nibzard/todoapp/internal/console"
	"github.com/nibzard/todoapp/internal/logging"
	"github.com/nibzard/todoapp/internal/session"
	"github.com/nibzard/todoapp/internal/todo"
)

// newSession builds a session from the config: an optional seed, a console
// fanned out to echo and the transcript, and the quit and tip settings.
// The returned func closes the transcript.
func (c *cli) newSession(echo console.LogWriter) (*session.Session, func(), error) {
	store := todo.New()
	if c.cfg.SeedFile != "" {
		n, err := c.loadSeed(store, c.cfg.SeedFile)
		if err != nil {
			return nil, nil, err
		}
		c.logger.Debug("seed loaded", "file", c.cfg.SeedFile, "tasks", n)
	}

	sinks := []console.LogWriter{echo}
	closeFn := func() {}
	if c.cfg.TranscriptEnabled() {
		transcript, err := logging.NewSessionLogger(c.cfg.LogDir, c.cfg.ProjectRoot)
		if err != nil {
			c.logger.Warn("transcript disabled", "err", err)
		} else {
			c.logger.Debug("transcript", "path", transcript.LogPath)
			sinks = append(sinks, console.NewIOStreamLogWriter(transcript.Writer(), transcript.SessionID))
			closeFn = func() {
				if err := transcript.Close(); err != nil {
					c.logger.Warn("closing transcript", "err", err)
				}
			}
		}
	}

	cons := console.New(
		console.WithMaxLines(c.cfg.ConsoleMaxLines),
		console.WithSink(console.NewMultiLogWriter(sinks...)),
	)
	sess := session.New(store, cons,
		session.WithConfirmQuit(c.cfg.ConfirmQuit),
		session.WithTips(c.cfg.ShowTips),
	)
	return sess, closeFn, nil
}

// loadSeed validates the seed at path and replays it into store.
func (c *cli) loadSeed(store *todo.Store, path string) (int, error) {
	seed, err := todo.LoadSeed(path)
	if err != nil {
		return 0, fmt.Errorf("loading seed: %w", err)
	}
	result := seed.Validate(todo.ValidationOptions{SchemaPath: c.cfg.SeedSchema})
	for _, warning := range result.Warnings {
		c.logger.Warn(warning, "file", path)
	}
	if !result.Valid {
		return 0, fmt.Errorf("invalid seed %s: %w", path, result.Err())
	}
	n, err := seed.Apply(store)
	if err != nil {
		return n, fmt.Errorf("applying seed %s: %w", path, err)
	}
	return n, nil
}
