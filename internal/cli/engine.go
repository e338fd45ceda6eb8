package cli

import (
	"context"
	"errors"
	"os"

	"github.com/gridflow-dev/gridflow/pkg/cache"
	apperrors "github.com/gridflow-dev/gridflow/pkg/errors"
	"github.com/gridflow-dev/gridflow/pkg/layout"
	"github.com/gridflow-dev/gridflow/pkg/pipeline"
)

// runEngine executes the load/layout/route pipeline for a diagram file,
// translating the engine's structural errors into coded CLI errors.
func (c *CLI) runEngine(input string, refresh, withRoutes bool) (*pipeline.Result, error) {
	runner := pipeline.NewRunner(c.openCache(), nil, c.Logger)
	defer runner.Close()

	res, err := runner.Execute(context.Background(), pipeline.Options{
		Input:   input,
		Routes:  withRoutes,
		Refresh: refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, translateEngineError(input, err)
	}
	return res, nil
}

// openCache opens the result cache at the configured directory. A cache that
// cannot be opened disables caching rather than failing the command.
func (c *CLI) openCache() cache.Cache {
	dir := c.Config.CacheDir
	if dir == "" {
		var err error
		dir, err = DefaultCacheDir()
		if err != nil {
			c.Logger.Warn("result cache disabled", "err", err)
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("result cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// translateEngineError maps pipeline failures onto the CLI's error codes.
func translateEngineError(input string, err error) error {
	var unknown *layout.UnknownNodeError
	var cycle *layout.CycleError
	switch {
	case errors.Is(err, os.ErrNotExist):
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "diagram %s", input)
	case errors.As(err, &unknown):
		return apperrors.Wrap(apperrors.ErrCodeUnknownNode, err, "layout %s", input)
	case errors.As(err, &cycle):
		return apperrors.Wrap(apperrors.ErrCodeCycle, err, "layout %s", input)
	case errors.As(err, new(*apperrors.Error)):
		return err
	default:
		return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "load diagram %s", input)
	}
}
