package morse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/fsnotify/fsnotify"
	"github.com/gigurra/morse/cmd/common"
	"github.com/gigurra/morse/cmd/morse/codec"
	"github.com/spf13/cobra"
)

type WatchParams struct {
	File   string `pos:"true" help:"File to convert whenever it changes."`
	Decode bool   `short:"d" help:"Decode the file as Morse instead of encoding it." default:"false"`
}

func WatchCmd() *cobra.Command {
	return boa.CmdT[WatchParams]{
		Use:         "watch",
		Short:       "Convert a file every time it is saved",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *WatchParams, cmd *cobra.Command, args []string) {
			e, err := newEnv(os.Stdout, os.Stderr)
			if err != nil {
				fail("watch", err)
			}
			e.setupLogging(os.Stderr)
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			if err := runWatch(ctx, e.stdout, params); err != nil {
				fail("watch", err)
			}
		},
	}.ToCobra()
}

func runWatch(ctx context.Context, stdout io.Writer, params *WatchParams) error {
	path, err := filepath.Abs(params.File)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	convertFile(stdout, path, params.Decode)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			convertFile(stdout, path, params.Decode)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

func convertFile(stdout io.Writer, path string, decode bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read watched file", "file", path, "error", err)
		return
	}
	fmt.Fprintln(stdout, convertText(string(data), decode))
	fmt.Fprintln(stdout, strings.Repeat("─", 40))
}

func convertText(text string, decode bool) string {
	if decode {
		return codec.Decode(text)
	}
	return codec.Encode(text)
}
