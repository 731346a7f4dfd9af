package morse

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morse/cmd/common"
	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/gigurra/morse/cmd/morse/tone"
	"github.com/spf13/cobra"
)

type PlayParams struct {
	Morse  []string `pos:"true" optional:"true" help:"Morse to play. If none provided, plays each stdin line."`
	WPM    int      `short:"w" help:"Character speed in words per minute (0 = config)." default:"0"`
	FWPM   int      `help:"Farnsworth effective speed in words per minute (0 = config)." default:"0"`
	Driver string   `optional:"true" help:"Audio driver: speaker, beep or bell (empty = config)."`
	Wav    string   `optional:"true" help:"Write a WAV file instead of playing."`
}

func PlayCmd() *cobra.Command {
	return boa.CmdT[PlayParams]{
		Use:         "play",
		Short:       "Play Morse code as audio",
		Long:        "Play a Morse string (dots, dashes and gaps) through the audio driver, or render it to a WAV file.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *PlayParams, cmd *cobra.Command, args []string) {
			e, err := newEnv(os.Stdout, os.Stderr)
			if err != nil {
				fail("play", err)
			}
			e.setupLogging(os.Stderr)
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			if err := runPlay(ctx, e, params, os.Stdin); err != nil {
				fail("play", err)
			}
		},
	}.ToCobra()
}

func runPlay(ctx context.Context, e *env, params *PlayParams, stdin io.Reader) error {
	timing, err := e.timing(params.WPM, params.FWPM)
	if err != nil {
		return err
	}

	if params.Wav != "" {
		var morse []string
		if err := eachInput(params.Morse, stdin, func(m string) error {
			morse = append(morse, m)
			return nil
		}); err != nil {
			return err
		}
		// Line breaks read as word gaps.
		tl := schedule.ScheduleTiming(strings.Join(morse, "\n"), timing)
		slog.Debug("rendering wav", "file", params.Wav, "duration", tl.Duration())
		return tone.WriteWAVFile(params.Wav, tl, e.toneOptions())
	}

	driver, err := e.driver(params.Driver)
	if err != nil {
		return err
	}
	player := tone.NewPlayer(driver)
	return eachInput(params.Morse, stdin, func(m string) error {
		tl := schedule.ScheduleTiming(m, timing)
		if tl.Empty() {
			slog.Debug("nothing to play", "input", m)
			return nil
		}
		return e.play(ctx, player, tl)
	})
}
