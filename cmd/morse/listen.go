package morse

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morse/cmd/common"
	"github.com/gigurra/morse/cmd/morse/codec"
	"github.com/gigurra/morse/cmd/morse/speech"
	"github.com/spf13/cobra"
)

type ListenParams struct {
	Command string `optional:"true" help:"Speech recogniser command line (empty = config speech_command)."`
	Copy    bool   `short:"c" help:"Copy the encoded output to the clipboard." default:"false"`
}

func ListenCmd() *cobra.Command {
	return boa.CmdT[ListenParams]{
		Use:   "listen",
		Short: "Capture one spoken utterance and encode it",
		Long: `Run the configured speech recogniser once, print the recognised text and its Morse encoding.
The recogniser is any command that records an utterance and prints the text on stdout.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ListenParams, cmd *cobra.Command, args []string) {
			e, err := newEnv(os.Stdout, os.Stderr)
			if err != nil {
				fail("listen", err)
			}
			e.setupLogging(os.Stderr)
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			if err := runListen(ctx, e, params); err != nil {
				fail("listen", err)
			}
		},
	}.ToCobra()
}

func runListen(ctx context.Context, e *env, params *ListenParams) error {
	line := params.Command
	if line == "" {
		line = e.cfg.SpeechCommand
	}

	text, err := speech.NewSession(speech.New(line)).Capture(ctx)
	if err != nil {
		if errors.Is(err, speech.ErrCapabilityUnavailable) {
			_ = e.notifier.Notify("morse", "Speech input is unavailable. Set speech_command in "+configPathHint()+".")
		} else if errors.Is(err, speech.ErrCaptureFailed) {
			_ = e.notifier.Notify("morse", "Speech capture failed.")
		}
		return err
	}

	encoded := codec.Encode(text)
	fmt.Fprintln(e.stdout, text)
	fmt.Fprintln(e.stdout, encoded)
	if params.Copy {
		return copyOutput([]string{encoded})
	}
	return nil
}
