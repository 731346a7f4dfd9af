package morse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morse/cmd/common"
	"github.com/gigurra/morse/cmd/morse/codec"
	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/gigurra/morse/cmd/morse/tone"
	"github.com/spf13/cobra"
)

type EncodeParams struct {
	Text   []string `pos:"true" optional:"true" help:"Text to encode. If none provided, reads lines from stdin."`
	Beep   bool     `short:"b" help:"Play the encoded Morse as audio." default:"false"`
	Copy   bool     `short:"c" help:"Copy the encoded output to the clipboard." default:"false"`
	Wav    string   `optional:"true" help:"Also render the Morse audio into this WAV file."`
	WPM    int      `short:"w" help:"Character speed in words per minute (0 = config)." default:"0"`
	FWPM   int      `help:"Farnsworth effective speed in words per minute (0 = config)." default:"0"`
	Driver string   `optional:"true" help:"Audio driver: speaker, beep or bell (empty = config)."`
	Report bool     `short:"r" help:"Log every dropped character to stderr." default:"false"`
}

type DecodeParams struct {
	Morse  []string `pos:"true" optional:"true" help:"Morse to decode. If none provided, reads lines from stdin."`
	Copy   bool     `short:"c" help:"Copy the decoded output to the clipboard." default:"false"`
	Report bool     `short:"r" help:"Log every skipped code to stderr." default:"false"`
}

func EncodeCmd() *cobra.Command {
	return boa.CmdT[EncodeParams]{
		Use:   "encode",
		Short: "Encode text to Morse code",
		Long: `Convert text to Morse code. Codes are separated by one space and words by three.
Characters without a Morse code are dropped. Use -b to hear the result.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *EncodeParams, cmd *cobra.Command, args []string) {
			e, err := newEnv(os.Stdout, os.Stderr)
			if err != nil {
				fail("encode", err)
			}
			e.setupLogging(os.Stderr)
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			if err := runEncode(ctx, e, params, os.Stdin); err != nil {
				fail("encode", err)
			}
		},
	}.ToCobra()
}

func DecodeCmd() *cobra.Command {
	return boa.CmdT[DecodeParams]{
		Use:   "decode",
		Short: "Decode Morse code to text",
		Long: `Convert Morse code back to text. Three or more spaces, a line break or "/" separate words.
Unknown codes are skipped so partial input still decodes.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *DecodeParams, cmd *cobra.Command, args []string) {
			e, err := newEnv(os.Stdout, os.Stderr)
			if err != nil {
				fail("decode", err)
			}
			e.setupLogging(os.Stderr)
			if err := runDecode(e, params, os.Stdin); err != nil {
				fail("decode", err)
			}
		},
	}.ToCobra()
}

// eachInput converts the joined args, or every stdin line when there are none.
func eachInput(args []string, stdin io.Reader, fn func(string) error) error {
	if len(args) > 0 {
		return fn(strings.Join(args, " "))
	}
	if stdinIsTerminal() {
		fmt.Fprintln(os.Stderr, "(reading from stdin, Ctrl+D to finish)")
	}
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func runEncode(ctx context.Context, e *env, params *EncodeParams, stdin io.Reader) error {
	var (
		player  *tone.Player
		timing  schedule.Timing
		outputs []string
		all     []string
	)
	if params.Beep || params.Wav != "" {
		var err error
		if timing, err = e.timing(params.WPM, params.FWPM); err != nil {
			return err
		}
	}
	if params.Beep {
		driver, err := e.driver(params.Driver)
		if err != nil {
			return err
		}
		player = tone.NewPlayer(driver)
	}

	err := eachInput(params.Text, stdin, func(text string) error {
		encoded, issues := codec.EncodeReport(text)
		if params.Report {
			report(issues)
		}
		fmt.Fprintln(e.stdout, encoded)
		outputs = append(outputs, encoded)
		if encoded != "" {
			all = append(all, encoded)
		}
		if player != nil {
			return e.play(ctx, player, schedule.ScheduleTiming(encoded, timing))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if params.Wav != "" {
		tl := schedule.ScheduleTiming(strings.Join(all, codec.WordGap), timing)
		if err := tone.WriteWAVFile(params.Wav, tl, e.toneOptions()); err != nil {
			return err
		}
	}
	if params.Copy {
		return copyOutput(outputs)
	}
	return nil
}

func runDecode(e *env, params *DecodeParams, stdin io.Reader) error {
	var outputs []string
	err := eachInput(params.Morse, stdin, func(morse string) error {
		decoded, issues := codec.DecodeReport(morse)
		if params.Report {
			report(issues)
		}
		fmt.Fprintln(e.stdout, decoded)
		outputs = append(outputs, decoded)
		return nil
	})
	if err != nil {
		return err
	}
	if params.Copy {
		return copyOutput(outputs)
	}
	return nil
}

func copyOutput(lines []string) error {
	if err := clipboardWriteAll(strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}
