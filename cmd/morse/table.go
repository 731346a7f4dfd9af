package morse

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morse/cmd/common"
	"github.com/gigurra/morse/cmd/morse/codec"
	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type TableParams struct {
	Filter string `pos:"true" optional:"true" help:"Only show these characters, e.g. 'sos' or '0-9'."`
}

func TableCmd() *cobra.Command {
	return boa.CmdT[TableParams]{
		Use:         "table",
		Short:       "Show the Morse alphabet",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *TableParams, cmd *cobra.Command, args []string) {
			renderTable(os.Stdout, params.Filter, terminalWidth())
		},
	}.ToCobra()
}

func renderTable(stdout io.Writer, filter string, width int) {
	entries := codec.Entries()
	if filter != "" {
		wanted := expandFilter(filter)
		entries = lo.Filter(entries, func(e codec.Entry, _ int) bool {
			return wanted[e.Char]
		})
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(width)
	t.AppendHeader(table.Row{"Char", "Code", "Units"})

	for _, e := range entries {
		// One nanosecond per unit makes the duration read as a unit count.
		units := schedule.Schedule(e.Code.String(), time.Nanosecond).Duration()
		t.AppendRow(table.Row{string(e.Char), e.Code.String(), int64(units)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d codes", len(entries)), ""})
	t.Render()
}

// expandFilter turns "a-e9" into {A,B,C,D,E,9}.
func expandFilter(filter string) map[rune]bool {
	runes := []rune(strings.ToUpper(filter))
	wanted := make(map[rune]bool)
	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && runes[i+1] == '-' && runes[i] <= runes[i+2] {
			for r := runes[i]; r <= runes[i+2]; r++ {
				wanted[r] = true
			}
			i += 2
			continue
		}
		wanted[runes[i]] = true
	}
	return wanted
}
