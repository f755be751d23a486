package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/OpenTraceLab/OpenTraceVCD/pkg/vcd"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <vcd-file>",
	Short: "Per-signal change counts and time span of a VCD file",
	Long: `Stream the body of a VCD file once, counting value changes per signal,
and report the counts together with the covered timestamp range.

Examples:
  vcd stats trace.vcd`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// signalStats accumulates counts for one identifier code.
type signalStats struct {
	name    string
	varType vcd.VarType
	size    uint32
	changes int
}

func runStats(cmd *cobra.Command, args []string) error {
	filename := args[0]

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	parser := vcd.NewParser(file)
	header, err := parser.ParseHeader()
	if err != nil {
		return fmt.Errorf("failed to parse header: %w", err)
	}

	signals := make(map[vcd.IDCode]*signalStats)
	collectSignals(&header.Scope, "", signals)

	var (
		timestamps          int
		firstTime, lastTime uint64
		haveTime            bool
	)

	record := func(code vcd.IDCode) {
		if s, ok := signals[code]; ok {
			s.changes++
			return
		}
		// Change record for an undeclared code: keep counting under the
		// raw code so the mismatch is visible in the output.
		signals[code] = &signalStats{name: "<undeclared " + string(code) + ">", changes: 1}
	}

	for {
		command, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}

		switch c := command.(type) {
		case vcd.Timestamp:
			if !haveTime {
				firstTime, haveTime = c.Time, true
			}
			lastTime = c.Time
			timestamps++
		case vcd.ChangeScalar:
			record(c.Code)
		case vcd.ChangeVector:
			record(c.Code)
		case vcd.ChangeReal:
			record(c.Code)
		case vcd.ChangeString:
			record(c.Code)
		default:
			// Begin/End markers and any stray header commands carry no
			// per-signal information.
		}
	}

	ordered := make([]*signalStats, 0, len(signals))
	for _, s := range signals {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].name < ordered[j].name })

	fmt.Printf("File: %s\n", filename)
	if header.Timescale != nil {
		fmt.Printf("Timescale: %s\n", header.Timescale)
	}
	if haveTime {
		fmt.Printf("Time span: #%d .. #%d (%d timestamps)\n", firstTime, lastTime, timestamps)
	} else {
		fmt.Printf("Time span: none (%d timestamps)\n", timestamps)
	}
	fmt.Println()
	fmt.Printf("%-40s %-10s %5s %8s\n", "SIGNAL", "TYPE", "BITS", "CHANGES")
	for _, s := range ordered {
		typeName := ""
		if s.size > 0 {
			typeName = s.varType.String()
		}
		fmt.Printf("%-40s %-10s %5d %8d\n", s.name, typeName, s.size, s.changes)
	}
	return nil
}

// collectSignals maps every declared identifier code to its dotted
// hierarchical name. Later declarations of the same code win, matching
// the last-declaration-wins behavior of waveform viewers.
func collectSignals(scope *vcd.Scope, prefix string, out map[vcd.IDCode]*signalStats) {
	name := scope.Identifier
	if prefix != "" {
		name = prefix + "." + scope.Identifier
	}
	for _, item := range scope.Children {
		switch c := item.(type) {
		case *vcd.Scope:
			collectSignals(c, name, out)
		case *vcd.Var:
			out[c.Code] = &signalStats{
				name:    name + "." + c.Reference,
				varType: c.Type,
				size:    c.Size,
			}
		}
	}
}
