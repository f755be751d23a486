package cmd

import (
	"fmt"
	"os"

	"github.com/OpenTraceLab/OpenTraceVCD/pkg/vcd"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var infoFormat string

var infoCmd = &cobra.Command{
	Use:   "info <vcd-file>",
	Short: "Show the header and design hierarchy of a VCD file",
	Long: `Parse the header of a VCD file and display its date, version, comment,
timescale and the full scope/variable hierarchy.

Examples:
  vcd info trace.vcd
  vcd info --format yaml trace.vcd`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "text",
		"output format: text or yaml")
}

// headerDoc is the YAML shape of a parsed header.
type headerDoc struct {
	Date      string    `yaml:"date,omitempty"`
	Version   string    `yaml:"version,omitempty"`
	Comment   string    `yaml:"comment,omitempty"`
	Timescale string    `yaml:"timescale,omitempty"`
	Scope     *scopeDoc `yaml:"scope"`
}

type scopeDoc struct {
	Type  string    `yaml:"type"`
	Name  string    `yaml:"name"`
	Items []itemDoc `yaml:"items,omitempty"`
}

// itemDoc holds exactly one of Var or Scope, preserving declaration order.
type itemDoc struct {
	Var   *varDoc   `yaml:"var,omitempty"`
	Scope *scopeDoc `yaml:"scope,omitempty"`
}

type varDoc struct {
	Type string `yaml:"type"`
	Size uint32 `yaml:"size"`
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if verbose {
		fmt.Printf("Parsing VCD header: %s\n\n", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	header, err := vcd.NewParser(file).ParseHeader()
	if err != nil {
		return fmt.Errorf("failed to parse header: %w", err)
	}

	switch infoFormat {
	case "yaml":
		return printHeaderYAML(header)
	case "text":
		printHeaderText(filename, header)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", infoFormat)
	}
}

func printHeaderText(filename string, header *vcd.Header) {
	fmt.Printf("File:      %s\n", filename)
	if header.Date != "" {
		fmt.Printf("Date:      %s\n", header.Date)
	}
	if header.Version != "" {
		fmt.Printf("Version:   %s\n", header.Version)
	}
	if header.Comment != "" {
		fmt.Printf("Comment:   %s\n", header.Comment)
	}
	if header.Timescale != nil {
		fmt.Printf("Timescale: %s\n", header.Timescale)
	}
	// A header without a $scope leaves the root scope zero-valued.
	if header.Scope.Identifier != "" || len(header.Scope.Children) > 0 {
		fmt.Println("Hierarchy:")
		printScopeText(&header.Scope, 1)
	}
}

func printScopeText(scope *vcd.Scope, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Printf("%s%s %s\n", indent, scope.Type, scope.Identifier)
	for _, item := range scope.Children {
		switch c := item.(type) {
		case *vcd.Scope:
			printScopeText(c, depth+1)
		case *vcd.Var:
			fmt.Printf("%s  %s %d %s (code %s)\n", indent, c.Type, c.Size, c.Reference, c.Code)
		}
	}
}

func printHeaderYAML(header *vcd.Header) error {
	doc := headerDoc{
		Date:    header.Date,
		Version: header.Version,
		Comment: header.Comment,
		Scope:   scopeToDoc(&header.Scope),
	}
	if header.Timescale != nil {
		doc.Timescale = header.Timescale.String()
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func scopeToDoc(scope *vcd.Scope) *scopeDoc {
	doc := &scopeDoc{
		Type: scope.Type.String(),
		Name: scope.Identifier,
	}
	for _, item := range scope.Children {
		switch c := item.(type) {
		case *vcd.Scope:
			doc.Items = append(doc.Items, itemDoc{Scope: scopeToDoc(c)})
		case *vcd.Var:
			doc.Items = append(doc.Items, itemDoc{Var: &varDoc{
				Type: c.Type.String(),
				Size: c.Size,
				Code: string(c.Code),
				Name: c.Reference,
			}})
		}
	}
	return doc
}
