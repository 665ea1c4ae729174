package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"

	workbench "github.com/insightpro/go-workbench/components/workbench"
)

type cli struct {
	Manifest string `default:"workspace.yaml" type:"path" help:"Workspace manifest holding virtual tables and dashboards."`

	Sources    sourcesCmd    `cmd:"" help:"List the catalog source tables available for synthesis."`
	Tables     tablesCmd     `cmd:"" help:"List the virtual tables stored in the workspace manifest."`
	Synthesize synthesizeCmd `cmd:"" help:"Join selected source columns into a new virtual table."`
	Import     importCmd     `cmd:"" name:"import" help:"Import a delimited text file as a virtual table."`
	Export     exportCmd     `cmd:"" help:"Export a virtual table as delimited text."`
}

type sourcesCmd struct{}

type tablesCmd struct{}

type synthesizeCmd struct {
	Select []string `required:"" help:"Field selections as <tableID>:<field>, in the desired output order (repeat the flag)."`
	Name   string   `required:"" help:"Display name for the new virtual table."`
}

type importCmd struct {
	File string `arg:"" type:"existingfile" help:"Delimited text file to import."`
	Name string `help:"Display name for the imported table (defaults to the file name)."`
}

type exportCmd struct {
	ID  string `required:"" help:"Virtual table id to export."`
	Out string `help:"Output file (defaults to <table_name>.csv, written next to the manifest)."`
}

func main() {
	root := &cli{}
	ctx := kong.Parse(root,
		kong.Description("Offline workspace utility for virtual tables and dashboards."),
		kong.UsageOnError(),
		kong.Bind(root),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *sourcesCmd) Run(_ context.Context) error {
	catalog := workbench.NewFixtureCatalog()
	for _, table := range catalog.Tables() {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%d rows\n", table.ID, table.Name, len(table.Data))
		for _, field := range table.Fields {
			fmt.Fprintf(os.Stdout, "  %s\t%s\n", field.Name, field.Type)
		}
	}
	return nil
}

func (cmd *tablesCmd) Run(_ context.Context, root *cli) error {
	doc, err := loadWorkspace(root.Manifest)
	if err != nil {
		return err
	}
	if len(doc.Tables) == 0 {
		fmt.Fprintln(os.Stdout, "no virtual tables in workspace")
		return nil
	}
	for _, vt := range doc.Tables {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%d fields\t%d rows\n", vt.ID, vt.Name, len(vt.Fields), len(vt.Data))
	}
	return nil
}

func (cmd *synthesizeCmd) Run(_ context.Context, root *cli) error {
	sel := workbench.NewSelection()
	for _, pair := range cmd.Select {
		tableID, field, ok := strings.Cut(pair, ":")
		if !ok || tableID == "" || field == "" {
			return fmt.Errorf("workbenchctl: selection %q must look like <tableID>:<field>", pair)
		}
		sel.Toggle(tableID, field)
	}

	syn := workbench.NewSynthesizer(workbench.NewFixtureCatalog())
	vt, err := syn.Synthesize(sel, cmd.Name)
	if err != nil {
		return err
	}
	if err := appendTable(root.Manifest, vt); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Created %s (%s) with %d fields and %d rows\n", vt.Name, vt.ID, len(vt.Fields), len(vt.Data))
	return nil
}

func (cmd *importCmd) Run(_ context.Context, root *cli) error {
	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("workbenchctl: read %s: %w", cmd.File, err)
	}
	name := cmd.Name
	if name == "" {
		base := strings.TrimSuffix(cmd.File, ".csv")
		if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
			base = base[idx+1:]
		}
		name = strcase.ToCase(base, strcase.TitleCase, ' ')
	}

	syn := workbench.NewSynthesizer(workbench.NewFixtureCatalog())
	vt, err := syn.FromCSV(string(data), name)
	if err != nil {
		return err
	}
	if err := appendTable(root.Manifest, vt); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Imported %s (%s) with %d rows\n", vt.Name, vt.ID, len(vt.Data))
	return nil
}

func (cmd *exportCmd) Run(_ context.Context, root *cli) error {
	doc, err := loadWorkspace(root.Manifest)
	if err != nil {
		return err
	}
	for _, vt := range doc.Tables {
		if vt.ID != cmd.ID {
			continue
		}
		out := cmd.Out
		if out == "" {
			out = strcase.ToSnake(vt.Name) + ".csv"
		}
		if err := os.WriteFile(out, []byte(workbench.ExportCSV(vt)), 0o644); err != nil {
			return fmt.Errorf("workbenchctl: write %s: %w", out, err)
		}
		fmt.Fprintf(os.Stdout, "✓ Exported %s to %s\n", vt.Name, out)
		return nil
	}
	return fmt.Errorf("workbenchctl: no table %s in %s", cmd.ID, root.Manifest)
}

func loadWorkspace(path string) (*workbench.WorkspaceManifest, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &workbench.WorkspaceManifest{Version: workbench.ManifestVersion, Source: path}, nil
		}
		return nil, fmt.Errorf("workbenchctl: stat manifest: %w", err)
	}
	return workbench.ReadWorkspaceManifest(path)
}

func appendTable(path string, vt workbench.VirtualTable) error {
	doc, err := loadWorkspace(path)
	if err != nil {
		return err
	}
	doc.Tables = append(doc.Tables, vt)
	return workbench.WriteWorkspaceManifest(path, doc)
}
