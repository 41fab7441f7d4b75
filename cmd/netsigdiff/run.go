package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/connectome"
	"github.com/carbocation/connectome/config"
	"github.com/carbocation/connectome/scan"
	"github.com/carbocation/connectome/sigdiff"
	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// Connection is one output row.
type Connection struct {
	Row      int     `csv:"row"`
	Col      int     `csv:"col"`
	RowLabel string  `csv:"row_label"`
	ColLabel string  `csv:"col_label"`
	MeanA    float64 `csv:"mean_a"`
	MeanB    float64 `csv:"mean_b"`
	T        float64 `csv:"t"`
	P        float64 `csv:"p"`
}

type LabeledConnection struct {
	Connection string `csv:"connection"`
}

func run(cfg config.JSONConfig, client *storage.Client, skippedPath string) error {
	atlas, err := loadAtlas(cfg, client)
	if err != nil {
		return err
	}

	groupA, skippedA, err := loadGroup(cfg.GroupA, atlas, client)
	if err != nil {
		return fmt.Errorf("group A: %w", err)
	}
	log.Println("Loaded", len(groupA), "nets for group A from", cfg.GroupA.Root)

	groupB, skippedB, err := loadGroup(cfg.GroupB, atlas, client)
	if err != nil {
		return fmt.Errorf("group B: %w", err)
	}
	log.Println("Loaded", len(groupB), "nets for group B from", cfg.GroupB.Root)

	if skippedPath != "" {
		if err := writeCSV(skippedPath, append(skippedA, skippedB...)); err != nil {
			return err
		}
	}

	if cfg.ByLabel {
		labels, err := sigdiff.PerCellByLabel(groupA, groupB, cfg.Alpha)
		if err != nil {
			return err
		}

		rows := make([]LabeledConnection, 0, len(labels))
		for _, v := range labels {
			rows = append(rows, LabeledConnection{Connection: v})
		}
		return writeCSV(cfg.Output, rows)
	}

	cells, err := sigdiff.PerCell(groupA, groupB, cfg.Alpha)
	if err != nil {
		return err
	}

	return writeCSV(cfg.Output, describe(cells, groupA, groupB, atlas))
}

func loadGroup(g config.Group, atlas *connectome.Atlas, client *storage.Client) ([]*connectome.Net, []scan.Skip, error) {
	allow, err := g.AllowList(client)
	if err != nil {
		return nil, nil, err
	}

	fsys, root, err := connectome.LocalFS(g.Root)
	if err != nil {
		return nil, nil, err
	}

	sel, err := scan.New(fsys, root, atlas).ByOrdinal(g.Ordinal, allow)
	if err != nil {
		return nil, nil, err
	}

	return sel.Nets(), sel.Skipped, nil
}

func describe(cells []sigdiff.Cell, groupA, groupB []*connectome.Net, atlas *connectome.Atlas) []Connection {
	out := make([]Connection, 0, len(cells))
	for _, cell := range cells {
		a := make([]float64, 0, len(groupA))
		for _, n := range groupA {
			a = append(a, n.At(cell.Row, cell.Col))
		}
		b := make([]float64, 0, len(groupB))
		for _, n := range groupB {
			b = append(b, n.At(cell.Row, cell.Col))
		}

		t, p := sigdiff.WelchTTest(a, b)
		out = append(out, Connection{
			Row:      cell.Row,
			Col:      cell.Col,
			RowLabel: atlas.Label(cell.Row),
			ColLabel: atlas.Label(cell.Col),
			MeanA:    stat.Mean(a, nil),
			MeanB:    stat.Mean(b, nil),
			T:        t,
			P:        p,
		})
	}

	return out
}

// writeCSV marshals rows to path, or to stdout when path is empty.
func writeCSV(path string, rows interface{}) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(connectome.ExpandHome(path))
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return gocsv.Marshal(rows, w)
}
