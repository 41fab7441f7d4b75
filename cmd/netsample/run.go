package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"

	"cloud.google.com/go/storage"
	"github.com/carbocation/connectome"
	"github.com/carbocation/connectome/scan"
	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/mat"
)

// ManifestRow describes one selected net.
type ManifestRow struct {
	Subject   string `csv:"subject"`
	TimeLabel string `csv:"time_label"`
	Scan      string `csv:"scan"`
	Window    string `csv:"window"`
	File      string `csv:"file"`
}

func run(opts options, client *storage.Client, rng *rand.Rand) error {
	atlas, err := loadAtlas(opts, client)
	if err != nil {
		return err
	}

	fsys, root, err := connectome.LocalFS(opts.Root)
	if err != nil {
		return err
	}

	sel := scan.New(fsys, root, atlas)
	sel.Rand = rng

	selection, err := selectNets(sel, opts, client)
	if err != nil {
		return err
	}
	log.Println("Selected", len(selection.Loaded), "nets;", len(selection.Skipped), "entries skipped")

	if opts.Skipped != "" {
		if err := writeCSV(opts.Skipped, selection.Skipped); err != nil {
			return err
		}
	}

	if opts.MeanOutput != "" {
		mean, err := meanMatrix(selection.Nets())
		if err != nil {
			return err
		}
		meanFS, meanPath, err := connectome.LocalFS(opts.MeanOutput)
		if err != nil {
			return err
		}
		if err := connectome.SaveMatrixFile(meanFS, meanPath, mean); err != nil {
			return err
		}
	}

	return writeCSV(opts.Output, manifest(selection))
}

func selectNets(sel *scan.Selector, opts options, client *storage.Client) (scan.Selection, error) {
	subjects, err := loadAllowList(opts.Subjects, client)
	if err != nil {
		return scan.Selection{}, err
	}
	scans, err := loadAllowList(opts.Scans, client)
	if err != nil {
		return scan.Selection{}, err
	}

	switch opts.Mode {
	case "ordinal":
		return sel.ByOrdinal(opts.Ordinal, subjects)
	case "all":
		return sel.All(scans)
	case "random":
		return sel.RandomSubwindows(opts.N, scans)
	case "subwindows":
		return sel.AllSubwindows(scan.Windowing{Length: opts.WindowLength, Step: opts.WindowStep}, opts.Ordinal, subjects)
	case "temporal":
		labels, err := loadTimeLabels(opts.TimeLabels, client)
		if err != nil {
			return scan.Selection{}, err
		}
		temporal, err := sel.AllUpToLimit(opts.Limit, subjects, labels)
		if err != nil {
			return scan.Selection{}, err
		}
		return flattenTemporal(temporal), nil
	}

	return scan.Selection{}, fmt.Errorf("unknown mode %q", opts.Mode)
}

// flattenTemporal orders the per-subject scans by subject for the manifest.
func flattenTemporal(temporal scan.Temporal) scan.Selection {
	subjects := make([]string, 0, len(temporal.BySubject))
	for subject := range temporal.BySubject {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	out := scan.Selection{Skipped: temporal.Skipped}
	for _, subject := range subjects {
		out.Loaded = append(out.Loaded, temporal.BySubject[subject]...)
	}

	return out
}

func manifest(selection scan.Selection) []ManifestRow {
	out := make([]ManifestRow, 0, len(selection.Loaded))
	for _, v := range selection.Loaded {
		row := ManifestRow{
			Subject:   v.Scan.Subject,
			TimeLabel: v.Scan.TimeLabel,
			Scan:      v.Scan.Name,
			File:      v.File,
		}
		if v.Window != nil {
			row.Window = v.Window.String()
		}
		out = append(out, row)
	}

	return out
}

func meanMatrix(nets []*connectome.Net) (*mat.Dense, error) {
	if len(nets) == 0 {
		return nil, fmt.Errorf("no nets were selected")
	}

	size := nets[0].Size()
	sum := mat.NewDense(size, size, nil)
	for _, n := range nets {
		if n.Size() != size {
			return nil, fmt.Errorf("nets differ in size: %d vs %d", n.Size(), size)
		}
		sum.Add(sum, n.Data)
	}
	sum.Scale(1/float64(len(nets)), sum)

	return sum, nil
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
