// netsample selects nets out of a directory of scan folders and writes a CSV
// manifest of what was chosen. Optionally it also writes the elementwise mean
// of the chosen matrices.
//
// Modes:
//
//	ordinal     the -ordinal-th scan of every subject
//	all         every scan (optionally only those listed in -scans)
//	temporal    the first -limit scans of subjects that have at least -limit
//	random      -n dynamic sub-windows drawn evenly across scans
//	subwindows  every dynamic sub-window of the -ordinal-th scan per subject
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/connectome"
	"github.com/carbocation/connectome/compileinfo"
	"github.com/carbocation/connectome/scan"
)

type options struct {
	Root         string
	Atlas        string
	Labels       string
	Mode         string
	Ordinal      int
	Limit        int
	N            int
	Seed         int64
	Subjects     string
	Scans        string
	TimeLabels   string
	WindowLength int
	WindowStep   int
	Output       string
	MeanOutput   string
	Skipped      string
}

func main() {
	compileinfo.PrintToStdErr()

	var opts options
	flag.StringVar(&opts.Root, "root", "", "Directory of <subject>_<time> scan folders")
	flag.StringVar(&opts.Atlas, "atlas", "", "Atlas name, i.e. the directory beneath each scan folder that holds bold_net/")
	flag.StringVar(&opts.Labels, "labels", "", "Optional file with one region label per line, in matrix order")
	flag.StringVar(&opts.Mode, "mode", "ordinal", "One of: ordinal, all, temporal, random, subwindows")
	flag.IntVar(&opts.Ordinal, "ordinal", 1, "Which scan of each subject to use (1 = first visit). Modes: ordinal, subwindows")
	flag.IntVar(&opts.Limit, "limit", 2, "Number of scans per subject. Mode: temporal")
	flag.IntVar(&opts.N, "n", 0, "Number of sub-windows to draw. Mode: random")
	flag.Int64Var(&opts.Seed, "seed", 0, "Random seed. If 0, the current time is used. Mode: random")
	flag.StringVar(&opts.Subjects, "subjects", "", "Optional newline-delimited list of subjects to consider")
	flag.StringVar(&opts.Scans, "scans", "", "Optional newline-delimited list of scan folder names to consider. Modes: all, random")
	flag.StringVar(&opts.TimeLabels, "time-labels", "", "Optional file of '<subject> <label> <label> ...' lines fixing the scan order per subject. Mode: temporal")
	flag.IntVar(&opts.WindowLength, "window-length", 0, "Length of the dynamic windows, for the log. Mode: subwindows")
	flag.IntVar(&opts.WindowStep, "window-step", 0, "Step between dynamic windows, for the log. Mode: subwindows")
	flag.StringVar(&opts.Output, "out", "", "Output path for the manifest (CSV). If empty, prints to stdout.")
	flag.StringVar(&opts.MeanOutput, "mean", "", "Optional output path for the tab-delimited mean matrix of the selection")
	flag.StringVar(&opts.Skipped, "skipped", "", "Optional output path for a CSV of entries that were skipped")
	flag.Parse()

	if opts.Root == "" || opts.Atlas == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide -root and -atlas")
	}

	var client *storage.Client
	for _, path := range []string{opts.Labels, opts.Subjects, opts.Scans, opts.TimeLabels} {
		if strings.HasPrefix(path, "gs://") {
			var err error
			client, err = storage.NewClient(context.Background())
			if err != nil {
				log.Fatalln(err)
			}
			defer client.Close()
			break
		}
	}

	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	if err := run(opts, client, rand.New(rand.NewSource(opts.Seed))); err != nil {
		log.Fatalln(err)
	}
}

func loadAtlas(opts options, client *storage.Client) (*connectome.Atlas, error) {
	if opts.Labels == "" {
		return connectome.NewAtlas(opts.Atlas, nil), nil
	}
	return connectome.LoadAtlas(opts.Atlas, opts.Labels, client)
}

func loadAllowList(path string, client *storage.Client) (scan.AllowList, error) {
	if path == "" {
		return nil, nil
	}
	return scan.LoadAllowList(path, client)
}

// loadTimeLabels reads '<subject> <label> <label> ...' lines.
func loadTimeLabels(path string, client *storage.Client) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}

	lines, err := connectome.ReadList(path, client)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		out[fields[0]] = fields[1:]
	}

	return out, nil
}
