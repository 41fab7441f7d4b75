// netci prints the mean and Student-t confidence interval of one connection
// across the selected nets. Without -row and -col it summarizes each net's
// mean off-diagonal connectivity instead.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carbocation/connectome"
	"github.com/carbocation/connectome/compileinfo"
	"github.com/carbocation/connectome/scan"
	"github.com/carbocation/connectome/sigdiff"
	"gonum.org/v1/gonum/stat"
)

func main() {
	compileinfo.PrintToStdErr()

	var root, atlasName, subjects string
	var ordinal, row, col int
	var confidence float64

	flag.StringVar(&root, "root", "", "Directory of <subject>_<time> scan folders")
	flag.StringVar(&atlasName, "atlas", "", "Atlas name, i.e. the directory beneath each scan folder that holds bold_net/")
	flag.StringVar(&subjects, "subjects", "", "Optional newline-delimited list of subjects to include")
	flag.IntVar(&ordinal, "ordinal", 1, "Which scan of each subject to use (1 = first visit)")
	flag.IntVar(&row, "row", -1, "Row of the connection to summarize (0-based). Requires -col.")
	flag.IntVar(&col, "col", -1, "Column of the connection to summarize (0-based). Requires -row.")
	flag.Float64Var(&confidence, "confidence", 0.95, "Confidence level of the interval")
	flag.Parse()

	if root == "" || atlasName == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide -root and -atlas")
	}

	if (row < 0) != (col < 0) {
		log.Fatalln("Please provide both -row and -col, or neither")
	}

	if confidence <= 0 || confidence >= 1 {
		log.Fatalln("-confidence must be between 0 and 1")
	}

	var allow scan.AllowList
	if subjects != "" {
		var err error
		allow, err = scan.LoadAllowList(subjects, nil)
		if err != nil {
			log.Fatalln(err)
		}
	}

	fsys, absRoot, err := connectome.LocalFS(root)
	if err != nil {
		log.Fatalln(err)
	}

	sel, err := scan.New(fsys, absRoot, connectome.NewAtlas(atlasName, nil)).ByOrdinal(ordinal, allow)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", len(sel.Loaded), "nets;", len(sel.Skipped), "skipped")

	if err := summarize(os.Stdout, sel.Nets(), row, col, confidence); err != nil {
		log.Fatalln(err)
	}
}

func summarize(w io.Writer, nets []*connectome.Net, row, col int, confidence float64) error {
	values := make([]float64, 0, len(nets))
	for _, n := range nets {
		if row >= 0 {
			if row >= n.Size() || col >= n.Size() {
				return fmt.Errorf("connection (%d, %d) is outside a %d-region net", row, col, n.Size())
			}
			values = append(values, n.At(row, col))
			continue
		}
		values = append(values, meanOffDiagonal(n))
	}

	mean, lower, upper := sigdiff.ConfidenceInterval(values, confidence)
	_, err := fmt.Fprintf(w, "n\tmean\tlower\tupper\n%d\t%f\t%f\t%f\n", len(values), mean, lower, upper)

	return err
}

func meanOffDiagonal(n *connectome.Net) float64 {
	values := make([]float64, 0, n.Size()*n.Size())
	for i := 0; i < n.Size(); i++ {
		for j := 0; j < n.Size(); j++ {
			if i != j {
				values = append(values, n.At(i, j))
			}
		}
	}
	return stat.Mean(values, nil)
}
