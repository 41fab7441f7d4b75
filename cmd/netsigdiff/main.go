// netsigdiff compares the nets of two groups of subjects connection by
// connection and reports the connections that differ significantly (Welch
// t-test, upper triangle only).
package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/connectome"
	"github.com/carbocation/connectome/compileinfo"
	"github.com/carbocation/connectome/config"
)

func main() {
	compileinfo.PrintToStdErr()

	var configPath string
	var cfg config.JSONConfig

	flag.StringVar(&configPath, "config", "", "Path to a JSON run configuration. If set, every flag except -skipped is ignored.")
	flag.StringVar(&cfg.Atlas, "atlas", "", "Atlas name, i.e. the directory beneath each scan folder that holds bold_net/")
	flag.StringVar(&cfg.AtlasLabels, "labels", "", "Optional file with one region label per line, in matrix order. Required for -by-label.")
	flag.Float64Var(&cfg.Alpha, "alpha", config.DefaultAlpha, "Significance level. Connections with p < alpha are reported.")
	flag.StringVar(&cfg.GroupA.Root, "root-a", "", "Directory of <subject>_<time> scan folders for group A")
	flag.StringVar(&cfg.GroupA.SubjectFile, "subjects-a", "", "Optional newline-delimited list of group A subjects. If empty, all subjects under -root-a are used.")
	flag.IntVar(&cfg.GroupA.Ordinal, "ordinal-a", config.DefaultOrdinal, "Which scan of each group A subject to use (1 = first visit)")
	flag.StringVar(&cfg.GroupB.Root, "root-b", "", "Directory of <subject>_<time> scan folders for group B")
	flag.StringVar(&cfg.GroupB.SubjectFile, "subjects-b", "", "Optional newline-delimited list of group B subjects. If empty, all subjects under -root-b are used.")
	flag.IntVar(&cfg.GroupB.Ordinal, "ordinal-b", config.DefaultOrdinal, "Which scan of each group B subject to use (1 = first visit)")
	flag.StringVar(&cfg.Output, "out", "", "Output path for the significant connections (CSV). If empty, prints to stdout.")
	flag.BoolVar(&cfg.ByLabel, "by-label", false, "Report connections as <label>-<label> strings instead of index pairs")
	skippedPath := flag.String("skipped", "", "Optional output path for a CSV of scans that were skipped")
	flag.Parse()

	if configPath != "" {
		var err error
		cfg, err = config.ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	} else if err := cfg.Validate(); err != nil {
		flag.PrintDefaults()
		log.Fatalln(err)
	}

	var client *storage.Client
	if usesGoogleStorage(cfg) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	if err := run(cfg, client, *skippedPath); err != nil {
		log.Fatalln(err)
	}
}

func usesGoogleStorage(cfg config.JSONConfig) bool {
	for _, path := range []string{cfg.AtlasLabels, cfg.GroupA.SubjectFile, cfg.GroupB.SubjectFile} {
		if strings.HasPrefix(path, "gs://") {
			return true
		}
	}
	return false
}

func loadAtlas(cfg config.JSONConfig, client *storage.Client) (*connectome.Atlas, error) {
	if cfg.AtlasLabels == "" {
		return connectome.NewAtlas(cfg.Atlas, nil), nil
	}
	return connectome.LoadAtlas(cfg.Atlas, cfg.AtlasLabels, client)
}
