// netungzip decompresses .gz connectivity files next to themselves, keeping
// the compressed originals. With -root it walks every scan folder's bold_net
// directory for the given atlas; otherwise it takes file paths as arguments.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/carbocation/connectome"
	"github.com/carbocation/connectome/compileinfo"
	"github.com/carbocation/connectome/scan"
	"github.com/go-git/go-billy/v5"
)

func main() {
	compileinfo.PrintToStdErr()

	var root, atlasName string
	flag.StringVar(&root, "root", "", "Optional directory of <subject>_<time> scan folders to process")
	flag.StringVar(&atlasName, "atlas", "", "Atlas name. Required with -root.")
	flag.Parse()

	if root == "" && flag.NArg() == 0 {
		flag.PrintDefaults()
		log.Fatalln("Please provide -root and -atlas, or one or more .gz files")
	}

	if root != "" {
		if atlasName == "" {
			log.Fatalln("Please provide -atlas")
		}
		n, err := ungzipScans(root, atlasName)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Decompressed", n, "files")
		return
	}

	for _, path := range flag.Args() {
		fsys, abs, err := connectome.LocalFS(path)
		if err != nil {
			log.Fatalln(err)
		}
		dest, err := connectome.Ungzip(fsys, abs)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", dest)
	}
}

// ungzipScans decompresses every .gz file in the bold_net directories under
// root and returns how many were written.
func ungzipScans(root, atlasName string) (int, error) {
	fsys, absRoot, err := connectome.LocalFS(root)
	if err != nil {
		return 0, err
	}

	sel := scan.New(fsys, absRoot, connectome.NewAtlas(atlasName, nil))
	groups, _, err := sel.Groups()
	if err != nil {
		return 0, err
	}

	written := 0
	for _, group := range groups {
		for _, entry := range group.Scans {
			n, err := ungzipDir(fsys, fsys.Join(entry.Path, atlasName, scan.BoldNetDir))
			if err != nil {
				return written, err
			}
			written += n
		}
	}

	return written, nil
}

func ungzipDir(fsys billy.Filesystem, dir string) (int, error) {
	infos, err := fsys.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		log.Println("No directory", dir)
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	written := 0
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".gz") {
			continue
		}
		if _, err := connectome.Ungzip(fsys, fsys.Join(dir, info.Name())); err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}
