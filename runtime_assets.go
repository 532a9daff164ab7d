package cellcount

import (
	"io/fs"

	"github.com/goliatone/go-cellcount/pkg/renderers/html"
)

// RuntimeAssetsFS exposes the stylesheet and debounced browser runtime so Go
// applications can serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(cellcount.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return html.AssetsFS()
}
