package main

import (
	"flag"
	"os"

	"github.com/caten2/gosimplex/gosimplex"
	"github.com/caten2/gosimplex/libsimplex"
	"github.com/caten2/gosimplex/libsimplex/catalog"
	"github.com/caten2/gosimplex/perm"
	"github.com/plan-systems/klog"
)

func main() {

	groupExpr := flag.String("group", "", "group designation or generator list whose complex to build and print")
	catalogPath := flag.String("catalog", "", "path of a catalog to add the built complex to")
	showClasses := flag.Bool("classes", false, "also print the conjugacy class partition")
	showSheets := flag.Bool("sheets", false, "also print every sheet boundary walk")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	if len(*groupExpr) > 0 {
		opts := gosimplex.DefaultPrintOpts
		opts.Classes = *showClasses
		opts.Sheets = *showSheets
		if err := buildDirect(*groupExpr, *catalogPath, opts); err != nil {
			klog.Exitf("%v", err)
		}
	} else {
		pathname := flag.Arg(0)
		go_gpython(pathname)
	}

	klog.Flush()
}

// buildDirect builds a single group's complex and prints it, optionally also
// adding it to the catalog at catalogPath.
func buildDirect(expr, catalogPath string, opts gosimplex.PrintOpts) error {
	g, err := perm.Parse(expr)
	if err != nil {
		return err
	}

	cx, err := libsimplex.BuildComplex(g)
	if err != nil {
		return err
	}

	if opts.Label == "" {
		opts.Label = "build"
	}
	stream := gosimplex.StreamComplex(cx).Print(stdoutEcho{}, opts)

	if len(catalogPath) > 0 {
		ctx := gosimplex.NewCatalogContext()
		cat, err := catalog.OpenCatalog(ctx, gosimplex.CatalogOpts{
			DbPathName: catalogPath,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx.Close()
			<-ctx.Done()
		}()
		stream = stream.AddTo(cat, gosimplex.AddComplexOpts{AutoCloseCatalog: true})
	}

	stream.PullAll()
	return nil
}

// stdoutEcho keeps chained stream stages from closing the process stdout.
type stdoutEcho struct{}

func (stdoutEcho) Write(buf []byte) (int, error) {
	return os.Stdout.Write(buf)
}

func (stdoutEcho) Close() error {
	return nil
}
