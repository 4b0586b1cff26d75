package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/ii64/psvlink/conf"
	"github.com/ii64/psvlink/lib/export"
	"github.com/ii64/psvlink/lib/ldargs"
	"github.com/ii64/psvlink/lib/link"
	"github.com/ii64/psvlink/lib/obj"
	"github.com/ii64/psvlink/lib/proc"
	"github.com/ii64/psvlink/lib/proc/ld"
	"github.com/samber/lo"
)

const ExportsSuffix = ".exports.yaml"

// Main resolves argv into a link spec and, when an ld is configured, runs
// the back end that turns it into the output module.
func Main(cfg *conf.Config, argv []string) (err error) {
	argv, err = ldargs.ExpandResponseFiles(argv, os.ReadFile)
	if err != nil {
		return
	}

	var spec *link.Spec
	spec, err = link.Resolve(argv, link.Options{DiagDir: cfg.DiagDir})
	if err != nil {
		return
	}
	logSpec(spec)
	if cfg.PrintSpec {
		spew.Fdump(os.Stderr, spec)
	}

	if cfg.ExtLD == "" {
		glog.V(1).Info("no ld configured, stopping after resolve")
		return
	}
	return backend(cfg, spec)
}

func logSpec(spec *link.Spec) {
	kind := "executable"
	if spec.IsShared() {
		kind = "shared"
	}
	glog.Infof("link %s output %q: %d input(s), %d librar(y/ies), %d search path(s)",
		kind, spec.OutputFile, len(spec.InputFiles), len(spec.Libraries), len(spec.LibraryPaths))
	if sh, ok := spec.Output.(link.Shared); ok && sh.VersionScript != nil {
		glog.V(1).Infof("version script %s: %s", sh.VersionScriptPath, sh.VersionScript)
	}
	for _, in := range spec.InputFiles {
		glog.V(2).Infof("input %s gc=%v whole=%v", in.Path, in.GcSections, in.WholeArchive)
	}
	for _, lib := range spec.Libraries {
		glog.V(2).Infof("library %s static=%v gc=%v whole=%v", lib.Lib, lib.OnlyStatic, lib.GcSections, lib.WholeArchive)
	}
}

func backend(cfg *conf.Config, spec *link.Spec) (err error) {
	err = conf.CheckInputFiles(lo.Map(spec.InputFiles, func(in link.InputFile, _ int) string {
		return in.Path
	}))
	if err != nil {
		return
	}

	// create temporary directory
	cfg.TempDir, err = os.MkdirTemp(os.TempDir(), "psvlink_*")
	if err != nil {
		return
	}
	defer func() {
		if cfg.KeepTemp {
			glog.Infof("keeping temp dir %s", cfg.TempDir)
			return
		}
		// delete temp dir
		errx := os.RemoveAll(cfg.TempDir)
		if errx != nil {
			glog.Errorf("remove tempdir %s: %s", cfg.TempDir, errx)
		}
	}()

	var merged string
	if merged, err = mergeToSingleObject(cfg, spec); err != nil {
		return
	}

	var o *obj.Object
	o, err = obj.ReadFile(merged)
	if err != nil {
		return
	}
	defer o.Close()
	if cfg.VerifyHeader {
		if err = o.VerifyHeader(); err != nil {
			return
		}
	}

	if spec.IsShared() {
		if err = writeExports(spec, o); err != nil {
			return
		}
	}
	return writeImage(cfg, merged, spec.OutputFile)
}

func mergeToSingleObject(cfg *conf.Config, spec *link.Spec) (objTemp string, err error) {
	objTemp = filepath.Join(cfg.TempDir, "merged.o")
	var ins *ld.Ld
	ins, err = ld.Relocatable(spec, objTemp)
	if err != nil {
		return
	}
	err = ins.Process().Run()
	return
}

func writeExports(spec *link.Spec, o *obj.Object) (err error) {
	var syms []obj.Symbol
	syms, err = o.DefinedGlobals()
	if err != nil {
		return
	}
	var plan *export.Plan
	plan, err = export.Build(moduleName(spec.OutputFile), syms, spec)
	if err != nil {
		return
	}
	glog.Infof("exporting %d symbol(s), %d hidden", plan.Len(), plan.Hidden)
	return plan.WriteFile(spec.OutputFile + ExportsSuffix)
}

func writeImage(cfg *conf.Config, merged, output string) error {
	if cfg.ImageWriter != "" {
		return proc.New(cfg.ImageWriter, []string{merged, output}).Run()
	}
	glog.Warningf("no image writer configured, copying merged object to %s", output)
	return copyFile(merged, output)
}

func copyFile(src, dst string) (err error) {
	var in, out *os.File
	if in, err = os.Open(src); err != nil {
		return
	}
	defer in.Close()
	if out, err = os.Create(dst); err != nil {
		return
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	return out.Close()
}

func moduleName(output string) string {
	base := filepath.Base(output)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
