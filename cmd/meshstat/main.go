// meshstat builds scenes without a window and reports their buffer statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/config"
	"github.com/Faultbox/scenekit/internal/demo"
	"github.com/Faultbox/scenekit/internal/engine/geometry"
	"github.com/Faultbox/scenekit/internal/engine/mesh"
	"github.com/Faultbox/scenekit/internal/engine/transform"
	"github.com/Faultbox/scenekit/internal/engine/world"
	"github.com/Faultbox/scenekit/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "scene":
		err = cmdScene(os.Stdout, args)
	case "shape":
		err = cmdShape(os.Stdout, args)
	case "kinds":
		cmdKinds(os.Stdout)
	case "init-config":
		err = cmdInitConfig(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshstat - scenekit buffer statistics

Usage:
  meshstat <command> [options]

Commands:
  scene [-subdivisions N] [-debug]          Flatten the demo scene
  shape [-subdivisions N] [-debug] <kind>   Tessellate one unit-sized shape
  kinds                                     List shape kinds
  init-config [path]                        Write the default viewer config

Examples:
  meshstat scene -subdivisions 32
  meshstat shape capsule`)
}

// options are the flags shared by the scene and shape commands.
type options struct {
	subdivisions int
	debug        bool
}

func parseOptions(name string, args []string) (options, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	opts := options{}
	fs.IntVar(&opts.subdivisions, "subdivisions", config.Default().Tessellation.Subdivisions, "Longitude bands for round shapes")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	level := "warn"
	if opts.debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		return opts, nil, err
	}
	return opts, fs.Args(), nil
}

func cmdScene(out io.Writer, args []string) error {
	opts, _, err := parseOptions("scene", args)
	if err != nil {
		return err
	}

	w := world.New(world.WithLogger(logger.Named("world")))
	if _, err := demo.Build(w, opts.subdivisions); err != nil {
		return err
	}
	b := mesh.NewBuilder()
	if err := w.Flatten(b); err != nil {
		return err
	}

	fmt.Fprintf(out, "Objects:      %d (%d roots)\n", w.Len(), len(w.Roots()))
	printKinds(out, w)
	printStats(out, b)
	return nil
}

func cmdShape(out io.Writer, args []string) error {
	opts, rest, err := parseOptions("shape", args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("usage: meshstat shape [options] <kind>")
	}
	kind, err := geometry.ParseKind(rest[0])
	if err != nil {
		return err
	}
	shape, err := demo.ShapeOf(kind, opts.subdivisions)
	if err != nil {
		return err
	}

	b := mesh.NewBuilder()
	if err := geometry.Generate(shape, transform.Identity(), mesh.ColorWhite, b); err != nil {
		return err
	}
	logger.Debug("generated shape", zap.Stringer("kind", kind), zap.Int("subdivisions", opts.subdivisions))

	fmt.Fprintf(out, "Shape:        %s %+v\n", kind, shape)
	printStats(out, b)
	return nil
}

func cmdKinds(out io.Writer) {
	for k := geometry.KindBox; k <= geometry.KindRectangle; k++ {
		fmt.Fprintln(out, k)
	}
}

func cmdInitConfig(out io.Writer, args []string) error {
	cfg := config.Default()
	if len(args) == 0 {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return nil
	}
	if err := cfg.SaveTo(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", args[0])
	return nil
}

// printKinds prints how many objects use each shape kind.
func printKinds(out io.Writer, w *world.World) {
	counts := make(map[string]int)
	groups := 0
	for _, id := range w.IDs() {
		obj, err := w.Get(id)
		if err != nil {
			continue
		}
		if obj.Geometry == nil {
			groups++
			continue
		}
		counts[obj.Geometry.Kind().String()]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+1)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, counts[name]))
	}
	parts = append(parts, fmt.Sprintf("group=%d", groups))
	fmt.Fprintf(out, "Kinds:        %s\n", strings.Join(parts, " "))
}

func printStats(out io.Writer, b *mesh.Builder) {
	bounds := b.Bounds()
	fmt.Fprintf(out, "Vertices:     %d (%d bytes)\n", b.VertexCount(), b.VertexCount()*mesh.VertexStride)
	fmt.Fprintf(out, "Indices:      %d (%d triangles)\n", b.IndexCount(), b.IndexCount()/3)
	if bounds.IsEmpty() {
		fmt.Fprintln(out, "Bounds:       empty")
	} else {
		fmt.Fprintf(out, "Bounds:       %v .. %v\n", bounds.Min, bounds.Max)
		fmt.Fprintf(out, "Center:       %v\n", bounds.Center())
	}
	fmt.Fprintf(out, "Checksum:     %016x\n", b.Checksum())
}
