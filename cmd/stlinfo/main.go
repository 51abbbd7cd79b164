// stlinfo is a CLI utility for inspecting STL mesh files.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/wireview/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "verts", "vertices":
		cmdVerts(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		// Bare path is shorthand for info
		if _, err := os.Stat(command); err == nil {
			cmdInfo(os.Args[1:])
			return
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stlinfo - STL mesh inspection utility

Usage:
  stlinfo <command> [options]

Commands:
  info <file.stl>   Show mesh statistics (also the default command)
  verts <file.stl>  Dump deduplicated vertices

Examples:
  stlinfo info paddle.stl
  stlinfo paddle.stl
  stlinfo verts paddle.stl`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stlinfo info <file.stl>")
		os.Exit(1)
	}

	mesh, err := formats.LoadSTL(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	min, max := bounds(mesh)
	var cx, cy, cz float32
	for _, v := range mesh.Vertices {
		cx += v[0]
		cy += v[1]
		cz += v[2]
	}
	n := float32(len(mesh.Vertices))

	fmt.Printf("Mesh:      %s\n", args[0])
	fmt.Printf("Vertices:  %d (deduplicated)\n", len(mesh.Vertices))
	fmt.Printf("Triangles: %d\n", len(mesh.Faces))
	fmt.Printf("Bounds:    min (%.3f, %.3f, %.3f)\n", min[0], min[1], min[2])
	fmt.Printf("           max (%.3f, %.3f, %.3f)\n", max[0], max[1], max[2])
	fmt.Printf("Centroid:  (%.3f, %.3f, %.3f)\n", cx/n, cy/n, cz/n)
}

func cmdVerts(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stlinfo verts <file.stl>")
		os.Exit(1)
	}

	mesh, err := formats.LoadSTL(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for i, v := range mesh.Vertices {
		fmt.Printf("%6d  %12.6f %12.6f %12.6f\n", i, v[0], v[1], v[2])
	}
}

func bounds(mesh *formats.Mesh) (min, max [3]float32) {
	if len(mesh.Vertices) == 0 {
		return
	}
	min, max = mesh.Vertices[0], mesh.Vertices[0]
	for _, v := range mesh.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max
}
