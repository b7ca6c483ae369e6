// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package main provides the MagNet CLI.
//
// The summary command loads a YAML model specification, builds it
// against an input shape by routing one probe tensor through it, and
// prints a per-layer table of output shapes and parameter counts.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/born/tensor"
	"github.com/dustin/go-humanize"

	"github.com/born-ml/magnet/device"
	"github.com/born-ml/magnet/inspect"
	"github.com/born-ml/magnet/model"
	"github.com/born-ml/magnet/node"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("MagNet %s\n", version)
	case "summary":
		if err := summary(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "magnet summary: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("MagNet - self-parametrizing layers for Born")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  summary    Summarize a YAML model spec against an input shape")
	fmt.Println("")
	fmt.Println("Example:")
	fmt.Println("  magnet summary -spec lenet.yaml -shape 1,1,28,28")
}

func summary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	specPath := fs.String("spec", "", "YAML model spec file")
	shapeFlag := fs.String("shape", "", "comma-separated input shape, e.g. 1,1,28,28")
	deviceName := fs.String("device", "cpu",
		fmt.Sprintf("device to probe on %v", device.Names()))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *specPath == "" || *shapeFlag == "" {
		return fmt.Errorf("both -spec and -shape are required")
	}

	in, err := parseShape(*shapeFlag)
	if err != nil {
		return err
	}
	dev, err := device.ByName(*deviceName)
	if err != nil {
		return err
	}
	device.Set(dev)

	root, err := model.LoadYAML(*specPath)
	if err != nil {
		return err
	}
	if err := root.Build(in, dev); err != nil {
		return err
	}

	printSummary(root, in)
	return nil
}

// printSummary walks the model one layer at a time, probing each
// member with its predecessor's output shape.
func printSummary(root node.Node, in tensor.Shape) {
	members := []node.Node{root}
	if p, ok := root.(*model.Pipeline); ok {
		members = p.Nodes()
	}

	layers := newSummaryTable("Layer", "Args", "Output Shape", "Params")
	var totalTrainable, totalBuffers int
	current := in
	for _, member := range members {
		out, err := member.OutputShape(current)
		if err != nil {
			layers.Row(member.Name(), member.Args(), "?", err.Error())
			continue
		}
		trainable, buffers := inspect.NumParams(member)
		totalTrainable += trainable
		totalBuffers += buffers
		layers.Row(member.Name(), member.Args(),
			formatShape(out), humanize.Comma(int64(trainable)))
		current = out
	}
	fmt.Println(titleStyle.Render(root.Name()))
	fmt.Println(layers.Render())

	totals := newSummaryTable("", "")
	totals.Row("input shape", formatShape(in))
	totals.Row("output shape", formatShape(current))
	totals.Row("# trainable parameters", humanize.Comma(int64(totalTrainable)))
	totals.Row("# buffers", humanize.Comma(int64(totalBuffers)))
	fmt.Println(totals.Render())
}

func parseShape(s string) (tensor.Shape, error) {
	parts := strings.Split(s, ",")
	shape := make(tensor.Shape, 0, len(parts))
	for _, part := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 1 {
			return nil, fmt.Errorf("invalid shape %q: dimensions must be positive integers", s)
		}
		shape = append(shape, d)
	}
	return shape, nil
}

func formatShape(shape tensor.Shape) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	return "[" + strings.Join(dims, ", ") + "]"
}
