// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gospatial/hydrodem/dem"
	"github.com/gospatial/hydrodem/raster"
	"github.com/gospatial/hydrodem/structures"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hydrodem",
		Short: "DEM conditioning and flow-routing toolbox",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newFillSinksCmd())
	root.AddCommand(newFlatsCmd())
	root.AddCommand(newGWDTCmd())
	root.AddCommand(newRouteCmd())
	root.AddCommand(newAccumulateCmd())
	root.AddCommand(newPipelineCmd())
	return root
}

func newFillSinksCmd() *cobra.Command {
	var hybrid bool
	cmd := &cobra.Command{
		Use:   "fillsinks <input.asc> <output.asc>",
		Short: "fill depressions by grayscale morphological reconstruction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := raster.ReadASCIIGrid(args[0])
			if err != nil {
				return err
			}

			var filled []float32
			if hybrid {
				filled = make([]float32, g.Dims.N())
				copy(filled, g.Data)
				fifo := structures.NewFIFO(g.Dims.N())
				dem.FillSinksHybrid(filled, g.Data, g.Dims, fifo)
			} else {
				filled = dem.FillSinks(g.Data, g.Dims)
			}

			out := &raster.Grid{Dims: g.Dims, Data: filled, NoData: g.NoData, CellSize: g.CellSize, XLLCorner: g.XLLCorner, YLLCorner: g.YLLCorner}
			return raster.WriteASCIIGrid(args[1], out)
		},
	}
	cmd.Flags().BoolVar(&hybrid, "hybrid", true, "use the FIFO-propagation reconstruction instead of the naive sweep")
	return cmd
}

func newFlatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flats <filled.asc> <output.asc>",
		Short: "identify flats, sills and presills in a filled DEM",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := raster.ReadASCIIGrid(args[0])
			if err != nil {
				return err
			}

			flags := make([]int32, g.Dims.N())
			n := dem.IdentifyFlats(flags, g.Data, g.Dims)
			logrus.WithField("count", n).Info("flat pixels identified")

			out := make([]float32, g.Dims.N())
			for i, v := range flags {
				out[i] = float32(v)
			}
			outGrid := &raster.Grid{Dims: g.Dims, Data: out, NoData: -1, CellSize: g.CellSize, XLLCorner: g.XLLCorner, YLLCorner: g.YLLCorner}
			return raster.WriteASCIIGrid(args[1], outGrid)
		},
	}
	return cmd
}

func newGWDTCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gwdt <filled.asc> <original.asc> <output.asc>",
		Short: "gray-weighted distance transform over flat pixels",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			filled, err := raster.ReadASCIIGrid(args[0])
			if err != nil {
				return err
			}
			original, err := raster.ReadASCIIGrid(args[1])
			if err != nil {
				return err
			}

			flats := make([]int32, filled.Dims.N())
			dem.IdentifyFlats(flats, filled.Data, filled.Dims)

			costs := make([]float32, filled.Dims.N())
			conncomps := make([]int, filled.Dims.N())
			dem.GWDTComputeCosts(costs, conncomps, flats, original.Data, filled.Data, filled.Dims)

			dist, _ := dem.GWDTAlloc(costs, flats, filled.Dims, false)

			out := &raster.Grid{Dims: filled.Dims, Data: dist, NoData: -1, CellSize: filled.CellSize, XLLCorner: filled.XLLCorner, YLLCorner: filled.YLLCorner}
			return raster.WriteASCIIGrid(args[2], out)
		},
	}
	return cmd
}

func newRouteCmd() *cobra.Command {
	var dx float64
	cmd := &cobra.Command{
		Use:   "route <filled.asc> <output-direction.asc>",
		Short: "compute D8 flow directions with flat carving",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := raster.ReadASCIIGrid(args[0])
			if err != nil {
				return err
			}

			flats := make([]int32, g.Dims.N())
			dem.IdentifyFlats(flats, g.Data, g.Dims)
			costs := make([]float32, g.Dims.N())
			conncomps := make([]int, g.Dims.N())
			dem.GWDTComputeCosts(costs, conncomps, flats, g.Data, g.Data, g.Dims)
			dist, _ := dem.GWDTAlloc(costs, flats, g.Dims, false)

			direction := make([]uint8, g.Dims.N())
			dem.FlowRoutingD8Carve(direction, g.Data, dist, flats, g.Dims)

			out := make([]float32, g.Dims.N())
			for i, d := range direction {
				out[i] = float32(d)
			}
			outGrid := &raster.Grid{Dims: g.Dims, Data: out, NoData: -1, CellSize: g.CellSize, XLLCorner: g.XLLCorner, YLLCorner: g.YLLCorner}
			return raster.WriteASCIIGrid(args[1], outGrid)
		},
	}
	cmd.Flags().Float64Var(&dx, "dx", 1.0, "grid cell size")
	return cmd
}

func newAccumulateCmd() *cobra.Command {
	var cellArea float64
	var d8 bool
	cmd := &cobra.Command{
		Use:   "accumulate <filled.asc> <output.asc>",
		Short: "build the single-flow graph and accumulate flow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := raster.ReadASCIIGrid(args[0])
			if err != nil {
				return err
			}

			bcs := defaultBoundaryCodes(g)
			sf := dem.ComputeSFGraph(g.Data, bcs, g.Dims, 1.0, d8)
			acc := dem.FlowAccumulation(sf.Sreceivers, sf.Stack, nil, cellArea)

			out := &raster.Grid{Dims: g.Dims, Data: acc, NoData: 0, CellSize: g.CellSize, XLLCorner: g.XLLCorner, YLLCorner: g.YLLCorner}
			return raster.WriteASCIIGrid(args[1], out)
		},
	}
	cmd.Flags().Float64Var(&cellArea, "cell-area", 1.0, "unit contribution per pixel")
	cmd.Flags().BoolVar(&d8, "d8", true, "use 8-connectivity instead of 4")
	return cmd
}

func newPipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline <config.toml>",
		Short: "run fillsinks, route and accumulate from a TOML config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadPipelineConfig(args[0])
			if err != nil {
				return err
			}

			g, err := raster.ReadASCIIGrid(cfg.Input)
			if err != nil {
				return err
			}

			var filled []float32
			if cfg.Hybrid {
				filled = make([]float32, g.Dims.N())
				copy(filled, g.Data)
				fifo := structures.NewFIFO(g.Dims.N())
				dem.FillSinksHybrid(filled, g.Data, g.Dims, fifo)
			} else {
				filled = dem.FillSinks(g.Data, g.Dims)
			}

			bcs := defaultBoundaryCodes(g)

			var sf *dem.SFGraph
			if cfg.PriorityFlood {
				sf = dem.ComputeSFGraphPriorityFlood(g.Data, bcs, g.Dims, cfg.DX, cfg.D8)
			} else {
				sf = dem.ComputeSFGraph(filled, bcs, g.Dims, cfg.DX, cfg.D8)
			}

			var weights []float32
			if cfg.Accumulation.Weights != "" {
				w, err := raster.ReadASCIIGrid(cfg.Accumulation.Weights)
				if err != nil {
					return err
				}
				weights = w.Data
			}
			acc := dem.FlowAccumulation(sf.Sreceivers, sf.Stack, weights, cfg.Accumulation.CellArea)

			out := &raster.Grid{Dims: g.Dims, Data: acc, NoData: 0, CellSize: g.CellSize, XLLCorner: g.XLLCorner, YLLCorner: g.YLLCorner}
			if err := raster.WriteASCIIGrid(cfg.Output, out); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"input":  cfg.Input,
				"output": cfg.Output,
				"pixels": g.Dims.N(),
			}).Info("pipeline complete")
			return nil
		},
	}
	return cmd
}

// defaultBoundaryCodes derives a boundary-code raster from a grid's
// own nodata mask: interior valid pixels flow, valid pixels on the
// domain edge may drain out, and nodata pixels block.
func defaultBoundaryCodes(g *raster.Grid) []uint8 {
	n := g.Dims.N()
	bcs := make([]uint8, n)
	for idx := 0; idx < n; idx++ {
		v := g.Data[idx]
		if v != v { // NaN
			bcs[idx] = dem.BCNoFlow
			continue
		}
		row, col := g.Dims.RowCol(idx)
		if g.Dims.OnBoundary(row, col) {
			bcs[idx] = dem.BCCanOut
		} else {
			bcs[idx] = dem.BCFlow
		}
	}
	return bcs
}
