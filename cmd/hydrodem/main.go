// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Command hydrodem runs the hydrodem DEM conditioning and flow-routing
// pipeline from the command line: depression filling, flat
// resolution, flow routing and accumulation, each as its own
// subcommand or chained together by "pipeline".
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("hydrodem failed")
		os.Exit(1)
	}
}
