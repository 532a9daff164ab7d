// Package dataset describes the versioned reference dataset a calibration
// table is built from and the contracts used to load it. Datasets are plain
// JSON or YAML documents holding `[opticalDensity, cellCount]` pairs, either
// as a bare array or under a `points` key alongside version metadata:
//
//	version: "2023-06"
//	name: OD600 reference curve
//	units:
//	  opticalDensity: OD600
//	  cellCount: cells/mL
//	points:
//	  - [0.1, 100]
//	  - [0.2, 300]
//
// Loader implementations live under internal/dataset/loader.
package dataset
