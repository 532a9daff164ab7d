// Package calibration holds the optical-density reference table and the two
// pure lookups performed against it: linear interpolation of a cell count
// (Estimate) and the closest sample (NearestIndex). Tables are immutable once
// built; callers share a single instance for the lifetime of the process.
package calibration
