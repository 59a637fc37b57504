// Package formats provides readers and writers for the terrain data files.
package formats

// Note: DEM (ESRI ASCII elevation grid) is implemented in dem.go
// Note: the plant layout dump is implemented in plantdump.go
