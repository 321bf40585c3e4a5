// Package driving defines what the command line calls into: a pipeline run,
// the reverse corpus loader and settings management. These are the "driving"
// ports of the hexagon; internal/core/services implements them.
package driving
