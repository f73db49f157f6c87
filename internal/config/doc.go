// Package config defines the format-agnostic settings of a play and the
// Loader interface that concrete formats implement.
//
// Settings only tune how a graph is played (frame rate, frame limit, stage
// geometry and address, logging). The graph itself is always a JSON
// document handled by the garage package.
package config
