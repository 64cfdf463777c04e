// Command slatelink links on-set images to metadata rows from a delimited
// dataset, resolves overlay layout from per-image sidecars, presets, and
// dataset defaults, and writes XMP sidecars recording the result.
package main
