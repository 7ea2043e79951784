/*
Command klyv is the CLI front end for the klyv splitter core.

Usage

	klyv split [--config klyv.yaml] <files...>
	klyv watch [--config klyv.yaml] <files...>

File arguments accept doublestar glob patterns, in which a "**" path
segment matches any number of nested directories. split
runs the core pipeline once per matched file and writes the resulting
sibling and shim files into the same directory; watch does the same, then
keeps running and re-splits a file whenever it changes on disk. Before
running the core over a file, split lists its directory so a generated
sibling filename that collides with something already there is renumbered
and logged instead of silently overwritten.

Configuration

klyv.yaml, if present next to the invocation (or at the path given by
--config), supplies the core's Options: prelude_header,
blank_lines_between_items, emit_shim, stem_overrides and
reexport_private. Values in the file take precedence over built-in
defaults; no command-line flag sets any of these options.

Concurrency

Multiple files passed to split are processed concurrently, bounded by
--max-concurrent, since the core performs no I/O and holds no shared
state between invocations on distinct files.
*/
package main
