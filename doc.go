/*
Package klyv implements the core of a code-splitting tool: it takes a
single source file written in a curly-braced, item-oriented language (the
fixtures this package is tested against are Rust, but nothing in the
pipeline is Rust-specific) and produces a set of smaller sibling files,
each holding a semantically coherent group of top-level items, plus a shim
that re-exposes everything the original file exported.

Overview

The pipeline runs in four stages, each a pure function of its input:

	Parse     SourceText               -> []Item, Trivia, Trivia
	Classify  []Item                   -> []Item (Category assigned)
	PlanItems []Item, stem, head, tail -> Plan
	Emit      SourceText, Plan         -> map[filename]text

Parse recognizes item-starting keywords (use, mod, fn, struct, enum,
trait, impl, type, const, static, extern, macro_rules!, and bare macro
invocations) and balances delimiters without understanding expression
grammar; item bodies are carried verbatim. It does not resolve symbols,
type-check, or expand macros. Besides the Items, it returns the file's
leading and trailing Trivia spans — the head (everything before the
first Item, not counting that Item's own attached doc comment) and the
tail (everything after the last Item) — both destined for the shim.

Classify assigns each Item exactly one Category from a closed set
(EntryPoint, ErrorType, DataType, TraitDef, ImplBlock, Configuration,
BusinessLogic, Helper, Imports, Constants, Macros, Other) using an
ordered, first-match-wins rule table driven by kind, name shape, and the
first line of the item's doc comment.

PlanItems groups Items by Category into Buckets, decides filenames, and
works out which Items stay behind in the shim: use-statements and
constants always do, impl blocks follow their implementing type, and a
lone Macros or Other item folds into whatever non-empty bucket comes
first in a fixed fallback order rather than getting a file of its own.

Emit renders each Bucket as a file: a one-line prelude import, the
Bucket's Items in source order with uniform blank-line separation, and a
single trailing newline. The shim gets the same treatment, minus the
prelude, plus synthesized mod declarations and use re-exports for every
public symbol that moved out (private ones too when
Options.ReexportPrivate is set).

Determinism

Running Split twice on the same (source, stem, options) produces
byte-identical output: Buckets iterate in a fixed Category order, Items
iterate in source order, and filename collisions are resolved by a
deterministic ordinal scan, never by map iteration order.

Concurrency

The package holds no package-level mutable state and Split performs no
I/O. Calling it concurrently on distinct inputs needs no external
locking; see cmd/klyv, which does exactly that with an errgroup when
asked to split more than one file.

Caveats

Items that fail to parse abort the whole run rather than being skipped;
the caller sees a single ParseError diagnostic and an empty output map.
Conditional-compilation attributes (#[cfg(...)] and friends) are treated
as opaque outer attributes attached to the following item; no predicate
analysis is performed, so an item guarded by mutually exclusive cfg
attributes is classified and placed exactly once, under whichever
attribute happens to be present in the single file being read.
*/
package klyv
