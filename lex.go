package klyv

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed input: unbalanced delimiters, an
// unterminated string/char literal, or a malformed item header. It is
// always fatal; see spec.md §7.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

// itemKeywords maps the bare item-introducing keyword to its ItemKind.
// "extern" and "macro_rules" are handled specially (see parseHeader)
// because their shape depends on what follows them.
var itemKeywords = map[string]ItemKind{
	"use":    KindUseImport,
	"mod":    KindModDecl,
	"fn":     KindFunction,
	"struct": KindStruct,
	"enum":   KindEnum,
	"trait":  KindTraitDef,
	"impl":   KindImplBlock,
	"type":   KindTypeAlias,
	"const":  KindConst,
	"static": KindStatic,
}

// modifierKeywords precede the real item keyword without changing the
// resulting Kind (e.g. "pub async fn", "unsafe impl").
var modifierKeywords = []string{"unsafe", "async", "default"}

// Parse tokenizes src into an ordered list of top-level Items, preserving
// each Item's leading doc-comments and attributes. It fails
// with a *ParseError when delimiters are unbalanced, a string/char literal
// is unterminated, or an item header is malformed. See spec.md §4.A.
//
// The first return Trivia is the file's leading trivia: everything before
// the first Item, minus any doc-comment run immediately attached to that
// Item (which travels with the Item itself, not with this span). The
// second is the tail trivia after the last Item. Both are surfaced to the
// caller for shim composition (spec.md §4.C); interior trivia between
// other items (whitespace and non-doc comments) is discarded and does not
// appear in any output, since buckets re-render items with their own
// uniform spacing.
func Parse(src SourceText) ([]Item, Trivia, Trivia, error) {
	data := src.Bytes()
	pos := 0
	var items []Item
	head := Trivia{Span: Span{Start: 0, End: 0}}

	for {
		loopStart := pos
		next, doc, docStart, err := consumeTrivia(data, pos)
		if err != nil {
			return nil, Trivia{}, Trivia{}, err
		}
		pos = next

		if pos >= len(data) {
			return items, head, Trivia{Span: Span{Start: loopStart, End: len(data)}}, nil
		}

		if len(items) == 0 {
			headEnd := docStart
			if headEnd < 0 {
				headEnd = pos
			}
			head = Trivia{Span: Span{Start: 0, End: headEnd}}
		}

		item, end, err := parseItem(data, pos, doc)
		if err != nil {
			return nil, Trivia{}, Trivia{}, err
		}
		items = append(items, item)
		pos = end
	}
}

// Trivia is a captured run of whitespace and comments. Head trivia (the
// text before the first Item) and tail trivia (the text after the last
// Item) are surfaced to the caller for the shim; all other trivia is
// consumed internally by the lexer.
type Trivia struct {
	Span Span
}

// consumeTrivia advances past whitespace and comments, returning the new
// position, the doc-comment text of the contiguous run of doc comments
// immediately adjacent (no intervening blank line) to whatever follows,
// and the byte offset where that doc-comment run began (-1 if there is
// none, i.e. pos itself is not preceded by an attached doc comment). Any
// non-doc comment, or a blank line, resets the accumulated doc text.
func consumeTrivia(data []byte, pos int) (int, string, int, error) {
	var docLines []string
	docStart := -1
	for pos < len(data) {
		c := data[pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			pos++
		case c == '\n':
			if blankLineFollows(data, pos) {
				docLines = nil
				docStart = -1
			}
			pos++
		case hasPrefixAt(data, pos, "////"):
			// four or more slashes: an ordinary (non-doc) line comment.
			pos = skipLineComment(data, pos)
			docLines = nil
			docStart = -1
		case hasPrefixAt(data, pos, "///"):
			if docStart < 0 {
				docStart = pos
			}
			end := skipLineComment(data, pos)
			docLines = append(docLines, strings.TrimSpace(string(data[pos+3:end])))
			pos = end
		case hasPrefixAt(data, pos, "//"):
			pos = skipLineComment(data, pos)
			docLines = nil
			docStart = -1
		case hasPrefixAt(data, pos, "/**") && !hasPrefixAt(data, pos, "/**/"):
			if docStart < 0 {
				docStart = pos
			}
			end, err := skipBlockComment(data, pos)
			if err != nil {
				return 0, "", -1, err
			}
			inner := data[pos+3 : end-2]
			docLines = append(docLines, strings.TrimSpace(string(inner)))
			pos = end
		case hasPrefixAt(data, pos, "/*"):
			end, err := skipBlockComment(data, pos)
			if err != nil {
				return 0, "", -1, err
			}
			pos = end
			docLines = nil
			docStart = -1
		default:
			return pos, strings.Join(docLines, "\n"), docStart, nil
		}
	}
	return pos, strings.Join(docLines, "\n"), docStart, nil
}

// blankLineFollows reports whether, starting just after the newline at
// data[pos], the rest of the following line is empty (only whitespace
// before the next newline or EOF).
func blankLineFollows(data []byte, pos int) bool {
	for i := pos + 1; i < len(data); i++ {
		switch data[i] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func hasPrefixAt(data []byte, pos int, prefix string) bool {
	if pos+len(prefix) > len(data) {
		return false
	}
	return string(data[pos:pos+len(prefix)]) == prefix
}

func skipLineComment(data []byte, pos int) int {
	for pos < len(data) && data[pos] != '\n' {
		pos++
	}
	return pos
}

func skipBlockComment(data []byte, pos int) (int, error) {
	start := pos
	depth := 0
	for pos < len(data) {
		switch {
		case hasPrefixAt(data, pos, "/*"):
			depth++
			pos += 2
		case hasPrefixAt(data, pos, "*/"):
			depth--
			pos += 2
			if depth == 0 {
				return pos, nil
			}
		default:
			pos++
		}
	}
	return 0, &ParseError{Offset: start, Message: "unterminated block comment"}
}

// parseItem parses one top-level item starting at pos (itemStart, i.e.
// right after trivia has been consumed), and returns it along with the
// position just past its terminator.
func parseItem(data []byte, pos int, doc string) (Item, int, error) {
	itemStart := pos

	var attrs []Span
	for {
		p := skipSpace(data, pos)
		if hasPrefixAt(data, p, "#[") {
			end, err := scanDelimitedFrom(data, p+1)
			if err != nil {
				return Item{}, 0, err
			}
			attrs = append(attrs, Span{Start: p, End: end})
			pos = end
			continue
		}
		break
	}

	pos = skipSpace(data, pos)
	vis, pos := parseVisibility(data, pos)
	pos = skipSpace(data, pos)

	for {
		matched := false
		for _, kw := range modifierKeywords {
			if end, ok := matchWord(data, pos, kw); ok {
				pos = skipSpace(data, end)
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}

	kwStart := pos
	name, kwEnd := readIdent(data, pos)
	if name == "" {
		return Item{}, 0, &ParseError{Offset: pos, Message: "expected item keyword, found none"}
	}

	var kind ItemKind
	var itemName string
	var aux Auxiliary
	var bodyEnd int
	var err error

	switch {
	case name == "extern":
		pos = skipSpace(data, kwEnd)
		if hasPrefixAt(data, pos, `"`) {
			pos, err = skipStringLiteral(data, pos)
			if err != nil {
				return Item{}, 0, err
			}
			pos = skipSpace(data, pos)
		}
		if fnEnd, ok := matchWord(data, pos, "fn"); ok {
			kind = KindFunction
			itemName, bodyEnd, err = parseFunctionTail(data, fnEnd)
			aux.IsMain = itemName == "main"
		} else {
			kind = KindExternBlock
			if !hasPrefixAt(data, pos, "{") {
				return Item{}, 0, &ParseError{Offset: pos, Message: "malformed extern block: expected '{'"}
			}
			bodyEnd, err = scanDelimitedFrom(data, pos)
		}

	case name == "macro_rules":
		pos = kwEnd
		if !hasPrefixAt(data, pos, "!") {
			return Item{}, 0, &ParseError{Offset: pos, Message: "malformed macro_rules!: expected '!'"}
		}
		pos = skipSpace(data, pos+1)
		itemName, pos = readIdent(data, pos)
		if itemName == "" {
			return Item{}, 0, &ParseError{Offset: pos, Message: "malformed macro_rules!: expected macro name"}
		}
		kind = KindMacroDef
		bodyEnd, err = parseMacroBody(data, skipSpace(data, pos))

	case itemKeywordKind(name) == KindFunction:
		kind = KindFunction
		itemName, bodyEnd, err = parseFunctionTail(data, kwEnd)
		aux.IsMain = itemName == "main"

	case itemKeywordKind(name) == KindImplBlock:
		kind = KindImplBlock
		itemName, aux.TraitName, bodyEnd, err = parseImplTail(data, kwEnd)

	case name == "use":
		kind = KindUseImport
		bodyEnd, err = scanUntilTopLevelByte(data, kwEnd, ';')

	case name == "mod":
		kind = KindModDecl
		itemName, pos = readIdentAfterSpace(data, kwEnd)
		bodyEnd, err = scanUntilTopLevelByte(data, pos, ';')

	case name == "struct", name == "enum", name == "trait", name == "type":
		kind = itemKeywordKind(name)
		itemName, pos = readIdentAfterSpace(data, kwEnd)
		switch kind {
		case KindStruct:
			bodyEnd, err = parseStructTail(data, pos)
		case KindEnum, KindTraitDef:
			end, e := scanUntilTopLevelByte(data, pos, '{')
			if e != nil {
				err = e
				break
			}
			bodyEnd, err = scanDelimitedFrom(data, end-1)
		case KindTypeAlias:
			bodyEnd, err = scanUntilTopLevelByte(data, pos, ';')
		}

	case name == "const", name == "static":
		kind = itemKeywordKind(name)
		itemName, pos = readIdentAfterSpace(data, kwEnd)
		bodyEnd, err = scanUntilTopLevelByte(data, pos, ';')

	default:
		if hasPrefixAt(data, skipSpace(data, kwEnd), "!") {
			kind = KindMacroInvocation
			itemName = name
			bodyEnd, err = parseMacroBody(data, skipSpace(data, kwEnd)+1)
		} else {
			return Item{}, 0, &ParseError{Offset: kwStart, Message: fmt.Sprintf("unrecognized item header starting with %q", name)}
		}
	}

	if err != nil {
		return Item{}, 0, err
	}

	return Item{
		Kind:       kind,
		Name:       itemName,
		Visibility: vis,
		Attributes: attrs,
		Doc:        doc,
		BodySpan:   Span{Start: itemStart, End: bodyEnd},
		Auxiliary:  aux,
	}, bodyEnd, nil
}

func itemKeywordKind(name string) ItemKind {
	if k, ok := itemKeywords[name]; ok {
		return k
	}
	return KindOther
}

// parseFunctionTail parses everything after "fn", returning the function
// name and the position just past its terminator (either the closing '}'
// of its body, or the ';' of a body-less declaration, e.g. an extern fn).
func parseFunctionTail(data []byte, pos int) (name string, bodyEnd int, err error) {
	name, pos = readIdentAfterSpace(data, pos)
	if name == "" {
		return "", 0, &ParseError{Offset: pos, Message: "expected function name after 'fn'"}
	}
	end, hasBody, err := scanUntilBodyOrSemicolon(data, pos)
	if err != nil {
		return "", 0, err
	}
	_ = hasBody
	return name, end, nil
}

// parseImplTail parses everything after "impl", returning the implementing
// type's name, the trait name (if any, for "impl Trait for Type" form),
// and the position just past the closing '}' of the impl body.
func parseImplTail(data []byte, pos int) (typeName, traitName string, bodyEnd int, err error) {
	headerEnd, err := scanUntilTopLevelByte(data, pos, '{')
	if err != nil {
		return "", "", 0, err
	}
	header := string(data[pos : headerEnd-1])

	if idx := topLevelForIndex(header); idx >= 0 {
		traitName = lastPathSegment(stripLeadingGenerics(header[:idx]))
		typeName = lastPathSegment(header[idx+len(" for "):])
	} else {
		typeName = lastPathSegment(stripLeadingGenerics(header))
	}

	bodyEnd, err = scanDelimitedFrom(data, headerEnd-1)
	return typeName, traitName, bodyEnd, err
}

// topLevelForIndex finds the byte offset of " for " in header that isn't
// nested inside angle-bracket generics, returning -1 if absent.
func topLevelForIndex(header string) int {
	depth := 0
	for i := 0; i+5 <= len(header); i++ {
		switch header[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && header[i:i+5] == " for " {
			return i
		}
	}
	return -1
}

// stripLeadingGenerics removes a leading top-level "<...>" parameter list,
// e.g. the "<'a, T: Clone>" in "impl<'a, T: Clone> Trait for Foo<T>", so
// lastPathSegment is never handed a bare parameter list to truncate at its
// own first '<'. Nested angle brackets inside the list (bounds like
// "T: Into<U>") are balanced, not mistaken for the list's end.
func stripLeadingGenerics(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<") {
		return s
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[i+1:])
			}
		}
	}
	return s
}

// lastPathSegment extracts the final identifier from a possibly-generic,
// possibly path-qualified type expression, e.g. "foo::Bar<T>" -> "Bar".
func lastPathSegment(expr string) string {
	expr = strings.TrimSpace(expr)
	if i := strings.IndexByte(expr, '<'); i >= 0 {
		expr = expr[:i]
	}
	expr = strings.TrimSpace(expr)
	if i := strings.LastIndex(expr, "::"); i >= 0 {
		expr = expr[i+2:]
	}
	return strings.TrimSpace(expr)
}

// parseStructTail handles all three struct forms: unit ("struct Foo;"),
// tuple ("struct Foo(i32);"), and normal ("struct Foo { a: i32 }").
func parseStructTail(data []byte, pos int) (int, error) {
	end, hasBody, err := scanUntilBodyOrSemicolon(data, pos)
	if err != nil {
		return 0, err
	}
	_ = hasBody
	return end, nil
}

// parseMacroBody consumes a macro invocation/definition body, which may be
// delimited by (), [] or {}; () and [] forms require a trailing ';'.
func parseMacroBody(data []byte, pos int) (int, error) {
	if pos >= len(data) {
		return 0, &ParseError{Offset: pos, Message: "expected macro body"}
	}
	open := data[pos]
	if !isOpenDelim(open) {
		return 0, &ParseError{Offset: pos, Message: "expected '(', '[' or '{' to start macro body"}
	}
	end, err := scanDelimitedFrom(data, pos)
	if err != nil {
		return 0, err
	}
	if open == '{' {
		return end, nil
	}
	semiEnd, err := scanUntilTopLevelByte(data, end, ';')
	if err != nil {
		return 0, err
	}
	return semiEnd, nil
}

// parseVisibility consumes an optional "pub" or "pub(...)" modifier.
func parseVisibility(data []byte, pos int) (Visibility, int) {
	end, ok := matchWord(data, pos, "pub")
	if !ok {
		return Private, pos
	}
	if end < len(data) && data[end] == '(' {
		restEnd, err := scanDelimitedFrom(data, end)
		if err != nil {
			return Public, end
		}
		return Restricted, restEnd
	}
	return Public, end
}

func skipSpace(data []byte, pos int) int {
	for pos < len(data) {
		switch data[pos] {
		case ' ', '\t', '\r', '\n':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// readIdent reads an identifier starting exactly at pos (no leading
// whitespace skipped), returning "" if pos isn't the start of one.
func readIdent(data []byte, pos int) (string, int) {
	if pos >= len(data) || !isIdentStart(data[pos]) {
		return "", pos
	}
	start := pos
	for pos < len(data) && isIdentByte(data[pos]) {
		pos++
	}
	return string(data[start:pos]), pos
}

func readIdentAfterSpace(data []byte, pos int) (string, int) {
	return readIdent(data, skipSpace(data, pos))
}

// matchWord reports whether data[pos:] begins with the whole word kw
// (i.e. not as a prefix of a longer identifier), returning the position
// just past it.
func matchWord(data []byte, pos int, kw string) (int, bool) {
	if !hasPrefixAt(data, pos, kw) {
		return pos, false
	}
	end := pos + len(kw)
	if end < len(data) && isIdentByte(data[end]) {
		return pos, false
	}
	return end, true
}

func isOpenDelim(c byte) bool  { return c == '(' || c == '[' || c == '{' }
func isCloseDelim(c byte) bool { return c == ')' || c == ']' || c == '}' }

func matchingOpen(c byte) byte {
	switch c {
	case ')':
		return '('
	case ']':
		return '['
	default:
		return '{'
	}
}

// scanDelimitedFrom scans a balanced (), [] or {} region starting with the
// opening delimiter at pos, returning the position just past its match.
func scanDelimitedFrom(data []byte, pos int) (int, error) {
	if pos >= len(data) || !isOpenDelim(data[pos]) {
		return 0, &ParseError{Offset: pos, Message: "expected an opening delimiter"}
	}
	stack := []byte{data[pos]}
	pos++
	for pos < len(data) {
		var err error
		pos, stack, err = stepDelimScan(data, pos, stack)
		if err != nil {
			return 0, err
		}
		if len(stack) == 0 {
			return pos, nil
		}
	}
	return 0, &ParseError{Offset: pos, Message: "unterminated delimiter region"}
}

// scanUntilTopLevelByte scans forward from pos, balancing any (), [] or {}
// encountered along the way, and returns the position just past the first
// occurrence of target found while the delimiter stack is empty.
func scanUntilTopLevelByte(data []byte, pos int, target byte) (int, error) {
	var stack []byte
	for pos < len(data) {
		if len(stack) == 0 && data[pos] == target {
			return pos + 1, nil
		}
		var err error
		pos, stack, err = stepDelimScan(data, pos, stack)
		if err != nil {
			return 0, err
		}
	}
	return 0, &ParseError{Offset: pos, Message: fmt.Sprintf("reached end of file looking for %q", target)}
}

// scanUntilBodyOrSemicolon scans forward from pos and stops at whichever
// comes first, at top-level delimiter depth: a ';' (no body: hasBody is
// false, end is just past the ';'), or a '{' (a body: the brace-balanced
// region is consumed and hasBody is true).
func scanUntilBodyOrSemicolon(data []byte, pos int) (end int, hasBody bool, err error) {
	var stack []byte
	for pos < len(data) {
		if len(stack) == 0 {
			switch data[pos] {
			case ';':
				return pos + 1, false, nil
			case '{':
				end, err = scanDelimitedFrom(data, pos)
				return end, true, err
			}
		}
		pos, stack, err = stepDelimScan(data, pos, stack)
		if err != nil {
			return 0, false, err
		}
	}
	return 0, false, &ParseError{Offset: pos, Message: "reached end of file looking for ';' or '{'"}
}

// stepDelimScan advances pos by (at least) one token: a comment, a
// string/char literal, or a single byte, updating the delimiter stack for
// (), [] and {} as it goes. It is the shared core of every scanning
// routine above.
func stepDelimScan(data []byte, pos int, stack []byte) (int, []byte, error) {
	c := data[pos]
	switch {
	case hasPrefixAt(data, pos, "//"):
		return skipLineComment(data, pos), stack, nil
	case hasPrefixAt(data, pos, "/*"):
		end, err := skipBlockComment(data, pos)
		return end, stack, err
	case c == '"':
		end, err := skipStringLiteral(data, pos)
		return end, stack, err
	case (c == 'r' || c == 'b') && isStringPrefix(data, pos):
		end, err := skipStringLiteral(data, pos)
		return end, stack, err
	case c == '\'':
		if end, ok := tryCharLiteral(data, pos); ok {
			return end, stack, nil
		}
		return pos + 1, stack, nil
	case isOpenDelim(c):
		return pos + 1, append(stack, c), nil
	case isCloseDelim(c):
		if len(stack) == 0 || stack[len(stack)-1] != matchingOpen(c) {
			return 0, nil, &ParseError{Offset: pos, Message: fmt.Sprintf("unbalanced %q", c)}
		}
		return pos + 1, stack[:len(stack)-1], nil
	default:
		return pos + 1, stack, nil
	}
}

// isStringPrefix reports whether data[pos:] begins a raw ("r"...", r#"..."#)
// or byte ("b"..." / br"..."" / rb"...") string literal.
func isStringPrefix(data []byte, pos int) bool {
	i := pos
	if data[i] == 'b' {
		i++
		if i < len(data) && data[i] == 'r' {
			i++
		}
	} else if data[i] == 'r' {
		i++
	} else {
		return false
	}
	for i < len(data) && data[i] == '#' {
		i++
	}
	return i < len(data) && data[i] == '"'
}

// skipStringLiteral skips a regular, raw, byte or raw-byte string literal
// starting at pos (pos may point at 'r', 'b' or '"').
func skipStringLiteral(data []byte, pos int) (int, error) {
	start := pos
	hashes := 0
	raw := false
	if data[pos] == 'b' {
		pos++
	}
	if pos < len(data) && data[pos] == 'r' {
		raw = true
		pos++
		for pos < len(data) && data[pos] == '#' {
			hashes++
			pos++
		}
	}
	if pos >= len(data) || data[pos] != '"' {
		return 0, &ParseError{Offset: start, Message: "malformed string literal prefix"}
	}
	pos++ // opening quote

	if raw {
		closer := `"` + strings.Repeat("#", hashes)
		for pos < len(data) {
			if hasPrefixAt(data, pos, closer) {
				return pos + len(closer), nil
			}
			pos++
		}
		return 0, &ParseError{Offset: start, Message: "unterminated raw string literal"}
	}

	for pos < len(data) {
		switch data[pos] {
		case '\\':
			pos += 2
		case '"':
			return pos + 1, nil
		default:
			pos++
		}
	}
	return 0, &ParseError{Offset: start, Message: "unterminated string literal"}
}

// tryCharLiteral attempts to parse a char (or byte-char) literal starting
// at the apostrophe at pos, within a small bounded lookahead. If no
// closing apostrophe is found in range, pos is assumed to be a lifetime
// marker (e.g. "'a") rather than a literal, and the caller should advance
// by a single byte instead; this is the documented best-effort heuristic
// from spec.md §4.A ("brace matching is token-aware").
func tryCharLiteral(data []byte, pos int) (int, bool) {
	const maxLookahead = 8
	i := pos + 1
	if i < len(data) && data[i] == '\\' {
		i++
		for i < len(data) && i-pos <= maxLookahead && data[i] != '\'' {
			i++
		}
		if i < len(data) && data[i] == '\'' {
			return i + 1, true
		}
		return 0, false
	}
	if i < len(data) {
		// single rune (possibly multi-byte UTF-8) followed by closing quote
		for n := 1; n <= 4 && i+n < len(data); n++ {
			if data[i+n] == '\'' {
				return i + n + 1, true
			}
		}
	}
	return 0, false
}
