package domain

// regexKeywords are the keywords after which a slash starts a regular expression.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

// jsScanner walks JavaScript source and reports free-standing identifiers. It
// knows just enough of the lexical grammar to step over literals and comments.
// Member names after a single dot are not reported.
type jsScanner struct {
	code    []byte
	pos     int
	regexOK bool
	// braces records for each open brace whether it started a template substitution.
	braces []bool
}

// scanIdentifiers calls visit for each identifier outside literals and
// comments until visit returns false.
func scanIdentifiers(code []byte, visit func(ident []byte, offset int) bool) {
	s := &jsScanner{code: code, regexOK: true}
	for s.pos < len(s.code) {
		c := s.code[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.pos++
		case c == '/' && s.peek(1) == '/':
			s.skipLineComment()
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
		case c == '/' && s.regexOK:
			s.skipRegex()
			s.regexOK = false
		case c == '\'' || c == '"':
			s.skipString(c)
			s.regexOK = false
		case c == '`':
			s.pos++
			s.template()
		case c == '{':
			s.braces = append(s.braces, false)
			s.pos++
			s.regexOK = true
		case c == '}':
			s.pos++
			s.regexOK = true
			if n := len(s.braces); n > 0 {
				substitution := s.braces[n-1]
				s.braces = s.braces[:n-1]
				if substitution {
					s.template()
				}
			}
		case c >= '0' && c <= '9':
			for s.pos < len(s.code) && (isIdentPart(s.code[s.pos]) || s.code[s.pos] == '.') {
				s.pos++
			}
			s.regexOK = false
		case isIdentPart(c):
			start := s.pos
			for s.pos < len(s.code) && isIdentPart(s.code[s.pos]) {
				s.pos++
			}
			ident := s.code[start:s.pos]
			s.regexOK = regexKeywords[string(ident)]
			if !s.memberName(start) && !visit(ident, start) {
				return
			}
		case c == ')' || c == ']':
			s.pos++
			s.regexOK = false
		default:
			s.pos++
			s.regexOK = true
		}
	}
}

func (s *jsScanner) peek(n int) byte {
	if s.pos+n < len(s.code) {
		return s.code[s.pos+n]
	}
	return 0
}

func (s *jsScanner) skipLineComment() {
	for s.pos < len(s.code) && s.code[s.pos] != '\n' {
		s.pos++
	}
}

func (s *jsScanner) skipBlockComment() {
	s.pos += 2
	for s.pos < len(s.code) {
		if s.code[s.pos] == '*' && s.peek(1) == '/' {
			s.pos += 2
			return
		}
		s.pos++
	}
}

// skipString stops at the closing quote or at an unescaped line break.
func (s *jsScanner) skipString(quote byte) {
	s.pos++
	for s.pos < len(s.code) {
		switch s.code[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case quote:
			s.pos++
			return
		case '\n':
			return
		}
		s.pos++
	}
}

// skipRegex steps over a regular expression literal and its flags. Slashes
// inside a character class do not end it.
func (s *jsScanner) skipRegex() {
	s.pos++
	inClass := false
loop:
	for s.pos < len(s.code) {
		switch s.code[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				s.pos++
				break loop
			}
		case '\n':
			return
		}
		s.pos++
	}
	for s.pos < len(s.code) && isIdentPart(s.code[s.pos]) {
		s.pos++
	}
}

// template consumes template text up to the closing backtick or the next
// substitution, whose expression is then scanned like any other code.
func (s *jsScanner) template() {
	for s.pos < len(s.code) {
		switch s.code[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '`':
			s.pos++
			s.regexOK = false
			return
		case '$':
			if s.peek(1) == '{' {
				s.pos += 2
				s.braces = append(s.braces, true)
				s.regexOK = true
				return
			}
		}
		s.pos++
	}
}

// memberName reports whether the identifier at start follows a property dot.
// A spread has three dots and is not a member access.
func (s *jsScanner) memberName(start int) bool {
	i := start - 1
	for i >= 0 && (s.code[i] == ' ' || s.code[i] == '\t' || s.code[i] == '\n' || s.code[i] == '\r') {
		i--
	}
	if i < 0 || s.code[i] != '.' {
		return false
	}
	return i < 2 || s.code[i-1] != '.' || s.code[i-2] != '.'
}

// isIdentPart accepts bytes of non-ASCII identifiers as a whole.
func isIdentPart(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
