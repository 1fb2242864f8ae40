package ctype

const (
	UPPER     = 0x01    // [A-Z]
	LOWER     = 0x02    // [a-z]
	DIGIT     = 0x04    // [0-9]
	UNDERLINE = 0x08    // [_]
	XDIGIT    = 0x10    // [0-9a-fA-F]
	EOL       = 0x20    // [\r\n]
	ADD       = 0x40    // [+]
	SUB       = 0x80    // [-]
	MUL       = 0x100   // [*]
	DIV       = 0x200   // [/]
	LT        = 0x400   // [<]
	GT        = 0x800   // [>]
	EQ        = 0x1000  // [=]
	RDIV      = 0x2000  // [\\]
	DOT       = 0x4000  // [.]
	COLON     = 0x8000  // [:]
	PERCENT   = 0x10000 // [%]
	AND       = 0x20000 // [&]
	OR        = 0x40000 // [|]
	SPACE_BAR = 0x80000 // [ ]
	LCAP_R    = 0x100000
	LCAP_T    = 0x200000
	LCAP_N    = 0x400000
	TAB       = 0x800000 // [\t]
)

const (
	ALPHA              = UPPER | LOWER
	SYMBOL_FIRST_CHAR  = ALPHA
	SYMBOL_NEXT_CHAR   = SYMBOL_FIRST_CHAR | DIGIT
	CSYMBOL_FIRST_CHAR = ALPHA | UNDERLINE
	CSYMBOL_NEXT_CHAR  = CSYMBOL_FIRST_CHAR | DIGIT
	XMLSYMBOL_CHAR     = CSYMBOL_NEXT_CHAR | SUB | DOT | COLON
	DOMAIN_CHAR        = ALPHA | DIGIT | SUB | ADD | DOT
	BLANK              = SPACE_BAR | TAB | EOL
	SPACE              = SPACE_BAR | TAB
	PATH_CHAR          = CSYMBOL_NEXT_CHAR | SUB | DOT | DIV
)

var table [128]uint32

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		table[c] |= UPPER
	}
	for c := 'a'; c <= 'z'; c++ {
		table[c] |= LOWER
	}
	for c := '0'; c <= '9'; c++ {
		table[c] |= DIGIT | XDIGIT
	}
	for c := 'a'; c <= 'f'; c++ {
		table[c] |= XDIGIT
		table[c-'a'+'A'] |= XDIGIT
	}
	table['_'] |= UNDERLINE
	table['\r'] |= EOL | LCAP_R
	table['\n'] |= EOL | LCAP_N
	table['\t'] |= TAB | LCAP_T
	table['+'] |= ADD
	table['-'] |= SUB
	table['*'] |= MUL
	table['/'] |= DIV
	table['<'] |= LT
	table['>'] |= GT
	table['='] |= EQ
	table['\\'] |= RDIV
	table['.'] |= DOT
	table[':'] |= COLON
	table['%'] |= PERCENT
	table['&'] |= AND
	table['|'] |= OR
	table[' '] |= SPACE_BAR
}

// Is 判断字符 c 是否属于 typeMask 描述的字符集。非 ASCII 字符一律返回 false。
func Is(typeMask uint32, c rune) bool {
	if uint32(c) < uint32(len(table)) {
		return typeMask&table[c] != 0
	}
	return false
}

// IsType 判断 str 非空且所有字符都属于 typeMask。
func IsType(typeMask uint32, str string) bool {
	if str == "" {
		return false
	}
	for _, c := range str {
		if !Is(typeMask, c) {
			return false
		}
	}
	return true
}

// IsTypeEx 判断 str 非空，首字符属于 typeFirst，其余字符属于 typeNext。
func IsTypeEx(typeFirst, typeNext uint32, str string) bool {
	if str == "" {
		return false
	}
	for i, c := range str {
		if i > 0 {
			if !Is(typeNext, c) {
				return false
			}
		} else {
			if !Is(typeFirst, c) {
				return false
			}
		}
	}
	return true
}
