package filter

type Token int

const (
	illegal Token = iota
	or
	and
	less
	lte
	greater
	gte
	notEqual
	in
)

var tokenNames = map[Token]string{
	illegal:  "illegal",
	or:       "$or",
	and:      "$and",
	less:     "$lt",
	lte:      "$lte",
	greater:  "$gt",
	gte:      "$gte",
	notEqual: "$ne",
	in:       "$in",
}

func (t Token) String() string {
	return tokenNames[t]
}

var tokenSql = map[Token]string{
	or:       "OR",
	and:      "AND",
	less:     "<",
	lte:      "<=",
	greater:  ">",
	gte:      ">=",
	notEqual: "<>",
	in:       "IN",
}

func (t Token) Sql() string {
	if sql, ok := tokenSql[t]; ok {
		return sql
	}
	return ""
}

var (
	multiArgumentTokens  = []Token{or, and}
	singleArgumentTokens = []Token{less, lte, greater, gte, notEqual}
	tableArgumentTokens  = []Token{in}
)

var tokenByKey = func() map[string]Token {
	m := make(map[string]Token, len(tokenNames))
	for tok, name := range tokenNames {
		if tok != illegal {
			m[name] = tok
		}
	}
	return m
}()

// lookupToken returns illegal when key is not an operator.
func lookupToken(key string) Token {
	return tokenByKey[key]
}
