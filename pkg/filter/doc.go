package filter

// Grammar
//
// A filter is a tree of one-key objects. The key decides what the node is.
//
// query       : expression | combinator ;
//
// combinator  : { ( "$or" | "$and" ) : [ ( expression | combinator )+ ] } ;
//
// expression  : { FIELD : operand } ;
//
// operand     : value
//             | { ( "$lt" | "$lte" | "$gt" | "$gte" | "$ne" ) : value }
//             | { "$in" : [ value* ] } ;
//
// value       : STRING | NUMBER | BOOLEAN ;
//
// FIELD       : any key that is not one of the operator keys above ;
//
// Keys are classified in this order: combinators, single-argument
// operators, "$in", then field names. A field literally named "$or" is
// therefore read as the combinator; schemas reject '$'-prefixed fields.
//
// SQL generation
//
//	{name: 'john'}                            name = 'john'
//	{age: {$gte: 21}}                         age >= 21
//	{name: {$in: ['alice', 'bob']}}           name IN ('alice', 'bob')
//	{name: {$in: []}}                         FALSE
//	{$or: [{age: 1}, {$and: [{name: 'john'}, {age: {$gt: 18}}]}]}
//	                                          age = 1 OR (name = 'john' AND age > 18)
//
// Only nested combinators are parenthesized. Expressions never are, so
// sibling lists stay flat.
//
// Values are embedded as literals. Strings are wrapped in single quotes and
// are NOT escaped: callers must not pass untrusted input.
