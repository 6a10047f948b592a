package validate

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jesuansito/pymatgen-db/internal/constraints"
)

// mongoOps maps relational operators to their query-document spellings.
var mongoOps = map[constraints.Operator]string{
	constraints.OpEq:  "$eq",
	constraints.OpNeq: "$ne",
	constraints.OpLt:  "$lt",
	constraints.OpLte: "$lte",
	constraints.OpGt:  "$gt",
	constraints.OpGte: "$gte",
}

// mongoTypes maps type-constraint kinds to $type aliases.
var mongoTypes = map[constraints.FieldKind]string{
	constraints.KindNumeric: "number",
	constraints.KindString:  "string",
	constraints.KindBool:    "bool",
	constraints.KindArray:   "array",
	constraints.KindObject:  "object",
}

// queryFor translates parsed filter conditions into a server-side query
// document. Conditions on the same field accumulate into one operator
// document, so "n>0" and "n<10" become {n: {$gt: 0, $lt: 10}}.
func queryFor(filter []constraints.Expression) bson.M {
	query := bson.M{}
	for _, e := range filter {
		fieldDoc, ok := query[e.Field].(bson.M)
		if !ok {
			fieldDoc = bson.M{}
			query[e.Field] = fieldDoc
		}
		switch e.Op {
		case constraints.OpExists:
			fieldDoc["$exists"] = true
		case constraints.OpMissing:
			fieldDoc["$exists"] = false
		case constraints.OpType:
			fieldDoc["$type"] = mongoTypes[e.Kind]
		default:
			if op, ok := mongoOps[e.Op]; ok {
				fieldDoc[op] = e.Value
			}
		}
	}
	return query
}
