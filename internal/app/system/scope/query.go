package scope

import "go.mongodb.org/mongo-driver/bson"

// Query is a not-yet-executed fetch over one collection. The scope layer
// narrows it by composing filter predicates; the caller executes the final
// filter with Find/Count and paginates as usual.
type Query struct {
	Collection string
	Filter     bson.M
}

// ForCollection starts an unnarrowed query over a collection.
func ForCollection(name string) Query {
	return Query{Collection: name, Filter: bson.M{}}
}

// Where returns a copy of q with pred AND-composed into the filter.
// Predicates compose under $and so repeated narrowing stays equivalent to a
// single application and caller-supplied filters are never clobbered.
func (q Query) Where(pred bson.M) Query {
	if len(q.Filter) == 0 {
		return Query{Collection: q.Collection, Filter: pred}
	}
	return Query{
		Collection: q.Collection,
		Filter:     bson.M{"$and": bson.A{q.Filter, pred}},
	}
}

// MatchNone returns a copy of q that yields zero rows. Used for every
// fail-closed branch: an empty $in can never match a document.
func (q Query) MatchNone() Query {
	return Query{
		Collection: q.Collection,
		Filter:     bson.M{"_id": bson.M{"$in": bson.A{}}},
	}
}

// anyOf builds an OR of the given predicates, flattening the single-element
// case so simple filters stay readable in logs and explain output.
func anyOf(preds ...bson.M) bson.M {
	if len(preds) == 1 {
		return preds[0]
	}
	arr := make(bson.A, 0, len(preds))
	for _, p := range preds {
		arr = append(arr, p)
	}
	return bson.M{"$or": arr}
}
