package aggregates

// WriteTxOwnership says who opens and commits the transaction of a write.
type WriteTxOwnership string

// WriteTxOwnedByAggregate: callers never pass a transaction in; each write
// method runs its own.
const WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"

// ReadPolicy bounds what an aggregate may read inside a write.
type ReadPolicy string

// ReadPolicyInvariantScoped limits reads to the rows an invariant depends on.
const ReadPolicyInvariantScoped ReadPolicy = "invariant_scoped_reads"

// Contract is the declared write policy of an aggregate, checked in tests.
type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	ReadPolicy       ReadPolicy
	Notes            string
}

type Aggregate interface {
	Contract() Contract
}

func (c Contract) RequiresAggregateOwnedTx() bool {
	return c.WriteTxOwnership == WriteTxOwnedByAggregate
}
