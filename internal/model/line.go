package model

// LineEntry is the read model the waiting-line ranker and the
// invitation allocator operate on: one registration of a given kind, in
// creation order, annotated with current bicycle possession.
type LineEntry struct {
	Identifier  string // registration identifier
	CandidateID uint64 // owning candidate
	HasBicycle  bool   // candidate currently holds a bicycle
}
