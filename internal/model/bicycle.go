package model

import "time"

// Bicycle records a bicycle handed over to a candidate.  The presence
// of this record is what "has a bicycle" means throughout the service:
// handover creates the row, refund deletes it, and deletion puts the
// candidate straight back into the waiting line.  candidate_id carries
// a UNIQUE constraint so a candidate holds at most one bicycle.
//
// Fields:
//  ID              – primary key identifier.
//  CandidateID     – holder of the bicycle (1:1).
//  BicycleNumber   – physical frame number painted on the bicycle.
//  LockCombination – combination of the lock handed over with it.
//  Color           – frame color.
//  Brand           – manufacturer, free text.
//  GeneralRemarks  – free-text notes taken at handover.
//  CreatedAt       – handover time.
type Bicycle struct {
	ID              uint64    `json:"id"`               // bicycles.id
	CandidateID     uint64    `json:"candidate_id"`     // bicycles.candidate_id
	BicycleNumber   uint32    `json:"bicycle_number"`   // bicycles.bicycle_number
	LockCombination uint32    `json:"lock_combination"` // bicycles.lock_combination
	Color           string    `json:"color"`            // bicycles.color
	Brand           string    `json:"brand"`            // bicycles.brand
	GeneralRemarks  string    `json:"general_remarks"`  // bicycles.general_remarks
	CreatedAt       time.Time `json:"created_at"`       // bicycles.created_at
}
