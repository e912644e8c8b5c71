package models

// Snapshot is an immutable view of the full dataset, loaded once per request.
// All balance, report and invoice derivations read from a snapshot so that
// every view of the same data agrees.
type Snapshot struct {
	Students     []Student     `json:"students"`
	Payments     []Payment     `json:"payments"`
	FeeTemplates []FeeTemplate `json:"fee_templates"`
	Settings     Settings      `json:"settings"`
}
