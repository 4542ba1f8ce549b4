package ordinals

// Inscription is the subset of `/r/inscription/{id}` metadata the module
// consumes.
type Inscription struct {
	Id        InscriptionId `json:"id"`
	Number    int64         `json:"number"`
	Height    uint64        `json:"height"`
	Sat       uint64        `json:"sat"`
	Timestamp int64         `json:"timestamp"`
}

// BlockInfo is the subset of `/r/blockinfo/{height}` the module consumes.
type BlockInfo struct {
	Height           uint64 `json:"height"`
	TransactionCount uint64 `json:"transaction_count"`
}

type childrenResponse struct {
	Ids  []InscriptionId `json:"ids"`
	More bool            `json:"more"`
	Page uint64          `json:"page"`
}

type satAtResponse struct {
	Id *InscriptionId `json:"id"`
}
