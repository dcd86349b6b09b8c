package works

// ---------- requests

type ReorderArtworksRequest struct {
	ArtworkIDs []uint `json:"artwork_ids" binding:"required"`
}

type ReorderHistoriesRequest struct {
	HistoryIDs []uint `json:"history_ids" binding:"required"`
}
