package catalog

/*
	Collection statistics
	---------------------
	Derived values only. Nothing here is stored; every caller recomputes from
	the artwork rows it just loaded. Order of the input slice does not matter.
*/

type CollectionStats struct {
	FloorPrice   float64 `json:"floor_price"`
	TotalRevenue float64 `json:"total_collection_revenue"`
}

// ComputeStats derives the floor price and total revenue of a set of artworks.
// Artworks without a price contribute nothing; an empty set of valid prices
// yields a floor price of 0 rather than the "unset" sentinel.
func ComputeStats(artworks []Artwork) CollectionStats {
	var stats CollectionStats
	floorSet := false

	for _, art := range artworks {
		if art.Price == nil {
			continue
		}
		price := *art.Price
		stats.TotalRevenue += price
		if !floorSet || price < stats.FloorPrice {
			stats.FloorPrice = price
			floorSet = true
		}
	}
	return stats
}
