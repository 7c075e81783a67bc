package models

// CartEntry est l'entrée telle que stockée dans Redis : uniquement des
// références, jamais de prix. Les prix sont relus dans le catalogue à
// chaque affichage du panier.
type CartEntry struct {
	ItemID    string `json:"item_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartItemView est une ligne de panier enrichie avec les données produit
// actuelles (prix remisé compris).
type CartItemView struct {
	ItemID    string         `json:"item_id"`
	Product   ProductSummary `json:"product"`
	Quantity  int            `json:"quantity"`
	ItemTotal float64        `json:"item_total"`
}

type CartView struct {
	Items     []CartItemView `json:"items"`
	Total     float64        `json:"total"`
	ItemCount int            `json:"item_count"`
}
