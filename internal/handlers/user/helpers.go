package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"
	"electroyard_back_end/internal/utils"
)

const (
	cartTTL           = 30 * 24 * time.Hour // un panier dort 30 jours maximum
	cartMutateRetries = 5
)

var errCartItemNotFound = errors.New("article introuvable dans le panier")

// outOfStockError porte le stock disponible pour la réponse API.
type outOfStockError struct {
	Available int
	InCart    int
}

func (e *outOfStockError) Error() string {
	return fmt.Sprintf("stock insuffisant (disponible: %d)", e.Available)
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// loadCartEntries lit le panier Redis d'un utilisateur.
// exists=false quand la clé n'existe pas (panier jamais créé).
func loadCartEntries(ctx context.Context, userID string) ([]models.CartEntry, bool, error) {
	data, err := database.Redis.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return []models.CartEntry{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []models.CartEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// mutateCart applique fn sur le panier sous transaction optimiste Redis
// (WATCH sur la clé). C'est le point de sérialisation par utilisateur :
// deux mutations concurrentes du même panier ne peuvent pas se perdre,
// la perdante est rejouée.
func mutateCart(ctx context.Context, userID string, fn func(entries []models.CartEntry) ([]models.CartEntry, error)) ([]models.CartEntry, error) {
	key := cartKey(userID)
	var result []models.CartEntry

	txf := func(tx *redis.Tx) error {
		entries := []models.CartEntry{}
		data, err := tx.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil && data != "" {
			if err := json.Unmarshal([]byte(data), &entries); err != nil {
				return err
			}
		}

		updated, err := fn(entries)
		if err != nil {
			return err
		}

		payload, err := json.Marshal(updated)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, cartTTL)
			return nil
		})
		if err == nil {
			result = updated
		}
		return err
	}

	for i := 0; i < cartMutateRetries; i++ {
		err := database.Redis.Watch(ctx, txf, key)
		if err == redis.TxFailedErr {
			continue // conflit : un autre writer est passé, on rejoue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, errors.New("panier trop sollicité, réessayez")
}

// fetchProduct lit un produit du catalogue par son id (string)
func fetchProduct(session *gocql.Session, productID string) (models.Product, error) {
	productUUID, err := gocql.ParseUUID(productID)
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	err = session.Query(
		`SELECT product_id, product_code, name, description, price, category, stock_quantity,
		        brand, country, weight, discount_percentage, image, ratings, availability,
		        created_at, updated_at
		 FROM products WHERE product_id = ?`, productUUID).Scan(
		&p.ID, &p.ProductCode, &p.Name, &p.Description, &p.Price, &p.Category, &p.StockQuantity,
		&p.Brand, &p.Country, &p.Weight, &p.DiscountPercentage, &p.Image, &p.Ratings, &p.Availability,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// cartProducts charge les produits référencés par un panier.
// Les produits supprimés du catalogue sont simplement absents de la map.
func cartProducts(session *gocql.Session, entries []models.CartEntry) (map[string]models.Product, error) {
	products := make(map[string]models.Product, len(entries))
	for _, entry := range entries {
		if _, done := products[entry.ProductID]; done {
			continue
		}
		p, err := fetchProduct(session, entry.ProductID)
		if err == gocql.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		products[entry.ProductID] = p
	}
	return products, nil
}

// addCartEntry applique la règle de stock à l'ajout : la ligne existante
// et la quantité demandée cumulées ne peuvent pas dépasser le stock, et le
// produit doit être disponible. Fusionne avec la ligne existante du produit
// ou ajoute une nouvelle ligne.
func addCartEntry(entries []models.CartEntry, product models.Product, quantity int) ([]models.CartEntry, error) {
	productID := product.ID.String()

	inCart := 0
	idx := -1
	for i := range entries {
		if entries[i].ProductID == productID {
			inCart = entries[i].Quantity
			idx = i
			break
		}
	}

	if product.Availability == models.AvailabilityOutOfStock || inCart+quantity > product.StockQuantity {
		return nil, &outOfStockError{Available: product.StockQuantity, InCart: inCart}
	}

	if idx >= 0 {
		entries[idx].Quantity += quantity
		return entries, nil
	}
	return append(entries, models.CartEntry{
		ItemID:    uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
	}), nil
}

// buildCartView calcule la vue panier à partir des entrées stockées et des
// produits ACTUELS du catalogue. Le prix n'est jamais figé dans le panier :
// item_total = round2(quantité × prix remisé), total = round2(somme),
// item_count = somme des quantités.
func buildCartView(entries []models.CartEntry, products map[string]models.Product) models.CartView {
	view := models.CartView{Items: []models.CartItemView{}}

	for _, entry := range entries {
		p, ok := products[entry.ProductID]
		if !ok {
			// produit retiré du catalogue depuis l'ajout : on ignore la ligne
			continue
		}

		discounted := utils.DiscountedPrice(p.Price, p.DiscountPercentage)
		itemTotal := utils.Round2(float64(entry.Quantity) * discounted)

		view.Items = append(view.Items, models.CartItemView{
			ItemID: entry.ItemID,
			Product: models.ProductSummary{
				ProductID:          p.ID.String(),
				ProductCode:        p.ProductCode,
				Name:               p.Name,
				Price:              p.Price,
				DiscountPercentage: p.DiscountPercentage,
				DiscountedPrice:    discounted,
				Image:              p.Image,
				Category:           p.Category,
				Availability:       p.Availability,
			},
			Quantity:  entry.Quantity,
			ItemTotal: itemTotal,
		})

		view.Total += itemTotal
		view.ItemCount += entry.Quantity
	}

	view.Total = utils.Round2(view.Total)
	return view
}

// orderTotal calcule le montant d'une commande : prix catalogue PLEIN ×
// quantité. La remise panier n'est volontairement pas appliquée ici — le
// panier affiche le prix remisé mais la commande fige le prix plein.
// Incohérence héritée, à trancher côté produit, pas silencieusement ici.
func orderTotal(entries []models.CartEntry, products map[string]models.Product) float64 {
	var total float64
	for _, entry := range entries {
		if p, ok := products[entry.ProductID]; ok {
			total += p.Price * float64(entry.Quantity)
		}
	}
	return utils.Round2(total)
}
