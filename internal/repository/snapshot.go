package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bugana-shop/internal/models"
)

const opTimeout = 5 * time.Second

// Connect abre la conexión a MongoDB y verifica con un ping.
func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// SnapshotStore persiste catálogo, reseñas y órdenes como registros
// planos. Es la costura de persistencia opcional: las tiendas en
// memoria siguen siendo la fuente de verdad y acá solo se refleja cada
// mutación. Un fallo de decodificación es fatal pero queda aislado al
// arranque, nunca ocurre a mitad de una operación.
type SnapshotStore struct {
	products *mongo.Collection
	reviews  *mongo.Collection
	orders   *mongo.Collection
}

func NewSnapshotStore(db *mongo.Database) *SnapshotStore {
	return &SnapshotStore{
		products: db.Collection("products"),
		reviews:  db.Collection("reviews"),
		orders:   db.Collection("orders"),
	}
}

// El precio se guarda como string para no perder precisión decimal.
type productRecord struct {
	ID           int64             `bson:"_id"`
	Name         string            `bson:"name"`
	Price        string            `bson:"price"`
	Image        string            `bson:"image"`
	Category     string            `bson:"category"`
	InStock      bool              `bson:"in_stock"`
	Descriptions map[string]string `bson:"descriptions"`
	Position     int               `bson:"position"` // preserva el orden de inserción
}

type reviewRecord struct {
	ID        string    `bson:"_id"`
	ProductID int64     `bson:"product_id"`
	Author    string    `bson:"author"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"created_at"`
}

type orderItemRecord struct {
	Product  productRecord `bson:"product"`
	Quantity int           `bson:"quantity"`
}

type orderRecord struct {
	ID              string            `bson:"_id"`
	Items           []orderItemRecord `bson:"items"`
	Total           string            `bson:"total"`
	CreatedAt       time.Time         `bson:"created_at"`
	ShippingName    string            `bson:"shipping_name"`
	ShippingAddress string            `bson:"shipping_address"`
}

func toProductRecord(p models.Product, position int) productRecord {
	return productRecord{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price.String(),
		Image:        p.Image,
		Category:     p.Category,
		InStock:      p.InStock,
		Descriptions: p.Descriptions,
		Position:     position,
	}
}

func (r productRecord) toProduct() (models.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %d: corrupt price %q: %w", r.ID, r.Price, err)
	}
	return models.Product{
		ID:           r.ID,
		Name:         r.Name,
		Price:        price,
		Image:        r.Image,
		Category:     r.Category,
		InStock:      r.InStock,
		Descriptions: r.Descriptions,
	}, nil
}

// LoadCatalog lee todos los productos en su orden original.
func (s *SnapshotStore) LoadCatalog(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.products.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var records []productRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, len(records))
	for _, r := range records {
		p, err := r.toProduct()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// SaveProduct refleja un alta o modificación (upsert por id).
func (s *SnapshotStore) SaveProduct(ctx context.Context, p models.Product, position int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.products.ReplaceOne(
		ctx,
		bson.M{"_id": p.ID},
		toProductRecord(p, position),
		options.Replace().SetUpsert(true),
	)
	return err
}

// DeleteProduct refleja una eliminación del catálogo.
func (s *SnapshotStore) DeleteProduct(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// LoadReviews lee todas las reseñas en orden de creación.
func (s *SnapshotStore) LoadReviews(ctx context.Context) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.reviews.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var records []reviewRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	out := make([]models.Review, 0, len(records))
	for _, r := range records {
		out = append(out, models.Review{
			ID:        r.ID,
			ProductID: r.ProductID,
			Author:    r.Author,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// SaveReview guarda una reseña nueva (las reseñas nunca cambian).
func (s *SnapshotStore) SaveReview(ctx context.Context, r models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.reviews.InsertOne(ctx, reviewRecord{
		ID:        r.ID,
		ProductID: r.ProductID,
		Author:    r.Author,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	})
	return err
}

// LoadOrders lee todas las órdenes en orden de creación.
func (s *SnapshotStore) LoadOrders(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.orders.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	out := make([]models.Order, 0, len(records))
	for _, r := range records {
		total, err := decimal.NewFromString(r.Total)
		if err != nil {
			return nil, fmt.Errorf("order %s: corrupt total %q: %w", r.ID, r.Total, err)
		}
		items := make([]models.CartItem, 0, len(r.Items))
		for _, ir := range r.Items {
			p, err := ir.Product.toProduct()
			if err != nil {
				return nil, fmt.Errorf("order %s: %w", r.ID, err)
			}
			items = append(items, models.CartItem{Product: p, Quantity: ir.Quantity})
		}
		out = append(out, models.Order{
			ID:        r.ID,
			Items:     items,
			Total:     total,
			CreatedAt: r.CreatedAt,
			ShippingInfo: models.ShippingInfo{
				Name:    r.ShippingName,
				Address: r.ShippingAddress,
			},
		})
	}
	return out, nil
}

// SaveOrder guarda una orden confirmada (las órdenes nunca cambian).
func (s *SnapshotStore) SaveOrder(ctx context.Context, o models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	items := make([]orderItemRecord, 0, len(o.Items))
	for i, item := range o.Items {
		items = append(items, orderItemRecord{
			Product:  toProductRecord(item.Product, i),
			Quantity: item.Quantity,
		})
	}
	_, err := s.orders.InsertOne(ctx, orderRecord{
		ID:              o.ID,
		Items:           items,
		Total:           o.Total.String(),
		CreatedAt:       o.CreatedAt,
		ShippingName:    o.ShippingInfo.Name,
		ShippingAddress: o.ShippingInfo.Address,
	})
	return err
}
