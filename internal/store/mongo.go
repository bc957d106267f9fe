package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"property-expert/internal/models"
)

const (
	propertiesCollection = "properties"
	usersCollection      = "users"
	reportsCollection    = "adminReports"

	// latestReportID is the single overwritten slot for the scheduled
	// report; there is deliberately no history.
	latestReportID = "latest"
)

// MongoStore is the RecordStore backed by a hosted MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects and pings the database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) properties() *mongo.Collection {
	return s.db.Collection(propertiesCollection)
}

func (s *MongoStore) users() *mongo.Collection {
	return s.db.Collection(usersCollection)
}

func (s *MongoStore) reports() *mongo.Collection {
	return s.db.Collection(reportsCollection)
}

func (s *MongoStore) ListProperties(ctx context.Context) ([]models.Property, error) {
	return s.findProperties(ctx, bson.D{}, nil)
}

func (s *MongoStore) RecentProperties(ctx context.Context, n int) ([]models.Property, error) {
	// Descending sort puts documents missing createdAt last, matching the
	// selector's ordering contract.
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(n))
	return s.findProperties(ctx, bson.D{}, opts)
}

func (s *MongoStore) PropertiesByOwner(ctx context.Context, userID string) ([]models.Property, error) {
	return s.findProperties(ctx, bson.D{{Key: "userId", Value: userID}}, nil)
}

func (s *MongoStore) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var raw bson.M
	err := s.properties().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&raw)
	if err != nil {
		return nil, classify(err)
	}
	p := normalizeProperty(raw)
	return &p, nil
}

func (s *MongoStore) CountProperties(ctx context.Context) (int64, error) {
	count, err := s.properties().CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, classify(err)
	}
	return count, nil
}

func (s *MongoStore) InsertProperty(ctx context.Context, p *models.Property) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, err := s.properties().InsertOne(ctx, p); err != nil {
		return classify(err)
	}
	return nil
}

func (s *MongoStore) UpdateProperty(ctx context.Context, id string, fields map[string]interface{}) error {
	res, err := s.properties().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return classify(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteProperty(ctx context.Context, id string) error {
	res, err := s.properties().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return classify(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := s.users().Find(ctx, bson.D{})
	if err != nil {
		return nil, classify(err)
	}
	defer cur.Close(ctx)

	var users []models.User
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, classify(err)
		}
		users = append(users, normalizeUser(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, classify(err)
	}
	return users, nil
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var raw bson.M
	err := s.users().FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&raw)
	if err != nil {
		return nil, classify(err)
	}
	u := normalizeUser(raw)
	return &u, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if _, err := s.users().InsertOne(ctx, u); err != nil {
		return classify(err)
	}
	return nil
}

// SaveLatestReport overwrites the single "latest" slot in one upsert; a
// failed write leaves the prior report intact.
func (s *MongoStore) SaveLatestReport(ctx context.Context, report *models.AggregateReport) error {
	doc := bson.M{"_id": latestReportID}
	data, err := bson.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	for k, v := range fields {
		doc[k] = v
	}

	_, err = s.reports().ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: latestReportID}},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return classify(err)
	}
	return nil
}

func (s *MongoStore) LatestReport(ctx context.Context) (*models.AggregateReport, error) {
	var report models.AggregateReport
	err := s.reports().FindOne(ctx, bson.D{{Key: "_id", Value: latestReportID}}).Decode(&report)
	if err != nil {
		return nil, classify(err)
	}
	return &report, nil
}

func (s *MongoStore) findProperties(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]models.Property, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = s.properties().Find(ctx, filter, opts)
	} else {
		cur, err = s.properties().Find(ctx, filter)
	}
	if err != nil {
		return nil, classify(err)
	}
	defer cur.Close(ctx)

	var properties []models.Property
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, classify(err)
		}
		properties = append(properties, normalizeProperty(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, classify(err)
	}
	return properties, nil
}

// classify maps driver errors onto the store's sentinel errors so callers
// never inspect mongo types directly.
func classify(err error) error {
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return err
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		// 13 = Unauthorized
		if cmdErr.Code == 13 {
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// normalizeProperty converts one raw document into the canonical Property.
// Legacy documents store createdAt as a native datetime, an epoch value, or
// a string, and price occasionally as a string; everything is coerced here
// so nothing downstream ever probes field shapes.
func normalizeProperty(raw bson.M) models.Property {
	p := models.Property{
		ID:          asString(raw["_id"]),
		Title:       asString(raw["title"]),
		Location:    asString(raw["location"]),
		Description: asString(raw["description"]),
		Contact:     asString(raw["contact"]),
		ImageURL:    asString(raw["imageUrl"]),
		OwnerUserID: asString(raw["userId"]),
	}

	p.Price = asPrice(raw["price"])
	p.CreatedAt = asTime(raw["createdAt"])

	if terms, ok := raw["searchTerms"].(bson.A); ok {
		for _, t := range terms {
			if s, ok := t.(string); ok {
				p.SearchTerms = append(p.SearchTerms, s)
			}
		}
	}
	return p
}

func normalizeUser(raw bson.M) models.User {
	return models.User{
		ID:           asString(raw["_id"]),
		Email:        asString(raw["email"]),
		Name:         asString(raw["name"]),
		Phone:        asString(raw["phone"]),
		PasswordHash: asString(raw["passwordHash"]),
		CreatedAt:    asTime(raw["createdAt"]),
	}
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case primitive.ObjectID:
		return s.Hex()
	}
	return ""
}

// asPrice keeps any numeric value, including negatives; validity for
// aggregation is the aggregator's call, shape is ours.
func asPrice(v interface{}) *float64 {
	var price float64
	switch n := v.(type) {
	case float64:
		price = n
	case int32:
		price = float64(n)
	case int64:
		price = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil
		}
		price = parsed
	default:
		return nil
	}
	return &price
}

func asTime(v interface{}) *time.Time {
	var t time.Time
	switch d := v.(type) {
	case primitive.DateTime:
		t = d.Time()
	case time.Time:
		t = d
	case int64:
		t = time.UnixMilli(d)
	case float64:
		t = time.UnixMilli(int64(d))
	case string:
		parsed, err := time.Parse(time.RFC3339, d)
		if err != nil {
			return nil
		}
		t = parsed
	default:
		return nil
	}
	// Epoch and datetime decodes come back in Local, RFC3339 in its own
	// offset; collapse everything to UTC so timestamps compare directly.
	t = t.UTC()
	return &t
}
