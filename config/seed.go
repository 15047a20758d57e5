package config

import (
	"context"
	"fmt"

	"hotel-booking/models"
	"hotel-booking/repository"
	"hotel-booking/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type seedUser struct {
	username, email, password, role string
}

// SeedDatabase fills an empty store with demo hotels, room types, rooms and
// users. A store that already has hotels is left alone.
func SeedDatabase(ctx context.Context, store repository.Store, log *logrus.Logger) error {
	hotels, err := store.ListHotels(ctx)
	if err != nil {
		return err
	}
	if len(hotels) > 0 {
		log.Info("catalog already seeded")
		return nil
	}

	return store.Transaction(ctx, func(tx repository.Store) error {
		roomTypes := []models.RoomType{
			{Category: models.CategoryStandard, MaxCapacity: 2, BasePrice: decimal.NewFromInt(100),
				Amenities: datatypes.NewJSONType(models.Amenities{Minibar: true}), Description: "Standard Room"},
			{Category: models.CategoryFamily, MaxCapacity: 4, BasePrice: decimal.NewFromInt(150),
				Amenities: datatypes.NewJSONType(models.Amenities{Balcony: true, PetFriendly: true}), Description: "Family Room"},
			{Category: models.CategorySingle, MaxCapacity: 1, BasePrice: decimal.NewFromInt(80),
				Description: "Single Room"},
			{Category: models.CategoryRoyal, MaxCapacity: 3, BasePrice: decimal.NewFromInt(300),
				Amenities: datatypes.NewJSONType(models.Amenities{Balcony: true, SeaView: true, Minibar: true}), Description: "Royal Suite"},
			{Category: models.CategoryPenthouse, MaxCapacity: 6, BasePrice: decimal.NewFromInt(500),
				Amenities: datatypes.NewJSONType(models.Amenities{Balcony: true, SeaView: true, Minibar: true, Jacuzzi: true}), Description: "Penthouse"},
		}
		for i := range roomTypes {
			if err := tx.CreateRoomType(ctx, &roomTypes[i]); err != nil {
				return fmt.Errorf("seed room type %s: %w", roomTypes[i].Category, err)
			}
		}
		log.WithField("count", len(roomTypes)).Info("room types seeded")

		seedHotels := []models.Hotel{
			{Name: "Grand Plaza", City: "Lisbon", Address: "1 Avenida da Liberdade", Phone: "+351 210 000 001", OpeningHours: "24/7"},
			{Name: "Seaside Resort", City: "Faro", Address: "12 Praia Road", Phone: "+351 289 000 002", OpeningHours: "07:00-23:00"},
		}
		for h := range seedHotels {
			hotel := &seedHotels[h]
			if err := tx.CreateHotel(ctx, hotel); err != nil {
				return fmt.Errorf("seed hotel %s: %w", hotel.Name, err)
			}
			// two rooms per type, numbered by floor
			for i, rt := range roomTypes {
				for n := 1; n <= 2; n++ {
					room := models.Room{
						RoomNumber:        (i+1)*100 + n,
						HotelID:           hotel.ID,
						RoomTypeID:        rt.ID,
						IsAvailable:       true,
						BreakfastIncluded: rt.Category == models.CategoryRoyal || rt.Category == models.CategoryPenthouse,
					}
					if err := tx.CreateRoom(ctx, &room); err != nil {
						return fmt.Errorf("seed room %d at %s: %w", room.RoomNumber, hotel.Name, err)
					}
				}
			}
		}
		log.WithField("count", len(seedHotels)).Info("hotels seeded")

		users := []seedUser{
			{"admin", "admin@hotel.local", utils.EnvOrDefault("SEED_ADMIN_PASSWORD", "admin123"), "admin"},
			{"alice", "alice@example.com", "guest123", "guest"},
			{"bob", "bob@example.com", "guest123", "guest"},
		}
		for _, u := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.username, err)
			}
			user := models.User{Username: u.username, Email: u.email, PasswordHash: string(hash), Role: u.role}
			if err := tx.CreateUser(ctx, &user); err != nil {
				return fmt.Errorf("seed user %s: %w", u.username, err)
			}
		}
		log.WithField("count", len(users)).Info("users seeded")
		return nil
	})
}
