// Command seed fills an empty store with demo data through the same usecases the API uses,
// so every row passes the overlap gate and every stock total has its movements.
package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"hostel-backoffice/cmd/bootstrap"
	"hostel-backoffice/cmd/bootstrap/components"
	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/pkg/ptr"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const demoPassword = "password123"

type seedDeps struct {
	fx.In

	Users        commands.UserCommands
	Rooms        commands.RoomCommands
	Reservations commands.ReservationCommands
	Resources    commands.ResourceCommands
	Weather      commands.WeatherCommands
	Clock        clock.Clock
	Logger       *slog.Logger
}

type demoUser struct {
	username, email, role, first, last string
}

var demoUsers = []demoUser{
	{"admin_user", "admin@example.com", "administrator", "Admin", "Principal"},
	{"cliente1", "cliente1@example.com", "client", "Juan", "Perez"},
	{"cliente2", "cliente2@example.com", "client", "Maria", "Gomez"},
	{"cliente3", "cliente3@example.com", "client", "Carlos", "Lopez"},
}

var demoResources = []commands.CreateResourceInput{
	{ResourceInput: commands.ResourceInput{Name: "Soap", Kind: "consumable", Unit: "units"}},
	{ResourceInput: commands.ResourceInput{Name: "Towels", Kind: "reusable", Unit: "units"}},
	{ResourceInput: commands.ResourceInput{Name: "Toilet paper", Kind: "consumable", Unit: "rolls"}},
	{ResourceInput: commands.ResourceInput{Name: "Bed sheets", Kind: "reusable", Unit: "sets"}},
	{ResourceInput: commands.ResourceInput{Name: "Detergent", Kind: "consumable", Unit: "liters"}},
}

func main() {
	app := fx.New(
		bootstrap.ConfigModule,
		bootstrap.LoggerModule,
		components.ClockModule,
		bootstrap.StoreModule,
		bootstrap.JWTModule,
		bootstrap.CacheModule,
		components.UseCaseModule,
		fx.Invoke(runSeed),
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.Stop(ctx)
}

func runSeed(d seedDeps) error {
	ctx := context.Background()
	// Fixed seed: running twice against an empty store yields the same data.
	rng := rand.New(rand.NewPCG(2024, 7))
	admin := shared.Actor{}

	var clients []uuid.UUID
	for _, u := range demoUsers {
		id, err := d.Users.Create(ctx, commands.CreateUserInput{
			RegisterInput: commands.RegisterInput{
				Username:  u.username,
				Email:     u.email,
				Password:  demoPassword,
				FirstName: u.first,
				LastName:  u.last,
			},
			Role: u.role,
		})
		if errs.Is(err, shared.ErrAlreadyExists) {
			d.Logger.Info("user already exists", "username", u.username)
			continue
		}
		if err != nil {
			return errs.Wrapf(err, "create user %s", u.username)
		}
		if u.role == string(user.RoleAdministrator) {
			admin = shared.Actor{UserID: id, Role: user.RoleAdministrator}
		} else {
			clients = append(clients, id)
		}
		d.Logger.Info("user created", "username", u.username)
	}

	rooms, err := seedRooms(ctx, d, rng)
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		d.Logger.Info("store already seeded, nothing to do")
		return nil
	}

	if admin.UserID != uuid.Nil && len(clients) > 0 {
		seedReservations(ctx, d, rng, admin, clients, rooms)
	}

	if err := seedResources(ctx, d, rng); err != nil {
		return err
	}
	if err := seedWeather(ctx, d, rng); err != nil {
		return err
	}

	d.Logger.Info("seed completed")
	return nil
}

func seedRooms(ctx context.Context, d seedDeps, rng *rand.Rand) ([]uuid.UUID, error) {
	types := []string{"single", "double", "suite"}
	statuses := []string{"available", "occupied", "maintenance"}
	capacity := map[string]int{"single": 1, "double": 2, "suite": 4}
	price := map[string]decimal.Decimal{
		"single": decimal.NewFromInt(50),
		"double": decimal.NewFromInt(80),
		"suite":  decimal.NewFromInt(150),
	}

	var ids []uuid.UUID
	for n := 101; n <= 110; n++ {
		kind := types[rng.IntN(len(types))]
		id, err := d.Rooms.Create(ctx, commands.RoomInput{
			Number:   strconv.Itoa(n),
			Type:     kind,
			Capacity: capacity[kind],
			Price:    price[kind],
			Status:   statuses[rng.IntN(len(statuses))],
		})
		if errs.Is(err, shared.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, errs.Wrapf(err, "create room %d", n)
		}
		ids = append(ids, id)
	}
	d.Logger.Info("rooms created", "count", len(ids))
	return ids, nil
}

// seedReservations lets the overlap gate reject random collisions instead of avoiding them up front.
func seedReservations(ctx context.Context, d seedDeps, rng *rand.Rand, admin shared.Actor, clients, rooms []uuid.UUID) {
	today := clock.Today(d.Clock)
	statuses := []string{"pending", "confirmed", "cancelled"}
	created := 0
	for range 10 {
		start := today.AddDate(0, 0, rng.IntN(41)-10)
		end := start.AddDate(0, 0, 1+rng.IntN(7))
		id, err := d.Reservations.Create(ctx, admin, commands.CreateReservationInput{
			UserID:    ptr.To(clients[rng.IntN(len(clients))]),
			RoomID:    rooms[rng.IntN(len(rooms))],
			StartDate: start,
			EndDate:   end,
		})
		if errs.Is(err, reservation.ErrOverlapConflict) {
			d.Logger.Info("skipping overlapping demo reservation", "start", start.Format(reservation.DateLayout))
			continue
		}
		if err != nil {
			d.Logger.Warn("demo reservation rejected", "error", err.Error())
			continue
		}
		if status := statuses[rng.IntN(len(statuses))]; status != "pending" {
			if err := d.Reservations.ChangeStatus(ctx, admin, id, status); err != nil {
				d.Logger.Warn("demo reservation status change rejected", "error", err.Error())
			}
		}
		created++
	}
	d.Logger.Info("reservations created", "count", created)
}

func seedResources(ctx context.Context, d seedDeps, rng *rand.Rand) error {
	var ids []uuid.UUID
	for _, in := range demoResources {
		in.OpeningQuantity = int64(10 + rng.IntN(91))
		id, err := d.Resources.Create(ctx, in)
		if err != nil {
			return errs.Wrapf(err, "create resource %s", in.Name)
		}
		ids = append(ids, id)
	}

	for range 15 {
		qty := int64(rng.IntN(16) - 5)
		if qty == 0 {
			qty = 1
		}
		reason := "Restock"
		if qty < 0 {
			reason = "Daily use"
		}
		if _, err := d.Resources.RecordMovement(ctx, ids[rng.IntN(len(ids))], commands.RecordMovementInput{Quantity: qty, Reason: reason}); err != nil {
			d.Logger.Warn("demo movement rejected", "error", err.Error())
		}
	}
	d.Logger.Info("resources created", "count", len(ids))
	return nil
}

func seedWeather(ctx context.Context, d seedDeps, rng *rand.Rand) error {
	today := clock.Today(d.Clock)
	for i := range 7 {
		comment := "Sunny day"
		if rng.Float64() <= 0.5 {
			comment = "Chance of rain"
		}
		temp := decimal.NewFromFloat(15 + rng.Float64()*15).Round(2)
		_, err := d.Weather.Create(ctx, commands.WeatherInput{
			Date:            today.AddDate(0, 0, i),
			Temperature:     temp,
			RainProbability: rng.IntN(101),
			Comment:         &comment,
		})
		if errs.Is(err, shared.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return errs.Wrap(err, "create weather record")
		}
	}
	d.Logger.Info("weather records created")
	return nil
}
